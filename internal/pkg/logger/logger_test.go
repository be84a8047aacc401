package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("honors the configured level", func(t *testing.T) {
		log, err := New("warn")
		require.NoError(t, err)
		defer log.Sync() //nolint:errcheck

		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		log, err := New("verbose")
		require.NoError(t, err)
		defer log.Sync() //nolint:errcheck

		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("debug builds a development logger", func(t *testing.T) {
		log, err := New("debug")
		require.NoError(t, err)
		defer log.Sync() //nolint:errcheck

		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})
}
