package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nldi-service/internal/pkg/errors"
)

func TestParsePointWKT(t *testing.T) {
	t.Run("valid point", func(t *testing.T) {
		lon, lat, err := ParsePointWKT("POINT(-89.509 43.087)")
		require.NoError(t, err)
		assert.Equal(t, -89.509, lon)
		assert.Equal(t, 43.087, lat)
	})

	t.Run("whitespace tolerated", func(t *testing.T) {
		lon, lat, err := ParsePointWKT("  POINT ( -89.509   43.087 ) ")
		require.NoError(t, err)
		assert.Equal(t, -89.509, lon)
		assert.Equal(t, 43.087, lat)
	})

	t.Run("integer coordinates", func(t *testing.T) {
		lon, lat, err := ParsePointWKT("POINT(-90 43)")
		require.NoError(t, err)
		assert.Equal(t, -90.0, lon)
		assert.Equal(t, 43.0, lat)
	})

	invalid := []string{
		"",
		"POINT()",
		"POINT(-89.509)",
		"POINT(-89.509, 43.087)",
		"LINESTRING(-89.509 43.087)",
		"-89.509 43.087",
		"POINT(43.087 -189.509)",
	}
	for _, in := range invalid {
		_, _, err := ParsePointWKT(in)
		assert.ErrorIs(t, err, errors.ErrInvalidInput, "input %q", in)
	}

	t.Run("latitude out of range rejected", func(t *testing.T) {
		_, _, err := ParsePointWKT("POINT(-89.509 143.087)")
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(43.0, -89.5))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.1))
}
