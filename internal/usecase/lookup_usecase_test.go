package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/pkg/errors"
	"github.com/nldi-service/internal/usecase/dto"
)

func TestGetFeature(t *testing.T) {
	t.Run("comid source resolves a flowline with mainstem", func(t *testing.T) {
		f := newNavFixture(t)

		f.flowlines.On("GetByComid", mock.Anything, int64(13297198)).
			Return(&domain.Flowline{
				Comid:               13297198,
				PermanentIdentifier: "13297198",
				Reachcode:           "07090002007373",
				Geometry:            json.RawMessage(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`),
			}, nil)
		f.mainstems.On("GetByComid", mock.Anything, int64(13297198)).
			Return(&domain.MainstemLookup{Comid: 13297198, URI: "https://geoconnex.us/ref/mainstems/2143"}, nil)

		fc, err := f.lookupUC.GetFeature(context.Background(), "comid", "13297198")
		require.NoError(t, err)
		require.Len(t, fc.Features, 1)

		props, ok := fc.Features[0].Properties.(dto.FeatureProperties)
		require.True(t, ok)
		assert.Equal(t, "13297198", props.Comid)
		assert.Equal(t, "comid", props.Source)
		require.NotNil(t, props.Mainstem)
		assert.Equal(t, "https://geoconnex.us/ref/mainstems/2143", *props.Mainstem)
	})

	t.Run("mainstem miss is a null annotation", func(t *testing.T) {
		f := newNavFixture(t)

		f.flowlines.On("GetByComid", mock.Anything, int64(42)).
			Return(&domain.Flowline{Comid: 42, PermanentIdentifier: "42", Reachcode: "r"}, nil)
		f.mainstems.On("GetByComid", mock.Anything, int64(42)).
			Return(nil, errors.ErrNotFound)

		fc, err := f.lookupUC.GetFeature(context.Background(), "comid", "42")
		require.NoError(t, err)

		props := fc.Features[0].Properties.(dto.FeatureProperties)
		assert.Nil(t, props.Mainstem)
	})

	t.Run("unknown comid is NotFound", func(t *testing.T) {
		f := newNavFixture(t)
		f.flowlines.On("GetByComid", mock.Anything, int64(99999999999)).
			Return(nil, errors.ErrNotFound)

		_, err := f.lookupUC.GetFeature(context.Background(), "comid", "99999999999")
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("non numeric comid rejected", func(t *testing.T) {
		f := newNavFixture(t)
		_, err := f.lookupUC.GetFeature(context.Background(), "comid", "abc")
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("crawler source feature", func(t *testing.T) {
		f := newNavFixture(t)
		f.features.On("GetByID", mock.Anything, int64(2), "USGS-05428500").
			Return(&domain.Feature{Identifier: "USGS-05428500", Comid: 13293750}, nil)

		fc, err := f.lookupUC.GetFeature(context.Background(), "NWISSITE", "USGS-05428500")
		require.NoError(t, err)

		props := fc.Features[0].Properties.(dto.FeatureProperties)
		assert.Equal(t, "nwissite", props.Source)
		assert.Equal(t, "13293750", props.Comid)
	})

	t.Run("unknown source is NotFound", func(t *testing.T) {
		f := newNavFixture(t)
		_, err := f.lookupUC.GetFeature(context.Background(), "nosuch", "X")
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func TestListFeatures(t *testing.T) {
	t.Run("pages with defaults", func(t *testing.T) {
		f := newNavFixture(t)
		f.features.On("ListBySource", mock.Anything, int64(1), dto.DefaultLimit, 0).
			Return([]domain.Feature{{Identifier: "A", Comid: 1}}, nil)

		fc, err := f.lookupUC.ListFeatures(context.Background(), dto.ListFeaturesRequest{Source: "wqp"})
		require.NoError(t, err)
		assert.Len(t, fc.Features, 1)
	})

	t.Run("rejects oversized limit", func(t *testing.T) {
		f := newNavFixture(t)
		_, err := f.lookupUC.ListFeatures(context.Background(),
			dto.ListFeaturesRequest{Source: "wqp", Limit: 10001})
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("rejects negative offset", func(t *testing.T) {
		f := newNavFixture(t)
		_, err := f.lookupUC.ListFeatures(context.Background(),
			dto.ListFeaturesRequest{Source: "wqp", Offset: -1})
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("comid source is not enumerable", func(t *testing.T) {
		f := newNavFixture(t)
		_, err := f.lookupUC.ListFeatures(context.Background(),
			dto.ListFeaturesRequest{Source: "comid"})
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestGetCatchmentByPoint(t *testing.T) {
	t.Run("returns the containing catchment", func(t *testing.T) {
		f := newNavFixture(t)
		f.catchments.On("GetByPoint", mock.Anything, -89.509, 43.087).
			Return(&domain.Catchment{
				FeatureID: 13297198,
				Geometry:  json.RawMessage(`{"type":"Polygon","coordinates":[]}`),
			}, nil)

		fc, err := f.lookupUC.GetCatchmentByPoint(context.Background(), -89.509, 43.087)
		require.NoError(t, err)
		require.Len(t, fc.Features, 1)

		props := fc.Features[0].Properties.(dto.FeatureProperties)
		assert.Equal(t, "13297198", props.Comid)
	})

	t.Run("outside every catchment is NotFound", func(t *testing.T) {
		f := newNavFixture(t)
		f.catchments.On("GetByPoint", mock.Anything, 0.0, 0.0).
			Return(nil, errors.ErrNotFound)

		_, err := f.lookupUC.GetCatchmentByPoint(context.Background(), 0, 0)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func TestHydrolocation(t *testing.T) {
	t.Run("snapped and provided points", func(t *testing.T) {
		f := newNavFixture(t)

		f.pygeoapi.On("FlowtracePoint", mock.Anything, -89.509, 43.087).
			Return(-89.51, 43.09, nil)
		f.catchments.On("GetByPoint", mock.Anything, -89.51, 43.09).
			Return(&domain.Catchment{FeatureID: 13297198}, nil)
		f.flowlines.On("MeasureAtPoint", mock.Anything, int64(13297198), -89.51, 43.09).
			Return(42.5, "07090002007373", nil)

		fc, err := f.lookupUC.Hydrolocation(context.Background(), -89.509, 43.087)
		require.NoError(t, err)
		require.Len(t, fc.Features, 2)

		snapped := fc.Features[0].Properties.(dto.FeatureProperties)
		assert.Equal(t, "indexed", snapped.Source)
		assert.Equal(t, "13297198", snapped.Comid)
		require.NotNil(t, snapped.Measure)
		assert.Equal(t, 42.5, *snapped.Measure)

		provided := fc.Features[1].Properties.(dto.FeatureProperties)
		assert.Equal(t, "provided", provided.Source)
	})

	t.Run("remote failure surfaces as remote error", func(t *testing.T) {
		f := newNavFixture(t)
		f.pygeoapi.On("FlowtracePoint", mock.Anything, -89.509, 43.087).
			Return(0.0, 0.0, errors.ErrRemoteService)

		_, err := f.lookupUC.Hydrolocation(context.Background(), -89.509, 43.087)
		assert.ErrorIs(t, err, errors.ErrRemoteService)
	})
}

func TestResolveAnchor(t *testing.T) {
	t.Run("feature anchor carries the measure", func(t *testing.T) {
		f := newNavFixture(t)
		measure := 40.0
		f.features.On("GetByID", mock.Anything, int64(2), "USGS-05428500").
			Return(&domain.Feature{Identifier: "USGS-05428500", Comid: 13293750, Measure: &measure}, nil)

		anchor, err := f.lookupUC.ResolveAnchor(context.Background(), "nwissite", "USGS-05428500")
		require.NoError(t, err)
		assert.Equal(t, int64(13293750), anchor.Comid)
		require.NotNil(t, anchor.Measure)
		assert.Equal(t, 40.0, *anchor.Measure)
		assert.Equal(t, domain.AnchorFromFeature, anchor.Origin)
	})

	t.Run("unindexed feature is NotFound", func(t *testing.T) {
		f := newNavFixture(t)
		f.features.On("GetByID", mock.Anything, int64(1), "X").
			Return(&domain.Feature{Identifier: "X", Comid: 0}, nil)

		_, err := f.lookupUC.ResolveAnchor(context.Background(), "wqp", "X")
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}
