package usecase

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/domain/repository"
)

type mockSourceRepo struct{ mock.Mock }

func (m *mockSourceRepo) GetBySuffix(ctx context.Context, suffix string) (*domain.CrawlerSource, error) {
	args := m.Called(ctx, suffix)
	if src := args.Get(0); src != nil {
		return src.(*domain.CrawlerSource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSourceRepo) GetByID(ctx context.Context, id int64) (*domain.CrawlerSource, error) {
	args := m.Called(ctx, id)
	if src := args.Get(0); src != nil {
		return src.(*domain.CrawlerSource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSourceRepo) List(ctx context.Context) ([]domain.CrawlerSource, error) {
	args := m.Called(ctx)
	if sources := args.Get(0); sources != nil {
		return sources.([]domain.CrawlerSource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSourceRepo) Upsert(ctx context.Context, src domain.CrawlerSource) error {
	return m.Called(ctx, src).Error(0)
}

type mockFeatureRepo struct{ mock.Mock }

func (m *mockFeatureRepo) GetByID(ctx context.Context, sourceID int64, identifier string) (*domain.Feature, error) {
	args := m.Called(ctx, sourceID, identifier)
	if f := args.Get(0); f != nil {
		return f.(*domain.Feature), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeatureRepo) ListBySource(ctx context.Context, sourceID int64, limit, offset int) ([]domain.Feature, error) {
	args := m.Called(ctx, sourceID, limit, offset)
	if f := args.Get(0); f != nil {
		return f.([]domain.Feature), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFeatureRepo) ListByNavigation(ctx context.Context, sourceID int64, comids domain.NavResult) ([]domain.Feature, error) {
	args := m.Called(ctx, sourceID, comids)
	if f := args.Get(0); f != nil {
		return f.([]domain.Feature), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFlowlineRepo struct{ mock.Mock }

func (m *mockFlowlineRepo) GetByComid(ctx context.Context, comid int64) (*domain.Flowline, error) {
	args := m.Called(ctx, comid)
	if fl := args.Get(0); fl != nil {
		return fl.(*domain.Flowline), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFlowlineRepo) ListByNavigation(ctx context.Context, comids domain.NavResult, q repository.FlowlineQuery) ([]domain.Flowline, error) {
	args := m.Called(ctx, comids, q)
	if fl := args.Get(0); fl != nil {
		return fl.([]domain.Flowline), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFlowlineRepo) MeasureAtPoint(ctx context.Context, comid int64, lon, lat float64) (float64, string, error) {
	args := m.Called(ctx, comid, lon, lat)
	return args.Get(0).(float64), args.String(1), args.Error(2)
}

func (m *mockFlowlineRepo) EstimateMeasure(ctx context.Context, sourceID int64, identifier string) (float64, error) {
	args := m.Called(ctx, sourceID, identifier)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockFlowlineRepo) PointAtMeasure(ctx context.Context, sourceID int64, identifier string) (float64, float64, error) {
	args := m.Called(ctx, sourceID, identifier)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *mockFlowlineRepo) DistanceFromFlowline(ctx context.Context, sourceID int64, identifier string) (float64, error) {
	args := m.Called(ctx, sourceID, identifier)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockFlowlineRepo) ClosestPoint(ctx context.Context, sourceID int64, identifier string) (float64, float64, error) {
	args := m.Called(ctx, sourceID, identifier)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

type mockCatchmentRepo struct{ mock.Mock }

func (m *mockCatchmentRepo) GetByComid(ctx context.Context, comid int64) (*domain.Catchment, error) {
	args := m.Called(ctx, comid)
	if c := args.Get(0); c != nil {
		return c.(*domain.Catchment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatchmentRepo) GetByPoint(ctx context.Context, lon, lat float64) (*domain.Catchment, error) {
	args := m.Called(ctx, lon, lat)
	if c := args.Get(0); c != nil {
		return c.(*domain.Catchment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBasinRepo struct{ mock.Mock }

func (m *mockBasinRepo) AggregateCatchments(ctx context.Context, comids domain.NavResult, simplified bool) (*domain.Basin, error) {
	args := m.Called(ctx, comids, simplified)
	if b := args.Get(0); b != nil {
		return b.(*domain.Basin), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMainstemRepo struct{ mock.Mock }

func (m *mockMainstemRepo) GetByComid(ctx context.Context, comid int64) (*domain.MainstemLookup, error) {
	args := m.Called(ctx, comid)
	if ms := args.Get(0); ms != nil {
		return ms.(*domain.MainstemLookup), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNavigationRepo struct{ mock.Mock }

func (m *mockNavigationRepo) Navigate(ctx context.Context, mode domain.NavigationMode, startComid int64, distanceKm float64, stopComid *int64) (domain.NavResult, error) {
	args := m.Called(ctx, mode, startComid, distanceKm, stopComid)
	if r := args.Get(0); r != nil {
		return r.(domain.NavResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPyGeoAPIRepo struct{ mock.Mock }

func (m *mockPyGeoAPIRepo) FlowtracePoint(ctx context.Context, lon, lat float64) (float64, float64, error) {
	args := m.Called(ctx, lon, lat)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *mockPyGeoAPIRepo) SplitCatchment(ctx context.Context, lon, lat float64) (json.RawMessage, error) {
	args := m.Called(ctx, lon, lat)
	if raw := args.Get(0); raw != nil {
		return raw.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}
