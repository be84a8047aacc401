package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/config"
	delivery "github.com/nldi-service/internal/delivery/http"
	"github.com/nldi-service/internal/delivery/http/handler"
	"github.com/nldi-service/internal/domain"
	"github.com/nldi-service/internal/infrastructure/pygeoapi"
	"github.com/nldi-service/internal/pkg/errors"
	"github.com/nldi-service/internal/repository/postgres"
	"github.com/nldi-service/internal/usecase"
	"github.com/nldi-service/internal/usecase/dto"
)

// stubSourceRepo serves a fixed source list; the write methods are never hit
// from the routes under test.
type stubSourceRepo struct {
	sources []domain.CrawlerSource
}

func (s stubSourceRepo) List(context.Context) ([]domain.CrawlerSource, error) {
	return s.sources, nil
}

func (s stubSourceRepo) GetBySuffix(context.Context, string) (*domain.CrawlerSource, error) {
	return nil, errors.ErrNotFound
}

func (s stubSourceRepo) GetByID(context.Context, int64) (*domain.CrawlerSource, error) {
	return nil, errors.ErrNotFound
}

func (s stubSourceRepo) Upsert(context.Context, domain.CrawlerSource) error {
	return nil
}

type stubCatchmentRepo struct{}

func (stubCatchmentRepo) GetByComid(context.Context, int64) (*domain.Catchment, error) {
	return nil, errors.ErrNotFound
}

func (stubCatchmentRepo) GetByPoint(_ context.Context, lon, lat float64) (*domain.Catchment, error) {
	if lon < -180 || lon > 180 {
		return nil, errors.ErrNotFound
	}
	return &domain.Catchment{
		FeatureID: 13297198,
		Geometry:  json.RawMessage(`{"type":"Polygon","coordinates":[]}`),
	}, nil
}

// newTestApp wires the real server over stub repositories, so requests travel
// the full middleware and routing chain.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Prefix: "/api/nldi",
			URL:    "http://localhost:8080",
		},
		Metadata: config.MetadataConfig{Title: "Network Linked Data Index API"},
	}
	logger := zap.NewNop()

	registry, err := usecase.NewSourceRegistry(context.Background(), stubSourceRepo{
		sources: []domain.CrawlerSource{
			{ID: 1, Name: "Water Quality Portal", Suffix: "wqp", IngestType: domain.IngestTypePoint},
		},
	}, logger)
	require.NoError(t, err)

	// A disabled geoprocessing client keeps the suite off the network while
	// leaving the hydrolocation route wired.
	remote := pygeoapi.NewClient(&config.PyGeoAPIConfig{Enabled: false}, logger)

	links := dto.NewLinkBuilder(cfg.BaseURL())
	lookupUC := usecase.NewLookupUsecase(registry, nil, nil, stubCatchmentRepo{}, nil, remote, links, logger)
	navUC := usecase.NewNavigationUsecase(registry, lookupUC, nil, nil, nil, nil, remote, links, logger)

	srv := delivery.NewServer(
		cfg,
		logger,
		handler.NewAboutHandler(cfg, postgres.NewDBForTest(nil, logger), logger),
		handler.NewOpenAPIHandler("/swagger/index.html", logger),
		handler.NewLinkedDataHandler(lookupUC, links, false, logger),
		handler.NewNavigationHandler(navUC, false, logger),
		handler.NewBasinHandler(navUC, false, logger),
	)
	return srv.App()
}

func doGet(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func decodeError(t *testing.T, body []byte) (code, message string) {
	t.Helper()
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &e))
	require.NotEmpty(t, e.Code)
	require.NotEmpty(t, e.Message)
	return e.Code, e.Message
}

func TestPositionRouteIsNotShadowedBySourceParams(t *testing.T) {
	app := newTestApp(t)

	// Captured by the :source/:featureId route this would be a comid parse
	// failure; reaching the catchment lookup proves the static route wins.
	status, body := doGet(t, app,
		"/api/nldi/linked-data/comid/position?coords=POINT%28-89.509%2043.087%29")
	assert.Equal(t, fiber.StatusOK, status)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties struct {
				Comid string `json:"comid"`
			} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(body, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "13297198", fc.Features[0].Properties.Comid)
}

func TestHydrolocationRouteIsNotShadowedBySourceParams(t *testing.T) {
	app := newTestApp(t)

	// The :source route would answer 404 for an unknown "hydrolocation"
	// suffix; the disabled remote client answers with its own kind instead.
	status, body := doGet(t, app,
		"/api/nldi/linked-data/hydrolocation?coords=POINT%28-89.509%2043.087%29")
	assert.Equal(t, fiber.StatusInternalServerError, status)

	code, message := decodeError(t, body)
	assert.Equal(t, "RemoteServiceError", code)
	assert.Contains(t, message, "disabled")
}

func TestMalformedCoordsRejected(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{
		"/api/nldi/linked-data/comid/position?coords=POINT%28oops%29",
		"/api/nldi/linked-data/comid/position",
		"/api/nldi/linked-data/hydrolocation?coords=-89.509%2043.087",
	} {
		status, body := doGet(t, app, target)
		assert.Equal(t, fiber.StatusBadRequest, status, "target %s", target)

		code, _ := decodeError(t, body)
		assert.Equal(t, "InvalidInput", code, "target %s", target)
	}
}

func TestUnknownSourceIsNotFound(t *testing.T) {
	app := newTestApp(t)

	status, body := doGet(t, app, "/api/nldi/linked-data/nosuch/USGS-05428500")
	assert.Equal(t, fiber.StatusNotFound, status)

	code, _ := decodeError(t, body)
	assert.Equal(t, "NotFound", code)
}

func TestPointToPointRequiresStopComid(t *testing.T) {
	app := newTestApp(t)

	status, body := doGet(t, app,
		"/api/nldi/linked-data/comid/13297198/navigation/PP/flowlines?distance=10")
	assert.Equal(t, fiber.StatusBadRequest, status)

	code, message := decodeError(t, body)
	assert.Equal(t, "InvalidInput", code)
	assert.Contains(t, message, "stopComid")
}

func TestUnknownPathIsNotFound(t *testing.T) {
	app := newTestApp(t)

	status, body := doGet(t, app, "/api/nldi/no-such-endpoint")
	assert.Equal(t, fiber.StatusNotFound, status)

	code, _ := decodeError(t, body)
	assert.Equal(t, "NotFound", code)
}

func TestListSources(t *testing.T) {
	app := newTestApp(t)

	status, body := doGet(t, app, "/api/nldi/linked-data")
	assert.Equal(t, fiber.StatusOK, status)

	var sources []struct {
		Source   string `json:"source"`
		Features string `json:"features"`
	}
	require.NoError(t, json.Unmarshal(body, &sources))
	require.Len(t, sources, 2)
	assert.Equal(t, "comid", sources[0].Source)
	assert.Equal(t, "wqp", sources[1].Source)
}