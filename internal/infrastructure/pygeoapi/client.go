package pygeoapi

import (
	"bytes"
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nldi-service/internal/config"
	"github.com/nldi-service/internal/domain/repository"
	"github.com/nldi-service/internal/pkg/errors"
)

// client proxies requests to the external pygeoapi geoprocessing service.
// This is the only component performing outbound HTTP.
type client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient creates a typed pygeoapi client. When the service is disabled in
// config, the returned client refuses every call instead of going to the
// network, so hydrolocation and split-catchment degrade to clean errors.
func NewClient(cfg *config.PyGeoAPIConfig, logger *zap.Logger) repository.PyGeoAPIRepository {
	if !cfg.Enabled {
		logger.Warn("Geoprocessing is disabled; hydrolocation and splitCatchment will be rejected")
		return disabledClient{}
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		timeout:    timeout,
		logger:     logger,
	}
}

// disabledClient stands in when pygeoapi.enabled is false.
type disabledClient struct{}

func (disabledClient) FlowtracePoint(context.Context, float64, float64) (float64, float64, error) {
	return 0, 0, errors.ErrRemoteService.WithMessage("geoprocessing is disabled")
}

func (disabledClient) SplitCatchment(context.Context, float64, float64) (json.RawMessage, error) {
	return nil, errors.ErrRemoteService.WithMessage("geoprocessing is disabled")
}

type processInput struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type processRequest struct {
	Inputs []processInput `json:"inputs"`
}

// FlowtracePoint asks the nldi-flowtrace process where the flow path from
// the given point meets the flowline network.
func (c *client) FlowtracePoint(ctx context.Context, lon, lat float64) (float64, float64, error) {
	payload := processRequest{
		Inputs: []processInput{
			{ID: "lon", Type: "text/plain", Value: strconv.FormatFloat(lon, 'f', -1, 64)},
			{ID: "lat", Type: "text/plain", Value: strconv.FormatFloat(lat, 'f', -1, 64)},
			{ID: "direction", Type: "text/plain", Value: "none"},
		},
	}

	body, err := c.post(ctx, "/processes/nldi-flowtrace/execution", payload, c.timeout)
	if err != nil {
		return 0, 0, err
	}

	var resp struct {
		Features []struct {
			Properties struct {
				IntersectionPoint []float64 `json:"intersection_point"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to decode flowtrace response", zap.Error(err))
		return 0, 0, errors.ErrRemoteService.WithMessage("malformed flowtrace response")
	}
	if len(resp.Features) == 0 || len(resp.Features[0].Properties.IntersectionPoint) < 2 {
		return 0, 0, errors.ErrRemoteService.WithMessage("flowtrace returned no intersection point")
	}

	pt := resp.Features[0].Properties.IntersectionPoint
	return pt[0], pt[1], nil
}

// SplitCatchment asks the nldi-splitcatchment process for the point-precise
// drainage polygon. The split algorithm is slow, so it gets double the
// configured timeout.
func (c *client) SplitCatchment(ctx context.Context, lon, lat float64) (json.RawMessage, error) {
	payload := processRequest{
		Inputs: []processInput{
			{ID: "lon", Type: "text/plain", Value: strconv.FormatFloat(lon, 'f', -1, 64)},
			{ID: "lat", Type: "text/plain", Value: strconv.FormatFloat(lat, 'f', -1, 64)},
			{ID: "upstream", Type: "text/plain", Value: "true"},
		},
	}

	body, err := c.post(ctx, "/processes/nldi-splitcatchment/execution", payload, 2*c.timeout)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to decode splitcatchment response", zap.Error(err))
		return nil, errors.ErrRemoteService.WithMessage("malformed splitcatchment response")
	}

	// The feature id changed from mergedCatchment to drainageBasin between
	// upstream releases; accept either.
	for _, rawFeature := range resp.Features {
		var envelope struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(rawFeature, &envelope); err != nil {
			continue
		}
		if envelope.ID == "mergedCatchment" || envelope.ID == "drainageBasin" {
			return stripFeatureID(rawFeature), nil
		}
	}

	return nil, errors.ErrRemoteService.WithMessage("splitcatchment returned no drainage basin")
}

// stripFeatureID removes the process-internal id field from a feature.
func stripFeatureID(raw json.RawMessage) json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}
	delete(m, "id")
	out, err := json.Marshal(m)
	if err != nil {
		return raw
	}
	return out
}

// post sends one JSON request, retrying once on connection reset. All other
// failures surface as typed errors carrying the upstream status.
func (c *client) post(ctx context.Context, path string, payload processRequest, timeout time.Duration) ([]byte, error) {
	body, err := c.doPost(ctx, path, payload, timeout)
	if goerrors.Is(err, syscall.ECONNRESET) {
		c.logger.Warn("Connection reset by geoprocessing service, retrying once",
			zap.String("path", path))
		body, err = c.doPost(ctx, path, payload, timeout)
	}
	return body, err
}

func (c *client) doPost(ctx context.Context, path string, payload processRequest, timeout time.Duration) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.ErrInternal
	}

	url := c.baseURL + path
	c.logger.Debug("Calling pygeoapi process",
		zap.String("url", url),
		zap.Duration("timeout", timeout),
	)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		c.logger.Error("Failed to create pygeoapi request", zap.Error(err))
		return nil, errors.ErrRemoteService
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if goerrors.Is(err, context.DeadlineExceeded) || goerrors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			c.logger.Error("Geoprocessing service timed out", zap.String("url", url))
			return nil, errors.ErrRemoteTimeout
		}
		if goerrors.Is(err, syscall.ECONNRESET) {
			return nil, fmt.Errorf("pygeoapi request: %w", syscall.ECONNRESET)
		}
		c.logger.Error("Failed to reach geoprocessing service",
			zap.String("url", url), zap.Error(err))
		return nil, errors.ErrRemoteService
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Geoprocessing service returned error",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", b),
		)
		return nil, errors.ErrRemoteService.WithMessage(
			"geoprocessing service returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
