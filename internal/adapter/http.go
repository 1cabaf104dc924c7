package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-toggle-sync/internal/config"
	"github.com/MKhiriev/go-toggle-sync/internal/logger"
	"github.com/MKhiriev/go-toggle-sync/models"
	"github.com/go-resty/resty/v2"
)

const idempotencyKeyHeader = "Idempotency-Key"

type httpServerAdapter struct {
	client *resty.Client
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises adapterCfg.HTTPAddress into a base URL and
// applies adapterCfg.RequestTimeout to every request. When actorToken is not
// empty it is sent as a bearer token.
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewHTTPServerAdapter(adapterCfg config.Adapter, actorToken string, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{
		client: client,
		token:  strings.TrimSpace(actorToken),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SubmitToggle implements [ServerAdapter]. It POSTs req to
// POST /api/likes/{entityID} with an Idempotency-Key header built from
// (entity, device, timestamp) and decodes the authoritative state from the
// response body.
func (h *httpServerAdapter) SubmitToggle(ctx context.Context, req models.SubmitRequest) (models.ServerState, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(idempotencyKeyHeader, req.IdempotencyKey()).
		SetPathParam("entityID", req.EntityID).
		SetBody(req).
		Post("/api/likes/{entityID}")
	if err != nil {
		h.logger.Debug().Err(err).
			Str("func", "httpServerAdapter.SubmitToggle").
			Str("entity_id", req.EntityID).
			Msg("submit request failed before response")
		return models.ServerState{}, fmt.Errorf("submit toggle request: %w", mapTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ServerState{}, err
	}

	var state models.ServerState
	if err = json.Unmarshal(resp.Body(), &state); err != nil {
		return models.ServerState{}, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return state, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}
