package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fieldline/syncbox/internal/config"
	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/utils"
	"github.com/fieldline/syncbox/models"
)

type httpRowStore struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPRowStore constructs an HTTP/REST implementation of [RowStore].
// It normalises and validates the base URL from cfg.Address and configures
// the underlying HTTP client with the resolved base URL, the configured
// request timeout, and the bearer token forwarded on every request.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid
// URL.
func NewHTTPRowStore(cfg config.ClientRemote, logger *logger.Logger) (RowStore, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid remote address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	if cfg.APIToken != "" {
		client.SetAuthToken(cfg.APIToken)
	}

	return &httpRowStore{client: client, logger: logger}, nil
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

// Select implements [RowStore]. It GETs
// /api/tables/{table}/rows?since=RFC3339&limit=N and decodes the response
// into records. The since parameter is omitted for the zero time so the
// remote store returns all rows (initial sync path).
func (h *httpRowStore) Select(ctx context.Context, table string, since time.Time, limit int) ([]models.Record, error) {
	var rows []models.Record

	req := h.client.R().
		SetContext(ctx).
		SetResult(&rows)

	if !since.IsZero() {
		req.SetQueryParam("since", since.UTC().Format(time.RFC3339Nano))
	}
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/tables/" + url.PathEscape(table) + "/rows")
	if err != nil {
		return nil, fmt.Errorf("%w: select %s: %w", ErrNetwork, table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	return rows, nil
}

// Insert implements [RowStore]. It POSTs the full record to
// /api/tables/{table}/rows.
func (h *httpRowStore) Insert(ctx context.Context, table string, record models.Record) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post("/api/tables/" + url.PathEscape(table) + "/rows")
	if err != nil {
		return fmt.Errorf("%w: insert into %s: %w", ErrNetwork, table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	return nil
}

// Update implements [RowStore]. It PUTs the full record to
// /api/tables/{table}/rows/{id}. The record must carry its id.
func (h *httpRowStore) Update(ctx context.Context, table string, record models.Record) error {
	id := record.ID()
	if id == "" {
		return fmt.Errorf("%w: update in %s: record has no id", ErrValidation, table)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Put("/api/tables/" + url.PathEscape(table) + "/rows/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("%w: update %s in %s: %w", ErrNetwork, id, table, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("update %s in %s: %w", id, table, err)
	}

	return nil
}

// Delete implements [RowStore]. It DELETEs /api/tables/{table}/rows/{id}.
// A 404 response is treated as success: the row is already gone, which is
// the state the mutation wanted.
func (h *httpRowStore) Delete(ctx context.Context, table, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/api/tables/" + url.PathEscape(table) + "/rows/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("%w: delete %s from %s: %w", ErrNetwork, id, table, err)
	}

	mapped := mapHTTPError(resp)
	if mapped == nil {
		return nil
	}
	if errors.Is(mapped, ErrNotFound) {
		h.logger.Debug().
			Str("func", "httpRowStore.Delete").
			Str("table", table).
			Str("id", id).
			Msg("row already absent on remote, treating delete as delivered")
		return nil
	}

	return fmt.Errorf("delete %s from %s: %w", id, table, mapped)
}

// Ping implements [RowStore]. It GETs /api/health and reports any non-2xx
// response or transport failure as ErrNetwork.
func (h *httpRowStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: health probe: %w", ErrNetwork, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("%w: health probe: http %d", ErrNetwork, resp.StatusCode())
	}

	return nil
}
