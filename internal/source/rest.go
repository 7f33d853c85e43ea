package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"jetdash/internal/config"
	"jetdash/internal/model"
	"jetdash/internal/normalize"
	"jetdash/internal/util"
)

// restClient talks to the store's PostgREST surface. One client is shared
// by the three family sources.
type restClient struct {
	cfg    config.RESTBackend
	client *http.Client
}

func newRESTClient(cfg config.RESTBackend) *restClient {
	to := cfg.Timeout
	if to == 0 {
		to = 15 * time.Second
	}
	return &restClient{cfg: cfg, client: util.NewHTTPClient(to)}
}

func restSources(c *restClient) []Source {
	return []Source{
		&restSource{c: c, family: model.FamilyBooking, table: tableBookings, norm: normalize.Booking},
		&restSource{c: c, family: model.FamilyService, table: tableRequests, norm: normalize.ServiceRequest},
		&restSource{c: c, family: model.FamilyCO2, table: tableCO2, norm: normalize.CO2Request},
	}
}

func (c *restClient) headers(req *http.Request) {
	if k := strings.TrimSpace(c.cfg.ServiceKey); k != "" {
		req.Header.Set("apikey", k)
		req.Header.Set("Authorization", "Bearer "+k)
	}
	if ua := c.cfg.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}
}

// rows runs a GET against /rest/v1/<table> and parses the top-level JSON
// array PostgREST returns.
func (c *restClient) rows(ctx context.Context, table, rawQuery string) ([]map[string]any, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/rest/v1/" + table + "?" + rawQuery

	var raw []byte
	err := util.Retry(ctx, maxInt(1, c.cfg.MaxRetries), defaultDur(c.cfg.Backoff, 500*time.Millisecond), defaultDur(c.cfg.MaxBackoff, 5*time.Second), func() error {
		// Fresh request per attempt.
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		c.headers(req)
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode/100 != 2 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("%s %d: %s", table, resp.StatusCode, strings.TrimSpace(string(b)))
		}
		raw, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%s: unrecognized response shape (len=%d)", table, len(raw))
	}
	return rows, nil
}

type restSource struct {
	c      *restClient
	family string
	table  string
	norm   func(map[string]any) model.UnifiedRequest
}

func (s *restSource) Name() string { return s.family }

func (s *restSource) Fetch(ctx context.Context, userID string) ([]model.UnifiedRequest, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)
	q.Set("order", "created_at.desc")

	rows, err := s.c.rows(ctx, s.table, q.Encode())
	if err != nil {
		return nil, err
	}
	out := make([]model.UnifiedRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.norm(row))
	}
	return out, nil
}

// InsertServiceRequest posts a new row to the request table. The id is
// generated client-side so the caller can reference the record immediately.
func (c *restClient) InsertServiceRequest(ctx context.Context, n NewServiceRequest) (model.UnifiedRequest, error) {
	row := map[string]any{
		"id":           uuid.NewString(),
		"user_id":      n.UserID,
		"type":         n.Type,
		"status":       "pending",
		"client_name":  n.ClientName,
		"client_email": n.ClientEmail,
		"client_phone": n.ClientPhone,
		"data":         n.Data,
		"created_at":   time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(row)
	if err != nil {
		return model.UnifiedRequest{}, err
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/rest/v1/" + tableRequests
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.UnifiedRequest{}, err
	}
	c.headers(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.client.Do(req)
	if err != nil {
		return model.UnifiedRequest{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return model.UnifiedRequest{}, fmt.Errorf("insert %s %d: %s", tableRequests, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.UnifiedRequest{}, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err == nil && len(rows) > 0 {
		return normalize.ServiceRequest(rows[0]), nil
	}
	// Representation missing; fall back to what we sent.
	return normalize.ServiceRequest(row), nil
}

func defaultDur(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
