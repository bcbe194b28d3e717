// Package backend implements the portal's client for the green-lending
// REST API. All portal data lives behind this API; the client owns the
// request timeout budget, the bearer-token plumbing and the translation of
// transport failures into the portal's error taxonomy.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/glcplatform/portal/internal/api/metrics"
	"github.com/glcplatform/portal/internal/core/domain"
)

const apiPrefix = "/api/v1"

// defaultTimeout bounds a single backend call end-to-end, body read
// included. A call that exceeds it fails with domain.ErrTimeout.
const defaultTimeout = 10 * time.Second

// Client talks to the green-lending backend. It implements
// ports.BackendGateway and is safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
	log     zerolog.Logger
}

// New builds a Client for the API at baseURL. Deadlines are applied per
// call via context, so one timed-out request never poisons the next.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		httpc:   &http.Client{},
		log:     log,
	}
}

// call performs one HTTP exchange and returns the status, headers and body.
// Non-2xx responses come back as *domain.APIError with the body's detail
// message; transport failures map to ErrTimeout or ErrBackendUnreachable.
func (c *Client) call(ctx context.Context, sess domain.Session, op, method, path string, query url.Values, body io.Reader, contentType string) (int, http.Header, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	if sess.UserID != 0 {
		// The backend resolves the acting user from this parameter in its
		// demo-auth mode; it rides along on every session-scoped call.
		q.Set("current_user_id", strconv.Itoa(sess.UserID))
	}
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("backend: build %s request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(op, outcomeOf(err)).Inc()
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			c.log.Warn().Str("op", op).Dur("budget", c.timeout).Msg("backend request timed out")
			return 0, nil, nil, fmt.Errorf("%w: %s", domain.ErrTimeout, op)
		case errors.Is(err, context.Canceled):
			return 0, nil, nil, err
		default:
			c.log.Warn().Str("op", op).Err(err).Msg("backend request failed")
			return 0, nil, nil, fmt.Errorf("%w: %s: %v", domain.ErrBackendUnreachable, op, err)
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(op, outcomeOf(err)).Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, nil, nil, fmt.Errorf("%w: %s: response read", domain.ErrTimeout, op)
		}
		return 0, nil, nil, fmt.Errorf("%w: %s: response read: %v", domain.ErrBackendUnreachable, op, err)
	}

	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.BackendRequestsTotal.WithLabelValues(op, "http_error").Inc()
		return resp.StatusCode, resp.Header, data, &domain.APIError{
			Status:  resp.StatusCode,
			Message: errorDetail(data),
		}
	}

	metrics.BackendRequestsTotal.WithLabelValues(op, "ok").Inc()
	return resp.StatusCode, resp.Header, data, nil
}

func (c *Client) getJSON(ctx context.Context, sess domain.Session, op, path string, query url.Values, out any) error {
	_, _, data, err := c.call(ctx, sess, op, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return decode(op, data, out)
}

func (c *Client) postJSON(ctx context.Context, sess domain.Session, op, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: encode %s request: %w", op, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}
	_, _, data, err := c.call(ctx, sess, op, http.MethodPost, path, nil, body, contentType)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(op, data, out)
}

// decode surfaces malformed payloads as errors; a 200 with a body the
// portal cannot read must never pass as an empty result.
func decode(op string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend: decode %s response: %w", op, err)
	}
	return nil
}

// errorDetail pulls the human-readable message out of an error body. The
// backend wraps messages as {"detail": ...}; anything else is passed
// through truncated.
func errorDetail(data []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		if b, err := json.Marshal(payload.Detail); err == nil {
			return string(b)
		}
	}
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unreachable"
	}
}
