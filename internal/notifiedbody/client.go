package notifiedbody

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"en13813/internal/notifiedbody/metrics"
	"en13813/pkg/requestcontext"
)

const maxResponseBytes = 1 << 20

// HTTPClient queries a JSON registry at GET {baseURL}/bodies/{number}.
type HTTPClient struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type ClientOption func(*HTTPClient)

func WithAPIKey(key string) ClientOption {
	return func(c *HTTPClient) {
		c.apiKey = key
	}
}

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.http = h
	}
}

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}

// NewHTTPClient builds a client. timeout bounds each lookup on top of any
// deadline already on the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		logger:  slog.Default(),
		tracer:  otel.Tracer("en13813/notifiedbody"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type bodyResponse struct {
	Number     string   `json:"number"`
	Name       string   `json:"name"`
	Status     string   `json:"status"`
	Scopes     []string `json:"scopes"`
	ValidUntil string   `json:"valid_until"`
}

func (c *HTTPClient) Lookup(ctx context.Context, number string, scopes []string) (*Body, error) {
	number = NormalizeNumber(number)
	ctx, span := c.tracer.Start(ctx, "notifiedbody.Lookup", trace.WithAttributes(
		attribute.String("notified_body.number", number),
		attribute.StringSlice("notified_body.scopes", scopes),
	))
	defer span.End()

	body, err := c.lookup(ctx, number, scopes)
	outcome := "ok"
	if err != nil {
		outcome = string(CategoryOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		c.logger.WarnContext(ctx, "notified body lookup failed",
			"notified_body", number,
			"category", outcome,
			"error", err,
		)
	}
	c.metrics.IncrementLookup(outcome)
	return body, err
}

func (c *HTTPClient) lookup(ctx context.Context, number string, scopes []string) (*Body, error) {
	if number == "" {
		return nil, NewLookupError(CategoryNotFound, number, "notified body number is empty", nil)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bodies/"+url.PathEscape(number), nil)
	if err != nil {
		return nil, NewLookupError(CategoryUnavailable, number, "build registry request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveLookupLatency(time.Since(start))
	if err != nil {
		return nil, transportError(number, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(number, err)
	}
	body, err := parseBodyResponse(number, resp.StatusCode, raw)
	if err != nil {
		return nil, err
	}
	if err := Verify(body, scopes, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

func parseBodyResponse(number string, status int, raw []byte) (*Body, error) {
	switch {
	case status == http.StatusNotFound:
		return nil, NewLookupError(CategoryNotFound, number, "notified body not registered", nil)
	case status == http.StatusGone:
		return nil, NewLookupError(CategoryExpired, number, "notified body withdrawn", nil)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, NewLookupError(CategoryUnauthorized, number, "registry rejected credentials", nil)
	case status == http.StatusTooManyRequests || status >= 500:
		return nil, NewLookupError(CategoryUnavailable, number, fmt.Sprintf("registry returned %d", status), nil)
	case status != http.StatusOK:
		return nil, NewLookupError(CategoryBadData, number, fmt.Sprintf("unexpected registry status %d", status), nil)
	}

	var r bodyResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, NewLookupError(CategoryBadData, number, "decode registry response", err)
	}
	if NormalizeNumber(r.Number) != number {
		return nil, NewLookupError(CategoryBadData, number, fmt.Sprintf("registry answered for body %q", r.Number), nil)
	}
	body := &Body{
		Number: number,
		Name:   r.Name,
		Status: Status(r.Status),
		Scopes: r.Scopes,
	}
	if r.ValidUntil != "" {
		t, err := time.Parse(time.RFC3339, r.ValidUntil)
		if err != nil {
			return nil, NewLookupError(CategoryBadData, number, "invalid valid_until", err)
		}
		body.ValidUntil = &t
	}
	return body, nil
}
