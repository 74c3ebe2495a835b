package reputation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"devicegate/internal/integrity/metrics"
)

var tracer = otel.Tracer("devicegate/internal/integrity/reputation")

// Client fetches reputation payloads from the external provider
// (GET {base}/api/{ip}?key={credential}). The response body is returned
// verbatim, including provider error bodies; interpreting it is the parser's
// job. Concurrent lookups for the same IP are collapsed into one request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	group      singleflight.Group
}

// NewClient constructs a provider client with a bounded request timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

func (c *Client) Origin() Origin { return OriginNetwork }

func (c *Client) Fetch(ctx context.Context, ip string) (string, error) {
	body, err, _ := c.group.Do(ip, func() (any, error) {
		return c.fetch(ctx, ip)
	})
	if err != nil {
		return "", err
	}
	return body.(string), nil
}

func (c *Client) fetch(ctx context.Context, ip string) (string, error) {
	ctx, span := tracer.Start(ctx, "reputation.lookup")
	span.SetAttributes(attribute.String("reputation.ip", ip))
	defer span.End()

	start := time.Now()

	u := fmt.Sprintf("%s/api/%s?key=%s", c.baseURL, url.PathEscape(ip), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build reputation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ReputationLookupFailure()
		span.SetStatus(codes.Error, "transport failure")
		return "", fmt.Errorf("reputation lookup for %s: %w", ip, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ReputationLookupFailure()
		span.SetStatus(codes.Error, "read failure")
		return "", fmt.Errorf("read reputation response for %s: %w", ip, err)
	}

	metrics.ObserveReputationLookup(time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	// Non-2xx bodies are returned as-is; the parser decides whether they carry
	// a usable signal.
	return string(raw), nil
}
