package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"currency-rates-service/internal/application"
	"currency-rates-service/internal/domain"
	"currency-rates-service/internal/infrastructure/logx"
	"currency-rates-service/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

const (
	fiatRatesPath   = "/fiat-currency-rates"
	cryptoRatesPath = "/crypto-currency-rates"

	apiKeyHeader = "X-API-KEY"

	DefaultTimeout = 4 * time.Second
)

// Client is a one-shot fetcher for a single provider. The URL, headers
// and wire schema are fixed at construction; Fetch sends exactly the
// configured headers and nothing else.
type Client struct {
	Name    string
	URL     string
	Header  http.Header
	Timeout time.Duration
	HTTP    *http.Client

	// Now stamps observed_at per decoded record; tests override it.
	Now func() time.Time

	decode decodeFunc
}

type decodeFunc func(body io.Reader, now func() time.Time) ([]domain.RateObservation, error)

var _ application.UpstreamClient = (*Client)(nil)

// NewFiatClient targets <base>/fiat-currency-rates. The provider
// requires a static API key header.
func NewFiatClient(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client) *Client {
	h := http.Header{}
	h.Set(apiKeyHeader, apiKey)
	return &Client{
		Name:    "fiat",
		URL:     joinURL(baseURL, fiatRatesPath),
		Header:  h,
		Timeout: timeout,
		HTTP:    httpClient,
		decode:  decodeFiat,
	}
}

// NewCryptoClient targets <base>/crypto-currency-rates. No auth.
func NewCryptoClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	return &Client{
		Name:    "crypto",
		URL:     joinURL(baseURL, cryptoRatesPath),
		Timeout: timeout,
		HTTP:    httpClient,
		decode:  decodeCrypto,
	}
}

// Fetch performs one GET and decodes the JSON array body. The timeout
// covers the full round trip including the body read; there are no
// retries. Every failure mode maps to domain.ErrUpstreamUnavailable.
func (c *Client) Fetch(ctx context.Context) ([]domain.RateObservation, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := logx.L().With(zap.String("provider", c.Name), zap.String("url", c.URL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, c.fail(log, fmt.Errorf("create request: %w", err))
	}
	for k, vs := range c.Header {
		req.Header[k] = vs
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, c.fail(log, fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, c.fail(log, fmt.Errorf("status %d", resp.StatusCode))
	}

	now := c.Now
	if now == nil {
		now = time.Now
	}
	obs, err := c.decode(resp.Body, now)
	if err != nil {
		return nil, c.fail(log, fmt.Errorf("decode: %w", err))
	}

	metrics.UpstreamRequests.WithLabelValues(c.Name, "ok").Inc()
	log.Info("received upstream rates", zap.Int("count", len(obs)))
	return obs, nil
}

func (c *Client) fail(log *zap.Logger, cause error) error {
	metrics.UpstreamRequests.WithLabelValues(c.Name, "error").Inc()
	log.Error("upstream fetch failed", zap.Error(cause))
	return fmt.Errorf("%w: %s: %w", domain.ErrUpstreamUnavailable, c.Name, cause)
}

func joinURL(base, path string) string {
	u, err := url.Parse(base)
	if err != nil {
		return strings.TrimRight(base, "/") + path
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}
