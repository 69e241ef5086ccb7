package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"currency-rates-service/internal/domain"
	"currency-rates-service/internal/infrastructure/upstream"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFiatClient_FetchHappyPath(t *testing.T) {
	t.Parallel()
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-KEY")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"currency":"USD","rate":123.45},{"currency":"EUR","rate":234.56}]`))
	}))
	defer srv.Close()

	c := upstream.NewFiatClient(srv.URL, "secret-key", 2*time.Second, srv.Client())
	obs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/fiat-currency-rates", gotPath)
	require.Equal(t, "secret-key", gotKey)
	require.Len(t, obs, 2)
	require.Equal(t, "USD", obs[0].Currency)
	require.Equal(t, "123.45", obs[0].Rate.String())
	require.Equal(t, "234.56", obs[1].Rate.String())
	require.False(t, obs[0].ObservedAt.IsZero())
}

func TestCryptoClient_FetchMapsNameAndValue(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/crypto-currency-rates", r.URL.Path)
		require.Empty(t, r.Header.Get("X-API-KEY"))
		w.Write([]byte(`[{"name":"BTC","value":54321.00},{"name":"ETH","value":2345.67}]`))
	}))
	defer srv.Close()

	c := upstream.NewCryptoClient(srv.URL, 2*time.Second, srv.Client())
	obs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, obs, 2)
	require.Equal(t, "BTC", obs[0].Currency)
	require.True(t, obs[0].Rate.Equal(decimal.RequireFromString("54321.00")))
	require.Equal(t, int32(-2), obs[0].Rate.Exponent())
	require.Equal(t, "ETH", obs[1].Currency)
}

func TestClient_UnknownFieldsIgnored(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"currency":"USD","rate":1.5,"source":"x","stale":false}]`))
	}))
	defer srv.Close()

	c := upstream.NewFiatClient(srv.URL, "secret-key", 2*time.Second, srv.Client())
	obs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, obs, 1)
}

func TestClient_EmptyArrayIsSuccess(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := upstream.NewCryptoClient(srv.URL, 2*time.Second, srv.Client())
	obs, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, obs)
}

func TestClient_Non2xxIsUpstreamUnavailable(t *testing.T) {
	t.Parallel()
	for _, code := range []int{401, 404, 500, 503} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		c := upstream.NewFiatClient(srv.URL, "secret-key", 2*time.Second, srv.Client())
		_, err := c.Fetch(context.Background())
		require.ErrorIs(t, err, domain.ErrUpstreamUnavailable, "status %d", code)
		srv.Close()
	}
}

func TestClient_MalformedRecordDiscardsBatch(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"missing rate":     `[{"currency":"USD"}]`,
		"missing currency": `[{"rate":1.5}]`,
		"negative rate":    `[{"currency":"USD","rate":-1}]`,
		"not an array":     `{"currency":"USD","rate":1.5}`,
		"truncated body":   `[{"currency":"USD","rate":1.5}`,
	}
	for name, body := range cases {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c := upstream.NewFiatClient(srv.URL, "secret-key", 2*time.Second, srv.Client())
			_, err := c.Fetch(context.Background())
			require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		})
	}
}

func TestClient_TimeoutIsUpstreamUnavailable(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := upstream.NewFiatClient(srv.URL, "secret-key", 100*time.Millisecond, srv.Client())
	start := time.Now()
	_, err := c.Fetch(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_TimeoutCoversBodyRead(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Headers arrive promptly, the body stalls past the deadline.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"currency":"USD",`))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := upstream.NewFiatClient(srv.URL, "secret-key", 100*time.Millisecond, srv.Client())
	_, err := c.Fetch(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
