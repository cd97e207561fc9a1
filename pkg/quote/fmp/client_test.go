package fmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scraper-api/pkg/quote/ratelimit"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestQuoteSuccess(t *testing.T) {
	var gotPath, gotUA, gotAccept string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[{"symbol":"AAPL","price":150.253,"change":1.347,"changesPercentage":0.905}]`))
	})

	q, err := client.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	require.Equal(t, "/quote/AAPL", gotPath)
	require.Contains(t, gotUA, "QuantevoBot")
	require.Equal(t, "application/json", gotAccept)

	require.Equal(t, "AAPL", q.Symbol)
	require.Equal(t, 150.25, q.Price)
	require.Equal(t, 1.35, q.Change)
	require.Equal(t, 0.91, q.ChangePercent)
	require.Equal(t, "financialmodelingprep", q.Source)
	require.WithinDuration(t, time.Now(), q.Timestamp, 5*time.Second)
}

func TestQuoteAPIKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("apikey")
		w.Write([]byte(`[{"symbol":"AAPL","price":150.25}]`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithAPIKey("secret"))
	_, err := client.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "secret", gotKey)
}

func TestQuoteEmptyArray(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.Quote(context.Background(), "ZZZZ")
	require.ErrorIs(t, err, ErrNoData)
	require.Contains(t, err.Error(), "ZZZZ")
}

func TestQuoteStatusError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusForbidden, se.Code)
	require.Equal(t, "AAPL", se.Symbol)
}

func TestQuoteMalformedBody(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.Quote(context.Background(), "AAPL")
	var pe *PayloadError
	require.ErrorAs(t, err, &pe)
	require.Contains(t, pe.Reason, "malformed")
}

func TestQuoteBadPayloads(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantReason string
	}{
		{"missing price", `[{"symbol":"AAPL","change":1.5}]`, "missing price"},
		{"null price", `[{"symbol":"AAPL","price":null}]`, "missing price"},
		{"zero price", `[{"symbol":"AAPL","price":0}]`, "not positive"},
		{"negative price", `[{"symbol":"AAPL","price":-4.2}]`, "not positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})

			_, err := client.Quote(context.Background(), "AAPL")
			var pe *PayloadError
			require.ErrorAs(t, err, &pe)
			require.Contains(t, pe.Reason, tc.wantReason)
		})
	}
}

func TestQuoteContextCanceled(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Quote(ctx, "AAPL")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQuoteLimiterSpacesCalls(t *testing.T) {
	const interval = 30 * time.Millisecond
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"symbol":"AAPL","price":150.25}]`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithLimiter(ratelimit.NewMinInterval(interval)),
	)

	started := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Quote(context.Background(), "AAPL")
		require.NoError(t, err)
	}
	require.GreaterOrEqual(t, time.Since(started), 2*interval)
}

func TestRound2(t *testing.T) {
	require.Equal(t, 150.25, round2(150.253))
	require.Equal(t, 1.35, round2(1.347))
	require.Equal(t, -1.35, round2(-1.347))
	require.Equal(t, 0.0, round2(0.004))
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Symbol: "AAPL", Code: 429}
	require.Contains(t, err.Error(), "AAPL")
	require.Contains(t, err.Error(), "429")
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient()
	require.Equal(t, defaultBaseURL, c.baseURL)
	require.NotNil(t, c.httpClient)
	require.Equal(t, defaultHTTPTimeout, c.httpClient.Timeout)

	c = NewClient(WithBaseURL("https://example.com/api/"))
	require.Equal(t, "https://example.com/api", c.baseURL)

	var unused *http.Client
	c = NewClient(WithHTTPClient(unused))
	require.NotNil(t, c.httpClient)
}
