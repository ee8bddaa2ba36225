package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"kam-store/internal/cart"
	"kam-store/internal/catalog"
	"kam-store/internal/checkout"
	"kam-store/internal/identity"
	"kam-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCookieName = "kam_cart_session"

// newTestServer wires the full HTTP surface over in-memory backends. The
// returned client carries a cookie jar so the cart session survives across
// requests, mirroring a browser.
func newTestServer(t *testing.T, adapter identity.Adapter) (*httptest.Server, *http.Client) {
	t.Helper()

	logger := zap.NewNop()
	carts := cart.NewManager(cart.NewMemorySlotStore(), "kam-cart", logger)
	repo := catalog.NewStaticRepository()
	processor := checkout.NewSimulatedProcessor(time.Millisecond)
	checkoutSvc := checkout.NewService(carts, processor, 1500, logger)

	if adapter == nil {
		adapter = identity.NewDisabledAdapter()
	}

	r := chi.NewRouter()
	NewCatalogHandler(repo, logger).RegisterRoutes(r)
	NewCartHandler(carts, repo, testCookieName, logger).RegisterRoutes(r)
	NewCheckoutHandler(checkoutSvc, testCookieName, logger).RegisterRoutes(r)
	NewAuthHandler(adapter, logger).RegisterRoutes(r, middleware.AuthMiddleware(adapter, logger))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return srv, &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, data
}

func decodeInto(t *testing.T, data []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out))
}

func newCookieClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
