package fetcher_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hybridkit/navcache/internal/cookies"
	"github.com/hybridkit/navcache/internal/fetcher"
)

func newBridge(t *testing.T) *cookies.Bridge {
	t.Helper()

	bridge, err := cookies.NewBridge()
	require.NoError(t, err)

	return bridge
}

func TestBuildStripsConditionalHeaders(t *testing.T) {
	t.Parallel()

	builder := fetcher.NewRequestBuilder(newBridge(t))

	out, err := builder.Build(t.Context(), fetcher.ResourceRequest{
		URL: "https://example.com/page",
		Headers: http.Header{
			"If-Modified-Since": []string{"Sat, 01 Jan 2000 00:00:00 GMT"},
			"If-None-Match":     []string{"\"v1\""},
			"Accept":            []string{"text/html"},
		},
	}, false)
	require.NoError(t, err)

	require.Empty(t, out.Request.Header.Get("If-Modified-Since"))
	require.Empty(t, out.Request.Header.Get("If-None-Match"))
	require.Equal(t, "text/html", out.Request.Header.Get("Accept"))
}

func TestBuildInjectsCookiesFromTheBridge(t *testing.T) {
	t.Parallel()

	bridge := newBridge(t)
	site, err := url.Parse("https://example.com/")
	require.NoError(t, err)

	bridge.SetFromResponse(site, http.Header{
		"Set-Cookie": []string{"session=abc123"},
	})

	builder := fetcher.NewRequestBuilder(bridge)

	out, err := builder.Build(t.Context(), fetcher.ResourceRequest{
		URL: "https://example.com/page",
		// The renderer's own cookies lose against the shared jar
		Headers: http.Header{"Cookie": []string{"renderer=1"}},
	}, false)
	require.NoError(t, err)

	require.Equal(t, bridge.CookieHeader(out.Request.URL), out.Request.Header.Get("Cookie"))
	require.Equal(t, "session=abc123", out.Request.Header.Get("Cookie"))
}

func TestBuildMarksForcedRequestsCacheOnly(t *testing.T) {
	t.Parallel()

	builder := fetcher.NewRequestBuilder(newBridge(t))

	out, err := builder.Build(t.Context(), fetcher.ResourceRequest{
		URL: "https://example.com/page",
	}, true)
	require.NoError(t, err)

	require.True(t, out.CacheOnly)
	require.Contains(t, out.Request.Header.Get("Cache-Control"), "only-if-cached")
	require.Contains(t, out.Request.Header.Get("Cache-Control"), "max-stale=")
}

func TestBuildRejectsInvalidUrls(t *testing.T) {
	t.Parallel()

	builder := fetcher.NewRequestBuilder(newBridge(t))

	_, err := builder.Build(t.Context(), fetcher.ResourceRequest{URL: "://not-a-url"}, false)
	require.ErrorIs(t, err, fetcher.ErrInvalidRequest)
}
