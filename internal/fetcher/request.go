package fetcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strconv"

	"github.com/hybridkit/navcache/internal/cookies"
)

var ErrInvalidRequest = errors.New("invalid resource request")

// Forced cache lookups accept arbitrarily stale entries.
const maxStaleSeconds = math.MaxInt32

// RequestBuilder turns renderer resource requests into outbound HTTP
// requests, injecting cookies and stripping renderer-provided validators.
type RequestBuilder struct {
	cookies *cookies.Bridge
}

func NewRequestBuilder(bridge *cookies.Bridge) *RequestBuilder {
	return &RequestBuilder{cookies: bridge}
}

func (b *RequestBuilder) Build(
	ctx context.Context,
	req ResourceRequest,
	cacheOnly bool,
) (OutboundRequest, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return OutboundRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	for name, values := range req.Headers {
		httpReq.Header[http.CanonicalHeaderKey(name)] = slices.Clone(values)
	}

	// The HTTP cache owns validation, renderer validators would make it
	// answer 304 to a client that cannot handle one.
	httpReq.Header.Del("If-Modified-Since")
	httpReq.Header.Del("If-None-Match")

	// The shared jar wins over whatever cookies the renderer carried
	if cookie := b.cookies.CookieHeader(httpReq.URL); cookie != "" {
		httpReq.Header.Set("Cookie", cookie)
	}

	if cacheOnly {
		httpReq.Header.Set(
			"Cache-Control",
			"only-if-cached, max-stale="+strconv.Itoa(maxStaleSeconds),
		)
	}

	return OutboundRequest{Request: httpReq, CacheOnly: cacheOnly}, nil
}
