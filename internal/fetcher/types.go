// Package fetcher implements the resource fetch pipeline: it builds
// outbound requests from renderer-issued resource requests, executes them
// over the shared transport, adapts the raw responses for the renderer and
// dispatches caching per URL strategy, falling back to cached data when
// the network is down.
package fetcher

import (
	"bytes"
	"io"
	"net/http"
)

// ResourceRequest is a resource request as issued by the embedded
// renderer. It is never mutated by the pipeline.
type ResourceRequest struct {
	URL     string
	Headers http.Header
}

// OutboundRequest is a fully prepared request ready for the transport.
// CacheOnly marks forced cache lookups that must never reach the network.
type OutboundRequest struct {
	Request   *http.Request
	CacheOnly bool
}

// TransportResponse is the raw result of a successful (2xx) exchange,
// with the body fully buffered.
type TransportResponse struct {
	StatusCode int
	Reason     string
	Headers    http.Header
	Body       []byte
}

// AdaptedResponse is a response shaped for consumption by the renderer.
type AdaptedResponse struct {
	MimeType   string
	Encoding   string
	StatusCode int
	Reason     string
	Headers    http.Header
	Body       []byte
}

// BodyStream exposes the buffered body as a fresh reader. Safe to call
// multiple times.
func (r *AdaptedResponse) BodyStream() io.Reader {
	return bytes.NewReader(r.Body)
}

// FetchResult carries the adapted response, if any, together with whether
// it was recovered from a cache after a network failure. Offline can be
// true even when Response is nil.
type FetchResult struct {
	Response *AdaptedResponse
	Offline  bool
}
