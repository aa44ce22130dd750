// Package gateway exposes the fetch pipeline to the embedding renderer
// shell over a local HTTP endpoint.
package gateway

import (
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"github.com/hybridkit/navcache/internal/fetcher"
)

// OfflineHeader reports whether the answer was recovered from a cache
// after a network failure.
const OfflineHeader = "X-Navcache-Offline"

func RegisterHandler(mux *http.ServeMux, fetch *fetcher.Fetcher, policy fetcher.Policy) {
	mux.HandleFunc("GET /fetch", func(w http.ResponseWriter, r *http.Request) {
		handleFetch(w, r, fetch, policy)
	})
}

func handleFetch(
	w http.ResponseWriter,
	r *http.Request,
	fetch *fetcher.Fetcher,
	policy fetcher.Policy,
) {
	target := r.URL.Query().Get("url")
	if target == "" {
		http.Error(w, "missing 'url' query parameter", http.StatusBadRequest)
		return
	}

	result := fetch.Fetch(r.Context(), policy, fetcher.ResourceRequest{
		URL:     target,
		Headers: r.Header,
	})

	w.Header().Set(OfflineHeader, strconv.FormatBool(result.Offline))

	if result.Response == nil {
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	for name, values := range result.Response.Headers {
		// The body is served from the buffered copy
		if name == "Content-Length" || name == "Content-Type" {
			continue
		}
		w.Header()[name] = values
	}
	w.Header().Set("Content-Type", result.Response.MimeType)

	w.WriteHeader(result.Response.StatusCode)

	if _, err := io.Copy(w, result.Response.BodyStream()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error sending response to client")
	}
}
