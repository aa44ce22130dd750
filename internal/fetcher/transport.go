package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hybridkit/navcache/internal/cookies"
	"github.com/hybridkit/navcache/internal/httpcaching"
)

// TransportExecutor runs outbound requests on the shared pooled client
// and buffers successful response bodies so the connection is released
// deterministically.
type TransportExecutor struct {
	client  *http.Client
	cookies *cookies.Bridge
	logger  *zerolog.Logger
}

func NewTransportExecutor(
	client *http.Client,
	bridge *cookies.Bridge,
	logger *zerolog.Logger,
) *TransportExecutor {
	return &TransportExecutor{client: client, cookies: bridge, logger: logger}
}

// Execute performs the exchange. Non-2xx responses yield (nil, nil) with
// the body drained. Network failures, including mid-transfer read errors,
// yield an error.
func (e *TransportExecutor) Execute(out OutboundRequest) (*TransportResponse, error) {
	resp, err := e.client.Do(out.Request)
	if err != nil {
		return nil, fmt.Errorf("unable to execute request for %s: %w", out.Request.URL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		if err := resp.Body.Close(); err != nil {
			e.logger.Warn().Err(err).Msg("error closing response body")
		}
		e.logger.Debug().
			Str("url", out.Request.URL.String()).
			Int("status", resp.StatusCode).
			Msg("upstream answered with a non-success status")
		return nil, nil
	}

	body, readErr := io.ReadAll(resp.Body)
	if err := resp.Body.Close(); err != nil {
		e.logger.Warn().Err(err).Msg("error closing response body")
	}
	if readErr != nil {
		return nil, fmt.Errorf(
			"unable to read response body for %s: %w",
			out.Request.URL,
			readErr,
		)
	}

	// Forced cache lookups never write cookies back
	if !out.CacheOnly {
		e.cookies.SetFromResponse(out.Request.URL, resp.Header)
	}

	if !httpcaching.IsStorable(out.Request.Header, resp, true, e.logger) {
		e.logger.Debug().
			Str("url", out.Request.URL.String()).
			Msg("response is not cacheable")
	}

	return &TransportResponse{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp.Status),
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

func reasonPhrase(status string) string {
	_, reason, _ := strings.Cut(status, " ")
	return reason
}
