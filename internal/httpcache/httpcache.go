// Package httpcache provides the transport-managed HTTP cache: an
// RFC 9111 caching layer implemented as an http.RoundTripper wrapped
// around the pooled transport.
//
// The layer deliberately does not absorb upstream I/O failures by serving
// stale entries itself. Offline recovery belongs to the fetch dispatcher,
// which retries with a cache-only request when the network is down.
package httpcache

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/zeebo/blake3"

	"github.com/hybridkit/navcache/internal/httpcaching"
	"github.com/hybridkit/navcache/internal/httpheaders"
	"github.com/hybridkit/navcache/internal/store"
)

type Transport struct {
	upstream http.RoundTripper
	db       *store.Store[CachedResponses, *CachedResponses]
	logger   *zerolog.Logger
}

func New(
	upstream http.RoundTripper,
	cachePath string,
	logger *zerolog.Logger,
) (*Transport, error) {
	// Ensure the store logger is not too chatty
	storeLogger := logger.With().Str("component", "httpcache").Logger()
	if storeLogger.GetLevel() < zerolog.WarnLevel {
		storeLogger = storeLogger.Level(zerolog.WarnLevel)
	}

	db, err := store.Open[CachedResponses](path.Join(cachePath, "transport"), &storeLogger)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the transport cache: %w", err)
	}

	return &Transport{upstream, db, logger}, nil
}

func (t *Transport) Close() error {
	return t.db.Close()
}

func cacheKey(req *http.Request) string {
	sum := blake3.Sum256([]byte(req.Method + "+" + req.URL.String()))
	return hex.EncodeToString(sum[:])
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := t.requestLogger(req)

	// We only support caching GET requests
	if req.Method != http.MethodGet {
		return t.upstream.RoundTrip(req)
	}

	directives, err := httpcaching.ParseRequestDirectives(
		req.Header.Values("Cache-Control"),
		logger,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("unable to parse request cache control directives")
	}

	key := cacheKey(req)

	dbEntry, err := t.db.Get(key)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		logger.Debug().Err(err).Msg("unable to retrieve entry from the transport cache")
	}

	if directives.OnlyIfCached {
		// RFC 9111 section 5.2.1.7: answer with a stored response or a
		// 504, never with the network.
		if dbEntry != nil {
			if resp := t.serveFromEntry(req, dbEntry, directives, logger); resp != nil {
				logger.Debug().Msg("serving cache-only response from the transport cache")
				return resp, nil
			}
		}
		logger.Debug().Msg("cache-only request missed the transport cache")
		return newGatewayTimeout(req), nil
	}

	if dbEntry != nil && !directives.NoCache {
		if resp := t.serveFromEntry(req, dbEntry, directives, logger); resp != nil {
			logger.Debug().Msg("serving response from the transport cache")
			return resp, nil
		}
	}

	hasValidators := false
	if dbEntry != nil {
		hasValidators = addValidators(req, dbEntry)
	}

	removeHopByHopHeaders(req.Header)

	timeAtRequestCreated := time.Now().UTC()
	resp, err := t.upstream.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	timeAtResponseReceived := time.Now().UTC()

	removeHopByHopHeaders(resp.Header)

	// Ensure the Date header is valid,
	// as per https://datatracker.ietf.org/doc/html/rfc9110#name-date
	if _, err := http.ParseTime(resp.Header.Get("Date")); err != nil {
		logger.Debug().Err(err).Msg("invalid Date header replaced")
		resp.Header["Date"] = []string{time.Now().UTC().Format(http.TimeFormat)}
	}

	if hasValidators && resp.StatusCode == http.StatusNotModified {
		refreshed := t.refreshEntry(
			key,
			dbEntry,
			resp,
			timeAtRequestCreated,
			timeAtResponseReceived,
			logger,
		)
		if refreshed != nil {
			logger.Debug().Msg("entry re-validated, serving from the transport cache")
			return refreshed, nil
		}
	}

	if directives.NoStore || !httpcaching.IsStorable(req.Header, resp, true, logger) {
		logger.Debug().Msg("response is not storable")
		return resp, nil
	}

	return t.ingest(
		key,
		req,
		dbEntry,
		resp,
		timeAtRequestCreated,
		timeAtResponseReceived,
		logger,
	)
}

func (t *Transport) requestLogger(req *http.Request) *zerolog.Logger {
	if logger := zerolog.Ctx(req.Context()); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return t.logger
}

func (t *Transport) serveFromEntry(
	req *http.Request,
	dbEntry *store.Entry[CachedResponses],
	reqDirectives httpcaching.RequestDirectives,
	logger *zerolog.Logger,
) *http.Response {
	var best *CachedResponse

	for i := range dbEntry.Value {
		candidate := &dbEntry.Value[i]
		if !httpcaching.MatchVaryHeaders(req.Header, candidate.VaryHeaders, logger) {
			continue
		}
		if best == nil || candidate.TimeAtResponseCreation.After(best.TimeAtResponseCreation) {
			best = candidate
		}
	}

	if best == nil {
		return nil
	}

	respDirectives, err := httpcaching.ParseResponseDirectives(
		best.Headers["Cache-Control"],
		logger,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("unable to parse cache control directives")
		return nil
	}

	// no-cache and must-revalidate both forbid serving without
	// revalidation, even for cache-only requests.
	if respDirectives.NoCache || respDirectives.MustRevalidate {
		return nil
	}

	age, ok := httpcaching.SatisfiesRequest(
		best.Headers,
		respDirectives,
		reqDirectives,
		best.TimeAtResponseCreation,
		logger,
	)
	if !ok {
		return nil
	}

	headers := best.Headers.Clone()
	headers.Set("Age", strconv.FormatFloat(age.Seconds(), 'f', 0, 64))

	return &http.Response{
		StatusCode:    best.StatusCode,
		Status:        fmt.Sprintf("%d %s", best.StatusCode, http.StatusText(best.StatusCode)),
		Header:        headers,
		Body:          io.NopCloser(bytes.NewReader(best.Body)),
		ContentLength: int64(len(best.Body)),
		Request:       req,
	}
}

func addValidators(req *http.Request, dbEntry *store.Entry[CachedResponses]) bool {
	etags := []string{}
	lastModified := ""

	for _, entry := range dbEntry.Value {
		etags = append(etags, entry.Headers["Etag"]...)
		if lm := entry.Headers.Get("Last-Modified"); lm != "" {
			lastModified = lm
		}
	}

	if len(etags) != 0 {
		// Some servers don't support more than one If-None-Match header
		req.Header["If-None-Match"] = []string{strings.Join(etags, ", ")}
	}

	if lastModified != "" {
		req.Header["If-Modified-Since"] = []string{lastModified}
	}

	return len(etags) != 0 || lastModified != ""
}

func (t *Transport) refreshEntry(
	key string,
	dbEntry *store.Entry[CachedResponses],
	resp *http.Response,
	timeAtRequestCreated, timeAtResponseReceived time.Time,
	logger *zerolog.Logger,
) *http.Response {
	idx := -1

	if etag := resp.Header.Get("Etag"); etag != "" {
		for i := range dbEntry.Value {
			if httpheaders.EtagsMatch(etag, dbEntry.Value[i].Headers.Get("Etag")) {
				idx = i
				break
			}
		}
	}

	if idx == -1 {
		if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
			for i := range dbEntry.Value {
				if lastModified == dbEntry.Value[i].Headers.Get("Last-Modified") {
					idx = i
					break
				}
			}
		}
	}

	if idx == -1 {
		logger.Warn().Msg("re-validation response matches no stored entry")
		return nil
	}

	cached := &dbEntry.Value[idx]

	for header, val := range resp.Header {
		if header != "Content-Length" {
			cached.Headers[header] = val
		}
	}
	cached.TimeAtResponseCreation = httpcaching.GetEstimatedResponseCreation(
		resp.Header,
		timeAtRequestCreated,
		timeAtResponseReceived,
		logger,
	)

	if err := t.db.Save(key, dbEntry); err != nil {
		logger.Error().Err(err).Msg("error updating the entry in the transport cache")
	}

	if err := resp.Body.Close(); err != nil {
		logger.Error().Err(err).Msg("error closing upstream response body")
	}

	headers := cached.Headers.Clone()
	age := httpcaching.GetCurrentAge(cached.TimeAtResponseCreation)
	headers.Set("Age", strconv.FormatFloat(age.Seconds(), 'f', 0, 64))

	return &http.Response{
		StatusCode:    http.StatusOK,
		Status:        "200 OK",
		Header:        headers,
		Body:          io.NopCloser(bytes.NewReader(cached.Body)),
		ContentLength: int64(len(cached.Body)),
	}
}

func (t *Transport) ingest(
	key string,
	req *http.Request,
	dbEntry *store.Entry[CachedResponses],
	resp *http.Response,
	timeAtRequestCreated, timeAtResponseReceived time.Time,
	logger *zerolog.Logger,
) (*http.Response, error) {
	body, readErr := io.ReadAll(resp.Body)
	if err := resp.Body.Close(); err != nil {
		logger.Error().Err(err).Msg("error closing upstream response body")
	}
	if readErr != nil {
		return nil, fmt.Errorf("unable to read upstream response body: %w", readErr)
	}

	cached := CachedResponse{
		StatusCode:  resp.StatusCode,
		Headers:     resp.Header.Clone(),
		VaryHeaders: httpcaching.ExtractVaryHeaders(req.Header, resp.Header),
		Body:        body,
		TimeAtResponseCreation: httpcaching.GetEstimatedResponseCreation(
			resp.Header,
			timeAtRequestCreated,
			timeAtResponseReceived,
			logger,
		),
	}

	var err error
	if dbEntry != nil {
		// Refetches of the same Vary key replace the stored response, so
		// validator-less entries don't accumulate on every refetch.
		replaced := false
		for i := range dbEntry.Value {
			if httpcaching.MatchVaryHeaders(req.Header, dbEntry.Value[i].VaryHeaders, logger) {
				dbEntry.Value[i] = cached
				replaced = true
				break
			}
		}
		if !replaced {
			dbEntry.Value = append(dbEntry.Value, cached)
		}
		err = t.db.Save(key, dbEntry)
	} else {
		err = t.db.New(key, CachedResponses{cached})
	}

	if err != nil {
		logger.Error().Err(err).Msg("error saving entry in the transport cache")
	} else {
		logger.Debug().Msg("response saved in the transport cache")
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

func newGatewayTimeout(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode:    http.StatusGatewayTimeout,
		Status:        "504 Gateway Timeout",
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{},
		Body:          io.NopCloser(bytes.NewReader(nil)),
		ContentLength: 0,
		Request:       req,
	}
}

func removeHopByHopHeaders(headers http.Header) {
	// Implements RFC 9111 section 3.1

	// The Connection header field and fields whose names are listed in it
	// are required by Section 7.6.1 of RFC 9110 to be removed before
	// forwarding the message.
	headers.Del("Connection")
	headers.Del("Proxy-Connection")
	headers.Del("Keep-Alive")
	headers.Del("Te")
	headers.Del("Trailer")
	headers.Del("Transfer-Encoding")
	headers.Del("Upgrade")

	// Header fields that are specific to the proxy that a cache uses when
	// forwarding a request MUST NOT be stored.
	headers.Del("Proxy-Authenticate")
	headers.Del("Proxy-Authentication-Info")
	headers.Del("Proxy-Authorization")
}
