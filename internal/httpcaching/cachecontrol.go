// Implements the parsing for RFC 9111 section 5.2 'Cache-Control' directives
// in addition to RFC 8246 and 5861
//
//	See https://datatracker.ietf.org/doc/html/rfc9111
//	See https://datatracker.ietf.org/doc/html/rfc8246
//	See https://datatracker.ietf.org/doc/html/rfc5861
package httpcaching

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrInvalidArgument = errors.New("invalid argument")

type ResponseDirectives struct {
	Immutable            bool
	MaxAge               time.Duration
	MustRevalidate       bool
	MustUnderstand       bool
	NoCache              bool
	NoStore              bool
	NoTransform          bool
	Private              bool
	ProxyRevalidate      bool
	Public               bool
	SMaxAge              time.Duration
	StaleWhileRevalidate time.Duration
	StaleIfError         time.Duration
}

// RequestDirectives covers RFC 9111 section 5.2.1. MaxStaleAny is set when
// the max-stale directive carries no argument, meaning any staleness is
// acceptable.
type RequestDirectives struct {
	MaxAge       time.Duration
	MaxStale     time.Duration
	MaxStaleAny  bool
	MinFresh     time.Duration
	NoCache      bool
	NoStore      bool
	OnlyIfCached bool
}

func parseSeconds(key, val string) (time.Duration, error) {
	v, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w for directive '%s': %s", ErrInvalidArgument, key, err)
	}
	return time.Duration(v) * time.Second, nil
}

func splitDirectives(header []string, handle func(key, val string, hasVal bool) error) error {
	seen := make(map[string]struct{}, 0)

	for _, hdr := range header {
		for directive := range strings.SplitSeq(hdr, ",") {
			key, val, found := strings.Cut(strings.TrimSpace(directive), "=")
			if _, ok := seen[key]; ok {
				continue // Duplicate entry, only the first value is valid
			}
			seen[key] = struct{}{}

			if err := handle(key, val, found); err != nil {
				return err
			}
		}
	}

	return nil
}

func ParseResponseDirectives(
	header []string,
	logger *zerolog.Logger,
) (ResponseDirectives, error) {
	response := ResponseDirectives{}

	err := splitDirectives(header, func(key, val string, hasVal bool) error {
		var err error

		if hasVal {
			switch key {
			case "max-age":
				response.MaxAge, err = parseSeconds(key, val)
			case "s-maxage":
				response.SMaxAge, err = parseSeconds(key, val)
			case "stale-while-revalidate":
				response.StaleWhileRevalidate, err = parseSeconds(key, val)
			case "stale-if-error":
				response.StaleIfError, err = parseSeconds(key, val)
			// no-cache and private can be qualified or unqualified,
			// we only implement the unqualified version as it is simpler
			case "no-cache":
				logger.Trace().
					Str("directive", key).
					Msg("a qualified version of 'no-cache' has been encountered")
				response.NoCache = true
			case "private":
				logger.Trace().
					Str("directive", key).
					Msg("a qualified version of 'private' has been encountered")
				response.Private = true
			default:
				logger.Warn().
					Str("directive", key).
					Msg("received an unknown directive in Cache-Control header")
			}
			return err
		}

		switch key {
		case "immutable":
			response.Immutable = true
		case "must-revalidate":
			response.MustRevalidate = true
		case "must-understand":
			response.MustUnderstand = true
		case "no-cache":
			response.NoCache = true
		case "no-store":
			response.NoStore = true
		case "no-transform":
			response.NoTransform = true
		case "private":
			response.Private = true
		case "proxy-revalidate":
			response.ProxyRevalidate = true
		case "public":
			response.Public = true
		default:
			logger.Warn().
				Str("directive", key).
				Msg("received an unknown directive in Cache-Control header")
		}
		return nil
	})

	return response, err
}

func ParseRequestDirectives(
	header []string,
	logger *zerolog.Logger,
) (RequestDirectives, error) {
	request := RequestDirectives{}

	err := splitDirectives(header, func(key, val string, hasVal bool) error {
		var err error

		if hasVal {
			switch key {
			case "max-age":
				request.MaxAge, err = parseSeconds(key, val)
			case "max-stale":
				request.MaxStale, err = parseSeconds(key, val)
			case "min-fresh":
				request.MinFresh, err = parseSeconds(key, val)
			default:
				logger.Warn().
					Str("directive", key).
					Msg("received an unknown directive in Cache-Control header")
			}
			return err
		}

		switch key {
		case "max-stale":
			request.MaxStaleAny = true
		case "no-cache":
			request.NoCache = true
		case "no-store":
			request.NoStore = true
		case "only-if-cached":
			request.OnlyIfCached = true
		case "no-transform":
			// Accepted and ignored, this cache never transforms payloads
		default:
			logger.Warn().
				Str("directive", key).
				Msg("received an unknown directive in Cache-Control header")
		}
		return nil
	})

	return request, err
}
