// Implementation for RFC 9111: https://datatracker.ietf.org/doc/html/rfc9111
//
// Useful links:
//   - RFC 9110 (HTTP semantics): https://datatracker.ietf.org/doc/html/rfc9110
package httpcaching

import (
	"net/http"

	"github.com/rs/zerolog"
)

// IsStorable reports whether a response may be stored by this cache, per
// RFC 9111 section 3, judged over the request/response header pair.
func IsStorable(
	reqHeaders http.Header,
	resp *http.Response,
	isPrivate bool,
	logger *zerolog.Logger,
) bool {
	// A cache MUST NOT store a response to a request unless:
	//
	// - the request method is understood by the cache;
	// - the response status code is final;
	// - the no-store cache directive is not present in the response;
	// - if the cache is shared: the private response directive is not
	//   present, and the Authorization header field is not present in the
	//   request unless a response directive explicitly allows shared
	//   caching; and
	// - the response contains either explicit freshness information or a
	//   validator usable for heuristic freshness.

	// FIXME: can we store other status codes?
	if resp.StatusCode != http.StatusOK {
		return false
	}

	directives, err := ParseResponseDirectives(resp.Header.Values("Cache-Control"), logger)
	if err != nil {
		logger.Warn().Err(err).Msg("unable to parse cache control directives")
		return false
	}

	if directives.NoStore {
		return false
	}

	if !isPrivate {
		if directives.Private {
			return false
		}

		if _, ok := reqHeaders["Authorization"]; ok {
			if !directives.MustRevalidate && !directives.Public && directives.SMaxAge == 0 {
				return false
			}
		}
	}

	if _, ok := reqHeaders["Range"]; ok {
		return false
	}
	if _, ok := resp.Header["Content-Range"]; ok {
		return false
	}

	// Reasons it could be stored
	if directives.Public || directives.MaxAge != 0 || directives.SMaxAge != 0 {
		return true
	}
	if isPrivate && directives.Private {
		return true
	}

	if _, ok := resp.Header["Expires"]; ok {
		return true
	}

	// If the response has a Last-Modified header field, caches are
	// encouraged to use a heuristic expiration value that is no more than
	// some fraction of the interval since that time. A typical setting of
	// this fraction might be 10%.
	if val := resp.Header.Get("Last-Modified"); val != "" {
		if _, err = http.ParseTime(val); err == nil {
			return true
		}
		logger.Warn().Err(err).Msg("unable to parse Last-Modified header")
	}

	// Be safe, don't store otherwise
	return false
}
