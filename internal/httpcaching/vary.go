// Vary header handling, per RFC 9110 section 12.5.5 and the rules for
// caches in RFC 9111 section 4.1.
//
// See https://datatracker.ietf.org/doc/html/rfc9110#section-12.5.5
// See https://datatracker.ietf.org/doc/html/rfc9111#section-4.1
package httpcaching

import (
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

func varyFieldNames(headers http.Header) []string {
	names := make([]string, 0)

	for _, vary := range headers["Vary"] {
		for field := range strings.SplitSeq(vary, ",") {
			if field = strings.TrimSpace(field); field != "" {
				names = append(names, field)
			}
		}
	}

	return names
}

// canonicalValue folds a multi-valued header into the single-line form
// used for comparisons, keeping nil for absent headers.
func canonicalValue(values []string) []string {
	if values == nil {
		return nil
	}
	return []string{strings.Join(values, ", ")}
}

// ExtractVaryHeaders captures, from the request, the headers the response
// declares it varies on. Headers absent from the request are recorded as
// nil so their absence is part of the match.
func ExtractVaryHeaders(reqHeaders, respHeaders http.Header) http.Header {
	captured := http.Header{}

	for _, name := range varyFieldNames(respHeaders) {
		captured[name] = canonicalValue(reqHeaders[name])
	}

	return captured
}

// MatchVaryHeaders reports whether the request carries the same values
// for the varied-on headers as the request the entry was stored under.
// A stored "*" never matches.
func MatchVaryHeaders(reqHeaders, varyHeaders http.Header, logger *zerolog.Logger) bool {
	if _, ok := varyHeaders["*"]; ok {
		return false
	}

	for name, stored := range varyHeaders {
		if current := canonicalValue(reqHeaders[name]); !slices.Equal(current, stored) {
			logger.Debug().
				Str("header", name).
				Strs("request", current).
				Strs("stored", stored).
				Msg("stored entry varies on a header the request does not match")
			return false
		}
	}

	return true
}
