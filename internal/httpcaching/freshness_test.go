package httpcaching

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hybridkit/navcache/internal/testutils"
)

func TestGetFreshnessLifetime(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		description string
		headers     http.Header
		expected    int
	}{
		{
			"s-maxage-precedence",
			http.Header{
				"Cache-Control": []string{"s-maxage=1, max-age=2"},
				"Expires":       []string{"Sun, 01 Jan 2012 12:00:00 GMT"},
			},
			1,
		},
		{
			"max-age-over-expires",
			http.Header{
				"Cache-Control": []string{"max-age=2"},
				"Expires":       []string{"Sun, 01 Jan 2012 12:00:00 GMT"},
			},
			2,
		},
		{
			"expires",
			http.Header{
				"Date":    []string{"Sun, 01 Jan 2012 11:00:00 GMT"},
				"Expires": []string{"Sun, 01 Jan 2012 12:00:00 GMT"},
			},
			3600,
		},
		{
			"default-if-invalid-expires",
			http.Header{
				"Expires": []string{"hi"},
			},
			0,
		},
		{
			"heuristic-last-modified",
			http.Header{
				"Date":          []string{"Sun, 01 Jan 2012 11:00:00 GMT"},
				"Last-Modified": []string{"Sun, 01 Jan 2012 01:00:00 GMT"},
			},
			3600,
		},
	} {
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			directives, err := ParseResponseDirectives(
				tc.headers["Cache-Control"],
				testutils.TestLogger(t),
			)
			require.NoError(t, err)
			freshness := getFreshnessLifetime(tc.headers, directives, testutils.TestLogger(t))
			require.Equal(t, time.Second*time.Duration(tc.expected), freshness)
		})
	}
}

func TestGetEstimatedResponseCreation(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	// The server reports an age of 60s on top of a 10s response delay, so
	// the response was created roughly 70s before it was received.
	created := GetEstimatedResponseCreation(
		http.Header{
			"Age":  []string{"60"},
			"Date": []string{now.Format(http.TimeFormat)},
		},
		now.Add(-10*time.Second),
		now,
		testutils.TestLogger(t),
	)
	require.WithinDuration(t, now.Add(-70*time.Second), created, time.Second)
}

func TestSatisfiesRequest(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		description    string
		respDirectives ResponseDirectives
		reqDirectives  RequestDirectives
		age            time.Duration
		expected       bool
	}{
		{
			"fresh",
			ResponseDirectives{SMaxAge: 300 * time.Second},
			RequestDirectives{},
			120 * time.Second,
			true,
		},
		{
			"stale",
			ResponseDirectives{SMaxAge: 30 * time.Second},
			RequestDirectives{},
			120 * time.Second,
			false,
		},
		{
			"stale-within-max-stale",
			ResponseDirectives{SMaxAge: 30 * time.Second},
			RequestDirectives{MaxStale: 100 * time.Second},
			120 * time.Second,
			true,
		},
		{
			"stale-beyond-max-stale",
			ResponseDirectives{SMaxAge: 30 * time.Second},
			RequestDirectives{MaxStale: 60 * time.Second},
			120 * time.Second,
			false,
		},
		{
			"stale-max-stale-unbounded",
			ResponseDirectives{SMaxAge: 30 * time.Second},
			RequestDirectives{MaxStaleAny: true},
			120 * time.Second,
			true,
		},
		{
			"fresh-but-older-than-max-age",
			ResponseDirectives{SMaxAge: 300 * time.Second},
			RequestDirectives{MaxAge: 60 * time.Second},
			120 * time.Second,
			false,
		},
		{
			"fresh-but-not-fresh-enough",
			ResponseDirectives{SMaxAge: 300 * time.Second},
			RequestDirectives{MinFresh: 240 * time.Second},
			120 * time.Second,
			false,
		},
		{
			"fresh-enough",
			ResponseDirectives{SMaxAge: 300 * time.Second},
			RequestDirectives{MinFresh: 120 * time.Second},
			120 * time.Second,
			true,
		},
	} {
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			age, ok := SatisfiesRequest(
				http.Header{},
				tc.respDirectives,
				tc.reqDirectives,
				time.Now().Add(-tc.age),
				testutils.TestLogger(t),
			)
			assert.Equal(t, tc.age, age)
			assert.Equal(t, tc.expected, ok)
		})
	}
}
