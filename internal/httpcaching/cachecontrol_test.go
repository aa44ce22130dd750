package httpcaching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hybridkit/navcache/internal/httpcaching"
	"github.com/hybridkit/navcache/internal/testutils"
)

func TestCanParseValidResponseDirectives(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		header   string
		expected httpcaching.ResponseDirectives
	}{
		{"immutable", httpcaching.ResponseDirectives{Immutable: true}},
		{"max-age=123", httpcaching.ResponseDirectives{MaxAge: 123 * time.Second}},
		{"must-revalidate", httpcaching.ResponseDirectives{MustRevalidate: true}},
		{"must-understand", httpcaching.ResponseDirectives{MustUnderstand: true}},
		{"no-cache", httpcaching.ResponseDirectives{NoCache: true}},
		{"no-cache=Set-Cookie", httpcaching.ResponseDirectives{NoCache: true}},
		{"no-store", httpcaching.ResponseDirectives{NoStore: true}},
		{"no-transform", httpcaching.ResponseDirectives{NoTransform: true}},
		{"private", httpcaching.ResponseDirectives{Private: true}},
		{"private=Set-Cookie", httpcaching.ResponseDirectives{Private: true}},
		{"proxy-revalidate", httpcaching.ResponseDirectives{ProxyRevalidate: true}},
		{"public", httpcaching.ResponseDirectives{Public: true}},
		{"s-maxage=12", httpcaching.ResponseDirectives{SMaxAge: 12 * time.Second}},
		{"stale-while-revalidate=10", httpcaching.ResponseDirectives{StaleWhileRevalidate: 10 * time.Second}},
		{"stale-if-error=10", httpcaching.ResponseDirectives{StaleIfError: 10 * time.Second}},
	} {
		t.Run(tc.header, func(t *testing.T) {
			t.Parallel()

			result, err := httpcaching.ParseResponseDirectives(
				[]string{tc.header},
				testutils.TestLogger(t),
			)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestErrorsOnInvalidResponseDirectives(t *testing.T) {
	t.Parallel()

	for _, header := range []string{
		"max-age=hello",
		"s-maxage=hello",
		"stale-while-revalidate=hello",
		"stale-if-error=hello",
	} {
		t.Run(header, func(t *testing.T) {
			t.Parallel()

			_, err := httpcaching.ParseResponseDirectives(
				[]string{header},
				testutils.TestLogger(t),
			)
			require.ErrorIs(t, err, httpcaching.ErrInvalidArgument)
		})
	}
}

func TestIgnoresUnknownDirectives(t *testing.T) {
	t.Parallel()

	result, err := httpcaching.ParseResponseDirectives(
		[]string{"unknown"},
		testutils.TestLogger(t),
	)
	require.NoError(t, err)
	assert.Equal(t, httpcaching.ResponseDirectives{}, result)
}

func TestCanComposeMultipleHeaders(t *testing.T) {
	t.Parallel()

	result, err := httpcaching.ParseResponseDirectives(
		[]string{"max-age=123", "must-revalidate, no-cache"},
		testutils.TestLogger(t),
	)
	require.NoError(t, err)
	assert.Equal(
		t,
		httpcaching.ResponseDirectives{
			MaxAge:         123 * time.Second,
			MustRevalidate: true,
			NoCache:        true,
		},
		result,
	)
}

func TestCanParseValidRequestDirectives(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		header   string
		expected httpcaching.RequestDirectives
	}{
		{"max-age=10", httpcaching.RequestDirectives{MaxAge: 10 * time.Second}},
		{"max-stale", httpcaching.RequestDirectives{MaxStaleAny: true}},
		{"max-stale=30", httpcaching.RequestDirectives{MaxStale: 30 * time.Second}},
		{"min-fresh=5", httpcaching.RequestDirectives{MinFresh: 5 * time.Second}},
		{"no-cache", httpcaching.RequestDirectives{NoCache: true}},
		{"no-store", httpcaching.RequestDirectives{NoStore: true}},
		{"only-if-cached", httpcaching.RequestDirectives{OnlyIfCached: true}},
		{
			"only-if-cached, max-stale",
			httpcaching.RequestDirectives{OnlyIfCached: true, MaxStaleAny: true},
		},
	} {
		t.Run(tc.header, func(t *testing.T) {
			t.Parallel()

			result, err := httpcaching.ParseRequestDirectives(
				[]string{tc.header},
				testutils.TestLogger(t),
			)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestErrorsOnInvalidRequestDirectives(t *testing.T) {
	t.Parallel()

	_, err := httpcaching.ParseRequestDirectives(
		[]string{"max-stale=hello"},
		testutils.TestLogger(t),
	)
	require.ErrorIs(t, err, httpcaching.ErrInvalidArgument)
}
