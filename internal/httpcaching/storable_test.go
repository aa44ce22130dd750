package httpcaching_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hybridkit/navcache/internal/httpcaching"
	"github.com/hybridkit/navcache/internal/testutils"
)

func TestResponseIsStorable(t *testing.T) {
	t.Parallel()

	for _, private := range []bool{true, false} {
		for _, tc := range []struct {
			description string
			reqHeaders  http.Header
			statusCode  int
			headers     http.Header
			expected    bool
		}{
			{"invalid-status-code", nil, http.StatusNotFound, nil, false},
			{"invalid-cache-control-header", nil, http.StatusOK, http.Header{"Cache-Control": []string{"max-age=hello"}}, false},
			{"no-store", nil, http.StatusOK, http.Header{"Cache-Control": []string{"no-store"}}, false},
			{"private", nil, http.StatusOK, http.Header{"Cache-Control": []string{"private"}}, private},
			{"authenticated-no-cache-control", http.Header{"Authorization": []string{"Bearer x"}}, http.StatusOK, nil, false},
			{"authenticated-max-age", http.Header{"Authorization": []string{"Bearer x"}}, http.StatusOK, http.Header{"Cache-Control": []string{"max-age=10"}}, private},
			{"authenticated-public", http.Header{"Authorization": []string{"Bearer x"}}, http.StatusOK, http.Header{"Cache-Control": []string{"public"}}, true},
			{"range-request", http.Header{"Range": []string{"bytes=0-100"}}, http.StatusOK, http.Header{"Cache-Control": []string{"public"}}, false},
			{"content-range", nil, http.StatusOK, http.Header{"Content-Range": []string{"bytes 0-100/200"}}, false},
			{"expires", nil, http.StatusOK, http.Header{"Expires": []string{"Sun, 01 Jan 2012 12:00:00 GMT"}}, true},
			{"last-modified", nil, http.StatusOK, http.Header{"Last-Modified": []string{"Fri, 15 Dec 2023 11:01:18 GMT"}}, true},
			{"last-modified-invalid", nil, http.StatusOK, http.Header{"Last-Modified": []string{"Wrong date"}}, false},
			{"no-information", nil, http.StatusOK, nil, false},
		} {
			t.Run(fmt.Sprintf("%s [private=%t]", tc.description, private), func(t *testing.T) {
				t.Parallel()

				resp := http.Response{StatusCode: tc.statusCode, Header: tc.headers}
				assert.Equal(
					t,
					tc.expected,
					httpcaching.IsStorable(tc.reqHeaders, &resp, private, testutils.TestLogger(t)),
				)
			})
		}
	}
}
