// Package cookies holds the process-wide cookie store shared between
// outbound request construction and inbound response processing.
package cookies

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Bridge wraps a cookie jar keyed by URL. It is safe for concurrent use
// by multiple fetches.
type Bridge struct {
	jar *cookiejar.Jar
}

func NewBridge() (*Bridge, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &Bridge{jar}, nil
}

// CookieHeader returns the value to send as the Cookie header for u, or
// an empty string when no cookie applies.
func (b *Bridge) CookieHeader(u *url.URL) string {
	cookies := b.jar.Cookies(u)
	if len(cookies) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		pairs = append(pairs, cookie.Name+"="+cookie.Value)
	}
	return strings.Join(pairs, "; ")
}

// SetFromResponse persists the Set-Cookie headers of a response obtained
// for u.
func (b *Bridge) SetFromResponse(u *url.URL, headers http.Header) {
	if len(headers["Set-Cookie"]) == 0 {
		return
	}

	resp := http.Response{Header: headers}
	b.jar.SetCookies(u, resp.Cookies())
}
