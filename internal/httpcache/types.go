package httpcache

import (
	"net/http"
	"time"
)

//go:generate go tool github.com/tinylib/msgp -io=false
//msgp:replace http.Header with:map[string][]string
//msgp:tuple CachedResponse

type CachedResponse struct {
	StatusCode             int
	Headers                http.Header
	VaryHeaders            http.Header
	Body                   []byte
	TimeAtResponseCreation time.Time
}

type CachedResponses []CachedResponse
