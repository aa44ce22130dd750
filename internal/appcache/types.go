package appcache

import (
	"net/http"

	"github.com/hybridkit/navcache/internal/fetcher"
)

//go:generate go tool github.com/tinylib/msgp -io=false
//msgp:replace http.Header with:map[string][]string
//msgp:tuple StoredResponse

// StoredResponse is the persisted form of an adapted response.
type StoredResponse struct {
	MimeType   string
	Encoding   string
	StatusCode int
	Reason     string
	Headers    http.Header
	Body       []byte
}

func fromAdapted(resp *fetcher.AdaptedResponse) StoredResponse {
	return StoredResponse{
		MimeType:   resp.MimeType,
		Encoding:   resp.Encoding,
		StatusCode: resp.StatusCode,
		Reason:     resp.Reason,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

func (r *StoredResponse) toAdapted() *fetcher.AdaptedResponse {
	return &fetcher.AdaptedResponse{
		MimeType:   r.MimeType,
		Encoding:   r.Encoding,
		StatusCode: r.StatusCode,
		Reason:     r.Reason,
		Headers:    r.Headers,
		Body:       r.Body,
	}
}
