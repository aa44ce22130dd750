package fetcher

import "strings"

// Adapt shapes a raw transport response for the renderer: the MIME type
// is derived from Content-Type with the utf-8 charset suffix stripped,
// and an empty reason phrase becomes "OK". nil stays nil.
func Adapt(resp *TransportResponse) *AdaptedResponse {
	if resp == nil {
		return nil
	}

	mimeType := resp.Headers.Get("Content-Type")
	if mimeType == "" {
		mimeType = "text/plain"
	}
	mimeType = strings.TrimSuffix(mimeType, "; charset=utf-8")

	reason := resp.Reason
	if reason == "" {
		reason = "OK"
	}

	return &AdaptedResponse{
		MimeType:   mimeType,
		Encoding:   "utf-8",
		StatusCode: resp.StatusCode,
		Reason:     reason,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}
