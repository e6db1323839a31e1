package webscan

import (
	"net/http"
	"strings"
)

// FetchRequest describes an outbound HTTP request.
// Fetchers never modify a request passed to them.
type FetchRequest struct {
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Header http.Header `json:"header"`
}

// NewFetchRequest returns a request for the given method and URL.
// An empty method means GET.
func NewFetchRequest(method, url string) *FetchRequest {
	if method == "" {
		method = http.MethodGet
	}
	return &FetchRequest{
		Method: method,
		URL:    url,
		Header: make(http.Header),
	}
}

// Validate returns an error if the request cannot be sent.
func (r *FetchRequest) Validate() error {
	if r == nil {
		return Errorf(EINVALID, "request required")
	}
	if strings.TrimSpace(r.URL) == "" {
		return Errorf(EINVALID, "request URL required")
	}
	return nil
}

// Clone returns a deep copy of the request.
func (r *FetchRequest) Clone() *FetchRequest {
	if r == nil {
		return nil
	}
	header := r.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	return &FetchRequest{
		Method: r.Method,
		URL:    r.URL,
		Header: header,
	}
}
