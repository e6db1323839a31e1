package webscan

import (
	"context"
	"net/http"
)

// Client profiles understood by ClientProvider implementations.
const (
	ProfileDefault = ""
	ProfileStealth = "stealth"
)

// DocumentFetcher performs one HTTP round trip per call and returns the
// response body as text.
type DocumentFetcher interface {
	// FetchDocument sends the request as given.
	// Returns EINVALID for a nil request or missing URL, EHTTPSTATUS for
	// a non-2xx response and ETRANSPORT for connection or timeout failures.
	FetchDocument(ctx context.Context, req *FetchRequest) (string, error)

	// FetchDocumentStealth sends the request with browser-like headers and
	// decompresses the body according to its declared Content-Encoding.
	// In addition to the FetchDocument errors it returns EDECODE when the
	// body does not match the declared encoding.
	FetchDocumentStealth(ctx context.Context, req *FetchRequest) (string, error)
}

// ClientProvider constructs HTTP clients on demand.
// Implementations own connection pooling and must be safe for concurrent use.
type ClientProvider interface {
	// Client returns a client for the named profile.
	// Unknown profiles fall back to ProfileDefault.
	Client(profile string) *http.Client
}
