package mock

import (
	"context"
	"net/http"

	"github.com/fwojciec/webscan"
)

var _ webscan.DocumentFetcher = (*DocumentFetcher)(nil)

// DocumentFetcher is a mock implementation of webscan.DocumentFetcher.
type DocumentFetcher struct {
	FetchDocumentFn        func(ctx context.Context, req *webscan.FetchRequest) (string, error)
	FetchDocumentStealthFn func(ctx context.Context, req *webscan.FetchRequest) (string, error)
}

func (f *DocumentFetcher) FetchDocument(ctx context.Context, req *webscan.FetchRequest) (string, error) {
	return f.FetchDocumentFn(ctx, req)
}

func (f *DocumentFetcher) FetchDocumentStealth(ctx context.Context, req *webscan.FetchRequest) (string, error) {
	return f.FetchDocumentStealthFn(ctx, req)
}

var _ webscan.ClientProvider = (*ClientProvider)(nil)

// ClientProvider is a mock implementation of webscan.ClientProvider.
type ClientProvider struct {
	ClientFn func(profile string) *http.Client
}

func (p *ClientProvider) Client(profile string) *http.Client {
	return p.ClientFn(profile)
}
