package scan

import (
	"io"
	"log/slog"

	"github.com/fwojciec/webscan"
	"github.com/fwojciec/webscan/etree"
	"github.com/fwojciec/webscan/goquery"
	webhttp "github.com/fwojciec/webscan/http"
	"github.com/fwojciec/webscan/htmlquery"
)

// Option configures the Service built by New.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	clients     webscan.ClientProvider
	fetcherOpts []webhttp.Option
	err         error
}

// WithLogger sets the logger receiving request lifecycle events.
// Defaults to a logger that discards everything. A nil logger is rejected.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			o.err = webscan.Errorf(webscan.EINVALID, "logger cannot be nil")
		}
		o.logger = logger
	}
}

// WithClientProvider replaces the default pooled http.ClientFactory.
// A nil provider is rejected.
func WithClientProvider(clients webscan.ClientProvider) Option {
	return func(o *options) {
		if clients == nil {
			o.err = webscan.Errorf(webscan.EINVALID, "client provider cannot be nil")
		}
		o.clients = clients
	}
}

// WithFetcherOptions passes options through to the HTTP fetcher.
func WithFetcherOptions(opts ...webhttp.Option) Option {
	return func(o *options) {
		o.fetcherOpts = append(o.fetcherOpts, opts...)
	}
}

// New wires the default implementations into a Service: a net/http
// fetcher over a pooled client factory, XPath extraction for HTML and
// etree-parsed XPath for XML, and goquery CSS selectors.
// Returns EINVALID if config is nil or invalid.
func New(config *webscan.Config, opts ...Option) (*Service, error) {
	if config == nil {
		return nil, webscan.Errorf(webscan.EINVALID, "config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.clients == nil {
		o.clients = webhttp.NewClientFactory()
	}

	fetcher, err := webhttp.NewFetcher(config, o.clients, o.logger, o.fetcherOpts...)
	if err != nil {
		return nil, err
	}

	extractor := &webscan.MarkupExtractor{
		HTML: htmlquery.NewExtractor(),
		XML:  etree.NewExtractor(),
	}

	return NewService(config, fetcher, extractor, goquery.NewExtractor())
}
