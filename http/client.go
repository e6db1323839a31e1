package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/webscan"
	tls "github.com/refraction-networking/utls"
)

// Ensure ClientFactory implements webscan.ClientProvider at compile time.
var _ webscan.ClientProvider = (*ClientFactory)(nil)

// ClientFactory hands out HTTP clients that share one pooled transport per
// profile. Clients are cheap to create; callers may set per-call fields
// such as Timeout without affecting each other.
type ClientFactory struct {
	once    sync.Once
	plain   *http.Transport
	stealth *http.Transport
}

// NewClientFactory creates a new ClientFactory.
func NewClientFactory() *ClientFactory {
	return &ClientFactory{}
}

// Client returns a new client for the named profile.
func (f *ClientFactory) Client(profile string) *http.Client {
	f.once.Do(f.init)

	transport := f.plain
	if profile == webscan.ProfileStealth {
		transport = f.stealth
	}
	return &http.Client{Transport: transport}
}

// CloseIdleConnections closes idle connections in every profile's pool.
func (f *ClientFactory) CloseIdleConnections() {
	f.once.Do(f.init)
	f.plain.CloseIdleConnections()
	f.stealth.CloseIdleConnections()
}

func (f *ClientFactory) init() {
	f.plain = http.DefaultTransport.(*http.Transport).Clone()

	stealth := http.DefaultTransport.(*http.Transport).Clone()
	stealth.DialTLSContext = dialTLSChrome
	// The fetcher decodes Content-Encoding itself in stealth mode.
	stealth.DisableCompression = true
	stealth.ForceAttemptHTTP2 = false
	f.stealth = stealth
}

// chromeH1Spec returns a Chrome ClientHello with ALPN restricted to
// http/1.1, since net/http cannot speak h2 over a utls connection.
// A fresh spec is built per connection because utls mutates extensions
// during the handshake.
func chromeH1Spec() (*tls.ClientHelloSpec, error) {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return nil, err
	}
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	return &spec, nil
}

// dialTLSChrome establishes a TLS connection with a Chrome fingerprint.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	spec, err := chromeH1Spec()
	var tlsConn *tls.UConn
	if err != nil {
		tlsConn = tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloChrome_Auto)
	} else {
		tlsConn = tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
		if err := tlsConn.ApplyPreset(spec); err != nil {
			conn.Close()
			return nil, fmt.Errorf("apply tls spec: %w", err)
		}
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}
