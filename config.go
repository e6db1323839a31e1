package webscan

import (
	"net/url"
	"strings"
	"time"
)

// DefaultTimeoutSeconds is the per-request timeout used when
// Config.TimeoutSeconds is zero.
const DefaultTimeoutSeconds = 100

// Config holds the operating parameters of the scanner.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	// BaseURL is the base target identifier. Relative request targets are
	// resolved against it. Optional.
	BaseURL string `json:"baseUrl"`

	// TimeoutSeconds bounds each HTTP request. Zero selects DefaultTimeoutSeconds.
	TimeoutSeconds int `json:"timeoutSeconds"`
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return Errorf(EINVALID, "timeout must not be negative, got %d", c.TimeoutSeconds)
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return Errorf(EINVALID, "base URL must be an absolute http(s) URL, got %q", c.BaseURL)
		}
	}
	return nil
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds == 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolveURL resolves ref against BaseURL. Absolute references and
// references made without a base URL are returned unchanged.
func (c *Config) ResolveURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if c.BaseURL == "" {
		return ref, nil
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", Errorf(EINVALID, "invalid request URL %q: %v", ref, err)
	}
	if r.IsAbs() {
		return ref, nil
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL %q: %v", c.BaseURL, err)
	}
	return base.ResolveReference(r).String(), nil
}
