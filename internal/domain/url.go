package domain

import (
	"errors"
	"net/url"
	"strings"
)

// NormalizeURL trims whitespace and prepends https:// when the value
// carries no scheme, so "example.com" and "https://example.com" refer
// to the same monitored URL.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	return raw
}

// ValidateURL checks that a normalized URL is an absolute http(s) URL
// with a host. It does not resolve the host.
func ValidateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("unsupported scheme: " + u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
