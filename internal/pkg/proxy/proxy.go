// Package proxy implements a generic HTTP forwarder: rewrite the inbound
// path, overlay configured headers and relay the request to a fixed
// upstream, returning its response unmodified. No retries, no circuit
// breaking, no timeout beyond the transport default.
package proxy

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/quicktech/studentportal/internal/config"
	"github.com/quicktech/studentportal/internal/pkg/logger"
)

// rewrite is a compiled path-rewrite rule. Rules apply in configured order.
type rewrite struct {
	pattern     *regexp.Regexp
	replacement string
}

// Forwarder relays inbound requests to a single upstream target.
type Forwarder struct {
	target   *url.URL
	rewrites []rewrite
	headers  map[string]string
	client   *http.Client
}

// New compiles a Forwarder from a configured proxy route.
func New(route config.ProxyRoute) (*Forwarder, error) {
	target, err := url.Parse(route.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target %q: %w", route.Target, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("proxy target %q must be an absolute URL", route.Target)
	}

	rewrites := make([]rewrite, 0, len(route.Rewrites))
	for _, r := range route.Rewrites {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy rewrite pattern %q: %w", r.Pattern, err)
		}
		rewrites = append(rewrites, rewrite{pattern: re, replacement: r.Replacement})
	}

	return &Forwarder{
		target:   target,
		rewrites: rewrites,
		headers:  route.Headers,
		client:   &http.Client{},
	}, nil
}

// RewritePath applies every rewrite rule in order to the inbound path.
func (f *Forwarder) RewritePath(path string) string {
	for _, r := range f.rewrites {
		path = r.pattern.ReplaceAllString(path, r.replacement)
	}
	return path
}

// Forward relays the inbound request to the upstream and copies the
// response back verbatim.
func (f *Forwarder) Forward(w http.ResponseWriter, r *http.Request) {
	upstreamURL := &url.URL{
		Scheme:   f.target.Scheme,
		Host:     f.target.Host,
		Path:     f.RewritePath(r.URL.Path),
		RawQuery: r.URL.RawQuery, // original query string preserved
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, upstreamURL.String(), r.Body)
	if err != nil {
		logger.Error().Err(err).Str("url", upstreamURL.String()).Msg("Failed to build upstream request")
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}

	req.Header = r.Header.Clone()
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}
	// The upstream sees its own host, matching changeOrigin behaviour.
	req.Host = f.target.Host

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("url", upstreamURL.String()).Msg("Upstream request failed")
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Warn().Err(err).Msg("Failed to copy upstream response body")
	}
}
