package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quicktech/studentportal/internal/config"
)

func TestNewRejectsBadRoutes(t *testing.T) {
	tests := []struct {
		name  string
		route config.ProxyRoute
	}{
		{"relative target", config.ProxyRoute{Prefix: "/x", Target: "/not-absolute"}},
		{"garbage target", config.ProxyRoute{Prefix: "/x", Target: "://"}},
		{"bad rewrite pattern", config.ProxyRoute{
			Prefix: "/x", Target: "http://example.com",
			Rewrites: []config.ProxyRewrite{{Pattern: "([", Replacement: ""}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.route); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRewritePathOrder(t *testing.T) {
	fwd, err := New(config.ProxyRoute{
		Prefix: "/legacy",
		Target: "http://example.com",
		Rewrites: []config.ProxyRewrite{
			{Pattern: "^/legacy", Replacement: ""},
			{Pattern: "^/forms", Replacement: "/v2/forms"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rules apply in configured order: the second sees the first's output.
	if got := fwd.RewritePath("/legacy/forms/12"); got != "/v2/forms/12" {
		t.Errorf("RewritePath = %q, want /v2/forms/12", got)
	}
	if got := fwd.RewritePath("/untouched"); got != "/untouched" {
		t.Errorf("RewritePath = %q, want /untouched", got)
	}
}

func TestForward(t *testing.T) {
	var gotPath, gotQuery, gotHost, gotHeader string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotHost = r.Host
		gotHeader = r.Header.Get("X-Portal-Key")
		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, "upstream says hi")
	}))
	defer upstream.Close()

	fwd, err := New(config.ProxyRoute{
		Prefix:   "/old",
		Target:   upstream.URL,
		Rewrites: []config.ProxyRewrite{{Pattern: "^/old", Replacement: "/new"}},
		Headers:  map[string]string{"X-Portal-Key": "secret"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://portal.local/old/things?page=2&sort=asc", nil)
	rec := httptest.NewRecorder()
	fwd.Forward(rec, req)

	if gotPath != "/new/things" {
		t.Errorf("upstream path = %q, want /new/things", gotPath)
	}
	if gotQuery != "page=2&sort=asc" {
		t.Errorf("query = %q, original query must be preserved", gotQuery)
	}
	if gotHeader != "secret" {
		t.Errorf("overlay header = %q, want secret", gotHeader)
	}
	if gotHost == "portal.local" {
		t.Error("upstream must see its own host, not the portal's")
	}

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, upstream status must pass through", rec.Code)
	}
	if rec.Header().Get("X-Upstream") != "yes" {
		t.Error("upstream response headers must pass through")
	}
	if body := rec.Body.String(); body != "upstream says hi" {
		t.Errorf("body = %q", body)
	}
}

func TestForwardUnreachableUpstream(t *testing.T) {
	fwd, err := New(config.ProxyRoute{Prefix: "/x", Target: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://portal.local/x/y", nil)
	rec := httptest.NewRecorder()
	fwd.Forward(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	if !strings.Contains(rec.Body.String(), "bad gateway") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
