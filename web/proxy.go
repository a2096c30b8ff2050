package web

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

// ProxyRule forwards everything under Prefix to another deployment of the
// gateway (or a compatible service) at Upstream. Used when one instance
// fronts several regional backends.
type ProxyRule struct {
	Prefix   string
	Upstream string
}

// ParseProxyRules reads rules from a comma separated list of
// "/prefix=https://host" pairs. Malformed entries are skipped with a log
// line rather than failing startup.
func ParseProxyRules(raw string) []ProxyRule {
	var rules []ProxyRule
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		eq := strings.IndexByte(entry, '=')
		if eq <= 0 || !strings.HasPrefix(entry, "/") {
			log.Printf("skipping malformed proxy rule: %q", entry)
			continue
		}
		target := entry[eq+1:]
		if _, err := url.Parse(target); err != nil || !strings.HasPrefix(target, "http") {
			log.Printf("skipping proxy rule with bad upstream: %q", entry)
			continue
		}
		rules = append(rules, ProxyRule{
			Prefix:   strings.TrimSuffix(entry[:eq], "/"),
			Upstream: strings.TrimSuffix(target, "/"),
		})
	}
	return rules
}

func mountProxies(r *chi.Mux, rnd *render.Render, rules []ProxyRule) {
	for _, rule := range rules {
		h := proxyHandler(rnd, rule)
		r.Handle(rule.Prefix, h)
		r.Handle(rule.Prefix+"/*", h)
	}
}

// hopHeaders are never forwarded in either direction.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

func proxyHandler(rnd *render.Render, rule ProxyRule) http.HandlerFunc {
	client := &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		target := rule.Upstream + strings.TrimPrefix(r.URL.Path, rule.Prefix)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}

		var body io.Reader
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			body = r.Body
		}

		req, err := http.NewRequestWithContext(r.Context(), r.Method, target, body)
		if err != nil {
			apiError(rnd, w, http.StatusBadGateway, "proxy_failed", map[string]any{"message": err.Error()})
			return
		}

		req.Header = r.Header.Clone()
		for _, h := range hopHeaders {
			req.Header.Del(h)
		}
		req.Header.Set("X-Forwarded-Host", r.Host)

		resp, err := client.Do(req)
		if err != nil {
			apiError(rnd, w, http.StatusBadGateway, "proxy_failed", map[string]any{"message": err.Error()})
			return
		}
		defer resp.Body.Close()

		for k, vs := range resp.Header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		for _, h := range hopHeaders {
			w.Header().Del(h)
		}
		w.WriteHeader(resp.StatusCode)
		if _, err := io.Copy(w, resp.Body); err != nil {
			log.Printf("error streaming proxy response from %s: %v", rule.Upstream, err)
		}
	}
}
