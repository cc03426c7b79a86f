// Package robots implements the crawl-policy gate. Policies are cached per
// host for the lifetime of one crawl session; on any fetch or parse failure
// the gate fails open, because an absent or unreachable robots.txt must not
// abort an analysis.
package robots

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
)

type policy struct {
	data *robotstxt.RobotsData // nil means allow all
}

// Gate answers "may I fetch URL X as agent A?". It is owned by exactly one
// crawl session: the host cache never outlives the session and needs no
// locking under the per-domain sequential crawl model.
type Gate struct {
	client   *http.Client
	logger   *slog.Logger
	policies map[string]*policy
}

func NewGate(timeout time.Duration, logger *slog.Logger) *Gate {
	return &Gate{
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		policies: make(map[string]*policy),
	}
}

// Load fetches and caches the robots.txt policy for the URL's host. It never
// returns a blocking state on failure: unreachable or malformed robots.txt
// yields an allow-all policy.
func (g *Gate) Load(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	host := parsed.Host
	if _, ok := g.policies[host]; ok {
		return nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build robots request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("robots.txt unreachable, failing open", "url", robotsURL, "error", err)
		g.policies[host] = &policy{}
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		g.logger.Warn("robots.txt unparsable, failing open", "url", robotsURL, "error", err)
		g.policies[host] = &policy{}
		return nil
	}

	g.logger.Info("robots.txt loaded", "url", robotsURL, "status", resp.StatusCode)
	g.policies[host] = &policy{data: data}
	return nil
}

// CanFetch reports whether the cached policy for the URL's host permits the
// given user agent. Hosts without a loaded policy are permitted.
func (g *Gate) CanFetch(userAgent, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p, ok := g.policies[parsed.Host]
	if !ok || p.data == nil {
		return true
	}
	group := p.data.FindGroup(userAgent)
	if group == nil {
		return true
	}
	path := parsed.Path
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return group.Test(path)
}
