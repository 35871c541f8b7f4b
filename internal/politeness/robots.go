// Package politeness implements an opt-in robots.txt gate for the crawl.
package politeness

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
)

// Gate answers whether a URL may be fetched according to the host's
// robots.txt. The file is fetched lazily, once per host; a missing or
// unreadable robots.txt allows everything. The pipeline is single-threaded
// so the host map needs no locking.
type Gate struct {
	userAgent string
	timeout   time.Duration
	hosts     map[string]*robotstxt.RobotsData // nil entry: no usable robots file
}

// NewGate returns a ready Gate.
func NewGate(userAgent string, timeout time.Duration) *Gate {
	return &Gate{
		userAgent: userAgent,
		timeout:   timeout,
		hosts:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether rawURL may be fetched. Unparseable URLs are
// allowed; the fetch itself will fail with a better error.
func (g *Gate) Allowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}

	robots, seen := g.hosts[u.Host]
	if !seen {
		robots = g.fetchRobots(u.Scheme, u.Host)
		g.hosts[u.Host] = robots
	}

	if robots == nil {
		return true
	}

	return robots.FindGroup(g.userAgent).Test(u.Path)
}

func (g *Gate) fetchRobots(scheme, host string) *robotstxt.RobotsData {
	robotsURL := scheme + "://" + host + "/robots.txt"

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, http.NoBody)
	if err != nil {
		return nil
	}

	req.Header.Set("User-Agent", g.userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil || resp.StatusCode >= http.StatusBadRequest {
		return nil // treat as no robots file
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}

	return robots
}
