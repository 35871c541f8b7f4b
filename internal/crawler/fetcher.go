// Package crawler implements the crawl-and-extract pipeline: seed-page
// URL collection, per-article extraction and the sequential driver.
package crawler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"otrscraper/internal/metrics"
	"otrscraper/internal/politeness"
)

// ErrRobotsDisallowed indicates the politeness gate refused a URL.
var ErrRobotsDisallowed = errors.New("URL disallowed by robots.txt")

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Settings is the read-only accessor surface of the validated
// configuration that the crawl components depend on.
type Settings interface {
	SeedURLs() []string
	NumArticles() int
	Headers() map[string]string
	Encoding() string
	Timeout() time.Duration
	VerifyCertificate() bool
	HeadlessMode() bool
}

// Response is the decoded result of a single GET.
type Response struct {
	StatusCode int
	Text       string
}

// OK reports whether the status code is in the 2xx-3xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusBadRequest
}

// Fetcher issues a single GET per call. Implementations never retry;
// callers own the retry policy.
type Fetcher interface {
	Fetch(url string) (*Response, error)
}

// HTTPFetcher fetches pages with the configured headers, timeout and
// TLS-verification flag, and decodes bodies from the configured encoding.
type HTTPFetcher struct {
	client           *http.Client
	settings         Settings
	encodingOverride string
	limiter          *rate.Limiter
	gate             *politeness.Gate
}

// NewFetcher creates a fetcher. A non-empty encodingOverride forces the
// response text encoding regardless of the configured one; article
// fetches use this to force UTF-8.
func NewFetcher(settings Settings, encodingOverride string) *HTTPFetcher {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !settings.VerifyCertificate(),
		},
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   settings.Timeout(),
			Transport: transport,
		},
		settings:         settings,
		encodingOverride: encodingOverride,
	}
}

// UsePoliteness attaches an optional robots.txt gate and request rate
// limit. rps <= 0 leaves the rate unlimited.
func (f *HTTPFetcher) UsePoliteness(gate *politeness.Gate, rps float64) {
	f.gate = gate

	if rps > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// Fetch issues one GET and returns the decoded response. A timeout,
// connection failure or disallowed URL yields an error; callers treat all
// of these as skip-and-continue.
func (f *HTTPFetcher) Fetch(url string) (*Response, error) {
	if f.gate != nil && !f.gate.Allowed(url) {
		return nil, fmt.Errorf("%w: %s", ErrRobotsDisallowed, url)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(context.Background()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range f.settings.Headers() {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.FetchErrors.Inc()

		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.FetchErrors.Inc()

		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.PagesFetched.Inc()
	metrics.BytesFetched.Add(float64(len(body)))

	encoding := f.encodingOverride
	if encoding == "" {
		encoding = f.settings.Encoding()
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Text:       decodeText(body, encoding),
	}, nil
}

// decodeText reinterprets raw body bytes in the named encoding. UTF-8 and
// unknown names pass the bytes through unchanged.
func decodeText(body []byte, name string) string {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return string(body)
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return string(body)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return string(body)
	}

	return string(decoded)
}
