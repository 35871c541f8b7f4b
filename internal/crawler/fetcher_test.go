package crawler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

func TestFetcher_SendsConfiguredHeaders(t *testing.T) {
	var gotAgent, gotCustom string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Scraper")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	settings := &stubSettings{
		headers: map[string]string{
			"User-Agent": "test-agent",
			"X-Scraper":  "enabled",
		},
	}

	resp, err := NewFetcher(settings, "").Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !resp.OK() {
		t.Errorf("Expected OK response, got status %d", resp.StatusCode)
	}

	if gotAgent != "test-agent" || gotCustom != "enabled" {
		t.Errorf("Headers not sent: agent=%q custom=%q", gotAgent, gotCustom)
	}
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resp, err := NewFetcher(&stubSettings{}, "").Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if resp.OK() {
		t.Errorf("Expected non-OK for status %d", resp.StatusCode)
	}
}

func TestFetcher_DecodesConfiguredEncoding(t *testing.T) {
	const text = "Привет, мир"

	enc, err := ianaindex.IANA.Encoding("windows-1251")
	if err != nil {
		t.Fatalf("Encoding lookup failed: %v", err)
	}

	encoded, _, err := transform.Bytes(enc.NewEncoder(), []byte(text))
	if err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(encoded)
	}))
	defer server.Close()

	resp, err := NewFetcher(&stubSettings{encoding: "windows-1251"}, "").Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if resp.Text != text {
		t.Errorf("Expected decoded %q, got %q", text, resp.Text)
	}
}

func TestFetcher_EncodingOverrideWins(t *testing.T) {
	const text = "Заголовок в UTF-8"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(text))
	}))
	defer server.Close()

	// The configured encoding would mangle the body; the override forces
	// UTF-8 the way article fetches do.
	fetcher := NewFetcher(&stubSettings{encoding: "windows-1251"}, "utf-8")

	resp, err := fetcher.Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if resp.Text != text {
		t.Errorf("Expected %q, got %q", text, resp.Text)
	}
}

func TestFetcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fetcher := NewFetcher(&stubSettings{timeout: 50 * time.Millisecond}, "")

	if _, err := fetcher.Fetch(server.URL); err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
}

func TestFetcher_SkipsTLSVerificationWhenDisabled(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// The test server uses a self-signed certificate: verification off
	// must succeed, verification on must fail.
	if _, err := NewFetcher(&stubSettings{verify: false}, "").Fetch(server.URL); err != nil {
		t.Errorf("Expected fetch with verification disabled to succeed, got %v", err)
	}

	if _, err := NewFetcher(&stubSettings{verify: true}, "").Fetch(server.URL); err == nil {
		t.Error("Expected certificate error with verification enabled")
	}
}

func TestFetcher_UnknownEncodingPassesThrough(t *testing.T) {
	const text = "fallback body"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(text))
	}))
	defer server.Close()

	resp, err := NewFetcher(&stubSettings{encoding: "no-such-encoding"}, "").Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if resp.Text != text {
		t.Errorf("Expected passthrough %q, got %q", text, resp.Text)
	}
}
