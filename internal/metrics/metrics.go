// Package metrics exposes Prometheus counters for the scrape run.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PagesFetched counts successful HTTP fetches.
	PagesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scraper_pages_fetched_total",
		Help: "Total number of pages successfully fetched",
	})
	// BytesFetched counts downloaded body bytes.
	BytesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scraper_bytes_fetched_total",
		Help: "Total bytes downloaded",
	})
	// FetchErrors counts failed or non-success fetches.
	FetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scraper_fetch_errors_total",
		Help: "Total number of failed fetch attempts",
	})
	// ArticlesPersisted counts records written to disk.
	ArticlesPersisted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scraper_articles_persisted_total",
		Help: "Total number of article records persisted",
	})
)

func init() {
	prometheus.MustRegister(PagesFetched, BytesFetched, FetchErrors, ArticlesPersisted)
}

// Serve exposes /metrics on addr. The scraper itself has no listening
// surface; this runs only when the operator sets METRICS_ADDR.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return http.ListenAndServe(addr, mux)
}
