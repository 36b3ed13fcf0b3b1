package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_http_response_size_bytes",
			Help:    "HTTP response body size in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"method", "endpoint"},
	)

	ResolverMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_resolver_matches_total",
			Help: "Document type resolutions by match kind",
		},
		[]string{"match"},
	)

	LocatorFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: Namespace + "_locator_parent_fallbacks_total",
			Help: "Certificate lookups answered from the parent client",
		},
	)

	CompositionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_compositions_total",
			Help: "PDF compositions by variant and outcome",
		},
		[]string{"variant", "outcome"},
	)

	CompositionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_composition_duration_seconds",
			Help:    "Time to compose a PDF variant",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"variant"},
	)

	RasterFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    Namespace + "_raster_fetch_duration_seconds",
			Help:    "Time to fetch a QR raster for overlay composition",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_downloads_total",
			Help: "Delivered certificate documents by variant",
		},
		[]string{"variant"},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: Namespace + "_catalog_cache_lookups_total",
			Help: "Document type catalogue reads by cache result",
		},
		[]string{"result"},
	)
)
