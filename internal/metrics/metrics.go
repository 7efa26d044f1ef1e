// Package metrics exposes Prometheus counters and gauges for the
// conversion pipeline, registered against the default registry and served
// at /metrics by the HTTP façade.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdf2md_jobs_submitted_total",
		Help: "Total number of conversion jobs submitted.",
	})

	JobsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pdf2md_jobs_in_flight",
		Help: "Number of conversion jobs currently processing.",
	})

	JobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdf2md_jobs_failed_total",
		Help: "Total number of conversion jobs that ended in failure.",
	})

	PagesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdf2md_pages_processed_total",
		Help: "Total number of pages rendered across all jobs.",
	})

	OCRFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdf2md_ocr_failures_total",
		Help: "Total number of images for which OCR recognition failed.",
	})

	TablesFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdf2md_tables_found_total",
		Help: "Total number of tables detected across all pages.",
	})
)
