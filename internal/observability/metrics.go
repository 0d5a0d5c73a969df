package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_runs_total",
		Help: "Completed feed sync runs",
	})
	RunFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_run_failures_total",
		Help: "Feed sync runs aborted by fetch or format errors",
	})
	ProductsUpserted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_products_upserted_total",
		Help: "Products inserted or updated from the feed",
	})
	ProductsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_products_skipped_total",
		Help: "Feed products skipped for parse or store errors",
	})
	VariantsUpserted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_variants_upserted_total",
		Help: "Variants inserted or updated from the feed",
	})
)

// Register installs the pipeline counters on the default registry. Call once
// from main.
func Register() {
	prometheus.MustRegister(RunsTotal, RunFailures, ProductsUpserted, ProductsSkipped, VariantsUpserted)
}

// Handler serves the default registry, for mounting on the API router.
func Handler() http.Handler {
	return promhttp.Handler()
}
