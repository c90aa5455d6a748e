package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RemoteCleanupFailures counts object-store deletes that failed after a
	// committed local write. Each failure is an orphaned remote object; an
	// external sweep uses this as its signal.
	RemoteCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campsite_remote_cleanup_failures_total",
		Help: "Object store deletions that failed and left an orphaned object",
	})

	CascadeDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campsite_cascade_deletes_total",
		Help: "Campground deletions that triggered review cleanup",
	})

	CascadeReviewsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campsite_cascade_reviews_deleted_total",
		Help: "Reviews removed by cascading campground deletions",
	})

	AssetsReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campsite_assets_reconciled_total",
		Help: "Attached assets added or removed by reconciliation",
	}, []string{"op"})
)

// Handler returns the scrape endpoint, served on its own listener.
func Handler() http.Handler {
	return promhttp.Handler()
}
