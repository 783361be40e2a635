package urlsync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	directionToURL   = "to_url"
	directionFromURL = "from_url"
)

// Metrics are registered on the default registerer under the vireo
// namespace, following the module-wide convention.
var (
	syncsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vireo",
		Subsystem: "urlsync",
		Name:      "syncs_total",
		Help:      "Synchronization events by direction (to_url, from_url)",
	}, []string{"direction"})

	echoSuppressedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vireo",
		Subsystem: "urlsync",
		Name:      "echo_suppressed_total",
		Help:      "Location changes ignored because they matched the binding's own last write",
	})

	navErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vireo",
		Subsystem: "urlsync",
		Name:      "navigation_errors_total",
		Help:      "Failed navigation calls issued by bindings",
	})
)
