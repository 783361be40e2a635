package flash

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vireo",
	Subsystem: "flash",
	Name:      "messages_total",
	Help:      "Notification messages by disposition (buffered, delivered)",
}, []string{"state"})
