package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of the enrichment of a failed broadcast.
const (
	EnrichAnnotated = "annotated"
	EnrichSkipped   = "skipped"
	EnrichFailed    = "failed"
)

var enrichTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "gateway",
	Name:      "enrich_total",
	Help:      "Count of failed broadcasts by enrichment outcome.",
}, []string{"coin", "outcome"})

// Gateway tracks the metrics of the gateway handlers of a coin. Networks come from request paths, so they are not
// labels.
type Gateway struct {
	coin string
}

// NewGateway constructs a Gateway collector.
func NewGateway(coin string) *Gateway {
	return &Gateway{coin: orUnknown(coin)}
}

// ObserveEnrich records the outcome of enriching a failed broadcast.
func (m Gateway) ObserveEnrich(outcome string) {
	enrichTotal.WithLabelValues(m.coin, outcome).Inc()
}
