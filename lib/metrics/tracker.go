package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trackerPollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "poll_total",
		Help:      "Count of polls of pending submissions.",
	}, []string{"coin", "network", "status"})
	trackerPollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "poll_duration_seconds",
		Help:      "Duration of a poll of pending submissions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})
	trackerResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tracker",
		Name:      "resolved_total",
		Help:      "Count of submissions leaving the pending state, by final status.",
	}, []string{"coin", "network", "result"})
)

// Tracker tracks the metrics of the confirmation tracker of a coin's network.
type Tracker struct {
	coin    string
	network string
}

// NewTracker constructs a Tracker collector.
func NewTracker(coin, network string) *Tracker {
	return &Tracker{coin: orUnknown(coin), network: orUnknown(network)}
}

// ObservePoll records a poll outcome and duration.
func (m Tracker) ObservePoll(err error, started time.Time) {
	s := status(err)

	trackerPollTotal.WithLabelValues(m.coin, m.network, s).Inc()
	trackerPollDuration.WithLabelValues(m.coin, m.network, s).Observe(time.Since(started).Seconds())
}

// ObserveResolved records a submission confirmed, failed or dropped.
func (m Tracker) ObserveResolved(result string) {
	trackerResolvedTotal.WithLabelValues(m.coin, m.network, result).Inc()
}
