package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchNodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connect4",
		Subsystem: "search",
		Name:      "nodes_total",
		Help:      "Positions visited by the move search.",
	}, []string{"algorithm"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "connect4",
		Subsystem: "search",
		Name:      "duration_seconds",
		Help:      "Time spent choosing one move.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"algorithm"})
)

func observeSearch(algorithm Algorithm, stats Stats) {
	searchNodes.WithLabelValues(string(algorithm)).Add(float64(stats.Nodes))
	searchDuration.WithLabelValues(string(algorithm)).Observe(stats.Elapsed.Seconds())
}
