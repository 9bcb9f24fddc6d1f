package websocket

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var connectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "connect4_websocket_connections",
	Help: "Number of open game sockets.",
})
