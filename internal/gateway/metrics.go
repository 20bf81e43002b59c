package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Persistence is fire-and-forget, so these counters are the only place
// write failures become visible outside the logs.
var (
	saves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripfolio_gateway_saves_total",
		Help: "Successful trip record writes.",
	})
	saveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripfolio_gateway_save_failures_total",
		Help: "Trip record writes that failed to encode or persist.",
	})
	corruptRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripfolio_gateway_corrupt_records_total",
		Help: "Stored payloads that failed to deserialize and were replaced by the default document.",
	})
)
