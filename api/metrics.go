// Prometheus counters for the API. The /metrics endpoint itself is mounted
// in server.go.
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var shiftsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "shift_engine_shifts_created_total",
	Help: "Number of shift records successfully appended to the store.",
})
