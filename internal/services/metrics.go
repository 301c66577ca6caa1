package services

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var operationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "citenote_operations_total",
		Help: "Record and auth operations by name and response status",
	},
	[]string{"operation", "status"},
)

func init() {
	prometheus.MustRegister(operationsTotal)
}

func observe(operation string, status int) {
	operationsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}
