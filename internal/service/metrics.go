package service

import "github.com/prometheus/client_golang/prometheus"

var uploadsProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "uploads_processed_total",
		Help: "Upload processing runs by final status.",
	},
	[]string{"status"},
)

func init() {
	prometheus.MustRegister(uploadsProcessed)
}
