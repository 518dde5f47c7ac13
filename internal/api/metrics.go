package api

import "github.com/prometheus/client_golang/prometheus"

var (
	forecastRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_requests_total",
			Help: "Forecast requests received, by track.",
		},
		[]string{"track"},
	)

	forecastErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_errors_total",
			Help: "Failed forecast runs, by track and reason.",
		},
		[]string{"track", "reason"},
	)
)

func init() {
	prometheus.MustRegister(forecastRequests, forecastErrors)
}
