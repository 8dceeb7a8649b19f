package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	TapsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taps_processed_total",
			Help: "Total taps accepted by the tap endpoint",
		},
	)
	CoinsCredited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coins_credited_total",
			Help: "Coins credited to accounts, by source",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(TapsProcessed)
	prometheus.MustRegister(CoinsCredited)
}
