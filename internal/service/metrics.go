package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RoundsCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_rounds_committed_total",
			Help: "Rounds whose computer move has been committed",
		},
	)
	RoundsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_rounds_resolved_total",
			Help: "Rounds played to disclosure, by outcome",
		},
		[]string{"outcome"},
	)
	RoundsAborted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_rounds_aborted_total",
			Help: "Rounds exited by the player or expired before a move",
		},
	)
	VerifyChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_verify_total",
			Help: "Disclosure checks served, by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(RoundsCommitted)
	prometheus.MustRegister(RoundsResolved)
	prometheus.MustRegister(RoundsAborted)
	prometheus.MustRegister(VerifyChecks)
}
