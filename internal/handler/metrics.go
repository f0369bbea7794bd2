package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pta_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	gamesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pta_games_created_total",
		Help: "Total number of created game sessions.",
	})

	catchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pta_catch_attempts_total",
			Help: "Total number of catch attempts by outcome.",
		},
		[]string{"outcome"},
	)

	tradesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pta_trades_total",
		Help: "Total number of completed pokemon trades.",
	})
)
