package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics with bounded cardinality. The only label values are the two
// player ids and a fixed set of rejection reasons.
var (
	stepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "match_step_duration_seconds",
		Help:    "Time spent resolving one engine step",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	stepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "match_steps_total",
		Help: "Total engine steps resolved",
	})

	matchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "match_finished_total",
		Help: "Matches finished by outcome",
	}, []string{"outcome"}) // Bounded: "player0", "player1", "tie"

	livingUnits = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "match_living_units",
		Help: "Units currently on the board",
	}, []string{"player"}) // Bounded: "0", "1"

	playerEnergy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "match_player_energy",
		Help: "Current energy pool per player",
	}, []string{"player"})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // Bounded: "rate_limit", "origin", "ws_total_limit", "ws_ip_limit"

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "websocket_connections_active",
		Help: "Currently active WebSocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "websocket_messages_total",
		Help: "Total WebSocket messages sent",
	})
)

// ObserveStep records one resolved step and its duration.
func ObserveStep(d time.Duration) {
	stepDuration.Observe(d.Seconds())
	stepsTotal.Inc()
}

// RecordMatchFinished counts a finished match. Pass nil for a tie.
func RecordMatchFinished(winner *int) {
	switch {
	case winner == nil:
		matchesTotal.WithLabelValues("tie").Inc()
	case *winner == 0:
		matchesTotal.WithLabelValues("player0").Inc()
	default:
		matchesTotal.WithLabelValues("player1").Inc()
	}
}

// UpdateMatchGauges refreshes the per-player unit and energy gauges.
func UpdateMatchGauges(units [2]int, energy [2]float64) {
	livingUnits.WithLabelValues("0").Set(float64(units[0]))
	livingUnits.WithLabelValues("1").Set(float64(units[1]))
	playerEnergy.WithLabelValues("0").Set(energy[0])
	playerEnergy.WithLabelValues("1").Set(energy[1])
}

// RecordConnectionRejected counts a rejected connection by reason.
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// UpdateWSConnections sets the active WebSocket connection gauge.
func UpdateWSConnections(count int) {
	wsConnectionsActive.Set(float64(count))
}

// IncrementWSMessages counts one broadcast message.
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}
