// Package metrics defines the in-process prometheus collectors the
// orchestrator and phases update. There is no HTTP /metrics endpoint:
// dashboards are out of scope (spec §1); collectors exist so operators
// embedding this core into their own service can register them on their
// own registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// PhaseDuration observes wall-clock seconds spent in one phase
	// execution, labeled by phase name and terminal outcome.
	PhaseDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "matchcore_phase_duration_seconds",
		Help:    "Wall-clock duration of a phase run.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase", "outcome"})

	// PhaseRuns counts phase completions by outcome.
	PhaseRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "matchcore_phase_runs_total",
		Help: "Count of phase runs by terminal outcome.",
	}, []string{"phase", "outcome"})

	// RunningPhases tracks how many phases are currently executing.
	RunningPhases = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matchcore_running_phases",
		Help: "Number of phases currently in the running state.",
	}, []string{"phase"})

	// UnassignedParticipants records the diagnostic count of participants
	// left unassigned by the most recent Phase 1 run, per run id.
	UnassignedParticipants = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "matchcore_unassigned_participants",
		Help: "Participants left unassigned after the most recent Phase 1 run.",
	}, []string{"run_id"})
)

// Registry bundles the collectors into a fresh registry an embedding
// service can expose however it likes.
func Registry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(PhaseDuration, PhaseRuns, RunningPhases, UnassignedParticipants)
	return reg
}
