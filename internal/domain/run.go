package domain

import (
	"time"

	"github.com/google/uuid"
)

// Phase names the three pipeline phases, used as a map/repository key.
type Phase string

const (
	Phase1 Phase = "phase1"
	Phase2 Phase = "phase2"
	Phase3 Phase = "phase3"
)

// AllPhases lists the phases in pipeline order.
var AllPhases = []Phase{Phase1, Phase2, Phase3}

// Previous returns the phase that must be completed before p can start, or
// "" if p is the first phase.
func (p Phase) Previous() Phase {
	switch p {
	case Phase2:
		return Phase1
	case Phase3:
		return Phase2
	default:
		return ""
	}
}

// PhaseState is one of the lifecycle states from spec §4.7.
type PhaseState string

const (
	StateIdle      PhaseState = "idle"
	StateQueued    PhaseState = "queued"
	StateRunning   PhaseState = "running"
	StateCompleted PhaseState = "completed"
	StateFailed    PhaseState = "failed"
)

// CanTransitionTo reports whether moving from s to next is a legal
// transition per spec §4.7: idle -> queued -> running -> {completed,
// failed}; terminal states may transition back to queued on rerun.
func (s PhaseState) CanTransitionTo(next PhaseState) bool {
	switch s {
	case StateIdle:
		return next == StateQueued
	case StateQueued:
		return next == StateRunning
	case StateRunning:
		return next == StateCompleted || next == StateFailed
	case StateCompleted, StateFailed:
		return next == StateQueued
	default:
		return false
	}
}

// PhaseStatus is the observable status record for one phase of one run
// (spec §4.7, §6 "phase{N}/status").
type PhaseStatus struct {
	RunID       uuid.UUID   `json:"runId"`
	Phase       Phase       `json:"phase"`
	State       PhaseState  `json:"state"`
	Progress    float64     `json:"progress"`
	StartedAt   *time.Time  `json:"startedAt,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	Error       *PhaseError `json:"error,omitempty"`
}

// Overrides is the set of per-rerun parameter overrides recognized by the
// exposed API (spec §6).
type Overrides struct {
	Weights            *WeightOverrides
	TeamSize           *int
	PerProblemCapacity map[uuid.UUID]int
	RandomSeed         *int64
}

// WeightOverrides mirrors costmodel.Weights without importing that
// package, keeping domain dependency-free of the algorithmic packages.
type WeightOverrides struct {
	SkillGap             float64
	RoleAlignment        float64
	MotivationSimilarity float64
	AmbiguityFit         float64
	WorkloadFit          float64
}

// Run is the explicit PipelineRun value threaded through the orchestrator,
// replacing the source's per-phase process globals (spec §9 Design Note).
type Run struct {
	ID                 uuid.UUID
	TeamSize           int
	PerProblemCapacity map[uuid.UUID]int
	RandomSeed         int64
	CreatedAt          time.Time
}
