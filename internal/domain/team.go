package domain

import (
	"time"

	"github.com/google/uuid"
)

// FormationMethod tags how a team came into being.
type FormationMethod string

const (
	FormationStrictEnforcement FormationMethod = "strict_enforcement"
	FormationSurplus           FormationMethod = "surplus_unassigned"
)

// Team is a set of exactly Size participant IDs produced by Phase 2, with
// its aggregated vector and metrics attached (spec §3).
type Team struct {
	ID                uuid.UUID       `json:"id"`
	RunID             uuid.UUID       `json:"runId"`
	ProblemBucketID   uuid.UUID       `json:"problemBucketId"`
	MemberIDs         []uuid.UUID     `json:"memberIds"`
	FormationMethod   FormationMethod `json:"formationMethod"`
	AssignedProblemID *uuid.UUID      `json:"assignedProblemId,omitempty"`
	Vector            TeamVector      `json:"vector"`
	Metrics           TeamMetrics     `json:"metrics"`
	// AIReview is an optional advisory annotation from an external LLM
	// review service (spec §9: "LLM-decorated scores vs. computed scores").
	// It is never consumed by the cost model; only computed Metrics are
	// authoritative for correctness.
	AIReview  *string   `json:"aiReview,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Size returns the number of members in the team.
func (t *Team) Size() int {
	return len(t.MemberIDs)
}

// HasMember reports whether participantID is a member of this team.
func (t *Team) HasMember(participantID uuid.UUID) bool {
	for _, id := range t.MemberIDs {
		if id == participantID {
			return true
		}
	}
	return false
}
