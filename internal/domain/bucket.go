package domain

import "github.com/google/uuid"

// BucketEntry is one participant's placement within a problem's bucket:
// their individual cost against that problem and their rank within the
// block (ascending by cost, per spec §4.4).
type BucketEntry struct {
	ParticipantID uuid.UUID `json:"participantId"`
	Cost          float64   `json:"cost"`
	Components    CostBreak `json:"components"`
	Rank          int       `json:"rank"`
}

// CostBreak is the serializable form of a cost component breakdown,
// independent of the costmodel package so domain stays free of that
// dependency.
type CostBreak struct {
	SkillGap             float64 `json:"skillGap"`
	RoleAlignment        float64 `json:"roleAlignment"`
	MotivationSimilarity float64 `json:"motivationSimilarity"`
	AmbiguityFit         float64 `json:"ambiguityFit"`
	WorkloadFit          float64 `json:"workloadFit"`
}

// Bucket is the Phase 1 result: for each problem, the ordered list of
// participants assigned to it (spec §3).
type Bucket struct {
	RunID      uuid.UUID                   `json:"runId"`
	ByProblem  map[uuid.UUID][]BucketEntry `json:"byProblem"`
	Unassigned []uuid.UUID                 `json:"unassigned"`
}

// NewBucket returns an empty bucket for a run.
func NewBucket(runID uuid.UUID) *Bucket {
	return &Bucket{RunID: runID, ByProblem: make(map[uuid.UUID][]BucketEntry)}
}
