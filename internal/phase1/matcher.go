// Package phase1 assigns each participant to a problem bucket using the
// Hungarian solver over a capacity-replicated cost matrix, per spec §4.4.
package phase1

import (
	"sort"

	"github.com/dom/matchcore/internal/costmodel"
	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/hungarian"
	"github.com/google/uuid"
)

// Input bundles everything Match needs.
type Input struct {
	Participants       []*domain.Participant
	Problems           []*domain.Problem
	Weights            costmodel.Weights
	TeamSize           int
	// CapacityMultiplier overrides k_q (desired team count) per problem.
	// Problems absent from the map use the default derived capacity.
	CapacityMultiplier map[uuid.UUID]int
}

// capacityFor returns k_q, the desired team count for problem q (spec
// §4.4): an explicit override, or the default
// ceil(|P| / (S * |Q|)).
func capacityFor(in Input, problemID uuid.UUID) int {
	if in.CapacityMultiplier != nil {
		if k, ok := in.CapacityMultiplier[problemID]; ok && k > 0 {
			return k
		}
	}
	if in.TeamSize <= 0 || len(in.Problems) == 0 {
		return 1
	}
	numerator := len(in.Participants)
	denominator := in.TeamSize * len(in.Problems)
	k := (numerator + denominator - 1) / denominator
	if k < 1 {
		k = 1
	}
	return k
}

// column maps one cost-matrix column back to the problem that owns it.
type column struct {
	problemID uuid.UUID
}

// Match runs Phase 1: builds the replicated cost matrix, solves it
// optimally, and returns the resulting Bucket.
func Match(runID uuid.UUID, in Input) (*domain.Bucket, error) {
	if len(in.Participants) == 0 || len(in.Problems) == 0 {
		return nil, domain.ErrInsufficientData
	}

	model := costmodel.New(in.Weights)

	columns := make([]column, 0)
	for _, q := range in.Problems {
		k := capacityFor(in, q.ID)
		slots := k * in.TeamSize
		for s := 0; s < slots; s++ {
			columns = append(columns, column{problemID: q.ID})
		}
	}

	cost := make([][]float64, len(in.Participants))
	compsByRowCol := make([][]costmodel.Components, len(in.Participants))
	for i, p := range in.Participants {
		cost[i] = make([]float64, len(columns))
		compsByRowCol[i] = make([]costmodel.Components, len(columns))
		problemCost := make(map[uuid.UUID]float64)
		problemComps := make(map[uuid.UUID]costmodel.Components)
		for _, q := range in.Problems {
			total, comps := model.Cost(costmodel.ParticipantCandidate(p), q)
			problemCost[q.ID] = total
			problemComps[q.ID] = comps
		}
		for j, col := range columns {
			cost[i][j] = problemCost[col.problemID]
			compsByRowCol[i][j] = problemComps[col.problemID]
		}
	}

	result, err := hungarian.Solve(cost)
	if err != nil {
		return nil, domain.ErrInvalidCost
	}

	bucket := domain.NewBucket(runID)
	assignedParticipants := make(map[uuid.UUID]bool, len(result.Pairs))
	for _, pair := range result.Pairs {
		participant := in.Participants[pair.Row]
		col := columns[pair.Col]
		entry := domain.BucketEntry{
			ParticipantID: participant.ID,
			Cost:          cost[pair.Row][pair.Col],
			Components:    toBreak(compsByRowCol[pair.Row][pair.Col]),
		}
		bucket.ByProblem[col.problemID] = append(bucket.ByProblem[col.problemID], entry)
		assignedParticipants[participant.ID] = true
	}

	for problemID, entries := range bucket.ByProblem {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Cost < entries[j].Cost
		})
		for i := range entries {
			entries[i].Rank = i
		}
		bucket.ByProblem[problemID] = entries
	}

	for _, p := range in.Participants {
		if !assignedParticipants[p.ID] {
			bucket.Unassigned = append(bucket.Unassigned, p.ID)
		}
	}

	return bucket, nil
}

func toBreak(c costmodel.Components) domain.CostBreak {
	return domain.CostBreak{
		SkillGap:             c.SkillGap,
		RoleAlignment:        c.RoleAlignment,
		MotivationSimilarity: c.MotivationSimilarity,
		AmbiguityFit:         c.AmbiguityFit,
		WorkloadFit:          c.WorkloadFit,
	}
}
