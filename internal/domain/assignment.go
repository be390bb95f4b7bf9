package domain

import "github.com/google/uuid"

// AssignmentPair is one team<->problem pairing from Phase 3, with its cost
// decomposition.
type AssignmentPair struct {
	TeamID     uuid.UUID `json:"teamId"`
	ProblemID  uuid.UUID `json:"problemId"`
	Cost       float64   `json:"cost"`
	Components CostBreak `json:"components"`
}

// Assignment is the Phase 3 result: a bijection between a subset of
// problems and the set of teams, plus aggregate statistics (spec §3, §4.6).
type Assignment struct {
	RunID              uuid.UUID        `json:"runId"`
	Pairs              []AssignmentPair `json:"pairs"`
	UnassignedTeams    []uuid.UUID      `json:"unassignedTeams"`
	UnassignedProblems []uuid.UUID      `json:"unassignedProblems"`
	TotalCost          float64          `json:"totalCost"`
	MeanCost           float64          `json:"meanCost"`
	MinCost            float64          `json:"minCost"`
	MaxCost            float64          `json:"maxCost"`
	Efficiency         float64          `json:"efficiency"`
}

// ComputeStats fills in TotalCost/MeanCost/MinCost/MaxCost/Efficiency from
// Pairs, per spec §4.6.
func (a *Assignment) ComputeStats() {
	if len(a.Pairs) == 0 {
		a.TotalCost, a.MeanCost, a.MinCost, a.MaxCost, a.Efficiency = 0, 0, 0, 0, 1
		return
	}
	a.MinCost = a.Pairs[0].Cost
	a.MaxCost = a.Pairs[0].Cost
	total := 0.0
	for _, p := range a.Pairs {
		total += p.Cost
		if p.Cost < a.MinCost {
			a.MinCost = p.Cost
		}
		if p.Cost > a.MaxCost {
			a.MaxCost = p.Cost
		}
	}
	a.TotalCost = total
	a.MeanCost = total / float64(len(a.Pairs))
	eff := 1 - a.MeanCost
	if eff < 0 {
		eff = 0
	}
	if eff > 1 {
		eff = 1
	}
	a.Efficiency = eff
}
