// Package phase3 performs the final one-to-one team<->problem assignment
// using HungarianSolver over aggregated team costs, per spec §4.6.
package phase3

import (
	"github.com/dom/matchcore/internal/costmodel"
	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/hungarian"
	"github.com/google/uuid"
)

// Input bundles the teams and problems to assign.
type Input struct {
	Teams    []*domain.Team
	Problems []*domain.Problem
	Weights  costmodel.Weights
}

// Assign builds the team x problem cost matrix, solves it optimally, and
// returns the resulting Assignment with computed statistics. If |Teams| !=
// |Problems|, the excess on either side is reported unassigned rather than
// erroring (spec §4.6 Failure semantics).
func Assign(runID uuid.UUID, in Input) (*domain.Assignment, error) {
	assignment := &domain.Assignment{RunID: runID}

	if len(in.Teams) == 0 || len(in.Problems) == 0 {
		for _, t := range in.Teams {
			assignment.UnassignedTeams = append(assignment.UnassignedTeams, t.ID)
		}
		for _, p := range in.Problems {
			assignment.UnassignedProblems = append(assignment.UnassignedProblems, p.ID)
		}
		assignment.ComputeStats()
		return assignment, nil
	}

	model := costmodel.New(in.Weights)

	cost := make([][]float64, len(in.Teams))
	comps := make([][]costmodel.Components, len(in.Teams))
	for i, team := range in.Teams {
		cost[i] = make([]float64, len(in.Problems))
		comps[i] = make([]costmodel.Components, len(in.Problems))
		candidate := costmodel.TeamCandidate(&team.Vector)
		for j, problem := range in.Problems {
			total, c := model.Cost(candidate, problem)
			cost[i][j] = total
			comps[i][j] = c
		}
	}

	result, err := hungarian.Solve(cost)
	if err != nil {
		return nil, domain.ErrInvalidCost
	}

	assignedTeam := make(map[int]bool, len(result.Pairs))
	assignedProblem := make(map[int]bool, len(result.Pairs))
	for _, pair := range result.Pairs {
		team := in.Teams[pair.Row]
		problem := in.Problems[pair.Col]
		assignment.Pairs = append(assignment.Pairs, domain.AssignmentPair{
			TeamID:    team.ID,
			ProblemID: problem.ID,
			Cost:      cost[pair.Row][pair.Col],
			Components: domain.CostBreak{
				SkillGap:             comps[pair.Row][pair.Col].SkillGap,
				RoleAlignment:        comps[pair.Row][pair.Col].RoleAlignment,
				MotivationSimilarity: comps[pair.Row][pair.Col].MotivationSimilarity,
				AmbiguityFit:         comps[pair.Row][pair.Col].AmbiguityFit,
				WorkloadFit:          comps[pair.Row][pair.Col].WorkloadFit,
			},
		})
		assignedTeam[pair.Row] = true
		assignedProblem[pair.Col] = true
	}

	for i, team := range in.Teams {
		if !assignedTeam[i] {
			assignment.UnassignedTeams = append(assignment.UnassignedTeams, team.ID)
		}
	}
	for j, problem := range in.Problems {
		if !assignedProblem[j] {
			assignment.UnassignedProblems = append(assignment.UnassignedProblems, problem.ID)
		}
	}

	assignment.ComputeStats()
	return assignment, nil
}
