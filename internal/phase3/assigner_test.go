package phase3_test

import (
	"testing"

	"github.com/dom/matchcore/internal/costmodel"
	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/phase3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTeam(roleWeight map[domain.Role]float64, skills map[string]float64) *domain.Team {
	return &domain.Team{
		ID: uuid.New(),
		Vector: domain.TeamVector{
			AvgSkillLevels:  skills,
			RoleWeights:     roleWeight,
			MinAvailability: 20,
			AvgAmbiguity:    5,
		},
	}
}

func buildProblem(roleWeight map[domain.Role]float64, skills map[string]int) *domain.Problem {
	return &domain.Problem{
		ID:                uuid.New(),
		EstimatedTeamSize: 5,
		RolePreferences:   roleWeight,
		RequiredSkills:    skills,
		AmbiguityLevel:    5,
		EstimatedHours:    10,
	}
}

func TestAssign_OneToOnePerfectMatch(t *testing.T) {
	teamA := buildTeam(map[domain.Role]float64{domain.RoleBuilder: 1}, map[string]float64{"go": 5})
	teamB := buildTeam(map[domain.Role]float64{domain.RoleDesigner: 1}, map[string]float64{"design": 5})
	problemA := buildProblem(map[domain.Role]float64{domain.RoleBuilder: 1}, map[string]int{"go": 5})
	problemB := buildProblem(map[domain.Role]float64{domain.RoleDesigner: 1}, map[string]int{"design": 5})

	assignment, err := phase3.Assign(uuid.New(), phase3.Input{
		Teams:    []*domain.Team{teamA, teamB},
		Problems: []*domain.Problem{problemA, problemB},
		Weights:  costmodel.DefaultWeights(),
	})
	require.NoError(t, err)
	require.Len(t, assignment.Pairs, 2)
	assert.Empty(t, assignment.UnassignedTeams)
	assert.Empty(t, assignment.UnassignedProblems)

	matched := make(map[uuid.UUID]uuid.UUID)
	for _, p := range assignment.Pairs {
		matched[p.TeamID] = p.ProblemID
	}
	assert.Equal(t, problemA.ID, matched[teamA.ID])
	assert.Equal(t, problemB.ID, matched[teamB.ID])
}

func TestAssign_MoreTeamsThanProblems(t *testing.T) {
	teamA := buildTeam(nil, nil)
	teamB := buildTeam(nil, nil)
	problemA := buildProblem(nil, nil)

	assignment, err := phase3.Assign(uuid.New(), phase3.Input{
		Teams:    []*domain.Team{teamA, teamB},
		Problems: []*domain.Problem{problemA},
		Weights:  costmodel.DefaultWeights(),
	})
	require.NoError(t, err)
	assert.Len(t, assignment.Pairs, 1)
	assert.Len(t, assignment.UnassignedTeams, 1)
	assert.Empty(t, assignment.UnassignedProblems)
}

func TestAssign_StatsComputed(t *testing.T) {
	teamA := buildTeam(map[domain.Role]float64{domain.RoleBuilder: 1}, map[string]float64{"go": 5})
	problemA := buildProblem(map[domain.Role]float64{domain.RoleBuilder: 1}, map[string]int{"go": 5})

	assignment, err := phase3.Assign(uuid.New(), phase3.Input{
		Teams:    []*domain.Team{teamA},
		Problems: []*domain.Problem{problemA},
		Weights:  costmodel.DefaultWeights(),
	})
	require.NoError(t, err)
	require.Len(t, assignment.Pairs, 1)
	assert.InDelta(t, assignment.Pairs[0].Cost, assignment.TotalCost, 1e-9)
	assert.InDelta(t, assignment.Pairs[0].Cost, assignment.MeanCost, 1e-9)
	assert.InDelta(t, 1-assignment.MeanCost, assignment.Efficiency, 1e-9)
}

func TestAssign_EmptyInputsReportAllUnassigned(t *testing.T) {
	teamA := buildTeam(nil, nil)
	assignment, err := phase3.Assign(uuid.New(), phase3.Input{
		Teams:    []*domain.Team{teamA},
		Problems: nil,
		Weights:  costmodel.DefaultWeights(),
	})
	require.NoError(t, err)
	assert.Empty(t, assignment.Pairs)
	assert.Len(t, assignment.UnassignedTeams, 1)
	assert.Equal(t, 1.0, assignment.Efficiency)
}
