package costmodel_test

import (
	"testing"

	"github.com/dom/matchcore/internal/costmodel"
	"github.com/dom/matchcore/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights_SumToOne(t *testing.T) {
	require.NoError(t, costmodel.DefaultWeights().Validate())
}

func TestWeights_ValidateRejectsBadSum(t *testing.T) {
	w := costmodel.Weights{SkillGap: 1, RoleAlignment: 1}
	assert.ErrorIs(t, w.Validate(), domain.ErrInvalidInput)
}

func TestCost_PerfectMatch(t *testing.T) {
	problem := &domain.Problem{
		ID:                uuid.New(),
		EstimatedTeamSize: 5,
		RolePreferences:   map[domain.Role]float64{domain.RoleBuilder: 1.0},
		RequiredSkills:    map[string]int{"go": 3},
		AmbiguityLevel:    5,
		EstimatedHours:    10,
		Motivation:        []float64{1, 0},
	}
	participant := &domain.Participant{
		PrimaryRoles:      []domain.Role{domain.RoleBuilder},
		Skills:            map[string]int{"go": 5},
		AvailabilityHours: 20,
		Motivation:        []float64{1, 0},
		AmbiguityComfort:  5,
	}

	m := costmodel.New(costmodel.DefaultWeights())
	total, comps := m.Cost(costmodel.ParticipantCandidate(participant), problem)

	assert.Equal(t, 0.0, comps.SkillGap)
	assert.InDelta(t, 0.0, comps.RoleAlignment, 1e-9)
	assert.InDelta(t, 0.0, comps.MotivationSimilarity, 1e-9)
	assert.Equal(t, 0.0, comps.AmbiguityFit)
	assert.Equal(t, 0.0, comps.WorkloadFit)
	assert.InDelta(t, 0.0, total, 1e-9)
}

func TestCost_MissingSkillCountsAsZero(t *testing.T) {
	problem := &domain.Problem{RequiredSkills: map[string]int{"rust": 4}, EstimatedHours: 0}
	participant := &domain.Participant{AvailabilityHours: 10}

	m := costmodel.New(costmodel.DefaultWeights())
	_, comps := m.Cost(costmodel.ParticipantCandidate(participant), problem)
	assert.InDelta(t, 4.0/5.0, comps.SkillGap, 1e-9)
}

func TestCost_EmptyRolePreferencesContributesOne(t *testing.T) {
	problem := &domain.Problem{RolePreferences: map[domain.Role]float64{}}
	participant := &domain.Participant{PrimaryRoles: []domain.Role{domain.RoleLead}}

	m := costmodel.New(costmodel.DefaultWeights())
	_, comps := m.Cost(costmodel.ParticipantCandidate(participant), problem)
	assert.Equal(t, 1.0, comps.RoleAlignment)
}

func TestCost_ZeroMotivationContributesOne(t *testing.T) {
	problem := &domain.Problem{Motivation: []float64{0, 0}}
	participant := &domain.Participant{Motivation: []float64{1, 1}}

	m := costmodel.New(costmodel.DefaultWeights())
	_, comps := m.Cost(costmodel.ParticipantCandidate(participant), problem)
	assert.Equal(t, 1.0, comps.MotivationSimilarity)
}

func TestCost_WorkloadFitCappedAtOne(t *testing.T) {
	problem := &domain.Problem{EstimatedHours: 1000}
	participant := &domain.Participant{AvailabilityHours: 0}

	m := costmodel.New(costmodel.DefaultWeights())
	_, comps := m.Cost(costmodel.ParticipantCandidate(participant), problem)
	assert.Equal(t, 1.0, comps.WorkloadFit)
}

func TestCost_WeightedSumMatchesTotal(t *testing.T) {
	problem := &domain.Problem{
		RequiredSkills:  map[string]int{"go": 3},
		RolePreferences: map[domain.Role]float64{domain.RoleBuilder: 0.5, domain.RoleLead: 0.5},
		AmbiguityLevel:  3,
		EstimatedHours:  5,
		Motivation:      []float64{0.5, 0.5},
	}
	participant := &domain.Participant{
		PrimaryRoles:      []domain.Role{domain.RoleBuilder},
		Skills:            map[string]int{"go": 1},
		AvailabilityHours: 3,
		Motivation:        []float64{0.1, 0.9},
		AmbiguityComfort:  7,
	}
	weights := costmodel.Weights{SkillGap: 0.35, RoleAlignment: 0.2, MotivationSimilarity: 0.15, AmbiguityFit: 0.2, WorkloadFit: 0.1}
	m := costmodel.New(weights)
	total, comps := m.Cost(costmodel.ParticipantCandidate(participant), problem)

	expected := comps.SkillGap*weights.SkillGap +
		comps.RoleAlignment*weights.RoleAlignment +
		comps.MotivationSimilarity*weights.MotivationSimilarity +
		comps.AmbiguityFit*weights.AmbiguityFit +
		comps.WorkloadFit*weights.WorkloadFit
	assert.InDelta(t, expected, total, 1e-9)
}

func TestCost_SkillGapOnlyWeighting(t *testing.T) {
	problem := &domain.Problem{
		RequiredSkills:  map[string]int{"go": 5},
		RolePreferences: map[domain.Role]float64{domain.RoleBuilder: 1},
		AmbiguityLevel:  1,
		EstimatedHours:  100,
	}
	participant := &domain.Participant{
		PrimaryRoles:      []domain.Role{domain.RoleDesigner},
		Skills:            map[string]int{"go": 0},
		AvailabilityHours: 0,
		AmbiguityComfort:  10,
	}
	weights := costmodel.Weights{SkillGap: 1.0}
	m := costmodel.New(weights)
	total, comps := m.Cost(costmodel.ParticipantCandidate(participant), problem)
	assert.InDelta(t, comps.SkillGap, total, 1e-9)
}
