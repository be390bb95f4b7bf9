package phase1_test

import (
	"testing"

	"github.com/dom/matchcore/internal/costmodel"
	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/phase1"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func participant(roles ...domain.Role) *domain.Participant {
	return &domain.Participant{
		ID:                uuid.New(),
		PrimaryRoles:      roles,
		Skills:            map[string]int{"go": 4},
		AvailabilityHours: 10,
		AmbiguityComfort:  5,
	}
}

func problem(size int) *domain.Problem {
	return &domain.Problem{
		ID:                uuid.New(),
		EstimatedTeamSize: size,
		RolePreferences:   map[domain.Role]float64{domain.RoleBuilder: 1.0},
		RequiredSkills:    map[string]int{"go": 3},
		AmbiguityLevel:    5,
		EstimatedHours:    10,
	}
}

func TestMatch_NoDuplicateAssignment(t *testing.T) {
	participants := []*domain.Participant{
		participant(domain.RoleBuilder),
		participant(domain.RoleDesigner),
		participant(domain.RoleLead),
		participant(domain.RoleResearcher),
	}
	problems := []*domain.Problem{problem(2), problem(2)}

	bucket, err := phase1.Match(uuid.New(), phase1.Input{
		Participants: participants,
		Problems:     problems,
		Weights:      costmodel.DefaultWeights(),
		TeamSize:     2,
	})
	require.NoError(t, err)

	seen := make(map[uuid.UUID]bool)
	for _, entries := range bucket.ByProblem {
		for _, e := range entries {
			assert.False(t, seen[e.ParticipantID], "participant assigned twice")
			seen[e.ParticipantID] = true
		}
	}
	assert.Len(t, seen, 4)
	assert.Empty(t, bucket.Unassigned)
}

func TestMatch_RankOrderedAscending(t *testing.T) {
	participants := []*domain.Participant{
		participant(domain.RoleBuilder),
		participant(domain.RoleDesigner),
	}
	problems := []*domain.Problem{problem(2)}

	bucket, err := phase1.Match(uuid.New(), phase1.Input{
		Participants: participants,
		Problems:     problems,
		Weights:      costmodel.DefaultWeights(),
		TeamSize:     2,
	})
	require.NoError(t, err)

	for _, entries := range bucket.ByProblem {
		for i := 1; i < len(entries); i++ {
			assert.LessOrEqual(t, entries[i-1].Cost, entries[i].Cost)
			assert.Equal(t, i, entries[i].Rank)
		}
	}
}

func TestMatch_CapacityOverflowReportsUnassigned(t *testing.T) {
	participants := make([]*domain.Participant, 5)
	for i := range participants {
		participants[i] = participant(domain.RoleBuilder)
	}
	problems := []*domain.Problem{problem(2)}

	bucket, err := phase1.Match(uuid.New(), phase1.Input{
		Participants:       participants,
		Problems:           problems,
		Weights:            costmodel.DefaultWeights(),
		TeamSize:           2,
		CapacityMultiplier: map[uuid.UUID]int{problems[0].ID: 1},
	})
	require.NoError(t, err)

	assigned := 0
	for _, entries := range bucket.ByProblem {
		assigned += len(entries)
	}
	assert.Equal(t, 2, assigned)
	assert.Len(t, bucket.Unassigned, 3)
}

func TestMatch_InsufficientData(t *testing.T) {
	_, err := phase1.Match(uuid.New(), phase1.Input{})
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestMatch_DefaultCapacityDerivedFromTeamSize(t *testing.T) {
	participants := make([]*domain.Participant, 6)
	for i := range participants {
		participants[i] = participant(domain.RoleBuilder)
	}
	problems := []*domain.Problem{problem(2), problem(2)}

	bucket, err := phase1.Match(uuid.New(), phase1.Input{
		Participants: participants,
		Problems:     problems,
		Weights:      costmodel.DefaultWeights(),
		TeamSize:     2,
	})
	require.NoError(t, err)

	assigned := 0
	for _, entries := range bucket.ByProblem {
		assigned += len(entries)
	}
	assert.Equal(t, 6, assigned)
	assert.Empty(t, bucket.Unassigned)
}
