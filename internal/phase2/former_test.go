package phase2_test

import (
	"context"
	"testing"

	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/phase2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeParticipant(roles []domain.Role, skills map[string]int, avail int, leader bool) *domain.Participant {
	return &domain.Participant{
		ID:                uuid.New(),
		PrimaryRoles:      roles,
		Skills:            skills,
		AvailabilityHours: avail,
		AmbiguityComfort:  5,
		LeadershipPref:    leader,
	}
}

func bucketOf(participants []*domain.Participant) ([]domain.BucketEntry, map[uuid.UUID]*domain.Participant) {
	entries := make([]domain.BucketEntry, len(participants))
	byID := make(map[uuid.UUID]*domain.Participant, len(participants))
	for i, p := range participants {
		entries[i] = domain.BucketEntry{ParticipantID: p.ID, Cost: float64(i), Rank: i}
		byID[p.ID] = p
	}
	return entries, byID
}

func TestFormBucket_ExactSizeNoSurplus(t *testing.T) {
	participants := []*domain.Participant{
		makeParticipant([]domain.Role{domain.RoleLead}, map[string]int{"go": 4}, 10, true),
		makeParticipant([]domain.Role{domain.RoleBuilder}, map[string]int{"go": 3}, 8, false),
		makeParticipant([]domain.Role{domain.RoleDesigner}, map[string]int{"design": 5}, 12, false),
		makeParticipant([]domain.Role{domain.RoleResearcher}, map[string]int{"data": 4}, 6, false),
		makeParticipant([]domain.Role{domain.RoleCommunicator}, map[string]int{"writing": 3}, 9, false),
	}
	entries, byID := bucketOf(participants)

	res, err := phase2.FormBucket(phase2.Input{
		RunID:        uuid.New(),
		ProblemID:    uuid.New(),
		Entries:      entries,
		Participants: byID,
		TeamSize:     5,
		Skills:       []string{"go", "design", "data", "writing"},
	})
	require.NoError(t, err)
	require.Len(t, res.Teams, 1)
	assert.Empty(t, res.Surplus)
	assert.Len(t, res.Teams[0].MemberIDs, 5)
}

func TestFormBucket_SurplusDroppedWhenNotMultiple(t *testing.T) {
	participants := make([]*domain.Participant, 7)
	for i := range participants {
		participants[i] = makeParticipant([]domain.Role{domain.RoleBuilder}, map[string]int{"go": 3}, 10, false)
	}
	entries, byID := bucketOf(participants)

	res, err := phase2.FormBucket(phase2.Input{
		Entries:      entries,
		Participants: byID,
		TeamSize:     3,
	})
	require.NoError(t, err)
	assert.Len(t, res.Teams, 2)
	assert.Len(t, res.Surplus, 1)

	seen := make(map[uuid.UUID]bool)
	for _, team := range res.Teams {
		assert.Len(t, team.MemberIDs, 3)
		for _, id := range team.MemberIDs {
			assert.False(t, seen[id])
			seen[id] = true
		}
	}
}

func TestFormBucket_BelowTeamSizeProducesNoTeams(t *testing.T) {
	participants := []*domain.Participant{
		makeParticipant([]domain.Role{domain.RoleBuilder}, nil, 10, false),
		makeParticipant([]domain.Role{domain.RoleDesigner}, nil, 10, false),
	}
	entries, byID := bucketOf(participants)

	res, err := phase2.FormBucket(phase2.Input{
		Entries:      entries,
		Participants: byID,
		TeamSize:     5,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Teams)
	assert.Len(t, res.Surplus, 2)
}

func TestFormBucket_LeadershipScarcityMarksMissing(t *testing.T) {
	participants := make([]*domain.Participant, 10)
	for i := range participants {
		participants[i] = makeParticipant([]domain.Role{domain.RoleBuilder}, map[string]int{"go": 2}, 10, false)
	}
	participants[0].LeadershipPref = true
	entries, byID := bucketOf(participants)

	res, err := phase2.FormBucket(phase2.Input{
		Entries:      entries,
		Participants: byID,
		TeamSize:     5,
	})
	require.NoError(t, err)
	require.Len(t, res.Teams, 2)

	missingCount := 0
	leaderCount := 0
	for _, team := range res.Teams {
		if team.Metrics.LeadershipMissing {
			missingCount++
		} else {
			leaderCount++
		}
	}
	assert.Equal(t, 1, missingCount)
	assert.Equal(t, 1, leaderCount)
}

func TestFormAll_ParallelAcrossBuckets(t *testing.T) {
	bucket := domain.NewBucket(uuid.New())
	participants := make(map[uuid.UUID]*domain.Participant)

	problemA := uuid.New()
	problemB := uuid.New()
	for _, problemID := range []uuid.UUID{problemA, problemB} {
		for i := 0; i < 5; i++ {
			p := makeParticipant([]domain.Role{domain.RoleBuilder}, map[string]int{"go": 3}, 10, i == 0)
			participants[p.ID] = p
			bucket.ByProblem[problemID] = append(bucket.ByProblem[problemID], domain.BucketEntry{ParticipantID: p.ID, Rank: i})
		}
	}

	results, err := phase2.FormAll(context.Background(), uuid.New(), bucket, participants, 5, []string{"go"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.Len(t, r.Teams, 1)
		assert.Len(t, r.Teams[0].MemberIDs, 5)
	}
}
