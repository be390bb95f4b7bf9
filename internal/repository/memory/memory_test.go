package memory_test

import (
	"context"
	"testing"

	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/repository"
	"github.com/dom/matchcore/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SnapshotRoundTrip(t *testing.T) {
	p := &domain.Participant{ID: uuid.New()}
	q := &domain.Problem{ID: uuid.New()}
	store := memory.New([]*domain.Participant{p}, []*domain.Problem{q})

	participants, err := store.ListParticipants(context.Background())
	require.NoError(t, err)
	assert.Len(t, participants, 1)

	problems, err := store.ListProblems(context.Background())
	require.NoError(t, err)
	assert.Len(t, problems, 1)
}

func TestStore_BucketSaveLoad(t *testing.T) {
	store := memory.New(nil, nil)
	runID := uuid.New()
	bucket := domain.NewBucket(runID)

	require.NoError(t, store.SaveBucket(context.Background(), runID, bucket))
	loaded, err := store.LoadBucket(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, runID, loaded.RunID)
}

func TestStore_LoadMissingReturnsErrNotFound(t *testing.T) {
	store := memory.New(nil, nil)
	_, err := store.LoadBucket(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_StatusOverwriteIsIdempotent(t *testing.T) {
	store := memory.New(nil, nil)
	runID := uuid.New()
	require.NoError(t, store.SaveStatus(context.Background(), &domain.PhaseStatus{RunID: runID, Phase: domain.Phase1, State: domain.StateRunning}))
	require.NoError(t, store.SaveStatus(context.Background(), &domain.PhaseStatus{RunID: runID, Phase: domain.Phase1, State: domain.StateCompleted}))

	st, err := store.LoadStatus(context.Background(), runID, domain.Phase1)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, st.State)
}
