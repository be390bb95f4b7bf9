// Package repository defines the storage-agnostic interfaces the core
// consumes (spec §6): participant/problem snapshot reads and per-phase
// output persistence, keyed by run id. The core never depends on a query
// capability beyond point lookup and full scan.
package repository

import (
	"context"
	"errors"

	"github.com/dom/matchcore/internal/domain"
	"github.com/google/uuid"
)

// SnapshotReader exposes the read-only population snapshot a run is
// computed against.
type SnapshotReader interface {
	ListParticipants(ctx context.Context) ([]*domain.Participant, error)
	ListProblems(ctx context.Context) ([]*domain.Problem, error)
}

// PhaseOutputStore persists and loads each phase's output and status,
// keyed by run id. Writes are idempotent: saving again for the same
// (run_id, phase) overwrites atomically (spec §5, §6).
type PhaseOutputStore interface {
	SaveBucket(ctx context.Context, runID uuid.UUID, bucket *domain.Bucket) error
	LoadBucket(ctx context.Context, runID uuid.UUID) (*domain.Bucket, error)

	SaveTeams(ctx context.Context, runID uuid.UUID, teams []*domain.Team) error
	LoadTeams(ctx context.Context, runID uuid.UUID) ([]*domain.Team, error)

	SaveAssignment(ctx context.Context, runID uuid.UUID, assignment *domain.Assignment) error
	LoadAssignment(ctx context.Context, runID uuid.UUID) (*domain.Assignment, error)

	SaveStatus(ctx context.Context, status *domain.PhaseStatus) error
	LoadStatus(ctx context.Context, runID uuid.UUID, phase domain.Phase) (*domain.PhaseStatus, error)

	SaveRun(ctx context.Context, run *domain.Run) error
	LoadRun(ctx context.Context, runID uuid.UUID) (*domain.Run, error)
}

// Repository is the full storage surface the orchestrator depends on.
type Repository interface {
	SnapshotReader
	PhaseOutputStore
}

// ErrNotFound is returned by Load* methods when no record exists yet for
// the requested key. Implementations must wrap it so callers can compare
// with errors.Is.
var ErrNotFound = errors.New("repository: not found")
