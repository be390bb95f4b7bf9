// Package memory is an in-process Repository implementation for tests and
// local runs (spec §9: "Re-architect as a minimal interface with two
// implementations: in-process ... and external").
package memory

import (
	"context"
	"sync"

	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/repository"
	"github.com/google/uuid"
)

type statusKey struct {
	runID uuid.UUID
	phase domain.Phase
}

// Store is a goroutine-safe in-memory Repository.
type Store struct {
	mu sync.RWMutex

	participants []*domain.Participant
	problems     []*domain.Problem

	buckets     map[uuid.UUID]*domain.Bucket
	teams       map[uuid.UUID][]*domain.Team
	assignments map[uuid.UUID]*domain.Assignment
	statuses    map[statusKey]*domain.PhaseStatus
	runs        map[uuid.UUID]*domain.Run
}

// New returns an empty Store seeded with the given snapshot.
func New(participants []*domain.Participant, problems []*domain.Problem) *Store {
	return &Store{
		participants: participants,
		problems:     problems,
		buckets:      make(map[uuid.UUID]*domain.Bucket),
		teams:        make(map[uuid.UUID][]*domain.Team),
		assignments:  make(map[uuid.UUID]*domain.Assignment),
		statuses:     make(map[statusKey]*domain.PhaseStatus),
		runs:         make(map[uuid.UUID]*domain.Run),
	}
}

var _ repository.Repository = (*Store)(nil)

func (s *Store) ListParticipants(ctx context.Context) ([]*domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Participant, len(s.participants))
	copy(out, s.participants)
	return out, nil
}

func (s *Store) ListProblems(ctx context.Context) ([]*domain.Problem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Problem, len(s.problems))
	copy(out, s.problems)
	return out, nil
}

func (s *Store) SaveBucket(ctx context.Context, runID uuid.UUID, bucket *domain.Bucket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[runID] = bucket
	return nil
}

func (s *Store) LoadBucket(ctx context.Context, runID uuid.UUID) (*domain.Bucket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buckets[runID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (s *Store) SaveTeams(ctx context.Context, runID uuid.UUID, teams []*domain.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[runID] = teams
	return nil
}

func (s *Store) LoadTeams(ctx context.Context, runID uuid.UUID) ([]*domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[runID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (s *Store) SaveAssignment(ctx context.Context, runID uuid.UUID, assignment *domain.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[runID] = assignment
	return nil
}

func (s *Store) LoadAssignment(ctx context.Context, runID uuid.UUID) (*domain.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[runID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (s *Store) SaveStatus(ctx context.Context, status *domain.PhaseStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[statusKey{status.RunID, status.Phase}] = status
	return nil
}

func (s *Store) LoadStatus(ctx context.Context, runID uuid.UUID, phase domain.Phase) (*domain.PhaseStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statuses[statusKey{runID, phase}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return st, nil
}

func (s *Store) SaveRun(ctx context.Context, run *domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

func (s *Store) LoadRun(ctx context.Context, runID uuid.UUID) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[runID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}
