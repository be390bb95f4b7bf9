package postgres

import (
	"context"
	"encoding/json"

	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo is the gorm-backed Repository implementation.
type Repo struct {
	db *gorm.DB
}

// NewRepo wraps an open gorm connection.
func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

var _ repository.Repository = (*Repo)(nil)

func (r *Repo) ListParticipants(ctx context.Context) ([]*domain.Participant, error) {
	var rows []*domain.Participant
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		if err := decodeParticipant(p); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (r *Repo) ListProblems(ctx context.Context) ([]*domain.Problem, error) {
	var rows []*domain.Problem
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, q := range rows {
		if err := decodeProblem(q); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func decodeParticipant(p *domain.Participant) error {
	if len(p.PrimaryRolesJSON) > 0 {
		if err := json.Unmarshal(p.PrimaryRolesJSON, &p.PrimaryRoles); err != nil {
			return err
		}
	}
	if len(p.SkillsJSON) > 0 {
		if err := json.Unmarshal(p.SkillsJSON, &p.Skills); err != nil {
			return err
		}
	}
	if len(p.MotivationJSON) > 0 {
		if err := json.Unmarshal(p.MotivationJSON, &p.Motivation); err != nil {
			return err
		}
	}
	return nil
}

func decodeProblem(q *domain.Problem) error {
	if len(q.RolePreferencesJSON) > 0 {
		if err := json.Unmarshal(q.RolePreferencesJSON, &q.RolePreferences); err != nil {
			return err
		}
	}
	if len(q.RequiredSkillsJSON) > 0 {
		if err := json.Unmarshal(q.RequiredSkillsJSON, &q.RequiredSkills); err != nil {
			return err
		}
	}
	if len(q.MotivationJSON) > 0 {
		if err := json.Unmarshal(q.MotivationJSON, &q.Motivation); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) SaveBucket(ctx context.Context, runID uuid.UUID, bucket *domain.Bucket) error {
	data, err := json.Marshal(bucket)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}},
		UpdateAll: true,
	}).Create(&bucketRecord{RunID: runID, Data: data}).Error
}

func (r *Repo) LoadBucket(ctx context.Context, runID uuid.UUID) (*domain.Bucket, error) {
	var row bucketRecord
	if err := r.db.WithContext(ctx).First(&row, "run_id = ?", runID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var bucket domain.Bucket
	if err := json.Unmarshal(row.Data, &bucket); err != nil {
		return nil, err
	}
	return &bucket, nil
}

func (r *Repo) SaveTeams(ctx context.Context, runID uuid.UUID, teams []*domain.Team) error {
	data, err := json.Marshal(teams)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}},
		UpdateAll: true,
	}).Create(&teamRecord{RunID: runID, Data: data}).Error
}

func (r *Repo) LoadTeams(ctx context.Context, runID uuid.UUID) ([]*domain.Team, error) {
	var row teamRecord
	if err := r.db.WithContext(ctx).First(&row, "run_id = ?", runID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var teams []*domain.Team
	if err := json.Unmarshal(row.Data, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *Repo) SaveAssignment(ctx context.Context, runID uuid.UUID, assignment *domain.Assignment) error {
	data, err := json.Marshal(assignment)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}},
		UpdateAll: true,
	}).Create(&assignmentRecord{RunID: runID, Data: data}).Error
}

func (r *Repo) LoadAssignment(ctx context.Context, runID uuid.UUID) (*domain.Assignment, error) {
	var row assignmentRecord
	if err := r.db.WithContext(ctx).First(&row, "run_id = ?", runID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var assignment domain.Assignment
	if err := json.Unmarshal(row.Data, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *Repo) SaveStatus(ctx context.Context, status *domain.PhaseStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}, {Name: "phase"}},
		UpdateAll: true,
	}).Create(&statusRecord{RunID: status.RunID, Phase: string(status.Phase), Data: data}).Error
}

func (r *Repo) LoadStatus(ctx context.Context, runID uuid.UUID, phase domain.Phase) (*domain.PhaseStatus, error) {
	var row statusRecord
	if err := r.db.WithContext(ctx).First(&row, "run_id = ? AND phase = ?", runID, string(phase)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var status domain.PhaseStatus
	if err := json.Unmarshal(row.Data, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *Repo) SaveRun(ctx context.Context, run *domain.Run) error {
	capacity, err := json.Marshal(run.PerProblemCapacity)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "run_id"}},
		UpdateAll: true,
	}).Create(&runRecord{
		RunID:              run.ID,
		TeamSize:           run.TeamSize,
		PerProblemCapacity: capacity,
		RandomSeed:         run.RandomSeed,
		CreatedAt:          run.CreatedAt,
	}).Error
}

func (r *Repo) LoadRun(ctx context.Context, runID uuid.UUID) (*domain.Run, error) {
	var row runRecord
	if err := r.db.WithContext(ctx).First(&row, "run_id = ?", runID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	run := &domain.Run{
		ID:         row.RunID,
		TeamSize:   row.TeamSize,
		RandomSeed: row.RandomSeed,
		CreatedAt:  row.CreatedAt,
	}
	if len(row.PerProblemCapacity) > 0 {
		if err := json.Unmarshal(row.PerProblemCapacity, &run.PerProblemCapacity); err != nil {
			return nil, err
		}
	}
	return run, nil
}
