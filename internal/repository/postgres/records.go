package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// The pipeline's phase outputs are opaque documents keyed by run id (spec
// §6: "Storage format is an opaque document-per-entity model"). Each
// record stores one phase's output as a JSON blob rather than a
// normalized relational shape, since the core never queries into them
// beyond point lookup by run id.

type runRecord struct {
	RunID              uuid.UUID      `gorm:"column:run_id;primaryKey"`
	TeamSize           int            `gorm:"column:team_size"`
	PerProblemCapacity datatypes.JSON `gorm:"column:per_problem_capacity;type:jsonb"`
	RandomSeed         int64          `gorm:"column:random_seed"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
}

func (runRecord) TableName() string { return "runs" }

type bucketRecord struct {
	RunID uuid.UUID      `gorm:"column:run_id;primaryKey"`
	Data  datatypes.JSON `gorm:"column:data;type:jsonb"`
}

func (bucketRecord) TableName() string { return "phase1_buckets" }

type teamRecord struct {
	RunID uuid.UUID      `gorm:"column:run_id;primaryKey"`
	Data  datatypes.JSON `gorm:"column:data;type:jsonb"`
}

func (teamRecord) TableName() string { return "phase2_teams" }

type assignmentRecord struct {
	RunID uuid.UUID      `gorm:"column:run_id;primaryKey"`
	Data  datatypes.JSON `gorm:"column:data;type:jsonb"`
}

func (assignmentRecord) TableName() string { return "phase3_assignments" }

type statusRecord struct {
	RunID     uuid.UUID `gorm:"column:run_id;primaryKey"`
	Phase     string    `gorm:"column:phase;primaryKey"`
	Data      datatypes.JSON `gorm:"column:data;type:jsonb"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (statusRecord) TableName() string { return "phase_status" }
