package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Participant is a member of the population to be matched. It is immutable
// within a pipeline run: ingest creates it, and later phases only ever
// reference it by ID.
type Participant struct {
	ID                uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FullName          string         `json:"fullName" gorm:"not null"`
	Email             string         `json:"email" gorm:"not null"`
	PrimaryRoles      []Role         `json:"primaryRoles" gorm:"-"`
	PrimaryRolesJSON  datatypes.JSON `json:"-" gorm:"column:primary_roles;type:jsonb"`
	Skills            map[string]int `json:"skills" gorm:"-"`
	SkillsJSON        datatypes.JSON `json:"-" gorm:"column:skills;type:jsonb"`
	AvailabilityHours int            `json:"availabilityHours" gorm:"not null"`
	Motivation        []float64      `json:"motivation" gorm:"-"`
	MotivationJSON    datatypes.JSON `json:"-" gorm:"column:motivation;type:jsonb"`
	LeadershipPref    bool           `json:"leadershipPref" gorm:"not null;default:false"`
	AmbiguityComfort  int            `json:"ambiguityComfort" gorm:"not null;default:5"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// TableName returns the table name for GORM.
func (Participant) TableName() string {
	return "participants"
}

// Validate enforces the Participant invariants from spec §3: 1-3 primary
// roles from the closed vocabulary, skill levels in [0,5], non-negative
// availability, and ambiguity comfort in [1,10].
func (p *Participant) Validate() error {
	if len(p.PrimaryRoles) < 1 || len(p.PrimaryRoles) > 3 {
		return ErrInvalidInput
	}
	for _, r := range p.PrimaryRoles {
		if !r.IsValid() {
			return ErrInvalidRole
		}
	}
	for skill, level := range p.Skills {
		if level < 0 || level > 5 {
			return ErrInvalidSkillLevel
		}
		_ = skill
	}
	if p.AvailabilityHours < 0 {
		return ErrInvalidInput
	}
	if p.AmbiguityComfort < 1 || p.AmbiguityComfort > 10 {
		return ErrInvalidInput
	}
	return nil
}

// SkillLevel returns the participant's proficiency for a skill, defaulting
// to 0 when the skill was never reported (spec §4.1 edge case).
func (p *Participant) SkillLevel(skill string) int {
	if p.Skills == nil {
		return 0
	}
	level, ok := p.Skills[skill]
	if !ok {
		return 0
	}
	return ClampSkillLevel(level)
}

// RoleSupport returns the role distribution implied by the participant's
// primary role tags: 1.0 split evenly across the roles they listed (empty
// when they listed none). CostModel's role_alignment term renormalizes it
// before use.
func (p *Participant) RoleSupport() map[Role]float64 {
	support := make(map[Role]float64, len(p.PrimaryRoles))
	if len(p.PrimaryRoles) == 0 {
		return support
	}
	share := 1.0 / float64(len(p.PrimaryRoles))
	for _, r := range p.PrimaryRoles {
		support[r] += share
	}
	return support
}

// ClampSkillLevel clamps a raw integer skill level into [0,5] (spec §3
// invariant 4).
func ClampSkillLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 5 {
		return 5
	}
	return level
}
