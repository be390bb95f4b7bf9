package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Problem is a challenge that teams can be matched to. Immutable within a
// pipeline run.
type Problem struct {
	ID                  uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title               string           `json:"title" gorm:"not null"`
	Prompt              string           `json:"prompt"`
	EstimatedTeamSize   int              `json:"estimatedTeamSize" gorm:"not null"`
	RolePreferences     map[Role]float64 `json:"rolePreferences" gorm:"-"`
	RolePreferencesJSON datatypes.JSON   `json:"-" gorm:"column:role_preferences;type:jsonb"`
	RequiredSkills      map[string]int   `json:"requiredSkills" gorm:"-"`
	RequiredSkillsJSON  datatypes.JSON   `json:"-" gorm:"column:required_skills;type:jsonb"`
	AmbiguityLevel      int              `json:"ambiguityLevel" gorm:"not null"`
	EstimatedHours      int              `json:"estimatedHours" gorm:"not null"`
	Motivation          []float64        `json:"motivation" gorm:"-"`
	MotivationJSON      datatypes.JSON   `json:"-" gorm:"column:motivation;type:jsonb"`
}

// TableName returns the table name for GORM.
func (Problem) TableName() string {
	return "problems"
}

// Validate enforces the Problem invariants from spec §3: team size in
// [2,10], role preference weights non-negative summing to at most 1, skill
// requirements in [0,5], and ambiguity level in [1,10].
func (p *Problem) Validate() error {
	if p.EstimatedTeamSize < 2 || p.EstimatedTeamSize > 10 {
		return ErrInvalidTeamSize
	}
	sum := 0.0
	for role, weight := range p.RolePreferences {
		if weight < 0 {
			return ErrInvalidRoleWeight
		}
		if !role.IsValid() {
			return ErrInvalidRole
		}
		sum += weight
	}
	if sum > 1.0+1e-9 {
		return ErrInvalidRoleWeight
	}
	for _, level := range p.RequiredSkills {
		if level < 0 || level > 5 {
			return ErrInvalidSkillLevel
		}
	}
	if p.AmbiguityLevel < 1 || p.AmbiguityLevel > 10 {
		return ErrInvalidInput
	}
	return nil
}

// RequiredLevel returns the minimum level required for a skill, defaulting
// to 0 when the problem does not mention it.
func (p *Problem) RequiredLevel(skill string) int {
	if p.RequiredSkills == nil {
		return 0
	}
	return ClampSkillLevel(p.RequiredSkills[skill])
}
