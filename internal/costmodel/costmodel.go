// Package costmodel implements the five-term weighted cost function shared
// by individual participant->problem matching (Phase 1) and team->problem
// matching (Phase 3), per spec §4.1.
package costmodel

import (
	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/vectorops"
)

// Weights holds the five cost-term coefficients. They are configuration and
// must sum to exactly 1.0 (validated by Validate).
type Weights struct {
	SkillGap             float64
	RoleAlignment        float64
	MotivationSimilarity float64
	AmbiguityFit         float64
	WorkloadFit          float64
}

// DefaultWeights returns the weights specified as defaults in spec §4.1.
func DefaultWeights() Weights {
	return Weights{
		SkillGap:             0.35,
		RoleAlignment:        0.20,
		MotivationSimilarity: 0.15,
		AmbiguityFit:         0.20,
		WorkloadFit:          0.10,
	}
}

// FromOverrides converts a domain.WeightOverrides (the dependency-free form
// threaded through the orchestrator) into costmodel.Weights.
func FromOverrides(o domain.WeightOverrides) Weights {
	return Weights{
		SkillGap:             o.SkillGap,
		RoleAlignment:        o.RoleAlignment,
		MotivationSimilarity: o.MotivationSimilarity,
		AmbiguityFit:         o.AmbiguityFit,
		WorkloadFit:          o.WorkloadFit,
	}
}

// Validate reports whether the weights sum to 1±1e-6, as required by the
// "rerun" override contract in spec §6.
func (w Weights) Validate() error {
	sum := w.SkillGap + w.RoleAlignment + w.MotivationSimilarity + w.AmbiguityFit + w.WorkloadFit
	if sum < 1-1e-6 || sum > 1+1e-6 {
		return domain.ErrInvalidInput
	}
	return nil
}

// Components is the per-term cost breakdown, each already normalized into
// [0,1] before weighting. Total is the weighted sum and must equal
// Sum(components * weights) within 1e-9 (spec §8 invariant 4).
type Components struct {
	SkillGap             float64
	RoleAlignment        float64
	MotivationSimilarity float64
	AmbiguityFit         float64
	WorkloadFit          float64
}

func (c Components) weighted(w Weights) float64 {
	return c.SkillGap*w.SkillGap +
		c.RoleAlignment*w.RoleAlignment +
		c.MotivationSimilarity*w.MotivationSimilarity +
		c.AmbiguityFit*w.AmbiguityFit +
		c.WorkloadFit*w.WorkloadFit
}

// Candidate is the minimal shape CostModel needs from either a Participant
// or an aggregated TeamVector, so cost_individual and cost_team can share
// one implementation.
type Candidate struct {
	RoleSupport      map[domain.Role]float64
	SkillLevel       func(skill string) int
	Motivation       []float64
	AmbiguityComfort float64
	Availability     int
}

// Model computes the weighted five-term cost for a candidate against a
// problem. It is a pure function of its inputs: no hidden state, and
// floating point operations run in the fixed order below for reproducible
// totals across reruns with identical inputs (spec §4.1 Determinism).
type Model struct {
	Weights Weights
}

func New(weights Weights) Model {
	return Model{Weights: weights}
}

// Cost computes cost_individual/cost_team for c against problem.
func (m Model) Cost(c Candidate, problem *domain.Problem) (float64, Components) {
	comps := Components{
		SkillGap:             skillGap(c, problem),
		RoleAlignment:        roleAlignment(c, problem),
		MotivationSimilarity: motivationSimilarity(c, problem),
		AmbiguityFit:         ambiguityFit(c, problem),
		WorkloadFit:          workloadFit(c, problem),
	}
	return comps.weighted(m.Weights), comps
}

func skillGap(c Candidate, problem *domain.Problem) float64 {
	if len(problem.RequiredSkills) == 0 {
		return 0
	}
	total := 0.0
	for skill, required := range problem.RequiredSkills {
		provided := 0
		if c.SkillLevel != nil {
			provided = c.SkillLevel(skill)
		}
		gap := float64(required-provided) / 5.0
		if gap < 0 {
			gap = 0
		}
		total += gap
	}
	return total / float64(len(problem.RequiredSkills))
}

func roleAlignment(c Candidate, problem *domain.Problem) float64 {
	if len(problem.RolePreferences) == 0 {
		return 1.0
	}
	if len(c.RoleSupport) == 0 {
		return 1.0
	}

	sum := 0.0
	for _, weight := range c.RoleSupport {
		sum += weight
	}
	if sum == 0 {
		return 1.0
	}

	dot := 0.0
	for role, weight := range c.RoleSupport {
		dot += (weight / sum) * problem.RolePreferences[role]
	}
	alignment := 1 - dot
	if alignment < 0 {
		alignment = 0
	}
	return alignment
}

func motivationSimilarity(c Candidate, problem *domain.Problem) float64 {
	if vectorops.IsZero(c.Motivation) || vectorops.IsZero(problem.Motivation) {
		return 1.0
	}
	sim := vectorops.Cosine(c.Motivation, problem.Motivation)
	if sim < 0 {
		sim = 0
	}
	distance := 1 - sim
	if distance < 0 {
		distance = 0
	}
	return distance
}

func ambiguityFit(c Candidate, problem *domain.Problem) float64 {
	diff := c.AmbiguityComfort - float64(problem.AmbiguityLevel)
	if diff < 0 {
		diff = -diff
	}
	return diff / 9.0
}

func workloadFit(c Candidate, problem *domain.Problem) float64 {
	deficit := float64(problem.EstimatedHours-c.Availability) / 40.0
	if deficit < 0 {
		deficit = 0
	}
	if deficit > 1 {
		deficit = 1
	}
	return deficit
}

// ParticipantCandidate adapts a Participant into a Candidate for
// cost_individual.
func ParticipantCandidate(p *domain.Participant) Candidate {
	return Candidate{
		RoleSupport:      p.RoleSupport(),
		SkillLevel:       p.SkillLevel,
		Motivation:       p.Motivation,
		AmbiguityComfort: float64(p.AmbiguityComfort),
		Availability:     p.AvailabilityHours,
	}
}

// TeamCandidate adapts a TeamVector into a Candidate for cost_team.
func TeamCandidate(tv *domain.TeamVector) Candidate {
	return Candidate{
		RoleSupport:      tv.RoleWeights,
		SkillLevel:       tv.SkillLevel,
		Motivation:       tv.AvgMotivation,
		AmbiguityComfort: tv.AvgAmbiguity,
		Availability:     tv.MinAvailability,
	}
}
