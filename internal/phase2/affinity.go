package phase2

import (
	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/vectorops"
)

// affinityCost computes the pairwise affinity cost D(i,j) from spec §4.5:
// weighted role-diversity, skill-overlap, communication-style-clash, and
// motivation-similarity terms. Lower is a better pair to seed a team
// around. The raw weighted sum can go slightly negative (the motivation
// term is subtracted); it is clamped to 0 so it can be fed to
// HungarianSolver, which rejects negative cost entries.
func affinityCost(a, b *domain.Participant) float64 {
	raw := 0.4*roleDiversityPenalty(a, b) +
		0.3*skillOverlapPenalty(a, b) +
		0.3*commStyleClash(a, b) -
		0.2*motivationAffinity(a, b)
	if raw < 0 {
		return 0
	}
	return raw
}

// roleDiversityPenalty is the Jaccard overlap of two participants' primary
// role sets: 1.0 when they list identical roles (bad for diversity), 0
// when they share none.
func roleDiversityPenalty(a, b *domain.Participant) float64 {
	setA := roleSet(a)
	setB := roleSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for r := range setA {
		if setB[r] {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func roleSet(p *domain.Participant) map[domain.Role]bool {
	set := make(map[domain.Role]bool, len(p.PrimaryRoles))
	for _, r := range p.PrimaryRoles {
		set[r] = true
	}
	return set
}

// skillOverlapPenalty is the Jaccard overlap of two participants' nonzero
// skill sets: redundant skill coverage between two members of a future
// team is penalized since it does not grow the team's coverage.
func skillOverlapPenalty(a, b *domain.Participant) float64 {
	setA := skillSet(a)
	setB := skillSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for s := range setA {
		if setB[s] {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func skillSet(p *domain.Participant) map[string]bool {
	set := make(map[string]bool, len(p.Skills))
	for skill, level := range p.Skills {
		if level > 0 {
			set[skill] = true
		}
	}
	return set
}

// commStyleClash normalizes availability mismatch into [0,1], per spec
// §9's resolution of the open question: |avail_i - avail_j| / 40, clamped.
func commStyleClash(a, b *domain.Participant) float64 {
	diff := a.AvailabilityHours - b.AvailabilityHours
	if diff < 0 {
		diff = -diff
	}
	v := float64(diff) / 40.0
	if v > 1 {
		v = 1
	}
	return v
}

// motivationAffinity is the clamped, non-negative cosine similarity
// between two participants' motivation embeddings. Zero vectors (missing
// motivation) are neutral: similarity 0.
func motivationAffinity(a, b *domain.Participant) float64 {
	if vectorops.IsZero(a.Motivation) || vectorops.IsZero(b.Motivation) {
		return 0
	}
	sim := vectorops.Cosine(a.Motivation, b.Motivation)
	if sim < 0 {
		return 0
	}
	return sim
}
