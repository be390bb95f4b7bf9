// Package aggregator reduces a team of participants to a single
// TeamVector and computes its diversity/coverage/balance metrics, per spec
// §4.3. All functions here are deterministic pure functions of team
// contents — permuting member order must not change the result (spec §8).
package aggregator

import (
	"math"

	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/vectorops"
)

// roleBalanceThreshold returns τ for a team of the given size, per spec
// §4.3's role_balance_flag rule.
func roleBalanceThreshold(teamSize int) float64 {
	switch {
	case teamSize <= 2:
		return 1.0
	case teamSize <= 4:
		return 0.75
	default:
		return 0.60
	}
}

// Aggregate reduces members into a TeamVector. skills is the full set of
// skill names referenced anywhere in the run (the "skill registry" from
// spec §9), so avg_skill_levels has a stable key set regardless of which
// skills any individual member reported.
func Aggregate(members []*domain.Participant, skills []string) domain.TeamVector {
	tv := domain.TeamVector{
		AvgSkillLevels: make(map[string]float64, len(skills)),
		RoleWeights:    make(map[domain.Role]float64, len(domain.AllRoles)),
	}
	if len(members) == 0 {
		return tv
	}

	for _, skill := range skills {
		sum := 0
		for _, m := range members {
			sum += m.SkillLevel(skill)
		}
		tv.AvgSkillLevels[skill] = float64(sum) / float64(len(members))
	}

	roleCounts := make(map[domain.Role]int)
	totalListings := 0
	for _, m := range members {
		for _, r := range m.PrimaryRoles {
			roleCounts[r]++
			totalListings++
		}
	}
	if totalListings > 0 {
		for role, count := range roleCounts {
			tv.RoleWeights[role] = float64(count) / float64(totalListings)
		}
	}

	minAvail := members[0].AvailabilityHours
	for _, m := range members[1:] {
		if m.AvailabilityHours < minAvail {
			minAvail = m.AvailabilityHours
		}
	}
	tv.MinAvailability = minAvail

	vecs := make([][]float64, 0, len(members))
	for _, m := range members {
		if !vectorops.IsZero(m.Motivation) {
			vecs = append(vecs, m.Motivation)
		}
	}
	if len(vecs) > 0 {
		tv.AvgMotivation = vectorops.MeanPoolNormalized(vecs)
	}

	ambSum := 0
	confSum := 0.0
	for _, m := range members {
		ambSum += m.AmbiguityComfort
		confSum += memberConfidence(m)
	}
	tv.AvgAmbiguity = float64(ambSum) / float64(len(members))
	tv.AvgConfidenceScore = confSum / float64(len(members))

	return tv
}

// memberConfidence is mean(member skills)/5, per spec §4.3's
// avg_confidence_score rule, computed per member before averaging across
// the team.
func memberConfidence(m *domain.Participant) float64 {
	if len(m.Skills) == 0 {
		return 0
	}
	sum := 0
	for _, level := range m.Skills {
		sum += domain.ClampSkillLevel(level)
	}
	return (float64(sum) / float64(len(m.Skills))) / 5.0
}

// SkillImportance is the fixed importance vocabulary V_imp from spec §4.3:
// per-skill weights w_s in (0,1] used by the skills_covered metric.
type SkillImportance map[string]float64

// Metrics computes the TeamMetrics for a team given its members, its
// aggregated vector, and the skill importance vocabulary.
// LeadershipMissing is set when no member has a leadership preference.
func Metrics(members []*domain.Participant, tv domain.TeamVector, importance SkillImportance) domain.TeamMetrics {
	teamSize := len(members)
	m := domain.TeamMetrics{}
	if teamSize == 0 {
		return m
	}

	distinctRoles := make(map[domain.Role]bool)
	roleCounts := make(map[domain.Role]int)
	distinctSkills := make(map[string]bool)
	leader := false
	for _, p := range members {
		for _, r := range p.PrimaryRoles {
			distinctRoles[r] = true
			roleCounts[r]++
		}
		for skill, level := range p.Skills {
			if level > 0 {
				distinctSkills[skill] = true
			}
		}
		if p.LeadershipPref {
			leader = true
		}
	}

	m.RoleCoverage = float64(len(distinctRoles)) / float64(len(domain.AllRoles))

	if len(importance) > 0 {
		maxLevel := make(map[string]int, len(importance))
		for skill := range importance {
			for _, p := range members {
				lvl := p.SkillLevel(skill)
				if lvl > maxLevel[skill] {
					maxLevel[skill] = lvl
				}
			}
		}
		weightedSum, weightTotal := 0.0, 0.0
		for skill, w := range importance {
			weightedSum += w * (float64(maxLevel[skill]) / 5.0)
			weightTotal += w
		}
		if weightTotal > 0 {
			m.SkillsCovered = weightedSum / weightTotal
		}
	}

	roleBonus := math.Min(0.3, 0.1*float64(len(distinctRoles)))
	skillBonus := math.Min(0.2, 0.1*(float64(len(distinctSkills))/float64(teamSize)))
	diversity := 0.6*m.RoleCoverage + 0.4*m.SkillsCovered + roleBonus + skillBonus
	m.DiversityScore = math.Min(1, diversity)

	maxRoleCount := 0
	for _, count := range roleCounts {
		if count > maxRoleCount {
			maxRoleCount = count
		}
	}
	threshold := math.Ceil(float64(teamSize) * roleBalanceThreshold(teamSize))
	m.RoleBalanceFlag = float64(maxRoleCount) <= threshold

	m.ConfidenceScore = clamp01(tv.AvgConfidenceScore)
	m.SynergyScore = clamp01(0.5*m.DiversityScore + 0.5*m.ConfidenceScore)
	m.LeadershipMissing = !leader

	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
