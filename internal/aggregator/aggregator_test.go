package aggregator_test

import (
	"math/rand"
	"testing"

	"github.com/dom/matchcore/internal/aggregator"
	"github.com/dom/matchcore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func buildMembers() []*domain.Participant {
	return []*domain.Participant{
		{PrimaryRoles: []domain.Role{domain.RoleLead}, Skills: map[string]int{"go": 4, "design": 2}, AvailabilityHours: 10, AmbiguityComfort: 6, LeadershipPref: true, Motivation: []float64{1, 0}},
		{PrimaryRoles: []domain.Role{domain.RoleBuilder}, Skills: map[string]int{"go": 2}, AvailabilityHours: 5, AmbiguityComfort: 4, Motivation: []float64{0, 1}},
		{PrimaryRoles: []domain.Role{domain.RoleDesigner, domain.RoleResearcher}, Skills: map[string]int{"design": 5}, AvailabilityHours: 20, AmbiguityComfort: 8},
	}
}

func TestAggregate_BasicRules(t *testing.T) {
	members := buildMembers()
	tv := aggregator.Aggregate(members, []string{"go", "design"})

	assert.InDelta(t, (4.0+2.0+0.0)/3.0, tv.AvgSkillLevels["go"], 1e-9)
	assert.InDelta(t, (2.0+0.0+5.0)/3.0, tv.AvgSkillLevels["design"], 1e-9)
	assert.Equal(t, 5, tv.MinAvailability)
	assert.InDelta(t, (6.0+4.0+8.0)/3.0, tv.AvgAmbiguity, 1e-9)

	sumRoleWeights := 0.0
	for _, w := range tv.RoleWeights {
		sumRoleWeights += w
	}
	assert.InDelta(t, 1.0, sumRoleWeights, 1e-9)
}

func TestAggregate_PermutationInvariant(t *testing.T) {
	members := buildMembers()
	base := aggregator.Aggregate(members, []string{"go", "design"})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		shuffled := append([]*domain.Participant{}, members...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		tv := aggregator.Aggregate(shuffled, []string{"go", "design"})
		assert.Equal(t, base.AvgSkillLevels, tv.AvgSkillLevels)
		assert.Equal(t, base.MinAvailability, tv.MinAvailability)
		assert.InDelta(t, base.AvgAmbiguity, tv.AvgAmbiguity, 1e-9)
	}
}

func TestAggregate_EmptyTeam(t *testing.T) {
	tv := aggregator.Aggregate(nil, []string{"go"})
	assert.Equal(t, 0.0, tv.AvgSkillLevels["go"])
	assert.Empty(t, tv.RoleWeights)
}

func TestMetrics_LeadershipMissing(t *testing.T) {
	members := buildMembers()
	members[0].LeadershipPref = false
	tv := aggregator.Aggregate(members, nil)
	metrics := aggregator.Metrics(members, tv, nil)
	assert.True(t, metrics.LeadershipMissing)
}

func TestMetrics_RoleCoverageAndBalance(t *testing.T) {
	members := buildMembers()
	tv := aggregator.Aggregate(members, nil)
	metrics := aggregator.Metrics(members, tv, aggregator.SkillImportance{"go": 1.0, "design": 0.5})

	assert.InDelta(t, 4.0/5.0, metrics.RoleCoverage, 1e-9)
	assert.GreaterOrEqual(t, metrics.DiversityScore, 0.0)
	assert.LessOrEqual(t, metrics.DiversityScore, 1.0)
	assert.True(t, metrics.RoleBalanceFlag)
}
