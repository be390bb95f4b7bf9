package phase2

import (
	"testing"

	"github.com/dom/matchcore/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSeedMedoids_TwoClearClusters(t *testing.T) {
	// Two tight pairs (0,1) and (2,3), far apart.
	d := [][]float64{
		{0, 0.1, 5, 5},
		{0.1, 0, 5, 5},
		{5, 5, 0, 0.1},
		{5, 5, 0.1, 0},
	}
	medoids := seedMedoids(d, 2)
	assert.Len(t, medoids, 2)

	inFirstPair := medoids[0] == 0 || medoids[0] == 1
	inSecondPair := medoids[1] == 2 || medoids[1] == 3
	assert.True(t, inFirstPair || inSecondPair)
}

func TestSeedMedoids_KGreaterEqualN(t *testing.T) {
	d := [][]float64{{0, 1}, {1, 0}}
	medoids := seedMedoids(d, 5)
	assert.Equal(t, []int{0, 1}, medoids)
}

func TestAffinityCost_IdenticalParticipantsIsZero(t *testing.T) {
	p := &domain.Participant{ID: uuid.New(), AvailabilityHours: 10}
	assert.Equal(t, 0.0, affinityCost(p, p))
}
