// Package phase2 partitions each Phase 1 bucket into fixed-size teams,
// honoring role and leadership constraints, per spec §4.5.
package phase2

import (
	"context"
	"sort"

	"github.com/dom/matchcore/internal/aggregator"
	"github.com/dom/matchcore/internal/domain"
	"github.com/dom/matchcore/internal/hungarian"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// pressureWeight scales the role-coverage pressure term added on top of
// the raw affinity cost during slot filling (spec §4.5 step 2).
const pressureWeight = 0.15

// Input bundles one bucket's worth of work for FormBucket.
type Input struct {
	RunID        uuid.UUID
	ProblemID    uuid.UUID
	Entries      []domain.BucketEntry
	Participants map[uuid.UUID]*domain.Participant
	TeamSize     int
	Skills       []string
	Importance   aggregator.SkillImportance
}

// Result is the outcome of forming teams for one bucket.
type Result struct {
	ProblemID uuid.UUID
	Teams     []*domain.Team
	// Surplus holds participant IDs left out of every team: the worst-ranked
	// remainder when the bucket size is not a multiple of TeamSize (spec
	// §4.5 strict enforcement), every entry when the bucket is smaller than
	// TeamSize, and any member swapped out to make room for a leader.
	Surplus []uuid.UUID
}

// FormBucket partitions one problem's bucket into teams of exactly
// TeamSize, per spec §4.5. Team membership and surplus are deterministic
// given Entries order and TeamSize: the partitioning below consults
// neither real time nor an RNG. Team IDs are not: each team gets a fresh
// random UUID.
func FormBucket(in Input) (*Result, error) {
	n := len(in.Entries)
	res := &Result{ProblemID: in.ProblemID}

	if in.TeamSize <= 0 || n < in.TeamSize {
		for _, e := range in.Entries {
			res.Surplus = append(res.Surplus, e.ParticipantID)
		}
		return res, nil
	}

	sorted := append([]domain.BucketEntry{}, in.Entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	k := n / in.TeamSize
	keepCount := k * in.TeamSize

	kept := sorted[:keepCount]
	for _, e := range sorted[keepCount:] {
		res.Surplus = append(res.Surplus, e.ParticipantID)
	}

	members := make([]*domain.Participant, keepCount)
	for i, e := range kept {
		members[i] = in.Participants[e.ParticipantID]
	}

	d := make([][]float64, keepCount)
	for i := range d {
		d[i] = make([]float64, keepCount)
		for j := range d[i] {
			if i == j {
				continue
			}
			d[i][j] = affinityCost(members[i], members[j])
		}
	}

	medoids := seedMedoids(d, k)

	roleCounts := make([]map[domain.Role]int, k)
	for t := range roleCounts {
		roleCounts[t] = make(map[domain.Role]int)
	}
	for i := range members {
		team := 0
		best := d[i][medoids[0]]
		for t := 1; t < k; t++ {
			if d[i][medoids[t]] < best {
				best = d[i][medoids[t]]
				team = t
			}
		}
		for _, r := range members[i].PrimaryRoles {
			roleCounts[team][r]++
		}
	}

	cost := make([][]float64, keepCount)
	for i := range members {
		cost[i] = make([]float64, keepCount)
		for t := 0; t < k; t++ {
			base := d[i][medoids[t]]
			pressure := 0.0
			for _, r := range members[i].PrimaryRoles {
				pressure += float64(roleCounts[t][r])
			}
			pressure = pressureWeight * (pressure / float64(in.TeamSize))
			c := base + pressure
			for s := 0; s < in.TeamSize; s++ {
				col := t*in.TeamSize + s
				cost[i][col] = c
			}
		}
	}

	solved, err := hungarian.Solve(cost)
	if err != nil {
		return nil, domain.ErrInvalidCost
	}

	teamMembers := make([][]uuid.UUID, k)
	for _, pair := range solved.Pairs {
		t := pair.Col / in.TeamSize
		teamMembers[t] = append(teamMembers[t], members[pair.Row].ID)
	}

	surplusPool := make([]uuid.UUID, len(res.Surplus))
	copy(surplusPool, res.Surplus)

	teams := make([]*domain.Team, 0, k)
	for t := 0; t < k; t++ {
		memberIDs := teamMembers[t]
		hasLeader := false
		for _, id := range memberIDs {
			if in.Participants[id].LeadershipPref {
				hasLeader = true
				break
			}
		}

		leadershipMissing := false
		if !hasLeader {
			leaderIdx := -1
			for i, id := range surplusPool {
				if p, ok := in.Participants[id]; ok && p.LeadershipPref {
					leaderIdx = i
					break
				}
			}
			if leaderIdx >= 0 {
				leaderID := surplusPool[leaderIdx]
				worstIdx, _ := worstFitMember(in.Participants, memberIDs, members[medoids[t]])
				removed := memberIDs[worstIdx]
				memberIDs[worstIdx] = leaderID
				surplusPool = append(surplusPool[:leaderIdx], surplusPool[leaderIdx+1:]...)
				surplusPool = append(surplusPool, removed)
			} else {
				leadershipMissing = true
			}
		}

		teamParticipants := make([]*domain.Participant, len(memberIDs))
		for i, id := range memberIDs {
			teamParticipants[i] = in.Participants[id]
		}
		vector := aggregator.Aggregate(teamParticipants, in.Skills)
		metrics := aggregator.Metrics(teamParticipants, vector, in.Importance)
		metrics.LeadershipMissing = leadershipMissing

		teams = append(teams, &domain.Team{
			ID:              uuid.New(),
			RunID:           in.RunID,
			ProblemBucketID: in.ProblemID,
			MemberIDs:       memberIDs,
			FormationMethod: domain.FormationStrictEnforcement,
			Vector:          vector,
			Metrics:         metrics,
		})
	}

	res.Teams = teams
	res.Surplus = surplusPool
	return res, nil
}

// worstFitMember returns the index (within memberIDs) of the member with
// the highest affinity cost to the team's medoid, and that cost.
func worstFitMember(participants map[uuid.UUID]*domain.Participant, memberIDs []uuid.UUID, medoid *domain.Participant) (int, float64) {
	worstIdx := 0
	worstCost := affinityCost(participants[memberIDs[0]], medoid)
	for i := 1; i < len(memberIDs); i++ {
		c := affinityCost(participants[memberIDs[i]], medoid)
		if c > worstCost {
			worstCost = c
			worstIdx = i
		}
	}
	return worstIdx, worstCost
}

// FormAll runs FormBucket for every bucket in b concurrently (spec §5:
// independent buckets may be parallelized with worker-pool parallelism
// and no shared mutable state between workers).
func FormAll(ctx context.Context, runID uuid.UUID, b *domain.Bucket, participants map[uuid.UUID]*domain.Participant, teamSize int, skills []string, importance aggregator.SkillImportance) ([]*Result, error) {
	problemIDs := make([]uuid.UUID, 0, len(b.ByProblem))
	for id := range b.ByProblem {
		problemIDs = append(problemIDs, id)
	}
	sort.Slice(problemIDs, func(i, j int) bool { return problemIDs[i].String() < problemIDs[j].String() })

	results := make([]*Result, len(problemIDs))
	group, ctx := errgroup.WithContext(ctx)
	for idx, problemID := range problemIDs {
		idx, problemID := idx, problemID
		group.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			r, err := FormBucket(Input{
				RunID:        runID,
				ProblemID:    problemID,
				Entries:      b.ByProblem[problemID],
				Participants: participants,
				TeamSize:     teamSize,
				Skills:       skills,
				Importance:   importance,
			})
			if err != nil {
				return err
			}
			results[idx] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
