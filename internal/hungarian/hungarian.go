// Package hungarian implements the Kuhn-Munkres algorithm for optimal
// minimum-cost bipartite assignment on a rectangular, non-negative cost
// matrix, as required by spec §4.2. The labeling/augmenting-path kernel
// below is adapted from github.com/charles-haynes/munkres, itself a Go
// port of the Kevin L. Stern Java implementation; the row/column
// pre-reduction heuristic that port keeps is dropped here since
// seedJobLabels already produces a feasible labeling without it, and the
// per-job slack bookkeeping is collapsed into one struct slice instead of
// two parallel arrays.
package hungarian

import (
	"errors"
	"math"
)

// ErrInvalidCost is returned when the cost matrix contains a negative,
// infinite, or NaN entry.
var ErrInvalidCost = errors.New("hungarian: invalid cost matrix entry")

// Pair is one (row, col) assignment in the solution.
type Pair struct {
	Row int
	Col int
}

// Result is the outcome of solving a cost matrix: the chosen pairs (sorted
// lexicographically by row, then col, for deterministic tie-breaking) and
// their total cost.
type Result struct {
	Pairs []Pair
	Cost  float64
}

// Solve finds a minimum-cost assignment over cost, a rows x cols matrix.
// Rectangular matrices are handled by implicit padding: padding entries use
// a sentinel cost strictly greater than any real entry, and pairs touching
// only padding are excluded from the result. An empty dimension returns an
// empty, zero-cost result. Non-finite or negative entries are rejected with
// ErrInvalidCost.
func Solve(cost [][]float64) (Result, error) {
	rows := len(cost)
	if rows == 0 {
		return Result{}, nil
	}
	cols := len(cost[0])
	if cols == 0 {
		return Result{}, nil
	}
	for _, row := range cost {
		if len(row) != cols {
			return Result{}, ErrInvalidCost
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return Result{}, ErrInvalidCost
			}
		}
	}

	dim := rows
	if cols > dim {
		dim = cols
	}

	maxEntry := 0.0
	for _, row := range cost {
		for _, v := range row {
			if v > maxEntry {
				maxEntry = v
			}
		}
	}
	padCost := maxEntry*float64(dim) + 1

	square := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		square[i] = make([]float64, dim)
		for j := 0; j < dim; j++ {
			if i < rows && j < cols {
				square[i][j] = cost[i][j]
			} else {
				square[i][j] = padCost
			}
		}
	}

	solver := newSolver(square)
	jobForWorker := solver.solve()

	result := Result{}
	for w := 0; w < rows; w++ {
		j := jobForWorker[w]
		if j < 0 || j >= cols {
			continue
		}
		result.Pairs = append(result.Pairs, Pair{Row: w, Col: j})
		result.Cost += cost[w][j]
	}
	return result, nil
}

// jobSlack tracks, for one job not yet reached by the current augmenting
// search, the smallest slack edge into it from a committed worker and
// which worker achieves it.
type jobSlack struct {
	value  float64
	worker int
}

// solver holds the labeling-algorithm state for a square, already-padded
// matrix: dual weights (potentials) on each side, the current matching,
// and the bookkeeping for one Hungarian tree search.
type solver struct {
	cost [][]float64
	dim  int

	potentialWorker, potentialJob []float64
	slackByJob                    []jobSlack
	matchJobOfWorker              []int
	matchWorkerOfJob              []int
	treeParentOfJob               []int
	inTree                        []bool
}

func newSolver(cost [][]float64) *solver {
	dim := len(cost)
	s := &solver{
		cost:              cost,
		dim:               dim,
		potentialWorker:   make([]float64, dim),
		potentialJob:      make([]float64, dim),
		slackByJob:        make([]jobSlack, dim),
		matchJobOfWorker:  make([]int, dim),
		matchWorkerOfJob:  make([]int, dim),
		treeParentOfJob:   make([]int, dim),
		inTree:            make([]bool, dim),
	}
	for i := 0; i < dim; i++ {
		s.matchJobOfWorker[i] = -1
		s.matchWorkerOfJob[i] = -1
	}
	return s
}

// solve runs the labeling algorithm to completion and returns, per worker,
// the job it was matched to.
func (s *solver) solve() []int {
	s.seedJobLabels()
	s.seedGreedyMatches()

	for w := s.nextUnmatchedWorker(); w < s.dim; w = s.nextUnmatchedWorker() {
		s.beginAugmentingSearch(w)
		s.growAugmentingTree()
	}
	return s.matchJobOfWorker
}

// seedJobLabels assigns zero potential to every worker and, to every job,
// the minimum cost among its incident edges. l(w)+l(j) <= cost(w,j) holds
// for every edge by construction, so this is already a feasible labeling.
func (s *solver) seedJobLabels() {
	for j := range s.potentialJob {
		s.potentialJob[j] = math.Inf(1)
	}
	for w := 0; w < s.dim; w++ {
		for j := 0; j < s.dim; j++ {
			if s.cost[w][j] < s.potentialJob[j] {
				s.potentialJob[j] = s.cost[w][j]
			}
		}
	}
}

// seedGreedyMatches jump-starts the matching by claiming every zero-slack
// edge between two still-unmatched endpoints.
func (s *solver) seedGreedyMatches() {
	for w := 0; w < s.dim; w++ {
		for j := 0; j < s.dim; j++ {
			if s.matchJobOfWorker[w] == -1 &&
				s.matchWorkerOfJob[j] == -1 &&
				s.cost[w][j]-s.potentialWorker[w]-s.potentialJob[j] == 0 {
				s.assign(w, j)
			}
		}
	}
}

func (s *solver) nextUnmatchedWorker() int {
	for w, j := range s.matchJobOfWorker {
		if j == -1 {
			return w
		}
	}
	return s.dim
}

// beginAugmentingSearch roots a fresh equality-subgraph search at worker w.
func (s *solver) beginAugmentingSearch(w int) {
	for i := range s.inTree {
		s.inTree[i] = false
	}
	for i := range s.treeParentOfJob {
		s.treeParentOfJob[i] = -1
	}
	s.inTree[w] = true
	for j := 0; j < s.dim; j++ {
		s.slackByJob[j] = jobSlack{
			value:  s.cost[w][j] - s.potentialWorker[w] - s.potentialJob[j],
			worker: w,
		}
	}
}

// growAugmentingTree grows the Hungarian tree rooted by beginAugmentingSearch
// one zero-slack edge at a time, tightening potentials whenever the
// frontier runs out of zero-slack edges, until an augmenting path is found
// and the matching is extended.
func (s *solver) growAugmentingTree() {
	for {
		job := -1
		worker := -1
		slack := math.Inf(1)
		for j := 0; j < s.dim; j++ {
			if s.treeParentOfJob[j] == -1 && s.slackByJob[j].value < slack {
				slack = s.slackByJob[j].value
				worker = s.slackByJob[j].worker
				job = j
			}
		}
		if slack > 0 {
			s.tightenSlack(slack)
		}
		s.treeParentOfJob[job] = worker

		if s.matchWorkerOfJob[job] == -1 {
			s.augmentAlong(job)
			return
		}

		next := s.matchWorkerOfJob[job]
		s.inTree[next] = true
		for j := 0; j < s.dim; j++ {
			if s.treeParentOfJob[j] != -1 {
				continue
			}
			candidate := s.cost[next][j] - s.potentialWorker[next] - s.potentialJob[j]
			if candidate < s.slackByJob[j].value {
				s.slackByJob[j] = jobSlack{value: candidate, worker: next}
			}
		}
	}
}

// augmentAlong flips every matched/unmatched edge on the path back to the
// search root, growing the matching by one pair.
func (s *solver) augmentAlong(job int) {
	for {
		worker := s.treeParentOfJob[job]
		previousJob := s.matchJobOfWorker[worker]
		s.assign(worker, job)
		if previousJob == -1 {
			return
		}
		job = previousJob
	}
}

func (s *solver) assign(w, j int) {
	s.matchJobOfWorker[w] = j
	s.matchWorkerOfJob[j] = w
}

// tightenSlack raises the potential of every committed worker and lowers
// the potential of every committed job by slack, exposing new zero-slack
// edges at the search frontier without breaking feasibility.
func (s *solver) tightenSlack(slack float64) {
	for w := 0; w < s.dim; w++ {
		if s.inTree[w] {
			s.potentialWorker[w] += slack
		}
	}
	for j := 0; j < s.dim; j++ {
		if s.treeParentOfJob[j] != -1 {
			s.potentialJob[j] -= slack
		} else {
			s.slackByJob[j].value -= slack
		}
	}
}
