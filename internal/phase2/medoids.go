package phase2

// seedMedoids selects k medoid indices from a pairwise cost matrix D using
// PAM (partitioning around medoids): a greedy BUILD phase followed by a
// SWAP phase that locally improves total within-cluster cost. Both phases
// are deterministic given D and the input order; no randomness is
// involved. The random_seed override (spec §4.4, §6) is not read here or
// by the Hungarian solver, whose tie-breaking is fixed lexicographically,
// so it has no effect on this step's outcome.
func seedMedoids(d [][]float64, k int) []int {
	n := len(d)
	if k <= 0 || n == 0 {
		return nil
	}
	if k >= n {
		medoids := make([]int, n)
		for i := range medoids {
			medoids[i] = i
		}
		return medoids
	}

	medoids := buildPhase(d, k)
	medoids = swapPhase(d, medoids)
	return medoids
}

func buildPhase(d [][]float64, k int) []int {
	n := len(d)
	chosen := make(map[int]bool, k)

	first := 0
	bestSum := rowSum(d, 0)
	for i := 1; i < n; i++ {
		sum := rowSum(d, i)
		if sum < bestSum {
			bestSum = sum
			first = i
		}
	}
	medoids := []int{first}
	chosen[first] = true

	for len(medoids) < k {
		best := -1
		bestTotal := 0.0
		for i := 0; i < n; i++ {
			if chosen[i] {
				continue
			}
			total := 0.0
			for j := 0; j < n; j++ {
				total += nearestDistance(d, j, append(medoids, i))
			}
			if best == -1 || total < bestTotal {
				best = i
				bestTotal = total
			}
		}
		medoids = append(medoids, best)
		chosen[best] = true
	}
	return medoids
}

func swapPhase(d [][]float64, medoids []int) []int {
	n := len(d)
	current := append([]int{}, medoids...)
	currentCost := totalCost(d, current)

	improved := true
	for improved {
		improved = false
		inCluster := make(map[int]bool, len(current))
		for _, m := range current {
			inCluster[m] = true
		}
		for mi := range current {
			for i := 0; i < n; i++ {
				if inCluster[i] {
					continue
				}
				candidate := append([]int{}, current...)
				candidate[mi] = i
				cost := totalCost(d, candidate)
				if cost < currentCost-1e-9 {
					current = candidate
					currentCost = cost
					inCluster = make(map[int]bool, len(current))
					for _, m := range current {
						inCluster[m] = true
					}
					improved = true
				}
			}
		}
	}
	return current
}

func rowSum(d [][]float64, row int) float64 {
	sum := 0.0
	for _, v := range d[row] {
		sum += v
	}
	return sum
}

func nearestDistance(d [][]float64, point int, medoids []int) float64 {
	min := d[point][medoids[0]]
	for _, m := range medoids[1:] {
		if d[point][m] < min {
			min = d[point][m]
		}
	}
	return min
}

func totalCost(d [][]float64, medoids []int) float64 {
	total := 0.0
	for j := range d {
		total += nearestDistance(d, j, medoids)
	}
	return total
}
