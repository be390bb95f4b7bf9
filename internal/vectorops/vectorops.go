// Package vectorops implements the pure vector arithmetic shared by the
// cost model and the team aggregator: cosine similarity, mean pooling, and
// L2 normalization over fixed-dimension embeddings.
package vectorops

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// IsZero reports whether v is the zero vector (or empty), which spec §4.1
// treats as "missing motivation".
func IsZero(v []float64) bool {
	if len(v) == 0 {
		return true
	}
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean (L2) norm of v.
func Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged — callers must check IsZero before relying on the result being
// meaningful.
func Normalize(v []float64) []float64 {
	n := Norm(v)
	if n == 0 {
		out := make([]float64, len(v))
		copy(out, v)
		return out
	}
	out := make([]float64, len(v))
	copy(out, v)
	floats.Scale(1/n, out)
	return out
}

// Cosine returns the cosine similarity between a and b, in [-1,1]. Callers
// must check IsZero on both inputs first — cosine of a zero vector is
// undefined and this function returns 0 in that case rather than NaN.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	if IsZero(a) || IsZero(b) {
		return 0
	}
	dot := floats.Dot(a, b)
	denom := Norm(a) * Norm(b)
	if denom == 0 {
		return 0
	}
	sim := dot / denom
	if math.IsNaN(sim) {
		return 0
	}
	return sim
}

// MeanPool returns the element-wise mean of a set of equal-length vectors.
// Returns nil if vs is empty.
func MeanPool(vs [][]float64) []float64 {
	if len(vs) == 0 {
		return nil
	}
	dim := len(vs[0])
	sum := make([]float64, dim)
	for _, v := range vs {
		if len(v) != dim {
			continue
		}
		floats.Add(sum, v)
	}
	floats.Scale(1/float64(len(vs)), sum)
	return sum
}

// MeanPoolNormalized mean-pools vs and renormalizes the result to unit
// length if it is nonzero, matching the TeamVector aggregation rule for
// avg_motivation_embedding in spec §4.3.
func MeanPoolNormalized(vs [][]float64) []float64 {
	mean := MeanPool(vs)
	if mean == nil || IsZero(mean) {
		return mean
	}
	return Normalize(mean)
}
