package rule

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// GenzMalik is the Genz-Malik degree-7 cubature rule with the embedded
// degree-5 rule for error estimation. Unlike product rules its node count
// grows polynomially in the dimension (plus one 2^ndim corner family), which
// makes it the usual choice for moderate-dimensional integrals.
//
// The rule is built from five symmetric node families on [-1,1]^ndim: the
// origin, single nonzero coordinates at two scales, coordinate pairs at a
// third scale, and the full sign combinations of all coordinates at a
// fourth. Weights are closed-form polynomials in ndim. The degree-5 rule
// shares all nodes except the sign-combination family.
//
// Only defined for ndim >= 2.
type GenzMalik struct {
	ndim int

	higherOnce sync.Once
	higher     NodesWeights

	lowerOnce sync.Once
	lower     NodesWeights
}

var _ EmbeddedRule = (*GenzMalik)(nil)

// NewGenzMalik returns the degree-7/5 Genz-Malik rule for ndim dimensions.
func NewGenzMalik(ndim int) (*GenzMalik, error) {
	return NewGenzMalikDegree(ndim, 7, 5)
}

// NewGenzMalikDegree returns the Genz-Malik rule with explicit degrees. Only
// the (7, 5) embedded pair is implemented.
func NewGenzMalikDegree(ndim, degree, lowerDegree int) (*GenzMalik, error) {
	if ndim < 2 {
		return nil, fmt.Errorf("%w: Genz-Malik is only defined for ndim >= 2, got %d", ErrInvalidParameter, ndim)
	}
	if degree != 7 || lowerDegree != 5 {
		return nil, fmt.Errorf("%w: Genz-Malik degrees (%d, %d) not implemented, only (7, 5)", ErrInvalidParameter, degree, lowerDegree)
	}
	return &GenzMalik{ndim: ndim}, nil
}

// Scale parameters of the symmetric node families.
var (
	genzMalikLambda2 = math.Sqrt(9.0 / 70.0)
	genzMalikLambda3 = math.Sqrt(9.0 / 10.0)
	genzMalikLambda4 = math.Sqrt(9.0 / 10.0)
	genzMalikLambda5 = math.Sqrt(9.0 / 19.0)
)

// Estimate returns the degree-7 estimate over [a, b].
func (r *GenzMalik) Estimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateFixed(r, f, a, b)
}

// ErrorEstimate returns |degree7(f) - degree5(f)| over [a, b].
func (r *GenzMalik) ErrorEstimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateEmbeddedError(r, f, a, b)
}

// Pair returns the degree-7 nodes and weights.
func (r *GenzMalik) Pair() (NodesWeights, error) {
	r.higherOnce.Do(func() {
		n := r.ndim
		cols := r.symmetricFamilies(true)

		nf := float64(n)
		scale := math.Exp2(nf)
		w1 := scale * (12824 - 9120*nf + 400*nf*nf) / 19683
		w2 := scale * 980 / 6561
		w3 := scale * (1820 - 400*nf) / 19683
		w4 := scale * 200 / 19683
		w5 := 6859.0 / 19683

		weights := repeatWeights(
			[]float64{w1, w2, w3, w4, w5},
			[]int{1, 2 * n, 2 * n, 2 * n * (n - 1), 1 << n},
		)
		r.higher = packColumns(cols, weights)
	})
	return r.higher, nil
}

// LowerPair returns the degree-5 nodes and weights.
func (r *GenzMalik) LowerPair() (NodesWeights, error) {
	r.lowerOnce.Do(func() {
		n := r.ndim
		cols := r.symmetricFamilies(false)

		nf := float64(n)
		scale := math.Exp2(nf)
		w1 := scale * (729 - 950*nf + 50*nf*nf) / 729
		w2 := scale * 245 / 486
		w3 := scale * (265 - 100*nf) / 1458
		w4 := scale * 25 / 729

		weights := repeatWeights(
			[]float64{w1, w2, w3, w4},
			[]int{1, 2 * n, 2 * n, 2 * n * (n - 1)},
		)
		r.lower = packColumns(cols, weights)
	})
	return r.lower, nil
}

// symmetricFamilies generates the node columns in family order: origin,
// ±lambda2 singletons, ±lambda3 singletons, lambda4 coordinate pairs, and,
// for the full degree-7 rule, all sign combinations of lambda5.
func (r *GenzMalik) symmetricFamilies(withCorners bool) [][]float64 {
	n := r.ndim
	size := 1 + 2*(n+1)*n
	if withCorners {
		size += 1 << n
	}

	cols := make([][]float64, 0, size)
	cols = append(cols, make([]float64, n))

	cols = append(cols, distinctPermutations(singleton(genzMalikLambda2, n))...)
	cols = append(cols, distinctPermutations(singleton(-genzMalikLambda2, n))...)
	cols = append(cols, distinctPermutations(singleton(genzMalikLambda3, n))...)
	cols = append(cols, distinctPermutations(singleton(-genzMalikLambda3, n))...)
	cols = append(cols, distinctPermutations(pairPattern(genzMalikLambda4, genzMalikLambda4, n))...)
	cols = append(cols, distinctPermutations(pairPattern(genzMalikLambda4, -genzMalikLambda4, n))...)
	cols = append(cols, distinctPermutations(pairPattern(-genzMalikLambda4, -genzMalikLambda4, n))...)

	if withCorners {
		cols = append(cols, signCombinations(genzMalikLambda5, n)...)
	}
	return cols
}

// singleton is the pattern with v in one slot and zeros elsewhere.
func singleton(v float64, n int) []float64 {
	p := make([]float64, n)
	p[0] = v
	return p
}

// pairPattern is the pattern with v1 and v2 in two slots and zeros elsewhere.
func pairPattern(v1, v2 float64, n int) []float64 {
	p := make([]float64, n)
	p[0], p[1] = v1, v2
	return p
}

// distinctPermutations returns every distinct placement of the pattern's
// values across its slots, without duplicates from repeated values. It walks
// permutations lexicographically from the sorted pattern: find the largest i
// with p[i] < p[i+1], swap p[i] with the largest greater element to its
// right, reverse the tail, and stop when no such i exists.
func distinctPermutations(pattern []float64) [][]float64 {
	p := append([]float64(nil), pattern...)
	sort.Float64s(p)
	size := len(p)

	var out [][]float64
	for {
		out = append(out, append([]float64(nil), p...))

		i := size - 2
		for ; i >= 0; i-- {
			if p[i] < p[i+1] {
				break
			}
		}
		if i < 0 {
			return out
		}

		j := size - 1
		for ; j > i; j-- {
			if p[i] < p[j] {
				break
			}
		}
		p[i], p[j] = p[j], p[i]

		for l, r := i+1, size-1; l < r; l, r = l+1, r-1 {
			p[l], p[r] = p[r], p[l]
		}
	}
}

// signCombinations returns all 2^n columns with every coordinate at ±v.
func signCombinations(v float64, n int) [][]float64 {
	out := make([][]float64, 1<<n)
	for b := range out {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			if b&(1<<(n-1-i)) == 0 {
				col[i] = v
			} else {
				col[i] = -v
			}
		}
		out[b] = col
	}
	return out
}

// repeatWeights expands values[i] repeated counts[i] times, in order.
func repeatWeights(values []float64, counts []int) []float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make([]float64, 0, total)
	for i, v := range values {
		for c := 0; c < counts[i]; c++ {
			out = append(out, v)
		}
	}
	return out
}

// packColumns assembles column vectors into a d×m node matrix.
func packColumns(cols [][]float64, weights []float64) NodesWeights {
	d := len(cols[0])
	m := len(cols)
	nodes := mat.NewDense(d, m, nil)
	for j, col := range cols {
		for i, v := range col {
			nodes.Set(i, j, v)
		}
	}
	return NodesWeights{Nodes: nodes, Weights: weights}
}
