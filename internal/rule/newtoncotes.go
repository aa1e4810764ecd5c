package rule

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// NewtonCotes is a 1-D rule with equally spaced nodes on [-1, 1]. Closed
// rules include the interval endpoints; open rules use the interior points
// of an npoints-subinterval partition.
//
// Newton-Cotes has no error estimator of its own; pair two rules of
// different order with ErrorFromDifference to obtain one.
type NewtonCotes struct {
	npoints int
	open    bool

	once sync.Once
	pair NodesWeights
	err  error
}

var _ FixedRule = (*NewtonCotes)(nil)

// NewNewtonCotes returns the Newton-Cotes rule with npoints equally spaced
// nodes. npoints must be at least 2.
func NewNewtonCotes(npoints int, open bool) (*NewtonCotes, error) {
	if npoints < 2 {
		return nil, fmt.Errorf("%w: Newton-Cotes needs at least 2 points, got %d", ErrInvalidParameter, npoints)
	}
	return &NewtonCotes{npoints: npoints, open: open}, nil
}

// Estimate returns the rule's estimate over [a, b].
func (r *NewtonCotes) Estimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateFixed(r, f, a, b)
}

// Pair returns the reference nodes and moment-matched weights.
func (r *NewtonCotes) Pair() (NodesWeights, error) {
	r.once.Do(func() {
		nodes := make([]float64, r.npoints)
		if r.open {
			h := 2.0 / float64(r.npoints)
			fillLinspace(nodes, -1+h, 1-h)
		} else {
			fillLinspace(nodes, -1, 1)
		}

		weights, err := newtonCotesWeights(nodes)
		if err != nil {
			r.err = err
			return
		}
		r.pair = NodesWeights{
			Nodes:   mat.NewDense(1, r.npoints, nodes),
			Weights: weights,
		}
	})
	return r.pair, r.err
}

// fillLinspace fills dst with len(dst) evenly spaced values from lo to hi
// inclusive.
func fillLinspace(dst []float64, lo, hi float64) {
	n := len(dst)
	if n == 1 {
		dst[0] = lo
		return
	}
	step := (hi - lo) / float64(n-1)
	for i := range dst {
		dst[i] = lo + float64(i)*step
	}
	dst[n-1] = hi
}

// newtonCotesWeights solves for the weights that integrate the monomials
// x^0 .. x^(n-1) exactly on [-1, 1]: the linear system V^T w = m with V the
// Vandermonde matrix of the nodes and m_i the exact moment, 2/(i+1) for even
// i and 0 for odd i.
func newtonCotesWeights(nodes []float64) ([]float64, error) {
	n := len(nodes)

	vt := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := 1.0
			for e := 0; e < i; e++ {
				p *= nodes[j]
			}
			vt.Set(i, j, p)
		}
	}

	moments := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			moments.SetVec(i, 2/float64(i+1))
		}
	}

	var w mat.VecDense
	if err := w.SolveVec(vt, moments); err != nil {
		return nil, fmt.Errorf("solve Newton-Cotes moment system: %w", err)
	}

	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		weights[i] = w.AtVec(i)
	}
	return weights, nil
}
