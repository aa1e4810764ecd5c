package rule

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// GaussLegendre is the classical 1-D Gauss-Legendre rule of the given order
// on [-1, 1]. Nodes and weights come from gonum's Legendre provider.
//
// Gauss-Legendre has no error estimator of its own; pair two rules of
// different order with ErrorFromDifference to obtain one.
type GaussLegendre struct {
	npoints int

	once sync.Once
	pair NodesWeights
}

var _ FixedRule = (*GaussLegendre)(nil)

// NewGaussLegendre returns the Gauss-Legendre rule with npoints nodes.
// npoints must be at least 2.
func NewGaussLegendre(npoints int) (*GaussLegendre, error) {
	if npoints < 2 {
		return nil, fmt.Errorf("%w: Gauss-Legendre needs at least 2 nodes, got %d", ErrInvalidParameter, npoints)
	}
	return &GaussLegendre{npoints: npoints}, nil
}

// Estimate returns the rule's estimate over [a, b].
func (r *GaussLegendre) Estimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateFixed(r, f, a, b)
}

// Pair returns the reference nodes and weights.
func (r *GaussLegendre) Pair() (NodesWeights, error) {
	r.once.Do(func() {
		nodes := make([]float64, r.npoints)
		weights := make([]float64, r.npoints)
		quad.Legendre{}.FixedLocations(nodes, weights, -1, 1)

		r.pair = NodesWeights{
			Nodes:   mat.NewDense(1, r.npoints, nodes),
			Weights: weights,
		}
	})
	return r.pair, nil
}
