package rule

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Product composes lower-dimensional embedded rules into a single rule over
// their combined dimensions. Nodes are the Cartesian product of the factor
// node sets and each combined point's weight is the product of the factor
// weights; the paired lower-order rule is built the same way from each
// factor's lower rule.
//
// The combined pair is computed once on first use and cached.
type Product struct {
	factors []EmbeddedRule

	higherOnce sync.Once
	higher     NodesWeights
	higherErr  error

	lowerOnce sync.Once
	lower     NodesWeights
	lowerErr  error
}

var _ EmbeddedRule = (*Product)(nil)

// NewProduct returns the product of the given embedded rules, typically 1-D
// rules, one per axis of the integration region.
func NewProduct(factors ...EmbeddedRule) *Product {
	return &Product{factors: factors}
}

// Pair returns the combined higher-order nodes and weights.
func (r *Product) Pair() (NodesWeights, error) {
	r.higherOnce.Do(func() {
		r.higher, r.higherErr = r.combine(EmbeddedRule.Pair)
	})
	return r.higher, r.higherErr
}

// LowerPair returns the combined lower-order nodes and weights.
func (r *Product) LowerPair() (NodesWeights, error) {
	r.lowerOnce.Do(func() {
		r.lower, r.lowerErr = r.combine(EmbeddedRule.LowerPair)
	})
	return r.lower, r.lowerErr
}

// Estimate returns the combined higher-order estimate over [a, b].
func (r *Product) Estimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateFixed(r, f, a, b)
}

// ErrorEstimate returns the embedded-pair error estimate over [a, b].
func (r *Product) ErrorEstimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateEmbeddedError(r, f, a, b)
}

func (r *Product) combine(pair func(EmbeddedRule) (NodesWeights, error)) (NodesWeights, error) {
	pairs := make([]NodesWeights, len(r.factors))
	for i, factor := range r.factors {
		nw, err := pair(factor)
		if err != nil {
			return NodesWeights{}, err
		}
		pairs[i] = nw
	}
	return productPair(pairs), nil
}

// productPair walks the Cartesian product of the factor point sets. Combined
// points are ordered with the last factor's index varying fastest; nodes and
// weights use the same walk, so they stay aligned.
func productPair(pairs []NodesWeights) NodesWeights {
	dim, points := 0, 1
	for _, nw := range pairs {
		dim += nw.Dim()
		points *= nw.Points()
	}

	nodes := mat.NewDense(dim, points, nil)
	weights := make([]float64, points)

	idx := make([]int, len(pairs))
	for p := 0; p < points; p++ {
		w := 1.0
		row := 0
		for k, nw := range pairs {
			d := nw.Dim()
			for i := 0; i < d; i++ {
				nodes.Set(row+i, p, nw.Nodes.At(i, idx[k]))
			}
			w *= nw.Weights[idx[k]]
			row += d
		}
		weights[p] = w

		for k := len(pairs) - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < pairs[k].Points() {
				break
			}
			idx[k] = 0
		}
	}

	return NodesWeights{Nodes: nodes, Weights: weights}
}
