// Package rule implements fixed cubature rules with embedded error
// estimation.
//
// A rule is a set of weighted evaluation points on the reference region
// [-1,1]^d. Estimating an integral over an arbitrary hyperrectangle [a,b]
// affinely maps the reference nodes onto [a,b] and takes the weighted sum of
// the integrand at the mapped points. Rules that carry a paired lower-order
// rule also estimate their own error as the magnitude of the difference
// between the two rules, evaluated in a single pass over the union of nodes.
//
// Integrands are vectorized: they receive a d×m matrix of m evaluation
// points and return a k×m matrix of values, one row per output component.
// Extra parameters of the integrand are closure-captured by the caller.
package rule

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for the failure modes of rule construction and use.
var (
	// ErrInvalidParameter reports a rule constructed with parameters
	// outside its supported range.
	ErrInvalidParameter = errors.New("invalid rule parameter")

	// ErrDimensionMismatch reports a rule applied to integration bounds of
	// a different spatial dimension.
	ErrDimensionMismatch = errors.New("rule and bounds have incompatible dimension")

	// ErrNoErrorEstimate reports a rule that does not carry an error
	// estimator. Callers needing error estimation should test for this
	// with errors.Is and reject the rule up front.
	ErrNoErrorEstimate = errors.New("rule does not support error estimation")
)

// Integrand evaluates a batch of points. x has one row per spatial
// dimension and one column per evaluation point; the result must have one
// column per evaluation point, with one row per output component.
type Integrand func(x *mat.Dense) (*mat.Dense, error)

// Rule estimates the integral of f over the hyperrectangle [a, b].
type Rule interface {
	// Estimate returns the approximated integral, one entry per output
	// component of the integrand.
	Estimate(f Integrand, a, b []float64) ([]float64, error)
}

// ErrorEstimator is the optional capability of a Rule to estimate its own
// error. Rules without a paired lower-order rule (plain Newton-Cotes,
// Gauss-Legendre) do not implement it; wrap them with ErrorFromDifference.
type ErrorEstimator interface {
	Rule

	// ErrorEstimate returns a non-negative error estimate with the same
	// shape as Estimate.
	ErrorEstimate(f Integrand, a, b []float64) ([]float64, error)
}

// EstimateError runs r's error estimator if it has one, and returns
// ErrNoErrorEstimate otherwise.
func EstimateError(r Rule, f Integrand, a, b []float64) ([]float64, error) {
	ee, ok := r.(ErrorEstimator)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNoErrorEstimate, r)
	}
	return ee.ErrorEstimate(f, a, b)
}

// NodesWeights is a concrete quadrature rule on the reference region
// [-1,1]^d: a d×m matrix of nodes and the m matching weights. For any rule
// exact on constants the weights sum to 2^d, the measure of the reference
// region.
type NodesWeights struct {
	Nodes   *mat.Dense
	Weights []float64
}

// Dim returns the spatial dimension of the rule.
func (nw NodesWeights) Dim() int {
	d, _ := nw.Nodes.Dims()
	return d
}

// Points returns the number of evaluation points.
func (nw NodesWeights) Points() int {
	_, m := nw.Nodes.Dims()
	return m
}

// FixedRule is a Rule backed by an explicit (nodes, weights) pair. Pair may
// compute the nodes lazily; implementations cache the result since it
// depends only on construction parameters.
type FixedRule interface {
	Rule

	// Pair returns the rule's reference nodes and weights.
	Pair() (NodesWeights, error)
}

// EmbeddedRule is a FixedRule carrying a paired lower-order rule used for
// error estimation.
type EmbeddedRule interface {
	FixedRule

	// LowerPair returns the reference nodes and weights of the paired
	// lower-order rule.
	LowerPair() (NodesWeights, error)
}

// apply maps nw's reference nodes from [-1,1]^d onto [a,b], evaluates f at
// the mapped points and returns the weighted sum over the point axis, one
// entry per output component of f.
func apply(f Integrand, a, b []float64, nw NodesWeights) ([]float64, error) {
	d, m := nw.Nodes.Dims()
	if d != len(a) || d != len(b) {
		return nil, fmt.Errorf("%w: rule nodes have dimension %d, bounds have dimension len(a)=%d, len(b)=%d",
			ErrDimensionMismatch, d, len(a), len(b))
	}

	// Affine change of coordinates per axis, x -> (x+1)*(b-a)/2 + a. The
	// weights pick up the Jacobian determinant of the map.
	mapped := mat.NewDense(d, m, nil)
	jacobian := 1.0
	for i := 0; i < d; i++ {
		half := (b[i] - a[i]) / 2
		jacobian *= half
		for j := 0; j < m; j++ {
			mapped.Set(i, j, (nw.Nodes.At(i, j)+1)*half+a[i])
		}
	}

	values, err := f(mapped)
	if err != nil {
		return nil, fmt.Errorf("evaluate integrand: %w", err)
	}

	k, mv := values.Dims()
	if mv != m {
		return nil, fmt.Errorf("integrand returned %d evaluation points, want %d", mv, m)
	}

	out := make([]float64, k)
	for i := 0; i < k; i++ {
		row := values.RawRowView(i)
		var sum float64
		for j := 0; j < m; j++ {
			sum += nw.Weights[j] * row[j]
		}
		out[i] = sum * jacobian
	}
	return out, nil
}

// differencePair concatenates a higher and lower rule into the single rule
// whose weighted sum equals higher(f) - lower(f). Sharing one pass over the
// union of nodes avoids evaluating f twice; duplicated nodes between the two
// sets are fine.
func differencePair(higher, lower NodesWeights) NodesWeights {
	d, mh := higher.Nodes.Dims()
	_, ml := lower.Nodes.Dims()

	nodes := mat.NewDense(d, mh+ml, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < mh; j++ {
			nodes.Set(i, j, higher.Nodes.At(i, j))
		}
		for j := 0; j < ml; j++ {
			nodes.Set(i, mh+j, lower.Nodes.At(i, j))
		}
	}

	weights := make([]float64, mh+ml)
	copy(weights, higher.Weights)
	for j, w := range lower.Weights {
		weights[mh+j] = -w
	}
	return NodesWeights{Nodes: nodes, Weights: weights}
}

// estimateFixed is the shared Estimate implementation for fixed rules.
func estimateFixed(r FixedRule, f Integrand, a, b []float64) ([]float64, error) {
	nw, err := r.Pair()
	if err != nil {
		return nil, err
	}
	return apply(f, a, b, nw)
}

// estimateEmbeddedError is the shared ErrorEstimate implementation for
// embedded pairs: |higher(f) - lower(f)| elementwise, in one pass.
func estimateEmbeddedError(r EmbeddedRule, f Integrand, a, b []float64) ([]float64, error) {
	higher, err := r.Pair()
	if err != nil {
		return nil, err
	}
	lower, err := r.LowerPair()
	if err != nil {
		return nil, err
	}
	diff, err := apply(f, a, b, differencePair(higher, lower))
	if err != nil {
		return nil, err
	}
	for i, v := range diff {
		diff[i] = math.Abs(v)
	}
	return diff, nil
}
