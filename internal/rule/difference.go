package rule

// ErrorFromDifference gives an error estimator to a pair of fixed rules that
// have none of their own, such as two Newton-Cotes or two Gauss-Legendre
// rules of different order. The estimate is the higher-order rule's; the
// error estimate is the elementwise magnitude of the difference between the
// two, computed in a single weighted pass over the concatenated node sets.
//
// Both rules must share the same spatial dimension.
type ErrorFromDifference struct {
	Higher FixedRule
	Lower  FixedRule
}

var _ EmbeddedRule = (*ErrorFromDifference)(nil)

// Pair returns the higher-order rule's nodes and weights.
func (r *ErrorFromDifference) Pair() (NodesWeights, error) {
	return r.Higher.Pair()
}

// LowerPair returns the lower-order rule's nodes and weights.
func (r *ErrorFromDifference) LowerPair() (NodesWeights, error) {
	return r.Lower.Pair()
}

// Estimate returns the higher-order rule's estimate over [a, b].
func (r *ErrorFromDifference) Estimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateFixed(r, f, a, b)
}

// ErrorEstimate returns |higher(f) - lower(f)| over [a, b].
func (r *ErrorFromDifference) ErrorEstimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateEmbeddedError(r, f, a, b)
}
