package rule

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestProductPairShape(t *testing.T) {
	gk15, err := NewGaussKronrod(15)
	require.NoError(t, err)
	gk21, err := NewGaussKronrod(21)
	require.NoError(t, err)

	r := NewProduct(gk15, gk21)

	higher, err := r.Pair()
	require.NoError(t, err)
	require.Equal(t, 2, higher.Dim())
	require.Equal(t, 15*21, higher.Points())

	lower, err := r.LowerPair()
	require.NoError(t, err)
	require.Equal(t, 7*10, lower.Points())
}

// The product rule's weights sum to the reference measure 2^d.
func TestProductWeightSum(t *testing.T) {
	gk, err := NewGaussKronrod(15)
	require.NoError(t, err)

	r := NewProduct(gk, gk, gk)
	nw, err := r.Pair()
	require.NoError(t, err)

	sum := 0.0
	for _, w := range nw.Weights {
		sum += w
	}
	require.InDelta(t, 8.0, sum, 1e-10)
}

// Nodes and weights stay aligned: each combined weight is the product of
// the factor weights at the same combined point.
func TestProductAlignment(t *testing.T) {
	ncA, err := NewNewtonCotes(3, false)
	require.NoError(t, err)
	ncB, err := NewNewtonCotes(2, false)
	require.NoError(t, err)

	pairA, err := ncA.Pair()
	require.NoError(t, err)
	pairB, err := ncB.Pair()
	require.NoError(t, err)

	combined := productPair([]NodesWeights{pairA, pairB})
	require.Equal(t, 6, combined.Points())

	for p := 0; p < combined.Points(); p++ {
		// Recover the factor indices from the combined node coordinates.
		var ia, ib = -1, -1
		for j := 0; j < pairA.Points(); j++ {
			if pairA.Nodes.At(0, j) == combined.Nodes.At(0, p) {
				ia = j
				break
			}
		}
		for j := 0; j < pairB.Points(); j++ {
			if pairB.Nodes.At(0, j) == combined.Nodes.At(1, p) {
				ib = j
				break
			}
		}
		require.GreaterOrEqual(t, ia, 0)
		require.GreaterOrEqual(t, ib, 0)
		require.InDelta(t, pairA.Weights[ia]*pairB.Weights[ib], combined.Weights[p], 1e-14)
	}
}

// A product rule's estimate and error estimate are the same linear
// functionals as ErrorFromDifference applied to the combined pairs.
func TestProductEquivalentToDifferenceOnCombinedPair(t *testing.T) {
	gk, err := NewGaussKronrod(15)
	require.NoError(t, err)
	product := NewProduct(gk, gk)

	combined := &combinedFixed{product: product}
	combinedLower := &combinedFixed{product: product, lower: true}
	efd := &ErrorFromDifference{Higher: combined, Lower: combinedLower}

	a, b := []float64{0, 0}, []float64{1, 2}
	f := sumOfCosines()

	wantEst, err := efd.Estimate(f, a, b)
	require.NoError(t, err)
	gotEst, err := product.Estimate(f, a, b)
	require.NoError(t, err)
	require.InDelta(t, wantEst[0], gotEst[0], 1e-14)

	wantErr, err := efd.ErrorEstimate(f, a, b)
	require.NoError(t, err)
	gotErr, err := product.ErrorEstimate(f, a, b)
	require.NoError(t, err)
	require.InDelta(t, wantErr[0], gotErr[0], 1e-14)
}

// combinedFixed exposes one of a product's combined pairs as a FixedRule.
type combinedFixed struct {
	product *Product
	lower   bool
}

func (c *combinedFixed) Pair() (NodesWeights, error) {
	if c.lower {
		return c.product.LowerPair()
	}
	return c.product.Pair()
}

func (c *combinedFixed) Estimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateFixed(c, f, a, b)
}

// Product of 1-D rules integrating a separable function: product of
// Gauss-Kronrod rules over [0,1]^2 for cos(x_1)cos(x_2) gives sin(1)^2.
func TestProductSeparable(t *testing.T) {
	gk, err := NewGaussKronrod(21)
	require.NoError(t, err)
	r := NewProduct(gk, gk)

	f := func(x *mat.Dense) (*mat.Dense, error) {
		_, m := x.Dims()
		out := mat.NewDense(1, m, nil)
		for j := 0; j < m; j++ {
			out.Set(0, j, math.Cos(x.At(0, j))*math.Cos(x.At(1, j)))
		}
		return out, nil
	}

	est, err := r.Estimate(f, []float64{0, 0}, []float64{1, 1})
	require.NoError(t, err)
	require.InDelta(t, math.Sin(1)*math.Sin(1), est[0], 1e-12)
}
