package rule

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewGaussKronrodUnsupportedSizes(t *testing.T) {
	for _, n := range []int{0, 7, 14, 16, 20, 31} {
		_, err := NewGaussKronrod(n)
		require.ErrorIs(t, err, ErrInvalidParameter, "npoints=%d", n)
	}
}

func TestGaussKronrodTables(t *testing.T) {
	for _, n := range []int{15, 21} {
		gk, err := NewGaussKronrod(n)
		require.NoError(t, err)

		nw, err := gk.Pair()
		require.NoError(t, err)
		require.Equal(t, 1, nw.Dim())
		require.Equal(t, n, nw.Points())

		sum := 0.0
		for _, w := range nw.Weights {
			sum += w
		}
		require.InDelta(t, 2.0, sum, 1e-12, "npoints=%d", n)

		lower, err := gk.LowerPair()
		require.NoError(t, err)
		require.Equal(t, n/2, lower.Points())
	}
}

// The nested Gauss-Legendre nodes are a subset of the Kronrod nodes.
func TestGaussKronrodNesting(t *testing.T) {
	gk, err := NewGaussKronrod(21)
	require.NoError(t, err)

	higher, err := gk.Pair()
	require.NoError(t, err)
	lower, err := gk.LowerPair()
	require.NoError(t, err)

	for j := 0; j < lower.Points(); j++ {
		node := lower.Nodes.At(0, j)
		found := false
		for k := 0; k < higher.Points(); k++ {
			if math.Abs(higher.Nodes.At(0, k)-node) < 1e-9 {
				found = true
				break
			}
		}
		require.True(t, found, "lower node %v missing from Kronrod extension", node)
	}
}

func TestGaussKronrodCosine(t *testing.T) {
	gk, err := NewGaussKronrod(21)
	require.NoError(t, err)

	f := func(x *mat.Dense) (*mat.Dense, error) {
		_, m := x.Dims()
		out := mat.NewDense(1, m, nil)
		for j := 0; j < m; j++ {
			out.Set(0, j, math.Cos(x.At(0, j)))
		}
		return out, nil
	}

	est, err := gk.Estimate(f, []float64{0}, []float64{1})
	require.NoError(t, err)
	require.InDelta(t, math.Sin(1), est[0], 1e-14)

	errEst, err := gk.ErrorEstimate(f, []float64{0}, []float64{1})
	require.NoError(t, err)
	require.Less(t, errEst[0], 1e-10)
}

// Product of two 15-point Gauss-Kronrod rules over [0,1]^2 for
// cos(x_1)+cos(x_2): the exact value is 2 sin 1.
func TestGaussKronrodProduct2D(t *testing.T) {
	gk, err := NewGaussKronrod(15)
	require.NoError(t, err)
	r := NewProduct(gk, gk)

	a, b := []float64{0, 0}, []float64{1, 1}

	est, err := r.Estimate(sumOfCosines(), a, b)
	require.NoError(t, err)
	require.InDelta(t, 2*math.Sin(1), est[0], 1e-12)

	errEst, err := r.ErrorEstimate(sumOfCosines(), a, b)
	require.NoError(t, err)
	require.Less(t, errEst[0], 1e-10)
}
