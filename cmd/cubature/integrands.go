package main

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"cubature/internal/rule"
)

// builtinIntegrands maps integrand names to constructors taking the spatial
// dimension. Integrands are vectorized over the point batch; scalar-valued
// ones return a single row.
var builtinIntegrands = map[string]func(dims int) (rule.Integrand, error){
	"sum-cos":   sumCosIntegrand,
	"prod-cos":  prodCosIntegrand,
	"gaussian":  gaussianIntegrand,
	"monomials": monomialsIntegrand,
}

func integrandNames() []string {
	names := make([]string, 0, len(builtinIntegrands))
	for name := range builtinIntegrands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupIntegrand(name string, dims int) (rule.Integrand, error) {
	ctor, ok := builtinIntegrands[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrand %q, available: %v", name, integrandNames())
	}
	return ctor(dims)
}

// sumCosIntegrand is f(x) = cos(x_1) + ... + cos(x_d).
func sumCosIntegrand(dims int) (rule.Integrand, error) {
	return func(x *mat.Dense) (*mat.Dense, error) {
		d, m := x.Dims()
		out := mat.NewDense(1, m, nil)
		for j := 0; j < m; j++ {
			sum := 0.0
			for i := 0; i < d; i++ {
				sum += math.Cos(x.At(i, j))
			}
			out.Set(0, j, sum)
		}
		return out, nil
	}, nil
}

// prodCosIntegrand is f(x) = cos(x_1) * ... * cos(x_d).
func prodCosIntegrand(dims int) (rule.Integrand, error) {
	return func(x *mat.Dense) (*mat.Dense, error) {
		d, m := x.Dims()
		out := mat.NewDense(1, m, nil)
		for j := 0; j < m; j++ {
			p := 1.0
			for i := 0; i < d; i++ {
				p *= math.Cos(x.At(i, j))
			}
			out.Set(0, j, p)
		}
		return out, nil
	}, nil
}

// gaussianIntegrand is f(x) = exp(-|x|^2).
func gaussianIntegrand(dims int) (rule.Integrand, error) {
	return func(x *mat.Dense) (*mat.Dense, error) {
		d, m := x.Dims()
		out := mat.NewDense(1, m, nil)
		for j := 0; j < m; j++ {
			sq := 0.0
			for i := 0; i < d; i++ {
				v := x.At(i, j)
				sq += v * v
			}
			out.Set(0, j, math.Exp(-sq))
		}
		return out, nil
	}, nil
}

// monomialsIntegrand is the vector-valued f(x) = (1, x, x^2, ..., x^9),
// defined for one dimension only.
func monomialsIntegrand(dims int) (rule.Integrand, error) {
	if dims != 1 {
		return nil, fmt.Errorf("monomials integrand is 1-D only, got %d dimensions", dims)
	}
	const degrees = 10
	return func(x *mat.Dense) (*mat.Dense, error) {
		_, m := x.Dims()
		out := mat.NewDense(degrees, m, nil)
		for j := 0; j < m; j++ {
			p := 1.0
			for n := 0; n < degrees; n++ {
				out.Set(n, j, p)
				p *= x.At(0, j)
			}
		}
		return out, nil
	}, nil
}
