package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cubature/internal/config"
	"cubature/internal/rule"
)

func TestBuildRuleKinds(t *testing.T) {
	tests := []struct {
		name string
		spec config.RuleSpec
		dims int
	}{
		{"gauss-kronrod 1d", config.RuleSpec{Kind: "gauss-kronrod", Points: 21}, 1},
		{"gauss-kronrod 2d product", config.RuleSpec{Kind: "gauss-kronrod", Points: 15}, 2},
		{"gauss-legendre pair", config.RuleSpec{Kind: "gauss-legendre", Points: 10}, 1},
		{"newton-cotes pair", config.RuleSpec{Kind: "newton-cotes", Points: 8}, 3},
		{"newton-cotes open", config.RuleSpec{Kind: "newton-cotes", Points: 8, Open: true}, 1},
		{"genz-malik", config.RuleSpec{Kind: "genz-malik"}, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := buildRule(tc.spec, tc.dims)
			require.NoError(t, err)

			// Every built rule must be usable by the adaptive driver.
			_, ok := r.(rule.ErrorEstimator)
			require.True(t, ok, "rule kind %q lacks error estimation", tc.spec.Kind)

			f, err := lookupIntegrand("sum-cos", tc.dims)
			require.NoError(t, err)

			a := make([]float64, tc.dims)
			b := make([]float64, tc.dims)
			for i := range b {
				b[i] = 1
			}
			est, err := r.Estimate(f, a, b)
			require.NoError(t, err)
			require.Len(t, est, 1)
		})
	}
}

func TestBuildRuleErrors(t *testing.T) {
	_, err := buildRule(config.RuleSpec{Kind: "monte-carlo"}, 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown rule kind")

	_, err = buildRule(config.RuleSpec{Kind: "gauss-kronrod", Points: 13}, 1)
	require.ErrorIs(t, err, rule.ErrInvalidParameter)

	_, err = buildRule(config.RuleSpec{Kind: "genz-malik"}, 1)
	require.ErrorIs(t, err, rule.ErrInvalidParameter)

	_, err = buildRule(config.RuleSpec{Kind: "gauss-kronrod", Points: 21}, 0)
	require.Error(t, err)
}

func TestLookupIntegrand(t *testing.T) {
	for _, name := range integrandNames() {
		dims := 2
		if name == "monomials" {
			dims = 1
		}
		f, err := lookupIntegrand(name, dims)
		require.NoError(t, err, name)
		require.NotNil(t, f, name)
	}

	_, err := lookupIntegrand("does-not-exist", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown integrand")

	_, err = lookupIntegrand("monomials", 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1-D only")
}
