package main

import (
	"fmt"

	"cubature/internal/config"
	"cubature/internal/rule"
)

// buildRule constructs the rule a spec selects, for a region of the given
// dimension. 1-D kinds are expanded to a product rule when dims > 1; kinds
// without their own error estimator are paired with a lower-order rule of
// two fewer points through ErrorFromDifference. Every rule this returns
// supports error estimation, as the adaptive driver requires.
func buildRule(spec config.RuleSpec, dims int) (rule.Rule, error) {
	if dims < 1 {
		return nil, fmt.Errorf("rule needs at least 1 dimension, got %d", dims)
	}

	switch spec.Kind {
	case "genz-malik":
		return rule.NewGenzMalik(dims)

	case "gauss-kronrod":
		factory := func() (rule.EmbeddedRule, error) {
			return rule.NewGaussKronrod(spec.Points)
		}
		return productOf(factory, dims)

	case "gauss-legendre":
		factory := func() (rule.EmbeddedRule, error) {
			higher, err := rule.NewGaussLegendre(spec.Points)
			if err != nil {
				return nil, err
			}
			lower, err := rule.NewGaussLegendre(spec.Points - 2)
			if err != nil {
				return nil, err
			}
			return &rule.ErrorFromDifference{Higher: higher, Lower: lower}, nil
		}
		return productOf(factory, dims)

	case "newton-cotes":
		factory := func() (rule.EmbeddedRule, error) {
			higher, err := rule.NewNewtonCotes(spec.Points, spec.Open)
			if err != nil {
				return nil, err
			}
			lower, err := rule.NewNewtonCotes(spec.Points-2, spec.Open)
			if err != nil {
				return nil, err
			}
			return &rule.ErrorFromDifference{Higher: higher, Lower: lower}, nil
		}
		return productOf(factory, dims)

	default:
		return nil, fmt.Errorf("unknown rule kind %q", spec.Kind)
	}
}

// productOf builds dims independent 1-D factors and composes them. A single
// factor is returned as-is.
func productOf(factory func() (rule.EmbeddedRule, error), dims int) (rule.Rule, error) {
	factors := make([]rule.EmbeddedRule, dims)
	for i := range factors {
		factor, err := factory()
		if err != nil {
			return nil, err
		}
		factors[i] = factor
	}
	if dims == 1 {
		return factors[0], nil
	}
	return rule.NewProduct(factors...), nil
}
