// Package cubature adaptively integrates vector-valued functions over
// axis-aligned hyperrectangles.
//
// The driver keeps a priority queue of regions ordered by their estimated
// error. Until the global error passes the tolerance test, the worst region
// is popped, bisected along every axis, and its 2^d children are evaluated
// with the supplied rule and pushed back. Running out of subdivision budget
// is a normal terminal state carrying the best partial result, not an
// error.
package cubature

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"cubature/internal/logging"
	"cubature/internal/rule"
)

// Defaults applied by Integrate for zero-valued Options fields.
const (
	DefaultRTol            = 1e-5
	DefaultATol            = 1e-8
	DefaultMaxSubdivisions = 10000
)

// Status is the terminal state of an integration run.
type Status string

const (
	// StatusConverged means the tolerance test passed for every output
	// component.
	StatusConverged Status = "converged"
	// StatusNotConverged means the subdivision budget ran out first.
	StatusNotConverged Status = "not_converged"
)

// Options control the adaptive driver. The zero value of a field selects
// its default; set the other tolerance nonzero to effectively disable one
// of them.
type Options struct {
	// RTol is the relative tolerance. Zero means DefaultRTol.
	RTol float64

	// ATol is the absolute tolerance. Zero means DefaultATol.
	ATol float64

	// MaxSubdivisions bounds the number of refinement steps. Zero means
	// DefaultMaxSubdivisions; negative means unbounded.
	MaxSubdivisions int
}

func (o Options) withDefaults() Options {
	if o.RTol == 0 {
		o.RTol = DefaultRTol
	}
	if o.ATol == 0 {
		o.ATol = DefaultATol
	}
	if o.MaxSubdivisions == 0 {
		o.MaxSubdivisions = DefaultMaxSubdivisions
	}
	return o
}

// Result is the outcome of an integration run. When Success is false the
// estimate and error are the best values accumulated before the subdivision
// budget ran out.
type Result struct {
	// Estimate approximates the integral, one entry per output component
	// of the integrand.
	Estimate []float64

	// Error estimates the absolute error of Estimate, elementwise.
	Error []float64

	// Success reports whether the tolerance test passed.
	Success bool

	// Status is StatusConverged or StatusNotConverged.
	Status Status

	// Subdivisions is the number of refinement steps performed.
	Subdivisions int

	// Regions is the final working set with per-region estimates.
	Regions []RegionEstimate

	// ATol and RTol echo the tolerances the run used.
	ATol, RTol float64
}

// Integrate estimates the integral of f over the hyperrectangle with lower
// bounds a and upper bounds b using an adaptive subdivision of the region,
// refining wherever r estimates the largest error. r must support error
// estimation: it must implement rule.ErrorEstimator, either intrinsically
// (GaussKronrod, GenzMalik, Product) or by wrapping with
// rule.ErrorFromDifference.
//
// Non-convergence within the subdivision budget is reported through
// Result.Status, not through the returned error.
func Integrate(f rule.Integrand, a, b []float64, r rule.Rule, opts Options) (*Result, error) {
	if len(a) == 0 || len(a) != len(b) {
		return nil, fmt.Errorf("bounds must be non-empty and of equal length, got len(a)=%d, len(b)=%d", len(a), len(b))
	}
	for i := range a {
		if a[i] > b[i] {
			return nil, fmt.Errorf("lower bound exceeds upper bound on axis %d: a=%v, b=%v", i, a[i], b[i])
		}
	}
	opts = opts.withDefaults()
	log := logging.Get(logging.CategoryDriver)

	est, err := r.Estimate(f, a, b)
	if err != nil {
		return nil, err
	}
	errEst, err := rule.EstimateError(r, f, a, b)
	if errors.Is(err, rule.ErrNoErrorEstimate) {
		return nil, fmt.Errorf("adaptive cubature needs a rule with error estimation; wrap the rule with ErrorFromDifference: %w", err)
	}
	if err != nil {
		return nil, err
	}

	// Global accumulator: the elementwise sum of every live region's
	// estimate and error. Kept consistent incrementally by removing a
	// region's contribution before refining it and adding back its
	// children's.
	regions := regionHeap{newRegionEstimate(Region{A: a, B: b}, est, errEst)}
	heap.Init(&regions)

	subdivisions := 0
	success := true

	for violatesTolerance(est, errEst, opts.ATol, opts.RTol) {
		worst := heap.Pop(&regions).(RegionEstimate)
		log.Debug("refining region",
			zap.Float64s("a", worst.Region.A),
			zap.Float64s("b", worst.Region.B),
			zap.Float64("max_error", worst.maxErr))

		sub(est, worst.Estimate)
		sub(errEst, worst.Error)

		for _, child := range bisect(worst.Region) {
			childEst, err := r.Estimate(f, child.A, child.B)
			if err != nil {
				return nil, err
			}
			childErr, err := rule.EstimateError(r, f, child.A, child.B)
			if err != nil {
				return nil, err
			}

			add(est, childEst)
			add(errEst, childErr)
			heap.Push(&regions, newRegionEstimate(child, childEst, childErr))
		}

		subdivisions++
		if opts.MaxSubdivisions > 0 && subdivisions >= opts.MaxSubdivisions {
			success = false
			break
		}
	}

	status := StatusConverged
	if !success {
		status = StatusNotConverged
	}
	log.Debug("finished",
		zap.String("status", string(status)),
		zap.Int("subdivisions", subdivisions),
		zap.Int("regions", regions.Len()))

	return &Result{
		Estimate:     est,
		Error:        errEst,
		Success:      success,
		Status:       status,
		Subdivisions: subdivisions,
		Regions:      []RegionEstimate(regions),
		ATol:         opts.ATol,
		RTol:         opts.RTol,
	}, nil
}

// violatesTolerance reports whether any component's error exceeds
// atol + rtol*|estimate|.
func violatesTolerance(est, errEst []float64, atol, rtol float64) bool {
	for i := range errEst {
		if errEst[i] > atol+rtol*math.Abs(est[i]) {
			return true
		}
	}
	return false
}

func add(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}

func sub(dst, src []float64) {
	for i := range dst {
		dst[i] -= src[i]
	}
}
