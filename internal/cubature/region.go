package cubature

import "math"

// Region is an axis-aligned hyperrectangle with lower bounds A and upper
// bounds B, A[i] <= B[i] per axis. Regions are created by bisection and
// never mutated.
type Region struct {
	A, B []float64
}

// Dim returns the region's spatial dimension.
func (r Region) Dim() int { return len(r.A) }

// Volume returns the region's measure.
func (r Region) Volume() float64 {
	v := 1.0
	for i := range r.A {
		v *= r.B[i] - r.A[i]
	}
	return v
}

// bisect splits r at its midpoint along every axis, producing the 2^d
// disjoint children that exactly partition r. Midpoints are exact
// floating-point midpoints, so children share faces with no gap or overlap.
func bisect(r Region) []Region {
	d := r.Dim()
	mid := make([]float64, d)
	for i := range mid {
		mid[i] = (r.A[i] + r.B[i]) / 2
	}

	children := make([]Region, 1<<d)
	for c := range children {
		a := make([]float64, d)
		b := make([]float64, d)
		for i := 0; i < d; i++ {
			if c&(1<<i) == 0 {
				a[i], b[i] = r.A[i], mid[i]
			} else {
				a[i], b[i] = mid[i], r.B[i]
			}
		}
		children[c] = Region{A: a, B: b}
	}
	return children
}

// RegionEstimate carries the integral and error estimates computed over one
// region of the working set.
type RegionEstimate struct {
	Region   Region
	Estimate []float64
	Error    []float64

	// maxErr caches the max-norm of Error, the heap ordering key.
	maxErr float64
}

func newRegionEstimate(region Region, estimate, errEst []float64) RegionEstimate {
	return RegionEstimate{
		Region:   region,
		Estimate: estimate,
		Error:    errEst,
		maxErr:   maxAbs(errEst),
	}
}

// maxAbs returns the max-norm of x.
func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// regionHeap is a max-heap over max|error|: the worst region is served
// first.
type regionHeap []RegionEstimate

func (h regionHeap) Len() int            { return len(h) }
func (h regionHeap) Less(i, j int) bool  { return h[i].maxErr > h[j].maxErr }
func (h regionHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *regionHeap) Push(x interface{}) { *h = append(*h, x.(RegionEstimate)) }

func (h *regionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
