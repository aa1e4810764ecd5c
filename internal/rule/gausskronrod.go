package rule

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// GaussKronrod is the classical 1-D embedded pair: an n-point Kronrod
// extension as the higher-order rule, with the n/2-point Gauss-Legendre rule
// nested inside it as the lower-order rule. The difference between the two
// serves as the error estimate.
//
// Node and weight tables are the QUADPACK values (dqk15.f, dqk21.f); only
// the 15- and 21-point rules are supported.
type GaussKronrod struct {
	npoints int
	lower   *GaussLegendre

	once sync.Once
	pair NodesWeights
}

var _ EmbeddedRule = (*GaussKronrod)(nil)

// NewGaussKronrod returns the npoints-point Gauss-Kronrod rule. npoints must
// be 15 or 21.
func NewGaussKronrod(npoints int) (*GaussKronrod, error) {
	if npoints != 15 && npoints != 21 {
		return nil, fmt.Errorf("%w: Gauss-Kronrod is only supported for 15 or 21 nodes, got %d", ErrInvalidParameter, npoints)
	}
	lower, err := NewGaussLegendre(npoints / 2)
	if err != nil {
		return nil, err
	}
	return &GaussKronrod{npoints: npoints, lower: lower}, nil
}

// Estimate returns the Kronrod (higher-order) estimate over [a, b].
func (r *GaussKronrod) Estimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateFixed(r, f, a, b)
}

// ErrorEstimate returns |kronrod(f) - gauss(f)| over [a, b].
func (r *GaussKronrod) ErrorEstimate(f Integrand, a, b []float64) ([]float64, error) {
	return estimateEmbeddedError(r, f, a, b)
}

// Pair returns the Kronrod nodes and weights.
func (r *GaussKronrod) Pair() (NodesWeights, error) {
	r.once.Do(func() {
		var nodes, weights []float64
		switch r.npoints {
		case 15:
			nodes, weights = kronrod15Nodes, kronrod15Weights
		case 21:
			nodes, weights = kronrod21Nodes, kronrod21Weights
		}
		r.pair = NodesWeights{
			Nodes:   mat.NewDense(1, r.npoints, nodes),
			Weights: weights,
		}
	})
	return r.pair, nil
}

// LowerPair returns the nested Gauss-Legendre nodes and weights.
func (r *GaussKronrod) LowerPair() (NodesWeights, error) {
	return r.lower.Pair()
}

var kronrod15Nodes = []float64{
	0.991455371120812639206854697526329,
	0.949107912342758524526189684047851,
	0.864864423359769072789712788640926,
	0.741531185599394439863864773280788,
	0.586087235467691130294144838258730,
	0.405845151377397166906606412076961,
	0.207784955007898467600689403773245,
	0.000000000000000000000000000000000,
	-0.207784955007898467600689403773245,
	-0.405845151377397166906606412076961,
	-0.586087235467691130294144838258730,
	-0.741531185599394439863864773280788,
	-0.864864423359769072789712788640926,
	-0.949107912342758524526189684047851,
	-0.991455371120812639206854697526329,
}

var kronrod15Weights = []float64{
	0.022935322010529224963732008058970,
	0.063092092629978553290700663189204,
	0.104790010322250183839876322541518,
	0.140653259715525918745189590510238,
	0.169004726639267902826583426598550,
	0.190350578064785409913256402421014,
	0.204432940075298892414161999234649,
	0.209482141084727828012999174891714,
	0.204432940075298892414161999234649,
	0.190350578064785409913256402421014,
	0.169004726639267902826583426598550,
	0.140653259715525918745189590510238,
	0.104790010322250183839876322541518,
	0.063092092629978553290700663189204,
	0.022935322010529224963732008058970,
}

var kronrod21Nodes = []float64{
	0.995657163025808080735527280689003,
	0.973906528517171720077964012084452,
	0.930157491355708226001207180059508,
	0.865063366688984510732096688423493,
	0.780817726586416897063717578345042,
	0.679409568299024406234327365114874,
	0.562757134668604683339000099272694,
	0.433395394129247190799265943165784,
	0.294392862701460198131126603103866,
	0.148874338981631210884826001129720,
	0,
	-0.148874338981631210884826001129720,
	-0.294392862701460198131126603103866,
	-0.433395394129247190799265943165784,
	-0.562757134668604683339000099272694,
	-0.679409568299024406234327365114874,
	-0.780817726586416897063717578345042,
	-0.865063366688984510732096688423493,
	-0.930157491355708226001207180059508,
	-0.973906528517171720077964012084452,
	-0.995657163025808080735527280689003,
}

var kronrod21Weights = []float64{
	0.011694638867371874278064396062192,
	0.032558162307964727478818972459390,
	0.054755896574351996031381300244580,
	0.075039674810919952767043140916190,
	0.093125454583697605535065465083366,
	0.109387158802297641899210590325805,
	0.123491976262065851077958109831074,
	0.134709217311473325928054001771707,
	0.142775938577060080797094273138717,
	0.147739104901338491374841515972068,
	0.149445554002916905664936468389821,
	0.147739104901338491374841515972068,
	0.142775938577060080797094273138717,
	0.134709217311473325928054001771707,
	0.123491976262065851077958109831074,
	0.109387158802297641899210590325805,
	0.093125454583697605535065465083366,
	0.075039674810919952767043140916190,
	0.054755896574351996031381300244580,
	0.032558162307964727478818972459390,
	0.011694638867371874278064396062192,
}
