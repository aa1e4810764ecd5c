package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cubature/internal/config"
	"cubature/internal/cubature"
	"cubature/internal/logging"
)

var integrateFlags struct {
	integrand string
	a         []float64
	b         []float64
	kind      string
	points    int
	open      bool
	rtol      float64
	atol      float64
	maxSubdiv int
}

// integrateCmd runs one adaptive integration of a built-in integrand.
var integrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Integrate a built-in function over a hyperrectangle",
	Long: `Adaptively integrates a built-in test function to the requested
tolerance.

Example:
  cubature integrate --integrand sum-cos --a 0,0 --b 1,1 --rule gauss-kronrod --points 15`,
	RunE: runIntegrate,
}

func init() {
	f := integrateCmd.Flags()
	f.StringVar(&integrateFlags.integrand, "integrand", "sum-cos", fmt.Sprintf("built-in integrand, one of %v", integrandNames()))
	f.Float64SliceVar(&integrateFlags.a, "a", []float64{0}, "lower bounds, one per axis")
	f.Float64SliceVar(&integrateFlags.b, "b", []float64{1}, "upper bounds, one per axis")
	f.StringVar(&integrateFlags.kind, "rule", "gauss-kronrod", "rule kind: gauss-kronrod, gauss-legendre, newton-cotes, genz-malik")
	f.IntVar(&integrateFlags.points, "points", 21, "node count for 1-D rule kinds")
	f.BoolVar(&integrateFlags.open, "open", false, "use the open newton-cotes variant")
	f.Float64Var(&integrateFlags.rtol, "rtol", cubature.DefaultRTol, "relative tolerance")
	f.Float64Var(&integrateFlags.atol, "atol", cubature.DefaultATol, "absolute tolerance")
	f.IntVar(&integrateFlags.maxSubdiv, "max-subdivisions", cubature.DefaultMaxSubdivisions, "subdivision budget, negative for unbounded")
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	job := config.Job{
		Name:      "integrate",
		Integrand: integrateFlags.integrand,
		A:         integrateFlags.a,
		B:         integrateFlags.b,
		Rule: config.RuleSpec{
			Kind:   integrateFlags.kind,
			Points: integrateFlags.points,
			Open:   integrateFlags.open,
		},
		RTol:            integrateFlags.rtol,
		ATol:            integrateFlags.atol,
		MaxSubdivisions: integrateFlags.maxSubdiv,
	}

	res, err := runJob(job)
	if err != nil {
		return err
	}
	printResult(cmd, job.Name, res)
	return nil
}

// runJob builds the integrand and rule a job selects and runs the driver.
func runJob(job config.Job) (*cubature.Result, error) {
	dims := len(job.A)

	f, err := lookupIntegrand(job.Integrand, dims)
	if err != nil {
		return nil, err
	}
	r, err := buildRule(job.Rule, dims)
	if err != nil {
		return nil, err
	}

	logging.Get(logging.CategoryCLI).Debug("running job",
		zap.String("name", job.Name),
		zap.String("integrand", job.Integrand),
		zap.String("rule", job.Rule.Kind),
		zap.Int("dims", dims))

	return cubature.Integrate(f, job.A, job.B, r, cubature.Options{
		RTol:            job.RTol,
		ATol:            job.ATol,
		MaxSubdivisions: job.MaxSubdivisions,
	})
}

func printResult(cmd *cobra.Command, name string, res *cubature.Result) {
	cmd.Printf("%s: status=%s subdivisions=%d regions=%d\n",
		name, res.Status, res.Subdivisions, len(res.Regions))
	for i := range res.Estimate {
		cmd.Printf("  estimate[%d] = %.15g  (error estimate %.3g)\n",
			i, res.Estimate[i], res.Error[i])
	}
}
