package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cubature/internal/config"
	"cubature/internal/rule"
)

var rulesFlags struct {
	kind   string
	points int
	open   bool
	dims   int
}

// rulesCmd prints the reference node/weight table of a rule.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the node and weight table of a cubature rule",
	Long: `Prints the reference nodes and weights of a rule on [-1,1]^d,
along with the weight sum (2^d for any rule exact on constants).

Example:
  cubature rules --rule genz-malik --dims 3`,
	RunE: runRules,
}

func init() {
	f := rulesCmd.Flags()
	f.StringVar(&rulesFlags.kind, "rule", "gauss-kronrod", "rule kind: gauss-kronrod, gauss-legendre, newton-cotes, genz-malik")
	f.IntVar(&rulesFlags.points, "points", 21, "node count for 1-D rule kinds")
	f.BoolVar(&rulesFlags.open, "open", false, "use the open newton-cotes variant")
	f.IntVar(&rulesFlags.dims, "dims", 1, "spatial dimension")
}

func runRules(cmd *cobra.Command, args []string) error {
	spec := config.RuleSpec{Kind: rulesFlags.kind, Points: rulesFlags.points, Open: rulesFlags.open}
	r, err := buildRule(spec, rulesFlags.dims)
	if err != nil {
		return err
	}

	fixed, ok := r.(rule.FixedRule)
	if !ok {
		return fmt.Errorf("rule kind %q has no printable node table", spec.Kind)
	}
	nw, err := fixed.Pair()
	if err != nil {
		return err
	}

	d, m := nw.Nodes.Dims()
	sum := 0.0
	for _, w := range nw.Weights {
		sum += w
	}
	cmd.Printf("%s: dim=%d points=%d weight sum=%.15g\n", spec.Kind, d, m, sum)

	// Full tables get long for products and high dimensions; print columns
	// only for small rules.
	if m > 64 {
		return nil
	}
	for j := 0; j < m; j++ {
		cmd.Printf("  node %2d: (", j)
		for i := 0; i < d; i++ {
			if i > 0 {
				cmd.Printf(", ")
			}
			cmd.Printf("%+.12f", nw.Nodes.At(i, j))
		}
		cmd.Printf(")  weight %+.12f\n", nw.Weights[j])
	}
	return nil
}
