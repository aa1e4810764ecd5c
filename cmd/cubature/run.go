package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cubature/internal/config"
	"cubature/internal/cubature"
)

// runCmd executes every job in a YAML job file. Jobs are independent, so
// they run concurrently; each individual driver run stays sequential.
var runCmd = &cobra.Command{
	Use:   "run [jobs.yaml]",
	Short: "Run a batch of integration jobs from a YAML file",
	Long: `Loads a YAML job file and runs every job, printing each result.

Example job file:

  jobs:
    - name: two-dim-cosines
      integrand: sum-cos
      a: [0, 0]
      b: [1, 1]
      rule:
        kind: gauss-kronrod
        points: 15
    - name: corner-peak
      integrand: gaussian
      a: [0, 0, 0]
      b: [1, 1, 1]
      rule:
        kind: genz-malik
      rtol: 1e-8`,
	Args: cobra.ExactArgs(1),
	RunE: runJobs,
}

func runJobs(cmd *cobra.Command, args []string) error {
	jf, err := config.Load(args[0])
	if err != nil {
		return err
	}

	results := make([]*cubature.Result, len(jf.Jobs))
	var g errgroup.Group
	for i, job := range jf.Jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := runJob(job)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, job := range jf.Jobs {
		printResult(cmd, job.Name, results[i])
	}
	return nil
}
