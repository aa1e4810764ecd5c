// Package config loads YAML job files for the cubature CLI. A job file
// describes one or more integration jobs: the integrand to run, the bounds,
// the rule to use and the tolerances.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// JobsFile is the top-level structure of a YAML job file.
type JobsFile struct {
	Jobs []Job `yaml:"jobs"`
}

// Job describes one integration run.
type Job struct {
	// Name identifies the job in output and logs.
	Name string `yaml:"name"`

	// Integrand names a built-in integrand (sum-cos, prod-cos, gaussian,
	// monomials).
	Integrand string `yaml:"integrand"`

	// A and B are the lower and upper integration bounds.
	A []float64 `yaml:"a"`
	B []float64 `yaml:"b"`

	// Rule selects the cubature rule.
	Rule RuleSpec `yaml:"rule"`

	// RTol and ATol are the tolerances; zero selects the driver default.
	RTol float64 `yaml:"rtol"`
	ATol float64 `yaml:"atol"`

	// MaxSubdivisions bounds refinement; zero selects the driver default,
	// negative means unbounded.
	MaxSubdivisions int `yaml:"max_subdivisions"`
}

// RuleSpec selects and parameterizes a cubature rule.
type RuleSpec struct {
	// Kind is one of gauss-kronrod, gauss-legendre, newton-cotes or
	// genz-malik. 1-D kinds are expanded to a product rule across the
	// job's dimensions.
	Kind string `yaml:"kind"`

	// Points is the node count for 1-D kinds.
	Points int `yaml:"points"`

	// Open selects the open variant of newton-cotes.
	Open bool `yaml:"open"`
}

// Load reads and validates a job file.
func Load(path string) (*JobsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}

	var jf JobsFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parse job file: %w", err)
	}

	jf.applyDefaults()
	if err := jf.Validate(); err != nil {
		return nil, err
	}
	return &jf, nil
}

func (jf *JobsFile) applyDefaults() {
	for i := range jf.Jobs {
		job := &jf.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
		if job.Rule.Kind == "" {
			job.Rule.Kind = "gauss-kronrod"
		}
		if job.Rule.Points == 0 && job.Rule.Kind != "genz-malik" {
			job.Rule.Points = 21
		}
	}
}

// Validate rejects malformed jobs eagerly, before any evaluation starts.
func (jf *JobsFile) Validate() error {
	if len(jf.Jobs) == 0 {
		return fmt.Errorf("job file declares no jobs")
	}
	for i := range jf.Jobs {
		if err := jf.Jobs[i].validate(); err != nil {
			return fmt.Errorf("job %q: %w", jf.Jobs[i].Name, err)
		}
	}
	return nil
}

func (j *Job) validate() error {
	if j.Integrand == "" {
		return fmt.Errorf("integrand is required")
	}
	if len(j.A) == 0 || len(j.A) != len(j.B) {
		return fmt.Errorf("bounds must be non-empty and of equal length, got len(a)=%d, len(b)=%d", len(j.A), len(j.B))
	}
	for i := range j.A {
		if j.A[i] > j.B[i] {
			return fmt.Errorf("lower bound exceeds upper bound on axis %d", i)
		}
	}

	switch j.Rule.Kind {
	case "gauss-kronrod":
		if j.Rule.Points != 15 && j.Rule.Points != 21 {
			return fmt.Errorf("gauss-kronrod supports 15 or 21 points, got %d", j.Rule.Points)
		}
	case "gauss-legendre", "newton-cotes":
		// These kinds are paired with a lower rule of points-2 nodes for
		// error estimation, so they need headroom above the minimum.
		if j.Rule.Points < 4 {
			return fmt.Errorf("%s needs at least 4 points for an embedded pair, got %d", j.Rule.Kind, j.Rule.Points)
		}
	case "genz-malik":
		if len(j.A) < 2 {
			return fmt.Errorf("genz-malik needs at least 2 dimensions, got %d", len(j.A))
		}
	default:
		return fmt.Errorf("unknown rule kind %q", j.Rule.Kind)
	}
	return nil
}
