package bench

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/scopetab/profiler"
)

// ErrInvalidWorkload indicates a workload that cannot be run.
var ErrInvalidWorkload = errors.New("invalid workload")

// Workload describes a synthetic profiling run: each goroutine performs the
// configured number of iterations, and each iteration opens and closes one
// scope per configured name.
type Workload struct {
	Goroutines int      `yaml:"goroutines"`
	Iterations int      `yaml:"iterations"`
	Scopes     []string `yaml:"scopes"`
}

// Default returns a small workload suitable for a quick run.
func Default() Workload {
	return Workload{
		Goroutines: 4,
		Iterations: 1000,
		Scopes:     []string{"work"},
	}
}

// Load parses a [Workload] from YAML and validates it.
func Load(data []byte) (Workload, error) {
	var w Workload

	err := yaml.Unmarshal(data, &w)
	if err != nil {
		return Workload{}, fmt.Errorf("parsing workload: %w", err)
	}

	err = w.Validate()
	if err != nil {
		return Workload{}, err
	}

	return w, nil
}

// Validate checks that the workload has positive counts and at least one
// scope name.
func (w Workload) Validate() error {
	if w.Goroutines < 1 {
		return fmt.Errorf("%w: goroutines must be positive, got %d", ErrInvalidWorkload, w.Goroutines)
	}

	if w.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidWorkload, w.Iterations)
	}

	if len(w.Scopes) == 0 {
		return fmt.Errorf("%w: at least one scope name is required", ErrInvalidWorkload)
	}

	return nil
}

// Records returns the number of scopes a full run records on an enabled
// profiler.
func (w Workload) Records() int {
	return w.Goroutines * w.Iterations * len(w.Scopes)
}

// Run executes the workload against p and blocks until every goroutine has
// finished its iterations.
func (w Workload) Run(p *profiler.Profiler) {
	var wg sync.WaitGroup
	for range w.Goroutines {
		wg.Go(func() {
			for range w.Iterations {
				for _, name := range w.Scopes {
					s := p.StartScope(name)
					p.EndScope(s)
				}
			}
		})
	}

	wg.Wait()
}
