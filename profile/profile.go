package profile

import (
	"fmt"
	"os"
	"runtime/pprof"
)

// Capture controls the lifecycle of a pprof capture session.
//
// Call [Capture.Start] before the measured work and [Capture.Stop] after it
// to write all enabled profiles.
//
// Create instances with [Config.NewCapture].
type Capture struct {
	cpuFile *os.File
	Config
}

// Start begins CPU profiling if a CPU profile path is configured.
func (c *Capture) Start() error {
	if c.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(c.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}

	c.cpuFile = f

	err = pprof.StartCPUProfile(f)
	if err != nil {
		must(c.cpuFile.Close())

		c.cpuFile = nil

		return fmt.Errorf("starting CPU profile: %w", err)
	}

	return nil
}

// Stop stops CPU profiling and writes the heap snapshot if enabled.
func (c *Capture) Stop() error {
	if c.cpuFile != nil {
		pprof.StopCPUProfile()

		err := c.cpuFile.Close()
		if err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}

		c.cpuFile = nil
	}

	if c.HeapProfile == "" {
		return nil
	}

	f, err := os.Create(c.HeapProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("creating heap profile: %w", err)
	}

	err = pprof.Lookup("heap").WriteTo(f, 0)
	if err != nil {
		must(f.Close())

		return fmt.Errorf("writing heap profile: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("writing heap profile: %w", err)
	}

	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
