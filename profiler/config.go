package profiler

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiler configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	TraceProfile  string
	TraceDisabled string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds profiler configuration for CLI applications: the trace output
// path and whether recording starts disabled. A zero-value Config leaves
// recording enabled and writes no trace.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewProfiler] to create the [Profiler].
type Config struct {
	Flags Flags

	// TraceProfile is the trace output path (empty = no trace written).
	TraceProfile string
	// TraceDisabled starts the profiler with recording off.
	TraceDisabled bool
}

// NewConfig creates a new [Config] with default flag names, recording enabled,
// and no trace output path.
func NewConfig() *Config {
	f := Flags{
		TraceProfile:  "trace-profile",
		TraceDisabled: "trace-disabled",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiler flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.TraceProfile, c.Flags.TraceProfile, "", "write scope trace to file")
	flags.BoolVar(&c.TraceDisabled, c.Flags.TraceDisabled, false, "start with scope recording disabled")
}

// RegisterCompletions registers shell completions for profiler flags on cmd.
// The disabled toggle takes no file argument; the trace path uses default file
// completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.TraceDisabled, noFileComp)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.TraceDisabled, err)
	}

	return nil
}

// NewProfiler creates a new [Profiler] honoring this [Config]. The trace
// output path is the caller's to consume via [Profiler.SaveFile].
func (c *Config) NewProfiler() *Profiler {
	p := New()
	if c.TraceDisabled {
		p.Disable()
	}

	return p
}
