package profile

import (
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for pprof capture, allowing callers to customize
// flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	CPUProfile  string
	HeapProfile string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds pprof capture configuration. A zero-value Config has all
// profiles disabled.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewCapture] to create the [Capture]
// that executes the profiling.
type Config struct {
	Flags Flags

	// Output paths (empty = disabled).
	CPUProfile  string
	HeapProfile string
}

// NewConfig creates a new [Config] with default flag names and all profiles
// disabled.
func NewConfig() *Config {
	f := Flags{
		CPUProfile:  "cpu-profile",
		HeapProfile: "heap-profile",
	}

	return f.NewConfig()
}

// RegisterFlags adds pprof flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write CPU profile to file")
	flags.StringVar(&c.HeapProfile, c.Flags.HeapProfile, "", "write heap profile to file")
}

// NewCapture creates a new [Capture] using this [Config].
func (c *Config) NewCapture() *Capture {
	return &Capture{
		Config: *c,
	}
}
