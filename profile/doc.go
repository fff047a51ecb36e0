// Package profile captures pprof CPU and heap profiles of the running
// process, so the scope-recording hot path can itself be profiled from the
// CLI.
//
// Typical usage wraps command execution with the profiling lifecycle:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewCapture()
//	err := p.Start()
//	// ... run workload ...
//	stopErr := p.Stop()
//
// Users can then enable profiling via flags like --cpu-profile=cpu.prof.
package profile
