// Package main provides the CLI entry point for scopebench, a tool that runs
// synthetic workloads against the scope profiler and writes the recorded
// trace as tab-separated text.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/scopetab/bench"
	"go.jacobcolvin.com/scopetab/log"
	"go.jacobcolvin.com/scopetab/profile"
	"go.jacobcolvin.com/scopetab/profiler"
	"go.jacobcolvin.com/scopetab/version"
)

func main() {
	logCfg := log.NewConfig()
	profCfg := profile.NewConfig()
	traceCfg := profiler.NewConfig()
	traceCfg.TraceProfile = "trace.tsv"

	var (
		configPath string
		workload   = bench.Default()
	)

	rootCmd := &cobra.Command{
		Use:     "scopebench [flags]",
		Short:   "Benchmark the scope profiler and export its trace",
		Version: version.String(),
		Long: `scopebench runs a synthetic workload of named scopes across goroutines,
records every completed scope, and writes the trace in the tab-separated
format consumed by trace-visualization tools.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(logCfg, profCfg, traceCfg, configPath, workload)
		},
	}

	flags := rootCmd.Flags()
	logCfg.RegisterFlags(flags)
	profCfg.RegisterFlags(flags)
	traceCfg.RegisterFlags(flags)
	flags.StringVar(&configPath, "config", "", "load workload from YAML file")
	flags.IntVar(&workload.Goroutines, "goroutines", workload.Goroutines, "concurrent workload goroutines")
	flags.IntVar(&workload.Iterations, "iterations", workload.Iterations, "start/end cycles per goroutine")
	flags.StringSliceVar(&workload.Scopes, "scopes", workload.Scopes, "scope names opened each iteration")

	completionErr := registerCompletions(rootCmd, logCfg, traceCfg)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func registerCompletions(cmd *cobra.Command, logCfg *log.Config, traceCfg *profiler.Config) error {
	err := logCfg.RegisterCompletions(cmd)
	if err != nil {
		return err
	}

	return traceCfg.RegisterCompletions(cmd)
}

func run(logCfg *log.Config, profCfg *profile.Config,
	traceCfg *profiler.Config, configPath string, workload bench.Workload,
) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return err
	}

	logger := slog.New(handler)

	if configPath != "" {
		data, err := os.ReadFile(configPath) //nolint:gosec // Workload path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("reading workload config: %w", err)
		}

		workload, err = bench.Load(data)
		if err != nil {
			return err
		}
	} else {
		err = workload.Validate()
		if err != nil {
			return err
		}
	}

	capture := profCfg.NewCapture()

	err = capture.Start()
	if err != nil {
		return err
	}

	p := traceCfg.NewProfiler()

	started := time.Now()
	workload.Run(p)
	elapsed := time.Since(started)

	stopErr := capture.Stop()
	if stopErr != nil {
		logger.Error("stopping pprof capture", "err", stopErr)
	}

	logger.Info("workload complete",
		"goroutines", workload.Goroutines,
		"iterations", workload.Iterations,
		"scopes", len(workload.Scopes),
		"records", workload.Records(),
		"elapsed", elapsed,
	)

	if traceCfg.TraceProfile == "" {
		logger.Warn("no trace path configured, discarding recorded scopes")

		return nil
	}

	err = p.SaveFile(traceCfg.TraceProfile)
	if err != nil {
		return err
	}

	logger.Info("trace written", "path", traceCfg.TraceProfile)

	return nil
}
