// Package bench drives synthetic start/end workloads against a profiler, for
// benchmarking and for exercising the concurrent recording path from the CLI.
//
// A [Workload] describes the shape of the run (goroutine count, iterations,
// scope names) and can be loaded from YAML with [Load]:
//
//	goroutines: 8
//	iterations: 1000
//	scopes:
//	  - parse
//	  - render
package bench
