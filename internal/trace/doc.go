// Package trace records where the compiler spends its time.
//
// Every phase of a compile opens a span: the driver, each pass (load, parse,
// declare, check, codegen, optimize), each file and each script. Which spans
// are written depends on the level:
//
//   - LevelOff: nothing
//   - LevelError: nothing unless a crash dump is requested
//   - LevelPhase: driver and pass spans
//   - LevelDetail: plus per-file spans
//   - LevelDebug: plus per-script spans
//
// Tracers travel through the pipeline on the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// Enable it from the command line with
//
//	rsc compile --trace=- --trace-level=detail
package trace
