// Package trace provides leveled, span-based tracing for bigword commands.
//
// Tracing is the project's logging layer. The arithmetic engine never
// traces; the command layer, the expression evaluator and the cross-check
// runner do.
//
// # Usage
//
//	bigword check --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (file or stderr)
//   - RingTracer: keeps the most recent events in memory for failure dumps
//   - MultiTracer: fans events out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: commands and stages go to the ring only; dumped on failure
//   - LevelPhase: commands and stages
//   - LevelDetail: per-item events (one property, one expression)
//   - LevelDebug: everything, including individual operations
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "check", 0)
//	defer span.End("")
package trace
