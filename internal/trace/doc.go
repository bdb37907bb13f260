// Package trace records what the seq toolchain is doing while it runs.
//
// Events are begin/end pairs of spans plus instant points. They are written
// as text or NDJSON, kept in a ring buffer for post-mortem dumps, or both.
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: ring only, dumped on failure
//   - LevelPhase: driver and pass boundaries (load, lex, tree, expand, print)
//   - LevelDetail: one span per file
//   - LevelDebug: one span per expanded use site
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.BeginCtx(ctx, trace.ScopePass, "expand")
//	defer span.End("")
//	trace.PointCtx(ctx, trace.ScopeFile, "cache-hit", path)
package trace
