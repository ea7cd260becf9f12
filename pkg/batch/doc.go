// Package batch runs one install action per package with bounded parallelism.
//
// # Model
//
// Run starts min(limit, len(packages)) workers. Workers drain a queue that
// holds every package exactly once, call the Installer for each one, and send
// an Outcome on a single results channel. The calling goroutine is the only
// consumer of that channel and returns once it has received one outcome per
// package:
//
//	outcomes, err := batch.Run(ctx, toInstall, 4, runner)
//	if err != nil {
//	    // only InvalidConcurrencyError; nothing was started
//	}
//	summary := batch.Summarize(outcomes)
//
// # Guarantees
//
//   - At most limit Install calls are in flight at any instant
//   - Every package is dispatched once and produces exactly one Outcome
//   - Outcome order follows completion, not submission
//   - A failing or panicking Install affects only its own Outcome
//   - No retries and no executor-imposed timeout; ctx is passed through to
//     the Installer untouched
package batch
