// Package core orchestrates a normalization run.
//
// Run checks its preconditions, then feeds every scanned entry through the
// classifier, the resolver and the executor, recording each outcome in a
// report aggregator. Only the precondition check is run-fatal; per-entry
// failures end up in the summary ledger. Interactive confirmation lives in
// the caller, which passes its answer in Options.Confirmed.
package core
