// Package report aggregates per-entry outcomes into run counters, a ledger
// of conflicts and errors, and a summary snapshot.
package report

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/types"
)

// Counts holds the run counters
type Counts struct {
	Processed        int `json:"processed" yaml:"processed"`
	AlreadyCanonical int `json:"alreadyCanonical" yaml:"alreadyCanonical"`
	Renamed          int `json:"renamed" yaml:"renamed"`
	// Skipped is the sum of the three skip reasons below
	Skipped               int `json:"skipped" yaml:"skipped"`
	SkippedIdenticalPath  int `json:"skippedIdenticalPath" yaml:"skippedIdenticalPath"`
	SkippedSamefile       int `json:"skippedSamefile" yaml:"skippedSamefile"`
	SkippedClassification int `json:"skippedClassification" yaml:"skippedClassification"`
	Conflicts             int `json:"conflicts" yaml:"conflicts"`
	Quarantined           int `json:"quarantined" yaml:"quarantined"`
	Errored               int `json:"errored" yaml:"errored"`
}

// LedgerEntry records a conflict or error for operator review
type LedgerEntry struct {
	Path   string      `json:"path" yaml:"path"`
	State  types.State `json:"state" yaml:"state"`
	Reason string      `json:"reason" yaml:"reason"`
}

// Summary is a value snapshot of a run
type Summary struct {
	RunID       string          `json:"runId" yaml:"runId"`
	Root        string          `json:"root" yaml:"root"`
	Variant     types.Variant   `json:"variant" yaml:"variant"`
	Strategy    types.Strategy  `json:"strategy" yaml:"strategy"`
	DryRun      bool            `json:"dryRun" yaml:"dryRun"`
	Interrupted bool            `json:"interrupted" yaml:"interrupted"`
	StartedAt   time.Time       `json:"startedAt" yaml:"startedAt"`
	FinishedAt  time.Time       `json:"finishedAt" yaml:"finishedAt"`
	Counts      Counts          `json:"counts" yaml:"counts"`
	Ledger      []LedgerEntry   `json:"ledger" yaml:"ledger"`
	Outcomes    []types.Outcome `json:"outcomes" yaml:"outcomes"`
}

// Duration is the wall time of the run
func (s *Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// PendingRenames counts renames a dry-run predicts
func (s *Summary) PendingRenames() int {
	return s.Counts.Renamed
}

// PendingQuarantines counts quarantine moves a dry-run predicts
func (s *Summary) PendingQuarantines() int {
	return s.Counts.Quarantined
}

// HasPendingMutations reports whether applying the run would change anything
func (s *Summary) HasPendingMutations() bool {
	return s.Counts.Renamed+s.Counts.Quarantined > 0
}

// Aggregator collects outcomes for one run
type Aggregator struct {
	mu          sync.Mutex
	summary     Summary
	interrupted bool
}

// NewAggregator starts a run with a fresh run id
func NewAggregator(root string, variant types.Variant, strategy types.Strategy, dryRun bool) *Aggregator {
	return &Aggregator{
		summary: Summary{
			RunID:     uuid.NewString(),
			Root:      root,
			Variant:   variant,
			Strategy:  strategy,
			DryRun:    dryRun,
			StartedAt: time.Now(),
		},
	}
}

// RunID returns the id of the run being aggregated
func (a *Aggregator) RunID() string {
	return a.summary.RunID
}

// Record adds one terminal outcome
func (a *Aggregator) Record(outcome types.Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c := &a.summary.Counts
	c.Processed++
	a.summary.Outcomes = append(a.summary.Outcomes, outcome)

	switch outcome.State {
	case types.StateSkipped:
		switch outcome.Plan.Disposition {
		case types.DispositionSkipAlreadyCanonical:
			c.AlreadyCanonical++
			return
		case types.DispositionSkipIdenticalPath:
			c.SkippedIdenticalPath++
		case types.DispositionSkipSamefile:
			c.SkippedSamefile++
		}
		c.Skipped++
	case types.StateRenamed:
		c.Renamed++
	case types.StateQuarantined:
		c.Quarantined++
	case types.StateConflict:
		c.Conflicts++
		a.ledger(outcome)
	case types.StateErrored:
		c.Errored++
		a.ledger(outcome)
	}
}

// RecordClassificationError counts an entry whose name could not be
// classified and puts it on the ledger
func (a *Aggregator) RecordClassificationError(entry types.Entry, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	c := &a.summary.Counts
	c.Processed++
	c.Skipped++
	c.SkippedClassification++
	outcome := types.Outcome{
		Plan:   types.RenamePlan{Entry: entry, Source: entry.Path},
		State:  types.StateSkipped,
		DryRun: a.summary.DryRun,
		Err:    err,
		Reason: errors.Reason(err),
	}
	a.summary.Outcomes = append(a.summary.Outcomes, outcome)
	a.ledger(outcome)
}

// RecordScanError records a path the scanner could not read
func (a *Aggregator) RecordScanError(path string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.summary.Counts.Errored++
	outcome := types.Outcome{
		Plan:   types.RenamePlan{Entry: types.Entry{Path: path}, Source: path},
		State:  types.StateErrored,
		DryRun: a.summary.DryRun,
		Err:    err,
		Reason: errors.Reason(err),
	}
	a.summary.Outcomes = append(a.summary.Outcomes, outcome)
	a.ledger(outcome)
}

// MarkInterrupted flags the run as stopped before the scan completed
func (a *Aggregator) MarkInterrupted() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interrupted = true
}

// Finish stamps the end time
func (a *Aggregator) Finish() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.summary.FinishedAt = time.Now()
}

// Summary returns a snapshot that later Record calls do not affect
func (a *Aggregator) Summary() *Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.summary
	s.Interrupted = a.interrupted
	s.Ledger = append([]LedgerEntry(nil), a.summary.Ledger...)
	s.Outcomes = append([]types.Outcome(nil), a.summary.Outcomes...)
	return &s
}

func (a *Aggregator) ledger(outcome types.Outcome) {
	reason := outcome.Reason
	if reason == "" && outcome.Err != nil {
		reason = errors.Reason(outcome.Err)
	}
	a.summary.Ledger = append(a.summary.Ledger, LedgerEntry{
		Path:   outcome.Path(),
		State:  outcome.State,
		Reason: reason,
	})
}

// WriteLedger writes the plain-text ledger: a header line with the run id,
// then one "path<TAB>reason" line per conflict or error.
func WriteLedger(w io.Writer, s *Summary) error {
	bw := bufio.NewWriter(w)
	mode := "apply"
	if s.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(bw, "# mp3curate run %s %s root=%s started=%s\n",
		s.RunID, mode, s.Root, s.StartedAt.Format(time.RFC3339))
	for _, entry := range s.Ledger {
		fmt.Fprintf(bw, "%s\t%s\n", entry.Path, entry.Reason)
	}
	return bw.Flush()
}
