package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/report"
	"github.com/mp3curate/mp3curate/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcome(path string, d types.Disposition, state types.State, reason string) types.Outcome {
	return types.Outcome{
		Plan:   types.RenamePlan{Source: path, Target: path, Disposition: d},
		State:  state,
		Reason: reason,
	}
}

func TestAggregator_Counts(t *testing.T) {
	agg := report.NewAggregator("/music", types.VariantNFC, types.StrategyReport, false)

	agg.Record(outcome("/music/a", types.DispositionSkipAlreadyCanonical, types.StateSkipped, ""))
	agg.Record(outcome("/music/b", types.DispositionSkipIdenticalPath, types.StateSkipped, "same"))
	agg.Record(outcome("/music/c", types.DispositionSkipSamefile, types.StateSkipped, "same file"))
	agg.Record(outcome("/music/d", types.DispositionApply, types.StateRenamed, ""))
	agg.Record(outcome("/music/e", types.DispositionConflict, types.StateConflict, "exists"))
	agg.Record(outcome("/music/f", types.DispositionConflict, types.StateQuarantined, "exists"))
	agg.Record(outcome("/music/g", types.DispositionApply, types.StateErrored, "file already exists"))
	agg.RecordClassificationError(types.Entry{Path: "/music/h"},
		errors.New(errors.ErrClassification, "not valid UTF-8"))

	s := agg.Summary()
	assert.Equal(t, report.Counts{
		Processed:             8,
		AlreadyCanonical:      1,
		Renamed:               1,
		Skipped:               3,
		SkippedIdenticalPath:  1,
		SkippedSamefile:       1,
		SkippedClassification: 1,
		Conflicts:             1,
		Quarantined:           1,
		Errored:               1,
	}, s.Counts)

	assert.Equal(t, []report.LedgerEntry{
		{Path: "/music/e", State: types.StateConflict, Reason: "exists"},
		{Path: "/music/g", State: types.StateErrored, Reason: "file already exists"},
		{Path: "/music/h", State: types.StateSkipped, Reason: "not valid UTF-8"},
	}, s.Ledger)
	assert.Len(t, s.Outcomes, 8)
	assert.True(t, s.HasPendingMutations())
}

func TestAggregator_SummaryIsSnapshot(t *testing.T) {
	agg := report.NewAggregator("/music", types.VariantNFC, types.StrategyReport, true)
	agg.Record(outcome("/music/e", types.DispositionConflict, types.StateConflict, "exists"))

	s := agg.Summary()
	agg.Record(outcome("/music/f", types.DispositionConflict, types.StateConflict, "exists"))
	agg.MarkInterrupted()

	assert.Equal(t, 1, s.Counts.Conflicts)
	assert.Len(t, s.Ledger, 1)
	assert.False(t, s.Interrupted)
	assert.True(t, agg.Summary().Interrupted)
	assert.NotEmpty(t, s.RunID)
}

func TestAggregator_ScanError(t *testing.T) {
	agg := report.NewAggregator("/music", types.VariantNFC, types.StrategyReport, true)
	agg.RecordScanError("/music/locked", errors.New(errors.ErrScan, "permission denied"))

	s := agg.Summary()
	assert.Equal(t, 1, s.Counts.Errored)
	require.Len(t, s.Ledger, 1)
	assert.Equal(t, "/music/locked", s.Ledger[0].Path)
	assert.Equal(t, "permission denied", s.Ledger[0].Reason)
}

func TestWriteLedger(t *testing.T) {
	agg := report.NewAggregator("/music", types.VariantNFC, types.StrategyReport, true)
	agg.Record(outcome("/music/e", types.DispositionConflict, types.StateConflict, "exists"))
	agg.Record(outcome("/music/g", types.DispositionApply, types.StateErrored, "denied"))
	s := agg.Summary()

	var buf bytes.Buffer
	require.NoError(t, report.WriteLedger(&buf, s))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "# mp3curate run "+s.RunID+" dry-run"))
	assert.Equal(t, "/music/e\texists", lines[1])
	assert.Equal(t, "/music/g\tdenied", lines[2])
}
