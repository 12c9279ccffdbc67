package display_test

import (
	"bytes"
	"testing"

	"github.com/mp3curate/mp3curate/pkg/audit"
	"github.com/mp3curate/mp3curate/pkg/report"
	"github.com/mp3curate/mp3curate/pkg/tags"
	"github.com/mp3curate/mp3curate/pkg/transform"
	"github.com/mp3curate/mp3curate/pkg/types"
	"github.com/mp3curate/mp3curate/pkg/ui/display"
	"github.com/stretchr/testify/assert"
)

func plan(source, target string, d types.Disposition) types.RenamePlan {
	return types.RenamePlan{Source: source, Target: target, Disposition: d}
}

func TestOutcomeLine(t *testing.T) {
	tests := []struct {
		name      string
		outcome   types.Outcome
		verbosity int
		wantOK    bool
		wantKind  display.LineKind
		wantText  string
	}{
		{
			name:     "rename",
			outcome:  types.Outcome{Plan: plan("/m/a", "/m/b", types.DispositionApply), State: types.StateRenamed},
			wantOK:   true,
			wantKind: display.LineRename,
			wantText: "/m/a -> /m/b",
		},
		{
			name: "quarantine",
			outcome: types.Outcome{
				Plan: types.RenamePlan{
					Source:      "/m/a",
					Disposition: types.DispositionConflict,
					Quarantine:  &types.QuarantineAction{Source: "/m/a", Target: "/q/a"},
				},
				State: types.StateQuarantined,
			},
			wantOK:   true,
			wantKind: display.LineQuarantine,
			wantText: "QUARANTINE /m/a -> /q/a",
		},
		{
			name:     "conflict",
			outcome:  types.Outcome{Plan: plan("/m/a", "/m/b", types.DispositionConflict), State: types.StateConflict, Reason: "canonical name already exists: /m/b"},
			wantOK:   true,
			wantKind: display.LineConflict,
			wantText: "CONFLICT /m/a: canonical name already exists: /m/b",
		},
		{
			name:     "error",
			outcome:  types.Outcome{Plan: plan("/m/a", "/m/b", types.DispositionApply), State: types.StateErrored, Reason: "permission denied"},
			wantOK:   true,
			wantKind: display.LineError,
			wantText: "ERROR /m/a: permission denied",
		},
		{
			name:     "skip samefile",
			outcome:  types.Outcome{Plan: plan("/m/a", "/m/b", types.DispositionSkipSamefile), State: types.StateSkipped, Reason: "target is the same file"},
			wantOK:   true,
			wantKind: display.LineSkip,
			wantText: "SKIP /m/a: target is the same file",
		},
		{
			name:    "canonical hidden by default",
			outcome: types.Outcome{Plan: plan("/m/a", "/m/a", types.DispositionSkipAlreadyCanonical), State: types.StateSkipped},
			wantOK:  false,
		},
		{
			name:      "canonical shown at -vv",
			outcome:   types.Outcome{Plan: plan("/m/a", "/m/a", types.DispositionSkipAlreadyCanonical), State: types.StateSkipped},
			verbosity: 2,
			wantOK:    true,
			wantKind:  display.LineCanonical,
			wantText:  "OK /m/a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok := display.OutcomeLine(tt.outcome, tt.verbosity)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantKind, line.Kind)
			assert.Equal(t, tt.wantText, line.String())
		})
	}
}

func TestOutcomeLines_DropsHidden(t *testing.T) {
	outcomes := []types.Outcome{
		{Plan: plan("/m/a", "/m/a", types.DispositionSkipAlreadyCanonical), State: types.StateSkipped},
		{Plan: plan("/m/b", "/m/c", types.DispositionApply), State: types.StateRenamed},
	}
	lines := display.OutcomeLines(outcomes, 0)
	assert.Len(t, lines, 1)
	assert.Len(t, display.OutcomeLines(outcomes, 2), 2)
}

func TestSummaryPairs(t *testing.T) {
	s := &report.Summary{
		DryRun: true,
		Counts: report.Counts{Processed: 4, AlreadyCanonical: 1, Renamed: 2, Skipped: 1, SkippedSamefile: 1},
	}
	pairs := display.SummaryPairs(s)

	labels := map[string]string{}
	for _, p := range pairs {
		labels[p[0]] = p[1]
	}
	assert.Equal(t, "4", labels["Processed"])
	assert.Equal(t, "2", labels["Would rename"])
	assert.Equal(t, "1", labels["  same file"])
	assert.NotContains(t, labels, "  identical path")
	assert.NotContains(t, labels, "Renamed")
}

func TestRunHeading(t *testing.T) {
	v := &display.RunView{
		Command: "normalize",
		Summary: &report.Summary{Root: "/music", Variant: types.VariantNFC, DryRun: true, Interrupted: true},
	}
	assert.Equal(t, "normalize /music (nfc, dry run) [interrupted]", display.RunHeading(v))
}

func TestPrintPairs(t *testing.T) {
	var buf bytes.Buffer
	display.PrintPairs(&buf, [][2]string{{"Processed", "3"}, {"Errors", "0"}})
	out := buf.String()
	assert.Contains(t, out, "Processed")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "Errors")
}

func TestAuditRows(t *testing.T) {
	r := &audit.Report{
		Results: []audit.FileResult{
			{Path: "/m/ok.mp3"},
			{Path: "/m/missing.mp3", Missing: []tags.Field{tags.FieldTitle, tags.FieldAlbum}},
			{Path: "/m/broken.mp3", Verify: &transform.VerifyResult{OK: false, Errors: []string{"bad frame"}}},
			{Path: "/m/unreadable.mp3", Error: "no tag"},
			{Path: "/m/silent.mp3", Probe: &transform.ProbeResult{FormatName: "mp3"}},
		},
	}

	rows := display.AuditRows(r, 0)
	assert.Len(t, rows, 4)
	assert.Equal(t, []string{"/m/missing.mp3", "missing title, album"}, rows[0])
	assert.Contains(t, rows[1][1], "verify:")
	assert.Equal(t, "error: no tag", rows[2][1])
	assert.Equal(t, []string{"/m/silent.mp3", "no audio duration"}, rows[3])

	assert.Len(t, display.AuditRows(r, 2), 5)
}

func TestAuditPairs(t *testing.T) {
	r := &audit.Report{
		Files:          2,
		WithProblems:   1,
		MissingByField: map[tags.Field]int{tags.FieldTitle: 1, tags.FieldAlbum: 2},
	}
	pairs := display.AuditPairs(r)
	assert.Equal(t, [2]string{"Missing album", "2"}, pairs[2])
	assert.Equal(t, [2]string{"Missing title", "1"}, pairs[3])
}
