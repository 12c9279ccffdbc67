package display

import (
	"fmt"

	"github.com/mp3curate/mp3curate/pkg/types"
)

// LineKind tells renderers how to style an outcome line
type LineKind string

const (
	LineRename     LineKind = "rename"
	LineCanonical  LineKind = "canonical"
	LineSkip       LineKind = "skip"
	LineConflict   LineKind = "conflict"
	LineQuarantine LineKind = "quarantine"
	LineError      LineKind = "error"
)

// Line is one rendered outcome
type Line struct {
	Kind LineKind
	// Label is the leading keyword, empty for renames
	Label string
	Text  string
}

// String joins label and text the way the plain renderer prints them
func (l Line) String() string {
	if l.Label == "" {
		return l.Text
	}
	return l.Label + " " + l.Text
}

// OutcomeLine converts an outcome to its report line. Already-canonical
// entries are only shown from verbosity 2 up.
func OutcomeLine(o types.Outcome, verbosity int) (Line, bool) {
	path := o.Path()
	switch o.State {
	case types.StateRenamed:
		return Line{Kind: LineRename, Text: fmt.Sprintf("%s -> %s", o.Plan.Source, o.Plan.Target)}, true

	case types.StateQuarantined:
		q := o.Plan.Quarantine
		if q == nil {
			return Line{Kind: LineQuarantine, Label: "QUARANTINE", Text: path}, true
		}
		return Line{Kind: LineQuarantine, Label: "QUARANTINE", Text: fmt.Sprintf("%s -> %s", q.Source, q.Target)}, true

	case types.StateConflict:
		return Line{Kind: LineConflict, Label: "CONFLICT", Text: withReason(path, o.Reason)}, true

	case types.StateErrored:
		return Line{Kind: LineError, Label: "ERROR", Text: withReason(path, o.Reason)}, true

	case types.StateSkipped:
		if o.Plan.Disposition == types.DispositionSkipAlreadyCanonical {
			if verbosity < 2 {
				return Line{}, false
			}
			return Line{Kind: LineCanonical, Label: "OK", Text: path}, true
		}
		return Line{Kind: LineSkip, Label: "SKIP", Text: withReason(path, o.Reason)}, true
	}
	return Line{}, false
}

// OutcomeLines converts all outcomes of a run, dropping hidden ones
func OutcomeLines(outcomes []types.Outcome, verbosity int) []Line {
	lines := make([]Line, 0, len(outcomes))
	for _, o := range outcomes {
		if line, ok := OutcomeLine(o, verbosity); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func withReason(path, reason string) string {
	if reason == "" {
		return path
	}
	return fmt.Sprintf("%s: %s", path, reason)
}
