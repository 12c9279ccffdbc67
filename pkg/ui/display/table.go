package display

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mp3curate/mp3curate/pkg/audit"
	"github.com/mp3curate/mp3curate/pkg/report"
	"github.com/mp3curate/mp3curate/pkg/tags"
	"github.com/olekukonko/tablewriter"
)

// PrintPairs writes a borderless key/value table
func PrintPairs(w io.Writer, pairs [][2]string) {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator(":")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, pair := range pairs {
		table.Append([]string{pair[0], pair[1]})
	}
	table.Render()
}

// PrintTable writes rows under a header
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(rows)
	table.Render()
}

// SummaryPairs lists the run counters in display order. Zero skip
// sub-counters are left out.
func SummaryPairs(s *report.Summary) [][2]string {
	c := s.Counts
	renamedLabel := "Renamed"
	quarantinedLabel := "Quarantined"
	if s.DryRun {
		renamedLabel = "Would rename"
		quarantinedLabel = "Would quarantine"
	}

	pairs := [][2]string{
		{"Processed", strconv.Itoa(c.Processed)},
		{"Already canonical", strconv.Itoa(c.AlreadyCanonical)},
		{renamedLabel, strconv.Itoa(c.Renamed)},
		{"Skipped", strconv.Itoa(c.Skipped)},
	}
	for _, sub := range []struct {
		label string
		n     int
	}{
		{"  identical path", c.SkippedIdenticalPath},
		{"  same file", c.SkippedSamefile},
		{"  unclassifiable", c.SkippedClassification},
	} {
		if sub.n > 0 {
			pairs = append(pairs, [2]string{sub.label, strconv.Itoa(sub.n)})
		}
	}
	pairs = append(pairs,
		[2]string{"Conflicts", strconv.Itoa(c.Conflicts)},
		[2]string{quarantinedLabel, strconv.Itoa(c.Quarantined)},
		[2]string{"Errors", strconv.Itoa(c.Errored)},
	)
	return pairs
}

// RunHeading describes the run in one line
func RunHeading(v *RunView) string {
	s := v.Summary
	mode := "apply"
	if s.DryRun {
		mode = "dry run"
	}
	heading := fmt.Sprintf("%s %s (%s, %s)", v.Command, s.Root, s.Variant, mode)
	if s.Interrupted {
		heading += " [interrupted]"
	}
	return heading
}

// AuditPairs lists the audit totals
func AuditPairs(r *audit.Report) [][2]string {
	pairs := [][2]string{
		{"Files", strconv.Itoa(r.Files)},
		{"With problems", strconv.Itoa(r.WithProblems)},
	}
	fields := make([]tags.Field, 0, len(r.MissingByField))
	for field := range r.MissingByField {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	for _, field := range fields {
		pairs = append(pairs, [2]string{"Missing " + string(field), strconv.Itoa(r.MissingByField[field])})
	}
	pairs = append(pairs,
		[2]string{"Malformed numbers", strconv.Itoa(r.Malformed)},
		[2]string{"Verify failures", strconv.Itoa(r.VerifyFailures)},
		[2]string{"Errors", strconv.Itoa(r.Errors)},
	)
	return pairs
}

// AuditRows lists files with problems, or every file from verbosity 2 up
func AuditRows(r *audit.Report, verbosity int) [][]string {
	var rows [][]string
	for _, res := range r.Results {
		if !res.HasProblems() && verbosity < 2 {
			continue
		}
		rows = append(rows, []string{res.Path, describeProblems(res)})
	}
	return rows
}

func describeProblems(res audit.FileResult) string {
	if res.Error != "" {
		return "error: " + res.Error
	}
	var parts []string
	if len(res.Missing) > 0 {
		names := make([]string, len(res.Missing))
		for i, f := range res.Missing {
			names[i] = string(f)
		}
		parts = append(parts, "missing "+strings.Join(names, ", "))
	}
	if len(res.Malformed) > 0 {
		parts = append(parts, "malformed "+strings.Join(res.Malformed, ", "))
	}
	if res.NoAudio() {
		parts = append(parts, "no audio duration")
	}
	if res.Verify != nil && !res.Verify.OK {
		parts = append(parts, "verify: "+res.Verify.Problems())
	}
	if len(parts) == 0 {
		return "ok"
	}
	return strings.Join(parts, "; ")
}
