// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/mp3curate/mp3curate/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.RunView:
		return r.renderRun(v)
	case *display.AuditView:
		return r.renderAudit(v)
	case *display.CompareView:
		return r.renderCompare(v)
	case *display.MessageView:
		return r.RenderMessage(v.Message)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderRun(v *display.RunView) error {
	if v.Summary == nil {
		return nil
	}
	for _, line := range display.OutcomeLines(v.Summary.Outcomes, v.Verbosity) {
		if _, err := fmt.Fprintln(r.output, line.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(r.output, "\n%s\n", display.RunHeading(v)); err != nil {
		return err
	}
	display.PrintPairs(r.output, display.SummaryPairs(v.Summary))
	return nil
}

func (r *Renderer) renderAudit(v *display.AuditView) error {
	if v.Report == nil {
		return nil
	}
	if rows := display.AuditRows(v.Report, v.Verbosity); len(rows) > 0 {
		display.PrintTable(r.output, []string{"File", "Problems"}, rows)
		if _, err := fmt.Fprintln(r.output); err != nil {
			return err
		}
	}
	for _, scanErr := range v.Report.ScanErrors {
		if _, err := fmt.Fprintf(r.output, "ERROR %s\n", scanErr); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(r.output, "audit %s\n", v.Report.Root); err != nil {
		return err
	}
	display.PrintPairs(r.output, display.AuditPairs(v.Report))
	return nil
}

func (r *Renderer) renderCompare(v *display.CompareView) error {
	for _, res := range v.Results {
		if _, err := fmt.Fprintf(r.output, "%s:\n", res.Dir); err != nil {
			return err
		}
		if res.Err != nil {
			if _, err := fmt.Fprintf(r.output, "  ERROR %s\n", res.Error); err != nil {
				return err
			}
			continue
		}
		if len(res.Variants) == 0 {
			if _, err := fmt.Fprintf(r.output, "  no entry matching %s\n", v.Name); err != nil {
				return err
			}
			continue
		}
		for _, variant := range res.Variants {
			status := "NFD"
			if variant.IsNFC {
				status = "NFC"
			}
			if _, err := fmt.Fprintf(r.output, "  %s %s (%s, %q)\n", status, variant.RawName, variant.Kind, variant.RawName); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
