// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/style"
	"github.com/mp3curate/mp3curate/pkg/ui/display"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss styles and pterm
// prefixes
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
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
		if _, err := fmt.Fprintln(r.output, styledLine(line)); err != nil {
			return err
		}
	}

	var table bytes.Buffer
	display.PrintPairs(&table, display.SummaryPairs(v.Summary))
	block := style.TitleStyle.Render(display.RunHeading(v)) + "\n" + string(bytes.TrimRight(table.Bytes(), "\n"))
	_, err := fmt.Fprintf(r.output, "\n%s\n", style.SummaryBoxStyle.Render(block))
	return err
}

func styledLine(line display.Line) string {
	lineStyle := style.LineStyle(line.Kind)
	prefix := style.LinePrefix(line.Kind)
	if line.Label == "" {
		return fmt.Sprintf("%s %s", prefix.Style.Sprint(prefix.Text), lineStyle.Render(line.Text))
	}
	return fmt.Sprintf("%s %s %s", prefix.Style.Sprint(prefix.Text), lineStyle.Render(line.Label), line.Text)
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
		if _, err := fmt.Fprintf(r.output, "%s %s\n", pterm.Error.Prefix.Text, scanErr); err != nil {
			return err
		}
	}

	var table bytes.Buffer
	display.PrintPairs(&table, display.AuditPairs(v.Report))
	block := style.TitleStyle.Render("audit "+v.Report.Root) + "\n" + string(bytes.TrimRight(table.Bytes(), "\n"))
	_, err := fmt.Fprintf(r.output, "%s\n", style.SummaryBoxStyle.Render(block))
	return err
}

func (r *Renderer) renderCompare(v *display.CompareView) error {
	for _, res := range v.Results {
		if _, err := fmt.Fprintln(r.output, style.PathStyle.Render(res.Dir)); err != nil {
			return err
		}
		if res.Err != nil {
			if _, err := fmt.Fprintf(r.output, "  %s %s\n", style.ErrorStyle.Render("ERROR"), res.Error); err != nil {
				return err
			}
			continue
		}
		if len(res.Variants) == 0 {
			if _, err := fmt.Fprintf(r.output, "  %s\n", style.MutedStyle.Render("no entry matching "+v.Name)); err != nil {
				return err
			}
			continue
		}
		for _, variant := range res.Variants {
			status := style.WarningStyle.Render("NFD")
			if variant.IsNFC {
				status = style.SuccessStyle.Render("NFC")
			}
			if _, err := fmt.Fprintf(r.output, "  %s %s %s\n", status, variant.RawName, style.MutedStyle.Render(fmt.Sprintf("(%s, %q)", variant.Kind, variant.RawName))); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	var line string
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		line = fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			err.Error())
	} else {
		line = fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
	}
	_, werr := fmt.Fprintln(r.output, line)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", pterm.Info.Prefix.Text, msg)
	return err
}
