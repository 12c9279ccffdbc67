package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mp3curate/mp3curate/pkg/ui/display"
	"github.com/pterm/pterm"
)

// LineStyle returns the lipgloss style of an outcome line label
func LineStyle(kind display.LineKind) lipgloss.Style {
	switch kind {
	case display.LineRename:
		return SuccessStyle
	case display.LineCanonical:
		return MutedStyle
	case display.LineSkip:
		return InfoStyle
	case display.LineConflict:
		return WarningStyle
	case display.LineQuarantine:
		return QuarantineStyle
	case display.LineError:
		return ErrorStyle
	default:
		return MutedStyle
	}
}

// LinePrefix returns the pterm prefix printed before an outcome line
func LinePrefix(kind display.LineKind) pterm.Prefix {
	switch kind {
	case display.LineRename:
		return pterm.Success.Prefix
	case display.LineConflict:
		return pterm.Warning.Prefix
	case display.LineError:
		return pterm.Error.Prefix
	default:
		return pterm.Info.Prefix
	}
}
