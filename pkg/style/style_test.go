package style_test

import (
	"testing"

	"github.com/mp3curate/mp3curate/pkg/style"
	"github.com/mp3curate/mp3curate/pkg/ui/display"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestLineStyle(t *testing.T) {
	assert.Equal(t, style.ErrorStyle.GetForeground(), style.LineStyle(display.LineError).GetForeground())
	assert.Equal(t, style.WarningStyle.GetForeground(), style.LineStyle(display.LineConflict).GetForeground())
	assert.Equal(t, style.SuccessStyle.GetForeground(), style.LineStyle(display.LineRename).GetForeground())
	assert.Equal(t, style.MutedStyle.GetForeground(), style.LineStyle(display.LineKind("other")).GetForeground())
}

func TestLinePrefix(t *testing.T) {
	assert.Equal(t, pterm.Error.Prefix.Text, style.LinePrefix(display.LineError).Text)
	assert.Equal(t, pterm.Success.Prefix.Text, style.LinePrefix(display.LineRename).Text)
	assert.Equal(t, pterm.Info.Prefix.Text, style.LinePrefix(display.LineSkip).Text)
}
