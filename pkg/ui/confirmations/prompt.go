// Package confirmations asks the operator before a run mutates the library.
package confirmations

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/report"
)

// ErrAborted is returned when the operator interrupts the prompt
var ErrAborted = errors.New(errors.ErrNotConfirmed, "aborted by user")

// Confirmer asks a yes/no question
type Confirmer interface {
	Confirm(label string, defaultYes bool) (bool, error)
}

// PromptConfirmer asks on the terminal with promptui
type PromptConfirmer struct {
	// Stdin and Stdout default to the process streams when nil
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// Confirm prompts the user for yes/no confirmation.
// Returns ErrAborted if the user presses Ctrl+C.
func (p PromptConfirmer) Confirm(label string, defaultYes bool) (bool, error) {
	defaultStr := "y/N"
	if defaultYes {
		defaultStr = "Y/n"
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, defaultStr),
		IsConfirm: true,
		Stdin:     p.Stdin,
		Stdout:    p.Stdout,
	}

	result, err := prompt.Run()
	if err != nil {
		if stderrors.Is(err, promptui.ErrInterrupt) {
			return false, ErrAborted
		}
		// promptui returns ErrAbort for a "n" answer
		if stderrors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if result == "" {
			return defaultYes, nil
		}
		return false, errors.Wrap(err, errors.ErrInternal, "cannot read confirmation")
	}

	answer := strings.ToLower(strings.TrimSpace(result))
	return answer == "y" || answer == "yes", nil
}

// Static answers without asking, for --yes and tests
type Static bool

// Confirm implements Confirmer
func (s Static) Confirm(string, bool) (bool, error) {
	return bool(s), nil
}

// Label builds the question for a pending apply run
func Label(s *report.Summary) string {
	return fmt.Sprintf("Apply %d renames and %d quarantine moves?", s.PendingRenames(), s.PendingQuarantines())
}

// ConfirmRun asks whether the mutations a dry-run predicted should be
// applied. Nothing is asked when the dry run found nothing to do.
func ConfirmRun(c Confirmer, dryRun *report.Summary) (bool, error) {
	if !dryRun.HasPendingMutations() {
		return false, nil
	}
	return c.Confirm(Label(dryRun), false)
}
