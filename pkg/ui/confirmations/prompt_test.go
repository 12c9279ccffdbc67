package confirmations_test

import (
	"testing"

	"github.com/mp3curate/mp3curate/pkg/report"
	"github.com/mp3curate/mp3curate/pkg/ui/confirmations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	labels []string
	answer bool
}

func (r *recorder) Confirm(label string, defaultYes bool) (bool, error) {
	r.labels = append(r.labels, label)
	return r.answer, nil
}

func TestLabel(t *testing.T) {
	s := &report.Summary{Counts: report.Counts{Renamed: 3, Quarantined: 2}}
	assert.Equal(t, "Apply 3 renames and 2 quarantine moves?", confirmations.Label(s))
}

func TestConfirmRun_NothingPending(t *testing.T) {
	r := &recorder{answer: true}
	ok, err := confirmations.ConfirmRun(r, &report.Summary{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, r.labels)
}

func TestConfirmRun_Asks(t *testing.T) {
	r := &recorder{answer: true}
	ok, err := confirmations.ConfirmRun(r, &report.Summary{Counts: report.Counts{Renamed: 1}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Apply 1 renames and 0 quarantine moves?"}, r.labels)
}

func TestStatic(t *testing.T) {
	ok, err := confirmations.Static(true).Confirm("x", false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = confirmations.Static(false).Confirm("x", true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestErrAborted(t *testing.T) {
	assert.Contains(t, confirmations.ErrAborted.Error(), "aborted")
}
