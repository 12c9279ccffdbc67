package types

// State is the terminal state of a processed entry
type State string

const (
	StateSkipped     State = "skipped"
	StateConflict    State = "conflict"
	StateQuarantined State = "quarantined"
	StateRenamed     State = "renamed"
	StateErrored     State = "errored"
)

// Outcome is what happened (or, in dry-run, what would happen) to an entry
type Outcome struct {
	Plan   RenamePlan `json:"plan" yaml:"plan"`
	State  State      `json:"state" yaml:"state"`
	DryRun bool       `json:"dryRun" yaml:"dryRun"`
	Err    error      `json:"-" yaml:"-"`
	Reason string     `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Path returns the path the outcome is about
func (o Outcome) Path() string {
	if o.Plan.Source != "" {
		return o.Plan.Source
	}
	return o.Plan.Entry.Path
}
