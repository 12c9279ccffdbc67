package types

// Disposition is the resolver's decision for one entry
type Disposition string

const (
	DispositionApply                Disposition = "apply"
	DispositionSkipAlreadyCanonical Disposition = "skip-already-canonical"
	DispositionSkipIdenticalPath    Disposition = "skip-identical-path"
	DispositionSkipSamefile         Disposition = "skip-samefile"
	DispositionConflict             Disposition = "conflict"
)

// IsSkip reports whether the disposition never mutates anything
func (d Disposition) IsSkip() bool {
	switch d {
	case DispositionSkipAlreadyCanonical, DispositionSkipIdenticalPath, DispositionSkipSamefile:
		return true
	}
	return false
}

// QuarantineAction moves a non-canonical twin out of the scanned tree,
// mirroring its path relative to the scan root.
type QuarantineAction struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// RenamePlan is the resolved action for one entry. Target always lives in
// the same directory as Source.
type RenamePlan struct {
	Entry       Entry             `json:"entry" yaml:"entry"`
	Source      string            `json:"source" yaml:"source"`
	Target      string            `json:"target" yaml:"target"`
	Disposition Disposition       `json:"disposition" yaml:"disposition"`
	Reason      string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Quarantine  *QuarantineAction `json:"quarantine,omitempty" yaml:"quarantine,omitempty"`
	// Samefile is set when an Apply plan renames onto a name that already
	// denotes the same file.
	Samefile bool `json:"samefile,omitempty" yaml:"samefile,omitempty"`
}
