// Package display holds the views commands hand to renderers and the
// format-independent pieces every renderer shares: outcome lines and
// summary tables.
package display

import (
	"github.com/mp3curate/mp3curate/pkg/audit"
	"github.com/mp3curate/mp3curate/pkg/compare"
	"github.com/mp3curate/mp3curate/pkg/report"
)

// RunView is the result of check, normalize, sanitize and dedupe
type RunView struct {
	Command string          `json:"command" yaml:"command"`
	Summary *report.Summary `json:"summary" yaml:"summary"`
	// Verbosity controls whether already-canonical entries are listed
	Verbosity int `json:"-" yaml:"-"`
}

// AuditView is the result of audit
type AuditView struct {
	Report    *audit.Report `json:"report" yaml:"report"`
	Verbosity int           `json:"-" yaml:"-"`
}

// CompareView is the result of compare
type CompareView struct {
	Name    string              `json:"name" yaml:"name"`
	Results []compare.DirResult `json:"results" yaml:"results"`
}

// MessageView is a plain informational message
type MessageView struct {
	Message string `json:"message" yaml:"message"`
}
