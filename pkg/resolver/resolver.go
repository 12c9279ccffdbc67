// Package resolver decides what should happen to an entry whose name is
// not canonical: rename it, skip it, or flag a collision with an existing
// entry that already carries the canonical name.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mp3curate/mp3curate/pkg/filesystem"
	"github.com/mp3curate/mp3curate/pkg/types"
)

// Options configures a Resolver
type Options struct {
	Strategy types.Strategy
	// ScanRoot and QuarantineRoot are required for StrategyQuarantine
	ScanRoot       string
	QuarantineRoot string
	// ApplySamefile renames even when the canonical name already denotes
	// the same file (a metadata-only rename)
	ApplySamefile bool
}

// Resolver maps (entry, canonical form) to a RenamePlan
type Resolver struct {
	fs   types.FS
	opts Options

	// claimed holds targets taken by earlier renames of this run, so a
	// dry run sees them exactly as an apply run sees the renamed files
	claimed map[string]bool
}

// New creates a resolver
func New(fsys types.FS, opts Options) *Resolver {
	if opts.Strategy == "" {
		opts.Strategy = types.StrategyReport
	}
	return &Resolver{fs: fsys, opts: opts, claimed: map[string]bool{}}
}

// Claim marks target as taken by a rename of this run
func (r *Resolver) Claim(target string) {
	r.claimed[filepath.Clean(target)] = true
}

// Resolve applies the decision table in order:
// already canonical, identical path, same file, conflict, apply.
func (r *Resolver) Resolve(entry types.Entry, form types.CanonicalForm) types.RenamePlan {
	source := entry.Path
	target := filepath.Join(filepath.Dir(source), form.CanonicalName)
	plan := types.RenamePlan{
		Entry:  entry,
		Source: source,
		Target: target,
	}

	if form.IsCanonical {
		plan.Disposition = types.DispositionSkipAlreadyCanonical
		return plan
	}

	if filepath.Clean(target) == filepath.Clean(source) {
		plan.Disposition = types.DispositionSkipIdenticalPath
		plan.Reason = "target path equals source path"
		return plan
	}

	targetInfo, err := r.fs.Lstat(target)
	switch {
	case err != nil && os.IsNotExist(err):
		if r.claimed[filepath.Clean(target)] {
			return r.conflict(plan)
		}
		plan.Disposition = types.DispositionApply
		return plan
	case err != nil:
		plan.Disposition = types.DispositionConflict
		plan.Reason = fmt.Sprintf("cannot inspect target: %v", err)
		return plan
	}

	sourceInfo, err := r.fs.Lstat(source)
	if err == nil && r.fs.SameFile(sourceInfo, targetInfo) {
		// Both raw names listed means two hard links; a rename between
		// them is a no-op that would leave the source in place
		if r.listed(target) {
			plan.Disposition = types.DispositionSkipSamefile
			plan.Reason = "distinct hard link"
			return plan
		}
		if r.opts.ApplySamefile {
			plan.Disposition = types.DispositionApply
			plan.Samefile = true
			plan.Reason = "target is the same file"
			return plan
		}
		plan.Disposition = types.DispositionSkipSamefile
		plan.Reason = "target is the same file"
		return plan
	}

	return r.conflict(plan)
}

func (r *Resolver) conflict(plan types.RenamePlan) types.RenamePlan {
	plan.Disposition = types.DispositionConflict
	plan.Reason = fmt.Sprintf("canonical name already exists: %s", plan.Target)
	if r.opts.Strategy == types.StrategyQuarantine {
		if q, ok := r.quarantineFor(plan.Source); ok {
			plan.Quarantine = q
		}
	}
	return plan
}

// listed reports whether path's exact raw name appears in its parent's
// listing. A normalization-insensitive filesystem resolves an NFC lookup
// to the NFD entry without listing the NFC name.
func (r *Resolver) listed(path string) bool {
	entries, err := r.fs.ReadDir(filepath.Dir(path))
	if err != nil {
		return false
	}
	name := filepath.Base(path)
	for _, e := range entries {
		if e.Name() == name {
			return true
		}
	}
	return false
}

// quarantineFor mirrors source's path relative to the scan root under the
// quarantine root. The raw (non-canonical) name is kept.
func (r *Resolver) quarantineFor(source string) (*types.QuarantineAction, bool) {
	if r.opts.QuarantineRoot == "" || r.opts.ScanRoot == "" {
		return nil, false
	}
	if !filesystem.IsWithin(source, r.opts.ScanRoot) {
		return nil, false
	}
	rel, err := filepath.Rel(r.opts.ScanRoot, source)
	if err != nil || rel == "." {
		return nil, false
	}
	return &types.QuarantineAction{
		Source: source,
		Target: filepath.Join(r.opts.QuarantineRoot, rel),
	}, true
}
