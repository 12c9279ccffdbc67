package executor

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/filesystem"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/mp3curate/mp3curate/pkg/types"
	"github.com/rs/zerolog"
)

// Options contains configuration for the executor
type Options struct {
	Logger zerolog.Logger
	// Filesystem operations interface for testing
	FS types.FS
	// QuarantineRoot is where quarantine moves land; directories created
	// under it are tracked for Finish
	QuarantineRoot string
}

// Executor applies or predicts RenamePlans one at a time
type Executor struct {
	logger         zerolog.Logger
	fs             types.FS
	quarantineRoot string
	dups           *DupNamer

	// created lists directories this executor made, in creation order
	created []string
	// claimed holds quarantine targets predicted in dry-run so later
	// predictions pick distinct dup names
	claimed map[string]bool
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	return &Executor{
		logger:         logger,
		fs:             fsys,
		quarantineRoot: opts.QuarantineRoot,
		dups:           NewDupNamer(),
		claimed:        map[string]bool{},
	}
}

// Execute carries out (or predicts, in dry-run) a single plan
func (e *Executor) Execute(plan types.RenamePlan, mode types.Mode) types.Outcome {
	start := time.Now()
	dryRun := mode != types.ModeApply
	outcome := types.Outcome{Plan: plan, DryRun: dryRun}

	e.logger.Trace().
		Str("source", plan.Source).
		Str("disposition", string(plan.Disposition)).
		Bool("dry_run", dryRun).
		Msg("Executing plan")

	switch {
	case plan.Disposition.IsSkip():
		outcome.State = types.StateSkipped
		outcome.Reason = plan.Reason
		if outcome.Reason == "" {
			outcome.Reason = string(plan.Disposition)
		}
		return outcome

	case plan.Disposition == types.DispositionConflict && plan.Quarantine != nil:
		outcome = e.quarantine(outcome, dryRun)

	case plan.Disposition == types.DispositionConflict:
		outcome.State = types.StateConflict
		outcome.Reason = plan.Reason
		return outcome

	case plan.Disposition == types.DispositionApply:
		outcome = e.rename(outcome, dryRun)

	default:
		outcome.State = types.StateErrored
		outcome.Err = errors.Newf(errors.ErrInternal, "unknown disposition %q", plan.Disposition)
		outcome.Reason = outcome.Err.Error()
		return outcome
	}

	event := e.logger.Info()
	if outcome.State == types.StateErrored {
		event = e.logger.Error().Err(outcome.Err)
	}
	event.
		Str("source", plan.Source).
		Str("state", string(outcome.State)).
		Bool("dry_run", dryRun).
		Dur("duration", time.Since(start)).
		Msg("Plan executed")

	return outcome
}

func (e *Executor) rename(outcome types.Outcome, dryRun bool) types.Outcome {
	plan := outcome.Plan

	if dryRun {
		outcome.State = types.StateRenamed
		return outcome
	}

	var err error
	if plan.Samefile {
		// Both names denote one inode; only the stored name changes
		err = e.fs.Rename(plan.Source, plan.Target)
	} else {
		err = e.fs.RenameNoReplace(plan.Source, plan.Target)
	}
	if err != nil {
		return e.failed(outcome, err, "rename failed")
	}
	outcome.State = types.StateRenamed
	return outcome
}

func (e *Executor) quarantine(outcome types.Outcome, dryRun bool) types.Outcome {
	q := *outcome.Plan.Quarantine
	isDir := outcome.Plan.Entry.Kind == types.KindDirectory

	if dryRun {
		q.Target = e.dups.Next(q.Target, isDir, func(candidate string) bool {
			if e.claimed[candidate] {
				return true
			}
			_, err := e.fs.Lstat(candidate)
			return err == nil
		})
		e.claimed[q.Target] = true
		outcome.Plan.Quarantine = &q
		outcome.State = types.StateQuarantined
		outcome.Reason = outcome.Plan.Reason
		return outcome
	}

	if err := e.ensureDir(filepath.Dir(q.Target)); err != nil {
		return e.failed(outcome, err, "cannot create quarantine directory")
	}

	requested := q.Target
	for attempt := 0; ; attempt++ {
		q.Target = e.dups.Next(requested, isDir, func(candidate string) bool {
			_, err := e.fs.Lstat(candidate)
			return err == nil
		})
		err := e.fs.RenameNoReplace(q.Source, q.Target)
		if err == nil {
			break
		}
		// Lost a race for the candidate name; pick the next one
		if stderrors.Is(err, fs.ErrExist) && attempt < 3 {
			continue
		}
		outcome.Plan.Quarantine = &q
		return e.failed(outcome, err, "quarantine move failed")
	}

	outcome.Plan.Quarantine = &q
	outcome.State = types.StateQuarantined
	outcome.Reason = outcome.Plan.Reason
	return outcome
}

func (e *Executor) failed(outcome types.Outcome, err error, msg string) types.Outcome {
	if stderrors.Is(err, syscall.EXDEV) {
		msg += " (cross-device move)"
	}
	wrapped := errors.Wrap(err, errors.ErrMutation, msg).
		WithDetail("source", outcome.Plan.Source)
	outcome.State = types.StateErrored
	outcome.Err = wrapped
	outcome.Reason = errors.Reason(err)
	return outcome
}

// ensureDir creates dir and any missing parents, remembering each one it made
func (e *Executor) ensureDir(dir string) error {
	var missing []string
	for d := filepath.Clean(dir); ; d = filepath.Dir(d) {
		info, err := e.fs.Lstat(d)
		if err == nil {
			if !info.IsDir() {
				return errors.Newf(errors.ErrNotADirectory, "%s is not a directory", d)
			}
			break
		}
		missing = append(missing, d)
		if filepath.Dir(d) == d {
			break
		}
	}

	for i := len(missing) - 1; i >= 0; i-- {
		if err := e.fs.MkdirAll(missing[i], 0755); err != nil {
			return err
		}
		e.created = append(e.created, missing[i])
		e.logger.Debug().Str("dir", missing[i]).Msg("Created quarantine directory")
	}
	return nil
}

// Created returns the directories created so far
func (e *Executor) Created() []string {
	out := make([]string, len(e.created))
	copy(out, e.created)
	return out
}

// Finish removes directories created by this executor that are empty,
// deepest first. Directories it did not create are never removed.
func (e *Executor) Finish() error {
	dirs := e.Created()
	sort.SliceStable(dirs, func(i, j int) bool {
		return depth(dirs[i]) > depth(dirs[j])
	})

	var errs []error
	for _, dir := range dirs {
		entries, err := e.fs.ReadDir(dir)
		if err != nil {
			continue
		}
		if len(entries) > 0 {
			continue
		}
		if err := e.fs.Remove(dir); err != nil {
			errs = append(errs, err)
			continue
		}
		e.logger.Debug().Str("dir", dir).Msg("Removed empty quarantine directory")
	}
	e.created = nil
	return stderrors.Join(errs...)
}

func depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}
