package core

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/executor"
	"github.com/mp3curate/mp3curate/pkg/filesystem"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/mp3curate/mp3curate/pkg/normalize"
	"github.com/mp3curate/mp3curate/pkg/report"
	"github.com/mp3curate/mp3curate/pkg/resolver"
	"github.com/mp3curate/mp3curate/pkg/scanner"
	"github.com/mp3curate/mp3curate/pkg/types"
)

// Options describes one run
type Options struct {
	Root     string
	Mode     types.Mode
	Variant  types.Variant
	Strategy types.Strategy
	// QuarantineRoot is required by StrategyQuarantine and must lie outside Root
	QuarantineRoot string
	ApplySamefile  bool
	// Confirmed must be true for ModeApply
	Confirmed bool
	// Exclude lists paths kept out of the walk (ledger or metrics files)
	Exclude []string
	// OnOutcome, when set, sees every outcome as soon as it is recorded
	OnOutcome func(types.Outcome)
	FS        types.FS
}

func (o *Options) setDefaults() {
	if o.Mode == "" {
		o.Mode = types.ModeDryRun
	}
	if o.Variant == "" {
		o.Variant = types.VariantNFC
	}
	if o.Strategy == "" {
		o.Strategy = types.StrategyReport
	}
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
}

// Run executes one normalization pass over opts.Root. A cancelled ctx stops
// the walk; the partial summary is returned marked interrupted.
func Run(ctx context.Context, opts Options) (*report.Summary, error) {
	logger := logging.GetLogger("core")
	opts.setDefaults()

	if err := validate(&opts); err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(logger, "run")
	defer done()

	dryRun := opts.Mode != types.ModeApply
	agg := report.NewAggregator(opts.Root, opts.Variant, opts.Strategy, dryRun)
	log := logger.With().Str("run_id", agg.RunID()).Logger()
	log.Info().
		Str("root", opts.Root).
		Str("mode", string(opts.Mode)).
		Str("variant", string(opts.Variant)).
		Str("strategy", string(opts.Strategy)).
		Msg("Run started")

	classifier := normalize.For(opts.Variant)
	res := resolver.New(opts.FS, resolver.Options{
		Strategy:       opts.Strategy,
		ScanRoot:       opts.Root,
		QuarantineRoot: opts.QuarantineRoot,
		ApplySamefile:  opts.ApplySamefile,
	})
	exec := executor.New(executor.Options{
		Logger:         log,
		FS:             opts.FS,
		QuarantineRoot: opts.QuarantineRoot,
	})

	record := func(outcome types.Outcome) {
		agg.Record(outcome)
		if opts.OnOutcome != nil {
			opts.OnOutcome(outcome)
		}
	}

	scan := scanner.New(opts.FS, opts.Root, scanner.Options{
		Exclude: excludeFunc(opts),
		OnError: func(path string, err error) {
			agg.RecordScanError(path, errors.Wrapf(err, errors.ErrScan, "cannot read %s", path))
		},
	})

	for {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("Run interrupted")
			agg.MarkInterrupted()
			break
		}

		entry, ok := scan.Next()
		if !ok {
			break
		}

		form, err := classifier.Classify(entry.RawName)
		if err != nil {
			log.Warn().Err(err).Str("path", entry.Path).Msg("Cannot classify name, skipping")
			agg.RecordClassificationError(entry, err)
			continue
		}

		plan := res.Resolve(entry, form)
		outcome := exec.Execute(plan, opts.Mode)
		if outcome.State == types.StateRenamed {
			res.Claim(plan.Target)
		}
		record(outcome)
	}

	if err := exec.Finish(); err != nil {
		log.Warn().Err(err).Msg("Could not remove empty quarantine directories")
	}
	agg.Finish()
	summary := agg.Summary()

	if err := scan.Err(); err != nil {
		return summary, err
	}

	log.Info().
		Int("processed", summary.Counts.Processed).
		Int("renamed", summary.Counts.Renamed).
		Int("conflicts", summary.Counts.Conflicts).
		Int("quarantined", summary.Counts.Quarantined).
		Int("errored", summary.Counts.Errored).
		Bool("interrupted", summary.Interrupted).
		Msg("Run finished")

	return summary, nil
}

// validate checks every run-fatal precondition before anything is touched
func validate(opts *Options) error {
	if opts.Root == "" {
		return errors.New(errors.ErrInvalidInput, "no root directory given")
	}
	if opts.Mode != types.ModeDryRun && opts.Mode != types.ModeApply {
		return errors.Newf(errors.ErrInvalidInput, "unknown mode %q", opts.Mode)
	}
	if opts.Mode == types.ModeApply && !opts.Confirmed {
		return errors.New(errors.ErrNotConfirmed, "apply run was not confirmed")
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid root %s", opts.Root)
	}
	opts.Root = root

	info, err := opts.FS.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrDirectoryNotFound, "directory not found: %s", root).
				WithDetail("root", root)
		}
		return errors.Wrapf(err, errors.ErrDirectoryNotFound, "cannot access %s", root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrNotADirectory, "not a directory: %s", root)
	}

	if opts.Strategy == types.StrategyQuarantine {
		if opts.QuarantineRoot == "" {
			return errors.New(errors.ErrInvalidInput, "quarantine strategy needs a quarantine root")
		}
		q, err := filepath.Abs(opts.QuarantineRoot)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, "invalid quarantine root %s", opts.QuarantineRoot)
		}
		if filesystem.IsWithin(q, root) {
			return errors.Newf(errors.ErrInvalidInput,
				"quarantine root %s must be outside the scanned tree %s", q, root)
		}
		opts.QuarantineRoot = q
	}
	return nil
}

func excludeFunc(opts Options) func(string) bool {
	if len(opts.Exclude) == 0 {
		return nil
	}
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, p := range opts.Exclude {
		if abs, err := filepath.Abs(p); err == nil {
			excluded[abs] = true
		}
	}
	return func(path string) bool {
		return excluded[path]
	}
}
