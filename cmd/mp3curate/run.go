package mp3curate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mp3curate/mp3curate/pkg/core"
	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/mp3curate/mp3curate/pkg/metrics"
	"github.com/mp3curate/mp3curate/pkg/report"
	"github.com/mp3curate/mp3curate/pkg/types"
	"github.com/mp3curate/mp3curate/pkg/ui/confirmations"
	"github.com/mp3curate/mp3curate/pkg/ui/display"
	"github.com/spf13/cobra"
)

// runFlags are the flags shared by the library commands
type runFlags struct {
	dryRun         bool
	apply          bool
	yes            bool
	renameSamefile bool
	quarantineRoot string
	ledger         string
	metricsFile    string
}

func addOutputFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().StringVar(&f.ledger, "ledger", "", MsgFlagLedger)
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", MsgFlagMetricsFile)
}

func addMutationFlags(cmd *cobra.Command, f *runFlags) {
	addOutputFlags(cmd, f)
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", true, MsgFlagDryRun)
	cmd.Flags().BoolVar(&f.apply, "apply", false, MsgFlagApply)
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().BoolVar(&f.renameSamefile, "rename-samefile", false, MsgFlagRenameSamefile)
	cmd.Flags().StringVar(&f.quarantineRoot, "quarantine-root", "", MsgFlagQuarantineRoot)
	cmd.MarkFlagsMutuallyExclusive("dry-run", "apply")
	_ = cmd.MarkFlagDirname("quarantine-root")
}

// passSpec describes what a library command asks of the core
type passSpec struct {
	command  string
	variant  types.Variant
	strategy types.Strategy
}

// resolveOutputs fills ledger and metrics paths from the config when the
// flags left them empty
func (a *app) resolveOutputs(f *runFlags) {
	if f.ledger == "" {
		f.ledger = a.cfg.Report.Ledger
	}
	if f.metricsFile == "" {
		f.metricsFile = a.cfg.Report.MetricsFile
	}
}

func (f *runFlags) outputs() []string {
	var paths []string
	for _, p := range []string{f.ledger, f.metricsFile} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// runPass is the two-phase flow of every library command: a dry run that
// is always shown, then, with --apply and a confirmation, the real run.
func (a *app) runPass(cmd *cobra.Command, root string, spec passSpec, f *runFlags) error {
	ctx := cmd.Context()
	logger := logging.GetLogger("cmd." + spec.command)
	a.resolveOutputs(f)

	strategy := spec.strategy
	if f.quarantineRoot != "" {
		strategy = types.StrategyQuarantine
	}

	opts := core.Options{
		Root:           root,
		Mode:           types.ModeDryRun,
		Variant:        spec.variant,
		Strategy:       strategy,
		QuarantineRoot: f.quarantineRoot,
		ApplySamefile:  f.renameSamefile || a.cfg.Normalize.ApplySamefile,
		Exclude:        f.outputs(),
		FS:             a.fs,
	}

	planned, err := core.Run(ctx, opts)
	if err != nil {
		return err
	}
	logger.Debug().Str("run_id", planned.RunID).Bool("apply", f.apply).Msg("Dry run finished")

	if !f.apply {
		if err := a.renderRun(spec.command, planned); err != nil {
			return err
		}
		return a.writeOutputs(planned, f)
	}

	if !planned.HasPendingMutations() {
		if !a.structured() {
			if err := a.renderRun(spec.command, planned); err != nil {
				return err
			}
		}
		if err := a.note(MsgNothingToApply); err != nil {
			return err
		}
		return a.writeOutputs(planned, f)
	}

	if !f.yes {
		if a.structured() {
			return errors.Newf(errors.ErrNotConfirmed, MsgStructuredNeedsY, a.outFormat)
		}
		if err := a.renderRun(spec.command, planned); err != nil {
			return err
		}
		ok, err := confirmations.ConfirmRun(a.confirmer, planned)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info().Str("run_id", planned.RunID).Msg("Apply declined")
			return a.note(MsgApplyDeclined)
		}
	}

	opts.Mode = types.ModeApply
	opts.Confirmed = true
	applied, err := core.Run(ctx, opts)
	if err != nil {
		return err
	}
	if err := a.renderRun(spec.command, applied); err != nil {
		return err
	}
	return a.writeOutputs(applied, f)
}

func (a *app) renderRun(command string, s *report.Summary) error {
	return a.renderer.RenderResult(&display.RunView{
		Command:   command,
		Summary:   s,
		Verbosity: a.verbosity,
	})
}

// writeOutputs writes the ledger and the metrics textfile when requested
func (a *app) writeOutputs(s *report.Summary, f *runFlags) error {
	if f.ledger != "" {
		if err := writeLedgerFile(f.ledger, s); err != nil {
			return err
		}
		if err := a.note(fmt.Sprintf(MsgLedgerWritten, f.ledger)); err != nil {
			return err
		}
	}
	if f.metricsFile != "" {
		m := metrics.New()
		m.Observe(s)
		if err := m.WriteTextfile(f.metricsFile); err != nil {
			return err
		}
		if err := a.note(fmt.Sprintf(MsgMetricsWritten, f.metricsFile)); err != nil {
			return err
		}
	}
	return nil
}

func writeLedgerFile(path string, s *report.Summary) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "cannot create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot write ledger %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, errors.ErrInternal, "cannot write ledger %s", path)
		}
	}()
	return report.WriteLedger(f, s)
}

func (a *app) newCheckCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:     "check <root>",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPass(cmd, args[0], passSpec{
				command:  "check",
				variant:  types.VariantNFC,
				strategy: types.StrategyReport,
			}, f)
		},
	}
	addOutputFlags(cmd, f)
	return cmd
}

func (a *app) newNormalizeCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:     "normalize <root>",
		Short:   MsgNormalizeShort,
		Long:    MsgNormalizeLong,
		Example: MsgNormalizeExample,
		GroupID: "library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPass(cmd, args[0], passSpec{
				command:  "normalize",
				variant:  types.VariantNFC,
				strategy: types.StrategyReport,
			}, f)
		},
	}
	addMutationFlags(cmd, f)
	return cmd
}

func (a *app) newSanitizeCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:     "sanitize <root>",
		Short:   MsgSanitizeShort,
		Long:    MsgSanitizeLong,
		Example: MsgSanitizeExample,
		GroupID: "library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPass(cmd, args[0], passSpec{
				command:  "sanitize",
				variant:  types.VariantFAT32,
				strategy: types.StrategyReport,
			}, f)
		},
	}
	addMutationFlags(cmd, f)
	return cmd
}

func (a *app) newDedupeCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:     "dedupe <root>",
		Short:   MsgDedupeShort,
		Long:    MsgDedupeLong,
		Example: MsgDedupeExample,
		GroupID: "library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.quarantineRoot == "" {
				f.quarantineRoot = a.cfg.Quarantine.Root
			}
			if f.quarantineRoot == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoQuarantineRoot)
			}
			return a.runPass(cmd, args[0], passSpec{
				command:  "dedupe",
				variant:  types.VariantNFC,
				strategy: types.StrategyQuarantine,
			}, f)
		},
	}
	addMutationFlags(cmd, f)
	return cmd
}
