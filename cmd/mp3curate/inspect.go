package mp3curate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mp3curate/mp3curate/pkg/audit"
	"github.com/mp3curate/mp3curate/pkg/compare"
	"github.com/mp3curate/mp3curate/pkg/core"
	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/mp3curate/mp3curate/pkg/metrics"
	"github.com/mp3curate/mp3curate/pkg/types"
	"github.com/mp3curate/mp3curate/pkg/ui/display"
	"github.com/mp3curate/mp3curate/pkg/watch"
	"github.com/spf13/cobra"
)

func (a *app) newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "compare <canonical-name> <dir>...",
		Short:   MsgCompareShort,
		Long:    MsgCompareLong,
		Example: MsgCompareExample,
		GroupID: "inspect",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, dirs := args[0], args[1:]
			results := compare.Compare(a.fs, name, dirs)
			return a.renderer.RenderResult(&display.CompareView{Name: name, Results: results})
		},
	}
}

func (a *app) newAuditCmd() *cobra.Command {
	var (
		verify  bool
		workers int
	)
	cmd := &cobra.Command{
		Use:     "audit <root>",
		Short:   MsgAuditShort,
		Long:    MsgAuditLong,
		Example: MsgAuditExample,
		GroupID: "inspect",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "invalid root %s", args[0])
			}
			if workers <= 0 {
				workers = a.cfg.Audit.Workers
			}

			opts := audit.Options{
				Store:      a.tagStore,
				Workers:    workers,
				Extensions: a.cfg.Audit.Extensions,
				Required:   audit.ParseFields(a.cfg.Audit.RequiredFields),
			}
			if verify {
				opts.Transform = a.transform
			}

			rep, err := audit.Run(cmd.Context(), a.fs, root, opts)
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(&display.AuditView{Report: rep, Verbosity: a.verbosity})
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, MsgFlagVerify)
	cmd.Flags().IntVar(&workers, "workers", 0, MsgFlagWorkers)
	return cmd
}

func (a *app) newWatchCmd() *cobra.Command {
	var (
		debounce    time.Duration
		metricsFile string
	)
	cmd := &cobra.Command{
		Use:     "watch <root>",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "inspect",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if debounce <= 0 {
				debounce = a.cfg.Watch.Debounce
			}
			if metricsFile == "" {
				metricsFile = a.cfg.Report.MetricsFile
			}
			root, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput, "invalid root %s", args[0])
			}

			w := watch.New(watch.Options{
				Root:        root,
				Debounce:    debounce,
				InitialPass: true,
				Exclude:     outputExcluder(metricsFile),
				Pass:        a.watchPass(root, metricsFile),
			})
			if err := a.note(fmt.Sprintf(MsgWatchStarted, root)); err != nil {
				return err
			}
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 0, MsgFlagDebounce)
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", MsgFlagMetricsFile)
	return cmd
}

// watchPass builds the check pass the watcher runs. Metrics accumulate
// across passes of one watch session.
func (a *app) watchPass(root, metricsFile string) func(ctx context.Context) error {
	m := metrics.New()
	logger := logging.GetLogger("cmd.watch")
	return func(ctx context.Context) error {
		summary, err := core.Run(ctx, core.Options{
			Root:    root,
			Mode:    types.ModeDryRun,
			Variant: types.VariantNFC,
			Exclude: (&runFlags{metricsFile: metricsFile}).outputs(),
			FS:      a.fs,
		})
		if err != nil {
			return err
		}
		if err := a.renderRun("check", summary); err != nil {
			return err
		}
		if metricsFile == "" {
			return nil
		}
		m.Observe(summary)
		if err := m.WriteTextfile(metricsFile); err != nil {
			logger.Warn().Err(err).Msg("Cannot write metrics")
		}
		return nil
	}
}

// outputExcluder hides a metrics file and the temporary files written
// next to it from the watcher
func outputExcluder(path string) func(string) bool {
	if path == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	dir, base := filepath.Dir(abs), filepath.Base(abs)
	return func(p string) bool {
		return filepath.Dir(p) == dir && strings.HasPrefix(filepath.Base(p), base)
	}
}
