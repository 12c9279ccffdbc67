package mp3curate

import (
	"github.com/mp3curate/mp3curate/internal/version"
	"github.com/mp3curate/mp3curate/pkg/cobrax/topics"
	"github.com/mp3curate/mp3curate/pkg/config"
	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/filesystem"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/mp3curate/mp3curate/pkg/tags"
	"github.com/mp3curate/mp3curate/pkg/transform"
	"github.com/mp3curate/mp3curate/pkg/types"
	"github.com/mp3curate/mp3curate/pkg/ui"
	"github.com/mp3curate/mp3curate/pkg/ui/confirmations"
	"github.com/spf13/cobra"
)

// annotationNoConfig marks commands that must work with a broken config file
const annotationNoConfig = "mp3curate/no-config"

// app holds the state shared by all commands of one invocation
type app struct {
	verbosity  int
	format     string
	configPath string

	cfg       *config.Config
	outFormat ui.Format
	renderer  ui.Renderer

	fs        types.FS
	confirmer confirmations.Confirmer
	tagStore  tags.Store
	transform transform.Transform
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "mp3curate",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "library", Title: "LIBRARY:"})
	rootCmd.AddGroup(&cobra.Group{ID: "inspect", Title: "INSPECT:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newCheckCmd())
	rootCmd.AddCommand(a.newNormalizeCmd())
	rootCmd.AddCommand(a.newSanitizeCmd())
	rootCmd.AddCommand(a.newDedupeCmd())
	rootCmd.AddCommand(a.newCompareCmd())
	rootCmd.AddCommand(a.newAuditCmd())
	rootCmd.AddCommand(a.newWatchCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	tm, err := topics.New(rootCmd.Name(), topicsFS(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err == nil {
		topicsCmd := tm.Command(MsgTopicsShort, MsgTopicsLong)
		topicsCmd.GroupID = "misc"
		topicsCmd.Annotations = map[string]string{annotationNoConfig: "true"}
		rootCmd.AddCommand(topicsCmd)
		tm.Install(rootCmd)
	}

	return rootCmd
}

// setup runs before every command: logging, output format and config
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetupLogger(a.verbosity)
	logger := logging.GetLogger("cmd")
	logger.Debug().Str("command", cmd.CommandPath()).Msg("Command started")

	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.outFormat = format
	if a.renderer, err = ui.NewRenderer(format, cmd.OutOrStdout()); err != nil {
		return err
	}

	if cmd.Annotations[annotationNoConfig] == "true" {
		return nil
	}
	if a.cfg, err = config.Load(a.configPath); err != nil {
		return err
	}

	if a.fs == nil {
		a.fs = filesystem.NewOS()
	}
	if a.confirmer == nil {
		a.confirmer = confirmations.PromptConfirmer{}
	}
	if a.tagStore == nil {
		a.tagStore = tags.NewID3Store()
	}
	if a.transform == nil {
		a.transform = transform.NewExternal(
			transform.NewRunner(a.cfg.Transform.Timeout),
			a.cfg.Transform.FFprobe,
			a.cfg.Transform.MP3Val,
		)
	}
	return nil
}

// structured reports whether output is meant for machines
func (a *app) structured() bool {
	return ui.IsStructured(a.outFormat)
}

// note renders an informational message for humans only
func (a *app) note(msg string) error {
	if a.structured() {
		logger := logging.GetLogger("cmd")
		logger.Info().Msg(msg)
		return nil
	}
	return a.renderer.RenderMessage(msg)
}
