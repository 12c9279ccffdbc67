package mp3curate

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep music library names in canonical Unicode form"
	MsgCheckShort      = "Report names that are not NFC (never changes anything)"
	MsgNormalizeShort  = "Rename entries to their NFC form"
	MsgSanitizeShort   = "Rename entries to a FAT32-friendly NFC form"
	MsgDedupeShort     = "Quarantine decomposed twins of composed names"
	MsgCompareShort    = "Show every spelling of a name across directories"
	MsgAuditShort      = "Report missing or malformed tags"
	MsgWatchShort      = "Re-run the check whenever the library changes"
	MsgConfigShort     = "Show or create the configuration file"
	MsgConfigShowShort = "Print the effective configuration as TOML"
	MsgConfigInitShort = "Write a commented default config file"
	MsgTopicsShort     = "List all topics or show help for a topic"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNothingToApply   = "Nothing to apply."
	MsgApplyDeclined    = "Not applied; nothing was changed."
	MsgLedgerWritten    = "Ledger written to %s"
	MsgMetricsWritten   = "Metrics written to %s"
	MsgConfigWritten    = "Wrote default configuration to %s"
	MsgWatchStarted     = "Watching %s (Ctrl+C to stop)"
	MsgStructuredNeedsY = "--apply with %s output needs --yes"

	// Error messages
	MsgErrNoQuarantineRoot = "dedupe needs a quarantine root: pass --quarantine-root or set quarantine.root"
	MsgErrNoCommand        = "no command specified"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat         = "Output format: auto, term, text, json, yaml"
	MsgFlagConfig         = "Config file (default $XDG_CONFIG_HOME/mp3curate/config.toml)"
	MsgFlagDryRun         = "Only predict changes (the default)"
	MsgFlagApply          = "Apply the changes after confirmation"
	MsgFlagYes            = "Do not ask for confirmation"
	MsgFlagQuarantineRoot = "Move conflicting twins under this directory instead of reporting them"
	MsgFlagRenameSamefile = "Rename even when the canonical name already points to the same file"
	MsgFlagLedger         = "Write conflicts and errors to this file"
	MsgFlagMetricsFile    = "Write Prometheus metrics to this textfile"
	MsgFlagVerify         = "Also probe each file with ffprobe and check it with mp3val"
	MsgFlagWorkers        = "Number of files read in parallel"
	MsgFlagDebounce       = "Quiet period before a change triggers a pass"
	MsgFlagForce          = "Overwrite an existing config file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimSpace(msgCheckExampleRaw)

	//go:embed msgs/normalize-long.txt
	msgNormalizeLongRaw string
	MsgNormalizeLong    = strings.TrimSpace(msgNormalizeLongRaw)

	//go:embed msgs/normalize-example.txt
	msgNormalizeExampleRaw string
	MsgNormalizeExample    = strings.TrimSpace(msgNormalizeExampleRaw)

	//go:embed msgs/sanitize-long.txt
	msgSanitizeLongRaw string
	MsgSanitizeLong    = strings.TrimSpace(msgSanitizeLongRaw)

	//go:embed msgs/sanitize-example.txt
	msgSanitizeExampleRaw string
	MsgSanitizeExample    = strings.TrimSpace(msgSanitizeExampleRaw)

	//go:embed msgs/dedupe-long.txt
	msgDedupeLongRaw string
	MsgDedupeLong    = strings.TrimSpace(msgDedupeLongRaw)

	//go:embed msgs/dedupe-example.txt
	msgDedupeExampleRaw string
	MsgDedupeExample    = strings.TrimSpace(msgDedupeExampleRaw)

	//go:embed msgs/compare-long.txt
	msgCompareLongRaw string
	MsgCompareLong    = strings.TrimSpace(msgCompareLongRaw)

	//go:embed msgs/compare-example.txt
	msgCompareExampleRaw string
	MsgCompareExample    = strings.TrimSpace(msgCompareExampleRaw)

	//go:embed msgs/audit-long.txt
	msgAuditLongRaw string
	MsgAuditLong    = strings.TrimSpace(msgAuditLongRaw)

	//go:embed msgs/audit-example.txt
	msgAuditExampleRaw string
	MsgAuditExample    = strings.TrimSpace(msgAuditExampleRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
