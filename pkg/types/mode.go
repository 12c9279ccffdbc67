package types

import "fmt"

// Mode selects whether a run mutates the filesystem
type Mode string

const (
	ModeDryRun Mode = "dry-run"
	ModeApply  Mode = "apply"
)

// Strategy selects how conflicts are handled
type Strategy string

const (
	// StrategyReport logs conflicts and leaves both entries in place
	StrategyReport Strategy = "report"
	// StrategyQuarantine moves the non-canonical twin under a quarantine root
	StrategyQuarantine Strategy = "quarantine"
)

// Variant selects the classifier
type Variant string

const (
	VariantNFC   Variant = "nfc"
	VariantFAT32 Variant = "fat32"
)

// ParseVariant converts a config or flag value into a Variant
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantNFC, VariantFAT32:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown variant %q", s)
}
