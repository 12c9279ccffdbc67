package config

import (
	"time"
)

// Config is the effective mp3curate configuration
type Config struct {
	Normalize  NormalizeConfig  `koanf:"normalize"`
	Quarantine QuarantineConfig `koanf:"quarantine"`
	Report     ReportConfig     `koanf:"report"`
	Audit      AuditConfig      `koanf:"audit"`
	Transform  TransformConfig  `koanf:"transform"`
	Watch      WatchConfig      `koanf:"watch"`

	// raw keeps the merged key tree for display
	raw map[string]interface{}
}

type NormalizeConfig struct {
	ApplySamefile bool `koanf:"apply_samefile"`
}

type QuarantineConfig struct {
	Root string `koanf:"root"`
}

type ReportConfig struct {
	Ledger      string `koanf:"ledger"`
	MetricsFile string `koanf:"metrics_file"`
}

type AuditConfig struct {
	Workers        int      `koanf:"workers" validate:"min=1,max=64"`
	Extensions     []string `koanf:"extensions" validate:"min=1,dive,startswith=."`
	RequiredFields []string `koanf:"required_fields" validate:"dive,oneof=title artist album album_artist genre year"`
}

type TransformConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
	FFprobe string        `koanf:"ffprobe" validate:"required"`
	MP3Val  string        `koanf:"mp3val" validate:"required"`
}

type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce" validate:"gt=0"`
}
