package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/mp3curate/mp3curate/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/mp3curate/mp3curate/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/mp3curate/mp3curate/internal/version.Date={{.Date}}
)

// String is the one-line version banner
func String() string {
	return fmt.Sprintf("mp3curate version %s (commit %s, built %s)", Version, Commit, Date)
}
