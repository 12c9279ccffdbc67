package types

import "io/fs"

// Kind is the type of a scanned entry
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// KindOf maps a file mode to an entry kind. Symlinks are files.
func KindOf(mode fs.FileMode) Kind {
	if mode.IsDir() {
		return KindDirectory
	}
	return KindFile
}

// Entry is one directory entry as observed by the scanner
type Entry struct {
	// Path is absolute at the time of observation
	Path string `json:"path" yaml:"path"`
	// RawName holds the exact bytes the directory listing returned
	RawName string `json:"rawName" yaml:"rawName"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	// Depth counts from the scan root; root children are at depth 1
	Depth int `json:"depth" yaml:"depth"`
}

// CanonicalForm is the classifier's verdict on a raw name
type CanonicalForm struct {
	IsCanonical   bool   `json:"isCanonical" yaml:"isCanonical"`
	CanonicalName string `json:"canonicalName" yaml:"canonicalName"`
}
