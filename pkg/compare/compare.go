// Package compare lists the raw spellings of one canonical name across
// directories, showing which of them are composed (NFC) and which are not.
package compare

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/mp3curate/mp3curate/pkg/normalize"
	"github.com/mp3curate/mp3curate/pkg/types"
	"golang.org/x/text/unicode/norm"
)

// Variant is one raw entry whose NFC form equals the requested name
type Variant struct {
	Path    string     `json:"path" yaml:"path"`
	RawName string     `json:"rawName" yaml:"rawName"`
	Kind    types.Kind `json:"kind" yaml:"kind"`
	IsNFC   bool       `json:"isNfc" yaml:"isNfc"`
}

// DirResult holds the variants found in one directory
type DirResult struct {
	Dir      string    `json:"dir" yaml:"dir"`
	Variants []Variant `json:"variants" yaml:"variants"`
	Err      error     `json:"-" yaml:"-"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// KindFor guesses what a name refers to: names without an extension are
// looked up as directories, everything else as files.
func KindFor(name string) types.Kind {
	if filepath.Ext(name) == "" {
		return types.KindDirectory
	}
	return types.KindFile
}

// FindVariants returns the entries of dir whose NFC form equals the NFC
// form of canonicalName and whose kind matches, in directory order.
func FindVariants(fsys types.FS, dir, canonicalName string, kind types.Kind) ([]Variant, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrDirectoryNotFound, "directory not found: %s", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrScan, "cannot list %s", dir)
	}

	want := norm.NFC.String(canonicalName)
	var variants []Variant
	for _, entry := range entries {
		name := entry.Name()
		if norm.NFC.String(name) != want {
			continue
		}
		entryKind := kindOf(fsys, filepath.Join(dir, name), entry)
		if entryKind != kind {
			continue
		}
		variants = append(variants, Variant{
			Path:    filepath.Join(dir, name),
			RawName: name,
			Kind:    entryKind,
			IsNFC:   normalize.IsNFC(name),
		})
	}
	return variants, nil
}

// Compare runs FindVariants over every directory. A directory that cannot
// be listed is reported in its own result and does not stop the others.
func Compare(fsys types.FS, canonicalName string, dirs []string) []DirResult {
	logger := logging.GetLogger("compare")
	kind := KindFor(canonicalName)

	results := make([]DirResult, 0, len(dirs))
	for _, dir := range dirs {
		variants, err := FindVariants(fsys, dir, canonicalName, kind)
		result := DirResult{Dir: dir, Variants: variants, Err: err}
		if err != nil {
			result.Error = err.Error()
			logger.Warn().Err(err).Str("dir", dir).Msg("Cannot compare directory")
		}
		results = append(results, result)
	}
	return results
}

func kindOf(fsys types.FS, path string, entry fs.DirEntry) types.Kind {
	if info, err := fsys.Lstat(path); err == nil {
		return types.KindOf(info.Mode())
	}
	return types.KindOf(entry.Type())
}
