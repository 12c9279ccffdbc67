package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"golang.org/x/text/unicode/norm"
)

// NFC returns the composed encoding of s
func NFC(s string) string {
	return norm.NFC.String(s)
}

// NFD returns the decomposed encoding of s
func NFD(s string) string {
	return norm.NFD.String(s)
}

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory in the specified parent directory.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// ListNames returns the raw names in dir, sorted bytewise.
func ListNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// SkipIfNormalizationInsensitive skips the test when the filesystem behind
// dir cannot hold an NFC and an NFD name side by side.
func SkipIfNormalizationInsensitive(t *testing.T, dir string) {
	t.Helper()

	probe, err := os.MkdirTemp(dir, "nfprobe")
	if err != nil {
		t.Fatalf("Failed to create probe directory: %v", err)
	}
	defer func() { _ = os.RemoveAll(probe) }()

	composed := filepath.Join(probe, NFC("é"))
	decomposed := filepath.Join(probe, NFD("é"))
	if err := os.WriteFile(composed, nil, 0644); err != nil {
		t.Fatalf("Failed to write probe file: %v", err)
	}
	if _, err := os.Lstat(decomposed); err == nil {
		t.Skip("host filesystem aliases NFC and NFD names")
	}
}
