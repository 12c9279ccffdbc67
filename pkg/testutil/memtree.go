package testutil

import (
	"path/filepath"
	"testing"

	"github.com/mp3curate/mp3curate/pkg/filesystem"
	"github.com/mp3curate/mp3curate/pkg/types"
)

// MemTree builds trees on an in-memory filesystem
type MemTree struct {
	t    *testing.T
	FS   types.FS
	Root string
}

// NewMemTree returns an empty in-memory tree rooted at root
func NewMemTree(t *testing.T, root string) *MemTree {
	t.Helper()
	fsys := filesystem.NewMemoryFS()
	if err := fsys.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create root %s: %v", root, err)
	}
	return &MemTree{t: t, FS: fsys, Root: root}
}

// File creates a file at the slash-separated path relative to the root
func (m *MemTree) File(rel, content string) string {
	m.t.Helper()
	path := filepath.Join(m.Root, filepath.FromSlash(rel))
	if err := m.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		m.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := m.FS.WriteFile(path, []byte(content), 0644); err != nil {
		m.t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// Dir creates a directory relative to the root
func (m *MemTree) Dir(rel string) string {
	m.t.Helper()
	path := filepath.Join(m.Root, filepath.FromSlash(rel))
	if err := m.FS.MkdirAll(path, 0755); err != nil {
		m.t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// Exists reports whether the path relative to the root exists
func (m *MemTree) Exists(rel string) bool {
	m.t.Helper()
	_, err := m.FS.Lstat(filepath.Join(m.Root, filepath.FromSlash(rel)))
	return err == nil
}

// Read returns the content of a file relative to the root
func (m *MemTree) Read(rel string) string {
	m.t.Helper()
	data, err := m.FS.ReadFile(filepath.Join(m.Root, filepath.FromSlash(rel)))
	if err != nil {
		m.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}
