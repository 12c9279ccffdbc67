package testutil

import (
	"io/fs"
	"sync"

	"github.com/mp3curate/mp3curate/pkg/types"
)

// FaultyFS wraps a types.FS and fails chosen operations on chosen paths
type FaultyFS struct {
	types.FS

	mu     sync.Mutex
	faults map[string]map[string]error
	// OnReadDir, when set, runs before every ReadDir
	OnReadDir func(name string)
}

// NewFaultyFS wraps inner
func NewFaultyFS(inner types.FS) *FaultyFS {
	return &FaultyFS{FS: inner, faults: map[string]map[string]error{}}
}

// Fail makes op ("readdir", "lstat", "rename", "mkdir", "remove") on path return err
func (f *FaultyFS) Fail(op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.faults[op] == nil {
		f.faults[op] = map[string]error{}
	}
	f.faults[op][path] = err
}

func (f *FaultyFS) fault(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faults[op][path]
}

func (f *FaultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if f.OnReadDir != nil {
		f.OnReadDir(name)
	}
	if err := f.fault("readdir", name); err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	return f.FS.ReadDir(name)
}

func (f *FaultyFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.fault("lstat", name); err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: err}
	}
	return f.FS.Lstat(name)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fault("mkdir", path); err != nil {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.fault("remove", name); err != nil {
		return &fs.PathError{Op: "remove", Path: name, Err: err}
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) RenameNoReplace(oldpath, newpath string) error {
	if err := f.fault("rename", oldpath); err != nil {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: err}
	}
	return f.FS.RenameNoReplace(oldpath, newpath)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if err := f.fault("rename", oldpath); err != nil {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: err}
	}
	return f.FS.Rename(oldpath, newpath)
}
