package types

import (
	"io/fs"
)

// FS is the filesystem abstraction used throughout mp3curate
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error

	// RenameNoReplace renames oldpath to newpath and fails with an error
	// matching fs.ErrExist when newpath is already taken.
	RenameNoReplace(oldpath, newpath string) error

	// SameFile reports whether two infos returned by this FS describe the
	// same underlying file.
	SameFile(a, b fs.FileInfo) bool
}
