//go:build !linux

package filesystem

import "os"

func renameNoReplace(oldpath, newpath string) error {
	return checkedRename(os.Lstat, os.Rename, oldpath, newpath)
}
