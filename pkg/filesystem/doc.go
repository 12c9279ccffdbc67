// Package filesystem provides implementations of types.FS.
//
// NewOS talks to the real filesystem and uses renameat2(RENAME_NOREPLACE)
// on Linux for no-replace renames. NewAferoFS wraps any afero.Fs, which
// the tests use with an in-memory tree so that NFC and NFD twins can
// coexist regardless of the host filesystem.
package filesystem
