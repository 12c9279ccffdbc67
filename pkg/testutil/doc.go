// Package testutil provides tree builders and filesystem helpers for
// mp3curate tests.
//
// Key components:
//   - CreateFile / CreateDir: real-filesystem builders for t.TempDir trees
//   - MemTree: in-memory tree builder over filesystem.NewMemoryFS
//   - FaultyFS: a types.FS wrapper that injects errors for chosen paths
//   - NFC / NFD: explicit encodings of a display name
//   - SkipIfNormalizationInsensitive: skips real-FS tests on hosts where
//     NFC and NFD names alias to one directory entry
package testutil
