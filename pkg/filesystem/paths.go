package filesystem

import (
	"path/filepath"
	"strings"
)

// IsWithin reports whether path equals root or lies below it.
// Both paths are compared lexically after cleaning.
func IsWithin(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
