package executor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DupNamer picks " - dupN" variants of a path until one is free
type DupNamer struct {
	counters map[string]int
}

// NewDupNamer creates a namer with fresh counters
func NewDupNamer() *DupNamer {
	return &DupNamer{counters: make(map[string]int)}
}

// Next returns requested when taken reports it free, otherwise the first
// free "stem - dupN.ext" candidate. Directories keep dots in the stem.
func (d *DupNamer) Next(requested string, isDir bool, taken func(string) bool) string {
	if !taken(requested) {
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := ""
	if !isDir {
		ext = filepath.Ext(base)
	}
	stem := strings.TrimSuffix(base, ext)

	counter := d.counters[requested]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		if !taken(candidate) {
			d.counters[requested] = counter + 1
			return candidate
		}
		counter++
	}
}
