// Package scanner walks a directory tree bottom-up.
//
// Every descendant of a directory is yielded before the directory itself,
// so renaming an entry never invalidates a path that is still pending.
// Siblings are yielded in byte order of their raw names. The scan root is
// never yielded.
package scanner

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/mp3curate/mp3curate/pkg/types"
	"github.com/rs/zerolog"
)

// Options tunes a scan
type Options struct {
	// Exclude prunes a path and its subtree when it returns true
	Exclude func(path string) bool
	// OnError receives directories that could not be listed and entries
	// that could not be inspected. The walk continues past them.
	OnError func(path string, err error)
}

type frame struct {
	path    string
	depth   int
	names   []string
	next    int
	visible bool
	rawName string
}

// Scanner is a lazy, non-restartable post-order iterator
type Scanner struct {
	fs      types.FS
	root    string
	opts    Options
	stack   []*frame
	started bool
	err     error
	logger  zerolog.Logger
}

// New creates a scanner over root. Nothing is read until the first Next.
func New(fsys types.FS, root string, opts Options) *Scanner {
	return &Scanner{
		fs:     fsys,
		root:   filepath.Clean(root),
		opts:   opts,
		logger: logging.GetLogger("scanner"),
	}
}

// Next returns the next entry in post-order. It returns false when the
// walk is done or the root could not be listed; check Err afterwards.
func (s *Scanner) Next() (types.Entry, bool) {
	if !s.started {
		s.started = true
		names, err := s.list(s.root)
		if err != nil {
			s.err = errors.Wrapf(err, errors.ErrScan, "cannot list scan root %s", s.root)
			return types.Entry{}, false
		}
		s.stack = append(s.stack, &frame{path: s.root, names: names})
	}

	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]

		if top.next < len(top.names) {
			name := top.names[top.next]
			top.next++
			path := filepath.Join(top.path, name)

			if s.opts.Exclude != nil && s.opts.Exclude(path) {
				s.logger.Debug().Str("path", path).Msg("Excluded from scan")
				continue
			}

			info, err := s.fs.Lstat(path)
			if err != nil {
				s.handleStatError(path, err)
				continue
			}

			if info.IsDir() {
				children, err := s.list(path)
				if err != nil {
					if os.IsNotExist(err) {
						continue
					}
					s.report(path, err)
					children = nil
				}
				s.stack = append(s.stack, &frame{
					path:    path,
					depth:   top.depth + 1,
					names:   children,
					visible: true,
					rawName: name,
				})
				continue
			}

			return types.Entry{
				Path:    path,
				RawName: name,
				Kind:    types.KindFile,
				Depth:   top.depth + 1,
			}, true
		}

		s.stack = s.stack[:len(s.stack)-1]
		if !top.visible {
			continue
		}

		// The directory may have vanished or changed while its children were processed
		info, err := s.fs.Lstat(top.path)
		if err != nil {
			s.handleStatError(top.path, err)
			continue
		}
		return types.Entry{
			Path:    top.path,
			RawName: top.rawName,
			Kind:    types.KindOf(info.Mode()),
			Depth:   top.depth,
		}, true
	}

	return types.Entry{}, false
}

// Err returns the error that ended the scan early, if any
func (s *Scanner) Err() error {
	return s.err
}

// All drains the scanner into a slice
func (s *Scanner) All() ([]types.Entry, error) {
	var entries []types.Entry
	for {
		entry, ok := s.Next()
		if !ok {
			break
		}
		entries = append(entries, entry)
	}
	return entries, s.Err()
}

func (s *Scanner) list(dir string) ([]string, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	s.logger.Trace().Str("dir", dir).Int("entries", len(names)).Msg("Listed directory")
	return names, nil
}

func (s *Scanner) handleStatError(path string, err error) {
	if os.IsNotExist(err) {
		s.logger.Debug().Str("path", path).Msg("Entry vanished before it was yielded")
		return
	}
	s.report(path, err)
}

func (s *Scanner) report(path string, err error) {
	s.logger.Warn().Err(err).Str("path", path).Msg("Cannot read entry, skipping")
	if s.opts.OnError != nil {
		s.opts.OnError(path, err)
	}
}
