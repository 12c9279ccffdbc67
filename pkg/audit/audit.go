// Package audit checks the tags of every media file under a root without
// modifying anything. Files are read on a bounded worker pool; results
// come back sorted by path.
package audit

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/mp3curate/mp3curate/pkg/scanner"
	"github.com/mp3curate/mp3curate/pkg/tags"
	"github.com/mp3curate/mp3curate/pkg/transform"
	"github.com/mp3curate/mp3curate/pkg/types"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when Options.Workers is not positive
const DefaultWorkers = 8

// Options configures an audit run
type Options struct {
	Store tags.Store
	// Transform, when set, verifies every file's integrity as well
	Transform  transform.Transform
	Workers    int
	Extensions []string
	Required   []tags.Field
	// OnResult, when set, is called from worker goroutines as files finish
	OnResult func(FileResult)
}

// FileResult is the audit verdict for one file
type FileResult struct {
	Path      string                  `json:"path" yaml:"path"`
	Tags      tags.Tags               `json:"tags" yaml:"tags"`
	Missing   []tags.Field            `json:"missing,omitempty" yaml:"missing,omitempty"`
	Malformed []string                `json:"malformed,omitempty" yaml:"malformed,omitempty"`
	Probe     *transform.ProbeResult  `json:"probe,omitempty" yaml:"probe,omitempty"`
	Verify    *transform.VerifyResult `json:"verify,omitempty" yaml:"verify,omitempty"`
	Error     string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

// NoAudio reports whether probing found no playable duration
func (r FileResult) NoAudio() bool {
	return r.Probe != nil && r.Probe.Duration <= 0
}

// VerifyFailed reports whether probing or the integrity check flagged the file
func (r FileResult) VerifyFailed() bool {
	return r.NoAudio() || (r.Verify != nil && !r.Verify.OK)
}

// HasProblems reports whether the file needs attention
func (r FileResult) HasProblems() bool {
	return r.Error != "" || len(r.Missing) > 0 || len(r.Malformed) > 0 || r.VerifyFailed()
}

// Report summarizes an audit run
type Report struct {
	Root           string             `json:"root" yaml:"root"`
	Files          int                `json:"files" yaml:"files"`
	WithProblems   int                `json:"withProblems" yaml:"withProblems"`
	MissingByField map[tags.Field]int `json:"missingByField" yaml:"missingByField"`
	Malformed      int                `json:"malformed" yaml:"malformed"`
	Errors         int                `json:"errors" yaml:"errors"`
	VerifyFailures int                `json:"verifyFailures" yaml:"verifyFailures"`
	Results        []FileResult       `json:"results" yaml:"results"`
	ScanErrors     []string           `json:"scanErrors,omitempty" yaml:"scanErrors,omitempty"`
	Duration       time.Duration      `json:"duration" yaml:"duration"`
	Interrupted    bool               `json:"interrupted" yaml:"interrupted"`
}

// Run audits every matching file under root
func Run(ctx context.Context, fsys types.FS, root string, opts Options) (*Report, error) {
	logger := logging.GetLogger("audit")
	start := time.Now()

	if opts.Store == nil {
		return nil, errors.New(errors.ErrInvalidInput, "audit needs a tag store")
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".mp3"}
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirectoryNotFound, "directory not found: %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotADirectory, "not a directory: %s", root)
	}

	report := &Report{Root: root, MissingByField: map[tags.Field]int{}}
	paths, err := discover(fsys, root, opts.Extensions, report)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("root", root).Int("files", len(paths)).Int("workers", opts.Workers).Msg("Audit started")

	results := make([]FileResult, len(paths))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = auditFile(gctx, path, opts)
			done.Add(1)
			if opts.OnResult != nil {
				opts.OnResult(results[i])
			}
			return nil
		})
	}
	waitErr := g.Wait()
	if waitErr != nil || ctx.Err() != nil {
		report.Interrupted = true
		logger.Warn().Int64("completed", done.Load()).Msg("Audit interrupted")
	}

	for _, r := range results {
		if r.Path == "" {
			continue
		}
		report.Results = append(report.Results, r)
	}
	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Path < report.Results[j].Path
	})
	tally(report)
	report.Duration = time.Since(start)

	logger.Info().
		Int("files", report.Files).
		Int("with_problems", report.WithProblems).
		Dur("duration", report.Duration).
		Msg("Audit finished")
	return report, nil
}

func discover(fsys types.FS, root string, extensions []string, report *Report) ([]string, error) {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}

	scan := scanner.New(fsys, root, scanner.Options{
		OnError: func(path string, err error) {
			report.ScanErrors = append(report.ScanErrors, path+": "+errors.Reason(err))
		},
	})
	entries, err := scan.All()
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.Kind == types.KindFile && exts[strings.ToLower(filepath.Ext(entry.RawName))] {
			paths = append(paths, entry.Path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func auditFile(ctx context.Context, path string, opts Options) FileResult {
	result := FileResult{Path: path}

	t, err := opts.Store.Read(ctx, path)
	if err != nil {
		result.Error = errors.Reason(err)
		return result
	}
	result.Tags = t
	result.Missing = t.Missing(opts.Required)
	result.Malformed = t.Malformed

	if opts.Transform != nil {
		p, err := opts.Transform.Probe(ctx, path)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Probe = p

		v, err := opts.Transform.Verify(ctx, path)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Verify = v
	}
	return result
}

func tally(report *Report) {
	report.Files = len(report.Results)
	for _, r := range report.Results {
		if r.HasProblems() {
			report.WithProblems++
		}
		for _, f := range r.Missing {
			report.MissingByField[f]++
		}
		if len(r.Malformed) > 0 {
			report.Malformed++
		}
		if r.Error != "" {
			report.Errors++
		}
		if r.VerifyFailed() {
			report.VerifyFailures++
		}
	}
}

// ParseFields converts configuration names into tag fields
func ParseFields(names []string) []tags.Field {
	fields := make([]tags.Field, 0, len(names))
	for _, n := range names {
		fields = append(fields, tags.Field(n))
	}
	return fields
}
