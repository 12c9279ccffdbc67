package transform

import (
	"bufio"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mp3curate/mp3curate/pkg/errors"
)

// Transform probes and verifies media files
type Transform interface {
	Probe(ctx context.Context, path string) (*ProbeResult, error)
	Verify(ctx context.Context, path string) (*VerifyResult, error)
}

// ProbeResult is the subset of ffprobe output mp3curate uses
type ProbeResult struct {
	FormatName string            `json:"formatName" yaml:"formatName"`
	Duration   float64           `json:"duration" yaml:"duration"`
	BitRate    int64             `json:"bitRate" yaml:"bitRate"`
	Size       int64             `json:"size" yaml:"size"`
	Tags       map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	AudioCodec string            `json:"audioCodec" yaml:"audioCodec"`
	SampleRate int               `json:"sampleRate" yaml:"sampleRate"`
	Channels   int               `json:"channels" yaml:"channels"`
}

// VerifyResult is the verdict of an integrity check
type VerifyResult struct {
	OK       bool     `json:"ok" yaml:"ok"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Fixed    []string `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	ExitCode int      `json:"exitCode" yaml:"exitCode"`
	Stderr   string   `json:"stderr,omitempty" yaml:"stderr,omitempty"`
}

// Problems returns a one-line description of what made the check fail
func (v *VerifyResult) Problems() string {
	var parts []string
	parts = append(parts, v.Errors...)
	if len(v.Fixed) == 0 {
		parts = append(parts, v.Warnings...)
	}
	if v.ExitCode != 0 {
		parts = append(parts, "exit status "+strconv.Itoa(v.ExitCode))
	}
	if s := strings.TrimSpace(v.Stderr); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}

// External implements Transform with the ffprobe and mp3val binaries
type External struct {
	runner  *Runner
	ffprobe string
	mp3val  string
}

// NewExternal creates a Transform using the given binaries
func NewExternal(runner *Runner, ffprobe, mp3val string) *External {
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	if mp3val == "" {
		mp3val = "mp3val"
	}
	return &External{runner: runner, ffprobe: ffprobe, mp3val: mp3val}
}

// Probe runs a single ffprobe JSON call against path
func (e *External) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	res, err := e.runner.Run(ctx, e.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, errors.Newf(errors.ErrTransform, "ffprobe exited with status %d", res.ExitCode).
			WithDetail("path", path)
	}
	return ParseProbeJSON([]byte(res.Stdout))
}

// Verify runs mp3val against path without modifying it
func (e *External) Verify(ctx context.Context, path string) (*VerifyResult, error) {
	res, err := e.runner.Run(ctx, e.mp3val, path)
	if err != nil {
		return nil, err
	}
	v := ParseVerifyOutput(res.Stdout)
	v.ExitCode = res.ExitCode
	v.Stderr = strings.TrimSpace(res.Stderr)
	if v.ExitCode != 0 || v.Stderr != "" {
		v.OK = false
	}
	return v, nil
}

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	Tags       map[string]string `json:"tags"`
}

type ffprobeStream struct {
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// ParseProbeJSON converts raw ffprobe JSON output into a ProbeResult.
// Exported for testing without a real ffprobe binary.
func ParseProbeJSON(data []byte) (*ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrTransform, "parse ffprobe JSON")
	}

	pr := &ProbeResult{
		FormatName: raw.Format.FormatName,
		Duration:   parseFloat(raw.Format.Duration),
		BitRate:    parseInt64(raw.Format.BitRate),
		Size:       parseInt64(raw.Format.Size),
		Tags:       raw.Format.Tags,
	}
	for _, s := range raw.Streams {
		if s.CodecType == "audio" {
			pr.AudioCodec = s.CodecName
			pr.SampleRate = int(parseInt64(s.SampleRate))
			pr.Channels = s.Channels
			break
		}
	}
	return pr, nil
}

// ParseVerifyOutput scans mp3val output. The file is OK unless a line
// reports an ERROR, or a WARNING that mp3val did not mark FIXED.
func ParseVerifyOutput(stdout string) *VerifyResult {
	v := &VerifyResult{}
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "ERROR"):
			v.Errors = append(v.Errors, line)
		case strings.HasPrefix(line, "WARNING"):
			v.Warnings = append(v.Warnings, line)
		case strings.HasPrefix(line, "FIXED"):
			v.Fixed = append(v.Fixed, line)
		}
	}
	v.OK = len(v.Errors) == 0 && (len(v.Warnings) == 0 || len(v.Fixed) > 0)
	return v
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}
