package transform

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"time"

	"github.com/mp3curate/mp3curate/pkg/errors"
	"github.com/mp3curate/mp3curate/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single external command
const DefaultTimeout = 120 * time.Second

// Result is the captured output of one command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes external commands with a timeout
type Runner struct {
	timeout time.Duration
	logger  zerolog.Logger
}

// NewRunner creates a runner; a non-positive timeout means DefaultTimeout
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{timeout: timeout, logger: logging.GetLogger("transform")}
}

// Run executes name with args. A non-zero exit status is not an error; it
// is reported in Result.ExitCode. When the timeout expires the process is
// killed and a TRANSFORM_TIMEOUT error returned.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)
	// Do not wait forever on pipes held open by orphaned children
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	r.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Dur("duration", result.Duration).
		Msg("External command finished")

	if stderrors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return result, errors.Newf(errors.ErrTransformTimeout,
			"%s timed out after %s", name, r.timeout).
			WithDetail("command", strings.Join(append([]string{name}, args...), " "))
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, errors.Wrapf(err, errors.ErrTransform, "cannot run %s", name)
	}
	return result, nil
}
