// Package runner executes external commands with a bounded wall-clock
// timeout and captures their output for audit logging.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/edvin/edgeid/internal/core"
	"github.com/edvin/edgeid/internal/model"
)

// DefaultTimeout is a reasonable bound for callers without a stricter one.
const DefaultTimeout = 120 * time.Second

// ExecRunner runs commands through os/exec. It satisfies core.CommandRunner.
type ExecRunner struct{}

func New() *ExecRunner {
	return &ExecRunner{}
}

// Run executes argv with the given timeout. The returned error is non-nil
// only when the command could not run at all or exceeded its timeout;
// command failure is reported through the result's return code.
func (ExecRunner) Run(ctx context.Context, argv []string, timeout time.Duration) (model.ExecutionResult, error) {
	if len(argv) == 0 {
		return model.ExecutionResult{}, fmt.Errorf("%w: empty command", core.ErrValidation)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := model.ExecutionResult{
		Command: Quote(argv),
		Stdout:  strings.TrimSpace(stdout.String()),
		Stderr:  strings.TrimSpace(stderr.String()),
	}

	if runCtx.Err() == context.DeadlineExceeded {
		return result, fmt.Errorf("%w: %s after %s", core.ErrProcessTimeout, argv[0], timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ReturnCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("run %s: %w", argv[0], err)
	}

	return result, nil
}

// RunShell passes a raw command line to the shell verbatim.
func (r ExecRunner) RunShell(ctx context.Context, raw string, timeout time.Duration) (model.ExecutionResult, error) {
	return r.Run(ctx, []string{"/bin/sh", "-c", raw}, timeout)
}

var safeArg = regexp.MustCompile(`^[a-zA-Z0-9_@%+=:,./-]+$`)

// Quote renders argv as a single shell-safe string for display and audit.
func Quote(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		if arg != "" && safeArg.MatchString(arg) {
			quoted = append(quoted, arg)
			continue
		}
		quoted = append(quoted, "'"+strings.ReplaceAll(arg, "'", `'\''`)+"'")
	}
	return strings.Join(quoted, " ")
}
