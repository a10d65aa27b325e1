package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/Ning0612/apkrepack/internal/domain"
	"github.com/Ning0612/apkrepack/internal/logger"
)

// Command describes a single external tool invocation
type Command struct {
	// Tool is the logical name used in diagnostics (apktool, zipalign, …)
	Tool string

	// Bin is the binary path or PATH-resolvable name
	Bin string

	// Args are the command arguments
	Args []string

	// Dir is the working directory; empty means inherit
	Dir string
}

// Runner executes external tool commands
// "binary missing" and "binary ran but failed" are reported as the
// distinct errors domain.ErrToolNotFound and domain.ErrToolFailed,
// never collapsed into one another
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a tool that ran and exited nonzero
type ExitError struct {
	Tool   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Tool, e.Code, msg)
}

func (e *ExitError) Unwrap() error {
	return domain.ErrToolFailed
}

// ExecRunner runs commands through os/exec
type ExecRunner struct{}

// NewExecRunner creates the default runner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements the Runner interface
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	log := logger.Get()

	execCmd := exec.CommandContext(ctx, cmd.Bin, cmd.Args...)
	execCmd.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	// The sanitizer masks password flags before this reaches any sink
	log.Debug("running tool",
		"tool", cmd.Tool,
		"cmd", cmd.Bin+" "+strings.Join(cmd.Args, " "),
	)

	err := execCmd.Run()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Missing or unexecutable binary: the caller may try a fallback tool
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s (%s)", domain.ErrToolNotFound, cmd.Tool, cmd.Bin)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Error("tool failed",
			"tool", cmd.Tool,
			"exit_code", exitErr.ExitCode(),
			"stderr", stderr.String(),
		)
		return &ExitError{
			Tool:   cmd.Tool,
			Code:   exitErr.ExitCode(),
			Stderr: stderr.String(),
		}
	}

	return fmt.Errorf("%s: %w", cmd.Tool, err)
}

// jarCommand rewrites a .jar tool path into a java -jar invocation
func jarCommand(java, path string, args ...string) (string, []string) {
	if strings.HasSuffix(path, ".jar") {
		return java, append([]string{"-jar", path}, args...)
	}
	return path, args
}
