// Package tool runs the external image generator and flashing tool.
package tool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// Command is a fully resolved external process invocation.
type Command struct {
	// Name is a short label for diagnostics ("build", "flash", "blufi").
	Name string
	// Argv is the program followed by its arguments.
	Argv []string
}

// String returns the command line quoted for a POSIX shell.
func (c Command) String() string {
	return shellquote.Join(c.Argv...)
}

// Runner executes external commands, blocking until they exit.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Command Command
	Code    int
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// Unwrap returns the underlying *exec.ExitError.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// ExecRunner runs commands with os/exec, streaming their output to the
// process's own stdout and stderr.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, cmd Command) error {
	if len(cmd.Argv) == 0 {
		return fmt.Errorf("%s: empty command", cmd.Name)
	}
	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	err := c.Run()
	if err == nil {
		return nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Command: cmd, Code: ee.ExitCode(), Cause: err}
	}
	return fmt.Errorf("run %s: %w", cmd.Argv[0], err)
}

// DryRunner records commands without running them.
type DryRunner struct {
	Commands []Command
}

// Run implements Runner.
func (d *DryRunner) Run(_ context.Context, cmd Command) error {
	d.Commands = append(d.Commands, cmd)
	return nil
}
