// Package provision runs the package-manager and git commands that turn a
// freshly written directory into a working repository.
package provision

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is one external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  map[string]string // overlay on the inherited environment
}

// String renders the command line, e.g. "npm run build".
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Outcome is what the process reported on exit.
type Outcome struct {
	ExitCode int
}

// Runner starts a command and waits for it to exit.
type Runner interface {
	// Run returns the exit code of a process that ran, even a non-zero one.
	// The error is reserved for processes that could not run at all (binary
	// not found, context canceled).
	Run(ctx context.Context, cmd Command) (Outcome, error)
}

// ExecRunner runs commands with os/exec, passing their output through.
type ExecRunner struct {
	// Stdout and Stderr default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd, streaming its output and inheriting the environment.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Outcome, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = c.Environ()
		for k, v := range cmd.Env {
			c.Env = append(c.Env, k+"="+v)
		}
	}

	c.Stdout = r.Stdout
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	c.Stderr = r.Stderr
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	err := c.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return Outcome{ExitCode: exitErr.ExitCode()}, nil
		}
		return Outcome{ExitCode: -1}, err
	}
	return Outcome{}, nil
}
