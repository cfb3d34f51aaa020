// Package run provides the subprocess seam used by every installer step that
// shells out (download tools, the Python bootstrap, conda, pip, toolbox
// commands). Tests substitute a fake Runner or point PATH at shell stubs.
package run

import (
	"context"
	"os"
	"os/exec"

	"github.com/myelo-dev/myelo-installer/internal/logging"
)

// Cmd describes one external command invocation.
type Cmd struct {
	// Name is the executable name or path.
	Name string
	// Args are the command arguments.
	Args []string
	// Dir is the working directory; empty means inherit.
	Dir string
	// Env entries (KEY=VALUE) appended to the inherited environment.
	Env []string
	// Quiet suppresses stdout/stderr passthrough.
	Quiet bool
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) error
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec, inheriting the installer's
// stdio so subprocess output (pip, conda) reaches the user.
type ExecRunner struct{}

// Run executes cmd and blocks until it finishes.
func (ExecRunner) Run(ctx context.Context, cmd Cmd) error {
	logger := logging.Component("exec")
	logger.Debug().
		Str("cmd", cmd.Name).Strs("args", cmd.Args).Str("dir", cmd.Dir).Msg("exec")
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	if !cmd.Quiet {
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
	}
	c.Stdin = os.Stdin
	return c.Run()
}

// LookPath reports the path of name on PATH.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
