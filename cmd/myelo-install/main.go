package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/myelo-dev/myelo-installer/internal/messages"
	"github.com/myelo-dev/myelo-installer/internal/prompt"
)

var executeFunc = execute

// usageExitCode is returned for help requests and flag errors so wrapper
// scripts can tell "user asked for usage" apart from a failed install.
const usageExitCode = 99

var failColor = color.New(color.FgRed, color.Bold)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError reports an exit code without emitting error output.
type SilentExitError struct {
	Code int
}

func (e SilentExitError) Error() string {
	return fmt.Sprintf(messages.UsageExitRequestedFmt, e.Code)
}

// execute runs the installer command with the provided args and writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs(nil)
	}

	helpRequested := false
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, helpArgs []string) {
		helpRequested = true
		defaultHelp(c, helpArgs)
	})
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		_, _ = fmt.Fprintln(stderr, err)
		_ = c.Usage()
		return &SilentExitError{Code: usageExitCode}
	})

	if err := cmd.Execute(); err != nil {
		return err
	}
	if helpRequested {
		return &SilentExitError{Code: usageExitCode}
	}
	return nil
}

// runMain executes the CLI and maps errors to exit codes: 0 on success,
// usageExitCode for usage requests, 1 for everything else.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	err := executeFunc(args, stdout, stderr)
	if err == nil {
		return
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		exit(silent.Code)
		return
	}
	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintln(stderr, messages.FinalInterrupted)
		exit(1)
		return
	}
	_, _ = failColor.Fprintf(stderr, messages.FinalFailureFmt+"\n", err)
	_, _ = fmt.Fprintln(stderr, messages.FinalFailureSupport)
	exit(1)
}
