// Package reqcheck validates the host prerequisites: a download tool and a
// C compiler. The compiler check offers an interactive Homebrew remediation
// on macOS; everywhere else a missing prerequisite is fatal with manual
// install instructions.
package reqcheck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/myelo-dev/myelo-installer/internal/messages"
	"github.com/myelo-dev/myelo-installer/internal/probe"
	"github.com/myelo-dev/myelo-installer/internal/prompt"
	"github.com/myelo-dev/myelo-installer/internal/run"
)

// BrewOptsEnvVar appends extra options to the brew install invocation.
const BrewOptsEnvVar = "MYELO_BREW_INSTALL_OPTS"

const brewBootstrapScript = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// EnsureDownloadTool verifies that curl or wget is on PATH.
func EnsureDownloadTool(runner run.Runner) error {
	for _, tool := range []string{"curl", "wget"} {
		if path, err := runner.LookPath(tool); err == nil {
			log.Debug().Str("tool", tool).Str("path", path).Msg("download tool found")
			return nil
		}
	}
	return errors.New(messages.ReqDownloadToolsMissing)
}

// EnsureCompiler verifies a C compiler exists. On macOS a missing compiler
// triggers a yes/no offer to bootstrap Homebrew and install gcc; declining,
// or any other platform, is fatal with OS-specific instructions.
func EnsureCompiler(ctx context.Context, runner run.Runner, osFamily probe.OSFamily, asker *prompt.Asker) error {
	for _, compiler := range []string{"gcc", "cc"} {
		if _, err := runner.LookPath(compiler); err == nil {
			return nil
		}
	}
	if osFamily != probe.OSMac {
		return fmt.Errorf("%s\n%s", messages.ReqCompilerMissing, messages.ReqCompilerLinuxHint)
	}

	install, err := asker.YesNo(messages.ReqCompilerMacPrompt, "")
	if err != nil {
		return err
	}
	if !install {
		return errors.New(messages.ReqCompilerMacDeclined)
	}

	bootstrap := fmt.Sprintf("$(curl -fsSL %s)", brewBootstrapScript)
	if err := runner.Run(ctx, run.Cmd{Name: "/bin/bash", Args: []string{"-c", bootstrap}}); err != nil {
		return fmt.Errorf(messages.ReqBrewBootstrapFailed, err)
	}

	args := append([]string{"install", "gcc"}, brewOpts()...)
	if err := runner.Run(ctx, run.Cmd{Name: "brew", Args: args}); err != nil {
		return fmt.Errorf(messages.ReqBrewInstallGccFailed, err)
	}
	return nil
}

func brewOpts() []string {
	return strings.Fields(os.Getenv(BrewOptsEnvVar))
}
