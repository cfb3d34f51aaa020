// Package pyenv provisions the isolated Python runtime: a Miniforge
// bootstrap under the install target, a version-pinned sub-environment, the
// pinned dependency set and the toolbox package itself.
package pyenv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/myelo-dev/myelo-installer/internal/download"
	"github.com/myelo-dev/myelo-installer/internal/manifest"
	"github.com/myelo-dev/myelo-installer/internal/messages"
	"github.com/myelo-dev/myelo-installer/internal/probe"
	"github.com/myelo-dev/myelo-installer/internal/run"
	"github.com/myelo-dev/myelo-installer/internal/target"
)

// EnvName is the sub-environment hosting the toolbox interpreter.
const EnvName = "venv_myelo"

// launcherToken marks sub-environment executables that belong to the
// toolbox; matching binaries are copied into the public bin directory.
const launcherToken = "myelo"

// Dependency manifests, frozen (release) before loose (development).
const (
	FrozenRequirements = "requirements-freeze.txt"
	LooseRequirements  = "requirements.txt"
)

// Provisioner installs the runtime into an install target.
type Provisioner struct {
	Runner   run.Runner
	Fetcher  *download.Fetcher
	Target   string
	Scratch  string
	OS       probe.OSFamily
	Manifest manifest.Manifest
}

// hermeticEnv neutralizes the user's Python environment for every
// provisioning subprocess: no inherited module search path, no
// user-site-packages leakage.
func hermeticEnv() []string {
	return []string{"PYTHONPATH=", "PYTHONNOUSERSITE=1"}
}

func (p *Provisioner) pythonDir() string {
	return filepath.Join(p.Target, target.PythonDirName)
}

func (p *Provisioner) condaPath() string {
	return filepath.Join(p.pythonDir(), "bin", "conda")
}

// EnvBinDir is the sub-environment's private binary directory.
func (p *Provisioner) EnvBinDir() string {
	return filepath.Join(p.pythonDir(), "envs", EnvName, "bin")
}

// Provision wipes and recreates the runtime directory, runs the OS-keyed
// Miniforge bootstrap non-interactively and creates the pinned
// sub-environment.
func (p *Provisioner) Provision(ctx context.Context) error {
	pyDir := p.pythonDir()
	if err := os.RemoveAll(pyDir); err != nil {
		return fmt.Errorf(messages.PyWipeFailedFmt, pyDir, err)
	}
	if err := os.MkdirAll(pyDir, 0o755); err != nil {
		return fmt.Errorf(messages.PyWipeFailedFmt, pyDir, err)
	}

	url := p.Manifest.BootstrapURL[p.OS.String()]
	if url == "" {
		return fmt.Errorf(messages.PyBootstrapDownloadFmt, fmt.Errorf("no bootstrap URL for platform %s", p.OS))
	}
	installerPath := filepath.Join(p.Scratch, "miniforge-installer.sh")
	if err := p.Fetcher.Fetch(ctx, installerPath, url); err != nil {
		return fmt.Errorf(messages.PyBootstrapDownloadFmt, err)
	}

	err := p.Runner.Run(ctx, run.Cmd{
		Name: "bash",
		Args: []string{installerPath, "-b", "-f", "-p", pyDir},
		Env:  hermeticEnv(),
	})
	if err != nil {
		return fmt.Errorf(messages.PyBootstrapRunFmt, err)
	}

	err = p.Runner.Run(ctx, run.Cmd{
		Name: p.condaPath(),
		Args: []string{"create", "-y", "-n", EnvName, "python=" + p.Manifest.PythonVersion},
		Env:  hermeticEnv(),
	})
	if err != nil {
		return fmt.Errorf(messages.PyCreateEnvFmt, EnvName, err)
	}
	return nil
}

// condaRun executes a command inside the sub-environment from the target.
func (p *Provisioner) condaRun(ctx context.Context, args ...string) error {
	return p.Runner.Run(ctx, run.Cmd{
		Name: p.condaPath(),
		Args: append([]string{"run", "-n", EnvName}, args...),
		Dir:  p.Target,
		Env:  hermeticEnv(),
	})
}

// InstallDependencies installs the pinned dependency set: the frozen
// manifest when shipped (release installs), the loose manifest otherwise.
func (p *Provisioner) InstallDependencies(ctx context.Context) error {
	file, err := p.requirementsFile()
	if err != nil {
		return err
	}
	log.Info().Str("manifest", file).Msg("installing python dependencies")
	if err := p.condaRun(ctx, "pip", "install", "-r", file); err != nil {
		return fmt.Errorf(messages.PyInstallDepsFmt, file, err)
	}
	return nil
}

func (p *Provisioner) requirementsFile() (string, error) {
	for _, name := range []string{FrozenRequirements, LooseRequirements} {
		if info, err := os.Stat(filepath.Join(p.Target, name)); err == nil && info.Mode().IsRegular() {
			return name, nil
		}
	}
	return "", errors.New(messages.PyNoManifest)
}

// InstallToolbox installs the toolbox package in development mode from the
// target so launcher entry points resolve against the installed tree.
func (p *Provisioner) InstallToolbox(ctx context.Context) error {
	if err := p.condaRun(ctx, "pip", "install", "-e", "."); err != nil {
		return fmt.Errorf(messages.PyInstallToolboxFmt, err)
	}
	return nil
}

// CopyLaunchers copies every toolbox executable from the sub-environment's
// bin into the public bin directory. Any copy failure is fatal: a missing
// launcher means a broken install.
func (p *Provisioner) CopyLaunchers() error {
	envBin := p.EnvBinDir()
	entries, err := os.ReadDir(envBin)
	if err != nil {
		return fmt.Errorf(messages.PyLauncherScanFmt, envBin, err)
	}
	binDir := filepath.Join(p.Target, target.BinDirName)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf(messages.PyLauncherCopyFmt, binDir, err)
	}
	for _, entry := range entries {
		if !strings.Contains(entry.Name(), launcherToken) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		src := filepath.Join(envBin, entry.Name())
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf(messages.PyLauncherCopyFmt, entry.Name(), err)
		}
		dst := filepath.Join(binDir, entry.Name())
		if err := os.WriteFile(dst, data, info.Mode().Perm()|0o755); err != nil {
			return fmt.Errorf(messages.PyLauncherCopyFmt, entry.Name(), err)
		}
	}
	return nil
}

// PrependBinToPath puts the public bin directory at the front of the
// process PATH so the self-check and asset steps resolve the fresh
// launchers.
func (p *Provisioner) PrependBinToPath() {
	binDir := filepath.Join(p.Target, target.BinDirName)
	_ = os.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
