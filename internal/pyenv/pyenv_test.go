package pyenv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myelo-dev/myelo-installer/internal/download"
	"github.com/myelo-dev/myelo-installer/internal/manifest"
	"github.com/myelo-dev/myelo-installer/internal/probe"
	"github.com/myelo-dev/myelo-installer/internal/run"
)

type fakeRunner struct {
	calls []run.Cmd
	onRun func(cmd run.Cmd) error
}

func (r *fakeRunner) Run(_ context.Context, cmd run.Cmd) error {
	r.calls = append(r.calls, cmd)
	if r.onRun != nil {
		return r.onRun(cmd)
	}
	return nil
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if name == "curl" {
		return "/usr/bin/curl", nil
	}
	return "", errors.New("not found")
}

func newProvisioner(t *testing.T, runner *fakeRunner) *Provisioner {
	t.Helper()
	return &Provisioner{
		Runner:   runner,
		Fetcher:  &download.Fetcher{Runner: runner},
		Target:   t.TempDir(),
		Scratch:  t.TempDir(),
		OS:       probe.OSLinux,
		Manifest: manifest.Default(),
	}
}

func TestProvisionSequencesBootstrapAndEnvCreate(t *testing.T) {
	runner := &fakeRunner{}
	var p *Provisioner
	runner.onRun = func(cmd run.Cmd) error {
		if cmd.Name == "curl" {
			// The fetch transport writes the bootstrap installer.
			return os.WriteFile(filepath.Join(p.Scratch, "miniforge-installer.sh"), []byte("#!/bin/sh"), 0o755)
		}
		return nil
	}
	p = newProvisioner(t, runner)

	require.NoError(t, p.Provision(context.Background()))

	require.Len(t, runner.calls, 3)
	assert.Equal(t, "curl", runner.calls[0].Name)

	bootstrap := runner.calls[1]
	assert.Equal(t, "bash", bootstrap.Name)
	assert.Contains(t, bootstrap.Args, "-b")
	assert.Contains(t, bootstrap.Args, filepath.Join(p.Target, "python"))
	assert.Contains(t, bootstrap.Env, "PYTHONPATH=")
	assert.Contains(t, bootstrap.Env, "PYTHONNOUSERSITE=1")

	create := runner.calls[2]
	assert.Equal(t, filepath.Join(p.Target, "python", "bin", "conda"), create.Name)
	assert.Equal(t, []string{"create", "-y", "-n", EnvName, "python=" + manifest.Default().PythonVersion}, create.Args)
}

func TestProvisionWipesExistingRuntimeDir(t *testing.T) {
	runner := &fakeRunner{}
	var p *Provisioner
	runner.onRun = func(cmd run.Cmd) error {
		if cmd.Name == "curl" {
			return os.WriteFile(filepath.Join(p.Scratch, "miniforge-installer.sh"), nil, 0o755)
		}
		return nil
	}
	p = newProvisioner(t, runner)
	stale := filepath.Join(p.Target, "python", "stale.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	require.NoError(t, p.Provision(context.Background()))

	assert.NoFileExists(t, stale)
}

func TestProvisionBootstrapFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{}
	var p *Provisioner
	runner.onRun = func(cmd run.Cmd) error {
		if cmd.Name == "curl" {
			return os.WriteFile(filepath.Join(p.Scratch, "miniforge-installer.sh"), nil, 0o755)
		}
		if cmd.Name == "bash" {
			return errors.New("exit status 1")
		}
		return nil
	}
	p = newProvisioner(t, runner)

	err := p.Provision(context.Background())
	assert.ErrorContains(t, err, "bootstrap installer")
}

func TestInstallDependenciesPrefersFrozenManifest(t *testing.T) {
	runner := &fakeRunner{}
	p := newProvisioner(t, runner)
	require.NoError(t, os.WriteFile(filepath.Join(p.Target, FrozenRequirements), []byte("numpy==1.26.0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(p.Target, LooseRequirements), []byte("numpy\n"), 0o644))

	require.NoError(t, p.InstallDependencies(context.Background()))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"run", "-n", EnvName, "pip", "install", "-r", FrozenRequirements}, runner.calls[0].Args)
	assert.Equal(t, p.Target, runner.calls[0].Dir)
}

func TestInstallDependenciesFallsBackToLooseManifest(t *testing.T) {
	runner := &fakeRunner{}
	p := newProvisioner(t, runner)
	require.NoError(t, os.WriteFile(filepath.Join(p.Target, LooseRequirements), []byte("numpy\n"), 0o644))

	require.NoError(t, p.InstallDependencies(context.Background()))

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0].Args, LooseRequirements)
}

func TestInstallDependenciesNoManifestIsFatal(t *testing.T) {
	p := newProvisioner(t, &fakeRunner{})

	err := p.InstallDependencies(context.Background())
	assert.ErrorContains(t, err, "requirements")
}

func TestInstallDependenciesSurfacesPipFailure(t *testing.T) {
	runner := &fakeRunner{onRun: func(run.Cmd) error { return errors.New("exit status 2") }}
	p := newProvisioner(t, runner)
	require.NoError(t, os.WriteFile(filepath.Join(p.Target, LooseRequirements), []byte("numpy\n"), 0o644))

	err := p.InstallDependencies(context.Background())
	assert.ErrorContains(t, err, "exit status 2")
}

func TestInstallToolboxRunsEditableInstall(t *testing.T) {
	runner := &fakeRunner{}
	p := newProvisioner(t, runner)

	require.NoError(t, p.InstallToolbox(context.Background()))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"run", "-n", EnvName, "pip", "install", "-e", "."}, runner.calls[0].Args)
}

func TestCopyLaunchersCopiesToolboxExecutablesOnly(t *testing.T) {
	p := newProvisioner(t, &fakeRunner{})
	envBin := p.EnvBinDir()
	require.NoError(t, os.MkdirAll(envBin, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(envBin, "myelo_seg"), []byte("#!x"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(envBin, "myelo_check_deps"), []byte("#!x"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(envBin, "pip"), []byte("#!x"), 0o755))

	require.NoError(t, p.CopyLaunchers())

	binDir := filepath.Join(p.Target, "bin")
	assert.FileExists(t, filepath.Join(binDir, "myelo_seg"))
	assert.FileExists(t, filepath.Join(binDir, "myelo_check_deps"))
	assert.NoFileExists(t, filepath.Join(binDir, "pip"))

	info, err := os.Stat(filepath.Join(binDir, "myelo_seg"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o111)
}

func TestCopyLaunchersMissingEnvBinIsFatal(t *testing.T) {
	p := newProvisioner(t, &fakeRunner{})

	err := p.CopyLaunchers()
	assert.ErrorContains(t, err, "scan environment binaries")
}

func TestPrependBinToPath(t *testing.T) {
	p := newProvisioner(t, &fakeRunner{})
	t.Setenv("PATH", "/usr/bin")

	p.PrependBinToPath()

	assert.True(t, strings.HasPrefix(os.Getenv("PATH"), filepath.Join(p.Target, "bin")))
}
