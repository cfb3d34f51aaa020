package reqcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myelo-dev/myelo-installer/internal/probe"
	"github.com/myelo-dev/myelo-installer/internal/prompt"
	"github.com/myelo-dev/myelo-installer/internal/run"
)

type fakeRunner struct {
	available map[string]bool
	runErr    map[string]error
	calls     []run.Cmd
}

func (r *fakeRunner) Run(_ context.Context, cmd run.Cmd) error {
	r.calls = append(r.calls, cmd)
	return r.runErr[cmd.Name]
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if r.available[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func asker(responses ...string) *prompt.Asker {
	return &prompt.Asker{
		UI:        &prompt.ScriptUI{Responses: responses},
		LookupEnv: func(string) (string, bool) { return "", false },
	}
}

func TestEnsureDownloadToolAcceptsEitherTool(t *testing.T) {
	assert.NoError(t, EnsureDownloadTool(&fakeRunner{available: map[string]bool{"curl": true}}))
	assert.NoError(t, EnsureDownloadTool(&fakeRunner{available: map[string]bool{"wget": true}}))
}

func TestEnsureDownloadToolNamesBothWhenMissing(t *testing.T) {
	err := EnsureDownloadTool(&fakeRunner{available: map[string]bool{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "curl")
	assert.Contains(t, err.Error(), "wget")
}

func TestEnsureCompilerPassesWhenPresent(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{"cc": true}}
	assert.NoError(t, EnsureCompiler(context.Background(), runner, probe.OSLinux, asker()))
	assert.Empty(t, runner.calls)
}

func TestEnsureCompilerLinuxIsFatalWithHint(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{}}
	err := EnsureCompiler(context.Background(), runner, probe.OSLinux, asker())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package manager")
	assert.Empty(t, runner.calls)
}

func TestEnsureCompilerMacDeclinedIsFatal(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{}}
	err := EnsureCompiler(context.Background(), runner, probe.OSMac, asker("no"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiler is required")
	assert.Empty(t, runner.calls)
}

func TestEnsureCompilerMacAcceptedBootstrapsBrew(t *testing.T) {
	t.Setenv(BrewOptsEnvVar, "--force-bottle")
	runner := &fakeRunner{available: map[string]bool{}, runErr: map[string]error{}}

	require.NoError(t, EnsureCompiler(context.Background(), runner, probe.OSMac, asker("y")))

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "/bin/bash", runner.calls[0].Name)
	assert.Equal(t, "brew", runner.calls[1].Name)
	assert.Equal(t, []string{"install", "gcc", "--force-bottle"}, runner.calls[1].Args)
}

func TestEnsureCompilerMacBootstrapFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{
		available: map[string]bool{},
		runErr:    map[string]error{"/bin/bash": errors.New("exit status 1")},
	}
	err := EnsureCompiler(context.Background(), runner, probe.OSMac, asker("yes"))
	assert.ErrorContains(t, err, "Homebrew bootstrap failed")
}
