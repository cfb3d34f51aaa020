package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myelo-dev/myelo-installer/internal/run"
)

// fakeRunner simulates transport tools without spawning processes.
type fakeRunner struct {
	available map[string]bool
	onRun     func(cmd run.Cmd) error
	calls     []run.Cmd
}

func (r *fakeRunner) Run(_ context.Context, cmd run.Cmd) error {
	r.calls = append(r.calls, cmd)
	return r.onRun(cmd)
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if r.available[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func TestFetchUsesFirstTransport(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "asset.bin")
	runner := &fakeRunner{
		available: map[string]bool{"curl": true, "wget": true},
		onRun: func(cmd run.Cmd) error {
			return os.WriteFile(dest, []byte("data"), 0o644)
		},
	}
	f := &Fetcher{Runner: runner}

	require.NoError(t, f.Fetch(context.Background(), dest, "https://example.test/a"))
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "curl", runner.calls[0].Name)
}

func TestFetchFallsBackWhenPrimaryFails(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "asset.bin")
	runner := &fakeRunner{
		available: map[string]bool{"curl": true, "wget": true},
		onRun: func(cmd run.Cmd) error {
			if cmd.Name == "curl" {
				return errors.New("exit status 6")
			}
			return os.WriteFile(dest, []byte("data"), 0o644)
		},
	}
	f := &Fetcher{Runner: runner}

	require.NoError(t, f.Fetch(context.Background(), dest, "https://example.test/a"))
	require.Len(t, runner.calls, 2)
	assert.Equal(t, "wget", runner.calls[1].Name)
}

func TestFetchZeroExitWithoutFileCountsAsFailure(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "asset.bin")
	runner := &fakeRunner{
		available: map[string]bool{"curl": true},
		onRun:     func(run.Cmd) error { return nil },
	}
	f := &Fetcher{Runner: runner}

	err := f.Fetch(context.Background(), dest, "https://example.test/a")
	assert.ErrorContains(t, err, "check your internet connection")
}

func TestFetchAllTransportsFail(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "asset.bin")
	runner := &fakeRunner{
		available: map[string]bool{"curl": true, "wget": true},
		onRun:     func(run.Cmd) error { return errors.New("exit status 4") },
	}
	f := &Fetcher{Runner: runner}

	err := f.Fetch(context.Background(), dest, "https://example.test/a")
	assert.ErrorContains(t, err, "all transports failed")
	assert.Len(t, runner.calls, 2)
}

func TestFetchNoToolsAvailable(t *testing.T) {
	runner := &fakeRunner{available: map[string]bool{}}
	f := &Fetcher{Runner: runner}

	err := f.Fetch(context.Background(), "/tmp/x", "https://example.test/a")
	assert.ErrorContains(t, err, "no download transport")
}

func TestFetchStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := &fakeRunner{
		available: map[string]bool{"curl": true, "wget": true},
		onRun: func(run.Cmd) error {
			cancel()
			return errors.New("killed")
		},
	}
	f := &Fetcher{Runner: runner}

	err := f.Fetch(ctx, filepath.Join(t.TempDir(), "x"), "https://example.test/a")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, runner.calls, 1)
}
