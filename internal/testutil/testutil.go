// Package testutil provides helpers shared by installer tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	WriteStubScript(t, dir, name, fmt.Sprintf("exit %d", exitCode))
}

// WriteStubScript writes an executable shell stub running the given body.
func WriteStubScript(t *testing.T, dir string, name string, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// StubPath prepends dir to PATH for the duration of the test so stubs in dir
// shadow real tools.
func StubPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// ArgLog returns a stub body that appends its invocation arguments to logFile
// and exits 0. Tests read logFile to assert on the commands that ran.
func ArgLog(logFile string) string {
	return fmt.Sprintf("echo \"$0 $*\" >> %q", logFile)
}

// WithWorkingDir runs fn with dir as the current working directory and
// restores the previous directory afterwards.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}
