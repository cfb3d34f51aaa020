// Package shellrc edits the user's shell startup file: it comments out
// legacy activation lines left by older installers and, with consent,
// appends a timestamped block wiring the toolbox into the environment.
//
// The appended block is intentionally not deduplicated: re-running the
// installer with consent appends a second block. Only the legacy cleanup is
// idempotent.
package shellrc

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aymanbagabas/go-udiff"

	"github.com/myelo-dev/myelo-installer/internal/fsutil"
	"github.com/myelo-dev/myelo-installer/internal/messages"
	"github.com/myelo-dev/myelo-installer/internal/probe"
	"github.com/myelo-dev/myelo-installer/internal/target"
)

// legacyToken identifies environment-activation lines written by pre-6.0
// installers; they are commented out, never deleted.
const legacyToken = "MYELO_ENV"

// MPLBackendEnvVar selects the headless plotting backend.
const MPLBackendEnvVar = "MPLBACKEND"

// ExportLine renders one environment export in the shell's dialect.
func ExportLine(family probe.ShellFamily, key string, value string) string {
	if family == probe.ShellCsh {
		return fmt.Sprintf("setenv %s \"%s\"", key, value)
	}
	return fmt.Sprintf("export %s=\"%s\"", key, value)
}

// Block renders the timestamped integration block for an install at dir.
func Block(family probe.ShellFamily, dir string, now time.Time) string {
	lines := []string{
		"",
		fmt.Sprintf("# MYELO TOOLBOX (added on %s)", now.Format("2006-01-02 15:04:05")),
		ExportLine(family, "MYELO_DIR", dir),
		ExportLine(family, "PATH", dir+"/"+target.BinDirName+":$PATH"),
		ExportLine(family, MPLBackendEnvVar, "Agg"),
		"",
	}
	return strings.Join(lines, "\n")
}

// CommentOutLegacy comments out every uncommented line mentioning the
// legacy activation token. The rewrite is atomic and idempotent: a second
// run leaves the file unchanged. A missing rc file is not an error.
func CommentOutLegacy(rcPath string) (bool, error) {
	data, err := os.ReadFile(rcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf(messages.ShellRcReadFailedFmt, rcPath, err)
	}
	lines := strings.Split(string(data), "\n")
	changed := false
	for idx, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, legacyToken) && !strings.HasPrefix(trimmed, "#") {
			lines[idx] = "# " + line
			changed = true
		}
	}
	if !changed {
		return false, nil
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(rcPath); err == nil {
		perm = info.Mode().Perm()
	}
	if err := fsutil.WriteFileAtomic(rcPath, []byte(strings.Join(lines, "\n")), perm); err != nil {
		return false, fmt.Errorf(messages.ShellRcWriteFailedFmt, rcPath, err)
	}
	return true, nil
}

// AppendBlock appends block to the rc file, creating it if missing.
func AppendBlock(rcPath string, block string) error {
	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf(messages.ShellRcWriteFailedFmt, rcPath, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf(messages.ShellRcWriteFailedFmt, rcPath, err)
	}
	return nil
}

// Preview renders a unified diff of the pending append so the user sees
// exactly what consent would write.
func Preview(rcPath string, block string) (string, error) {
	current := ""
	data, err := os.ReadFile(rcPath)
	if err == nil {
		current = string(data)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf(messages.ShellRcReadFailedFmt, rcPath, err)
	}
	return udiff.Unified(rcPath, rcPath+" (proposed)", current, current+block), nil
}
