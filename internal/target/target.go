// Package target resolves and materializes the installation directory: the
// confirm/override selection loop, the source-tree copy and the defensive
// checks that keep the installer from touching the wrong directory.
package target

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"

	"github.com/myelo-dev/myelo-installer/internal/fsutil"
	"github.com/myelo-dev/myelo-installer/internal/messages"
	"github.com/myelo-dev/myelo-installer/internal/prompt"
	"github.com/myelo-dev/myelo-installer/internal/version"
)

// Subdirectory names inside the install target.
const (
	BinDirName    = "bin"
	DataDirName   = "data"
	PythonDirName = "python"
)

// InstallTypeEnvVar forces the install source type ("in-place" or
// "package") instead of inferring it from the source tree.
const InstallTypeEnvVar = "MYELO_INSTALL_TYPE"

// launcherPrefixes are the fixed launcher name prefixes purged from the
// target bin directory before reinstalling (mld_ covers pre-rename
// releases).
var launcherPrefixes = []string{"myelo_", "mld_"}

// DefaultDir picks the default install directory: the source tree itself
// for in-place installs (git checkouts and forced in-place), otherwise a
// versioned directory under home.
func DefaultDir(sourceDir string, home string, toolboxVersion string) string {
	packaged := filepath.Join(home, "myelo_"+toolboxVersion)
	switch os.Getenv(InstallTypeEnvVar) {
	case "in-place":
		return sourceDir
	case "package":
		return packaged
	}
	if info, err := os.Stat(filepath.Join(sourceDir, ".git")); err == nil && info.IsDir() {
		return sourceDir
	}
	return packaged
}

// Selector runs the interactive directory-selection loop.
type Selector struct {
	Asker *prompt.Asker
	Home  string
	// Out receives guard warnings; defaults to stderr.
	Out io.Writer
}

func (s *Selector) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stderr
}

// Select presents defaultDir and loops until the user accepts a valid
// path: declined defaults fall through to a free-text path prompt, `~` is
// expanded, trailing separators are stripped, and the filesystem root and
// the home directory itself are always rejected.
func (s *Selector) Select(defaultDir string) (string, error) {
	current := defaultDir
	for {
		accept, err := s.Asker.YesNo(fmt.Sprintf(messages.TargetDefaultPromptFmt, current), "")
		if err != nil {
			return "", err
		}
		if accept {
			if reason := s.rejectReason(current); reason != "" {
				_, _ = fmt.Fprintln(s.out(), reason)
			} else {
				if info, err := os.Stat(current); err == nil && info.IsDir() {
					_, _ = fmt.Fprintf(s.out(), messages.TargetReuseWarningFmt+"\n", current)
				}
				return current, nil
			}
		}
		entered, err := s.Asker.FreeText(messages.TargetPathPrompt, false)
		if err != nil {
			return "", err
		}
		expanded, err := homedir.Expand(entered)
		if err != nil {
			_, _ = fmt.Fprintln(s.out(), err)
			continue
		}
		expanded = strings.TrimSuffix(expanded, string(os.PathSeparator))
		if expanded == "" {
			expanded = string(os.PathSeparator)
		}
		if reason := s.rejectReason(expanded); reason != "" {
			_, _ = fmt.Fprintln(s.out(), reason)
			continue
		}
		current = expanded
	}
}

// rejectReason returns a non-empty warning when path must not be used as an
// install target.
func (s *Selector) rejectReason(path string) string {
	cleaned := filepath.Clean(path)
	if cleaned == string(os.PathSeparator) {
		return messages.TargetRefuseRoot
	}
	if s.Home != "" && cleaned == filepath.Clean(s.Home) {
		return messages.TargetRefuseHome
	}
	return ""
}

// Materialize creates the target directory and verifies it is writable.
func Materialize(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.TargetCreateFailedFmt, dir, err)
	}
	probe, err := os.CreateTemp(dir, ".write-probe-")
	if err != nil {
		return fmt.Errorf(messages.TargetNotWritableFmt, dir, err)
	}
	_ = probe.Close()
	_ = os.Remove(probe.Name())
	return nil
}

// CopySource copies the full source tree into dir with a progress bar. When
// dir is the source tree itself (in-place install) no copy happens and the
// source stays the install target.
func CopySource(sourceDir string, dir string, showProgress bool) error {
	if samePath(sourceDir, dir) {
		pterm.Info.Println(messages.TargetInPlaceNotice)
		return nil
	}
	total, err := fsutil.CountFiles(sourceDir)
	if err != nil {
		return fmt.Errorf(messages.TargetCopyFailedFmt, dir, err)
	}
	var bar *pterm.ProgressbarPrinter
	if showProgress {
		bar, _ = pterm.DefaultProgressbar.WithTotal(total).
			WithTitle(fmt.Sprintf(messages.TargetCopyHeaderFmt, dir)).Start()
	}
	onFile := func(string) {
		if bar != nil {
			bar.Increment()
		}
	}
	if err := fsutil.CopyTree(sourceDir, dir, onFile); err != nil {
		if bar != nil {
			_, _ = bar.Stop()
		}
		return fmt.Errorf(messages.TargetCopyFailedFmt, dir, err)
	}
	if bar != nil {
		_, _ = bar.Stop()
	}
	return nil
}

func samePath(a string, b string) bool {
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		ra = filepath.Clean(a)
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		rb = filepath.Clean(b)
	}
	return ra == rb
}

// PurgeLaunchers removes stale toolbox launchers from the target bin
// directory so a reinstall never leaves links to removed commands.
func PurgeLaunchers(dir string) error {
	binDir := filepath.Join(dir, BinDirName)
	entries, err := os.ReadDir(binDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		for _, prefix := range launcherPrefixes {
			if strings.HasPrefix(entry.Name(), prefix) {
				path := filepath.Join(binDir, entry.Name())
				if err := os.Remove(path); err != nil {
					return fmt.Errorf(messages.TargetPurgeLauncherFmt, path, err)
				}
				log.Debug().Str("launcher", entry.Name()).Msg("removed stale launcher")
				break
			}
		}
	}
	return nil
}

// Enter changes into dir and verifies the version marker is present there.
// The marker check guards every later destructive step (runtime wipe, data
// wipe) against running in the wrong directory.
func Enter(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf(messages.TargetChdirFailedFmt, dir, err)
	}
	if !version.Exists(dir) {
		return fmt.Errorf(messages.TargetMarkerMissingFmt, version.MarkerFile, dir)
	}
	return nil
}
