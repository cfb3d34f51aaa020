package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/myelo-dev/myelo-installer/internal/messages"
)

// ErrUnsupportedShell marks shell classification failures so the caller can
// list the user's dotfiles as debugging help before bailing out.
var ErrUnsupportedShell = errors.New(messages.ProbeUnsupportedShell)

// Seams for tests.
var (
	goosFunc       = func() string { return runtime.GOOS }
	macVersionFunc = readMacProductVersion
)

// Detect probes the OS and login shell. minMacMajor is the lowest supported
// macOS major version; older systems are rejected before any filesystem
// mutation happens.
func Detect(ctx context.Context, minMacMajor int) (Env, error) {
	env := Env{}

	switch goos := goosFunc(); goos {
	case "linux":
		env.OS = OSLinux
	case "darwin":
		env.OS = OSMac
		version, err := macVersionFunc(ctx)
		if err != nil {
			return Env{}, fmt.Errorf(messages.ProbeMacVersionUnreadableFmt, err)
		}
		major, ok := majorVersion(version)
		if !ok {
			return Env{}, fmt.Errorf(messages.ProbeMacVersionUnparsableFmt, version)
		}
		if major < minMacMajor {
			return Env{}, fmt.Errorf(messages.ProbeMacVersionTooOldFmt, version, minMacMajor)
		}
		env.OSVersion = version
	default:
		return Env{}, fmt.Errorf(messages.ProbeUnsupportedOSFmt, goos)
	}

	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return Env{}, errors.New(messages.ProbeShellUnsetErr)
	}
	family, rcName, err := classifyShell(shellPath)
	if err != nil {
		return Env{}, err
	}
	env.Shell = family
	env.ShellPath = shellPath
	env.RcName = rcName
	return env, nil
}

// classifyShell maps a shell binary path to its dialect family and startup
// file. This is the single exhaustive switch over shell identity.
func classifyShell(shellPath string) (ShellFamily, string, error) {
	switch strings.ToLower(filepath.Base(shellPath)) {
	case "bash", "sh":
		return ShellPosix, ".bashrc", nil
	case "zsh":
		return ShellPosix, ".zshrc", nil
	case "csh", "tcsh":
		return ShellCsh, ".cshrc", nil
	default:
		return 0, "", fmt.Errorf(messages.ProbeUnsupportedShellFmt, ErrUnsupportedShell, shellPath)
	}
}

// Dotfiles lists the dot-prefixed entries in home, to help users debug an
// unrecognized shell before the installer bails out.
func Dotfiles(home string) []string {
	entries, err := os.ReadDir(home)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	return names
}

// readMacProductVersion returns the macOS product version, preferring host
// introspection and falling back to sw_vers.
func readMacProductVersion(ctx context.Context) (string, error) {
	if _, _, v, err := host.PlatformInformationWithContext(ctx); err == nil && v != "" {
		return v, nil
	}
	out, err := exec.CommandContext(ctx, "sw_vers", "-productVersion").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func majorVersion(version string) (int, bool) {
	head, _, _ := strings.Cut(version, ".")
	major, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return major, true
}
