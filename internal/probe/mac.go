package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/myelo-dev/myelo-installer/internal/messages"
)

// loginProfileCandidates returns the ordered login-profile file names the
// shell consults before the interactive rc file.
func loginProfileCandidates(rcName string) []string {
	switch rcName {
	case ".zshrc":
		return []string{".zprofile"}
	case ".bashrc":
		return []string{".bash_profile", ".bash_login", ".profile"}
	default:
		return nil
	}
}

// EnsureMacDefaults applies the macOS-only environment fixes: UTF-8 locale
// defaults when none are set, and an idempotent guarantee that the login
// profile sources the interactive rc file (macOS terminals start login
// shells, which skip .bashrc/.zshrc otherwise).
func EnsureMacDefaults(env Env, home string) error {
	if env.OS != OSMac {
		return nil
	}
	if os.Getenv("LANG") == "" && os.Getenv("LC_ALL") == "" {
		_ = os.Setenv("LANG", "en_US.UTF-8")
		_ = os.Setenv("LC_ALL", "en_US.UTF-8")
		log.Info().Msg(messages.ProbeLocaleDefaultsApplied)
	}
	if env.Shell != ShellPosix {
		return nil
	}
	if err := ensureProfileSourcesRc(home, env.RcName); err != nil {
		return fmt.Errorf(messages.ProbeProfileSourcesRcFmt, env.RcName, err)
	}
	return nil
}

// ensureProfileSourcesRc appends a sourcing block for rcName to the first
// existing login-profile candidate, unless any candidate already sources it.
// When no candidate exists the first one is created.
func ensureProfileSourcesRc(home string, rcName string) error {
	candidates := loginProfileCandidates(rcName)
	if len(candidates) == 0 {
		return nil
	}

	var target string
	for _, name := range candidates {
		path := filepath.Join(home, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		if sourcesRc(string(data), rcName) {
			return nil
		}
		if target == "" {
			target = path
		}
	}
	if target == "" {
		target = filepath.Join(home, candidates[0])
	}

	f, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	block := fmt.Sprintf("\nif [ -f ~/%s ]; then\n    . ~/%s\nfi\n", rcName, rcName)
	_, err = f.WriteString(block)
	return err
}

// sourcesRc reports whether any uncommented line in content sources rcName.
func sourcesRc(content string, rcName string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if !strings.Contains(trimmed, rcName) {
			continue
		}
		if strings.HasPrefix(trimmed, "source ") || strings.HasPrefix(trimmed, ". ") || strings.Contains(trimmed, "&& . ") {
			return true
		}
	}
	return false
}
