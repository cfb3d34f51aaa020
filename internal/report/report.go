// Package report records the user's crash-reporting decision. The file is
// written whether the user consents or declines, so the toolbox never asks
// again.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/myelo-dev/myelo-installer/internal/fsutil"
	"github.com/myelo-dev/myelo-installer/internal/messages"
)

// ConsentEnvVar pre-answers the consent prompt for unattended installs.
const ConsentEnvVar = "MYELO_CRASH_CONSENT"

// Config is the generated crash-reporting configuration.
type Config struct {
	// Enabled reflects the user's consent decision.
	Enabled bool `toml:"enabled"`
	// DSN is the anonymized crash-reporting endpoint.
	DSN string `toml:"dsn"`
}

// Path returns the config file location under an install target.
func Path(targetDir string) string {
	return filepath.Join(targetDir, "myelo", "config", "sentry.toml")
}

// Write records the consent decision at the target. The DSN is only
// recorded when reporting is enabled.
func Write(targetDir string, enabled bool, dsn string) error {
	cfg := Config{Enabled: enabled}
	if enabled {
		cfg.DSN = dsn
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf(messages.ReportWriteFailedFmt, err)
	}
	path := Path(targetDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.ReportWriteFailedFmt, err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.ReportWriteFailedFmt, err)
	}
	return nil
}
