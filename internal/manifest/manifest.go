// Package manifest loads install.toml, the optional tuning file shipped at
// the root of the toolbox source tree. Missing file or missing keys fall
// back to compiled defaults so a bare checkout still installs.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the manifest file name at the source tree root.
const FileName = "install.toml"

// Manifest holds the installer's tunable settings.
type Manifest struct {
	// MinMacOSMajor is the lowest supported macOS major version.
	MinMacOSMajor int `toml:"min_macos_major"`
	// PythonVersion pins the sub-environment interpreter (torch
	// compatibility on macOS arm64).
	PythonVersion string `toml:"python_version"`
	// BootstrapURL maps the OS key (linux, osx) to the Miniforge
	// bootstrap installer URL.
	BootstrapURL map[string]string `toml:"bootstrap_url"`
	// DataBundles is the ordered list of data bundle identifiers.
	DataBundles []string `toml:"data_bundles"`
	// CrashReportDSN is the anonymized crash-reporting endpoint recorded
	// on consent.
	CrashReportDSN string `toml:"crash_report_dsn"`
}

// Default returns the compiled-in manifest values.
func Default() Manifest {
	return Manifest{
		MinMacOSMajor: 13,
		PythonVersion: "3.10",
		BootstrapURL: map[string]string{
			"linux": "https://github.com/conda-forge/miniforge/releases/latest/download/Miniforge3-Linux-x86_64.sh",
			"osx":   "https://github.com/conda-forge/miniforge/releases/latest/download/Miniforge3-MacOSX-arm64.sh",
		},
		DataBundles:    []string{"spine_template", "gm_model", "deepseg_models", "pmj_models"},
		CrashReportDSN: "https://crash.myelo.dev/api/7/store",
	}
}

// Load reads install.toml from sourceDir, overlaying any keys it sets onto
// the defaults. A missing file returns the defaults unchanged; a malformed
// file is an error.
func Load(sourceDir string) (Manifest, error) {
	m := Default()
	data, err := os.ReadFile(filepath.Join(sourceDir, FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return Manifest{}, fmt.Errorf("read %s: %w", FileName, err)
	}
	var overlay Manifest
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return Manifest{}, fmt.Errorf("parse %s: %w", FileName, err)
	}
	if overlay.MinMacOSMajor > 0 {
		m.MinMacOSMajor = overlay.MinMacOSMajor
	}
	if overlay.PythonVersion != "" {
		m.PythonVersion = overlay.PythonVersion
	}
	if len(overlay.BootstrapURL) > 0 {
		m.BootstrapURL = overlay.BootstrapURL
	}
	if len(overlay.DataBundles) > 0 {
		m.DataBundles = overlay.DataBundles
	}
	if overlay.CrashReportDSN != "" {
		m.CrashReportDSN = overlay.CrashReportDSN
	}
	return m, nil
}
