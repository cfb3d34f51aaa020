// Package version reads the toolbox version marker file. The marker doubles
// as the proof that the installer is running inside a valid source tree.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MarkerFile is the version marker path relative to the source tree root.
const MarkerFile = "version.txt"

// Read returns the trimmed toolbox version from dir's marker file.
// A missing or empty marker is an error; the caller treats it as fatal.
func Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, MarkerFile))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", MarkerFile, err)
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", fmt.Errorf("%s is empty", MarkerFile)
	}
	return v, nil
}

// Exists reports whether dir contains the version marker file.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, MarkerFile))
	return err == nil && info.Mode().IsRegular()
}
