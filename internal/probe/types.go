// Package probe detects the host environment: OS family and version, and
// the user's login shell. Everything downstream consumes the enums produced
// here; nothing else re-parses raw platform strings.
package probe

// OSFamily is the closed set of supported operating systems.
type OSFamily int

const (
	// OSLinux is any Linux distribution.
	OSLinux OSFamily = iota
	// OSMac is macOS.
	OSMac
)

// String returns the OS key used in URLs and bundle names.
func (o OSFamily) String() string {
	if o == OSMac {
		return "osx"
	}
	return "linux"
}

// ShellFamily is the closed set of supported shell dialects.
type ShellFamily int

const (
	// ShellPosix covers bash, sh and zsh (export VAR=value syntax).
	ShellPosix ShellFamily = iota
	// ShellCsh covers csh and tcsh (setenv VAR value syntax).
	ShellCsh
)

// Env is the probed host environment.
type Env struct {
	OS        OSFamily
	OSVersion string
	Shell     ShellFamily
	ShellPath string
	// RcName is the shell startup file name (relative to home).
	RcName string
}
