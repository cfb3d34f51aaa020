package messages

// Environment probe and requirement check messages.
const (
	ProbeUnsupportedOSFmt         = "unsupported operating system %q; Myelo Toolbox supports Linux and macOS"
	ProbeMacVersionUnreadableFmt  = "could not determine the macOS version: %w"
	ProbeMacVersionUnparsableFmt  = "could not parse macOS version %q"
	ProbeMacVersionTooOldFmt      = "macOS %s is not supported; version %d or newer is required"
	ProbeShellUnsetErr            = "the SHELL environment variable is not set"
	ProbeUnsupportedShell         = "unsupported login shell"
	ProbeUnsupportedShellFmt      = "%w %q; supported shells are bash, sh, zsh, csh and tcsh"
	ProbeDotfilesHeader           = "Shell startup files found in your home directory:"
	ProbeLocaleDefaultsApplied    = "LANG/LC_ALL were unset; using UTF-8 defaults for this install."
	ProbeProfileSourcesRcFmt      = "ensure login shell sources %s: %w"

	ReqDownloadToolsMissing = "neither curl nor wget was found on PATH; install one of them and re-run the installer"
	ReqCompilerMissing      = "no C compiler (gcc or cc) was found on PATH"
	ReqCompilerLinuxHint    = "Install one with your package manager, e.g. 'sudo apt install gcc' or 'sudo yum install gcc', then re-run the installer."
	ReqCompilerMacPrompt    = "No C compiler was found. Install Homebrew and gcc now?"
	ReqCompilerMacDeclined  = "a C compiler is required; install Xcode command line tools or Homebrew gcc and re-run the installer"
	ReqBrewBootstrapFailed  = "Homebrew bootstrap failed: %w"
	ReqBrewInstallGccFailed = "brew install gcc failed: %w"
)
