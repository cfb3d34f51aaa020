package messages

// CLI messages for the installer command and its final output.
const (
	// RootUse is the CLI command name.
	RootUse = "myelo-install"
	// RootShort is the short description for the root command.
	RootShort = "Install the Myelo Toolbox"
	RootLong  = "Install the Myelo Toolbox: provision an isolated Python runtime, download\nmodel and binary bundles, and wire the toolbox into your shell."

	FlagSkipData     = "Skip reinstalling the data bundles"
	FlagSkipBinaries = "Skip reinstalling the platform binaries"
	FlagVerbose      = "Verbose output (echo every external command)"

	BannerFmt = "\nWelcome to the Myelo Toolbox installer (version %s)\n"

	FinalSuccess            = "Installation finished successfully."
	FinalSuccessPathFmt     = "Open a new terminal and run myelo_check_deps to get started, or run it now from %s."
	FinalFailureFmt         = "Installation failed: %v"
	FinalFailureSupport     = "Please retry once; if the problem persists, keep this terminal transcript and ask for help at https://forum.myelo.dev"
	FinalInterrupted        = "Installation aborted by user."
	UsageExitRequestedFmt   = "exit %d"
	WarnSkipDataEngaged     = "Warning: -d given, data bundles will not be reinstalled."
	WarnSkipBinariesEngaged = "Warning: -b given, platform binaries will not be reinstalled."

	SelfCheckHeader    = "Validating the installation..."
	SelfCheckFailedFmt = "installation self-check failed: %w"
)
