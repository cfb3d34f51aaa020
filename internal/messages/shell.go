package messages

// Shell integration, prompt and session messages.
const (
	ShellConsentPrompt    = "Add the Myelo Toolbox to your shell startup file?"
	ShellDiffHeaderFmt    = "The following lines would be appended to %s:"
	ShellRcReadFailedFmt  = "read shell startup file %s: %w"
	ShellRcWriteFailedFmt = "update shell startup file %s: %w"
	ShellDeclinedNotice   = "Your shell startup file was left untouched."

	PromptInvalidYesNo   = "Please answer yes or no."
	PromptEmptyRejected  = "A value is required."
	PromptNotInteractive = "interactive input required but no terminal is attached; set the documented environment overrides for unattended installs"
	PromptAbortedErr     = "input aborted"

	ReportConsentPrompt  = "May the toolbox send anonymized crash reports to help us improve it?"
	ReportWriteFailedFmt = "write crash-report configuration: %w"

	SessionScratchFmt        = "create scratch workspace: %w"
	SessionRestoreDirFmt     = "restore working directory to %s: %w"
	SessionInterruptNotice   = "\nInstall aborted. Cleaning up..."
)
