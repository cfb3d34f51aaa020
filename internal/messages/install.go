package messages

// Target directory, runtime provisioning and asset installation messages.
const (
	TargetDefaultPromptFmt  = "Install the Myelo Toolbox to %s?"
	TargetPathPrompt        = "Enter the full installation path"
	TargetRefuseRoot        = "Refusing to install into the filesystem root."
	TargetRefuseHome        = "Refusing to install directly into your home directory; choose a subdirectory instead."
	TargetReuseWarningFmt   = "%s already exists; its contents will be overwritten."
	TargetCreateFailedFmt   = "create install directory %s: %w"
	TargetNotWritableFmt    = "install directory %s is not writable: %w"
	TargetCopyHeaderFmt     = "Copying the toolbox source tree to %s..."
	TargetCopyFailedFmt     = "copy source tree to %s: %w"
	TargetChdirFailedFmt    = "enter install directory %s: %w"
	TargetMarkerMissingFmt  = "%s is missing from %s; refusing to continue outside a Myelo Toolbox source tree"
	TargetPurgeLauncherFmt  = "remove stale launcher %s: %w"
	TargetInPlaceNotice     = "Installing in place; the source tree will not be copied."

	PyWipeFailedFmt         = "reset runtime directory %s: %w"
	PyBootstrapDownloadFmt  = "download the Python bootstrap installer: %w"
	PyBootstrapRunFmt       = "run the Python bootstrap installer: %w"
	PyCreateEnvFmt          = "create the %s environment: %w"
	PyInstallDepsFmt        = "install Python dependencies from %s: %w"
	PyInstallToolboxFmt     = "install the toolbox package: %w"
	PyNoManifest            = "neither requirements-freeze.txt nor requirements.txt exists in the install directory"
	PyLauncherScanFmt       = "scan environment binaries in %s: %w"
	PyLauncherCopyFmt       = "copy launcher %s: %w"
	PyProvisionHeader       = "Provisioning an isolated Python runtime (this can take a while)..."
	PyDepsHeader            = "Installing Python dependencies..."

	AssetBinariesHeader     = "Downloading platform binaries..."
	AssetDataHeader         = "Downloading data bundles..."
	AssetDataResetFmt       = "reset data directory %s: %w"
	AssetBundleFailedFmt    = "install bundle %q for platform %s: %w"
	AssetModelsHeader       = "Installing default deep-learning models..."
	AssetModelsFailedFmt    = "install default models: %w"

	DownloadAllFailedFmt    = "download %s: all transports failed; check your internet connection and retry"
	DownloadNoTransports    = "no download transport available (curl or wget required)"
)
