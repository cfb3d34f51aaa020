// Package assets installs the downloadable bundles: platform binaries into
// bin, data bundles into a freshly wiped data directory, and the default
// deep-learning models via the toolbox's own entry point.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/myelo-dev/myelo-installer/internal/messages"
	"github.com/myelo-dev/myelo-installer/internal/probe"
	"github.com/myelo-dev/myelo-installer/internal/run"
	"github.com/myelo-dev/myelo-installer/internal/target"
)

// Toolbox commands the installer delegates to. Both resolve through the
// public bin directory that the provisioner prepended to PATH.
const (
	fetchCommand  = "myelo_download_data"
	modelsCommand = "myelo_deepseg"
)

// Installer downloads bundles into an install target.
type Installer struct {
	Runner  run.Runner
	Target  string
	OS      probe.OSFamily
	Bundles []string
}

// InstallBinaries fetches the platform binary bundle into the bin
// directory. The bundle name is OS-keyed; a fetch failure names it.
func (i *Installer) InstallBinaries(ctx context.Context) error {
	bundle := "binaries_" + i.OS.String()
	dest := filepath.Join(i.Target, target.BinDirName)
	if err := i.fetch(ctx, bundle, dest); err != nil {
		return fmt.Errorf(messages.AssetBundleFailedFmt, bundle, i.OS, err)
	}
	return nil
}

// InstallData wipes the data directory and fetches each configured bundle
// into it, in order. The first failure is fatal and names the bundle.
func (i *Installer) InstallData(ctx context.Context) error {
	dataDir := filepath.Join(i.Target, target.DataDirName)
	if err := os.RemoveAll(dataDir); err != nil {
		return fmt.Errorf(messages.AssetDataResetFmt, dataDir, err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf(messages.AssetDataResetFmt, dataDir, err)
	}
	for _, bundle := range i.Bundles {
		log.Info().Str("bundle", bundle).Msg("fetching data bundle")
		if err := i.fetch(ctx, bundle, dataDir); err != nil {
			return fmt.Errorf(messages.AssetBundleFailedFmt, bundle, i.OS, err)
		}
	}
	return nil
}

// InstallDefaultModels delegates default model materialization to the
// toolbox runtime; the installer treats the step as opaque.
func (i *Installer) InstallDefaultModels(ctx context.Context) error {
	err := i.Runner.Run(ctx, run.Cmd{
		Name: modelsCommand,
		Args: []string{"--install-default-models"},
		Dir:  i.Target,
	})
	if err != nil {
		return fmt.Errorf(messages.AssetModelsFailedFmt, err)
	}
	return nil
}

func (i *Installer) fetch(ctx context.Context, bundle string, dest string) error {
	return i.Runner.Run(ctx, run.Cmd{
		Name: fetchCommand,
		Args: []string{"-d", bundle, "-o", dest},
		Dir:  i.Target,
	})
}
