package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/myelo-dev/myelo-installer/internal/installer"
	"github.com/myelo-dev/myelo-installer/internal/logging"
	"github.com/myelo-dev/myelo-installer/internal/messages"
	"github.com/myelo-dev/myelo-installer/internal/prompt"
	"github.com/myelo-dev/myelo-installer/internal/run"
	"github.com/myelo-dev/myelo-installer/internal/session"
)

var okColor = color.New(color.FgGreen, color.Bold)

func newRootCmd() *cobra.Command {
	var skipData bool
	var skipBinaries bool
	var verbose bool

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logging.Setup(verbose)

			home, err := homedir.Dir()
			if err != nil {
				return err
			}

			sess, err := session.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()
			sess.WatchInterrupts()

			out := cmd.OutOrStdout()
			result, err := installer.Run(sess, installer.Options{
				SkipData:     skipData,
				SkipBinaries: skipBinaries,
				ShowProgress: term.IsTerminal(int(os.Stdout.Fd())),
				Home:         home,
				UI:           prompt.NewHuhUI(),
				Runner:       run.ExecRunner{},
				Out:          out,
			})
			if err != nil {
				return err
			}

			_, _ = okColor.Fprintln(out, messages.FinalSuccess)
			if !result.PathIntegrated {
				_, _ = fmt.Fprintf(out, messages.FinalSuccessPathFmt+"\n", result.BinDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipData, "skip-data", "d", false, messages.FlagSkipData)
	cmd.Flags().BoolVarP(&skipBinaries, "skip-binaries", "b", false, messages.FlagSkipBinaries)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, messages.FlagVerbose)
	return cmd
}
