// Package installer sequences the install steps end to end: probe,
// requirement checks, target selection, runtime provisioning, assets and
// shell integration. Every step failure propagates to the single fatal
// exit path in the CLI layer.
package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/myelo-dev/myelo-installer/internal/assets"
	"github.com/myelo-dev/myelo-installer/internal/download"
	"github.com/myelo-dev/myelo-installer/internal/manifest"
	"github.com/myelo-dev/myelo-installer/internal/messages"
	"github.com/myelo-dev/myelo-installer/internal/probe"
	"github.com/myelo-dev/myelo-installer/internal/prompt"
	"github.com/myelo-dev/myelo-installer/internal/pyenv"
	"github.com/myelo-dev/myelo-installer/internal/report"
	"github.com/myelo-dev/myelo-installer/internal/reqcheck"
	"github.com/myelo-dev/myelo-installer/internal/run"
	"github.com/myelo-dev/myelo-installer/internal/session"
	"github.com/myelo-dev/myelo-installer/internal/shellrc"
	"github.com/myelo-dev/myelo-installer/internal/target"
	"github.com/myelo-dev/myelo-installer/internal/version"
)

// selfCheckCommand validates the finished install; it resolves through the
// freshly provisioned bin directory.
const selfCheckCommand = "myelo_check_deps"

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	warnColor   = color.New(color.FgYellow)
)

// Options configures one install run.
type Options struct {
	SkipData     bool
	SkipBinaries bool
	ShowProgress bool

	// Home is the user's home directory.
	Home string
	// UI answers interactive questions.
	UI prompt.UI
	// Runner executes external commands.
	Runner run.Runner
	// Out receives user-facing output; defaults to stdout.
	Out io.Writer
	// Now stamps the shell integration block; defaults to time.Now.
	Now func() time.Time
}

// Result summarizes a successful install for the final CLI message.
type Result struct {
	TargetDir      string
	BinDir         string
	PathIntegrated bool
	CrashConsent   bool
}

// Run executes the full installation inside sess. The source tree is the
// session's starting directory.
func Run(sess *session.Session, opts Options) (Result, error) {
	ctx := sess.Context()
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	asker := &prompt.Asker{UI: opts.UI, Out: out, LookupEnv: os.LookupEnv}
	sourceDir := sess.StartDir

	toolboxVersion, err := version.Read(sourceDir)
	if err != nil {
		return Result{}, err
	}
	man, err := manifest.Load(sourceDir)
	if err != nil {
		return Result{}, err
	}

	env, err := probe.Detect(ctx, man.MinMacOSMajor)
	if err != nil {
		if errors.Is(err, probe.ErrUnsupportedShell) {
			_, _ = fmt.Fprintln(out, messages.ProbeDotfilesHeader)
			for _, name := range probe.Dotfiles(opts.Home) {
				_, _ = fmt.Fprintln(out, "  "+name)
			}
		}
		return Result{}, err
	}
	if err := probe.EnsureMacDefaults(env, opts.Home); err != nil {
		return Result{}, err
	}

	if err := reqcheck.EnsureDownloadTool(opts.Runner); err != nil {
		return Result{}, err
	}
	if err := reqcheck.EnsureCompiler(ctx, opts.Runner, env.OS, asker); err != nil {
		return Result{}, err
	}

	_, _ = headerColor.Fprintf(out, messages.BannerFmt, toolboxVersion)
	if opts.SkipData {
		_, _ = warnColor.Fprintln(out, messages.WarnSkipDataEngaged)
	}
	if opts.SkipBinaries {
		_, _ = warnColor.Fprintln(out, messages.WarnSkipBinariesEngaged)
	}

	crashConsent, err := asker.YesNo(messages.ReportConsentPrompt, report.ConsentEnvVar)
	if err != nil {
		return Result{}, err
	}

	selector := &target.Selector{Asker: asker, Home: opts.Home, Out: out}
	dir, err := selector.Select(target.DefaultDir(sourceDir, opts.Home, toolboxVersion))
	if err != nil {
		return Result{}, err
	}
	if err := target.Materialize(dir); err != nil {
		return Result{}, err
	}
	if err := target.CopySource(sourceDir, dir, opts.ShowProgress); err != nil {
		return Result{}, err
	}
	if err := target.PurgeLaunchers(dir); err != nil {
		return Result{}, err
	}
	if err := target.Enter(dir); err != nil {
		return Result{}, err
	}

	if err := report.Write(dir, crashConsent, man.CrashReportDSN); err != nil {
		return Result{}, err
	}

	_, _ = headerColor.Fprintln(out, messages.PyProvisionHeader)
	prov := &pyenv.Provisioner{
		Runner:   opts.Runner,
		Fetcher:  &download.Fetcher{Runner: opts.Runner},
		Target:   dir,
		Scratch:  sess.ScratchDir,
		OS:       env.OS,
		Manifest: man,
	}
	if err := prov.Provision(ctx); err != nil {
		return Result{}, err
	}
	_, _ = headerColor.Fprintln(out, messages.PyDepsHeader)
	if err := prov.InstallDependencies(ctx); err != nil {
		return Result{}, err
	}
	if err := prov.InstallToolbox(ctx); err != nil {
		return Result{}, err
	}
	if err := prov.CopyLaunchers(); err != nil {
		return Result{}, err
	}
	prov.PrependBinToPath()

	installer := &assets.Installer{
		Runner:  opts.Runner,
		Target:  dir,
		OS:      env.OS,
		Bundles: man.DataBundles,
	}
	if !opts.SkipBinaries {
		_, _ = headerColor.Fprintln(out, messages.AssetBinariesHeader)
		if err := installer.InstallBinaries(ctx); err != nil {
			return Result{}, err
		}
	}
	if !opts.SkipData {
		_, _ = headerColor.Fprintln(out, messages.AssetDataHeader)
		if err := installer.InstallData(ctx); err != nil {
			return Result{}, err
		}
	}
	_, _ = headerColor.Fprintln(out, messages.AssetModelsHeader)
	if err := installer.InstallDefaultModels(ctx); err != nil {
		return Result{}, err
	}

	if os.Getenv(shellrc.MPLBackendEnvVar) == "" {
		_ = os.Setenv(shellrc.MPLBackendEnvVar, "Agg")
	}

	integrated, err := integrateShell(asker, out, env, opts.Home, dir, now())
	if err != nil {
		return Result{}, err
	}

	_, _ = headerColor.Fprintln(out, messages.SelfCheckHeader)
	err = opts.Runner.Run(ctx, run.Cmd{Name: selfCheckCommand, Dir: dir})
	if err != nil {
		return Result{}, fmt.Errorf(messages.SelfCheckFailedFmt, err)
	}

	return Result{
		TargetDir:      dir,
		BinDir:         filepath.Join(dir, target.BinDirName),
		PathIntegrated: integrated,
		CrashConsent:   crashConsent,
	}, nil
}

// integrateShell cleans up legacy activation lines and, with consent,
// appends the integration block to the rc file.
func integrateShell(asker *prompt.Asker, out io.Writer, env probe.Env, home string, dir string, now time.Time) (bool, error) {
	rcPath := filepath.Join(home, env.RcName)
	if _, err := shellrc.CommentOutLegacy(rcPath); err != nil {
		return false, err
	}

	block := shellrc.Block(env.Shell, dir, now)
	preview, err := shellrc.Preview(rcPath, block)
	if err != nil {
		return false, err
	}
	_, _ = fmt.Fprintf(out, messages.ShellDiffHeaderFmt+"\n", rcPath)
	_, _ = fmt.Fprintln(out, preview)

	consent, err := asker.YesNo(messages.ShellConsentPrompt, "")
	if err != nil {
		return false, err
	}
	if !consent {
		_, _ = fmt.Fprintln(out, messages.ShellDeclinedNotice)
		return false, nil
	}
	if err := shellrc.AppendBlock(rcPath, block); err != nil {
		return false, err
	}
	return true, nil
}
