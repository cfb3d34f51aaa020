// Package prompt implements the interactive question engine: validated
// yes/no and free-text questions that re-prompt until the answer parses.
package prompt

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/myelo-dev/myelo-installer/internal/messages"
)

// ErrAborted is returned when the user cancels a prompt (Ctrl+C or EOF).
// The orchestrator treats it like an interrupt: cleanup, then exit 1.
var ErrAborted = errors.New(messages.PromptAbortedErr)

// UI asks a single free-text question. Validation and re-prompt loops live
// above this seam so scripted test UIs exercise the same logic as the
// terminal UI.
type UI interface {
	Input(title string, value *string) error
}

// HuhUI implements UI with charmbracelet/huh forms.
type HuhUI struct {
	isTerminal func() bool
}

// NewHuhUI creates a HuhUI using the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: isInteractive}
}

// isInteractive reports whether stdin and stdout are both terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Input asks one free-text question and stores the answer in value.
func (ui *HuhUI) Input(title string, value *string) error {
	checker := ui.isTerminal
	if checker == nil {
		checker = isInteractive
	}
	if !checker() {
		return errors.New(messages.PromptNotInteractive)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title).Value(value),
	)).WithProgramOptions(tea.WithFilter(interruptToQuit))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// interruptToQuit converts an external SIGINT into a graceful quit so the
// renderer clears the form before the session teardown runs.
func interruptToQuit(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}

// ScriptUI replays canned answers. Used by tests and unattended installs.
type ScriptUI struct {
	Responses []string
	next      int
}

// Input pops the next scripted response; an exhausted script aborts.
func (ui *ScriptUI) Input(_ string, value *string) error {
	if ui.next >= len(ui.Responses) {
		return ErrAborted
	}
	*value = ui.Responses[ui.next]
	ui.next++
	return nil
}
