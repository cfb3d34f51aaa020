package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myelo-dev/myelo-installer/internal/messages"
)

func TestHuhUIRefusesWithoutTerminal(t *testing.T) {
	ui := &HuhUI{isTerminal: func() bool { return false }}

	var answer string
	err := ui.Input("Install?", &answer)

	require.Error(t, err)
	assert.EqualError(t, err, messages.PromptNotInteractive)
	assert.Empty(t, answer)
}

func TestNewHuhUIWiresTerminalCheck(t *testing.T) {
	assert.NotNil(t, NewHuhUI().isTerminal)
}

func TestInterruptToQuitConvertsInterrupt(t *testing.T) {
	assert.IsType(t, tea.QuitMsg{}, interruptToQuit(nil, tea.InterruptMsg{}))

	key := tea.KeyMsg{Type: tea.KeyEnter}
	assert.Equal(t, tea.Msg(key), interruptToQuit(nil, key))
}

func TestScriptUIReplaysAndAborts(t *testing.T) {
	ui := &ScriptUI{Responses: []string{"first", "second"}}

	var answer string
	require.NoError(t, ui.Input("q", &answer))
	assert.Equal(t, "first", answer)
	require.NoError(t, ui.Input("q", &answer))
	assert.Equal(t, "second", answer)

	assert.ErrorIs(t, ui.Input("q", &answer), ErrAborted)
}
