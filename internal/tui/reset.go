package tui

import (
	"strings"

	"github.com/avelasq/accountgate/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// resetFormModel is the password-change form overlaid on the chat screen.
// It collects the current password, the new password, and its confirmation;
// the server runs the actual checks and answers with an outcome.
type resetFormModel struct {
	inputs []textinput.Model
	focus  int
}

func newResetFormModel() resetFormModel {
	oldInput := textinput.New()
	oldInput.Placeholder = "current password"
	oldInput.CharLimit = 32
	oldInput.Width = 40
	oldInput.EchoMode = textinput.EchoPassword
	oldInput.EchoCharacter = '*'
	oldInput.Focus()

	newInput := textinput.New()
	newInput.Placeholder = "new password"
	newInput.CharLimit = 32
	newInput.Width = 40
	newInput.EchoMode = textinput.EchoPassword
	newInput.EchoCharacter = '*'

	retypedInput := textinput.New()
	retypedInput.Placeholder = "retype new password"
	retypedInput.CharLimit = 32
	retypedInput.Width = 40
	retypedInput.EchoMode = textinput.EchoPassword
	retypedInput.EchoCharacter = '*'

	return resetFormModel{
		inputs: []textinput.Model{oldInput, newInput, retypedInput},
	}
}

// Update processes one message. done reports that the form should close;
// submitted carries the filled request when the user confirmed the form,
// and stays nil on cancel.
func (m *resetFormModel) Update(msg tea.Msg) (done bool, submitted *models.ResetRequest, cmd tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return false, nil, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return true, nil, nil
	case "tab":
		m.focusNext()
		return false, nil, nil
	case "shift+tab":
		m.focusPrev()
		return false, nil, nil
	case "enter":
		req := models.ResetRequest{
			OldPassword:        m.inputs[0].Value(),
			NewPassword:        m.inputs[1].Value(),
			RetypedNewPassword: m.inputs[2].Value(),
		}
		return true, &req, nil
	}

	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return false, nil, cmd
}

func (m *resetFormModel) View() string {
	var b strings.Builder
	b.WriteString("Field               │ Value\n")
	b.WriteString("────────────────────┼──────────────────────────────────────\n")

	labels := []string{"Current password   ", "New password       ", "Retype new password"}
	for i, label := range labels {
		b.WriteString(label)
		b.WriteString(" │ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	return renderPage("CHANGE PASSWORD", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *resetFormModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *resetFormModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
