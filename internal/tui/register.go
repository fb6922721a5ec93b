package tui

import (
	"context"
	"strings"

	"github.com/avelasq/accountgate/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type registerResult struct {
	outcome  models.Outcome
	username string
	err      error
}

// RegisterModel is the Bubble Tea model for the signup screen: username,
// email, password, and retyped password inputs. On a successful signup it
// navigates back to the menu with a [RegisterSuccessNotice].
type RegisterModel struct {
	ctx     context.Context
	gateway Gateway

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, gateway Gateway) *RegisterModel {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "username"
	usernameInput.CharLimit = 20
	usernameInput.Width = 40
	usernameInput.Focus()

	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 254
	emailInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 32
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	retypedInput := textinput.New()
	retypedInput.Placeholder = "retype password"
	retypedInput.CharLimit = 32
	retypedInput.Width = 40
	retypedInput.EchoMode = textinput.EchoPassword
	retypedInput.EchoCharacter = '*'

	return &RegisterModel{
		ctx:     ctx,
		gateway: gateway,
		inputs:  []textinput.Model{usernameInput, emailInput, passwordInput, retypedInput},
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(registerResult); ok {
		m.submitting = false
		switch {
		case result.err != nil:
			m.errMsg = humanizeServerUnavailableError(result.err)
		case !result.outcome.OK():
			m.errMsg = result.outcome.String()
		default:
			return m, func() tea.Msg {
				return NavigateTo{Page: "menu", Payload: RegisterSuccessNotice{Username: result.username}}
			}
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Field           │ Value\n")
	b.WriteString("────────────────┼────────────────────────────────────────────\n")

	labels := []string{"Username       ", "Email          ", "Password       ", "Retype password"}
	for i, label := range labels {
		b.WriteString(label)
		b.WriteString(" │ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Creating account...]\n")
	} else {
		b.WriteString("\n[Create account]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nError: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("CREATE ACCOUNT", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) cmdRegister() tea.Cmd {
	ctx := m.ctx
	gateway := m.gateway
	req := models.SignupRequest{
		Username:        strings.TrimSpace(m.inputs[0].Value()),
		Email:           strings.TrimSpace(m.inputs[1].Value()),
		Password:        m.inputs[2].Value(),
		RetypedPassword: m.inputs[3].Value(),
	}

	return func() tea.Msg {
		outcome, err := gateway.Register(ctx, req)
		return registerResult{outcome: outcome, username: req.Username, err: err}
	}
}

func (m *RegisterModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
