package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/avelasq/accountgate/models"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const chatInputLimit = 400

// chatModel is the main chat screen: a scrollable transcript viewport above
// a single-line query input. At most one query is in flight at a time; while
// waiting for the answer the input stays visible but submissions are ignored.
type chatModel struct {
	ctx     context.Context
	gateway Gateway

	viewport viewport.Model
	input    textinput.Model

	history []models.ChatMessage
	busy    bool
	status  string
	logout  bool

	resetForm *resetFormModel
}

func newChatModel(ctx context.Context, gateway Gateway) chatModel {
	input := textinput.New()
	input.Placeholder = "type your question"
	input.CharLimit = chatInputLimit
	input.Width = 60
	input.Focus()

	return chatModel{
		ctx:      ctx,
		gateway:  gateway,
		viewport: viewport.New(80, 20),
		input:    input,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.cmdLoadHistory())
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The password-change form owns the screen while it is open.
	if m.resetForm != nil {
		return m.updateResetForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		m.refreshTranscript()
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.status = "History unavailable: " + humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.history = msg.history
		m.refreshTranscript()
		return m, nil

	case queryDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.history = append(m.history, models.ChatMessage{
			Role: models.ChatRoleBot,
			Text: msg.answer,
			At:   time.Now(),
		})
		m.refreshTranscript()
		return m, nil

	case resetDoneMsg:
		switch {
		case msg.err != nil:
			m.status = humanizeServerUnavailableError(msg.err)
		default:
			m.status = msg.outcome.String()
		}
		return m, m.cmdClearStatusLater()

	case copiedMsg:
		m.status = "Answer copied to clipboard"
		return m, m.cmdClearStatusLater()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			m.logout = true
			return m, tea.Quit
		case "ctrl+r":
			form := newResetFormModel()
			m.resetForm = &form
			return m, textinput.Blink
		case "ctrl+y":
			return m, m.cmdCopyLastAnswer()
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "enter":
			return m.submitQuery()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	if m.resetForm != nil {
		return m.resetForm.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("CHAT"))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if m.busy {
		b.WriteString("[waiting for answer...]\n")
	} else {
		b.WriteString("> ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: send │ ctrl+y: copy answer │ ctrl+r: change password │ ctrl+l: logout │ ctrl+c: quit"))
	return b.String()
}

func (m chatModel) submitQuery() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.history = append(m.history, models.ChatMessage{
		Role: models.ChatRoleUser,
		Text: text,
		At:   time.Now(),
	})
	m.refreshTranscript()

	m.input.Reset()
	m.status = ""
	m.busy = true
	return m, m.cmdQuery(text)
}

func (m *chatModel) refreshTranscript() {
	var b strings.Builder
	for _, msg := range m.history {
		switch msg.Role {
		case models.ChatRoleUser:
			b.WriteString(userStyle.Render("you › "))
		default:
			b.WriteString(botStyle.Render("bot › "))
		}
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m chatModel) cmdQuery(text string) tea.Cmd {
	ctx := m.ctx
	gateway := m.gateway

	return func() tea.Msg {
		answer, err := gateway.Query(ctx, text)
		return queryDoneMsg{answer: answer, err: err}
	}
}

func (m chatModel) cmdLoadHistory() tea.Cmd {
	ctx := m.ctx
	gateway := m.gateway

	return func() tea.Msg {
		history, err := gateway.History(ctx)
		return historyLoadedMsg{history: history, err: err}
	}
}

func (m chatModel) cmdCopyLastAnswer() tea.Cmd {
	var last string
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].Role == models.ChatRoleBot {
			last = m.history[i].Text
			break
		}
	}
	if last == "" {
		return nil
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(last); err != nil {
			return clearStatusMsg{}
		}
		return copiedMsg{}
	}
}

func (m chatModel) cmdClearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m chatModel) updateResetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, submitted, cmd := m.resetForm.Update(msg)
	if done {
		m.resetForm = nil
		if submitted != nil {
			req := *submitted
			ctx := m.ctx
			gateway := m.gateway
			return m, func() tea.Msg {
				outcome, err := gateway.ResetPassword(ctx, req)
				return resetDoneMsg{outcome: outcome, err: err}
			}
		}
		return m, nil
	}
	return m, cmd
}
