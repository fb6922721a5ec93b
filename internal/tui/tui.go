// Package tui implements the Bubble Tea terminal interface of the
// accountgate client: the authentication flow (menu, login, register) and
// the chat loop with the password-change form.
package tui

import (
	"context"
	"errors"

	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit the program")

// Gateway is the slice of the accountgate HTTP API the terminal UI needs.
type Gateway interface {
	Login(ctx context.Context, identifier, password string) (models.Outcome, error)
	Register(ctx context.Context, req models.SignupRequest) (models.Outcome, error)
	ResetPassword(ctx context.Context, req models.ResetRequest) (models.Outcome, error)
	Query(ctx context.Context, text string) (string, error)
	History(ctx context.Context) ([]models.ChatMessage, error)
}

type TUI struct {
	gateway Gateway
}

func New(gateway Gateway, _ *logger.Logger) (*TUI, error) {
	return &TUI{gateway: gateway}, nil
}

// LoginFlow runs the menu/login/register pages until the user authenticates.
// Returns [ErrUserQuit] when the user leaves without logging in.
func (t *TUI) LoginFlow(ctx context.Context) error {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.gateway),
		"register": NewRegisterModel(ctx, t.gateway),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser || !result.loggedIn {
		return ErrUserQuit
	}

	return nil
}

// ChatLoop runs the chat screen until the user quits or logs out.
func (t *TUI) ChatLoop(ctx context.Context) (logout bool, err error) {
	model := newChatModel(ctx, t.gateway)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(chatModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
