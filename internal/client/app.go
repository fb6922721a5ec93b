package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/tui"
)

type App struct {
	api *API
	tui *tui.TUI
}

func NewApp(log *logger.Logger) (*App, error) {
	serverURL := getenv("ACCOUNTGATE_SERVER_URL", "http://localhost:8080")
	timeout := 30 * time.Second

	api := NewAPI(serverURL, timeout, log)

	ui, err := tui.New(api, log)
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}

	return &App{api: api, tui: ui}, nil
}

func (a *App) Run() error {
	ctx := context.Background()

	if err := a.api.Health(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server warning: %v\n", err)
	}

	if err := a.tui.LoginFlow(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return err
	}

	logout, err := a.tui.ChatLoop(ctx)
	if err != nil {
		return err
	}
	if logout {
		a.api.Logout()
		return a.Run()
	}

	return nil
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
