package main

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/roster-tui/internal/config"
)

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

type watcher interface {
	Watch()
}

// App is the main application container. It owns the ui and forwards config reloads into it.
type App struct {
	ui            UI
	watcher       watcher
	configUpdates chan config.Config
}

func NewApp(watcher watcher, configUpdates chan config.Config) *App {
	return &App{
		watcher:       watcher,
		configUpdates: configUpdates,
	}
}

// Run starts the config watcher and blocks until the ui exits.
func (app *App) Run(ctx context.Context) error {
	if app.ui == nil {
		return errApp
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.watcher.Watch()
	go app.configSender(ctx)

	if err := app.ui.Run(); err != nil {
		slog.Error("Failed to run UI", slog.String("error", err.Error()))

		return errors.Join(err, errApp)
	}

	return nil
}

// configSender forwards reloaded config files to the ui.
func (app *App) configSender(ctx context.Context) {
	for {
		select {
		case conf := <-app.configUpdates:
			app.ui.Send(conf)
		case <-ctx.Done():
			return
		}
	}
}
