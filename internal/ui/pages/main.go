package pages

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/roster-tui/internal/ui/command"
	"github.com/leighmacdonald/roster-tui/internal/ui/component"
	"github.com/leighmacdonald/roster-tui/internal/ui/model"
	zone "github.com/lrstanley/bubblezone"
)

// containerBorder is the height and width taken up by the container border.
const containerBorder = 2

func NewMain(ctx context.Context, source command.PlayerSource, zones *zone.Manager, title string) Main {
	return Main{
		title:           title,
		playerListModel: component.NewPlayerListModel(ctx, source, zones, slog.Default()),
	}
}

type Main struct {
	title           string
	playerListModel component.PlayerListModel
	viewState       model.ViewState
}

func (m Main) Init() tea.Cmd {
	return m.playerListModel.Init()
}

func (m Main) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if state, ok := msg.(model.ViewState); ok {
		m.viewState = state
		// The list only gets the space inside the container.
		state.Width -= containerBorder
		state.Content -= containerBorder
		msg = state
	}

	var cmd tea.Cmd
	m.playerListModel, cmd = m.playerListModel.Update(msg)

	return m, cmd
}

func (m Main) View() string {
	return model.Container(m.title, m.viewState.Width-containerBorder, m.viewState.Content-containerBorder,
		m.playerListModel.View(), m.viewState.Page == model.PageMain)
}
