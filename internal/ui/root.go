package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/roster-tui/internal/config"
	"github.com/leighmacdonald/roster-tui/internal/ui/command"
	"github.com/leighmacdonald/roster-tui/internal/ui/component"
	"github.com/leighmacdonald/roster-tui/internal/ui/input"
	"github.com/leighmacdonald/roster-tui/internal/ui/model"
	"github.com/leighmacdonald/roster-tui/internal/ui/pages"
	"github.com/leighmacdonald/roster-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

const (
	appTitle     = "roster-tui"
	footerHeight = 1
)

// rootModel is the top level model for the ui side of the app.
type rootModel struct {
	viewState   model.ViewState
	mainPage    tea.Model
	helpPage    tea.Model
	statusModel component.StatusBarModel
	zones       *zone.Manager
}

func newRootModel(ctx context.Context, conf config.Config, source command.PlayerSource, zones *zone.Manager,
	build pages.BuildInfo, configPath string, logPath string,
) rootModel {
	return rootModel{
		viewState:   model.ViewState{Page: model.PageMain},
		mainPage:    pages.NewMain(ctx, source, zones, "Roster"),
		helpPage:    pages.NewHelp(build, conf, configPath, logPath),
		statusModel: component.NewStatusBarModel(build.Version),
		zones:       zones,
	}
}

func (m rootModel) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(appTitle),
		m.mainPage.Init(),
		m.helpPage.Init(),
		m.statusModel.Init(),
	)
}

func (m rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.viewState.Height = msg.Height
		m.viewState.Width = msg.Width
		m.viewState.Content = max(0, msg.Height-footerHeight)

		return m, command.SetViewState(m.viewState)
	case model.Page:
		m.viewState.Page = msg

		return m, command.SetViewState(m.viewState)
	case config.Config:
		return m.propagate(inMsg, command.SetStatusMessage("Config reloaded", false))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, input.Default.Quit):
			if msg.Type == tea.KeyCtrlC || m.viewState.Page == model.PageMain {
				return m, tea.Quit
			}
		case key.Matches(msg, input.Default.Help):
			if m.viewState.Page == model.PageHelp {
				return m, command.SetPage(model.PageMain)
			}

			return m, command.SetPage(model.PageHelp)
		}
	case model.ViewState:
		m.viewState = msg
	}

	return m.propagate(inMsg)
}

func (m rootModel) View() string {
	footer := styles.FooterContainerStyle.Width(m.viewState.Width).Render(m.statusModel.View())

	var content string
	switch m.viewState.Page {
	case model.PageHelp:
		content = m.helpPage.View()
	case model.PageMain:
		content = m.mainPage.View()
	}

	ctr := styles.ContentContainerStyle.Height(m.viewState.Content).Render(content)

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, ctr, footer))
}

func (m rootModel) propagate(msg tea.Msg, extra ...tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 3, 3+len(extra))

	m.mainPage, cmds[0] = m.mainPage.Update(msg)
	m.helpPage, cmds[1] = m.helpPage.Update(msg)
	m.statusModel, cmds[2] = m.statusModel.Update(msg)

	return m, tea.Batch(append(cmds, extra...)...)
}

// logMsg is useful for debugging events. Tail the log file ~/.config/roster-tui/roster-tui.log
func logMsg(inMsg tea.Msg) {
	// Filter out very noisy stuff
	switch inMsg.(type) {
	case spinner.TickMsg, tea.MouseMsg:
		break
	case command.PlayersLoadedMsg, command.PlayersFailedMsg:
		break
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
