package component

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/roster-tui/internal/player"
	"github.com/leighmacdonald/roster-tui/internal/ui/command"
	"github.com/leighmacdonald/roster-tui/internal/ui/input"
	"github.com/leighmacdonald/roster-tui/internal/ui/model"
	"github.com/leighmacdonald/roster-tui/internal/ui/styles"
)

type StatusBarModel struct {
	viewState   model.ViewState
	statusMsg   string
	statusError bool
	count       int
	loaded      bool
	selected    player.Player
	version     string
}

func NewStatusBarModel(version string) StatusBarModel {
	return StatusBarModel{version: version}
}

func (m StatusBarModel) Init() tea.Cmd {
	return nil
}

func (m StatusBarModel) Update(msg tea.Msg) (StatusBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case command.StatusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return m, command.ClearErrorAfter(command.ClearMessageTimeout)
	case command.ClearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	case command.PlayersLoadedMsg:
		m.count = len(msg.Players)
		m.loaded = true
	case command.PlayersFailedMsg:
		m.loaded = true
	case command.SelectedPlayerMsg:
		m.selected = msg.Player
	case model.ViewState:
		m.viewState = msg
	}

	return m, nil
}

func (m StatusBarModel) View() string {
	args := []string{
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(fmt.Sprintf("%s %s", input.Default.Help.Help().Key, input.Default.Help.Help().Desc)),
	}

	if m.loaded {
		args = append(args, styles.StatusCount.Render(fmt.Sprintf("%s %s", styles.IconPlayers, humanize.Comma(int64(m.count)))))
	}

	if m.selected.ID != "" {
		args = append(args, styles.StatusSelected.Render(m.selected.Name))
	}

	if m.statusMsg != "" {
		if m.statusError {
			args = append(args, styles.StatusError.Render(m.statusMsg))
		} else {
			args = append(args, styles.StatusMessage.Render(m.statusMsg))
		}
	}

	return lipgloss.NewStyle().Width(m.viewState.Width).Render(lipgloss.JoinHorizontal(lipgloss.Top, args...))
}
