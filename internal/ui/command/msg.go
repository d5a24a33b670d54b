package command

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/roster-tui/internal/player"
	"github.com/leighmacdonald/roster-tui/internal/ui/model"
)

func SetViewState(state model.ViewState) tea.Cmd {
	return func() tea.Msg { return state }
}

func SetPage(page model.Page) tea.Cmd {
	return func() tea.Msg { return page }
}

// PlayerSource is anything able to produce the players collection, normally a *players.Client.
type PlayerSource interface {
	Players(ctx context.Context) (player.Players, error)
}

// PlayersLoadedMsg carries a successfully decoded players collection.
type PlayersLoadedMsg struct {
	Players player.Players
}

// PlayersFailedMsg is sent when the players request failed for any reason.
type PlayersFailedMsg struct {
	Err error
}

// FetchPlayers performs a single request against source. It runs off the update loop and
// reports back with either a PlayersLoadedMsg or a PlayersFailedMsg.
func FetchPlayers(ctx context.Context, source PlayerSource) tea.Cmd {
	return func() tea.Msg {
		players, err := source.Players(ctx)
		if err != nil {
			return PlayersFailedMsg{Err: err}
		}

		return PlayersLoadedMsg{Players: players}
	}
}

type SelectedPlayerMsg struct {
	Player player.Player
}

func SelectPlayer(player player.Player) tea.Cmd {
	return func() tea.Msg {
		return SelectedPlayerMsg{Player: player}
	}
}

const ClearMessageTimeout = time.Second * 10

type ClearStatusMessageMsg struct{}

func ClearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return ClearStatusMessageMsg{}
	})
}

type StatusMsg struct {
	Message string
	Err     bool
}

func SetStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Message: msg, Err: err}
	}
}
