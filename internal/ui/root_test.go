package ui

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/roster-tui/internal/config"
	"github.com/leighmacdonald/roster-tui/internal/player"
	"github.com/leighmacdonald/roster-tui/internal/players"
	"github.com/leighmacdonald/roster-tui/internal/ui/command"
	"github.com/leighmacdonald/roster-tui/internal/ui/model"
	"github.com/leighmacdonald/roster-tui/internal/ui/pages"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

type staticSource player.Players

func (s staticSource) Players(_ context.Context) (player.Players, error) {
	return player.Players(s), nil
}

func execute(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, child := range batch {
			msgs = append(msgs, execute(child)...)
		}

		return msgs
	}

	return []tea.Msg{msg}
}

// send delivers msg and then every message produced by the returned commands, one level deep.
func send(t *testing.T, root tea.Model, msg tea.Msg) tea.Model {
	t.Helper()

	var cmd tea.Cmd
	root, cmd = root.Update(msg)
	for _, next := range execute(cmd) {
		switch next.(type) {
		case model.ViewState, model.Page:
			root = send(t, root, next)
		}
	}

	return root
}

func newTestRoot(t *testing.T) tea.Model {
	t.Helper()

	source := staticSource{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Bo"}}
	root := newRootModel(t.Context(), config.Config{APIBaseURL: "http://api.test/"}, source, zone.New(),
		pages.BuildInfo{Version: "v1.2.3", Commit: "0123456789abcdef", Date: "today"}, "", "/tmp/roster-tui.log")

	var tm tea.Model = root
	for _, msg := range execute(root.Init()) {
		switch msg.(type) {
		case command.PlayersLoadedMsg, command.PlayersFailedMsg:
			tm, _ = tm.Update(msg)
		}
	}

	return send(t, tm, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func TestRootRendersPlayers(t *testing.T) {
	root := newTestRoot(t)

	view := root.View()
	require.Contains(t, view, "Player List")
	require.Contains(t, view, "Ann")
	require.Contains(t, view, "Bo")
	require.Contains(t, view, "v1.2.3")
	require.Equal(t, view, root.View())
}

func TestRootHelpToggle(t *testing.T) {
	root := newTestRoot(t)

	root = send(t, root, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	view := root.View()
	require.Contains(t, view, "01234567")
	require.Contains(t, view, "http://api.test/")
	require.NotContains(t, view, "Player List")

	// Quit is ignored outside of the main page.
	_, cmd := root.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	for _, msg := range execute(cmd) {
		require.NotEqual(t, tea.QuitMsg{}, msg)
	}

	root = send(t, root, tea.KeyMsg{Type: tea.KeyEsc})
	require.Contains(t, root.View(), "Player List")
}

func TestRootQuit(t *testing.T) {
	root := newTestRoot(t)

	_, cmd := root.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRootConfigReload(t *testing.T) {
	root := newTestRoot(t)

	var cmd tea.Cmd
	root, cmd = root.Update(config.Config{APIBaseURL: "http://reloaded.test/"})

	var status tea.Msg
	for _, msg := range execute(cmd) {
		if _, ok := msg.(command.StatusMsg); ok {
			status = msg
		}
	}
	require.Equal(t, command.StatusMsg{Message: "Config reloaded"}, status)

	root, _ = root.Update(status)
	require.Contains(t, root.View(), "Config reloaded")
}

func TestRootFailureLoggedOnce(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	source := players.New(server.Client(), server.URL+"/api/players")
	root := newRootModel(t.Context(), config.Config{APIBaseURL: server.URL}, source, zone.New(),
		pages.BuildInfo{Version: "v1.2.3"}, "", "")

	var tm tea.Model = root
	for _, msg := range execute(root.Init()) {
		switch msg.(type) {
		case command.PlayersLoadedMsg, command.PlayersFailedMsg:
			tm, _ = tm.Update(msg)
		}
	}
	tm = send(t, tm, tea.WindowSizeMsg{Width: 80, Height: 24})

	require.Equal(t, 1, strings.Count(logs.String(), "status 500"), logs.String())
	require.Equal(t, 1, strings.Count(logs.String(), "level=ERROR"), logs.String())
	require.Contains(t, tm.View(), "Player List")
	require.NotContains(t, tm.View(), "status 500")
}
