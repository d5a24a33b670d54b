package component_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/roster-tui/internal/player"
	"github.com/leighmacdonald/roster-tui/internal/players"
	"github.com/leighmacdonald/roster-tui/internal/ui/command"
	"github.com/leighmacdonald/roster-tui/internal/ui/component"
	"github.com/leighmacdonald/roster-tui/internal/ui/model"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls   atomic.Int32
	players player.Players
	err     error
}

func (s *fakeSource) Players(_ context.Context) (player.Players, error) {
	s.calls.Add(1)

	return s.players, s.err
}

type harness struct {
	zones  *zone.Manager
	logs   *bytes.Buffer
	list   component.PlayerListModel
	source command.PlayerSource
}

func newHarness(t *testing.T, source command.PlayerSource) *harness {
	t.Helper()

	zones := zone.New()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return &harness{
		zones:  zones,
		logs:   logs,
		source: source,
		list:   component.NewPlayerListModel(t.Context(), source, zones, logger),
	}
}

// execute runs cmd and any batched children, returning the produced messages.
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

// start calls the on-create hook and delivers the players result back into the model.
func (h *harness) start() {
	for _, msg := range execute(h.list.Init()) {
		switch msg.(type) {
		case command.PlayersLoadedMsg, command.PlayersFailedMsg:
			h.list, _ = h.list.Update(msg)
		}
	}
}

func (h *harness) view() string {
	return h.zones.Scan(h.list.View())
}

// rendered returns the trimmed non blank lines of the current view.
func (h *harness) rendered() []string {
	var lines []string
	for _, line := range strings.Split(h.view(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	return lines
}

// items returns the player names rendered below the heading.
func (h *harness) items(t *testing.T) []string {
	t.Helper()

	lines := h.rendered()
	require.NotEmpty(t, lines)
	require.Equal(t, component.ListTitle, lines[0])

	names := []string{}
	for _, line := range lines[1:] {
		_, name, found := strings.Cut(line, " ")
		require.True(t, found, line)
		names = append(names, name)
	}

	return names
}

func (h *harness) logLines() []string {
	return strings.Split(strings.TrimSpace(h.logs.String()), "\n")
}

func TestPlayerListLoaded(t *testing.T) {
	source := &fakeSource{players: player.Players{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Bo"}, {ID: "3", Name: "Cy"}}}
	h := newHarness(t, source)
	h.start()

	require.False(t, h.list.Loading())
	require.Equal(t, component.PhaseLoaded, h.list.Phase())
	require.Equal(t, []string{"Ann", "Bo", "Cy"}, h.items(t))
	require.NotContains(t, h.view(), component.LoadingText)
	require.Equal(t, int32(1), source.calls.Load())
	require.Empty(t, h.logs.String())
}

func TestPlayerListEmpty(t *testing.T) {
	h := newHarness(t, &fakeSource{players: player.Players{}})
	h.start()

	require.Equal(t, component.PhaseLoaded, h.list.Phase())
	require.Equal(t, []string{component.ListTitle}, h.rendered())
	require.Empty(t, h.items(t))
}

func TestPlayerListLoading(t *testing.T) {
	source := &fakeSource{players: player.Players{{ID: "1", Name: "Ann"}}}
	h := newHarness(t, source)

	require.Equal(t, component.PhaseInitial, h.list.Phase())
	require.True(t, h.list.Loading())

	cmd := h.list.Init()
	require.NotNil(t, cmd)
	require.Equal(t, component.PhaseLoading, h.list.Phase())

	view := h.view()
	require.Contains(t, view, component.LoadingText)
	require.NotContains(t, view, component.ListTitle)
	require.NotContains(t, view, "Ann")
	require.Empty(t, h.list.Players())
}

func TestPlayerListFailure(t *testing.T) {
	h := newHarness(t, &fakeSource{err: errors.New("connection refused")})
	h.start()

	require.False(t, h.list.Loading())
	require.Equal(t, component.PhaseErrored, h.list.Phase())
	require.Empty(t, h.items(t))
	require.NotContains(t, h.view(), component.LoadingText)
	require.Empty(t, h.list.Players())

	lines := h.logLines()
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "connection refused")

	// A settled view never changes state again.
	h.list, _ = h.list.Update(command.PlayersFailedMsg{Err: errors.New("again")})
	h.list, _ = h.list.Update(command.PlayersLoadedMsg{Players: player.Players{{ID: "9", Name: "Late"}}})
	require.Equal(t, component.PhaseErrored, h.list.Phase())
	require.Empty(t, h.items(t))
	require.Len(t, h.logLines(), 2, "late response is noted at warn level")
	require.Contains(t, h.logLines()[1], "level=WARN")
}

func TestPlayerListHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	h := newHarness(t, players.New(server.Client(), server.URL+"/api/players"))
	h.start()

	require.Equal(t, component.PhaseErrored, h.list.Phase())
	require.Empty(t, h.items(t))
	require.NotContains(t, h.view(), component.LoadingText)
	require.Len(t, h.logLines(), 1)
	require.Contains(t, h.logLines()[0], "network response was not ok")
}

func TestPlayerListHTTPSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Ann"},{"id":2,"name":"Bo"}]`))
	}))
	t.Cleanup(server.Close)

	h := newHarness(t, players.New(server.Client(), server.URL+"/api/players"))
	h.start()

	require.Equal(t, []string{"Ann", "Bo"}, h.items(t))
	require.NotContains(t, h.view(), component.LoadingText)
}

func TestPlayerListKeys(t *testing.T) {
	h := newHarness(t, &fakeSource{players: player.Players{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Bo"}, {ID: "x", Name: "Cy"}}})
	h.start()

	keys := h.list.Keys()
	require.Len(t, keys, 3)

	seen := map[string]bool{}
	for _, itemKey := range keys {
		require.False(t, seen[itemKey], itemKey)
		seen[itemKey] = true
	}

	require.True(t, strings.HasSuffix(keys[0], "player-1"))
	require.True(t, strings.HasSuffix(keys[2], "player-x"))
}

func TestPlayerListDuplicateKeys(t *testing.T) {
	h := newHarness(t, &fakeSource{players: player.Players{{ID: "1", Name: "Ann"}, {ID: "1", Name: "Ann again"}}})
	h.start()

	keys := h.list.Keys()
	require.Len(t, keys, 2)
	require.NotEqual(t, keys[0], keys[1])
	require.Equal(t, []string{"Ann", "Ann again"}, h.items(t))
	require.Contains(t, h.logs.String(), "Duplicate player id")
}

func TestPlayerListSingleFetch(t *testing.T) {
	source := &fakeSource{players: player.Players{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Bo"}}}
	h := newHarness(t, source)
	h.start()

	first := h.view()
	require.Nil(t, h.list.Init())
	require.Equal(t, first, h.view())

	var cmd tea.Cmd
	h.list, cmd = h.list.Update(tea.FocusMsg{})
	require.Nil(t, cmd)
	require.Equal(t, first, h.view())
	require.Equal(t, int32(1), source.calls.Load())
}

func TestPlayerListCursor(t *testing.T) {
	h := newHarness(t, &fakeSource{players: player.Players{{ID: "1", Name: "Ann"}, {ID: "2", Name: "Bo"}}})
	h.start()

	selected, ok := h.list.Selected()
	require.True(t, ok)
	require.Equal(t, "Ann", selected.Name)

	var cmd tea.Cmd
	h.list, cmd = h.list.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, cmd)
	require.Equal(t, command.SelectedPlayerMsg{Player: player.Player{ID: "2", Name: "Bo"}}, cmd())

	// Already at the bottom.
	h.list, cmd = h.list.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Nil(t, cmd)

	h.list, cmd = h.list.Update(tea.KeyMsg{Type: tea.KeyHome})
	require.NotNil(t, cmd)
	require.Equal(t, command.SelectedPlayerMsg{Player: player.Player{ID: "1", Name: "Ann"}}, cmd())
	require.Equal(t, []string{"Ann", "Bo"}, h.items(t))
}

func TestPlayerListViewport(t *testing.T) {
	roster := player.Players{}
	for _, name := range []string{"Ann", "Bo", "Cy", "Di", "Ed", "Flo"} {
		roster = append(roster, player.Player{ID: player.ID(name), Name: name})
	}

	h := newHarness(t, &fakeSource{players: roster})
	h.list, _ = h.list.Update(model.ViewState{Page: model.PageMain, Width: 40, Height: 6, Content: 5})
	h.start()

	// Three rows fit under the heading.
	require.Equal(t, []string{"Ann", "Bo", "Cy"}, h.items(t))

	h.list, _ = h.list.Update(tea.KeyMsg{Type: tea.KeyEnd})
	require.Equal(t, []string{"Di", "Ed", "Flo"}, h.items(t))
}

func TestPlayerListTruncatesNames(t *testing.T) {
	h := newHarness(t, &fakeSource{players: player.Players{{ID: "1", Name: "Bartholomew Montgomery-Smythe"}}})
	h.list, _ = h.list.Update(model.ViewState{Page: model.PageMain, Width: 12, Height: 10, Content: 10})
	h.start()

	items := h.items(t)
	require.Len(t, items, 1)
	require.True(t, strings.HasSuffix(items[0], "…"), items[0])
	require.Less(t, len([]rune(items[0])), len("Bartholomew Montgomery-Smythe"))
}
