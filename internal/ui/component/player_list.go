package component

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/roster-tui/internal/player"
	"github.com/leighmacdonald/roster-tui/internal/ui/command"
	"github.com/leighmacdonald/roster-tui/internal/ui/input"
	"github.com/leighmacdonald/roster-tui/internal/ui/model"
	"github.com/leighmacdonald/roster-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

const (
	ListTitle   = "Player List"
	LoadingText = "Loading players"

	// heading line plus its padding.
	listHeadingHeight = 2
	// cursor or bullet plus a space.
	listItemPrefixWidth = 2
)

// ListPhase is the lifecycle of a single PlayerListModel. Loaded and Errored are terminal.
type ListPhase int

const (
	PhaseInitial ListPhase = iota
	PhaseLoading
	PhaseLoaded
	PhaseErrored
)

func (p ListPhase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// onCreate is shared by every copy of a PlayerListModel so the fetch is only ever issued
// once per instance, no matter how many times Init gets called.
type onCreate struct {
	once    sync.Once
	started bool
}

// NewPlayerListModel creates the list view. Nothing is requested until Init is called.
func NewPlayerListModel(ctx context.Context, source command.PlayerSource, zones *zone.Manager, logger *slog.Logger) PlayerListModel {
	if logger == nil {
		logger = slog.Default()
	}

	return PlayerListModel{
		ctx:     ctx,
		source:  source,
		zones:   zones,
		zoneID:  zones.NewPrefix(),
		logger:  logger,
		created: &onCreate{},
		loading: true,
		players: player.Players{},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
	}
}

// PlayerListModel shows the players collection fetched once when the view is created.
type PlayerListModel struct {
	ctx       context.Context
	source    command.PlayerSource
	zones     *zone.Manager
	zoneID    string
	logger    *slog.Logger
	created   *onCreate
	loading   bool
	failed    bool
	players   player.Players
	keys      []string
	cursor    int
	spinner   spinner.Model
	viewport  viewport.Model
	ready     bool
	viewState model.ViewState
}

// Init is the on-create hook. The first call starts the players request, any later call is a no-op.
func (m PlayerListModel) Init() tea.Cmd {
	var fetch tea.Cmd
	m.created.once.Do(func() {
		m.created.started = true
		fetch = command.FetchPlayers(m.ctx, m.source)
	})

	if fetch == nil {
		return nil
	}

	return tea.Batch(m.spinner.Tick, fetch)
}

func (m PlayerListModel) Update(msg tea.Msg) (PlayerListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case model.ViewState:
		m.viewState = msg
		m.resize()
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case command.PlayersLoadedMsg:
		return m.onLoaded(msg.Players), nil
	case command.PlayersFailedMsg:
		return m.onFailed(msg.Err), nil
	case tea.KeyMsg:
		if m.viewState.Page != model.PageMain {
			return m, nil
		}

		switch {
		case key.Matches(msg, input.Default.Up):
			return m.moveCursor(m.cursor - 1)
		case key.Matches(msg, input.Default.Down):
			return m.moveCursor(m.cursor + 1)
		case key.Matches(msg, input.Default.Top):
			return m.moveCursor(0)
		case key.Matches(msg, input.Default.Bottom):
			return m.moveCursor(len(m.players) - 1)
		case key.Matches(msg, input.Default.Accept):
			if selected, ok := m.Selected(); ok {
				return m, command.SelectPlayer(selected)
			}
		}
	case tea.MouseMsg:
		return m.onMouse(msg)
	}

	return m, nil
}

func (m PlayerListModel) onLoaded(players player.Players) PlayerListModel {
	if !m.loading {
		m.logger.Warn("Ignoring players response, fetch already settled", slog.String("phase", m.Phase().String()))

		return m
	}

	if players == nil {
		players = player.Players{}
	}

	m.players = players
	m.keys = itemKeys(m.zoneID, players, m.logger)
	m.cursor = 0
	m.loading = false
	m.refresh()

	m.logger.Debug("Players loaded", slog.Int("count", len(players)))

	return m
}

func (m PlayerListModel) onFailed(err error) PlayerListModel {
	if !m.loading {
		return m
	}

	m.loading = false
	m.failed = true
	m.refresh()

	m.logger.Error("There has been a problem fetching players", slog.String("error", err.Error()))

	return m
}

func (m PlayerListModel) onMouse(msg tea.MouseMsg) (PlayerListModel, tea.Cmd) {
	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonWheelUp:
		return m.moveCursor(m.cursor - 1)
	case tea.MouseButtonWheelDown:
		return m.moveCursor(m.cursor + 1)
	default:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		for idx, itemKey := range m.keys {
			if m.zones.Get(itemKey).InBounds(msg) {
				m.cursor = idx
				m.refresh()

				return m, command.SelectPlayer(m.players[idx])
			}
		}
	}

	return m, nil
}

func (m PlayerListModel) moveCursor(index int) (PlayerListModel, tea.Cmd) {
	if m.loading || len(m.players) == 0 {
		return m, nil
	}

	index = max(0, min(index, len(m.players)-1))
	if index == m.cursor {
		return m, nil
	}

	m.cursor = index
	m.refresh()

	return m, command.SelectPlayer(m.players[index])
}

func (m *PlayerListModel) resize() {
	height := max(1, m.viewState.Content-listHeadingHeight)
	if !m.ready {
		m.viewport = viewport.New(m.viewState.Width, height)
		m.ready = true
	} else {
		m.viewport.Width = m.viewState.Width
		m.viewport.Height = height
	}

	m.refresh()
}

// refresh rebuilds the viewport content and keeps the cursor row visible.
func (m *PlayerListModel) refresh() {
	if !m.ready {
		return
	}

	m.viewport.SetContent(strings.Join(m.renderItems(), "\n"))

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m PlayerListModel) renderItems() []string {
	width := m.viewState.Width - listItemPrefixWidth
	items := make([]string, len(m.players))

	for idx, current := range m.players {
		name := current.Name
		if width > 0 {
			name = truncate.StringWithTail(name, uint(width), "…")
		}

		var row string
		if idx == m.cursor {
			row = styles.ListSelectedRow.Render(styles.IconCursor + " " + name)
		} else {
			row = styles.ListUnselectedRow.Render(styles.IconBullet + " " + name)
		}

		items[idx] = m.zones.Mark(m.keys[idx], row)
	}

	return items
}

// View renders either the loading indicator alone, or the heading followed by one row per player
// in response order. It has no side effects so repeated renders of the same state are identical.
func (m PlayerListModel) View() string {
	if m.loading {
		return lipgloss.JoinHorizontal(lipgloss.Top, m.spinner.View(), styles.LoadingMessage.Render(LoadingText))
	}

	var body string
	if m.ready {
		body = m.viewport.View()
	} else {
		body = strings.Join(m.renderItems(), "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, styles.ListHeading.Render(ListTitle), body)
}

// Phase reports where the single fetch is in its lifecycle.
func (m PlayerListModel) Phase() ListPhase {
	switch {
	case m.loading && !m.created.started:
		return PhaseInitial
	case m.loading:
		return PhaseLoading
	case m.failed:
		return PhaseErrored
	default:
		return PhaseLoaded
	}
}

func (m PlayerListModel) Loading() bool {
	return m.loading
}

func (m PlayerListModel) Players() player.Players {
	return m.players
}

// Keys returns the render key of each row, in row order.
func (m PlayerListModel) Keys() []string {
	return m.keys
}

// Selected returns the player under the cursor, if any.
func (m PlayerListModel) Selected() (player.Player, bool) {
	if m.loading || m.cursor >= len(m.players) {
		return player.Player{}, false
	}

	return m.players[m.cursor], true
}

// itemKeys derives a render key for every player from its id. Ids are expected to be unique, when
// they are not the later duplicates get an ordinal suffix so rows can still be told apart.
func itemKeys(prefix string, players player.Players, logger *slog.Logger) []string {
	keys := make([]string, len(players))
	seen := make(map[string]bool, len(players))

	for idx, current := range players {
		base := prefix + "player-" + current.ID.String()
		itemKey := base
		for n := 2; seen[itemKey]; n++ {
			itemKey = fmt.Sprintf("%s#%d", base, n)
		}

		if itemKey != base {
			logger.Warn("Duplicate player id in response", slog.String("id", current.ID.String()))
		}

		seen[itemKey] = true
		keys[idx] = itemKey
	}

	return keys
}
