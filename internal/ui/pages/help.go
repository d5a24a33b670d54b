package pages

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/roster-tui/internal/config"
	"github.com/leighmacdonald/roster-tui/internal/ui/command"
	"github.com/leighmacdonald/roster-tui/internal/ui/input"
	"github.com/leighmacdonald/roster-tui/internal/ui/model"
	"github.com/leighmacdonald/roster-tui/internal/ui/styles"
)

type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

func NewHelp(build BuildInfo, conf config.Config, configPath string, logPath string) Help {
	return Help{
		build:      build,
		apiBaseURL: conf.APIBaseURL,
		configPath: configPath,
		logPath:    logPath,
		helpView:   help.New(),
	}
}

type Help struct {
	helpView   help.Model
	viewState  model.ViewState
	build      BuildInfo
	apiBaseURL string
	configPath string
	logPath    string
}

func (m Help) Init() tea.Cmd {
	return nil
}

func (m Help) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.viewState.Page == model.PageHelp && key.Matches(msg, input.Default.Back) {
			return m, command.SetPage(model.PageMain)
		}
	case config.Config:
		m.apiBaseURL = msg.APIBaseURL
	case model.ViewState:
		m.viewState = msg
	}

	return m, nil
}

func (m Help) View() string {
	left := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.Up,
			input.Default.Down,
			input.Default.Top,
			input.Default.Bottom,
		},
	})

	right := m.helpView.FullHelpView([][]key.Binding{
		{
			input.Default.Accept,
			input.Default.Help,
			input.Default.Back,
			input.Default.Quit,
		},
	})

	helpContent := lipgloss.JoinHorizontal(lipgloss.Top, styles.HelpBox.Render(left), styles.HelpBox.Render(right))

	commit := m.build.Commit
	if len(commit) > 8 {
		commit = commit[0:8]
	}

	configPath := m.configPath
	if configPath == "" {
		configPath = "defaults"
	}

	content := lipgloss.JoinVertical(lipgloss.Center, helpContent,
		styles.DetailRow("Version", m.build.Version),
		styles.DetailRow("Commit", commit),
		styles.DetailRow("Date", m.build.Date),
		styles.DetailRow("API", m.apiBaseURL),
		styles.DetailRow("Config Path", configPath),
		styles.DetailRow("Log Path", m.logPath),
	)

	return lipgloss.Place(max(m.viewState.Width, lipgloss.Width(content)), max(m.viewState.Content, lipgloss.Height(content)),
		lipgloss.Center, lipgloss.Center, content)
}
