package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	ContainerTitle       = lipgloss.NewStyle().Bold(true)
	ContainerBorder      = lipgloss.DoubleBorder()
	ContainerStyle       = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Gray)
	ContainerStyleActive = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Blue)

	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Left)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)

	Black  = lipgloss.Color("#111111")
	Gray   = lipgloss.Color("#3e3e3e")
	White  = lipgloss.Color("#cccccc")
	Red    = lipgloss.Color("#B8383B")
	Blue   = lipgloss.Color("#5885A2")
	Green  = lipgloss.Color("#4d7455")
	Gold   = lipgloss.Color("#ffd700")
	Purple = lipgloss.Color("#8650ac")

	// Player list.
	ListHeading       = lipgloss.NewStyle().Foreground(Accent).Bold(true).PaddingBottom(1)
	ListSelectedRow   = lipgloss.NewStyle().Padding(0).Bold(true).Foreground(Blue).Inline(true)
	ListUnselectedRow = lipgloss.NewStyle().Padding(0).Bold(false).Foreground(White).Inline(true)
	Spinner           = lipgloss.NewStyle().Foreground(Accent)
	LoadingMessage    = lipgloss.NewStyle().Foreground(Gray).PaddingLeft(1)

	PanelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(16)
	PanelValue = lipgloss.NewStyle().Width(60)

	StatusError    = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage  = lipgloss.NewStyle().Foreground(Green).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusCount    = lipgloss.NewStyle().Foreground(Gold).Bold(true).PaddingRight(2).PaddingLeft(1)
	StatusSelected = lipgloss.NewStyle().Foreground(Purple).Bold(true).PaddingRight(2).PaddingLeft(1)
	StatusHelp     = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center).PaddingRight(2)
	StatusVersion  = lipgloss.NewStyle().Foreground(Green).Bold(true).Align(lipgloss.Center).PaddingRight(2)

	HelpBox = lipgloss.NewStyle().Padding(3)

	IconPlayers = "👥"
	IconCursor  = "›"
	IconBullet  = "•"
)

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}

// TitleBorder centres title in the top edge of border, padding with the border character up to width.
func TitleBorder(border lipgloss.Border, width int, title string) lipgloss.Border {
	title = "║" + title + "║"
	if fill := width - lipgloss.Width(title); fill > 0 {
		title = strings.Repeat(border.Top, fill/2) + title + strings.Repeat(border.Top, fill-fill/2)
	}

	border.Top = title

	return border
}
