package model

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/roster-tui/internal/ui/styles"
)

// Container draws content inside a titled border. Nothing is drawn until the terminal size is known.
func Container(title string, width int, height int, content string, active bool) string {
	if height <= 0 || width <= 0 {
		return ""
	}

	var base lipgloss.Style
	if active {
		base = styles.ContainerStyleActive
	} else {
		base = styles.ContainerStyle
	}

	return base.
		Border(styles.TitleBorder(styles.ContainerBorder, width, styles.ContainerTitle.Render(title))).
		Width(width).
		Height(height).
		Render(content)
}
