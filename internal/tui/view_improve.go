package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderImprove() string {
	var b strings.Builder

	v := a.state.session.Snapshot()

	b.WriteString(a.title("Improved versions"))
	b.WriteString("\n")
	if v.UsedFallback {
		b.WriteString(a.center(noticeStyle(a.state.noticeKind).Render("The suggestions could not be read; these keep your current text.")))
	} else {
		b.WriteString(a.center(styleSubtitle.Render("Pick one to keep editing, or finish with it")))
	}
	b.WriteString("\n\n")

	width := a.boxWidth()
	for i, c := range v.Improved {
		border := colorMuted
		heading := styleLabel.Render(fmt.Sprintf("Version %s - %s", c.Version, c.Label))
		if i == v.Picked {
			border = colorPrimary
			heading = styleSelected.Render(fmt.Sprintf("> Version %s - %s", c.Version, c.Label))
		}

		body := c.Primary
		if c.Secondary != "" {
			body += "\n\n" + lipgloss.NewStyle().Foreground(colorMuted).Render(c.Secondary)
		}

		box := styleBox.Copy().
			Width(width).
			BorderForeground(border).
			Render(heading + "\n" + body)
		b.WriteString(a.center(box))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if !v.UsedFallback {
		b.WriteString(a.noticeLine())
	}
	b.WriteString(a.center(styleStatusBar.Render("[Up/Down] Pick  [Enter/c] Continue editing  [d] Done")))

	return a.centerVertically(b.String())
}
