package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/captionkit/internal/caption"
)

func (a *App) renderSelect() string {
	var b strings.Builder

	v := a.state.session.Snapshot()

	b.WriteString(a.title("Pick your favorite"))
	b.WriteString("\n")
	b.WriteString(a.center(styleSubtitle.Render(fmt.Sprintf("%d options  %s / %s", len(v.Candidates), v.Params.Vibe, v.Params.Length))))
	b.WriteString("\n\n")

	width := a.boxWidth()
	for i, c := range v.Candidates {
		border := colorMuted
		heading := styleLabel.Render(fmt.Sprintf("Caption %d", i+1))
		if i == v.Highlighted {
			border = colorPrimary
			heading = styleSelected.Render(fmt.Sprintf("> Caption %d", i+1))
		}

		body := c.Primary
		if c.Secondary != "" {
			body += "\n\n" + lipgloss.NewStyle().Foreground(colorMuted).Render(c.Secondary)
		}
		tags := lipgloss.NewStyle().Foreground(colorSecondary).Render(tagCount(c.Primary, c.Secondary))

		box := styleBox.Copy().
			Width(width).
			BorderForeground(border).
			Render(heading + "  " + tags + "\n" + body)
		b.WriteString(a.center(box))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(a.noticeLine())
	b.WriteString(a.center(styleStatusBar.Render("[Up/Down] Move  [Enter] Select  [Left/Right] Vibe  [Tab] Length  [r] Regenerate  [n] New  [Esc] Back")))

	return a.centerVertically(b.String())
}

// tagCount summarizes the hashtags per language, e.g. "6 + 5 tags".
func tagCount(primary, secondary string) string {
	return fmt.Sprintf("%d + %d tags", len(caption.Hashtags(primary)), len(caption.Hashtags(secondary)))
}
