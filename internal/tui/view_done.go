package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/captionkit/internal/caption"
)

func (a *App) renderDone() string {
	var b strings.Builder

	b.WriteString(a.title("Your caption"))
	b.WriteString("\n\n")

	text := a.state.session.Snapshot().FinalText
	box := styleBox.Copy().
		Width(a.boxWidth()).
		BorderForeground(colorSuccess).
		Render(text)
	b.WriteString(a.center(box))
	b.WriteString("\n\n")

	if rec := a.state.record; rec != nil {
		meta := fmt.Sprintf("%s / %s / %s  %s", rec.Style, rec.LengthKey, rec.Language, rec.CreatedAt.Format("2006-01-02 15:04"))
		b.WriteString(a.center(styleSubtitle.Render(meta)))
		b.WriteString("\n\n")
	}

	b.WriteString(a.noticeLine())
	b.WriteString(a.center(styleStatusBar.Render("[c] Copy  [n] New image  [h] History  [Esc] Quit")))

	return a.centerVertically(b.String())
}

func (a *App) renderHistory() string {
	var b strings.Builder

	b.WriteString(a.title("History"))
	b.WriteString("\n\n")

	width := a.boxWidth()
	if len(a.state.history) == 0 {
		empty := styleBox.Copy().
			Width(width).
			Foreground(colorMuted).
			Render("No captions saved yet.")
		b.WriteString(a.center(empty))
	} else {
		var lines []string
		for _, rec := range a.state.history {
			when := lipgloss.NewStyle().Foreground(colorSecondary).Render(rec.CreatedAt.Format("Jan 02 15:04"))
			tags := lipgloss.NewStyle().Foreground(colorMuted).Render(fmt.Sprintf("%2d tags", len(caption.Hashtags(rec.FinalText))))
			lines = append(lines, fmt.Sprintf("%s  %s  %s", when, tags, truncate(firstLine(rec.FinalText), width-25)))
		}
		list := styleBox.Copy().
			Width(width).
			BorderForeground(colorPrimary).
			Render(strings.Join(lines, "\n"))
		b.WriteString(a.center(list))
	}
	b.WriteString("\n\n")

	b.WriteString(a.noticeLine())
	b.WriteString(a.center(styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}
