package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/captionkit/internal/generator"
)

// truncate shortens text to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// firstLine returns the first non-empty line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

var (
	// Colors
	colorPrimary   = lipgloss.Color("#EC4899")
	colorSecondary = lipgloss.Color("#F59E0B")
	colorSuccess   = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")

	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleSpinner = lipgloss.NewStyle().
			Foreground(colorSecondary)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)
)

func noticeStyle(kind generator.Kind) lipgloss.Style {
	switch kind {
	case generator.KindSuccess:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case generator.KindRetry:
		return lipgloss.NewStyle().Foreground(colorError)
	default:
		return lipgloss.NewStyle().Foreground(colorSecondary)
	}
}

// title renders a centered heading line.
func (a *App) title(text string) string {
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render(text))
}

func (a *App) center(s string) string {
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
}

// noticeLine renders the latest generator notice, if any.
func (a *App) noticeLine() string {
	if a.state.notice == "" {
		return ""
	}
	text := noticeStyle(a.state.noticeKind).Render(truncate(a.state.notice, max(20, a.width-6)))
	return a.center(text) + "\n\n"
}

func (a *App) boxWidth() int {
	return min(70, max(20, a.width-4))
}
