package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/captionkit/internal/config"
)

func (a *App) renderSetup() string {
	var b strings.Builder

	b.WriteString(a.center(styleLogo.Render(logo)))
	b.WriteString("\n\n")

	switch a.state.setupStep {
	case 0:
		b.WriteString(a.center(lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render("Welcome! Choose a vision model provider:")))
		b.WriteString("\n\n")

		items := make([]string, len(config.Providers))
		for i, p := range config.Providers {
			items[i] = fmt.Sprintf("%-12s %s", p.Name, p.Description)
		}
		b.WriteString(a.center(listBox(items, a.state.selectedProvider, 60)))
		b.WriteString("\n\n")
		b.WriteString(a.center(styleStatusBar.Render("[j/k] Navigate  [Enter] Select  [Esc] Quit")))

	case 1:
		provider := config.GetProvider(a.state.config.Provider)
		name := a.state.config.Provider
		if provider != nil {
			name = provider.Name
		}
		b.WriteString(a.center(lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Render(fmt.Sprintf("Enter your %s API key:", name))))
		b.WriteString("\n\n")

		if provider != nil && provider.SignupURL != "" {
			b.WriteString(a.center(styleSubtitle.Render("Get one at: " + provider.SignupURL)))
			b.WriteString("\n")
		}
		b.WriteString(a.center(styleSubtitle.Render("It can also come from $" + config.EnvAPIKey)))
		b.WriteString("\n\n")

		input := styleBox.Copy().
			Width(60).
			BorderForeground(colorSecondary).
			Render(a.state.apiKeyInput.View())
		b.WriteString(a.center(input))
		b.WriteString("\n\n")
		b.WriteString(a.center(styleStatusBar.Render("[Enter] Continue  [Esc] Back")))
	}

	return a.centerVertically(b.String())
}

// listBox renders a cursor list inside a box.
func listBox(items []string, selected, width int) string {
	lines := make([]string, len(items))
	for i, item := range items {
		if i == selected {
			lines[i] = styleSelected.Render("> " + item)
		} else {
			lines[i] = styleSubtitle.Render("  " + item)
		}
	}
	return styleBox.Copy().
		Width(width).
		Render(strings.Join(lines, "\n"))
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
