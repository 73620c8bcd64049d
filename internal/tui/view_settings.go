package tui

import (
	"fmt"
	"strings"

	"github.com/sant0-9/captionkit/internal/config"
)

func (a *App) renderSettings() string {
	var b strings.Builder
	cfg := a.state.config

	switch a.state.settingsMode {
	case "provider":
		b.WriteString(a.title("Select Provider"))
		b.WriteString("\n\n")
		items := make([]string, len(config.Providers))
		for i, p := range config.Providers {
			items[i] = p.Name
			if p.ID == cfg.Provider {
				items[i] += " (current)"
			}
		}
		b.WriteString(a.center(listBox(items, a.state.settingsSelected, 50)))
		b.WriteString("\n\n")
		b.WriteString(a.center(styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")))

	case "model":
		b.WriteString(a.title("Select Model"))
		b.WriteString("\n\n")
		provider := config.GetProvider(cfg.Provider)
		if provider == nil {
			b.WriteString(a.center(styleSubtitle.Render("No provider selected")))
			break
		}
		b.WriteString(a.center(styleSubtitle.Render("Provider: " + provider.Name)))
		b.WriteString("\n\n")
		items := make([]string, len(provider.Models))
		for i, m := range provider.Models {
			items[i] = m
			if m == cfg.Model {
				items[i] += " (current)"
			}
		}
		b.WriteString(a.center(listBox(items, a.state.settingsSelected, 50)))
		b.WriteString("\n\n")
		b.WriteString(a.center(styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")))

	case "apikey":
		b.WriteString(a.title("Update API Key"))
		b.WriteString("\n\n")
		b.WriteString(a.center(styleSubtitle.Render("Enter your new API key")))
		b.WriteString("\n\n")
		input := styleBox.Copy().
			Width(50).
			BorderForeground(colorPrimary).
			Render(a.state.apiKeyInput.View())
		b.WriteString(a.center(input))
		b.WriteString("\n\n")
		b.WriteString(a.center(styleStatusBar.Render("[Enter] Save  [Esc] Cancel")))

	default:
		a.writeSettingsSummary(&b)
	}

	return a.centerVertically(b.String())
}

func (a *App) writeSettingsSummary(b *strings.Builder) {
	cfg := a.state.config

	b.WriteString(a.title("Settings"))
	b.WriteString("\n\n")

	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}
	profileName := cfg.Profile
	if profileName == "" {
		profileName = "none"
	}

	lines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", cfg.Model),
		fmt.Sprintf("  API Key:  %s", maskKey(cfg.APIKey)),
		"",
		fmt.Sprintf("  Language: %s + English", cfg.Language),
		fmt.Sprintf("  Vibe:     %s", cfg.Vibe),
		fmt.Sprintf("  Length:   %s", cfg.Length),
		fmt.Sprintf("  Profile:  %s", profileName),
		fmt.Sprintf("  History:  %s", cfg.History.Driver),
	}
	b.WriteString(a.center(styleBox.Copy().Width(50).Render(strings.Join(lines, "\n"))))
	b.WriteString("\n\n")

	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [v] Next default vibe",
		"  [l] Next default length",
		"  [r] Reset setup",
	}
	b.WriteString(a.center(styleBox.Copy().Width(50).Render(strings.Join(actions, "\n"))))
	b.WriteString("\n\n")

	b.WriteString(a.noticeLine())
	b.WriteString(a.center(styleStatusBar.Render("[Esc] Back")))
}

func maskKey(k string) string {
	switch {
	case k == "":
		return "Not set"
	case len(k) > 8:
		return k[:4] + "****" + k[len(k)-4:]
	default:
		return "****"
	}
}
