package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/captionkit/internal/config"
	"github.com/sant0-9/captionkit/internal/generator"
	"github.com/sant0-9/captionkit/internal/prompts"
)

func (a *App) openSettings() {
	a.state.settingsMode = ""
	a.state.settingsSelected = 0
	a.state.notice = ""
	a.state.imageInput.Blur()
	a.state.instructionInput.Blur()
	a.view = viewSettings
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	cfg := a.state.config

	switch a.state.settingsMode {
	case "provider":
		switch {
		case key.Matches(msg, keys.Quit):
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Up):
			a.state.settingsSelected = max(0, a.state.settingsSelected-1)
		case key.Matches(msg, keys.Down):
			a.state.settingsSelected = min(len(config.Providers)-1, a.state.settingsSelected+1)
		case key.Matches(msg, keys.Enter):
			p := config.Providers[a.state.settingsSelected]
			if cfg.Provider != p.ID {
				cfg.Provider = p.ID
				cfg.Model = p.DefaultModel
				cfg.APIKey = ""
			}
			if p.NeedsAPIKey && cfg.APIKey == "" {
				a.state.settingsMode = "apikey"
				a.state.apiKeyInput.Reset()
				return a.state.apiKeyInput.Focus(), true
			}
			a.state.settingsMode = ""
			return a.saveSettings(), true
		}
		return nil, true

	case "model":
		provider := config.GetProvider(cfg.Provider)
		if provider == nil || len(provider.Models) == 0 {
			a.state.settingsMode = ""
			return nil, true
		}
		switch {
		case key.Matches(msg, keys.Quit):
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Up):
			a.state.settingsSelected = max(0, a.state.settingsSelected-1)
		case key.Matches(msg, keys.Down):
			a.state.settingsSelected = min(len(provider.Models)-1, a.state.settingsSelected+1)
		case key.Matches(msg, keys.Enter):
			cfg.Model = provider.Models[a.state.settingsSelected]
			a.state.settingsMode = ""
			return a.saveSettings(), true
		}
		return nil, true

	case "apikey":
		switch {
		case key.Matches(msg, keys.Quit):
			a.state.settingsMode = ""
			a.state.apiKeyInput.Blur()
			return nil, true
		case key.Matches(msg, keys.Enter):
			cfg.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Reset()
			a.state.apiKeyInput.Blur()
			a.state.settingsMode = ""
			return a.saveSettings(), true
		}
		return nil, false
	}

	switch msg.String() {
	case "esc":
		a.toCompose()
		return textinput.Blink, true
	case "p":
		a.state.settingsMode = "provider"
		a.state.settingsSelected = 0
	case "m":
		a.state.settingsMode = "model"
		a.state.settingsSelected = 0
	case "k":
		a.state.settingsMode = "apikey"
		a.state.apiKeyInput.Reset()
		return a.state.apiKeyInput.Focus(), true
	case "v":
		vibes := prompts.Vibes()
		a.state.vibeIndex = (indexOfVibe(cfg.Vibe) + 1) % len(vibes)
		cfg.Vibe = vibes[a.state.vibeIndex].Key
		return a.saveSettings(), true
	case "l":
		lengths := prompts.Lengths()
		a.state.lengthIndex = (indexOfLength(cfg.Length) + 1) % len(lengths)
		cfg.Length = lengths[a.state.lengthIndex].Key
		return a.saveSettings(), true
	case "r":
		a.state.needsSetup = true
		a.state.setupStep = 0
		a.state.selectedProvider = 0
		a.state.providerReady = false
		a.view = viewSetup
	}
	return nil, true
}

// saveSettings persists the config and reconnects with it.
func (a *App) saveSettings() tea.Cmd {
	if err := a.state.config.Save(); err != nil {
		a.setNotice(generator.KindRetry, "Could not save settings: "+err.Error())
		return nil
	}
	a.setNotice(generator.KindSuccess, "Settings saved")
	a.state.providerReady = false
	a.state.providerError = nil
	return a.testProvider()
}
