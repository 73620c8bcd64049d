package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/captionkit/internal/generator"
)

func (a *App) renderError() string {
	var b strings.Builder

	// Error icon and title
	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	// Error message
	errMsg := "Unknown error"
	if a.state.lastError != nil {
		errMsg = a.state.lastError.Error()
	} else if a.state.providerError != nil {
		errMsg = a.state.providerError.Error()
	}

	errBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(a.center(errBox))
	b.WriteString("\n\n")

	// Suggestions based on error type
	var suggestions []string
	errLower := strings.ToLower(errMsg)

	switch {
	case errors.Is(a.state.lastError, generator.ErrUnparseableOutput):
		suggestions = append(suggestions, "The model answered without usable captions")
		suggestions = append(suggestions, "Retry, or pick a stronger vision model in settings")
	case errors.Is(a.state.lastError, generator.ErrImage):
		suggestions = append(suggestions, "Use a JPEG, PNG, GIF or WebP under 20 MB")
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		suggestions = append(suggestions, "Check your API key in ~/.config/captionkit/config.yaml")
		suggestions = append(suggestions, "Or press [s] to open settings")
	case strings.Contains(errLower, "ollama"):
		suggestions = append(suggestions, "Make sure Ollama is running: ollama serve")
		suggestions = append(suggestions, "And that a vision model is pulled: ollama pull llava")
	case strings.Contains(errLower, "connection") || strings.Contains(errLower, "connect") || strings.Contains(errLower, "timeout"):
		suggestions = append(suggestions, "Check your internet connection")
		suggestions = append(suggestions, "Or try Ollama for offline captions")
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429"):
		suggestions = append(suggestions, "You've hit the API rate limit")
		suggestions = append(suggestions, "Wait a moment and try again")
	case strings.Contains(errLower, "does not support") || strings.Contains(errLower, "image_url"):
		suggestions = append(suggestions, "The selected model may not accept images")
		suggestions = append(suggestions, "Pick a vision model in settings")
	}

	if len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, a.width-4)).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(a.center(suggBox))
		b.WriteString("\n\n")
	}

	// Actions
	hint := "[s] Settings  [n] New  [Esc] Back"
	if a.state.retry != nil {
		hint = "[r] Retry  " + hint
	}
	status := styleStatusBar.Render(hint)
	b.WriteString(a.center(status))

	return a.centerVertically(b.String())
}
