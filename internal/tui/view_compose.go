package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/captionkit/internal/prompts"
)

const logo = `
  ___ __ _ _ __ | |_(_) ___  _ __ | | _(_) |_
 / __/ _' | '_ \| __| |/ _ \| '_ \| |/ / | __|
| (_| (_| | |_) | |_| | (_) | | | |   <| | |_
 \___\__,_| .__/ \__|_|\___/|_| |_|_|\_\_|\__|
          |_|
`

func (a *App) renderCompose() string {
	var b strings.Builder

	b.WriteString(a.center(styleLogo.Render(logo)))
	b.WriteString("\n")
	b.WriteString(a.center(styleSubtitle.Render(fmt.Sprintf("Bilingual captions, %s + English", a.state.config.Language))))
	b.WriteString("\n\n")

	width := a.boxWidth()

	// Image path
	b.WriteString(a.center(a.fieldBox(fieldImage, width, "Image", a.state.imageInput.View())))
	b.WriteString("\n")

	// Vibe and length selectors
	vibe := prompts.Vibes()[a.state.vibeIndex]
	length := prompts.Lengths()[a.state.lengthIndex]
	options := lipgloss.JoinHorizontal(lipgloss.Top,
		a.fieldBox(fieldVibe, width/2, "Vibe", "< "+vibe.Name+" >"),
		a.fieldBox(fieldLength, width-width/2, "Length", fmt.Sprintf("< %s (%d sentences) >", length.Name, length.Sentences)),
	)
	b.WriteString(a.center(options))
	b.WriteString("\n")

	b.WriteString(a.center(a.fieldBox(fieldInstructions, width, "Instructions", a.state.instructionInput.View())))
	b.WriteString("\n\n")

	if a.state.focus == fieldVibe {
		b.WriteString(a.center(styleSubtitle.Render(truncate(vibe.Description, width))))
		b.WriteString("\n\n")
	}

	b.WriteString(a.noticeLine())

	// Provider status
	var status string
	switch {
	case a.state.providerReady:
		status = lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("%s / %s", a.state.provider.Name(), a.state.config.Model))
	case a.state.providerError != nil:
		status = lipgloss.NewStyle().Foreground(colorError).Render(
			"Not connected: " + truncate(a.state.providerError.Error(), width-20))
	default:
		status = styleSubtitle.Render("Connecting...")
	}
	if a.state.config.Profile != "" {
		status += styleSubtitle.Render("  profile: " + a.state.config.Profile)
	}
	b.WriteString(a.center(status))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Tab] Next field  [Left/Right] Change  [Enter] Generate  [Ctrl+O] Settings  [Esc] Quit")))

	return a.centerVertically(b.String())
}

func (a *App) fieldBox(field, width int, label, content string) string {
	border := colorMuted
	if a.state.focus == field {
		border = colorPrimary
	}
	return styleBox.Copy().
		Width(width).
		BorderForeground(border).
		Render(styleLabel.Render(label) + "\n" + content)
}
