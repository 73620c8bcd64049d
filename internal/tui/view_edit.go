package tui

import (
	"strings"
)

func (a *App) renderEdit() string {
	var b strings.Builder

	b.WriteString(a.title("Edit your caption"))
	b.WriteString("\n\n")

	width := a.boxWidth()

	editorBorder, improveBorder := colorPrimary, colorMuted
	if a.state.editFocus == 1 {
		editorBorder, improveBorder = colorMuted, colorPrimary
	}

	editor := styleBox.Copy().
		Width(width).
		BorderForeground(editorBorder).
		Render(a.state.editor.View())
	b.WriteString(a.center(editor))
	b.WriteString("\n")

	improve := styleBox.Copy().
		Width(width).
		BorderForeground(improveBorder).
		Render(styleLabel.Render("Improvement instructions") + "\n" + a.state.improveInput.View())
	b.WriteString(a.center(improve))
	b.WriteString("\n\n")

	b.WriteString(a.noticeLine())
	b.WriteString(a.center(styleStatusBar.Render("[Tab] Switch  [Ctrl+E] Improve with AI  [Ctrl+D] Done  [Esc] Start over")))

	return a.centerVertically(b.String())
}
