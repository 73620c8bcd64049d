package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type helpSection struct {
	name     string
	bindings []key.Binding
}

var helpSections = []helpSection{
	{"Compose", []key.Binding{keys.Tab, keys.Left, keys.Right, keys.Enter, keys.Settings}},
	{"Pick", []key.Binding{keys.Up, keys.Down, keys.Left, keys.Right, keys.Tab, keys.Regenerate, keys.New}},
	{"Edit", []key.Binding{keys.Improve, keys.Done}},
	{"Improved versions", []key.Binding{keys.Continue, keys.Done}},
	{"Anywhere", []key.Binding{keys.Quit}},
}

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.title("Help"))
	b.WriteString("\n\n")

	commands := []string{
		"  /help, /h      Show this help",
		"  /settings, /s  Open settings",
		"  /history       Recent captions",
		"  /quit, /q      Quit captionkit",
		"",
		"  Or drop an image path to write captions",
	}
	b.WriteString(a.center(styleBox.Copy().Width(56).Render(strings.Join(commands, "\n"))))
	b.WriteString("\n\n")

	var lines []string
	for _, section := range helpSections {
		lines = append(lines, styleLabel.Render(section.name))
		for _, binding := range section.bindings {
			h := binding.Help()
			lines = append(lines, fmt.Sprintf("  %-14s %s", h.Key, h.Desc))
		}
	}
	b.WriteString(a.center(styleBox.Copy().Width(56).Render(strings.Join(lines, "\n"))))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}
