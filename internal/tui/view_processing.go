package tui

import (
	"fmt"
	"strings"

	"github.com/sant0-9/captionkit/internal/generator"
)

func (a *App) renderProcessing() string {
	var b strings.Builder

	op := generator.OpGenerate
	if a.state.retry != nil {
		op = a.state.retry.op
	}

	var heading string
	switch op {
	case generator.OpImprove:
		heading = "Improving your caption"
	case generator.OpFinish:
		heading = "Saving"
	default:
		heading = "Writing captions"
	}
	b.WriteString(a.title(heading))
	b.WriteString("\n\n")

	// Image info
	if img := a.state.image; img != nil && op == generator.OpGenerate {
		info := fmt.Sprintf("%s  %s  %s", truncate(img.Metadata.Name, 40), img.Metadata.Dimensions(), img.Metadata.SizeHuman())
		b.WriteString(a.center(styleSubtitle.Render(info)))
		b.WriteString("\n\n")
	}

	if a.state.session != nil {
		p := a.state.session.Params()
		line := fmt.Sprintf("%s / %s / %s", p.Vibe, p.Length, p.Language)
		if p.Instructions != "" {
			line += "  > " + truncate(p.Instructions, 40)
		}
		b.WriteString(a.center(styleSubtitle.Render(line)))
		b.WriteString("\n\n")
	}

	spin := styleBox.Copy().
		Width(min(40, a.boxWidth())).
		BorderForeground(colorSecondary).
		Render(a.state.spinner.View() + " waiting for " + a.providerName())
	b.WriteString(a.center(spin))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Esc] Cancel")))

	return a.centerVertically(b.String())
}

func (a *App) providerName() string {
	if a.state.provider == nil {
		return "the model"
	}
	return a.state.provider.Name()
}
