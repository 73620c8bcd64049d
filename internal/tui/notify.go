package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/captionkit/internal/generator"
)

type notifyMsg struct{ generator.Event }

// programNotifier forwards generator events into the bubbletea loop. Events
// raised before a program is attached are dropped.
type programNotifier struct {
	mu      sync.Mutex
	program *tea.Program
}

func (n *programNotifier) attach(p *tea.Program) {
	n.mu.Lock()
	n.program = p
	n.mu.Unlock()
}

func (n *programNotifier) Notify(e generator.Event) {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()
	if p != nil {
		p.Send(notifyMsg{e})
	}
}
