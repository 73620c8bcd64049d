package generator

// Kind classifies what the user should be told.
type Kind int

const (
	// KindSuccess means the session advanced.
	KindSuccess Kind = iota
	// KindRetry is a recoverable failure; the session did not move.
	KindRetry
	// KindInfo is informational, e.g. a fallback was used.
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindRetry:
		return "retry"
	case KindInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Op names the orchestrator call an event belongs to.
type Op string

const (
	OpGenerate Op = "generate"
	OpImprove  Op = "improve"
	OpFinish   Op = "finish"
)

// Event is one notification for the UI.
type Event struct {
	Kind      Kind
	Op        Op
	SessionID string
	Message   string
	Err       error
}

// Notifier receives events. Implementations must not block for long; the TUI
// forwards them into its program loop.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) {
	f(e)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}
