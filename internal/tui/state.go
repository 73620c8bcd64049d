package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sant0-9/captionkit/internal/config"
	"github.com/sant0-9/captionkit/internal/generator"
	"github.com/sant0-9/captionkit/internal/llm"
	"github.com/sant0-9/captionkit/internal/media"
	"github.com/sant0-9/captionkit/internal/session"
	"github.com/sant0-9/captionkit/internal/store"
)

// compose form fields, in tab order
const (
	fieldImage = iota
	fieldVibe
	fieldLength
	fieldInstructions
	fieldCount
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Compose form
	focus            int
	imageInput       textinput.Model
	instructionInput textinput.Model
	vibeIndex        int
	lengthIndex      int
	image            *media.Image

	// Current session; replaced for every new image
	session   *session.Session
	cancel    context.CancelFunc
	spinner   spinner.Model
	returnTo  view
	retry     *pendingCall
	lastError error

	// Editing
	editor       textarea.Model
	improveInput textinput.Model
	editFocus    int

	// Finished
	record *store.Record

	// Notices from the generator
	notice     string
	noticeKind generator.Kind

	// Settings
	settingsMode     string
	settingsSelected int

	// History
	history []store.Record

	// Provider
	provider      llm.Provider
	generator     *generator.Generator
	providerReady bool
	providerError error
}

func newState() *state {
	imageInput := textinput.New()
	imageInput.Placeholder = "Drop an image or type its path..."
	imageInput.CharLimit = 1024
	imageInput.Width = 60

	instructions := textinput.New()
	instructions.Placeholder = "Optional: anything the caption should mention"
	instructions.CharLimit = 500
	instructions.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	editor := textarea.New()
	editor.Placeholder = "Your caption"
	editor.ShowLineNumbers = false
	editor.CharLimit = 5000
	editor.SetWidth(70)
	editor.SetHeight(8)

	improve := textinput.New()
	improve.Placeholder = "What should the AI change? (optional)"
	improve.CharLimit = 300
	improve.Width = 66

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpinner

	return &state{
		imageInput:       imageInput,
		instructionInput: instructions,
		apiKeyInput:      apiKey,
		editor:           editor,
		improveInput:     improve,
		spinner:          sp,
	}
}

// pendingCall is a generator call bound to its session, ready to retry.
type pendingCall struct {
	op  generator.Op
	run func(ctx context.Context) callDoneMsg
}
