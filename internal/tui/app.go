package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/captionkit/internal/config"
	"github.com/sant0-9/captionkit/internal/generator"
	"github.com/sant0-9/captionkit/internal/llm"
	"github.com/sant0-9/captionkit/internal/logger"
	"github.com/sant0-9/captionkit/internal/media"
	"github.com/sant0-9/captionkit/internal/profile"
	"github.com/sant0-9/captionkit/internal/prompts"
	"github.com/sant0-9/captionkit/internal/session"
	"github.com/sant0-9/captionkit/internal/store"
)

type view int

const (
	viewCompose view = iota
	viewSetup
	viewProcessing
	viewSelect
	viewEdit
	viewImprove
	viewDone
	viewError
	viewSettings
	viewHelp
	viewHistory
)

// Deps are the collaborators the TUI drives. A nil Config starts the setup
// wizard.
type Deps struct {
	Config   *config.Config
	Logger   logger.Logger
	Store    store.Store
	Profiles profile.Lookup
}

type App struct {
	width    int
	height   int
	view     view
	state    *state
	deps     Deps
	notifier *programNotifier
	quitting bool
}

func NewApp(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Store == nil {
		deps.Store = store.Nop{}
	}

	s := newState()
	if deps.Config == nil {
		s.needsSetup = true
		s.config = config.DefaultConfig()
	} else {
		s.config = deps.Config
	}
	s.vibeIndex = indexOfVibe(s.config.Vibe)
	s.lengthIndex = indexOfLength(s.config.Length)

	return &App{
		view:     viewCompose,
		state:    s,
		deps:     deps,
		notifier: &programNotifier{},
	}
}

// SetProgram lets generator notifications reach the running program.
func (a *App) SetProgram(p *tea.Program) {
	a.notifier.attach(p)
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	a.state.imageInput.Focus()
	return tea.Batch(
		tea.WindowSize(),
		textinput.Blink,
		a.testProvider(),
	)
}

func (a *App) testProvider() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		provider, err := llm.NewProvider(&cfg)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}

		return providerReadyMsg{provider}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.state.editor.SetWidth(min(70, max(20, msg.Width-8)))

	case spinner.TickMsg:
		if a.view != viewProcessing {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.toCompose()
		return a, tea.Batch(textinput.Blink, a.testProvider())

	case setupErrorMsg:
		a.state.lastError = msg.error
		a.state.retry = nil
		a.state.returnTo = viewSetup
		a.view = viewError
		return a, nil

	case providerReadyMsg:
		a.useProvider(msg.provider)
		return a, nil

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.providerError = msg.error
		a.deps.Logger.Warn("tui", "provider not reachable", map[string]any{"error": msg.Error()})
		return a, nil

	case imageCheckedMsg:
		if msg.err != nil {
			a.setNotice(generator.KindRetry, msg.err.Error())
			return a, nil
		}
		a.state.image = msg.image
		return a, a.startSession()

	case callDoneMsg:
		return a, a.handleCallDone(msg)

	case notifyMsg:
		if a.state.session != nil && msg.SessionID == a.state.session.ID() {
			a.setNotice(msg.Kind, msg.Message)
		}
		return a, nil

	case historyLoadedMsg:
		if msg.err != nil {
			a.setNotice(generator.KindRetry, msg.err.Error())
		}
		a.state.history = msg.records
		return a, nil
	}

	// Forward to whichever text widget has focus
	switch {
	case a.view == viewSetup && a.state.setupStep == 1,
		a.view == viewSettings && a.state.settingsMode == "apikey":
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewCompose && a.state.focus == fieldImage:
		var cmd tea.Cmd
		a.state.imageInput, cmd = a.state.imageInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewCompose && a.state.focus == fieldInstructions:
		var cmd tea.Cmd
		a.state.instructionInput, cmd = a.state.instructionInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewEdit && a.state.editFocus == 0:
		var cmd tea.Cmd
		a.state.editor, cmd = a.state.editor.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewEdit && a.state.editFocus == 1:
		var cmd tea.Cmd
		a.state.improveInput, cmd = a.state.improveInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) quit() tea.Cmd {
	if a.state.cancel != nil {
		a.state.cancel()
	}
	a.quitting = true
	return tea.Quit
}

// handleKey reports handled=false when the key should reach the focused
// text widget instead.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg), true
	case viewCompose:
		return a.handleComposeKey(msg)
	case viewProcessing:
		if key.Matches(msg, keys.Quit) && a.state.cancel != nil {
			a.state.cancel()
		}
		return nil, true
	case viewSelect:
		return a.handleSelectKey(msg), true
	case viewEdit:
		return a.handleEditKey(msg)
	case viewImprove:
		return a.handleImproveKey(msg), true
	case viewDone:
		return a.handleDoneKey(msg), true
	case viewError:
		return a.handleErrorKey(msg), true
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp, viewHistory:
		if key.Matches(msg, keys.Quit) || key.Matches(msg, keys.Enter) {
			a.toCompose()
		}
		return nil, true
	}
	return nil, false
}

func (a *App) handleComposeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a.quit(), true

	case key.Matches(msg, keys.Settings):
		a.openSettings()
		return nil, true

	case key.Matches(msg, keys.Tab), msg.String() == "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = fieldCount - 1
		}
		a.setComposeFocus((a.state.focus + step) % fieldCount)
		return textinput.Blink, true

	case key.Matches(msg, keys.Enter):
		return a.handleComposeSubmit(), true
	}

	if a.state.focus == fieldVibe || a.state.focus == fieldLength {
		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Up):
			a.cycleOption(-1)
		case key.Matches(msg, keys.Right), key.Matches(msg, keys.Down):
			a.cycleOption(1)
		case key.Matches(msg, keys.Help):
			a.view = viewHelp
		}
		return nil, true
	}

	return nil, false
}

func (a *App) handleComposeSubmit() tea.Cmd {
	input := strings.TrimSpace(a.state.imageInput.Value())

	// Slash commands; anything else starting with "/" is a path
	switch strings.ToLower(input) {
	case "/help", "/h":
		a.state.imageInput.Reset()
		a.view = viewHelp
		return nil
	case "/settings", "/s":
		a.state.imageInput.Reset()
		a.openSettings()
		return nil
	case "/history":
		a.state.imageInput.Reset()
		a.view = viewHistory
		return a.loadHistory()
	case "/quit", "/q":
		return a.quit()
	}

	if !a.state.providerReady {
		a.setNotice(generator.KindRetry, "No caption service connected yet. Check settings (ctrl+o).")
		return nil
	}
	if input == "" && strings.TrimSpace(a.state.instructionInput.Value()) == "" {
		a.setNotice(generator.KindInfo, "Add an image path or some instructions first.")
		return nil
	}
	if input == "" {
		a.state.image = nil
		return a.startSession()
	}
	return checkImage(input)
}

func (a *App) handleSelectKey(msg tea.KeyMsg) tea.Cmd {
	sess := a.state.session
	v := sess.Snapshot()

	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.New):
		a.toCompose()
		return textinput.Blink
	case key.Matches(msg, keys.Up):
		sess.Highlight(max(0, v.Highlighted-1))
	case key.Matches(msg, keys.Down):
		sess.Highlight(min(len(v.Candidates)-1, v.Highlighted+1))
	case msg.String() >= "1" && msg.String() <= "3":
		sess.Highlight(int(msg.String()[0] - '1'))
	case key.Matches(msg, keys.Enter):
		if sess.SelectFavorite(v.Highlighted) {
			return a.toEdit()
		}
	case key.Matches(msg, keys.Left):
		a.retune(sess, -1, 0)
	case key.Matches(msg, keys.Right):
		a.retune(sess, 1, 0)
	case key.Matches(msg, keys.Tab):
		a.retune(sess, 0, 1)
	case key.Matches(msg, keys.Regenerate):
		return a.startCall(a.generateCall(sess, true), viewSelect)
	case key.Matches(msg, keys.Help):
		a.view = viewHelp
	}
	return nil
}

// retune steps the session's vibe and length ahead of a regenerate. The
// compose pickers follow so the next image starts from the same choice.
func (a *App) retune(sess *session.Session, vibeStep, lengthStep int) {
	vibes, lengths := prompts.Vibes(), prompts.Lengths()
	p := sess.Params()
	vi := (indexOfVibe(p.Vibe) + vibeStep + len(vibes)) % len(vibes)
	li := (indexOfLength(p.Length) + lengthStep + len(lengths)) % len(lengths)
	p.Vibe, p.Length = vibes[vi].Key, lengths[li].Key

	if !sess.SetParams(p) {
		return
	}
	a.state.vibeIndex, a.state.lengthIndex = vi, li
	a.setNotice(generator.KindInfo, vibes[vi].Name+" / "+lengths[li].Name+". Press [r] to regenerate.")
}

func (a *App) handleEditKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	sess := a.state.session

	switch {
	case key.Matches(msg, keys.Quit):
		a.toCompose()
		return textinput.Blink, true

	case key.Matches(msg, keys.Tab):
		a.state.editFocus = 1 - a.state.editFocus
		if a.state.editFocus == 0 {
			a.state.improveInput.Blur()
			return a.state.editor.Focus(), true
		}
		a.state.editor.Blur()
		return a.state.improveInput.Focus(), true

	case key.Matches(msg, keys.Improve):
		sess.Edit(a.state.editor.Value())
		if !sess.CanImprove() {
			a.setNotice(generator.KindInfo, "Write something first; there is nothing to improve.")
			return nil, true
		}
		return a.startCall(a.improveCall(sess, a.state.improveInput.Value()), viewEdit), true

	case key.Matches(msg, keys.Done):
		sess.Edit(a.state.editor.Value())
		return a.startCall(a.finishCall(sess), viewEdit), true
	}

	return nil, false
}

func (a *App) handleImproveKey(msg tea.KeyMsg) tea.Cmd {
	sess := a.state.session
	v := sess.Snapshot()
	picked := max(0, v.Picked)

	switch {
	case key.Matches(msg, keys.Up):
		if v.Picked < 0 {
			sess.PickImproved(0)
		} else {
			sess.PickImproved(max(0, picked-1))
		}
	case key.Matches(msg, keys.Down):
		if v.Picked < 0 {
			sess.PickImproved(0)
		} else {
			sess.PickImproved(min(len(v.Improved)-1, picked+1))
		}
	case msg.String() >= "1" && msg.String() <= "3":
		sess.PickImproved(int(msg.String()[0] - '1'))
	case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Continue), key.Matches(msg, keys.Quit):
		if sess.ContinueEditing() {
			return a.toEdit()
		}
	case key.Matches(msg, keys.Done), msg.String() == "d":
		return a.startCall(a.finishCall(sess), viewImprove)
	}
	return nil
}

func (a *App) handleDoneKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
		a.toCompose()
		return textinput.Blink
	case msg.String() == "c":
		if err := clipboard.WriteAll(a.state.session.Snapshot().FinalText); err != nil {
			a.setNotice(generator.KindRetry, "Could not copy: "+err.Error())
		} else {
			a.setNotice(generator.KindSuccess, "Copied to clipboard")
		}
	case msg.String() == "h":
		a.view = viewHistory
		return a.loadHistory()
	case key.Matches(msg, keys.Quit), msg.String() == "q":
		return a.quit()
	}
	return nil
}

func (a *App) handleErrorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Retry):
		if a.state.retry != nil {
			return a.startCall(*a.state.retry, a.state.returnTo)
		}
	case key.Matches(msg, keys.Settings), msg.String() == "s":
		a.openSettings()
	case key.Matches(msg, keys.New), msg.String() == "n":
		a.toCompose()
		return textinput.Blink
	case key.Matches(msg, keys.Quit):
		a.view = a.state.returnTo
		if a.view == viewEdit {
			return a.state.editor.Focus()
		}
	}
	return nil
}

func (a *App) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state.setupStep {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Quit):
			return a.quit()
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				a.state.apiKeyInput.Focus()
				return textinput.Blink
			}
			return a.finishSetup()
		}

	case 1: // API key entry
		switch {
		case key.Matches(msg, keys.Quit):
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil
		case key.Matches(msg, keys.Enter):
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			return a.finishSetup()
		default:
			var cmd tea.Cmd
			a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
			return cmd
		}
	}

	return nil
}

func (a *App) finishSetup() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) useProvider(p llm.Provider) {
	a.state.provider = p
	a.state.providerReady = true
	a.state.providerError = nil
	a.state.generator = generator.New(generator.Options{
		Provider: p,
		Model:    a.state.config.Model,
		Profiles: a.deps.Profiles,
		Sink:     a.deps.Store,
		Notifier: a.notifier,
		Logger:   a.deps.Logger,
	})
}

// startSession always begins from a fresh session so nothing leaks from the
// previous image.
func (a *App) startSession() tea.Cmd {
	path := ""
	if a.state.image != nil {
		path = a.state.image.Metadata.SourcePath
	}
	a.state.session = session.New(session.Params{
		ImagePath:    path,
		Vibe:         prompts.Vibes()[a.state.vibeIndex].Key,
		Length:       prompts.Lengths()[a.state.lengthIndex].Key,
		Language:     a.state.config.Language,
		Instructions: strings.TrimSpace(a.state.instructionInput.Value()),
		Profile:      a.state.config.Profile,
	})
	a.state.record = nil
	return a.startCall(a.generateCall(a.state.session, false), viewCompose)
}

func (a *App) generateCall(sess *session.Session, regenerate bool) pendingCall {
	gen := a.state.generator
	return pendingCall{op: generator.OpGenerate, run: func(ctx context.Context) callDoneMsg {
		err := gen.Generate(ctx, sess, generator.GenerateOptions{Regenerate: regenerate})
		return callDoneMsg{op: generator.OpGenerate, session: sess, err: err}
	}}
}

func (a *App) improveCall(sess *session.Session, instructions string) pendingCall {
	gen := a.state.generator
	return pendingCall{op: generator.OpImprove, run: func(ctx context.Context) callDoneMsg {
		err := gen.Improve(ctx, sess, instructions)
		return callDoneMsg{op: generator.OpImprove, session: sess, err: err}
	}}
}

func (a *App) finishCall(sess *session.Session) pendingCall {
	gen := a.state.generator
	return pendingCall{op: generator.OpFinish, run: func(ctx context.Context) callDoneMsg {
		rec, err := gen.Finish(ctx, sess)
		return callDoneMsg{op: generator.OpFinish, session: sess, err: err, record: rec}
	}}
}

func (a *App) startCall(call pendingCall, returnTo view) tea.Cmd {
	if a.state.generator == nil {
		a.setNotice(generator.KindRetry, "No caption service connected yet.")
		return nil
	}
	if a.state.cancel != nil {
		a.state.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.state.cancel = cancel
	a.state.retry = &call
	a.state.returnTo = returnTo
	a.state.notice = ""
	a.state.editor.Blur()
	a.view = viewProcessing

	return tea.Batch(a.state.spinner.Tick, func() tea.Msg {
		return call.run(ctx)
	})
}

func (a *App) handleCallDone(msg callDoneMsg) tea.Cmd {
	if msg.session != a.state.session {
		return nil
	}
	if errors.Is(msg.err, generator.ErrStale) {
		return nil
	}
	if a.state.cancel != nil {
		a.state.cancel()
		a.state.cancel = nil
	}

	if msg.err != nil {
		switch {
		case errors.Is(msg.err, context.Canceled):
			a.setNotice(generator.KindInfo, "Canceled")
			return a.back()
		case errors.Is(msg.err, generator.ErrGuard):
			return a.back()
		case errors.Is(msg.err, generator.ErrPersist):
			a.state.record = &msg.record
			a.view = viewDone
			return nil
		default:
			a.state.lastError = msg.err
			a.view = viewError
			return nil
		}
	}

	a.state.retry = nil
	switch msg.op {
	case generator.OpGenerate:
		a.view = viewSelect
	case generator.OpImprove:
		a.view = viewImprove
	case generator.OpFinish:
		a.state.record = &msg.record
		a.view = viewDone
	}
	return nil
}

// back returns to the view the last call was started from.
func (a *App) back() tea.Cmd {
	a.view = a.state.returnTo
	switch a.view {
	case viewEdit:
		return a.state.editor.Focus()
	case viewCompose:
		a.setComposeFocus(a.state.focus)
		return textinput.Blink
	}
	return nil
}

func (a *App) toEdit() tea.Cmd {
	a.state.editor.SetValue(a.state.session.Snapshot().FinalText)
	a.state.improveInput.Reset()
	a.state.improveInput.Blur()
	a.state.editFocus = 0
	a.view = viewEdit
	return tea.Batch(a.state.editor.Focus(), textarea.Blink)
}

func (a *App) toCompose() {
	a.view = viewCompose
	a.state.imageInput.Reset()
	a.state.image = nil
	a.state.retry = nil
	a.setComposeFocus(fieldImage)
}

func (a *App) setComposeFocus(field int) {
	a.state.focus = field
	a.state.imageInput.Blur()
	a.state.instructionInput.Blur()
	switch field {
	case fieldImage:
		a.state.imageInput.Focus()
	case fieldInstructions:
		a.state.instructionInput.Focus()
	}
}

func (a *App) cycleOption(step int) {
	switch a.state.focus {
	case fieldVibe:
		n := len(prompts.Vibes())
		a.state.vibeIndex = (a.state.vibeIndex + step + n) % n
	case fieldLength:
		n := len(prompts.Lengths())
		a.state.lengthIndex = (a.state.lengthIndex + step + n) % n
	}
}

func (a *App) setNotice(kind generator.Kind, text string) {
	a.state.notice = text
	a.state.noticeKind = kind
}

func (a *App) loadHistory() tea.Cmd {
	st := a.deps.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		recs, err := st.List(ctx, 20)
		return historyLoadedMsg{records: recs, err: err}
	}
}

func checkImage(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := media.Load(path)
		return imageCheckedMsg{image: img, err: err}
	}
}

func indexOfVibe(key string) int {
	for i, v := range prompts.Vibes() {
		if v.Key == key {
			return i
		}
	}
	return indexOfVibe(prompts.DefaultVibe)
}

func indexOfLength(key string) int {
	for i, l := range prompts.Lengths() {
		if l.Key == key {
			return i
		}
	}
	return indexOfLength(prompts.DefaultLength)
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{ provider llm.Provider }
type providerErrorMsg struct{ error }

type imageCheckedMsg struct {
	image *media.Image
	err   error
}

type callDoneMsg struct {
	op      generator.Op
	session *session.Session
	err     error
	record  store.Record
}

type historyLoadedMsg struct {
	records []store.Record
	err     error
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewProcessing:
		return a.renderProcessing()
	case viewSelect:
		return a.renderSelect()
	case viewEdit:
		return a.renderEdit()
	case viewImprove:
		return a.renderImprove()
	case viewDone:
		return a.renderDone()
	case viewError:
		return a.renderError()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewHistory:
		return a.renderHistory()
	default:
		return a.renderCompose()
	}
}
