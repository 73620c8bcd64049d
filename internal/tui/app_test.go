package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/captionkit/internal/config"
	"github.com/sant0-9/captionkit/internal/generator"
	"github.com/sant0-9/captionkit/internal/llm"
	"github.com/sant0-9/captionkit/internal/prompts"
	"github.com/sant0-9/captionkit/internal/session"
	"github.com/sant0-9/captionkit/internal/store"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) (*App, *llm.MockProvider, *store.FileSink) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Provider = "mock"
	sink := store.NewFileSink(filepath.Join(t.TempDir(), "history.yaml"))

	app := NewApp(Deps{Config: cfg, Store: sink})
	app.width, app.height = 100, 40
	mock := llm.NewMockProvider()
	app.Update(providerReadyMsg{mock})
	return app, mock, sink
}

// press sends a key and, when it starts a call, runs the call to completion.
func press(t *testing.T, app *App, k string) {
	t.Helper()
	before := app.state.retry
	app.Update(keyMsg(k))
	if app.view == viewProcessing && app.state.retry != nil && app.state.retry != before {
		app.Update(app.state.retry.run(context.Background()))
	}
}

func TestNewAppWithoutConfigStartsSetup(t *testing.T) {
	app := NewApp(Deps{})
	app.Init()
	assert.Equal(t, viewSetup, app.view)
	assert.True(t, app.state.needsSetup)
}

func TestComposeNeedsProvider(t *testing.T) {
	cfg := config.DefaultConfig()
	app := NewApp(Deps{Config: cfg})
	app.state.instructionInput.SetValue("sunset at the pier")

	app.Update(keyMsg("enter"))

	assert.Equal(t, viewCompose, app.view)
	assert.Contains(t, app.state.notice, "No caption service")
	assert.Nil(t, app.state.session)
}

func TestComposeNeedsInput(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(keyMsg("enter"))

	assert.Equal(t, viewCompose, app.view)
	assert.NotEmpty(t, app.state.notice)
}

func TestComposeCyclesVibe(t *testing.T) {
	app, _, _ := newTestApp(t)
	start := app.state.vibeIndex

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, fieldVibe, app.state.focus)
	app.Update(tea.KeyMsg{Type: tea.KeyRight})

	assert.NotEqual(t, start, app.state.vibeIndex)
}

func TestFullCaptionFlow(t *testing.T) {
	app, mock, sink := newTestApp(t)
	app.state.instructionInput.SetValue("morning coffee at home")

	press(t, app, "enter")
	require.Equal(t, viewSelect, app.view)
	v := app.state.session.Snapshot()
	require.Len(t, v.Candidates, 3)
	assert.Equal(t, session.StageSelecting, v.Stage)

	press(t, app, "down")
	press(t, app, "enter")
	require.Equal(t, viewEdit, app.view)
	assert.Equal(t, v.Candidates[1].Text(), app.state.editor.Value())

	press(t, app, "ctrl+e")
	require.Equal(t, viewImprove, app.view)
	v = app.state.session.Snapshot()
	require.Len(t, v.Improved, 3)
	assert.False(t, v.UsedFallback)

	press(t, app, "2")
	press(t, app, "ctrl+d")
	require.Equal(t, viewDone, app.view)
	require.NotNil(t, app.state.record)
	assert.Equal(t, v.Improved[1].Text(), app.state.record.FinalText)

	recs, err := sink.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, app.state.session.ID(), recs[0].SessionID)

	assert.Len(t, mock.Requests(), 2)
}

func TestRegenerateFromSelect(t *testing.T) {
	app, mock, _ := newTestApp(t)
	app.state.instructionInput.SetValue("city lights")

	press(t, app, "enter")
	require.Equal(t, viewSelect, app.view)
	press(t, app, "r")

	assert.Equal(t, viewSelect, app.view)
	assert.Len(t, mock.Requests(), 2)
}

func TestRetuneBeforeRegenerate(t *testing.T) {
	app, mock, _ := newTestApp(t)
	app.state.instructionInput.SetValue("city lights")

	press(t, app, "enter")
	require.Equal(t, viewSelect, app.view)
	before := app.state.session.Params()

	app.Update(tea.KeyMsg{Type: tea.KeyRight})
	app.Update(tea.KeyMsg{Type: tea.KeyTab})

	vibes, lengths := prompts.Vibes(), prompts.Lengths()
	wantVibe := vibes[(indexOfVibe(before.Vibe)+1)%len(vibes)]
	wantLength := lengths[(indexOfLength(before.Length)+1)%len(lengths)]

	after := app.state.session.Params()
	assert.Equal(t, wantVibe.Key, after.Vibe)
	assert.Equal(t, wantLength.Key, after.Length)
	assert.Equal(t, before.Instructions, after.Instructions)
	assert.Contains(t, app.state.notice, wantVibe.Name)

	press(t, app, "r")
	require.Equal(t, viewSelect, app.view)
	reqs := mock.Requests()
	require.Len(t, reqs, 2)
	tone, _ := prompts.ToneFor(wantVibe.Key)
	assert.Contains(t, reqs[1].Messages[1].Content, tone)
}

func TestRetuneIgnoredAfterSelect(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.state.instructionInput.SetValue("city lights")
	press(t, app, "enter")
	press(t, app, "enter")
	require.Equal(t, viewEdit, app.view)

	before := app.state.session.Params()
	app.retune(app.state.session, 1, 1)
	assert.Equal(t, before, app.state.session.Params())
}

func TestUpstreamFailureShowsErrorAndRetries(t *testing.T) {
	app, mock, _ := newTestApp(t)
	app.state.instructionInput.SetValue("city lights")
	mock.Err = errors.New("connection refused")

	press(t, app, "enter")
	require.Equal(t, viewError, app.view)
	assert.ErrorIs(t, app.state.lastError, generator.ErrUpstreamCall)
	require.NotNil(t, app.state.retry)
	assert.Equal(t, session.StageInitial, app.state.session.Snapshot().Stage)

	mock.Err = nil
	press(t, app, "r")
	assert.Equal(t, viewSelect, app.view)
}

func TestCanceledCallReturnsQuietly(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.state.instructionInput.SetValue("city lights")

	app.Update(keyMsg("enter"))
	require.Equal(t, viewProcessing, app.view)
	app.Update(keyMsg("esc"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app.Update(app.state.retry.run(ctx))

	assert.Equal(t, viewCompose, app.view)
	assert.Equal(t, "Canceled", app.state.notice)
}

func TestCompletionForOldSessionIgnored(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.state.instructionInput.SetValue("city lights")
	press(t, app, "enter")
	require.Equal(t, viewSelect, app.view)

	old := session.New(session.Params{})
	app.Update(callDoneMsg{op: generator.OpGenerate, session: old, err: errors.New("boom")})

	assert.Equal(t, viewSelect, app.view)
}

func TestNoticeFiltersBySession(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.state.instructionInput.SetValue("city lights")
	press(t, app, "enter")

	app.Update(notifyMsg{generator.Event{Kind: generator.KindInfo, SessionID: "someone-else", Message: "stale"}})
	assert.NotEqual(t, "stale", app.state.notice)

	app.Update(notifyMsg{generator.Event{Kind: generator.KindInfo, SessionID: app.state.session.ID(), Message: "fresh"}})
	assert.Equal(t, "fresh", app.state.notice)
}

func TestViewsRender(t *testing.T) {
	app, _, _ := newTestApp(t)
	assert.Contains(t, app.View(), "Image")

	app.state.instructionInput.SetValue("city lights")
	press(t, app, "enter")
	assert.Contains(t, app.View(), "Caption 1")
	assert.Contains(t, app.View(), "tags")

	app.state.history = []store.Record{{FinalText: "Kopi pagi #kopi #pagi\nMorning coffee #coffee", CreatedAt: time.Now()}}
	app.view = viewHistory
	assert.Contains(t, app.View(), " 3 tags")
}
