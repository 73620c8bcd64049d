package generator

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/sant0-9/captionkit/internal/caption"
	"github.com/sant0-9/captionkit/internal/llm"
	"github.com/sant0-9/captionkit/internal/logger"
	"github.com/sant0-9/captionkit/internal/media"
	"github.com/sant0-9/captionkit/internal/profile"
	"github.com/sant0-9/captionkit/internal/prompts"
	"github.com/sant0-9/captionkit/internal/session"
	"github.com/sant0-9/captionkit/internal/store"
)

const module = "generator"

// Options wires a Generator. Provider is required; everything else has a
// no-op default.
type Options struct {
	Provider llm.Provider
	Model    string
	Profiles profile.Lookup
	Sink     store.Sink
	Notifier Notifier
	Logger   logger.Logger

	// LoadImage reads the picture named in the session params.
	LoadImage func(path string) (*media.Image, error)

	MaxTokens   int
	Temperature float64
}

// Generator turns session events into model calls and model replies into
// session transitions. It is the only caller of the completion transitions.
type Generator struct {
	provider    llm.Provider
	model       string
	profiles    profile.Lookup
	sink        store.Sink
	notifier    Notifier
	log         logger.Logger
	loadImage   func(string) (*media.Image, error)
	maxTokens   int
	temperature float64
}

func New(opts Options) *Generator {
	g := &Generator{
		provider:    opts.Provider,
		model:       opts.Model,
		profiles:    opts.Profiles,
		sink:        opts.Sink,
		notifier:    opts.Notifier,
		log:         opts.Logger,
		loadImage:   opts.LoadImage,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}
	if g.sink == nil {
		g.sink = store.Nop{}
	}
	if g.notifier == nil {
		g.notifier = nopNotifier{}
	}
	if g.log == nil {
		g.log = logger.NewNop()
	}
	if g.loadImage == nil {
		g.loadImage = media.Load
	}
	if g.maxTokens == 0 {
		g.maxTokens = 2048
	}
	if g.temperature == 0 {
		g.temperature = 0.8
	}
	return g
}

// GenerateOptions tune a generation call.
type GenerateOptions struct {
	// Regenerate asks for captions unlike the ones currently offered.
	Regenerate bool
}

// Generate requests a batch of captions for the session's image. On success
// the session moves to selecting; on any failure it stays where it was.
func (g *Generator) Generate(ctx context.Context, sess *session.Session, opts GenerateOptions) error {
	if !sess.CanGenerate() {
		return ErrGuard
	}
	params := sess.Params()

	// The picture is optional; without one the captions follow the
	// instructions alone.
	var images []llm.Image
	imageName := ""
	if params.ImagePath != "" {
		img, err := g.loadImage(params.ImagePath)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrImage, err)
			g.notify(KindRetry, OpGenerate, sess, err.Error(), err)
			return err
		}
		images = append(images, img.LLMImage())
		imageName = img.Metadata.Name
	}

	ticket, ok := sess.Begin()
	if !ok {
		return ErrGuard
	}

	p := g.lookupProfile(ctx, params.Profile)
	g.warnUnknownKeys(params)

	var previous []string
	if opts.Regenerate {
		previous = sess.PreviousTexts()
	}
	prompt := prompts.BuildGenerationPrompt(prompts.GenerationParams{
		Vibe:         params.Vibe,
		Length:       params.Length,
		Language:     params.Language,
		Instructions: params.Instructions,
		Profile:      p,
		Regenerate:   opts.Regenerate && len(previous) > 0,
		Previous:     previous,
	})

	req := llm.NewVisionRequest(g.model, prompts.SystemPrompt, prompt, images...)
	req.MaxTokens = g.maxTokens
	req.Temperature = g.temperature

	g.log.Info(module, "requesting captions", map[string]any{
		"session":    sess.ID(),
		"provider":   g.provider.Name(),
		"image":      imageName,
		"regenerate": opts.Regenerate,
	})

	resp, err := g.provider.Complete(ctx, req)
	if err != nil {
		return g.upstreamFailed(OpGenerate, sess, ticket, err)
	}

	candidates := caption.ParseCaptionBlocks(resp.Content)
	if len(candidates) == 0 {
		if !sess.Abort(ticket) {
			return ErrStale
		}
		g.log.Warn(module, "reply held no captions", map[string]any{
			"session": sess.ID(),
			"reply":   truncate(resp.Content, 500),
		})
		g.notify(KindRetry, OpGenerate, sess, "The reply had no usable captions. Try again.", ErrUnparseableOutput)
		return ErrUnparseableOutput
	}

	if !sess.Current(ticket) {
		return ErrStale
	}
	if !sess.CompleteGeneration(ticket, candidates, prompt) {
		return ErrGuard
	}

	g.log.Info(module, "captions ready", map[string]any{
		"session": sess.ID(),
		"count":   len(candidates),
		"tokens":  resp.Usage.TotalTokens,
	})
	g.notify(KindSuccess, OpGenerate, sess, fmt.Sprintf("%d captions ready", len(candidates)), nil)
	return nil
}

// Improve asks for labeled rewrites of the session's current text. A reply
// without any usable block still moves the session to improving, offering
// placeholders that keep the current text.
func (g *Generator) Improve(ctx context.Context, sess *session.Session, instructions string) error {
	if !sess.CanImprove() {
		return ErrGuard
	}
	params := sess.Params()
	current := sess.Snapshot().FinalText

	ticket, ok := sess.Begin()
	if !ok {
		return ErrGuard
	}

	p := g.lookupProfile(ctx, params.Profile)
	prompt := prompts.BuildImprovementPrompt(prompts.ImprovementParams{
		Vibe:         params.Vibe,
		Language:     params.Language,
		Instructions: instructions,
		Current:      current,
		Profile:      p,
	})

	req := llm.NewRequest(g.model, prompts.SystemPrompt, prompt)
	req.MaxTokens = g.maxTokens
	req.Temperature = g.temperature

	g.log.Info(module, "requesting improvements", map[string]any{
		"session":  sess.ID(),
		"provider": g.provider.Name(),
	})

	resp, err := g.provider.Complete(ctx, req)
	if err != nil {
		return g.upstreamFailed(OpImprove, sess, ticket, err)
	}

	improved, fallback := caption.ImprovementsOrFallback(resp.Content, current)

	if !sess.Current(ticket) {
		return ErrStale
	}
	if !sess.CompleteImprovement(ticket, improved, fallback) {
		return ErrGuard
	}

	if fallback {
		g.log.Warn(module, "improvement reply unreadable, offering placeholders", map[string]any{
			"session": sess.ID(),
			"reply":   truncate(resp.Content, 500),
		})
		g.notify(KindInfo, OpImprove, sess, "Could not read the suggestions; showing your current caption instead.", nil)
		return nil
	}

	g.log.Info(module, "improvements ready", map[string]any{
		"session": sess.ID(),
		"count":   len(improved),
	})
	g.notify(KindSuccess, OpImprove, sess, fmt.Sprintf("%d improved versions ready", len(improved)), nil)
	return nil
}

// Finish marks the session done and records it. The record is written at
// most once per session because MarkDone succeeds only once.
func (g *Generator) Finish(ctx context.Context, sess *session.Session) (store.Record, error) {
	final, ok := sess.MarkDone()
	if !ok {
		return store.Record{}, ErrGuard
	}

	rec := RecordFrom(final)
	if err := g.sink.Save(ctx, rec); err != nil {
		err = fmt.Errorf("%w: %w", ErrPersist, err)
		g.log.Error(module, "saving caption failed", map[string]any{
			"session": sess.ID(),
			"error":   err,
		})
		g.notify(KindInfo, OpFinish, sess, "Caption finished but could not be saved to history.", err)
		return rec, err
	}

	g.log.Info(module, "caption saved", map[string]any{
		"session": sess.ID(),
		"record":  rec.ID,
	})
	g.notify(KindSuccess, OpFinish, sess, "Caption saved", nil)
	return rec, nil
}

// RecordFrom maps a finished session onto a history record.
func RecordFrom(final session.Final) store.Record {
	originals := make([]string, len(final.Candidates))
	for i, c := range final.Candidates {
		originals[i] = c.Text()
	}
	return store.Record{
		ID:                 uuid.NewString(),
		SessionID:          final.SessionID,
		OriginalCandidates: originals,
		FinalText:          final.FinalText,
		Style:              final.Params.Vibe,
		LengthKey:          final.Params.Length,
		Language:           final.Params.Language,
		Profile:            final.Params.Profile,
		ImagePath:          final.Params.ImagePath,
		PromptUsed:         final.PromptUsed,
		CreatedAt:          final.FinishedAt,
	}
}

func (g *Generator) upstreamFailed(op Op, sess *session.Session, ticket session.Ticket, err error) error {
	if !sess.Abort(ticket) {
		return ErrStale
	}
	if errors.Is(err, context.Canceled) {
		g.log.Info(module, "request canceled", map[string]any{"session": sess.ID(), "op": string(op)})
		return fmt.Errorf("%w: %w", ErrUpstreamCall, err)
	}

	err = fmt.Errorf("%w: %w", ErrUpstreamCall, err)
	g.log.Error(module, "model call failed", map[string]any{
		"session": sess.ID(),
		"op":      string(op),
		"error":   err,
	})
	g.notify(KindRetry, op, sess, err.Error(), err)
	return err
}

func (g *Generator) lookupProfile(ctx context.Context, name string) *profile.Profile {
	if g.profiles == nil || name == "" {
		return nil
	}
	p, err := g.profiles.Get(ctx, name)
	if err != nil {
		g.log.Warn(module, "profile lookup failed, continuing without it", map[string]any{
			"profile": name,
			"error":   err.Error(),
		})
		return nil
	}
	return p
}

func (g *Generator) warnUnknownKeys(params session.Params) {
	if _, ok := prompts.ToneFor(params.Vibe); !ok && params.Vibe != "" {
		g.log.Warn(module, "unknown vibe, using default", map[string]any{"vibe": params.Vibe, "default": prompts.DefaultVibe})
	}
	if _, ok := prompts.SentenceCount(params.Length); !ok && params.Length != "" {
		g.log.Warn(module, "unknown length, using default", map[string]any{"length": params.Length, "default": prompts.DefaultLength})
	}
}

func (g *Generator) notify(kind Kind, op Op, sess *session.Session, msg string, err error) {
	g.notifier.Notify(Event{
		Kind:      kind,
		Op:        op,
		SessionID: sess.ID(),
		Message:   msg,
		Err:       err,
	})
}

// truncate caps s at n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
