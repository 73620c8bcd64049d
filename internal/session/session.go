package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sant0-9/captionkit/internal/caption"
)

// Stage is where a session sits in the caption workflow.
type Stage int

const (
	StageInitial Stage = iota
	StageSelecting
	StageEditing
	StageImproving
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "initial"
	case StageSelecting:
		return "selecting"
	case StageEditing:
		return "editing"
	case StageImproving:
		return "improving"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Params are the user's choices for one generation attempt.
type Params struct {
	ImagePath    string
	Vibe         string
	Length       string
	Language     string
	Instructions string
	Profile      string
}

// Ticket identifies one outbound call. Completions carrying an outdated
// ticket are discarded.
type Ticket struct {
	token uint64
}

// Final is what a finished session hands to persistence.
type Final struct {
	SessionID  string
	Candidates []caption.Candidate
	FinalText  string
	Params     Params
	PromptUsed string
	FinishedAt time.Time
}

// Session is the workflow state for one image. Sessions are never shared:
// a new image gets a new Session. All methods are safe for concurrent use;
// guard violations are no-ops that report false.
type Session struct {
	mu sync.Mutex

	id        string
	params    Params
	createdAt time.Time

	stage       Stage
	candidates  []caption.Candidate
	highlighted int
	favorite    *caption.Candidate
	finalText   string
	improved    []caption.ImprovedCandidate
	picked      int
	fallback    bool
	promptUsed  string

	busy  bool
	token uint64
}

// New starts a fresh session in StageInitial.
func New(params Params) *Session {
	return &Session{
		id:          uuid.NewString(),
		params:      params,
		createdAt:   time.Now(),
		stage:       StageInitial,
		highlighted: -1,
		picked:      -1,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetParams replaces the generation choices. Only allowed before any
// candidates exist or while selecting (ahead of a regenerate).
func (s *Session) SetParams(p Params) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageInitial && s.stage != StageSelecting {
		return false
	}
	s.params = p
	return true
}

// Begin marks the session busy and issues a ticket for a new call. Any ticket
// issued earlier becomes stale. Done sessions refuse new calls.
func (s *Session) Begin() (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage == StageDone {
		return Ticket{}, false
	}
	s.token++
	s.busy = true
	return Ticket{token: s.token}, true
}

// Abort ends a failed call. The stage is left untouched.
func (s *Session) Abort(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) {
		return false
	}
	s.busy = false
	return true
}

// Current reports whether t is still the latest ticket.
func (s *Session) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(t)
}

func (s *Session) current(t Ticket) bool {
	return t.token != 0 && t.token == s.token
}

// CanGenerate reports whether a generation call may be issued now: before
// any candidates exist or, as a regenerate, while selecting.
func (s *Session) CanGenerate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage == StageInitial || s.stage == StageSelecting
}

// CompleteGeneration applies a parsed generation reply. A new batch
// supersedes the previous one when regenerating from StageSelecting.
func (s *Session) CompleteGeneration(t Ticket, candidates []caption.Candidate, prompt string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) {
		return false
	}
	s.busy = false
	if len(candidates) == 0 {
		return false
	}
	if s.stage != StageInitial && s.stage != StageSelecting {
		return false
	}

	s.candidates = append([]caption.Candidate(nil), candidates...)
	s.promptUsed = prompt
	s.highlighted = 0
	s.stage = StageSelecting
	return true
}

// Highlight moves the pending selection without leaving StageSelecting.
func (s *Session) Highlight(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageSelecting || i < 0 || i >= len(s.candidates) {
		return false
	}
	s.highlighted = i
	return true
}

// SelectFavorite picks candidate i and moves to StageEditing with its text.
func (s *Session) SelectFavorite(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageSelecting || s.busy || i < 0 || i >= len(s.candidates) {
		return false
	}
	fav := s.candidates[i]
	s.favorite = &fav
	s.highlighted = i
	s.finalText = fav.Text()
	s.stage = StageEditing
	return true
}

// Edit replaces the working text. Only allowed in StageEditing.
func (s *Session) Edit(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageEditing {
		return false
	}
	s.finalText = text
	return true
}

// CanImprove reports whether an improvement call may be issued now.
func (s *Session) CanImprove() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage == StageEditing && !s.busy && hasText(s.finalText)
}

// CompleteImprovement applies improved candidates and enters StageImproving.
func (s *Session) CompleteImprovement(t Ticket, improved []caption.ImprovedCandidate, usedFallback bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(t) {
		return false
	}
	s.busy = false
	if s.stage != StageEditing || !hasText(s.finalText) || len(improved) == 0 {
		return false
	}

	s.improved = append([]caption.ImprovedCandidate(nil), improved...)
	s.fallback = usedFallback
	s.picked = -1
	s.stage = StageImproving
	return true
}

// PickImproved records the improved candidate the user is leaning towards.
func (s *Session) PickImproved(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageImproving || i < 0 || i >= len(s.improved) {
		return false
	}
	s.picked = i
	return true
}

// ContinueEditing returns to StageEditing with the picked improved text, or
// the first one when nothing was picked.
func (s *Session) ContinueEditing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageImproving || s.busy || len(s.improved) == 0 {
		return false
	}
	choice := s.picked
	if choice < 0 {
		choice = 0
	}
	if text := s.improved[choice].Text(); hasText(text) {
		s.finalText = text
	}
	s.improved = nil
	s.picked = -1
	s.fallback = false
	s.stage = StageEditing
	return true
}

// MarkDone finishes the session. In StageImproving an explicit pick is
// adopted first. The returned Final is produced exactly once.
func (s *Session) MarkDone() (Final, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy || (s.stage != StageEditing && s.stage != StageImproving) {
		return Final{}, false
	}

	text := s.finalText
	if s.stage == StageImproving && s.picked >= 0 {
		text = s.improved[s.picked].Text()
	}
	if !hasText(text) {
		return Final{}, false
	}

	s.finalText = text
	s.stage = StageDone
	return Final{
		SessionID:  s.id,
		Candidates: append([]caption.Candidate(nil), s.candidates...),
		FinalText:  text,
		Params:     s.params,
		PromptUsed: s.promptUsed,
		FinishedAt: time.Now(),
	}, true
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// View is a point-in-time copy of a session for rendering.
type View struct {
	ID           string
	Stage        Stage
	Params       Params
	Candidates   []caption.Candidate
	Highlighted  int
	Favorite     *caption.Candidate
	FinalText    string
	Improved     []caption.ImprovedCandidate
	Picked       int
	UsedFallback bool
	PromptUsed   string
	Busy         bool
	CreatedAt    time.Time
}

// Snapshot copies the current state. The returned slices are not shared
// with the session.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:           s.id,
		Stage:        s.stage,
		Params:       s.params,
		Candidates:   append([]caption.Candidate(nil), s.candidates...),
		Highlighted:  s.highlighted,
		FinalText:    s.finalText,
		Improved:     append([]caption.ImprovedCandidate(nil), s.improved...),
		Picked:       s.picked,
		UsedFallback: s.fallback,
		PromptUsed:   s.promptUsed,
		Busy:         s.busy,
		CreatedAt:    s.createdAt,
	}
	if s.favorite != nil {
		fav := *s.favorite
		v.Favorite = &fav
	}
	return v
}

// PreviousTexts returns the texts of the current candidates, used to ask
// for novelty when regenerating.
func (s *Session) PreviousTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, c.Text())
	}
	return out
}
