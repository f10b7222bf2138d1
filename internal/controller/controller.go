// Package controller implements the interaction state machine for the two
// mutually exclusive modes: guided thought refinement and debate sparring.
// It owns the transient in-memory state of the current session, mediates all
// calls to the generation service, and hands committed snapshots to the
// session library for persistence.
//
// # Phases
//
// Guided mode loops between awaiting-input and awaiting-focus-selection:
//
//	idle → guided:awaiting-input → guided:awaiting-focus-selection → guided:awaiting-input → …
//
// Debate mode seeds the transcript with the user's claim, binds an opponent
// persona, then alternates rebuttals and responses:
//
//	idle → debate:opponent-selection → debate:awaiting-response → debate:awaiting-rebuttal → …
//
// A failed generation call never partially commits a step or turn: committed
// history only ever grows by whole, successful rounds, and the controller
// returns to the last stable phase.
package controller

import (
	"context"
	"slices"
	"sync"

	"github.com/fjordlane/counterpoint/internal/errors"
	"github.com/fjordlane/counterpoint/internal/genai"
	"github.com/fjordlane/counterpoint/internal/logging"
	"github.com/fjordlane/counterpoint/internal/persona"
	"github.com/fjordlane/counterpoint/internal/prompts"
	"github.com/fjordlane/counterpoint/internal/session"
)

// Phase is the controller's current interaction state.
type Phase string

const (
	// PhaseIdle means no interaction is active.
	PhaseIdle Phase = "idle"

	// PhaseGuidedInput means the controller is waiting for a thought to refine.
	PhaseGuidedInput Phase = "guided:awaiting-input"

	// PhaseGuidedFocus means a refinement is pending and the controller is
	// waiting for the user to select one of its challenge questions.
	PhaseGuidedFocus Phase = "guided:awaiting-focus-selection"

	// PhaseOpponentSelection means a debate claim is seeded and the controller
	// is waiting for an opponent persona.
	PhaseOpponentSelection Phase = "debate:opponent-selection"

	// PhaseDebateResponse means a generation call for the opponent's next turn
	// is outstanding.
	PhaseDebateResponse Phase = "debate:awaiting-response"

	// PhaseDebateRebuttal means the controller is waiting for the user's next
	// rebuttal.
	PhaseDebateRebuttal Phase = "debate:awaiting-rebuttal"
)

// PendingRefinement holds a refinement result that has not been committed to
// guided history yet. It becomes a GuidedStep only once the user selects a
// focus question.
type PendingRefinement struct {
	Corrected string
	Questions []string
}

// State is an immutable snapshot of the controller for rendering. It reflects
// only committed history, except for the transient pending refinement.
type State struct {
	Phase   Phase
	Session session.Session
	Pending *PendingRefinement
}

// NextStep returns the 1-based sequence number the next committed guided step
// will receive.
func (s State) NextStep() int {
	return len(s.Session.Guided) + 1
}

// Controller drives the interaction modes. It is safe for concurrent use;
// generation calls run without holding the lock so state snapshots stay
// available while a call is in flight. Callers are expected to keep at most
// one generation call outstanding (the UI disables its controls while one is
// running).
type Controller struct {
	mu      sync.Mutex
	client  genai.Client
	library *session.Library
	logger  *logging.Logger

	phase   Phase
	current session.Session
	pending *PendingRefinement
}

// New creates an idle Controller. A nil logger disables logging.
func New(client genai.Client, library *session.Library, logger *logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Controller{
		client:  client,
		library: library,
		logger:  logger,
		phase:   PhaseIdle,
	}
}

// State returns a snapshot of the current phase, session, and pending
// refinement.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	st := State{
		Phase:   c.phase,
		Session: c.current.Clone(),
	}
	if c.pending != nil {
		st.Pending = &PendingRefinement{
			Corrected: c.pending.Corrected,
			Questions: slices.Clone(c.pending.Questions),
		}
	}
	return st
}

// BeginGuided starts a new guided session. Valid only from idle.
func (c *Controller) BeginGuided() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		return errors.NewUsageError("a session is already active", errors.ErrWrongPhase).
			WithAction("begin-guided").WithPhase(string(c.phase))
	}

	c.current = session.Session{Type: session.TypeGuided}
	c.pending = nil
	c.phase = PhaseGuidedInput
	return nil
}

// SubmitGuidedThought sends the user's thought plus the fixed coaching
// instruction and output schema to the generation service. On success the
// result is held as a pending refinement and the controller waits for a
// focus selection; on failure nothing changes.
func (c *Controller) SubmitGuidedThought(ctx context.Context, text string) error {
	c.mu.Lock()
	if c.phase != PhaseGuidedInput {
		c.mu.Unlock()
		return errors.NewUsageError("not awaiting a thought", errors.ErrWrongPhase).
			WithAction("submit-thought").WithPhase(string(c.phase))
	}
	if isBlank(text) {
		c.mu.Unlock()
		return errors.NewValidationError("thought cannot be empty", errors.ErrEmptyInput).
			WithField("thought")
	}
	c.mu.Unlock()

	refinement, err := c.client.Refine(ctx, prompts.CoachingInstruction, text)
	if err != nil {
		c.logger.Warn("refinement request failed", "error", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.Title == "" {
		c.current.Title = session.DeriveTitle(text)
	}
	c.pending = &PendingRefinement{
		Corrected: refinement.Corrected,
		Questions: slices.Clone(refinement.Questions),
	}
	c.phase = PhaseGuidedFocus
	return nil
}

// SelectFocusQuestion commits the pending refinement plus the chosen question
// as a new GuidedStep, clears the pending state, and persists the session.
// The question must be one of the pending refinement's three options.
func (c *Controller) SelectFocusQuestion(question string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseGuidedFocus || c.pending == nil {
		return errors.NewUsageError("no refinement pending", errors.ErrNoPendingResult).
			WithAction("select-focus").WithPhase(string(c.phase))
	}
	if !slices.Contains(c.pending.Questions, question) {
		return errors.NewValidationError("question is not one of the offered options", errors.ErrInvalidFocus).
			WithField("question")
	}

	c.current.Guided = append(c.current.Guided, session.GuidedStep{
		Step:          len(c.current.Guided) + 1,
		Thought:       c.pending.Corrected,
		FocusQuestion: question,
	})
	c.pending = nil
	c.phase = PhaseGuidedInput

	return c.persistLocked()
}

// StartDebate seeds a new debate session with the user's opening claim as the
// first turn and moves to opponent selection. Valid only from idle.
func (c *Controller) StartDebate(claim string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		return errors.NewUsageError("a session is already active", errors.ErrWrongPhase).
			WithAction("start-debate").WithPhase(string(c.phase))
	}
	if isBlank(claim) {
		return errors.NewValidationError("claim cannot be empty", errors.ErrEmptyInput).
			WithField("claim")
	}

	c.current = session.Session{
		Type:  session.TypeDebate,
		Title: session.DeriveTitle(claim),
		Debate: []session.DebateTurn{
			{Role: session.RoleUser, Text: claim},
		},
	}
	c.pending = nil
	c.phase = PhaseOpponentSelection
	return nil
}

// SelectOpponent binds a persona to the debate and immediately requests the
// first opponent rebuttal using the history built so far. On failure the
// binding is undone and the controller returns to opponent selection.
func (c *Controller) SelectOpponent(ctx context.Context, key string) error {
	c.mu.Lock()
	if c.phase != PhaseOpponentSelection {
		c.mu.Unlock()
		return errors.NewUsageError("not selecting an opponent", errors.ErrWrongPhase).
			WithAction("select-opponent").WithPhase(string(c.phase))
	}
	p, err := persona.Get(key)
	if err != nil {
		c.mu.Unlock()
		return errors.NewValidationError("opponent must be one of the fixed personas", err).
			WithField("opponent")
	}
	c.current.Opponent = p.Key
	c.phase = PhaseDebateResponse
	history := debateMessages(c.current.Debate)
	c.mu.Unlock()

	reply, err := c.client.Respond(ctx, prompts.DebateSystem(p), history)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("opening rebuttal request failed", "persona", key, "error", err)
		c.current.Opponent = ""
		c.phase = PhaseOpponentSelection
		return err
	}

	c.current.Debate = append(c.current.Debate, session.DebateTurn{
		Role: session.RoleOpponent,
		Text: reply,
	})
	c.phase = PhaseDebateRebuttal
	return c.persistLocked()
}

// SubmitRebuttal appends the user's turn and requests the opponent's next
// turn, resending the entire accumulated history. Both turns commit together
// on success; a failure leaves the committed history untouched.
func (c *Controller) SubmitRebuttal(ctx context.Context, text string) error {
	c.mu.Lock()
	if c.phase != PhaseDebateRebuttal {
		c.mu.Unlock()
		return errors.NewUsageError("not awaiting a rebuttal", errors.ErrWrongPhase).
			WithAction("submit-rebuttal").WithPhase(string(c.phase))
	}
	if isBlank(text) {
		c.mu.Unlock()
		return errors.NewValidationError("rebuttal cannot be empty", errors.ErrEmptyInput).
			WithField("rebuttal")
	}
	p, err := persona.Get(c.current.Opponent)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	userTurn := session.DebateTurn{Role: session.RoleUser, Text: text}
	candidate := append(slices.Clone(c.current.Debate), userTurn)
	c.phase = PhaseDebateResponse
	c.mu.Unlock()

	reply, err := c.client.Respond(ctx, prompts.DebateSystem(p), debateMessages(candidate))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseDebateRebuttal
	if err != nil {
		c.logger.Warn("rebuttal request failed", "error", err)
		return err
	}

	c.current.Debate = append(c.current.Debate, userTurn, session.DebateTurn{
		Role: session.RoleOpponent,
		Text: reply,
	})
	return c.persistLocked()
}

// EndDebate persists the final state, discards the live in-memory debate
// binding, and returns to idle. The persisted record remains. Valid in any
// debate phase.
func (c *Controller) EndDebate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseOpponentSelection, PhaseDebateResponse, PhaseDebateRebuttal:
	default:
		return errors.NewUsageError("no debate in progress", errors.ErrWrongPhase).
			WithAction("end-debate").WithPhase(string(c.phase))
	}

	err := c.persistLocked()
	c.current = session.Session{}
	c.pending = nil
	c.phase = PhaseIdle
	return err
}

// NewSession discards the current interaction after an implicit save attempt
// and returns to idle. Reachable from any state; a failed save is logged but
// does not block the reset.
func (c *Controller) NewSession() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.persistLocked(); err != nil {
		c.logger.Warn("implicit save before reset failed", "error", err)
	}
	c.current = session.Session{}
	c.pending = nil
	c.phase = PhaseIdle
}

// LoadSession makes a persisted session current, after an implicit save of
// whatever was active. The phase is derived from the loaded session's type.
func (c *Controller) LoadSession(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	loaded, err := c.library.Get(id)
	if err != nil {
		return err
	}

	if err := c.persistLocked(); err != nil {
		c.logger.Warn("implicit save before load failed", "error", err)
	}

	c.current = loaded
	c.pending = nil
	switch {
	case loaded.Type == session.TypeGuided:
		c.phase = PhaseGuidedInput
	case loaded.Opponent == "":
		c.phase = PhaseOpponentSelection
	default:
		c.phase = PhaseDebateRebuttal
	}
	return nil
}

// GenerateBlogSummary sends the flattened guided transcript to the plain-text
// call shape with the fixed summarization instruction. Requires at least one
// committed step; never mutates session state.
func (c *Controller) GenerateBlogSummary(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.current.Type != session.TypeGuided || len(c.current.Guided) == 0 {
		c.mu.Unlock()
		return "", errors.NewUsageError("no guided steps to summarize", errors.ErrEmptyTranscript).
			WithAction("blog-summary").WithPhase(string(c.phase))
	}
	transcript := prompts.FlattenGuided(c.current.Guided)
	c.mu.Unlock()

	return c.client.Respond(ctx, prompts.BlogSummaryInstruction, []genai.Message{
		{Role: genai.RoleUser, Content: transcript},
	})
}

// GenerateDebateSummary sends the flattened debate transcript to the
// plain-text call shape. Requires at least one user turn and one opponent
// turn; never mutates session state.
func (c *Controller) GenerateDebateSummary(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.current.Type != session.TypeDebate || !hasBothRoles(c.current.Debate) {
		c.mu.Unlock()
		return "", errors.NewUsageError("debate needs a turn from each side to summarize", errors.ErrEmptyTranscript).
			WithAction("debate-summary").WithPhase(string(c.phase))
	}
	transcript := prompts.FlattenDebate(c.current.Debate)
	c.mu.Unlock()

	return c.client.Respond(ctx, prompts.DebateSummaryInstruction, []genai.Message{
		{Role: genai.RoleUser, Content: transcript},
	})
}

// persistLocked hands a snapshot of the current session to the library.
// Empty sessions are skipped by the library; the assigned ID and timestamps
// are folded back into the live session. Callers must hold c.mu.
func (c *Controller) persistLocked() error {
	if c.current.Empty() {
		return nil
	}
	saved, err := c.library.Upsert(c.current)
	if err != nil {
		return err
	}
	c.current.ID = saved.ID
	c.current.CreatedAt = saved.CreatedAt
	c.current.UpdatedAt = saved.UpdatedAt
	return nil
}

// debateMessages maps a debate transcript onto the generation request roles.
func debateMessages(turns []session.DebateTurn) []genai.Message {
	out := make([]genai.Message, 0, len(turns))
	for _, turn := range turns {
		role := genai.RoleUser
		if turn.Role == session.RoleOpponent {
			role = genai.RoleAssistant
		}
		out = append(out, genai.Message{Role: role, Content: turn.Text})
	}
	return out
}

// hasBothRoles reports whether the transcript contains at least one user turn
// and one opponent turn.
func hasBothRoles(turns []session.DebateTurn) bool {
	var user, opponent bool
	for _, t := range turns {
		switch t.Role {
		case session.RoleUser:
			user = true
		case session.RoleOpponent:
			opponent = true
		}
	}
	return user && opponent
}

// isBlank reports whether the input contains no non-whitespace characters.
func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
