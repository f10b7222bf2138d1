// Package session defines the durable data model for counterpoint
// interactions and the Library, which provides CRUD over the persisted
// session collection. The collection is always operated on as a single
// atomic read-modify-write of the whole serialized blob; there is no
// per-record addressing in the underlying medium.
package session

import (
	"strings"
	"time"
)

// Type identifies which interaction mode a session belongs to.
type Type string

const (
	// TypeGuided is the iterative thought-refinement flow.
	TypeGuided Type = "guided"

	// TypeDebate is the turn-based exchange against a fixed opponent persona.
	TypeDebate Type = "debate"
)

// Role identifies the author of a debate turn.
type Role string

const (
	// RoleUser marks a turn written by the user.
	RoleUser Role = "user"

	// RoleOpponent marks a turn produced by the opponent persona.
	RoleOpponent Role = "opponent"
)

// GuidedStep is one committed round of the guided flow: the corrected text
// produced by the coach plus the challenge question the user selected.
// Immutable once appended.
type GuidedStep struct {
	Step          int    `json:"step"`
	Thought       string `json:"thought"`
	FocusQuestion string `json:"focus_question"`
}

// DebateTurn is one utterance in a debate transcript. Turns are ordered and
// append-only.
type DebateTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Session is one complete guided-exploration or debate interaction,
// persisted as a unit. Exactly one of Guided/Debate is semantically active,
// selected by Type.
type Session struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Type      Type         `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Guided    []GuidedStep `json:"guided,omitempty"`
	Debate    []DebateTurn `json:"debate,omitempty"`
	Opponent  string       `json:"opponent,omitempty"`
}

// Empty reports whether the session has no committed content in either
// history. Empty sessions are never persisted.
func (s *Session) Empty() bool {
	return len(s.Guided) == 0 && len(s.Debate) == 0
}

// Clone returns a deep copy of the session. The Library hands out and accepts
// clones so callers can't mutate persisted state through shared slices.
func (s *Session) Clone() Session {
	out := *s
	if s.Guided != nil {
		out.Guided = make([]GuidedStep, len(s.Guided))
		copy(out.Guided, s.Guided)
	}
	if s.Debate != nil {
		out.Debate = make([]DebateTurn, len(s.Debate))
		copy(out.Debate, s.Debate)
	}
	return out
}

// maxTitleLen bounds derived titles so the session list stays readable.
const maxTitleLen = 48

// DeriveTitle builds a display title from the user's first input.
func DeriveTitle(input string) string {
	title := strings.Join(strings.Fields(input), " ")
	runes := []rune(title)
	if len(runes) <= maxTitleLen {
		return title
	}
	return strings.TrimSpace(string(runes[:maxTitleLen])) + "…"
}
