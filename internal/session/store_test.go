package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fjordlane/counterpoint/internal/errors"
	"github.com/fjordlane/counterpoint/internal/logging"
)

func newTestLibrary(t *testing.T) (*Library, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.json")
	medium, err := NewFileMedium(path)
	if err != nil {
		t.Fatalf("NewFileMedium() error = %v", err)
	}
	return NewLibrary(medium, logging.NopLogger()), path
}

func guidedSession(steps int) Session {
	s := Session{
		Title: "On remote work",
		Type:  TypeGuided,
	}
	for i := 1; i <= steps; i++ {
		s.Guided = append(s.Guided, GuidedStep{
			Step:          i,
			Thought:       "refined thought",
			FocusQuestion: "what follows from this?",
		})
	}
	return s
}

func TestLoadAllMissingFile(t *testing.T) {
	lib, _ := newTestLibrary(t)

	sessions := lib.LoadAll()
	if len(sessions) != 0 {
		t.Errorf("LoadAll() length = %d, want 0", len(sessions))
	}
}

func TestLoadAllCorruptFile(t *testing.T) {
	lib, path := newTestLibrary(t)

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	sessions := lib.LoadAll()
	if len(sessions) != 0 {
		t.Errorf("LoadAll() length = %d, want 0 for corrupt blob", len(sessions))
	}
}

func TestUpsertAssignsIDAndTimestamps(t *testing.T) {
	lib, _ := newTestLibrary(t)

	saved, err := lib.Upsert(guidedSession(1))
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("Upsert() should assign an ID")
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Error("Upsert() should stamp CreatedAt and UpdatedAt")
	}
}

func TestUpsertThenGetRoundTrip(t *testing.T) {
	lib, _ := newTestLibrary(t)

	saved, err := lib.Upsert(guidedSession(3))
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := lib.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Guided) != 3 {
		t.Fatalf("Guided length = %d, want 3", len(got.Guided))
	}
	for i, step := range got.Guided {
		if step.Step != i+1 {
			t.Errorf("Guided[%d].Step = %d, want %d", i, step.Step, i+1)
		}
	}
	if got.Title != "On remote work" {
		t.Errorf("Title = %q, want %q", got.Title, "On remote work")
	}
}

func TestUpsertEmptySessionIsNoOp(t *testing.T) {
	lib, path := newTestLibrary(t)

	empty := Session{Title: "nothing yet", Type: TypeGuided}
	saved, err := lib.Upsert(empty)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if saved.ID != "" {
		t.Errorf("empty session got ID %q, want none", saved.ID)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty session should not create the library file")
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	lib, _ := newTestLibrary(t)

	first, err := lib.Upsert(guidedSession(1))
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	first.Guided = append(first.Guided, GuidedStep{Step: 2, Thought: "more", FocusQuestion: "why?"})
	if _, err := lib.Upsert(first); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	sessions := lib.LoadAll()
	if len(sessions) != 1 {
		t.Fatalf("collection length = %d, want 1", len(sessions))
	}
	if len(sessions[0].Guided) != 2 {
		t.Errorf("Guided length = %d, want 2", len(sessions[0].Guided))
	}
}

func TestUpsertOrdersMostRecentFirst(t *testing.T) {
	lib, _ := newTestLibrary(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	lib.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	a, err := lib.Upsert(guidedSession(1))
	if err != nil {
		t.Fatalf("Upsert(a) error = %v", err)
	}
	b, err := lib.Upsert(guidedSession(1))
	if err != nil {
		t.Fatalf("Upsert(b) error = %v", err)
	}

	sessions := lib.LoadAll()
	if sessions[0].ID != b.ID {
		t.Errorf("head = %s, want most recent %s", sessions[0].ID, b.ID)
	}

	// Updating a moves it back to the head.
	a.Guided = append(a.Guided, GuidedStep{Step: 2, Thought: "t", FocusQuestion: "q"})
	if _, err := lib.Upsert(a); err != nil {
		t.Fatalf("Upsert(a again) error = %v", err)
	}

	sessions = lib.LoadAll()
	if sessions[0].ID != a.ID {
		t.Errorf("head = %s, want updated %s", sessions[0].ID, a.ID)
	}
	if len(sessions) != 2 {
		t.Errorf("collection length = %d, want 2", len(sessions))
	}
}

func TestRemove(t *testing.T) {
	lib, _ := newTestLibrary(t)

	saved, err := lib.Upsert(guidedSession(1))
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := lib.Remove(saved.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if _, err := lib.Get(saved.ID); !errors.Is(err, errors.ErrSessionNotFound) {
		t.Errorf("Get() after Remove() error = %v, want ErrSessionNotFound", err)
	}
}

func TestRemoveMissing(t *testing.T) {
	lib, _ := newTestLibrary(t)

	if err := lib.Remove("no-such-id"); !errors.Is(err, errors.ErrSessionNotFound) {
		t.Errorf("Remove() error = %v, want ErrSessionNotFound", err)
	}
}

func TestGetMissing(t *testing.T) {
	lib, _ := newTestLibrary(t)

	if _, err := lib.Get("no-such-id"); !errors.Is(err, errors.ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
}

func TestReloadReconstructsIdenticalSequence(t *testing.T) {
	lib, path := newTestLibrary(t)

	debate := Session{
		Title:    "Remote work improves productivity",
		Type:     TypeDebate,
		Opponent: "goodie",
		Debate: []DebateTurn{
			{Role: RoleUser, Text: "Remote work improves productivity"},
			{Role: RoleOpponent, Text: "Offices create accountability"},
			{Role: RoleUser, Text: "Commutes burn hours"},
		},
	}
	saved, err := lib.Upsert(debate)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Fresh Library over the same file simulates a restart.
	medium, err := NewFileMedium(path)
	if err != nil {
		t.Fatalf("NewFileMedium() error = %v", err)
	}
	reloaded := NewLibrary(medium, logging.NopLogger())

	got, err := reloaded.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get() after reload error = %v", err)
	}
	if len(got.Debate) != 3 {
		t.Fatalf("Debate length = %d, want 3", len(got.Debate))
	}
	for i, turn := range got.Debate {
		if turn != debate.Debate[i] {
			t.Errorf("Debate[%d] = %+v, want %+v", i, turn, debate.Debate[i])
		}
	}
	if got.Opponent != "goodie" {
		t.Errorf("Opponent = %q, want %q", got.Opponent, "goodie")
	}
}

func TestCloneIsolation(t *testing.T) {
	lib, _ := newTestLibrary(t)

	saved, err := lib.Upsert(guidedSession(1))
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := lib.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	got.Guided[0].Thought = "mutated"

	again, err := lib.Get(saved.ID)
	if err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
	if again.Guided[0].Thought == "mutated" {
		t.Error("mutating a returned session should not affect stored state")
	}
}
