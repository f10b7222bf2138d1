// Package persona defines the fixed set of debate-opponent behavior
// profiles. Personas are read-only reference data; sessions persist only the
// persona key.
package persona

import (
	"sort"

	"github.com/fjordlane/counterpoint/internal/errors"
)

// Persona is one predefined opponent profile. The Instruction is bound to
// every generation call for a debate session once the persona is selected.
type Persona struct {
	Key         string
	DisplayName string
	Description string
	Instruction string
}

var personas = map[string]Persona{
	"goodie": {
		Key:         "goodie",
		DisplayName: "The Good-Faith Opponent",
		Description: "Argues the other side earnestly and charitably, conceding strong points.",
		Instruction: "You argue the opposite position of the user's claim in good faith. " +
			"Steelman their argument before countering it, concede points that are genuinely strong, " +
			"and keep each reply to a few sentences of plain, direct prose.",
	},
	"hardliner": {
		Key:         "hardliner",
		DisplayName: "The Hardliner",
		Description: "Concedes nothing and attacks every weakness in the argument.",
		Instruction: "You argue the opposite position of the user's claim and you never concede. " +
			"Find the weakest link in their latest point and attack it directly. " +
			"Stay civil but relentless, and keep each reply to a few sentences.",
	},
	"scholar": {
		Key:         "scholar",
		DisplayName: "The Scholar",
		Description: "Counters with evidence, definitions, and careful distinctions.",
		Instruction: "You argue the opposite position of the user's claim like a careful academic. " +
			"Question definitions, demand evidence, and draw distinctions the user has glossed over. " +
			"Cite the kind of evidence that would settle the point. Keep each reply to a few sentences.",
	},
	"provocateur": {
		Key:         "provocateur",
		DisplayName: "The Provocateur",
		Description: "Needles assumptions with pointed, uncomfortable questions.",
		Instruction: "You argue the opposite position of the user's claim by provoking. " +
			"Expose the assumption they least want examined and push on it with pointed questions. " +
			"Be sharp, never abusive, and keep each reply to a few sentences.",
	},
}

// Get returns the persona for the given key.
// Returns errors.ErrUnknownPersona for keys outside the fixed set.
func Get(key string) (Persona, error) {
	p, ok := personas[key]
	if !ok {
		return Persona{}, errors.Wrapf(errors.ErrUnknownPersona, "persona %q", key)
	}
	return p, nil
}

// All returns every persona, ordered by key for stable display.
func All() []Persona {
	out := make([]Persona, 0, len(personas))
	for _, p := range personas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Valid reports whether key names one of the fixed personas.
func Valid(key string) bool {
	_, ok := personas[key]
	return ok
}
