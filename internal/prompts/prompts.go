// Package prompts holds the fixed instruction strings and the structured
// output schema sent to the generation service, plus helpers that flatten a
// session transcript into the textual history the summary calls expect.
package prompts

import (
	"fmt"
	"strings"

	"github.com/fjordlane/counterpoint/internal/persona"
	"github.com/fjordlane/counterpoint/internal/session"
)

// CoachingInstruction is sent with every guided-mode refinement request.
const CoachingInstruction = "You are a writing and thinking coach. " +
	"Rewrite the user's thought so it is clear, precise, and well-argued without changing its meaning. " +
	"Then pose exactly three challenge questions that probe the weakest parts of the thought. " +
	"Respond only with the requested JSON."

// BlogSummaryInstruction is sent with the flattened guided transcript.
const BlogSummaryInstruction = "Turn the following sequence of refined thoughts and the questions " +
	"that drove them into a short, coherent blog post. Write in first person, keep the reasoning " +
	"honest about open questions, and do not invent material that is not in the transcript."

// DebateSummaryInstruction is sent with the flattened debate transcript.
const DebateSummaryInstruction = "Summarize the following debate. State the user's claim, the " +
	"strongest arguments on each side, and where the exchange left off. Stay neutral; do not " +
	"declare a winner."

// DebateSystem builds the system instruction for a debate with the given
// opponent persona.
func DebateSystem(p persona.Persona) string {
	return p.Instruction + " Reply with your next debate turn only, no preamble."
}

// RefinementSchema is the output schema for the structured call: a corrected
// free-text field plus exactly three challenge questions. Shaped for the
// chat-completions json_schema response format.
func RefinementSchema() map[string]any {
	return map[string]any{
		"name":   "thought_refinement",
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"corrected": map[string]any{
					"type":        "string",
					"description": "The user's thought, rewritten clearly without changing its meaning.",
				},
				"questions": map[string]any{
					"type":        "array",
					"description": "Exactly three challenge questions probing the thought.",
					"items":       map[string]any{"type": "string"},
					"minItems":    3,
					"maxItems":    3,
				},
			},
			"required":             []string{"corrected", "questions"},
			"additionalProperties": false,
		},
	}
}

// FlattenGuided renders a guided history as the textual transcript the
// summary call shape expects.
func FlattenGuided(steps []session.GuidedStep) string {
	var b strings.Builder
	for i, step := range steps {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Step %d:\n%s\nFocus question: %s", step.Step, step.Thought, step.FocusQuestion)
	}
	return b.String()
}

// FlattenDebate renders a debate history as role-tagged lines.
func FlattenDebate(turns []session.DebateTurn) string {
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		label := "User"
		if turn.Role == session.RoleOpponent {
			label = "Opponent"
		}
		fmt.Fprintf(&b, "%s: %s", label, turn.Text)
	}
	return b.String()
}
