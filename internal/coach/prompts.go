package coach

import (
	"fmt"
	"strings"
	"time"

	"github.com/grappleflow/grappleflow/internal/model"
)

const maxSummarySessions = 10

// analyzePrompt summarizes the most recent sessions for pattern analysis.
// Sessions are expected newest-first, as the store returns them.
func analyzePrompt(sessions []model.Session) string {
	if len(sessions) > maxSummarySessions {
		sessions = sessions[:maxSummarySessions]
	}

	lines := make([]string, 0, len(sessions))
	for _, s := range sessions {
		names := make([]string, 0, len(s.Techniques))
		for _, t := range s.Techniques {
			names = append(names, t.Name)
		}
		lines = append(lines, fmt.Sprintf("Date: %s, Type: %s, Mood: %s, Notes: %s, Techniques: %s",
			s.Date.Format(time.DateOnly), s.Type, s.Mood, s.Notes, strings.Join(names, ", ")))
	}

	return fmt.Sprintf(`Analyze these recent BJJ training sessions. Identify 1 key strength and 1 specific area for improvement.
Suggest a drill or focus for the next week.

Sessions:
%s`, strings.Join(lines, "\n"))
}

// insightPrompt renders a challenge's lab notebook history and asks for
// the next scientific step. Entries must already be in chronological
// order.
func insightPrompt(challenge model.Challenge, entries []model.LabEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("[%s] %s: %s", e.Date.Format(time.RFC3339), strings.ToUpper(e.Type), e.Content)
		if e.Result != "" {
			line += fmt.Sprintf(" (Result: %s)", e.Result)
		}
		lines = append(lines, line)
	}

	return fmt.Sprintf(`You are a scientific BJJ analyst. Help the student solve this specific challenge using the Scientific Method.

Challenge: %s
Category: %s

Lab Notebook History:
%s

Based on the history:
1. If the last entry was a FAILURE or OBSERVATION: Propose a new specific technical Hypothesis (solution) to test.
2. If the last entry was a SUCCESS: Suggest how to refine or drill it to make it permanent.
3. If the history is empty: Provide an initial Hypothesis based on standard high-percentage BJJ mechanics.

Keep it concise. Focus on biomechanics and leverage.`,
		challenge.Title, challenge.Category, strings.Join(lines, "\n"))
}

// RecentNotes joins up to limit most recent session notes for use as
// question context.
func RecentNotes(sessions []model.Session, limit int) string {
	var notes []string
	for _, s := range sessions {
		if len(notes) == limit {
			break
		}
		if strings.TrimSpace(s.Notes) != "" {
			notes = append(notes, s.Notes)
		}
	}
	return strings.Join(notes, "; ")
}
