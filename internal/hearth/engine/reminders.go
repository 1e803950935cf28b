package engine

// reminders.go implements the reminder (task) intent handler. Unlike the
// other handlers, the "complete" branch always produces a final reply —
// even when no task matches — so a failed lookup never falls through to
// the dispatcher's fallback chain.

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

func (e *Engine) handleReminders(st *State, text string) *Result {
	switch {
	case strings.Contains(text, "add") && strings.Contains(text, "reminder"):
		// The title is everything after the last "reminder" in the text,
		// minus a leading connective "to".
		idx := strings.LastIndex(text, "reminder")
		title := strings.TrimSpace(text[idx+len("reminder"):])
		if title == "s" || strings.HasPrefix(title, "s ") {
			title = strings.TrimSpace(strings.TrimPrefix(title, "s"))
		}
		title = strings.TrimSpace(strings.TrimPrefix(title, "to "))
		if title == "" {
			return &Result{
				Reply:   "What should the reminder say? Try \"add a reminder to water the plants\".",
				Actions: []string{},
			}
		}
		title = capitalise(title)
		task := &Task{
			ID:        uuid.New().String(),
			Title:     title,
			Completed: false,
		}
		st.Tasks = append(st.Tasks, task)
		return &Result{
			Reply:   fmt.Sprintf("Added a reminder: %s.", title),
			Actions: []string{fmt.Sprintf("Added reminder %q", title)},
		}

	case strings.Contains(text, "list") && strings.Contains(text, "reminder"):
		if len(st.Tasks) == 0 {
			return &Result{Reply: "You have no reminders.", Actions: []string{}}
		}
		var open []string
		for _, t := range st.Tasks {
			if !t.Completed {
				open = append(open, "• "+t.Title)
			}
		}
		if len(open) == 0 {
			return &Result{Reply: "All your reminders are done.", Actions: []string{}}
		}
		return &Result{
			Reply:   "Here are your reminders:\n" + strings.Join(open, "\n"),
			Actions: []string{},
		}
	}

	for _, kw := range []string{"complete", "done with"} {
		idx := strings.Index(text, kw)
		if idx < 0 {
			continue
		}
		query := strings.TrimSpace(text[idx+len(kw):])
		query = strings.TrimSpace(strings.TrimPrefix(query, "the "))
		for _, t := range st.Tasks {
			if query != "" && strings.Contains(strings.ToLower(t.Title), query) {
				t.Completed = true
				return &Result{
					Reply:   fmt.Sprintf("Marked %q as done.", t.Title),
					Actions: []string{fmt.Sprintf("Completed reminder %q", t.Title)},
				}
			}
		}
		// A miss is still a final answer: the chain must not continue to
		// reinterpret a reminder phrase as some other domain's command.
		return &Result{
			Reply:   fmt.Sprintf("I couldn't find a reminder matching %q.", query),
			Actions: []string{},
		}
	}

	return nil
}

// remindersSummary renders the one-line reminder status used in the full
// household report.
func remindersSummary(st *State) string {
	open := 0
	for _, t := range st.Tasks {
		if !t.Completed {
			open++
		}
	}
	if open == 0 {
		return "Reminders: none outstanding."
	}
	return fmt.Sprintf("Reminders: %d outstanding.", open)
}

// capitalise uppercases only the first character of s.
func capitalise(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
