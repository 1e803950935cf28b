package engine

// security.go implements the security intent handler. "disarm" is checked
// before "arm" (the former contains the latter), and the status phrases are
// checked before the bare "arm" keyword so "alarm status" reads state
// instead of arming the house.

import (
	"fmt"
	"strings"
)

func (e *Engine) handleSecurity(st *State, text string) *Result {
	switch {
	case strings.Contains(text, "disarm"):
		st.Security.Armed = false
		// Mode is deliberately left as-is; disarming does not reset it.
		return &Result{
			Reply:   "Security system disarmed.",
			Actions: []string{"Disarmed security system"},
		}
	case strings.Contains(text, "security status") || strings.Contains(text, "alarm status"):
		return &Result{Reply: securitySummary(st), Actions: []string{}}
	case strings.Contains(text, "arm"):
		mode := SecurityHome
		if strings.Contains(text, "away") {
			mode = SecurityAway
		}
		st.Security.Armed = true
		st.Security.Mode = mode
		return &Result{
			Reply:   fmt.Sprintf("Security system armed in %s mode.", mode),
			Actions: []string{fmt.Sprintf("Armed security system (%s)", mode)},
		}
	}

	return nil
}

// securitySummary renders the one-line security status.
func securitySummary(st *State) string {
	if !st.Security.Armed {
		return "Security: currently disarmed."
	}
	return fmt.Sprintf("Security: Armed (%s).", strings.ToUpper(string(st.Security.Mode)))
}
