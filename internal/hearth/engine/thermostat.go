package engine

// thermostat.go implements the thermostat intent handler. The numeric check
// runs first: a two-digit number in the text always means a setpoint change,
// even when a mode keyword appears in the same utterance.

import (
	"fmt"
	"regexp"
	"strings"
)

// Thermostat setpoint bounds in °F.
const (
	minTemperature = 55
	maxTemperature = 85
)

// temperaturePattern matches a standalone two-digit number, optionally
// followed by a degree marker.
var temperaturePattern = regexp.MustCompile(`\b(\d{2})\b\s*(?:degrees|°)?`)

func (e *Engine) handleThermostat(st *State, text string) *Result {
	if m := temperaturePattern.FindStringSubmatch(text); m != nil {
		temp := clamp(atoiSafe(m[1]), minTemperature, maxTemperature)
		st.Thermostat.Temperature = temp
		return &Result{
			Reply:   fmt.Sprintf("Thermostat set to %d°F.", temp),
			Actions: []string{fmt.Sprintf("Set thermostat to %d°F", temp)},
		}
	}

	switch {
	case strings.Contains(text, "cool") || strings.Contains(text, "ac"):
		st.Thermostat.Mode = ModeCool
		return &Result{
			Reply:   "Thermostat switched to cooling.",
			Actions: []string{"Set thermostat mode to cool"},
		}
	case strings.Contains(text, "heat") || strings.Contains(text, "heating"):
		st.Thermostat.Mode = ModeHeat
		return &Result{
			Reply:   "Thermostat switched to heating.",
			Actions: []string{"Set thermostat mode to heat"},
		}
	case strings.Contains(text, "eco") || strings.Contains(text, "energy saver"):
		st.Thermostat.Mode = ModeEco
		return &Result{
			Reply:   "Thermostat switched to eco mode.",
			Actions: []string{"Set thermostat mode to eco"},
		}
	case strings.Contains(text, "turn off") && strings.Contains(text, "thermostat"):
		st.Thermostat.Mode = ModeOff
		return &Result{
			Reply:   "Thermostat turned off.",
			Actions: []string{"Set thermostat mode to off"},
		}
	case strings.Contains(text, "temperature") || strings.Contains(text, "thermostat"):
		return &Result{Reply: thermostatSummary(st), Actions: []string{}}
	}

	return nil
}

// thermostatSummary renders the one-line thermostat status.
func thermostatSummary(st *State) string {
	return fmt.Sprintf("Thermostat: %d°F, mode %s.", st.Thermostat.Temperature, st.Thermostat.Mode)
}
