package engine

// lights.go implements the light intent handler: on/off, explicit
// percentages, relative dim/brighten, and a read-only status line.

import (
	"fmt"
	"regexp"
	"strings"
)

// onBrightnessFloor is the minimum brightness applied when a specific
// room's light is switched on, so "turn on" never produces a dark lamp.
const onBrightnessFloor = 60

// brightnessStep is the delta applied by dim/brighten commands.
const brightnessStep = 20

// percentPattern extracts an explicit brightness level, e.g. "50%",
// "50 percent", or "50 brightness".
var percentPattern = regexp.MustCompile(`(\d{1,3})\s*(?:%|percent|brightness)`)

// resolveRoom finds the first configured alias contained in the text and
// returns its room key. Alias order is the priority order.
func (e *Engine) resolveRoom(text string) (string, bool) {
	for _, a := range e.aliases {
		if strings.Contains(text, a.alias) {
			return a.room, true
		}
	}
	return "", false
}

// roomKeys returns the configured room keys in declaration order, so
// whole-house operations apply deterministically.
func (e *Engine) roomKeys() []string {
	keys := make([]string, 0, len(e.config.Rooms))
	for _, r := range e.config.Rooms {
		keys = append(keys, r.Key)
	}
	return keys
}

func (e *Engine) handleLights(st *State, text string) *Result {
	room, hasRoom := e.resolveRoom(text)

	switch {
	case strings.Contains(text, "turn on") || strings.Contains(text, "switch on"):
		if hasRoom {
			l := st.Lights[room]
			l.On = true
			if l.Brightness < onBrightnessFloor {
				l.Brightness = onBrightnessFloor
			}
			return &Result{
				Reply:   fmt.Sprintf("Turned on the %s lights at %d%% brightness.", l.Location, l.Brightness),
				Actions: []string{fmt.Sprintf("Turned on %s light (brightness %d%%)", l.Location, l.Brightness)},
			}
		}
		actions := make([]string, 0, len(st.Lights))
		for _, key := range e.roomKeys() {
			l := st.Lights[key]
			l.On = true
			if l.Brightness < onBrightnessFloor {
				l.Brightness = onBrightnessFloor
			}
			actions = append(actions, fmt.Sprintf("Turned on %s light (brightness %d%%)", l.Location, l.Brightness))
		}
		return &Result{Reply: "Turned on all the lights.", Actions: actions}

	case strings.Contains(text, "turn off") || strings.Contains(text, "switch off"):
		if hasRoom {
			l := st.Lights[room]
			l.On = false
			return &Result{
				Reply:   fmt.Sprintf("Turned off the %s lights.", l.Location),
				Actions: []string{fmt.Sprintf("Turned off %s light", l.Location)},
			}
		}
		actions := make([]string, 0, len(st.Lights))
		for _, key := range e.roomKeys() {
			l := st.Lights[key]
			l.On = false
			actions = append(actions, fmt.Sprintf("Turned off %s light", l.Location))
		}
		return &Result{Reply: "Turned off all the lights.", Actions: actions}
	}

	// Explicit percentage only applies when a room was identified; a bare
	// "set to 50%" with no room falls through to the next handler.
	if hasRoom {
		if m := percentPattern.FindStringSubmatch(text); m != nil {
			level := clamp(atoiSafe(m[1]), 0, 100)
			l := st.Lights[room]
			l.Brightness = level
			l.On = level > 0
			return &Result{
				Reply:   fmt.Sprintf("Set the %s lights to %d%%.", l.Location, level),
				Actions: []string{fmt.Sprintf("Set %s light brightness to %d%%", l.Location, level)},
			}
		}
	}

	switch {
	case strings.Contains(text, "dim") || strings.Contains(text, "lower"):
		return e.adjustBrightness(st, room, hasRoom, -brightnessStep)
	case strings.Contains(text, "brighten") || strings.Contains(text, "increase"):
		return e.adjustBrightness(st, room, hasRoom, brightnessStep)
	}

	if strings.Contains(text, "status") && strings.Contains(text, "light") {
		return &Result{Reply: e.lightsSummary(st), Actions: []string{}}
	}

	return nil
}

// adjustBrightness applies a relative brightness change to one room or,
// when no room was identified, to every room. A positive delta forces the
// light on; any adjustment keeps On consistent with Brightness > 0.
func (e *Engine) adjustBrightness(st *State, room string, hasRoom bool, delta int) *Result {
	verb := "Dimmed"
	if delta > 0 {
		verb = "Brightened"
	}

	apply := func(l *Light) {
		l.Brightness = clamp(l.Brightness+delta, 0, 100)
		if delta > 0 {
			l.On = true
		} else {
			l.On = l.Brightness > 0
		}
	}

	if hasRoom {
		l := st.Lights[room]
		apply(l)
		return &Result{
			Reply:   fmt.Sprintf("%s the %s lights to %d%%.", verb, l.Location, l.Brightness),
			Actions: []string{fmt.Sprintf("%s %s light to %d%%", verb, l.Location, l.Brightness)},
		}
	}

	actions := make([]string, 0, len(st.Lights))
	for _, key := range e.roomKeys() {
		l := st.Lights[key]
		apply(l)
		actions = append(actions, fmt.Sprintf("%s %s light to %d%%", verb, l.Location, l.Brightness))
	}
	return &Result{
		Reply:   fmt.Sprintf("%s all the lights.", verb),
		Actions: actions,
	}
}

// lightsSummary renders the one-line light status used by status queries
// and the full household report.
func (e *Engine) lightsSummary(st *State) string {
	parts := make([]string, 0, len(st.Lights))
	for _, key := range e.roomKeys() {
		l := st.Lights[key]
		if l.On {
			parts = append(parts, fmt.Sprintf("%s on at %d%%", l.Location, l.Brightness))
		} else {
			parts = append(parts, fmt.Sprintf("%s off", l.Location))
		}
	}
	return "Lights: " + strings.Join(parts, ", ") + "."
}

// atoiSafe parses digits already matched by a regexp; out-of-range values
// saturate instead of failing.
func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
		if n > 1000 {
			return 1000
		}
	}
	return n
}
