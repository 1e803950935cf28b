package engine

import (
	"strings"
	"testing"
)

func TestLightsTurnOnRoom(t *testing.T) {
	e := newTestEngine(t)

	resp := e.Process("turn on the living room lights")
	if resp.Reply != "Turned on the living room lights at 70% brightness." {
		t.Fatalf("reply = %q", resp.Reply)
	}
	l := resp.State.Lights["living"]
	if !l.On || l.Brightness != 70 {
		t.Errorf("living light = %+v, want on at 70%%", l)
	}
	if k := resp.State.Lights["kitchen"]; k.On {
		t.Errorf("kitchen light switched on as a side effect: %+v", k)
	}
}

func TestLightsOnAppliesBrightnessFloor(t *testing.T) {
	e := newTestEngine(t)

	// Drop brightness below the floor, switch off, then turn back on.
	e.Process("set the bedroom lights to 10%")
	e.Process("turn off the bedroom lights")

	resp := e.Process("turn on the bedroom lights")
	l := resp.State.Lights["bedroom"]
	if !l.On || l.Brightness != onBrightnessFloor {
		t.Errorf("bedroom light = %+v, want on at the %d%% floor", l, onBrightnessFloor)
	}
}

func TestLightsTurnOnAll(t *testing.T) {
	e := newTestEngine(t)

	resp := e.Process("turn on all the lights")
	if resp.Reply != "Turned on all the lights." {
		t.Fatalf("reply = %q", resp.Reply)
	}
	if len(resp.Actions) != 3 {
		t.Fatalf("actions = %v, want one per room", resp.Actions)
	}
	for key, l := range resp.State.Lights {
		if !l.On {
			t.Errorf("light %q = %+v, want on", key, l)
		}
	}
}

func TestLightsTurnOffRoomKeepsBrightness(t *testing.T) {
	e := newTestEngine(t)

	e.Process("set the kitchen lights to 85%")
	resp := e.Process("turn off the kitchen lights")

	if resp.Reply != "Turned off the kitchen lights." {
		t.Fatalf("reply = %q", resp.Reply)
	}
	l := resp.State.Lights["kitchen"]
	if l.On {
		t.Errorf("kitchen light still on: %+v", l)
	}
	if l.Brightness != 85 {
		t.Errorf("brightness = %d, want retained 85", l.Brightness)
	}
}

func TestLightsExplicitPercent(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		command    string
		room       string
		brightness int
		on         bool
	}{
		{"set the living room lights to 45%", "living", 45, true},
		{"set the kitchen lights to 45 percent", "kitchen", 45, true},
		{"kitchen lights to 0%", "kitchen", 0, false},
		{"set the bedroom lights to 250%", "bedroom", 100, true},
	}
	for _, tt := range tests {
		resp := e.Process(tt.command)
		l := resp.State.Lights[tt.room]
		if l.Brightness != tt.brightness || l.On != tt.on {
			t.Errorf("%q: light = %+v, want brightness %d on=%v", tt.command, l, tt.brightness, tt.on)
		}
	}
}

func TestLightsDimAndBrighten(t *testing.T) {
	e := newTestEngine(t)

	resp := e.Process("dim the living room lights")
	if l := resp.State.Lights["living"]; l.Brightness != 50 {
		t.Fatalf("after dim: %+v, want 50%%", l)
	}

	resp = e.Process("brighten the living room lights")
	l := resp.State.Lights["living"]
	if l.Brightness != 70 || !l.On {
		t.Fatalf("after brighten: %+v, want on at 70%%", l)
	}

	// Dimming to zero turns the light off.
	e.Process("set the living room lights to 15%")
	resp = e.Process("dim the living room lights")
	l = resp.State.Lights["living"]
	if l.Brightness != 0 || l.On {
		t.Errorf("after dim to floor: %+v, want off at 0%%", l)
	}
}

func TestLightsDimAllClampsAtZero(t *testing.T) {
	e := newTestEngine(t)

	for i := 0; i < 5; i++ {
		e.Process("dim the lights")
	}
	for key, l := range e.Snapshot().Lights {
		if l.Brightness != 0 || l.On {
			t.Errorf("light %q = %+v, want off at 0%%", key, l)
		}
	}
}

func TestLightsStatus(t *testing.T) {
	e := newTestEngine(t)
	e.Process("turn on the lounge lights")

	resp := e.Process("light status")
	want := "Lights: living room on at 70%, kitchen off, bedroom off."
	if resp.Reply != want {
		t.Errorf("reply = %q, want %q", resp.Reply, want)
	}
	if len(resp.Actions) != 0 {
		t.Errorf("status query produced actions: %v", resp.Actions)
	}
}

func TestLightsDeclinesUnrelatedText(t *testing.T) {
	e := newTestEngine(t)
	st := e.store.State()

	for _, text := range []string{"play some jazz", "arm the alarm", "add a reminder to call mom"} {
		if res := e.handleLights(st, text); res != nil {
			t.Errorf("handleLights(%q) = %+v, want decline", text, res)
		}
	}
}

func TestAtoiSafeSaturates(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"42", 42},
		{"100", 100},
		{"999", 999},
		{"99999", 1000},
	}
	for _, tt := range tests {
		if got := atoiSafe(tt.in); got != tt.want {
			t.Errorf("atoiSafe(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLightsSummaryOrderIsStable(t *testing.T) {
	e := newTestEngine(t)
	st := e.store.State()

	first := e.lightsSummary(st)
	for i := 0; i < 20; i++ {
		if got := e.lightsSummary(st); got != first {
			t.Fatalf("summary order varies: %q vs %q", got, first)
		}
	}
	if !strings.HasPrefix(first, "Lights: living room") {
		t.Errorf("summary = %q, want living room first", first)
	}
}
