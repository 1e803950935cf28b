// Package engine implements the command interpretation and state-mutation
// core of Hearth: a free-text command goes in, a deterministic state
// transition plus human-readable feedback comes out.
//
// Interpretation is deterministic keyword and pattern matching — no LLM is
// involved, consistent with the design principle that control decisions
// must be reproducible. Five intent handlers are probed in a fixed order;
// the first one that recognises the command wins and the rest are skipped.
// When every handler declines, a fallback chain answers with a reset, a
// full status report, or a guidance reply.
//
// The engine is synchronous and single-owner: one command is fully
// interpreted and applied before Process returns. It is not safe for
// concurrent callers — transports must serialise access.
package engine

import (
	"strings"
	"time"
)

// Result is what a handler returns when it recognises a command: the reply
// for the user and the ordered log of mutations it performed. A nil Result
// means the handler declined and the dispatcher should try the next one.
type Result struct {
	Reply   string
	Actions []string
}

// Response is the outcome of one processed command. State is a deep copy;
// Actions covers this call only and is never nil.
type Response struct {
	Reply   string   `json:"reply"`
	Actions []string `json:"actions"`
	State   Snapshot `json:"state"`
}

// handlerFunc inspects the normalised command text and either mutates state
// and returns a Result, or returns nil to decline.
type handlerFunc func(st *State, text string) *Result

// intentHandler pairs a handler with its name for logging and tests.
type intentHandler struct {
	name   string
	handle handlerFunc
}

// Engine wires the state store to the ordered handler chain.
type Engine struct {
	config  Config
	store   *StateStore
	aliases []roomAlias
	chain   []intentHandler
}

// roomAlias maps one spoken phrase to a canonical room key. The flattened
// alias list preserves configuration order, which is the match priority.
type roomAlias struct {
	alias string
	room  string
}

// New builds an Engine with its state initialised to cfg's defaults.
func New(cfg Config) *Engine {
	e := &Engine{
		config: cfg,
		store:  NewStateStore(cfg),
	}
	for _, room := range cfg.Rooms {
		for _, a := range room.Aliases {
			e.aliases = append(e.aliases, roomAlias{alias: a, room: room.Key})
		}
	}
	// Probing order is fixed and load-bearing: a command mentioning both
	// "status" and "reminder" must reach the reminder handler, and a
	// reminder "complete" miss is a final answer, not a decline.
	e.chain = []intentHandler{
		{name: "lights", handle: e.handleLights},
		{name: "thermostat", handle: e.handleThermostat},
		{name: "music", handle: e.handleMusic},
		{name: "security", handle: e.handleSecurity},
		{name: "reminders", handle: e.handleReminders},
	}
	return e
}

// Snapshot returns a deep copy of the current household state without
// processing a command.
func (e *Engine) Snapshot() Snapshot {
	return e.store.Snapshot()
}

// Process interprets one raw command and applies its effects. It never
// fails: unrecognised input produces a guidance reply and no mutation.
func (e *Engine) Process(raw string) Response {
	text := strings.ToLower(strings.TrimSpace(raw))
	st := e.store.State()

	if text == "" {
		st.LastUpdated = time.Now()
		return Response{
			Reply:   "I didn't catch that. Tell me what you'd like me to do around the house.",
			Actions: []string{},
			State:   e.store.Snapshot(),
		}
	}

	res := e.dispatch(st, text)

	// The store may have been swapped by a reset; restamp on the live state.
	e.store.State().LastUpdated = time.Now()

	if res.Actions == nil {
		res.Actions = []string{}
	}
	return Response{
		Reply:   res.Reply,
		Actions: res.Actions,
		State:   e.store.Snapshot(),
	}
}

// dispatch probes the handler chain and falls back to reset / status /
// guidance when every handler declines.
func (e *Engine) dispatch(st *State, text string) *Result {
	for _, h := range e.chain {
		if res := h.handle(st, text); res != nil {
			return res
		}
	}

	// Reset is checked before the status keywords so that "reset
	// everything" restores defaults instead of reporting them.
	if strings.Contains(text, "reset") {
		e.store.Reset()
		return &Result{
			Reply:   "Done. Everything is back to its default state.",
			Actions: []string{"Restored the default household state"},
		}
	}

	if strings.Contains(text, "status") || strings.Contains(text, "everything") {
		return &Result{
			Reply:   e.statusReport(st),
			Actions: []string{},
		}
	}

	return &Result{
		Reply: "I'm not sure how to help with that. Try things like " +
			"\"turn on the living room lights\", \"set the thermostat to 72\", " +
			"\"play some jazz\", \"arm the security system\", or \"add a reminder to water the plants\".",
		Actions: []string{},
	}
}

// statusReport concatenates each domain's one-line summary.
func (e *Engine) statusReport(st *State) string {
	lines := []string{
		"Here's the state of the house:",
		e.lightsSummary(st),
		thermostatSummary(st),
		musicSummary(st),
		securitySummary(st),
		remindersSummary(st),
	}
	return strings.Join(lines, "\n")
}
