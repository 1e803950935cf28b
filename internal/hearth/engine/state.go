package engine

// state.go defines the household state model and the StateStore that owns it.
//
// The canonical state lives in process memory for the lifetime of the
// process. Handlers receive it by reference and mutate fields directly;
// everything that leaves the engine is a deep, field-by-field copy so
// callers can never reach back into live state through a response.

import "time"

// ThermostatMode is the thermostat operating mode.
type ThermostatMode string

const (
	ModeCool ThermostatMode = "cool"
	ModeHeat ThermostatMode = "heat"
	ModeEco  ThermostatMode = "eco"
	ModeOff  ThermostatMode = "off"
)

// SecurityMode distinguishes home and away arming profiles.
type SecurityMode string

const (
	SecurityHome SecurityMode = "home"
	SecurityAway SecurityMode = "away"
)

// Light is the state of one room's light.
type Light struct {
	Location   string `json:"location"`
	On         bool   `json:"on"`
	Brightness int    `json:"brightness"` // percent, always within [0,100]
}

// Thermostat is the whole-home thermostat state.
type Thermostat struct {
	Temperature int            `json:"temperature"` // °F, always within [55,85]
	Mode        ThermostatMode `json:"mode"`
}

// Music is the playback state. Track may be non-empty while Playing is
// false: pausing retains the track so context survives a later resume.
type Music struct {
	Playing bool   `json:"playing"`
	Track   string `json:"track"`
	Volume  int    `json:"volume"` // percent, always within [0,100]
}

// Security is the alarm state. Disarming leaves Mode untouched.
type Security struct {
	Armed bool         `json:"armed"`
	Mode  SecurityMode `json:"mode"`
}

// Task is a reminder. Tasks are created, completed, and listed — never
// deleted (except by a full reset).
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// State is the root household aggregate. It is owned exclusively by the
// StateStore; handlers mutate it in place during their turn in the chain.
type State struct {
	Lights      map[string]*Light
	Thermostat  Thermostat
	Music       Music
	Security    Security
	Tasks       []*Task
	LastUpdated time.Time
}

// Snapshot is a deep, independent copy of State handed to callers.
// Mutating a Snapshot never affects subsequent engine calls.
type Snapshot struct {
	Lights      map[string]Light `json:"lights"`
	Thermostat  Thermostat       `json:"thermostat"`
	Music       Music            `json:"music"`
	Security    Security         `json:"security"`
	Tasks       []Task           `json:"tasks"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

// StateStore owns the canonical household state and the defaults it resets to.
type StateStore struct {
	config Config
	state  *State
}

// NewStateStore builds a store initialised to the defaults described by cfg.
func NewStateStore(cfg Config) *StateStore {
	s := &StateStore{config: cfg}
	s.state = s.defaultState()
	return s
}

// State returns the live state by reference. Only handlers should call this;
// everything outside the engine gets a Snapshot instead.
func (s *StateStore) State() *State {
	return s.state
}

// Reset discards the current state and restores the configured defaults.
func (s *StateStore) Reset() {
	s.state = s.defaultState()
}

// defaultState constructs a fresh State from the configured defaults.
func (s *StateStore) defaultState() *State {
	lights := make(map[string]*Light, len(s.config.Rooms))
	for _, room := range s.config.Rooms {
		lights[room.Key] = &Light{
			Location:   room.Name,
			On:         false,
			Brightness: room.Brightness,
		}
	}
	return &State{
		Lights: lights,
		Thermostat: Thermostat{
			Temperature: s.config.Temperature,
			Mode:        s.config.Mode,
		},
		Music: Music{
			Playing: false,
			Track:   "",
			Volume:  s.config.Volume,
		},
		Security: Security{
			Armed: false,
			Mode:  SecurityHome,
		},
		Tasks: []*Task{},
	}
}

// Snapshot produces a deep copy of the current state. The copy is built
// field by field — nested containers are reconstructed, not aliased.
func (s *StateStore) Snapshot() Snapshot {
	st := s.state

	lights := make(map[string]Light, len(st.Lights))
	for key, l := range st.Lights {
		lights[key] = *l
	}

	tasks := make([]Task, 0, len(st.Tasks))
	for _, t := range st.Tasks {
		tasks = append(tasks, *t)
	}

	return Snapshot{
		Lights:      lights,
		Thermostat:  st.Thermostat,
		Music:       st.Music,
		Security:    st.Security,
		Tasks:       tasks,
		LastUpdated: st.LastUpdated,
	}
}

// clamp bounds v to the inclusive range [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
