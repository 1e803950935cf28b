package engine

// RoomConfig describes one room the engine controls: its canonical key,
// the display name used in replies, the phrases that resolve to it, and
// the brightness its light resets to.
//
// Alias order is load-bearing: aliases are probed by substring containment
// in the order given, and the first hit wins. Matching is deliberately
// unscoped — "cook" inside "cookbook" resolves to the kitchen — because the
// vocabulary is fixed and behaviour must stay deterministic.
type RoomConfig struct {
	Key        string
	Name       string
	Aliases    []string
	Brightness int
}

// Config carries the room vocabulary and the default state the household
// resets to. A zero Config is not usable; start from DefaultConfig.
type Config struct {
	Rooms       []RoomConfig
	Temperature int
	Mode        ThermostatMode
	Volume      int
}

// DefaultConfig returns the built-in home: three rooms with their spoken
// aliases, thermostat at 70°F cooling, music idle at volume 40.
func DefaultConfig() Config {
	return Config{
		Rooms: []RoomConfig{
			{Key: "living", Name: "living room", Aliases: []string{"living room", "lounge", "living"}, Brightness: 70},
			{Key: "kitchen", Name: "kitchen", Aliases: []string{"kitchen", "cook"}, Brightness: 70},
			{Key: "bedroom", Name: "bedroom", Aliases: []string{"bedroom", "bed", "master"}, Brightness: 70},
		},
		Temperature: 70,
		Mode:        ModeCool,
		Volume:      40,
	}
}
