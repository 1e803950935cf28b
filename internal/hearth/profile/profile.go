// Package profile loads the home profile: the rooms Hearth controls, the
// spoken aliases that resolve to them, and the defaults the household
// resets to.
//
// The profile is a YAML document validated in two passes: structurally
// against an embedded JSON schema, then semantically (unique room keys,
// non-empty aliases). When no profile file is configured the built-in
// default matches the engine's fixed vocabulary.
package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/hearth-home/hearth/internal/hearth/engine"
)

//go:embed schema.json
var schemaJSON string

// schema is compiled once at package init; the embedded document is
// trusted build-time content, so a failure here is a programming error.
var schema = jsonschema.MustCompileString("profile/schema.json", schemaJSON)

// Room describes one controllable room.
type Room struct {
	Key        string   `yaml:"key"`
	Name       string   `yaml:"name"`
	Aliases    []string `yaml:"aliases"`
	Brightness int      `yaml:"brightness"`
}

// ThermostatDefaults holds the thermostat reset state.
type ThermostatDefaults struct {
	Temperature int    `yaml:"temperature"`
	Mode        string `yaml:"mode"`
}

// MusicDefaults holds the music reset state.
type MusicDefaults struct {
	Volume int `yaml:"volume"`
}

// Profile is the parsed home profile.
type Profile struct {
	Rooms      []Room             `yaml:"rooms"`
	Thermostat ThermostatDefaults `yaml:"thermostat"`
	Music      MusicDefaults      `yaml:"music"`
}

// Default returns the built-in profile: three rooms with their spoken
// aliases, 70°F cooling, music idle at volume 40.
func Default() *Profile {
	return &Profile{
		Rooms: []Room{
			{Key: "living", Name: "living room", Aliases: []string{"living room", "lounge", "living"}, Brightness: 70},
			{Key: "kitchen", Name: "kitchen", Aliases: []string{"kitchen", "cook"}, Brightness: 70},
			{Key: "bedroom", Name: "bedroom", Aliases: []string{"bedroom", "bed", "master"}, Brightness: 70},
		},
		Thermostat: ThermostatDefaults{Temperature: 70, Mode: "cool"},
		Music:      MusicDefaults{Volume: 40},
	}
}

// Load reads, validates, and parses the profile file at path.
func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a profile YAML document and validates it. It is the
// canonical entry point for loading profile content.
func Parse(raw []byte) (*Profile, error) {
	// Structural pass: decode generically and check against the schema so
	// errors carry the offending path (e.g. /rooms/1/brightness).
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("profile: parse: %w", err)
	}
	jsonDoc, err := toJSONValue(doc)
	if err != nil {
		return nil, fmt.Errorf("profile: convert: %w", err)
	}
	if err := schema.Validate(jsonDoc); err != nil {
		return nil, fmt.Errorf("profile: invalid: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("profile: parse: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// validate applies the semantic checks the schema cannot express.
func validate(p *Profile) error {
	seen := make(map[string]struct{}, len(p.Rooms))
	for i, room := range p.Rooms {
		if _, dup := seen[room.Key]; dup {
			return fmt.Errorf("profile: rooms[%d]: duplicate key %q", i, room.Key)
		}
		seen[room.Key] = struct{}{}

		for j, a := range room.Aliases {
			if strings.TrimSpace(a) == "" {
				return fmt.Errorf("profile: rooms[%d] (%q): aliases[%d] must not be blank", i, room.Key, j)
			}
		}
		if room.Name == "" {
			p.Rooms[i].Name = room.Key
		}
	}
	return nil
}

// EngineConfig converts the profile into the engine's configuration,
// preserving room and alias order.
func (p *Profile) EngineConfig() engine.Config {
	cfg := engine.Config{
		Temperature: p.Thermostat.Temperature,
		Mode:        engine.ThermostatMode(p.Thermostat.Mode),
		Volume:      p.Music.Volume,
	}
	for _, room := range p.Rooms {
		cfg.Rooms = append(cfg.Rooms, engine.RoomConfig{
			Key:        room.Key,
			Name:       room.Name,
			Aliases:    room.Aliases,
			Brightness: room.Brightness,
		})
	}
	return cfg
}

// toJSONValue round-trips a YAML-decoded value through encoding/json so
// the schema validator sees the exact types json.Unmarshal would produce.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
