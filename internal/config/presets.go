package config

import (
	"sort"

	"github.com/san-kum/glide/internal/input"
)

// Presets keep the tunings tried across earlier prototypes.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"gentle": func() *Config {
		c := DefaultConfig()
		c.Entity.Force = 5.0
		return c
	}(),
	"sprint": func() *Config {
		c := DefaultConfig()
		c.Entity.MaxSpeed = 3.0
		return c
	}(),
	"heavy": func() *Config {
		c := DefaultConfig()
		c.Entity.Mass = 2.0
		return c
	}(),
	"demo": func() *Config {
		c := DefaultConfig()
		c.Entity.StartX, c.Entity.StartY = 395, 295
		c.Script = []input.Segment{
			{Key: "east", Hold: 0.5},
			{Key: "stop", Hold: 0.2},
			{Key: "south", Hold: 0.3},
			{Key: "west", Hold: 0.5},
			{Key: "north", Hold: 0.3},
			{Key: "quit"},
		}
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
