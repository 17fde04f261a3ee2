package config

import (
	"sort"

	"github.com/san-kum/attractors/internal/physics"
)

func preset(apply func(c *Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// Presets are complete configurations built over the defaults.
var Presets = map[string]*Config{
	"dust": preset(func(c *Config) {
		c.Particles = 6000
		c.BaseSize = 0.8
		c.Theme = "mono"
	}),
	"ribbons": preset(func(c *Config) {
		c.Particles = 600
		c.TrailLength = 24
		c.BaseSize = 1.4
		c.Theme = "ocean"
	}),
	"classic": preset(func(c *Config) {
		for _, a := range physics.Classic() {
			c.Attractors = append(c.Attractors, a.Name)
		}
	}),
	"gallery": preset(func(c *Config) {
		c.Particles = 2500
		c.TrailLength = 6
		c.Transform.AutoSpin = 0.25
	}),
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
