package config

import "fmt"

// Presets bundle settings for common ways of using the tool.
var presets = map[string]func(*Config){
	// slow, large frames for projecting in front of a class
	"classroom": func(c *Config) {
		c.Speed = 0.5
		c.Canvas.Width = 90
		c.Canvas.Height = 24
	},
	// fast playback for quickly eyeballing a run
	"quick": func(c *Config) {
		c.Speed = 20
	},
	// dense canvas for exporting print-quality pages
	"print": func(c *Config) {
		c.Canvas.Width = 120
		c.Canvas.Height = 32
		c.Export.Scale = 8
	},
}

func ApplyPreset(cfg *Config, name string) error {
	fn, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %s", name)
	}
	fn(cfg)
	return nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
