package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSpeed        = 2.0
	DefaultCanvasWidth  = 60
	DefaultCanvasHeight = 16
	DefaultDataDir      = ".algoscope"
	DefaultExportScale  = 4.0
)

type Config struct {
	DataDir string       `yaml:"data_dir"`
	Speed   float64      `yaml:"speed"`
	Theme   string       `yaml:"theme"`
	Canvas  CanvasConfig `yaml:"canvas"`
	Export  ExportConfig `yaml:"export"`
	Tester  TesterConfig `yaml:"tester"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ExportConfig struct {
	Format string  `yaml:"format"`
	Scale  float64 `yaml:"scale"`
}

type TesterConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	StepLimit      int `yaml:"step_limit"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Speed:   DefaultSpeed,
		Theme:   "dark",
		Canvas: CanvasConfig{
			Width:  DefaultCanvasWidth,
			Height: DefaultCanvasHeight,
		},
		Export: ExportConfig{
			Format: "svg",
			Scale:  DefaultExportScale,
		},
		Tester: TesterConfig{
			TimeoutSeconds: 5,
			StepLimit:      100000,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
