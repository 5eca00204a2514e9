package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMachine = "example"
	DefaultStyle   = "default"
	DefaultWidth   = 1920
	DefaultHeight  = 1080
	DefaultFPS     = 30
	DefaultSpeed   = 1.0
)

// Config holds the render settings. Command-line flags override individual
// fields after loading.
type Config struct {
	Machine string       `yaml:"machine"`
	Style   string       `yaml:"style"`
	Render  RenderConfig `yaml:"render"`
	Import  ImportConfig `yaml:"import"`
}

type RenderConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FPS    int     `yaml:"fps"`
	Speed  float64 `yaml:"speed"`
	Zen    bool    `yaml:"zen"`
	FFmpeg string  `yaml:"ffmpeg"`
}

type ImportConfig struct {
	IDPrefix string `yaml:"id_prefix"`
	CZZone   string `yaml:"cz_zone"`
}

func DefaultConfig() *Config {
	return &Config{
		Machine: DefaultMachine,
		Style:   DefaultStyle,
		Render: RenderConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Speed:  DefaultSpeed,
		},
		Import: ImportConfig{
			IDPrefix: "atom",
			CZZone:   "zone0",
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
