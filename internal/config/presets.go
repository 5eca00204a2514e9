package config

// Presets are named render profiles selectable with --preset.
var Presets = map[string]*Config{
	"preview": {
		Machine: DefaultMachine, Style: DefaultStyle,
		Render: RenderConfig{Width: 640, Height: 360, FPS: 15, Speed: 2},
	},
	"hd": {
		Machine: DefaultMachine, Style: DefaultStyle,
		Render: RenderConfig{Width: 1280, Height: 720, FPS: 30, Speed: 1},
	},
	"full": {
		Machine: DefaultMachine, Style: DefaultStyle,
		Render: RenderConfig{Width: 1920, Height: 1080, FPS: 60, Speed: 1},
	},
	"slides": {
		Machine: DefaultMachine, Style: "light",
		Render: RenderConfig{Width: 1920, Height: 1080, FPS: 30, Speed: 0.5, Zen: true},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
