package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/pipeline"
)

// Config carries the user-tunable engine settings. It round-trips through
// TOML so settings survive between runs.
type Config struct {
	// FillMode is the requested polygon fill mode ("fill", "wireframe", or
	// "vertex"). Whether it takes effect depends on the device's features.
	FillMode string `toml:"fill_mode"`

	// EnableDebug shows the debug overlay at startup.
	EnableDebug bool `toml:"enable_debug"`

	// DebugToggleKey is the GLFW key code that toggles the debug overlay.
	// Zero leaves the default binding in place.
	DebugToggleKey int `toml:"debug_toggle_key,omitempty"`

	// TickRate is the engine tick rate in ticks per second. Zero keeps the
	// engine default.
	TickRate float64 `toml:"tick_rate,omitempty"`

	// WindowWidth and WindowHeight size the window at startup.
	WindowWidth  int `toml:"window_width"`
	WindowHeight int `toml:"window_height"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		FillMode:     "fill",
		EnableDebug:  false,
		WindowWidth:  800,
		WindowHeight: 600,
	}
}

// ParseFillMode maps the config's fill mode string onto the pipeline enum.
// Unknown strings fall back to solid fill.
func (c Config) ParseFillMode() pipeline.FillMode {
	switch c.FillMode {
	case "wireframe":
		return pipeline.FillModeWireframe
	case "vertex":
		return pipeline.FillModeVertex
	default:
		return pipeline.FillModeFill
	}
}

// Load reads a TOML config file. A missing file is not an error; the defaults
// are returned instead.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the loaded settings, or defaults when the file does not exist
//   - error: a read or parse failure
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the settings to a TOML config file.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - error: a marshal or write failure
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
