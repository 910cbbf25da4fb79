package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/simulation"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, also the viewport the shader aspect is built from.
	StartWidth uint32 `toml:"width"`
	// Window starting height.
	StartHeight uint32 `toml:"height"`
	// The application name used in windowing, if applicable.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// The host presents the surface, the engine never calls Present.
	Embedded bool `toml:"embedded"`
}

type SimulationConfig struct {
	Population    int `toml:"population"`
	MaxPopulation int `toml:"max_population"`
	// Horizontal wrap bound at the configured width/height. Scaled with the
	// aspect ratio when the viewport changes.
	WrapX          float32 `toml:"wrap_x"`
	WrapY          float32 `toml:"wrap_y"`
	TriangleRadius float32 `toml:"triangle_radius"`
	// 0 picks a random seed
	Seed uint64 `toml:"seed"`
}

type ViewConfig struct {
	Zoom     float32 `toml:"zoom"`
	Rotation float32 `toml:"rotation"`
}

// Config is the content of colony.toml.
type Config struct {
	Application ApplicationConfig `toml:"application"`
	Simulation  SimulationConfig  `toml:"simulation"`
	View        ViewConfig        `toml:"view"`
}

func DefaultConfig() Config {
	sim := simulation.DefaultConfig()
	return Config{
		Application: ApplicationConfig{
			StartPosX:   100,
			StartPosY:   100,
			StartWidth:  1280,
			StartHeight: 720,
			Name:        "Colony",
			LogLevel:    "info",
		},
		Simulation: SimulationConfig{
			Population:     1000,
			MaxPopulation:  100000,
			WrapX:          sim.WrapX,
			WrapY:          sim.WrapY,
			TriangleRadius: sim.TriangleRadius,
		},
		View: ViewConfig{
			Zoom:     1.0,
			Rotation: 0.0,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("config file %s not found, using defaults", path)
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		core.LogError("failed to parse config %s: %s", path, err)
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	var explicit struct {
		Simulation struct {
			WrapX *float32 `toml:"wrap_x"`
		} `toml:"simulation"`
	}
	if err := toml.Unmarshal(data, &explicit); err == nil && explicit.Simulation.WrapX == nil {
		// the default bound belongs to the default viewport
		config.Simulation.WrapX, _ = DefaultConfig().WrapBounds(config.Application.StartWidth, config.Application.StartHeight)
	}
	if err := config.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Application.StartWidth == 0 || c.Application.StartHeight == 0 {
		return errors.New("window width and height must be positive")
	}
	if c.Simulation.MaxPopulation < 0 {
		return fmt.Errorf("max_population %d: %w", c.Simulation.MaxPopulation, core.ErrPopulationOutOfRange)
	}
	if c.Simulation.Population < 0 || c.Simulation.Population > c.Simulation.MaxPopulation {
		return fmt.Errorf("population %d: %w", c.Simulation.Population, core.ErrPopulationOutOfRange)
	}
	if c.Simulation.WrapX <= 0 || c.Simulation.WrapY <= 0 {
		return errors.New("wrap bounds must be positive")
	}
	return nil
}

// WrapBounds returns the wrap edges for a width x height viewport. The
// horizontal bound keeps its ratio to the aspect of the configured window, so
// it follows the aspect correction baked into the shader.
func (c Config) WrapBounds(width, height uint32) (float32, float32) {
	sw, sh := c.Application.StartWidth, c.Application.StartHeight
	if width == 0 || height == 0 || sw == 0 || sh == 0 {
		return c.Simulation.WrapX, c.Simulation.WrapY
	}
	scale := (float64(width) / float64(height)) / (float64(sw) / float64(sh))
	return float32(float64(c.Simulation.WrapX) * scale), c.Simulation.WrapY
}

// PopulationConfig merges the file values into the population model defaults
// with the wrap bounds of a width x height viewport.
func (c Config) PopulationConfig(width, height uint32) simulation.Config {
	sim := simulation.DefaultConfig()
	sim.WrapX, sim.WrapY = c.WrapBounds(width, height)
	if c.Simulation.TriangleRadius > 0 {
		sim.TriangleRadius = c.Simulation.TriangleRadius
	}
	return sim
}

func (a ApplicationConfig) Level() core.LogLevel {
	return core.ParseLogLevel(a.LogLevel)
}
