package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/colony/engine/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colony.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	config, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
[application]
name = "test colony"
width = 800
height = 600
log_level = "debug"
embedded = true

[simulation]
population = 10000
wrap_x = 1.5

[view]
zoom = 2.5
rotation = 90.0
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test colony", config.Application.Name)
	assert.Equal(t, uint32(800), config.Application.StartWidth)
	assert.Equal(t, uint32(600), config.Application.StartHeight)
	assert.True(t, config.Application.Embedded)
	assert.Equal(t, core.DebugLevel, config.Application.Level())
	// untouched keys keep their defaults
	assert.Equal(t, uint32(100), config.Application.StartPosX)
	assert.Equal(t, 100000, config.Simulation.MaxPopulation)
	assert.Equal(t, float32(1.0), config.Simulation.WrapY)

	assert.Equal(t, 10000, config.Simulation.Population)
	assert.Equal(t, float32(1.5), config.Simulation.WrapX)
	assert.Equal(t, float32(2.5), config.View.Zoom)
	assert.Equal(t, float32(90), config.View.Rotation)

	sim := config.PopulationConfig(800, 600)
	assert.Equal(t, float32(1.5), sim.WrapX)
	assert.Equal(t, float32(1.0), sim.WrapY)
	assert.Equal(t, float32(0.01), sim.TriangleRadius)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[application\nname ="))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "[simulation]\npopulation = 200000\n"))
	assert.ErrorIs(t, err, core.ErrPopulationOutOfRange)

	_, err = LoadConfig(writeConfig(t, "[simulation]\nwrap_x = 0.0\n"))
	assert.Error(t, err)
}

func TestLoadConfigDerivesWrapFromViewport(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "[application]\nwidth = 1000\nheight = 1000\n"))
	require.NoError(t, err)
	assert.InDelta(t, 1.77*720.0/1280.0, config.Simulation.WrapX, 1e-6)
	assert.Equal(t, float32(1.0), config.Simulation.WrapY)

	// the default window keeps the default bound
	config, err = LoadConfig(writeConfig(t, "[simulation]\npopulation = 10\n"))
	require.NoError(t, err)
	assert.Equal(t, float32(1.77), config.Simulation.WrapX)
}

func TestWrapBoundsFollowAspect(t *testing.T) {
	config := DefaultConfig()

	x, y := config.WrapBounds(1280, 720)
	assert.Equal(t, float32(1.77), x)
	assert.Equal(t, float32(1.0), y)

	x, _ = config.WrapBounds(2560, 1440)
	assert.Equal(t, float32(1.77), x)

	x, _ = config.WrapBounds(720, 720)
	assert.InDelta(t, 1.77*720.0/1280.0, x, 1e-6)

	// the ratio between the bound and the aspect stays fixed
	for _, size := range [][2]uint32{{800, 600}, {1920, 1080}, {600, 1200}} {
		x, _ = config.WrapBounds(size[0], size[1])
		aspect := float64(size[0]) / float64(size[1])
		assert.InDelta(t, 1.77/(1280.0/720.0), float64(x)/aspect, 1e-6)
	}

	x, y = config.WrapBounds(0, 0)
	assert.Equal(t, config.Simulation.WrapX, x)
	assert.Equal(t, config.Simulation.WrapY, y)

	sim := config.PopulationConfig(720, 720)
	assert.InDelta(t, 1.77*720.0/1280.0, sim.WrapX, 1e-6)
}

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, float32(1.77), config.Simulation.WrapX)
	assert.Equal(t, core.InfoLevel, config.Application.Level())
}
