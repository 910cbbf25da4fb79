package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAspect(t *testing.T) {
	assert.Equal(t, "1.777778", ShaderParams{Width: 1280, Height: 720}.Aspect())
	assert.Equal(t, "1.000000", ShaderParams{Width: 600, Height: 600}.Aspect())
	assert.Equal(t, "1.0", ShaderParams{}.Aspect())

	assert.InDelta(t, 1280.0/720.0, ShaderParams{Width: 1280, Height: 720}.AspectRatio(), 1e-12)
	assert.Equal(t, 1.0, ShaderParams{Width: 0, Height: 720}.AspectRatio())
}

func TestBuiltinAgentShader(t *testing.T) {
	source, err := BuiltinAgentShader(ShaderParams{Width: 1280, Height: 720})
	require.NoError(t, err)
	assert.Contains(t, source, "let ratio = 1.777778;")
	assert.Contains(t, source, "fn vs_main")
	assert.Contains(t, source, "fn fs_main")
	assert.NotContains(t, source, "{{")
}

func TestShaderLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("let r = {{.Aspect}};"), 0o644))

	loader := &ShaderLoader{}
	res, err := loader.Load(path, ResourceTypeShader, ShaderParams{Width: 800, Height: 400})
	require.NoError(t, err)
	assert.Equal(t, "custom", res.Name)
	assert.Equal(t, "let r = 2.000000;", res.Data)
	assert.Equal(t, uint64(len("let r = 2.000000;")), res.DataSize)

	_, err = loader.Load(path, ResourceTypeShader, nil)
	assert.Error(t, err)

	_, err = loader.Load(filepath.Join(dir, "missing.wgsl"), ResourceTypeShader, ShaderParams{})
	assert.Error(t, err)
}

func TestRenderShaderErrors(t *testing.T) {
	_, err := RenderShader("bad", "{{.Aspect", ShaderParams{})
	assert.Error(t, err)
	_, err = RenderShader("unknown", "{{.Zoom}}", ShaderParams{})
	assert.Error(t, err)
}
