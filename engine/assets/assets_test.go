package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/colony/engine/assets/loaders"
)

func newTestAssets(t *testing.T) (*AssetManager, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "shaders", "agents.wgsl"), []byte("let ratio = {{.Aspect}};"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.bin"), []byte{1, 2}, 0o644))

	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(root))
	t.Cleanup(func() { assert.NoError(t, am.Shutdown()) })
	return am, root
}

func TestInitializeIndexesAssets(t *testing.T) {
	am, root := newTestAssets(t)

	info, ok := am.Info(filepath.Join(root, "shaders", "agents.wgsl"))
	require.True(t, ok)
	assert.Equal(t, loaders.ResourceTypeShader, info.Type)

	_, ok = am.Info(filepath.Join(root, "notes.bin"))
	assert.False(t, ok)
}

func TestLoadShaderAsset(t *testing.T) {
	am, _ := newTestAssets(t)

	res, err := am.LoadAsset("agents", loaders.ResourceTypeShader, loaders.ShaderParams{Width: 1280, Height: 720})
	require.NoError(t, err)
	assert.Equal(t, "let ratio = 1.777778;", res.Data)

	_, err = am.LoadAsset("missing", loaders.ResourceTypeShader, loaders.ShaderParams{})
	assert.Error(t, err)

	_, err = am.LoadAsset("agents", loaders.ResourceTypeText, nil)
	assert.Error(t, err)
}

func TestShaderChangeIsPublished(t *testing.T) {
	am, root := newTestAssets(t)
	path := filepath.Join(root, "shaders", "agents.wgsl")

	require.NoError(t, os.WriteFile(path, []byte("let ratio = 2.0;"), 0o644))

	select {
	case changed := <-am.ShaderChanged():
		assert.Equal(t, filepath.Clean(path), changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no shader change published")
	}
}

func TestNewShaderIsIndexed(t *testing.T) {
	am, root := newTestAssets(t)
	path := filepath.Join(root, "shaders", "extra.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.Eventually(t, func() bool {
		_, ok := am.Info(path)
		return ok
	}, 5*time.Second, 10*time.Millisecond)
}

func TestShutdownTwice(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(t.TempDir()))
	assert.NoError(t, am.Shutdown())
	assert.NoError(t, am.Shutdown())
}

func TestInitializeMissingDir(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	assert.Error(t, am.Initialize(filepath.Join(t.TempDir(), "nope")))
	assert.NoError(t, am.Shutdown())
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, loaders.ResourceTypeShader, determineAssetType("a/b.wgsl"))
	assert.Equal(t, loaders.ResourceTypeConfig, determineAssetType("colony.toml"))
	assert.Equal(t, loaders.ResourceTypeNone, determineAssetType("x.png"))
}
