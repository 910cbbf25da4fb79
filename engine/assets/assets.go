package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/colony/engine/assets/loaders"
	"github.com/spaghettifunk/colony/engine/core"
)

const shaderChangedBuffer = 8

type AssetInfo struct {
	Path       string
	Type       loaders.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the assets directory and watches it for changes.
// Modified shaders are published on ShaderChanged.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[loaders.ResourceType]Loader

	mutex sync.RWMutex

	done          chan struct{}
	stopped       chan struct{}
	fsnotify      *fsnotify.Watcher
	isClosed      bool
	started       bool
	shaderChanged chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:        make(map[string]AssetInfo),
		loaders:       make(map[loaders.ResourceType]Loader),
		fsnotify:      fsWatch,
		shaderChanged: make(chan string, shaderChangedBuffer),
		done:          make(chan struct{}),
		stopped:       make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	am.root = filepath.Clean(assetsDir)

	// Register loaders
	am.registerLoader(loaders.ResourceTypeShader, &loaders.ShaderLoader{})

	if err := am.addRecursive(am.root); err != nil {
		return err
	}
	am.started = true
	go am.start()
	return nil
}

// Shutdown stops the watcher. Safe to call more than once.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	if !am.started {
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
}

// ShaderChanged delivers paths of shader files that were written. It is
// drained by the frame loop; events are dropped when nobody listens.
func (am *AssetManager) ShaderChanged() <-chan string {
	return am.shaderChanged
}

// Root is the watched assets directory.
func (am *AssetManager) Root() string {
	return am.root
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType loaders.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Info returns the index entry of an asset path.
func (am *AssetManager) Info(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.Clean(path)]
	return info, ok
}

// ShaderPath returns where the named shader lives under the assets directory.
func (am *AssetManager) ShaderPath(name string) string {
	return filepath.Join(am.root, "shaders", name+".wgsl")
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(name string, resourceType loaders.ResourceType, params interface{}) (*loaders.Resource, error) {
	var path string
	switch resourceType {
	case loaders.ResourceTypeShader:
		path = am.ShaderPath(name)
	default:
		return nil, fmt.Errorf("unknown resource type %s", resourceType)
	}
	return am.LoadPath(path, params)
}

// LoadPath loads an indexed asset by path.
func (am *AssetManager) LoadPath(path string, params interface{}) (*loaders.Resource, error) {
	path = filepath.Clean(path)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[path] = asset
	}
	am.mutex.Unlock()
	if !exists {
		return nil, fmt.Errorf("asset not found: %s", path)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}
	core.LogDebug("loading %s asset %s", asset.Type, path)
	return loader.Load(path, asset.Type, params)
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(e.Name, false); err != nil {
				core.LogWarn("failed to watch %s: %s", e.Name, err)
			}
		}
		return
	}

	// Handle create or modify events
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if am.handleFileEvent(e.Name) == loaders.ResourceTypeShader {
			am.publishShader(filepath.Clean(e.Name))
		}
	}
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(e.Name)
	}
}

func (am *AssetManager) publishShader(path string) {
	select {
	case am.shaderChanged <- path:
		core.LogDebug("shader %s changed", path)
	default:
		core.LogWarn("dropping shader change for %s, reload queue full", path)
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) loaders.ResourceType {
	assetType := determineAssetType(path)
	if assetType == loaders.ResourceTypeNone {
		return assetType
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	path = filepath.Clean(path)
	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) loaders.ResourceType {
	switch filepath.Ext(path) {
	case ".wgsl":
		return loaders.ResourceTypeShader
	case ".toml":
		return loaders.ResourceTypeConfig
	case ".txt", ".md":
		return loaders.ResourceTypeText
	default:
		return loaders.ResourceTypeNone
	}
}
