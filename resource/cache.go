package resource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/leveleditor/project"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrAlreadyLoaded = errors.New("resource: already loaded")

// Cache is the editor's process-wide texture pool, keyed by asset name.
type Cache struct {
	// AssetsDir is searched when a path does not decode as given.
	AssetsDir string
	// NewTexture wraps a decoded image into a render handle.
	NewTexture func(image.Image) project.Texture

	textures map[string]project.Texture
	paths    map[string]string
}

func NewCache(assetsDir string) *Cache {
	return &Cache{
		AssetsDir:  assetsDir,
		NewTexture: ebitenTexture,
		textures:   make(map[string]project.Texture),
		paths:      make(map[string]string),
	}
}

func ebitenTexture(img image.Image) project.Texture {
	return ebiten.NewImageFromImage(img)
}

// LoadResource decodes path and stores it under name. Names are never
// overwritten; call Remove or Clear first.
func (c *Cache) LoadResource(name, path string) error {
	if name == "" {
		return fmt.Errorf("resource: empty name")
	}
	if _, ok := c.textures[name]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyLoaded, name)
	}
	img, resolved, err := c.decode(path)
	if err != nil {
		return err
	}
	if c.textures == nil {
		c.textures = make(map[string]project.Texture)
		c.paths = make(map[string]string)
	}
	newTexture := c.NewTexture
	if newTexture == nil {
		newTexture = ebitenTexture
	}
	c.textures[name] = newTexture(img)
	c.paths[name] = resolved
	return nil
}

// Resource returns the texture cached under name, or nil.
func (c *Cache) Resource(name string) project.Texture {
	if name == "" {
		return nil
	}
	return c.textures[name]
}

// Path returns the file the texture under name was decoded from.
func (c *Cache) Path(name string) (string, bool) {
	p, ok := c.paths[name]
	return p, ok
}

func (c *Cache) Remove(name string) bool {
	if _, ok := c.textures[name]; !ok {
		return false
	}
	delete(c.textures, name)
	delete(c.paths, name)
	return true
}

// Clear drops every cached texture.
func (c *Cache) Clear() {
	c.textures = make(map[string]project.Texture)
	c.paths = make(map[string]string)
}

// Names lists the cached names in sorted order.
func (c *Cache) Names() []string {
	names := make([]string, 0, len(c.textures))
	for name := range c.textures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Candidates lists the files tried for path, in order.
func (c *Cache) Candidates(path string) []string {
	tried := []string{path}
	if c.AssetsDir != "" && !filepath.IsAbs(path) {
		tried = append(tried, filepath.Join(c.AssetsDir, path))
	}
	if c.AssetsDir != "" {
		tried = append(tried, filepath.Join(c.AssetsDir, filepath.Base(path)))
	}
	return tried
}

func (c *Cache) decode(path string) (image.Image, string, error) {
	if path == "" {
		return nil, "", fmt.Errorf("resource: empty image path")
	}
	for _, p := range c.Candidates(path) {
		img, err := DecodeFile(p)
		if err == nil {
			return img, p, nil
		}
	}
	return nil, "", fmt.Errorf("resource: failed to load image %s", path)
}

// DecodeFile reads and decodes a single image file.
func DecodeFile(path string) (image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
