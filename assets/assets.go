// Package assets resolves the symbolic asset names used by the scenes.
// Field rasters and backgrounds are generated procedurally from config on
// first use and memoised.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/pthm-cable/driftleaf/config"
	"github.com/pthm-cable/driftleaf/systems"
)

// Asset names.
const (
	VFRiver        = "vfRiver"
	VFRock         = "vfRock"
	GameBackground = "gameBackground"
	MenuBackground = "menuBackground"
)

// ErrNotFound is returned for names with no registered asset.
var ErrNotFound = errors.New("asset not found")

type rasterBuilder func(cfg *config.Config) *systems.FieldRaster
type imageBuilder func(cfg *config.Config) image.Image

var rasterBuilders = map[string]rasterBuilder{
	VFRiver: RiverField,
	VFRock:  RockField,
}

var imageBuilders = map[string]imageBuilder{
	GameBackground: GameBackdrop,
	MenuBackground: MenuBackdrop,
}

// Cache builds assets lazily and keeps them for the life of the process.
// It satisfies systems.RasterSource.
type Cache struct {
	cfg     *config.Config
	rasters map[string]*systems.FieldRaster
	images  map[string]image.Image
}

// NewCache creates an empty cache generating assets from cfg.
func NewCache(cfg *config.Config) *Cache {
	return &Cache{
		cfg:     cfg,
		rasters: make(map[string]*systems.FieldRaster),
		images:  make(map[string]image.Image),
	}
}

// Raster returns the field raster registered under name.
func (c *Cache) Raster(name string) (*systems.FieldRaster, error) {
	if r, ok := c.rasters[name]; ok {
		return r, nil
	}
	build, ok := rasterBuilders[name]
	if !ok {
		return nil, fmt.Errorf("raster %q: %w", name, ErrNotFound)
	}
	r := build(c.cfg)
	c.rasters[name] = r
	return r, nil
}

// Image returns the background image registered under name.
func (c *Cache) Image(name string) (image.Image, error) {
	if img, ok := c.images[name]; ok {
		return img, nil
	}
	build, ok := imageBuilders[name]
	if !ok {
		return nil, fmt.Errorf("image %q: %w", name, ErrNotFound)
	}
	img := build(c.cfg)
	c.images[name] = img
	return img, nil
}

// PutRaster overrides a raster, e.g. with one decoded from an authored image.
func (c *Cache) PutRaster(name string, r *systems.FieldRaster) {
	c.rasters[name] = r
}

// LoadRasterFile decodes an authored PNG field and registers it under name,
// replacing the procedural raster.
func (c *Cache) LoadRasterFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loading raster %q: %w", name, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding raster %q from %s: %w", name, path, err)
	}
	c.PutRaster(name, systems.FieldRasterFromImage(img))
	return nil
}

// SaveRasterFile writes the raster registered under name as a PNG in the
// authored layout, so it can be edited and loaded back.
func (c *Cache) SaveRasterFile(name, path string) error {
	r, err := c.Raster(name)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving raster %q: %w", name, err)
	}
	if err := png.Encode(f, r.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding raster %q: %w", name, err)
	}
	return f.Close()
}

// Preload builds every known asset so that frame time is not spent on
// generation later.
func (c *Cache) Preload() error {
	for name := range rasterBuilders {
		if _, err := c.Raster(name); err != nil {
			return err
		}
	}
	for name := range imageBuilders {
		if _, err := c.Image(name); err != nil {
			return err
		}
	}
	return nil
}
