package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/driftleaf/config"
	"github.com/pthm-cable/driftleaf/systems"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestCacheUnknownName(t *testing.T) {
	c := NewCache(testConfig(t))

	_, err := c.Raster("vfWaterfall")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "vfWaterfall")

	_, err = c.Image("credits")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheMemoises(t *testing.T) {
	c := NewCache(testConfig(t))
	a, err := c.Raster(VFRock)
	require.NoError(t, err)
	b, err := c.Raster(VFRock)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestCachePut(t *testing.T) {
	c := NewCache(testConfig(t))
	custom := systems.NewFieldRaster(2, 2)
	c.PutRaster("vfCustom", custom)

	got, err := c.Raster("vfCustom")
	require.NoError(t, err)
	assert.Same(t, custom, got)
}

func TestCacheRasterFileRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "river.png")

	src := NewCache(cfg)
	require.NoError(t, src.SaveRasterFile(VFRiver, path))
	want, err := src.Raster(VFRiver)
	require.NoError(t, err)

	dst := NewCache(cfg)
	require.NoError(t, dst.LoadRasterFile(VFRiver, path))
	got, err := dst.Raster(VFRiver)
	require.NoError(t, err)
	assert.Equal(t, want.Width, got.Width)
	assert.Equal(t, want.Height, got.Height)
	assert.Equal(t, want.Cells, got.Cells)
}

func TestCacheLoadRasterFileErrors(t *testing.T) {
	c := NewCache(testConfig(t))
	dir := t.TempDir()

	err := c.LoadRasterFile(VFRiver, filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
	assert.Error(t, c.LoadRasterFile(VFRiver, bad))

	assert.ErrorIs(t, c.SaveRasterFile("vfNope", filepath.Join(dir, "x.png")), ErrNotFound)
}

func TestCacheIsRasterSource(t *testing.T) {
	cfg := testConfig(t)
	var src systems.RasterSource = NewCache(cfg)

	f := systems.NewVectorField(cfg.Screen.Width, cfg.Screen.Height)
	f.Reset(cfg.Water.MaxAcceleration)
	require.NoError(t, f.AddAsset(src, VFRiver, 0, 0))
	assert.ErrorIs(t, f.AddAsset(src, "nope", 0, 0), ErrNotFound)
}

func TestPreload(t *testing.T) {
	c := NewCache(testConfig(t))
	require.NoError(t, c.Preload())
	assert.Len(t, c.rasters, 2)
	assert.Len(t, c.images, 2)
}

func TestRiverFieldBanksPushInward(t *testing.T) {
	cfg := testConfig(t)
	cfg.Assets.RiverTurbulence = 0
	r := RiverField(cfg)

	require.Equal(t, cfg.Screen.Width, r.Width)
	require.Equal(t, cfg.Screen.Height, r.Height)

	y := r.Height / 2
	left := r.At(0, y)
	right := r.At(r.Width-1, y)
	mid := r.At(r.Width/2, y)

	assert.Greater(t, left.XPos, uint8(200))
	assert.Zero(t, left.XNeg)
	assert.Greater(t, right.XNeg, uint8(200))
	assert.Zero(t, right.XPos)
	assert.Equal(t, systems.FieldCell{}, mid, "calm water without turbulence")
}

func TestRiverFieldDeterministic(t *testing.T) {
	cfg := testConfig(t)
	a := RiverField(cfg)
	b := RiverField(cfg)
	assert.Equal(t, a.Cells, b.Cells)

	cfg.Assets.Seed++
	c := RiverField(cfg)
	assert.NotEqual(t, a.Cells, c.Cells)
}

func TestRockFieldRepels(t *testing.T) {
	cfg := testConfig(t)
	r := RockField(cfg)
	rad := cfg.Rocks.FieldRadius

	require.Equal(t, 2*rad+1, r.Width)
	assert.Equal(t, systems.FieldCell{}, r.At(rad, rad), "no direction at the centre")
	assert.Equal(t, systems.FieldCell{}, r.At(0, 0), "corner lies outside the radius")

	right := r.At(rad+rad/2, rad)
	assert.Equal(t, uint8(255), right.XPos)
	assert.Zero(t, right.XNeg)

	left := r.At(rad-rad/2, rad)
	assert.Equal(t, uint8(255), left.XNeg)

	below := r.At(rad, rad+rad/2)
	assert.Equal(t, uint8(255), below.YPos)
	above := r.At(rad, rad-rad/2)
	assert.Zero(t, above.YPos, "upstream side has no -y channel")
	assert.NotZero(t, above.Speed)

	near := r.At(rad+2, rad).Speed
	far := r.At(rad+rad-2, rad).Speed
	assert.Greater(t, near, far)
}

func TestBackdrops(t *testing.T) {
	cfg := testConfig(t)
	game := GameBackdrop(cfg)
	assert.Equal(t, cfg.Screen.Width, game.Bounds().Dx())

	_, _, _, a := game.At(0, 10).RGBA()
	assert.Equal(t, uint32(0xffff), a, "bank is opaque")
	_, _, _, a = game.At(cfg.Screen.Width/2, 10).RGBA()
	assert.Zero(t, a, "channel is transparent")

	menu := MenuBackdrop(cfg)
	_, _, _, top := menu.At(5, 0).RGBA()
	_, _, _, bottom := menu.At(5, cfg.Screen.Height-1).RGBA()
	assert.Zero(t, top)
	assert.Greater(t, bottom, uint32(0))
}
