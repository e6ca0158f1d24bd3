package mapscreator

import (
	"context"
	"errors"
	"image"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureName(t *testing.T) {
	m := New(nil, nil, nil)

	tables := []struct {
		file string
		name string
		ok   bool
	}{
		{"/a/brick_albedo.png", "/a/brick", true},
		{"/a/brick_wall_roughness.png", "/a/brick_wall", true},
		{"/a/brick_roughness.PNG", "", false},
		{"/a/brick_alpha.png", "/a/brick", true},
		{"/a/brick_maps1.png", "", false},
		{"/a/brick_albedo.jpg", "", false},
		{"/a/_albedo.png", "", false},
		{"/a/albedo.png", "", false},
	}

	for _, table := range tables {
		t.Run(table.file, func(t *testing.T) {
			name, ok := m.textureName(table.file)
			assert.Equal(t, table.ok, ok)
			assert.Equal(t, table.name, name)
		})
	}
}

func TestFindTextures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "walls"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0755))

	for _, file := range []string{
		"floor_albedo.png",
		"floor_roughness.png",
		"floor_maps1.png",
		"readme.txt",
		"walls/brick_normal.png",
		"walls/brick_occlusion.png",
		".hidden/secret_albedo.png",
	} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, file), nil, 0644))
	}

	names, errc, err := New(nil, nil, nil).findTextures(context.Background(), dir)
	require.NoError(t, err)

	var got []string
	for name := range names {
		got = append(got, name)
	}
	require.NoError(t, <-errc)

	sort.Strings(got)
	assert.Equal(t, []string{filepath.Join(dir, "floor"), filepath.Join(dir, "walls", "brick")}, got)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "walls"), 0755))

	floor := filepath.Join(dir, "floor")
	brick := filepath.Join(dir, "walls", "brick")
	writeAlbedo(t, floor)
	writeGray(t, brick+"_roughness.png", 2, 2, constant(5))

	require.NoError(t, New(nil, nil, nil).Scan(context.Background(), dir, ScanOptions{Jobs: 2}))

	assert.FileExists(t, floor+"_maps1.png")
	assert.FileExists(t, floor+".vmt")
	assert.FileExists(t, brick+"_maps2.png")
	assert.FileExists(t, brick+".vmt")
}

func TestScanError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad")
	writeGray(t, bad+"_roughness.png", 2, 2, constant(1))
	writeGray(t, bad+"_metalness.png", 4, 4, constant(1))

	err := New(nil, nil, nil).Scan(context.Background(), dir, ScanOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.Contains(t, err.Error(), bad)
}

func TestScanCache(t *testing.T) {
	dir := t.TempDir()
	textures := filepath.Join(dir, "textures")
	require.NoError(t, os.Mkdir(textures, 0755))
	name := filepath.Join(textures, "tex")
	writeAlbedo(t, name)

	cache, err := NewCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	m := New(nil, nil, nil)
	opts := ScanOptions{Cache: cache}

	require.NoError(t, m.Scan(context.Background(), textures, opts))
	assert.FileExists(t, name+"_maps1.png")

	r, err := cache.Lookup(name)
	require.NoError(t, err)
	require.NotNil(t, r)
	crc, err := m.SourceCRC(name)
	require.NoError(t, err)
	assert.Equal(t, crc, r.CRC)
	assert.Equal(t, AlphaNone, r.AlphaGroup)
	assert.Equal(t, []int{1}, r.Written.Maps())

	// Unchanged sources are skipped
	marker := []byte("not rebuilt")
	require.NoError(t, ioutil.WriteFile(name+"_maps1.png", marker, 0644))
	require.NoError(t, m.Scan(context.Background(), textures, opts))
	b, err := ioutil.ReadFile(name + "_maps1.png")
	require.NoError(t, err)
	assert.Equal(t, marker, b)

	// Unless forced
	opts.Force = true
	require.NoError(t, m.Scan(context.Background(), textures, opts))
	b, err = ioutil.ReadFile(name + "_maps1.png")
	require.NoError(t, err)
	assert.NotEqual(t, marker, b)
	opts.Force = false

	// A missing map is rebuilt even though the sources are unchanged
	require.NoError(t, os.Remove(name+"_maps1.png"))
	require.NoError(t, m.Scan(context.Background(), textures, opts))
	assert.FileExists(t, name+"_maps1.png")
	readRaster(t, name+"_maps1.png")

	// A new source changes the CRC
	writeGray(t, name+"_occlusion.png", 2, 2, constant(9))
	require.NoError(t, m.Scan(context.Background(), textures, opts))
	r, err = cache.Lookup(name)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, AlphaOcclusion, r.AlphaGroup)
	assert.NotEqual(t, crc, r.CRC)
}

func TestScanExtensionCase(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "tex")
	m := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	writePNG(t, name+"_albedo.PNG", m)

	// The default extension doesn't match an upper case one
	require.NoError(t, New(nil, nil, nil).Scan(context.Background(), dir, ScanOptions{}))
	assert.NoFileExists(t, name+".vmt")
	assert.NoFileExists(t, name+"_maps1.png")

	require.NoError(t, New(nil, nil, &Options{Extension: "PNG"}).Scan(context.Background(), dir, ScanOptions{}))
	assert.FileExists(t, name+".vmt")
	assert.FileExists(t, name+"_maps1.png")
}

func TestCacheLookupMissing(t *testing.T) {
	cache, err := NewCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	r, err := cache.Lookup("nothing")
	require.NoError(t, err)
	assert.Nil(t, r)

	require.NoError(t, cache.Store("ABCD1234", &Result{Name: "x", AlphaGroup: AlphaTintMask, Written: 1 << 2}))
	require.NoError(t, cache.Forget("x"))
	r, err = cache.Lookup("x")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSourceCRC(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tex")

	m := New(nil, nil, nil)
	empty, err := m.SourceCRC(name)
	require.NoError(t, err)
	assert.Len(t, empty, 8)

	writeGray(t, name+"_normal.png", 1, 1, constant(1))
	one, err := m.SourceCRC(name)
	require.NoError(t, err)
	assert.NotEqual(t, empty, one)

	other, err := New(nil, nil, &Options{MaterialPath: "materials"}).SourceCRC(name)
	require.NoError(t, err)
	assert.NotEqual(t, one, other)
}
