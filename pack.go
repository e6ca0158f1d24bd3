package mapscreator

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/mapscreator/raster"
	"github.com/bodgit/mapscreator/vmt"
)

// SourceFile returns the filename of the source image of channel c
func SourceFile(name string, c Channel, ext string) string {
	return name + "_" + c.Name + "." + ext
}

// MapName returns the name of packed map index, as referenced by the
// descriptor
func MapName(name string, index int) string {
	return fmt.Sprintf("%s_maps%d", name, index)
}

// MapFile returns the filename of packed map index
func MapFile(name string, index int) string {
	return MapName(name, index) + ".png"
}

// DescriptorFile returns the filename of the material descriptor
func DescriptorFile(name string) string {
	return name + vmt.Extension
}

// MapSet is a set of packed map indices.
type MapSet uint8

// Has reports whether map i is in the set
func (s MapSet) Has(i int) bool {
	return i >= 1 && i <= MapCount && s&(1<<uint(i)) != 0
}

// Set adds map i to the set
func (s *MapSet) Set(i int) {
	if i >= 1 && i <= MapCount {
		*s |= 1 << uint(i)
	}
}

// Maps returns the indices in the set in ascending order
func (s MapSet) Maps() []int {
	var out []int
	for i := 1; i <= MapCount; i++ {
		if s.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// Len returns the number of maps in the set
func (s MapSet) Len() int {
	return len(s.Maps())
}

// Result describes a successful run.
type Result struct {
	Name       string
	AlphaGroup AlphaGroup
	Written    MapSet
}

// Pack packs the source images of texture name into maps and writes the
// descriptor. Maps written before a failure are left on disk but the
// descriptor is only written if every map succeeds.
func (m *MapsCreator) Pack(name string) (*Result, error) {
	if name == "" {
		return nil, ErrNoTextureName
	}
	logger := m.logger.With("texture", name)

	group, others := m.registry.ResolveAlphaGroup(func(c Channel) bool {
		return fileExists(m.sourceFile(name, c))
	})
	for _, c := range others {
		logger.Warn("alpha slot already taken, packing in default slot", "channel", c.Name, "alpha", group)
	}
	if group != AlphaNone {
		logger.Info("putting channel in map 1 alpha", "alpha", group)
	}

	a := m.registry.Assignment().Reassign(m.registry, group)

	result := &Result{
		Name:       name,
		AlphaGroup: group,
	}

	for i := 1; i <= MapCount; i++ {
		r, err := m.composite(logger, name, a, i)
		if err != nil {
			logger.Error("packing failed", "map", i, "error", err)
			return nil, err
		}
		if r == nil {
			continue
		}

		file := MapFile(name, i)
		if err := m.writeMap(file, r); err != nil {
			logger.Error("packing failed", "map", i, "error", err)
			return nil, err
		}
		result.Written.Set(i)
		logger.Debug("wrote map", "file", file, "width", r.Width(), "height", r.Height())
	}

	if err := m.writeDescriptor(result); err != nil {
		logger.Error("writing descriptor failed", "error", err)
		return nil, err
	}

	return result, nil
}

func (m *MapsCreator) writeMap(file string, r *raster.Raster) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return &EncodeError{Path: file, Err: err}
	}
	defer func() {
		if err != nil {
			os.Remove(file)
		}
	}()

	if err = raster.Encode(f, r, m.opts.CompressionLevel); err != nil {
		f.Close()
		return &EncodeError{Path: file, Err: err}
	}
	if err = f.Close(); err != nil {
		return &EncodeError{Path: file, Err: err}
	}

	return nil
}

func (m *MapsCreator) mapRef(name string, index int) string {
	if m.opts.MaterialPath == "" {
		return MapName(name, index)
	}
	return m.opts.MaterialPath + "/" + filepath.Base(MapName(name, index))
}

func (m *MapsCreator) writeDescriptor(r *Result) error {
	d := vmt.New(int(r.AlphaGroup))
	for _, i := range r.Written.Maps() {
		if err := d.Add(i, m.mapRef(r.Name, i)); err != nil {
			return err
		}
	}

	b, err := d.MarshalText()
	if err != nil {
		return err
	}

	file := DescriptorFile(r.Name)
	if err := ioutil.WriteFile(file, b, 0644); err != nil {
		return &EncodeError{Path: file, Err: err}
	}

	m.logger.Debug("wrote descriptor", "file", file, "maps", r.Written.Maps())
	return nil
}
