package mapscreator

import (
	"errors"
	"fmt"

	"github.com/bodgit/mapscreator/raster"
	"github.com/bodgit/mapscreator/vmt"
)

// AlphaGroup marks a channel as a candidate for the alpha slot of the first
// map. Channels sharing a group are mutually exclusive. The integer value is
// written to the descriptor.
type AlphaGroup int

const (
	AlphaNone AlphaGroup = iota
	AlphaOcclusion
	AlphaSelfIllum
	AlphaTintMask
	AlphaSubsurface
)

var alphaGroupNames = map[AlphaGroup]string{
	AlphaNone:       "none",
	AlphaOcclusion:  "occlusion",
	AlphaSelfIllum:  "selfillum",
	AlphaTintMask:   "tintmask",
	AlphaSubsurface: "subsurface",
}

func (g AlphaGroup) String() string {
	if s, ok := alphaGroupNames[g]; ok {
		return s
	}
	return fmt.Sprintf("AlphaGroup(%d)", int(g))
}

// MapCount is the number of packed maps
const MapCount = vmt.MaxMaps

// Channel is a single logical surface property sourced from its own image.
type Channel struct {
	// Name is used as the source filename suffix
	Name string
	// Default is written to every slot when the source is missing
	Default uint8
	// Map is the packed map, 1 to MapCount
	Map int
	// Slots receive the source channels in order, source red first
	Slots []raster.Channel
	// AlphaGroup is AlphaNone for channels that never use the alpha slot
	AlphaGroup AlphaGroup
}

func (c Channel) clone() Channel {
	c.Slots = append([]raster.Channel(nil), c.Slots...)
	return c
}

// Registry is the immutable catalogue of known channels.
type Registry struct {
	channels []Channel
	index    map[string]int
	alpha    int
}

func fraction(f float64) uint8 {
	return uint8(f * 255)
}

// DefaultRegistry returns the channels understood by the PBRStandard shader.
func DefaultRegistry() *Registry {
	r, err := NewRegistry("alpha",
		Channel{Name: "albedo", Default: 255, Map: 1, Slots: []raster.Channel{raster.Red, raster.Green, raster.Blue}},
		Channel{Name: "alpha", Default: 255, Map: 1, Slots: []raster.Channel{raster.Alpha}},
		Channel{Name: "roughness", Default: fraction(0.95), Map: 2, Slots: []raster.Channel{raster.Red}},
		Channel{Name: "metalness", Default: fraction(0.04), Map: 2, Slots: []raster.Channel{raster.Blue}},
		Channel{Name: "normal", Default: 127, Map: 2, Slots: []raster.Channel{raster.Green, raster.Alpha}},
		Channel{Name: "tintmask", Default: 255, Map: 3, Slots: []raster.Channel{raster.Red}, AlphaGroup: AlphaTintMask},
		Channel{Name: "occlusion", Default: 255, Map: 3, Slots: []raster.Channel{raster.Green}, AlphaGroup: AlphaOcclusion},
		Channel{Name: "selfillum", Default: 255, Map: 3, Slots: []raster.Channel{raster.Blue}, AlphaGroup: AlphaSelfIllum},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// NewRegistry builds a registry from the given channels in priority order.
// The channel named alpha owns the alpha slot of the first map.
func NewRegistry(alpha string, channels ...Channel) (*Registry, error) {
	r := &Registry{
		index: make(map[string]int),
		alpha: -1,
	}

	groups := make(map[AlphaGroup]string)
	for i, c := range channels {
		if c.Name == "" {
			return nil, errors.New("channel with no name")
		}
		if _, ok := r.index[c.Name]; ok {
			return nil, fmt.Errorf("duplicate channel %s", c.Name)
		}
		if c.Map < 1 || c.Map > MapCount {
			return nil, fmt.Errorf("channel %s: map %d out of range", c.Name, c.Map)
		}
		if len(c.Slots) < 1 || len(c.Slots) > raster.Channels {
			return nil, fmt.Errorf("channel %s: %d slots", c.Name, len(c.Slots))
		}
		for _, s := range c.Slots {
			if !s.Valid() {
				return nil, fmt.Errorf("channel %s: invalid slot %d", c.Name, int(s))
			}
		}
		if c.AlphaGroup != AlphaNone {
			if other, ok := groups[c.AlphaGroup]; ok {
				return nil, fmt.Errorf("channels %s and %s share alpha group %s", other, c.Name, c.AlphaGroup)
			}
			groups[c.AlphaGroup] = c.Name
		}

		r.index[c.Name] = i
		r.channels = append(r.channels, c.clone())
		if c.Name == alpha {
			r.alpha = i
		}
	}

	if r.alpha < 0 {
		return nil, fmt.Errorf("no alpha channel %s", alpha)
	}
	if a := r.channels[r.alpha]; a.Map != 1 || len(a.Slots) != 1 || a.Slots[0] != raster.Alpha || a.AlphaGroup != AlphaNone {
		return nil, fmt.Errorf("channel %s does not own the alpha slot of map 1", alpha)
	}

	return r, nil
}

// Channels returns a copy of every channel in priority order
func (r *Registry) Channels() []Channel {
	out := make([]Channel, len(r.channels))
	for i, c := range r.channels {
		out[i] = c.clone()
	}
	return out
}

// Lookup returns the channel with the given name
func (r *Registry) Lookup(name string) (Channel, bool) {
	i, ok := r.index[name]
	if !ok {
		return Channel{}, false
	}
	return r.channels[i].clone(), true
}

// Alpha returns the channel that owns the alpha slot of the first map by
// default
func (r *Registry) Alpha() Channel {
	return r.channels[r.alpha].clone()
}
