/*
Package mapscreator is a library for packing single channel texture images
into the packed maps used by the PBRStandard material shader.

Each texture is a set of images named <name>_<channel>.png. They are packed
into at most three RGBA maps named <name>_maps<n>.png, and a <name>.vmt
descriptor referencing the maps that were written.
*/
package mapscreator

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

type MapsCreator struct {
	registry *Registry
	logger   hclog.Logger
	opts     Options
}

// New returns a MapsCreator. A nil registry uses DefaultRegistry and a nil
// logger discards all output.
func New(registry *Registry, logger hclog.Logger, opts *Options) *MapsCreator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &MapsCreator{
		registry: registry,
		logger:   logger,
		opts:     opts.normalize(),
	}
}

// Registry returns the channel registry in use
func (m *MapsCreator) Registry() *Registry {
	return m.registry
}

func fileExists(file string) bool {
	info, err := os.Stat(file)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
