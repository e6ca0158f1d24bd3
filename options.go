package mapscreator

import (
	"image/png"
	"strings"
)

// DefaultExtension is the filename extension of source images
const DefaultExtension = "png"

// Options controls how textures are packed.
type Options struct {
	// Extension of the source images, without the dot (default is png).
	// The content is sniffed so any registered image format is accepted.
	Extension string
	// MaterialPath, if set, replaces the directory of the texture name in
	// the map references written to the descriptor.
	MaterialPath string
	// Strict aborts the run when a source image exists but cannot be
	// decoded, rather than using the default value.
	Strict bool
	// CompressionLevel is passed to the PNG encoder.
	CompressionLevel png.CompressionLevel
}

func (o *Options) normalize() Options {
	var out Options
	if o != nil {
		out = *o
	}
	out.Extension = strings.TrimPrefix(out.Extension, ".")
	if out.Extension == "" {
		out.Extension = DefaultExtension
	}
	out.MaterialPath = strings.TrimSuffix(strings.ReplaceAll(out.MaterialPath, "\\", "/"), "/")
	return out
}
