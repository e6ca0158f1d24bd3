package mapscreator

import (
	"os"

	"github.com/bodgit/mapscreator/raster"
	"github.com/hashicorp/go-hclog"
)

func (m *MapsCreator) sourceFile(name string, c Channel) string {
	return SourceFile(name, c, m.opts.Extension)
}

// decodeChannel returns nil with no error if the source is missing or, when
// not in strict mode, can't be decoded
func (m *MapsCreator) decodeChannel(logger hclog.Logger, file string) (*raster.Raster, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, m.decodeFailure(logger, file, err)
	}
	defer f.Close()

	r, err := raster.Decode(f)
	if err != nil {
		return nil, m.decodeFailure(logger, file, err)
	}
	return r, nil
}

func (m *MapsCreator) decodeFailure(logger hclog.Logger, file string, err error) error {
	if m.opts.Strict {
		return &DecodeError{Path: file, Err: err}
	}
	logger.Warn("unable to decode image, treating as missing", "file", file, "error", err)
	return nil
}

// composite builds packed map index from every channel a places in it. A nil
// raster with no error means the map would only contain default values.
func (m *MapsCreator) composite(logger hclog.Logger, name string, a Assignment, index int) (*raster.Raster, error) {
	channels := a.Channels(m.registry, index)
	sources := make([]*raster.Raster, len(channels))

	first := -1
	for i, c := range channels {
		src, err := m.decodeChannel(logger, m.sourceFile(name, c))
		if err != nil {
			return nil, err
		}
		if src == nil {
			logger.Info("didn't find channel, using default", "channel", c.Name, "default", c.Default, "map", index, "slots", c.Slots)
			continue
		}
		logger.Info("found channel", "channel", c.Name, "map", index, "slots", c.Slots)

		if first < 0 {
			first = i
		} else if !src.SameSize(sources[first]) {
			return nil, &DimensionMismatchError{
				Map:         index,
				First:       channels[first].Name,
				FirstWidth:  sources[first].Width(),
				FirstHeight: sources[first].Height(),
				Channel:     c.Name,
				Width:       src.Width(),
				Height:      src.Height(),
			}
		}
		sources[i] = src
	}

	if first < 0 {
		if len(channels) > 0 {
			logger.Info("discarding map as it contains only defaults", "map", index)
		}
		return nil, nil
	}

	dst := raster.New(sources[first].Width(), sources[first].Height())
	for i, c := range channels {
		for j, slot := range c.Slots {
			if sources[i] == nil {
				dst.Fill(slot, c.Default)
				continue
			}
			if err := dst.CopyChannel(slot, sources[i], raster.Channel(j)); err != nil {
				return nil, err
			}
		}
	}

	return dst, nil
}
