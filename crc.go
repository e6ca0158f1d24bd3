package mapscreator

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// SourceCRC computes a CRC over the name and content of every source image of
// texture name that exists, in priority order, along with the options that
// affect the output. It changes whenever repacking could produce different
// files.
func (m *MapsCreator) SourceCRC(name string) (string, error) {
	h := crc32.NewIEEE()

	if _, err := fmt.Fprintf(h, "%s\x00%d\x00", m.opts.MaterialPath, m.opts.CompressionLevel); err != nil {
		return "", err
	}

	for _, c := range m.registry.channels {
		if err := crcChannel(h, c.Name, m.sourceFile(name, c)); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil)), nil
}

func crcChannel(w io.Writer, channel, file string) error {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	if _, err := io.WriteString(w, channel+"\x00"); err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
