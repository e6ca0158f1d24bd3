/*
Package vmt implements the small material descriptor written alongside the
packed maps.

The descriptor names the shader, the alpha state of the first map and one
line per packed map that was written:

	"PBRStandard"
	{
	  $maps1alpha 1
	  $maps1 "brick_maps1"
	  $maps3 "brick_maps3"
	}
*/
package vmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// Extension is the filename extension used when writing to disk
	Extension = ".vmt"

	// Shader is the shader name written when none is set
	Shader = "PBRStandard"

	// MaxMaps is the highest map index a descriptor can reference
	MaxMaps = 3

	alphaKey = "$maps1alpha"
	mapKey   = "$maps"
)

var (
	errBadIndex     = errors.New("vmt: invalid map index")
	errDuplicateMap = errors.New("vmt: duplicate map")
	errSyntax       = errors.New("vmt: syntax error")
)

// Map is a reference to a single packed map.
type Map struct {
	Index int
	Name  string
}

// Descriptor is the material descriptor object. It implements the
// encoding.TextMarshaler and encoding.TextUnmarshaler interfaces.
type Descriptor struct {
	Shader     string
	AlphaState int
	Maps       []Map
}

// New returns a descriptor with no maps for the given alpha state
func New(alphaState int) *Descriptor {
	return &Descriptor{
		Shader:     Shader,
		AlphaState: alphaState,
	}
}

// Add references the map with the given index. Maps are kept in ascending
// index order.
func (d *Descriptor) Add(index int, name string) error {
	if index < 1 || index > MaxMaps {
		return fmt.Errorf("%w: %d", errBadIndex, index)
	}
	for _, m := range d.Maps {
		if m.Index == index {
			return fmt.Errorf("%w: %d", errDuplicateMap, index)
		}
	}
	d.Maps = append(d.Maps, Map{Index: index, Name: name})
	sort.Slice(d.Maps, func(i, j int) bool { return d.Maps[i].Index < d.Maps[j].Index })
	return nil
}

// MarshalText encodes the descriptor into text form and returns the result
func (d *Descriptor) MarshalText() ([]byte, error) {
	shader := d.Shader
	if shader == "" {
		shader = Shader
	}

	b := new(bytes.Buffer)
	fmt.Fprintf(b, "%s\n{\n", strconv.Quote(shader))
	fmt.Fprintf(b, "  %s %d\n", alphaKey, d.AlphaState)

	last := 0
	for _, m := range d.Maps {
		if m.Index <= last || m.Index > MaxMaps {
			return nil, fmt.Errorf("%w: %d", errBadIndex, m.Index)
		}
		last = m.Index
		fmt.Fprintf(b, "  %s%d %s\n", mapKey, m.Index, strconv.Quote(m.Name))
	}
	b.WriteString("}\n")

	return b.Bytes(), nil
}

// UnmarshalText decodes the descriptor from text form
func (d *Descriptor) UnmarshalText(text []byte) error {
	*d = Descriptor{}

	s := bufio.NewScanner(bytes.NewReader(text))
	var state int
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}

		switch state {
		case 0:
			shader, err := strconv.Unquote(line)
			if err != nil {
				return fmt.Errorf("%w: line %d: bad shader name", errSyntax, n)
			}
			d.Shader = shader
			state++
		case 1:
			if line != "{" {
				return fmt.Errorf("%w: line %d: expected {", errSyntax, n)
			}
			state++
		case 2:
			if line == "}" {
				state++
				continue
			}
			if err := d.parseKey(line); err != nil {
				return fmt.Errorf("%w: line %d: %v", errSyntax, n, err)
			}
		default:
			return fmt.Errorf("%w: line %d: trailing data", errSyntax, n)
		}
	}
	if err := s.Err(); err != nil {
		return err
	}
	if state != 3 {
		return fmt.Errorf("%w: unexpected end of input", errSyntax)
	}

	return nil
}

func (d *Descriptor) parseKey(line string) error {
	fields := strings.SplitN(line, " ", 2)
	if len(fields) != 2 {
		return errors.New("missing value")
	}
	key, value := fields[0], strings.TrimSpace(fields[1])

	switch {
	case key == alphaKey:
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		d.AlphaState = v
	case strings.HasPrefix(key, mapKey):
		i, err := strconv.Atoi(strings.TrimPrefix(key, mapKey))
		if err != nil {
			return fmt.Errorf("unknown key %s", key)
		}
		name, err := strconv.Unquote(value)
		if err != nil {
			return err
		}
		return d.Add(i, name)
	default:
		return fmt.Errorf("unknown key %s", key)
	}

	return nil
}
