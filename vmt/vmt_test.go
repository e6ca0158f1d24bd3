package vmt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalText(t *testing.T) {
	tables := []struct {
		name  string
		alpha int
		maps  []Map
		want  string
	}{
		{
			name:  "no maps",
			alpha: 0,
			want:  "\"PBRStandard\"\n{\n  $maps1alpha 0\n}\n",
		},
		{
			name:  "single map",
			alpha: 0,
			maps:  []Map{{1, "tex_maps1"}},
			want:  "\"PBRStandard\"\n{\n  $maps1alpha 0\n  $maps1 \"tex_maps1\"\n}\n",
		},
		{
			name:  "out of order",
			alpha: 1,
			maps:  []Map{{3, "tex_maps3"}, {1, "tex_maps1"}},
			want:  "\"PBRStandard\"\n{\n  $maps1alpha 1\n  $maps1 \"tex_maps1\"\n  $maps3 \"tex_maps3\"\n}\n",
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			d := New(table.alpha)
			for _, m := range table.maps {
				require.NoError(t, d.Add(m.Index, m.Name))
			}
			b, err := d.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, table.want, string(b))
		})
	}
}

func TestAdd(t *testing.T) {
	d := New(0)
	assert.True(t, errors.Is(d.Add(0, "x"), errBadIndex))
	assert.True(t, errors.Is(d.Add(4, "x"), errBadIndex))
	require.NoError(t, d.Add(2, "x_maps2"))
	assert.True(t, errors.Is(d.Add(2, "y"), errDuplicateMap))
	assert.Len(t, d.Maps, 1)
}

func TestMarshalTextRejectsBadMaps(t *testing.T) {
	d := &Descriptor{Maps: []Map{{2, "a"}, {2, "b"}}}
	_, err := d.MarshalText()
	assert.True(t, errors.Is(err, errBadIndex))
}

func TestUnmarshalText(t *testing.T) {
	in := `"PBRStandard"
{
  $maps1alpha 3
  $maps2 "materials/brick_maps2"

  $maps1 "materials/brick_maps1"
}
`
	var d Descriptor
	require.NoError(t, d.UnmarshalText([]byte(in)))
	assert.Equal(t, "PBRStandard", d.Shader)
	assert.Equal(t, 3, d.AlphaState)
	assert.Equal(t, []Map{{1, "materials/brick_maps1"}, {2, "materials/brick_maps2"}}, d.Maps)

	out, err := d.MarshalText()
	require.NoError(t, err)

	var again Descriptor
	require.NoError(t, again.UnmarshalText(out))
	assert.Equal(t, d, again)
}

func TestUnmarshalTextErrors(t *testing.T) {
	tables := map[string]string{
		"unquoted shader": "PBRStandard\n{\n}\n",
		"missing brace":   "\"PBRStandard\"\n  $maps1alpha 0\n}\n",
		"unknown key":     "\"PBRStandard\"\n{\n  $basetexture \"x\"\n}\n",
		"bad alpha":       "\"PBRStandard\"\n{\n  $maps1alpha one\n}\n",
		"bad index":       "\"PBRStandard\"\n{\n  $maps7 \"x\"\n}\n",
		"unquoted map":    "\"PBRStandard\"\n{\n  $maps1 x\n}\n",
		"unterminated":    "\"PBRStandard\"\n{\n  $maps1alpha 0\n",
		"trailing":        "\"PBRStandard\"\n{\n}\nextra\n",
	}

	for name, in := range tables {
		t.Run(name, func(t *testing.T) {
			var d Descriptor
			err := d.UnmarshalText([]byte(in))
			assert.True(t, errors.Is(err, errSyntax), "got %v", err)
		})
	}
}
