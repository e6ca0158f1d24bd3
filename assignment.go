package mapscreator

import "github.com/bodgit/mapscreator/raster"

// Placement is where a channel is packed.
type Placement struct {
	Map   int
	Slots []raster.Channel
}

// Assignment maps every channel name to its placement for a run.
type Assignment map[string]Placement

// Assignment returns the default placement of every channel
func (r *Registry) Assignment() Assignment {
	a := make(Assignment, len(r.channels))
	for _, c := range r.channels {
		a[c.Name] = Placement{
			Map:   c.Map,
			Slots: append([]raster.Channel(nil), c.Slots...),
		}
	}
	return a
}

func (a Assignment) clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = Placement{
			Map:   v.Map,
			Slots: append([]raster.Channel(nil), v.Slots...),
		}
	}
	return out
}

// Reassign returns a new assignment where the channel belonging to group
// swaps placement with the alpha channel of r. AlphaNone returns an
// unchanged copy. Reassigning twice with the same group restores the
// original assignment; a itself is never modified.
func (a Assignment) Reassign(r *Registry, group AlphaGroup) Assignment {
	out := a.clone()
	if group == AlphaNone {
		return out
	}

	alpha := r.channels[r.alpha].Name
	for _, c := range r.channels {
		if c.AlphaGroup == group {
			out[c.Name], out[alpha] = out[alpha], out[c.Name]
		}
	}
	return out
}

// Channels returns the channels placed in map m, in priority order, with
// their Map and Slots taken from a.
func (a Assignment) Channels(r *Registry, m int) []Channel {
	var out []Channel
	for _, c := range r.channels {
		p, ok := a[c.Name]
		if !ok || p.Map != m {
			continue
		}
		c = c.clone()
		c.Map = p.Map
		c.Slots = append([]raster.Channel(nil), p.Slots...)
		out = append(out, c)
	}
	return out
}
