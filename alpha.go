package mapscreator

// ResolveAlphaGroup returns the alpha group of the first channel, in
// priority order, that belongs to a group and for which present returns
// true. Any later present channels that also belong to a group are returned
// too; they keep their default placement and are packed there.
func (r *Registry) ResolveAlphaGroup(present func(Channel) bool) (AlphaGroup, []Channel) {
	group := AlphaNone
	var others []Channel
	for _, c := range r.channels {
		if c.AlphaGroup == AlphaNone || !present(c.clone()) {
			continue
		}
		if group == AlphaNone {
			group = c.AlphaGroup
			continue
		}
		others = append(others, c.clone())
	}
	return group, others
}
