package models

// Position is a 2-D map coordinate, expressed in percent of the map
// canvas so the frontend can render at any size.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Territory is a node on the conquest map. Only OwnerID mutates after
// setup, and only through attack resolution. Connections hold ids of
// adjacent territories; the factory keeps the adjacency symmetric.
type Territory struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	OwnerID     string   `json:"owner_id,omitempty"`
	Color       *string  `json:"color,omitempty"`
	FlagKey     *string  `json:"flag_key,omitempty"`
	FlagURL     *string  `json:"flag_url,omitempty"`
	Position    Position `json:"position"`
	Connections []string `json:"connections"`
}

// Clone returns a copy with its own connections slice.
func (t Territory) Clone() Territory {
	out := t
	out.Connections = append([]string(nil), t.Connections...)
	if t.Color != nil {
		c := *t.Color
		out.Color = &c
	}
	if t.FlagKey != nil {
		k := *t.FlagKey
		out.FlagKey = &k
	}
	if t.FlagURL != nil {
		u := *t.FlagURL
		out.FlagURL = &u
	}
	return out
}

// ConnectedTo reports whether the territory with the given id is
// adjacent to this one.
func (t Territory) ConnectedTo(id string) bool {
	for _, c := range t.Connections {
		if c == id {
			return true
		}
	}
	return false
}
