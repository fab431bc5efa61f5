package models

// TournamentStatus represents the lifecycle state of a tournament.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusOngoing   TournamentStatus = "ongoing"
	StatusCompleted TournamentStatus = "completed"
)

// TournamentType selects between the classic league format and the
// territory-conquest variant.
type TournamentType string

const (
	TypeStandard     TournamentType = "standard"
	TypeGeopolitical TournamentType = "geopolitical"
)

// ScheduleType controls whether fixtures are entered by hand or
// generated from the roster.
type ScheduleType string

const (
	ScheduleManual    ScheduleType = "manual"
	ScheduleAutomatic ScheduleType = "automatic"
)

// Tournament is the aggregate root. It is persisted as a whole document:
// matches, teams and territories are embedded, not independently
// addressable. Player display names double as player ids, which is why
// the roster rejects duplicates.
type Tournament struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Game         string           `json:"game"`
	StartDate    string           `json:"start_date"`
	Status       TournamentStatus `json:"status"`
	Type         TournamentType   `json:"type"`
	ScheduleType ScheduleType     `json:"schedule_type"`
	MaxPlayers   int              `json:"max_players"`
	Players      []string         `json:"players"`
	Teams        []Team           `json:"teams"`
	Matches      []Match          `json:"matches"`
	LogoKey      *string          `json:"logo_key,omitempty"`
	LogoURL      *string          `json:"logo_url,omitempty"`

	// Geopolitical-only fields.
	Territories         []Territory         `json:"territories,omitempty"`
	GeopoliticalMatches []GeopoliticalMatch `json:"geopolitical_matches,omitempty"`
	CurrentTurn         string              `json:"current_turn,omitempty"`
	TurnOrder           []string            `json:"turn_order,omitempty"`
}

// HasPlayer reports whether name is on the roster (exact match).
func (t *Tournament) HasPlayer(name string) bool {
	for _, p := range t.Players {
		if p == name {
			return true
		}
	}
	return false
}

// FindMatch returns the embedded match with the given id, or nil.
func (t *Tournament) FindMatch(id string) *Match {
	for i := range t.Matches {
		if t.Matches[i].ID == id {
			return &t.Matches[i]
		}
	}
	return nil
}

// FindTerritory returns the embedded territory with the given id, or nil.
func (t *Tournament) FindTerritory(id string) *Territory {
	for i := range t.Territories {
		if t.Territories[i].ID == id {
			return &t.Territories[i]
		}
	}
	return nil
}

// FindGeopoliticalMatch returns the embedded conquest match with the
// given id, or nil.
func (t *Tournament) FindGeopoliticalMatch(id string) *GeopoliticalMatch {
	for i := range t.GeopoliticalMatches {
		if t.GeopoliticalMatches[i].ID == id {
			return &t.GeopoliticalMatches[i]
		}
	}
	return nil
}

// Clone returns a deep copy. Engine transitions operate on a copy so a
// failed operation never leaves a partially mutated tournament behind.
func (t *Tournament) Clone() *Tournament {
	out := *t

	out.Players = append([]string(nil), t.Players...)
	out.TurnOrder = append([]string(nil), t.TurnOrder...)

	if t.Teams != nil {
		out.Teams = make([]Team, len(t.Teams))
		for i, team := range t.Teams {
			out.Teams[i] = team.Clone()
		}
	}
	if t.Matches != nil {
		out.Matches = make([]Match, len(t.Matches))
		for i, m := range t.Matches {
			out.Matches[i] = m.Clone()
		}
	}
	if t.Territories != nil {
		out.Territories = make([]Territory, len(t.Territories))
		for i, tr := range t.Territories {
			out.Territories[i] = tr.Clone()
		}
	}
	if t.GeopoliticalMatches != nil {
		out.GeopoliticalMatches = make([]GeopoliticalMatch, len(t.GeopoliticalMatches))
		for i, m := range t.GeopoliticalMatches {
			out.GeopoliticalMatches[i] = m.Clone()
		}
	}
	if t.LogoKey != nil {
		key := *t.LogoKey
		out.LogoKey = &key
	}
	if t.LogoURL != nil {
		u := *t.LogoURL
		out.LogoURL = &u
	}
	return &out
}
