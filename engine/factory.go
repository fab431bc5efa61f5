package engine

import (
	"strings"

	"github.com/fbessa/tournament-server/models"
)

// NewTournamentInput carries everything needed to set up a tournament.
// Territories are only read for geopolitical tournaments; their
// connections reference other territories by name since ids are assigned
// here.
type NewTournamentInput struct {
	Name         string                `json:"name"`
	Game         string                `json:"game"`
	StartDate    string                `json:"start_date"`
	MaxPlayers   int                   `json:"max_players"`
	Type         models.TournamentType `json:"type"`
	ScheduleType models.ScheduleType   `json:"schedule_type"`
	Players      []string              `json:"players"`
	Territories  []TerritoryInput      `json:"territories,omitempty"`
}

type TerritoryInput struct {
	Name        string          `json:"name"`
	Color       *string         `json:"color,omitempty"`
	Position    models.Position `json:"position"`
	Connections []string        `json:"connections"`
}

// NewTournament validates the input and builds a fresh tournament.
//
// Standard tournaments get one one-player team per registered player so
// the standings table has a competitor row from day one. Geopolitical
// tournaments instead get the configured territory map: one starting
// territory is dealt to each player in roster order, the turn order is
// the roster order, and the first player opens the game.
func NewTournament(input NewTournamentInput) (*models.Tournament, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTournamentNameRequired
	}
	if strings.TrimSpace(input.Game) == "" {
		return nil, ErrTournamentGameRequired
	}
	if input.StartDate == "" {
		return nil, ErrStartDateRequired
	}
	if input.MaxPlayers <= 0 {
		return nil, ErrInvalidCapacity
	}
	if err := validateRoster(input.Players, input.MaxPlayers); err != nil {
		return nil, err
	}

	tournamentType := input.Type
	if tournamentType == "" {
		tournamentType = models.TypeStandard
	}
	scheduleType := input.ScheduleType
	if scheduleType == "" {
		scheduleType = models.ScheduleManual
	}

	t := &models.Tournament{
		ID:           newID(),
		Name:         strings.TrimSpace(input.Name),
		Game:         strings.TrimSpace(input.Game),
		StartDate:    input.StartDate,
		Status:       models.StatusUpcoming,
		Type:         tournamentType,
		ScheduleType: scheduleType,
		MaxPlayers:   input.MaxPlayers,
		Players:      append([]string(nil), input.Players...),
		Teams:        []models.Team{},
		Matches:      []models.Match{},
	}

	switch tournamentType {
	case models.TypeStandard:
		for _, name := range t.Players {
			t.Teams = append(t.Teams, newTeamSnapshot([]string{name}, t.Game))
		}
	case models.TypeGeopolitical:
		territories, err := buildTerritories(input.Territories, t.Players)
		if err != nil {
			return nil, err
		}
		t.Territories = territories
		t.GeopoliticalMatches = []models.GeopoliticalMatch{}
		t.TurnOrder = append([]string(nil), t.Players...)
		t.CurrentTurn = t.Players[0]
	}

	return t, nil
}

// AddPlayer registers one more player. Names are compared exactly and
// case-sensitively: the display name is the player's identity.
func AddPlayer(t *models.Tournament, name string) (*models.Tournament, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrPlayerNameRequired
	}
	if t.HasPlayer(name) {
		return nil, ErrDuplicatePlayer
	}
	if len(t.Players) >= t.MaxPlayers {
		return nil, ErrRosterFull
	}

	out := t.Clone()
	out.Players = append(out.Players, name)
	if out.Type == models.TypeStandard && len(out.Teams) > 0 {
		out.Teams = append(out.Teams, newTeamSnapshot([]string{name}, out.Game))
	}
	if out.Type == models.TypeGeopolitical {
		out.TurnOrder = append(out.TurnOrder, name)
		if out.CurrentTurn == "" {
			out.CurrentTurn = name
		}
	}
	return out, nil
}

// FinishTournament moves the tournament to its terminal state. The
// transition is one-way; finishing an already completed tournament is a
// no-op.
func FinishTournament(t *models.Tournament) *models.Tournament {
	out := t.Clone()
	out.Status = models.StatusCompleted
	return out
}

func validateRoster(players []string, maxPlayers int) error {
	if len(players) == 0 {
		return ErrPlayersRequired
	}
	if len(players) > maxPlayers {
		return ErrTooManyPlayers
	}
	seen := make(map[string]bool, len(players))
	for _, name := range players {
		if strings.TrimSpace(name) == "" {
			return ErrPlayerNameRequired
		}
		if seen[name] {
			return ErrDuplicatePlayer
		}
		seen[name] = true
	}
	return nil
}

// buildTerritories assigns ids, resolves name-based connections and
// symmetrizes the adjacency so the map renders consistently from either
// side of a border. Starting territories are dealt to players in roster
// order; any surplus stays neutral.
func buildTerritories(inputs []TerritoryInput, players []string) ([]models.Territory, error) {
	if len(inputs) < len(players) {
		return nil, ErrNotEnoughTerritories
	}

	idByName := make(map[string]string, len(inputs))
	territories := make([]models.Territory, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			return nil, ErrUnknownConnection
		}
		territories[i] = models.Territory{
			ID:          newID(),
			Name:        in.Name,
			Color:       in.Color,
			Position:    in.Position,
			Connections: []string{},
		}
		idByName[in.Name] = territories[i].ID
	}

	indexByID := make(map[string]int, len(territories))
	for i := range territories {
		indexByID[territories[i].ID] = i
	}

	for i, in := range inputs {
		for _, connName := range in.Connections {
			connID, ok := idByName[connName]
			if !ok {
				return nil, ErrUnknownConnection
			}
			if connID == territories[i].ID {
				continue
			}
			connect(&territories[i], connID)
			connect(&territories[indexByID[connID]], territories[i].ID)
		}
	}

	for i := range players {
		territories[i].OwnerID = players[i]
	}
	return territories, nil
}

func connect(t *models.Territory, id string) {
	if !t.ConnectedTo(id) {
		t.Connections = append(t.Connections, id)
	}
}
