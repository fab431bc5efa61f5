package engine

import "errors"

// Rule and validation errors returned by the engine. All of them are
// user-correctable: a failed transition leaves the tournament untouched
// and the caller re-submits corrected input. Handlers map these onto
// HTTP statuses with errors.Is.
var (
	// Factory / roster validation
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrTournamentGameRequired = errors.New("tournament game is required")
	ErrStartDateRequired      = errors.New("tournament start date is required")
	ErrInvalidCapacity        = errors.New("tournament max players must be positive")
	ErrPlayersRequired        = errors.New("at least one player is required")
	ErrTooManyPlayers         = errors.New("player count exceeds tournament capacity")
	ErrPlayerNameRequired     = errors.New("player name is required")
	ErrDuplicatePlayer        = errors.New("player name is already on the roster")
	ErrRosterFull             = errors.New("tournament roster is full")

	// Match lifecycle
	ErrScoreRequired        = errors.New("both scores are required")
	ErrScoreNegative        = errors.New("scores must be non-negative integers")
	ErrMatchDateRequired    = errors.New("match date and time are required")
	ErrMatchRosterEmpty     = errors.New("both sides need at least one player")
	ErrMatchRosterOverlap   = errors.New("a player cannot be on both sides of a match")
	ErrUnknownPlayer        = errors.New("player is not registered in this tournament")
	ErrMatchNotFound        = errors.New("pending match not found in this tournament")
	ErrNotEnoughPlayers     = errors.New("not enough players to generate a schedule")
	ErrScheduleNotSupported = errors.New("schedule generation is not available for this tournament type")

	// Territory conquest
	ErrNotGeopolitical        = errors.New("tournament is not geopolitical")
	ErrTerritoryNotFound      = errors.New("territory not found in this tournament")
	ErrTerritoriesNotAdjacent = errors.New("territories are not connected")
	ErrNotYourTurn            = errors.New("it is not the attacking player's turn")
	ErrConquestNotFound       = errors.New("pending conquest match not found in this tournament")
	ErrConquestDraw           = errors.New("a conquest match cannot end in a draw")
	ErrNotEnoughTerritories   = errors.New("geopolitical tournament needs at least one territory per player")
	ErrUnknownConnection      = errors.New("territory connection references an unknown territory")
)
