package engine

import (
	"time"

	"github.com/fbessa/tournament-server/models"
)

// DeclareAttack opens a conquest match between two territories. The
// attack is only legal when the territories are connected on the map and
// it is the attacking territory owner's turn. The defender id is the
// target's current owner, or empty when the target is neutral.
//
// Returns the updated tournament together with the new pending match so
// the caller can route the user straight to score entry.
func DeclareAttack(t *models.Tournament, attackerTerritoryID, defenderTerritoryID string) (*models.Tournament, *models.GeopoliticalMatch, error) {
	if t.Type != models.TypeGeopolitical {
		return nil, nil, ErrNotGeopolitical
	}
	attacker := t.FindTerritory(attackerTerritoryID)
	defender := t.FindTerritory(defenderTerritoryID)
	if attacker == nil || defender == nil {
		return nil, nil, ErrTerritoryNotFound
	}
	if !attacker.ConnectedTo(defender.ID) {
		return nil, nil, ErrTerritoriesNotAdjacent
	}
	if attacker.OwnerID == "" || t.CurrentTurn != attacker.OwnerID {
		return nil, nil, ErrNotYourTurn
	}

	now := time.Now()
	match := models.GeopoliticalMatch{
		ID:                  newID(),
		AttackerID:          attacker.OwnerID,
		DefenderID:          defender.OwnerID,
		AttackerTerritoryID: attacker.ID,
		DefenderTerritoryID: defender.ID,
		Date:                now.Format("2006-01-02"),
		Time:                now.Format("15:04"),
		Status:              models.MatchPending,
		Game:                t.Game,
	}

	out := t.Clone()
	out.GeopoliticalMatches = append(out.GeopoliticalMatches, match)
	return out, &match, nil
}

// ResolveAttack records the score of a pending conquest match. A
// strictly greater home score means the attacker wins and the defending
// territory changes hands; a strictly greater away score leaves
// ownership untouched. Equal scores are rejected outright: conquest has
// no draw outcome, the game must be replayed with a decisive score.
//
// The turn always advances to the next entry of the turn order,
// whichever side won. An empty turn order makes the advance a no-op.
func ResolveAttack(t *models.Tournament, conquestID string, homeScore, awayScore *int) (*models.Tournament, error) {
	if err := validateScores(homeScore, awayScore); err != nil {
		return nil, err
	}
	if *homeScore == *awayScore {
		return nil, ErrConquestDraw
	}

	out := t.Clone()
	match := out.FindGeopoliticalMatch(conquestID)
	if match == nil || match.Status != models.MatchPending {
		return nil, ErrConquestNotFound
	}

	home, away := *homeScore, *awayScore
	match.HomeScore = &home
	match.AwayScore = &away
	match.Status = models.MatchCompleted

	if home > away {
		winner := match.AttackerID
		match.WinnerID = &winner
		if territory := out.FindTerritory(match.DefenderTerritoryID); territory != nil {
			territory.OwnerID = match.AttackerID
		}
	} else if match.DefenderID != "" {
		winner := match.DefenderID
		match.WinnerID = &winner
	}
	// A neutral territory that repels an attack has no winning player;
	// WinnerID stays nil.

	advanceTurn(out)
	return out, nil
}

func advanceTurn(t *models.Tournament) {
	if len(t.TurnOrder) == 0 {
		return
	}
	for i, id := range t.TurnOrder {
		if id == t.CurrentTurn {
			t.CurrentTurn = t.TurnOrder[(i+1)%len(t.TurnOrder)]
			return
		}
	}
	// Current turn missing from the order (should not happen); restart
	// from the top rather than stalling the game.
	t.CurrentTurn = t.TurnOrder[0]
}
