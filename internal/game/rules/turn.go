package rules

// LandDropsPerTurn is the number of lands a player may play each turn.
const LandDropsPerTurn = 1

// Turn tracks turn progression: the turn number, the index of the active
// player and the land drops left this turn. Turn is a value; advancing it
// returns a new Turn.
type Turn struct {
	Number    int
	Active    int
	LandDrops int
}

// FirstTurn returns turn 1 with the first player active.
func FirstTurn() Turn {
	return Turn{Number: 1, Active: 0, LandDrops: LandDropsPerTurn}
}

// Next advances to the following turn, rotating the active player
// round-robin over players and restoring the land drop budget.
func (t Turn) Next(players int) Turn {
	next := Turn{Number: t.Number + 1, Active: t.Active, LandDrops: LandDropsPerTurn}
	if players > 0 {
		next.Active = (t.Active + 1) % players
	}
	return next
}

// CanPlayLand reports whether a land drop remains.
func (t Turn) CanPlayLand() bool {
	return t.LandDrops > 0
}

// UseLandDrop consumes one land drop.
func (t Turn) UseLandDrop() Turn {
	if t.LandDrops > 0 {
		t.LandDrops--
	}
	return t
}
