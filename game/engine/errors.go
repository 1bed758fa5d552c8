package engine

import "errors"

var (
	// ErrInvalidCoordinate reports a coordinate that does not match the
	// <letter><row> textual form.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrAlreadyFired reports a shot at a cell that already has an outcome.
	ErrAlreadyFired = errors.New("cell already fired at")

	// ErrInvalidPlacement reports a fleet layout that failed validation,
	// or a placement submitted after the board was already set.
	ErrInvalidPlacement = errors.New("invalid ship placement")

	// ErrPlacementExhausted reports that random placement ran out of
	// attempts for a ship.
	ErrPlacementExhausted = errors.New("random placement attempts exhausted")

	// ErrNoShotsRemaining reports that the gunner found no unfired cell.
	// Unreachable in a well-formed match: the match finishes once a fleet
	// is destroyed, long before the board is exhausted.
	ErrNoShotsRemaining = errors.New("no valid shots remaining")

	// ErrPlayerNotFound reports a player id that is not on the match roster.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrNotYourTurn reports a shot from a player out of turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrInvalidTarget reports a shot at a player without a placed board.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrMatchNotActive reports a shot while the match is not in the
	// active phase. A finished match accepts no further shots.
	ErrMatchNotActive = errors.New("match not active")

	// ErrRosterFull reports an attempt to add a third player to a match.
	ErrRosterFull = errors.New("match roster is full")
)
