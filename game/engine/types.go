package engine

// Phase is a match's lifecycle stage. Matches advance from waiting
// straight to active once both placements are in; the placing value
// exists for clients that want to render the interval between a full
// roster and readiness. Nothing leaves finished.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePlacing  Phase = "placing"
	PhaseActive   Phase = "active"
	PhaseFinished Phase = "finished"
)

// Player is one roster member of a match. The board is absent until the
// player submits a placement, and immutable (layout-wise) afterwards.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nation   string `json:"nation"`
	Ready    bool   `json:"ready"`
	Scripted bool   `json:"scripted,omitempty"`
	Board    *Board `json:"-"`
}

// PlayerState is a player snapshot shaped for a particular viewer, with
// the board redacted unless the viewer owns it.
type PlayerState struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Nation   string     `json:"nation"`
	Ready    bool       `json:"ready"`
	Scripted bool       `json:"scripted,omitempty"`
	Board    *BoardView `json:"board,omitempty"`
}

// MatchState is a full per-viewer snapshot of a match.
type MatchState struct {
	ID          string        `json:"id"`
	Phase       Phase         `json:"status"`
	BoardSize   int           `json:"board_size"`
	CurrentTurn string        `json:"current_turn,omitempty"`
	WinnerID    string        `json:"winner_id,omitempty"`
	Players     []PlayerState `json:"players"`
}

// MatchSummary is a lightweight listing entry for a match.
type MatchSummary struct {
	ID       string `json:"id"`
	Phase    Phase  `json:"status"`
	Players  int    `json:"players"`
	Private  bool   `json:"private,omitempty"`
	WinnerID string `json:"winner_id,omitempty"`
}

// FireOutcome reports everything the caller needs after a resolved
// shot: the result, whether the match just finished, and whose turn
// comes next.
type FireOutcome struct {
	ShooterID    string     `json:"shooter_id"`
	TargetID     string     `json:"target_id"`
	Result       ShotResult `json:"result"`
	Finished     bool       `json:"finished"`
	WinnerID     string     `json:"winner_id,omitempty"`
	WinnerName   string     `json:"winner_name,omitempty"`
	NextTurnID   string     `json:"next_turn_id,omitempty"`
	NextScripted bool       `json:"-"`
}
