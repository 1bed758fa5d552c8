package service

import "github.com/armadagame/armada/game/engine"

// Event is one variant of the closed outbound event union. Each variant
// maps 1:1 to a wire event name via Event().
type Event interface {
	Event() string
}

// OpponentSummary describes the other seat in a match-found notice.
type OpponentSummary struct {
	Username string `json:"username"`
	Nation   string `json:"nation"`
}

// MatchFound notifies a player that a match has been assembled.
type MatchFound struct {
	MatchID  string          `json:"matchId"`
	RoomCode string          `json:"roomCode,omitempty"`
	Opponent OpponentSummary `json:"opponent"`
	Seat     string          `json:"youAre"`
}

func (MatchFound) Event() string { return "match-found" }

// QueueWaiting reports the queue size to a player still waiting.
type QueueWaiting struct {
	QueueSize int `json:"queueSize"`
}

func (QueueWaiting) Event() string { return "queue-waiting" }

// RoomCreated returns the code for a freshly created private room.
type RoomCreated struct {
	MatchID  string `json:"matchId"`
	RoomCode string `json:"roomCode"`
}

func (RoomCreated) Event() string { return "room-created" }

// MatchStateUpdate carries a full snapshot, redacted for its recipient.
type MatchStateUpdate struct {
	State engine.MatchState `json:"state"`
}

func (MatchStateUpdate) Event() string { return "match-state" }

// MatchStarted announces the transition to the active phase.
type MatchStarted struct {
	MatchID string `json:"matchId"`
}

func (MatchStarted) Event() string { return "match-started" }

// ShotResultEvent reports one resolved shot to the match.
type ShotResultEvent struct {
	ShooterID string            `json:"shooterId"`
	TargetID  string            `json:"targetId"`
	Coord     engine.Coord      `json:"coord"`
	Result    engine.ShotResult `json:"result"`
}

func (ShotResultEvent) Event() string { return "shot-result" }

// MatchFinished announces the winner of a terminal match.
type MatchFinished struct {
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
}

func (MatchFinished) Event() string { return "match-finished" }

// ErrorEvent reports a rejected request back to the offending client.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (ErrorEvent) Event() string { return "error" }
