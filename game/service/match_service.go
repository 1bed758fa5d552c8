package service

import (
	"context"
	"errors"
	"time"

	"github.com/armadagame/armada/game/engine"
)

var (
	// ErrMatchNotFound reports an unknown match id.
	ErrMatchNotFound = errors.New("match not found")
	// ErrRoomNotFound reports an unknown or consumed room code.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomFull reports a join attempt on a room with both seats taken.
	ErrRoomFull = errors.New("room is full")
	// ErrRoomStarted reports a join attempt on a room whose game started.
	ErrRoomStarted = errors.New("game already started")
)

// MatchService defines all matchmaking and match operations. Methods
// return an error for the caller to report; positive notifications
// (match-found, state snapshots, shot results) go out through the
// Emitter.
type MatchService interface {
	// Matchmaking & rooms
	JoinQueue(ctx context.Context, sessionID, userID, username string, wantAI bool) error
	LeaveQueue(ctx context.Context, sessionID string) error
	CreateRoom(ctx context.Context, sessionID, userID, username string) error
	JoinRoom(ctx context.Context, sessionID, userID, username, roomCode string) error
	Disconnect(ctx context.Context, sessionID string)

	// Match operations
	SubmitPlacement(ctx context.Context, matchID, userID string, placements []engine.Placement) error
	FireShot(ctx context.Context, matchID, userID, targetID string, coord engine.Coord) error

	// Queries (REST / MCP surface)
	CreateScriptedMatch(ctx context.Context, userID, username, nation string) (engine.MatchState, error)
	MatchState(ctx context.Context, matchID, viewerID string) (engine.MatchState, error)
	ListMatches(ctx context.Context) []engine.MatchSummary
}

// Emitter delivers an outbound event to one transport session. The
// websocket hub implements it; tests substitute a recorder.
type Emitter interface {
	Emit(sessionID string, event Event)
}

// Scheduler defers a function, modelling the scripted opponent's
// cosmetic thinking time as an explicit scheduled task. The production
// implementation uses time.AfterFunc; tests run synchronously.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

// After schedules fn on its own timer goroutine.
func (TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// ErrorCode maps a service or engine error to its wire error code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMatchNotFound):
		return "MATCH_NOT_FOUND"
	case errors.Is(err, engine.ErrPlayerNotFound):
		return "PLAYER_NOT_FOUND"
	case errors.Is(err, engine.ErrInvalidPlacement),
		errors.Is(err, engine.ErrPlacementExhausted):
		return "INVALID_PLACEMENT"
	case errors.Is(err, engine.ErrNotYourTurn):
		return "NOT_YOUR_TURN"
	case errors.Is(err, engine.ErrInvalidTarget):
		return "INVALID_TARGET"
	case errors.Is(err, ErrRoomNotFound):
		return "ROOM_NOT_FOUND"
	case errors.Is(err, ErrRoomFull):
		return "ROOM_FULL"
	case errors.Is(err, ErrRoomStarted):
		return "ROOM_STARTED"
	default:
		// Already-fired cells, shots outside the active phase, malformed
		// coordinates.
		return "INVALID_SHOT"
	}
}
