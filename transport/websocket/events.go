package websocket

import (
	"encoding/json"

	"github.com/armadagame/armada/game/engine"
)

// Envelope is the wire frame for every inbound and outbound message:
// an event name plus an event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound event names accepted from clients.
const (
	EventQueueJoin       = "queue-join"
	EventQueueLeave      = "queue-leave"
	EventRoomCreate      = "room-create"
	EventRoomJoin        = "room-join"
	EventPlacementSubmit = "placement-submit"
	EventShotFire        = "shot-fire"
)

// QueueJoin asks to enter public matchmaking, optionally against the
// scripted opponent instead of waiting for a human.
type QueueJoin struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	WantAI   bool   `json:"wantAi"`
}

// RoomCreate asks for a fresh private room.
type RoomCreate struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// RoomJoin asks to take the second seat of a private room by code.
type RoomJoin struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	RoomCode string `json:"roomCode"`
}

// PlacementSubmit carries a player's full fleet layout.
type PlacementSubmit struct {
	MatchID    string             `json:"matchId"`
	UserID     string             `json:"userId"`
	Placements []engine.Placement `json:"placements"`
}

// ShotFire fires at one cell of the opponent's board.
type ShotFire struct {
	MatchID  string       `json:"matchId"`
	UserID   string       `json:"userId"`
	TargetID string       `json:"targetId"`
	Coord    engine.Coord `json:"coord"`
}
