package websocket

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/armadagame/armada/game/engine"
	"github.com/armadagame/armada/game/service"
)

// fakeService records every call for dispatch assertions.
type fakeService struct {
	calls []string
	err   error

	lastSession    string
	lastUser       string
	lastMatch      string
	lastRoomCode   string
	lastCoord      engine.Coord
	lastPlacements []engine.Placement
	lastWantAI     bool
}

func (f *fakeService) JoinQueue(ctx context.Context, sessionID, userID, username string, wantAI bool) error {
	f.calls = append(f.calls, "JoinQueue")
	f.lastSession, f.lastUser, f.lastWantAI = sessionID, userID, wantAI
	return f.err
}

func (f *fakeService) LeaveQueue(ctx context.Context, sessionID string) error {
	f.calls = append(f.calls, "LeaveQueue")
	f.lastSession = sessionID
	return f.err
}

func (f *fakeService) CreateRoom(ctx context.Context, sessionID, userID, username string) error {
	f.calls = append(f.calls, "CreateRoom")
	f.lastSession, f.lastUser = sessionID, userID
	return f.err
}

func (f *fakeService) JoinRoom(ctx context.Context, sessionID, userID, username, roomCode string) error {
	f.calls = append(f.calls, "JoinRoom")
	f.lastSession, f.lastUser, f.lastRoomCode = sessionID, userID, roomCode
	return f.err
}

func (f *fakeService) Disconnect(ctx context.Context, sessionID string) {
	f.calls = append(f.calls, "Disconnect")
	f.lastSession = sessionID
}

func (f *fakeService) SubmitPlacement(ctx context.Context, matchID, userID string, placements []engine.Placement) error {
	f.calls = append(f.calls, "SubmitPlacement")
	f.lastMatch, f.lastUser, f.lastPlacements = matchID, userID, placements
	return f.err
}

func (f *fakeService) FireShot(ctx context.Context, matchID, userID, targetID string, coord engine.Coord) error {
	f.calls = append(f.calls, "FireShot")
	f.lastMatch, f.lastUser, f.lastCoord = matchID, userID, coord
	return f.err
}

func (f *fakeService) CreateScriptedMatch(ctx context.Context, userID, username, nation string) (engine.MatchState, error) {
	f.calls = append(f.calls, "CreateScriptedMatch")
	return engine.MatchState{}, f.err
}

func (f *fakeService) MatchState(ctx context.Context, matchID, viewerID string) (engine.MatchState, error) {
	f.calls = append(f.calls, "MatchState")
	return engine.MatchState{}, f.err
}

func (f *fakeService) ListMatches(ctx context.Context) []engine.MatchSummary {
	f.calls = append(f.calls, "ListMatches")
	return nil
}

func newTestHub(t *testing.T) (*Hub, *fakeService) {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	fake := &fakeService{}
	hub.SetService(fake)
	return hub, fake
}

func envelope(t *testing.T, event string, data interface{}) Envelope {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return Envelope{Event: event, Data: raw}
}

func TestDispatchQueueJoin(t *testing.T) {
	hub, fake := newTestHub(t)

	hub.dispatch(context.Background(), "s1", envelope(t, EventQueueJoin, QueueJoin{
		UserID:   "u1",
		Username: "Alice",
		WantAI:   true,
	}))

	if len(fake.calls) != 1 || fake.calls[0] != "JoinQueue" {
		t.Fatalf("calls = %v, want [JoinQueue]", fake.calls)
	}
	if fake.lastSession != "s1" || fake.lastUser != "u1" || !fake.lastWantAI {
		t.Errorf("JoinQueue got session=%s user=%s wantAI=%t", fake.lastSession, fake.lastUser, fake.lastWantAI)
	}
}

func TestDispatchShotFire(t *testing.T) {
	hub, fake := newTestHub(t)

	hub.dispatch(context.Background(), "s1", envelope(t, EventShotFire, ShotFire{
		MatchID:  "m1",
		UserID:   "u1",
		TargetID: "u2",
		Coord:    "B7",
	}))

	if len(fake.calls) != 1 || fake.calls[0] != "FireShot" {
		t.Fatalf("calls = %v, want [FireShot]", fake.calls)
	}
	if fake.lastMatch != "m1" || fake.lastCoord != "B7" {
		t.Errorf("FireShot got match=%s coord=%s", fake.lastMatch, fake.lastCoord)
	}
}

func TestDispatchPlacementSubmit(t *testing.T) {
	hub, fake := newTestHub(t)

	placements := []engine.Placement{{Kind: "destroyer", Cells: []engine.Coord{"A1", "A2"}}}
	hub.dispatch(context.Background(), "s1", envelope(t, EventPlacementSubmit, PlacementSubmit{
		MatchID:    "m1",
		UserID:     "u1",
		Placements: placements,
	}))

	if len(fake.calls) != 1 || fake.calls[0] != "SubmitPlacement" {
		t.Fatalf("calls = %v, want [SubmitPlacement]", fake.calls)
	}
	if len(fake.lastPlacements) != 1 || fake.lastPlacements[0].Cells[0] != "A1" {
		t.Errorf("placements did not survive the envelope: %+v", fake.lastPlacements)
	}
}

func TestDispatchRoomEvents(t *testing.T) {
	hub, fake := newTestHub(t)
	ctx := context.Background()

	hub.dispatch(ctx, "s1", envelope(t, EventRoomCreate, RoomCreate{UserID: "u1", Username: "Alice"}))
	hub.dispatch(ctx, "s2", envelope(t, EventRoomJoin, RoomJoin{UserID: "u2", Username: "Bob", RoomCode: "ABC234"}))
	hub.dispatch(ctx, "s1", envelope(t, EventQueueLeave, nil))

	want := []string{"CreateRoom", "JoinRoom", "LeaveQueue"}
	if len(fake.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", fake.calls, want)
	}
	for i := range want {
		if fake.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", fake.calls, want)
		}
	}
	if fake.lastRoomCode != "ABC234" {
		t.Errorf("room code = %q, want ABC234", fake.lastRoomCode)
	}
}

// drainEmit pops one queued outbound payload and decodes its envelope.
func drainEmit(t *testing.T, hub *Hub) (string, Envelope) {
	t.Helper()
	select {
	case msg := <-hub.emit:
		var env Envelope
		if err := json.Unmarshal(msg.payload, &env); err != nil {
			t.Fatalf("failed to decode outbound envelope: %v", err)
		}
		return msg.sessionID, env
	default:
		t.Fatal("no outbound message queued")
		return "", Envelope{}
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	hub, fake := newTestHub(t)

	hub.dispatch(context.Background(), "s1", Envelope{Event: "warp-drive"})

	if len(fake.calls) != 0 {
		t.Fatalf("unknown event reached the service: %v", fake.calls)
	}

	sessionID, env := drainEmit(t, hub)
	if sessionID != "s1" || env.Event != "error" {
		t.Fatalf("got %s event for %s, want error for s1", env.Event, sessionID)
	}
}

func TestDispatchServiceError(t *testing.T) {
	hub, fake := newTestHub(t)
	fake.err = service.ErrMatchNotFound

	hub.dispatch(context.Background(), "s1", envelope(t, EventShotFire, ShotFire{
		MatchID: "m1", UserID: "u1", TargetID: "u2", Coord: "B7",
	}))

	_, env := drainEmit(t, hub)
	if env.Event != "error" {
		t.Fatalf("event = %q, want error", env.Event)
	}

	var payload service.ErrorEvent
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode error payload: %v", err)
	}
	if payload.Code != "MATCH_NOT_FOUND" {
		t.Errorf("error code = %q, want MATCH_NOT_FOUND", payload.Code)
	}
}

func TestEmitWrapsEnvelope(t *testing.T) {
	hub, _ := newTestHub(t)

	hub.Emit("s9", service.QueueWaiting{QueueSize: 3})

	sessionID, env := drainEmit(t, hub)
	if sessionID != "s9" {
		t.Fatalf("session = %q, want s9", sessionID)
	}
	if env.Event != "queue-waiting" {
		t.Fatalf("event = %q, want queue-waiting", env.Event)
	}

	var payload service.QueueWaiting
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.QueueSize != 3 {
		t.Errorf("queue size = %d, want 3", payload.QueueSize)
	}
}
