package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/armadagame/armada/game/config"
	"github.com/armadagame/armada/game/engine"
)

// Restricted room-code alphabet: visually ambiguous characters (I, O,
// 0, 1) are excluded. Exactly 32 characters, so a byte modulus stays
// unbiased.
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const roomCodeLength = 6

type queueEntry struct {
	sessionID string
	userID    string
	username  string
}

// matchServiceImpl owns the process-wide registries: the matchmaking
// queue, the match map, and the room-code directory. One mutex guards
// them all; per-match state is serialized by the Match itself.
type matchServiceImpl struct {
	mu sync.Mutex

	matches   map[string]*engine.Match
	queue     []queueEntry
	roomCodes map[string]string // code -> match id
	sessions  map[string]string // user id -> session id

	cfg     *config.Settings
	emitter Emitter
	sched   Scheduler
	log     zerolog.Logger
}

// NewMatchService creates the match service with its registries empty.
func NewMatchService(cfg *config.Settings, emitter Emitter, sched Scheduler, log zerolog.Logger) MatchService {
	return &matchServiceImpl{
		matches:   make(map[string]*engine.Match),
		roomCodes: make(map[string]string),
		sessions:  make(map[string]string),
		cfg:       cfg,
		emitter:   emitter,
		sched:     sched,
		log:       log,
	}
}

// JoinQueue enters a player into matchmaking. With wantAI set, a match
// against the scripted opponent is assembled synchronously. Otherwise
// the player waits until a second queued player arrives.
func (s *matchServiceImpl) JoinQueue(ctx context.Context, sessionID, userID, username string, wantAI bool) error {
	s.mu.Lock()
	s.sessions[userID] = sessionID
	s.mu.Unlock()

	if wantAI {
		m, err := s.newScriptedMatch(userID, username)
		if err != nil {
			return err
		}
		players := m.Players()
		s.emitter.Emit(sessionID, MatchFound{
			MatchID:  m.ID(),
			Opponent: OpponentSummary{Username: players[1].Username, Nation: players[1].Nation},
			Seat:     "P1",
		})
		s.log.Info().Str("match", m.ID()).Str("user", userID).Msg("created scripted match")
		return nil
	}

	s.mu.Lock()
	s.queue = append(s.queue, queueEntry{sessionID: sessionID, userID: userID, username: username})
	if len(s.queue) < 2 {
		size := len(s.queue)
		s.mu.Unlock()
		s.emitter.Emit(sessionID, QueueWaiting{QueueSize: size})
		return nil
	}
	p1, p2 := s.queue[0], s.queue[1]
	s.queue = s.queue[2:]
	s.mu.Unlock()

	m := engine.NewMatch(uuid.NewString(), s.cfg.BoardSize, nil)
	if err := m.AddPlayer(&engine.Player{ID: p1.userID, Username: p1.username, Nation: "USA"}); err != nil {
		return err
	}
	if err := m.AddPlayer(&engine.Player{ID: p2.userID, Username: p2.username, Nation: "UK"}); err != nil {
		return err
	}

	s.mu.Lock()
	s.matches[m.ID()] = m
	s.mu.Unlock()

	s.emitter.Emit(p1.sessionID, MatchFound{
		MatchID:  m.ID(),
		Opponent: OpponentSummary{Username: p2.username, Nation: "UK"},
		Seat:     "P1",
	})
	s.emitter.Emit(p2.sessionID, MatchFound{
		MatchID:  m.ID(),
		Opponent: OpponentSummary{Username: p1.username, Nation: "USA"},
		Seat:     "P2",
	})
	s.log.Info().Str("match", m.ID()).Str("p1", p1.userID).Str("p2", p2.userID).Msg("paired queued players")
	return nil
}

// LeaveQueue removes the session's pending queue entry, if any.
func (s *matchServiceImpl) LeaveQueue(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFromQueueLocked(sessionID)
	return nil
}

// CreateRoom creates a private match awaiting its second player and
// returns its code to the creator.
func (s *matchServiceImpl) CreateRoom(ctx context.Context, sessionID, userID, username string) error {
	m := engine.NewMatch(uuid.NewString(), s.cfg.BoardSize, nil)
	if err := m.AddPlayer(&engine.Player{ID: userID, Username: username, Nation: "USA"}); err != nil {
		return err
	}

	s.mu.Lock()
	code := s.uniqueRoomCodeLocked()
	m.SetRoomCode(code)
	s.matches[m.ID()] = m
	s.roomCodes[code] = m.ID()
	s.sessions[userID] = sessionID
	s.mu.Unlock()

	s.emitter.Emit(sessionID, RoomCreated{MatchID: m.ID(), RoomCode: code})
	s.log.Info().Str("match", m.ID()).Str("code", code).Msg("created private room")
	return nil
}

// JoinRoom attaches a second player to a pending private match by code.
// Once both seats are taken the code reports the room as started.
func (s *matchServiceImpl) JoinRoom(ctx context.Context, sessionID, userID, username, roomCode string) error {
	code := strings.ToUpper(roomCode)

	s.mu.Lock()
	matchID, ok := s.roomCodes[code]
	var m *engine.Match
	if ok {
		m = s.matches[matchID]
	}
	s.mu.Unlock()

	if !ok || m == nil {
		return ErrRoomNotFound
	}
	if m.Full() || m.Phase() != engine.PhaseWaiting {
		return ErrRoomStarted
	}

	// Losing the race for the last seat is the one case left for full.
	if err := m.AddPlayer(&engine.Player{ID: userID, Username: username, Nation: "UK"}); err != nil {
		return ErrRoomFull
	}

	s.mu.Lock()
	s.sessions[userID] = sessionID
	s.mu.Unlock()

	players := m.Players()
	for i, p := range players {
		other := players[(i+1)%len(players)]
		if sess := s.sessionFor(p.ID); sess != "" {
			s.emitter.Emit(sess, MatchFound{
				MatchID:  m.ID(),
				RoomCode: code,
				Opponent: OpponentSummary{Username: other.Username, Nation: other.Nation},
				Seat:     fmt.Sprintf("P%d", i+1),
			})
		}
	}
	s.log.Info().Str("match", m.ID()).Str("code", code).Str("user", userID).Msg("joined private room")
	return nil
}

// Disconnect cleans up the transport session: any pending queue entry
// and the user/session bindings. Mid-match disconnects are left alone.
func (s *matchServiceImpl) Disconnect(ctx context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFromQueueLocked(sessionID)
	for user, sess := range s.sessions {
		if sess == sessionID {
			delete(s.sessions, user)
		}
	}
}

// SubmitPlacement stores a player's fleet layout. When both players are
// ready the match goes active and, if the opening turn belongs to the
// scripted opponent, its shot is scheduled after the presentation delay.
func (s *matchServiceImpl) SubmitPlacement(ctx context.Context, matchID, userID string, placements []engine.Placement) error {
	m, err := s.match(matchID)
	if err != nil {
		return err
	}

	started, err := m.SubmitPlacement(userID, placements)
	if err != nil {
		return err
	}

	if started {
		s.emitToHumans(m, MatchStarted{MatchID: m.ID()})
		s.emitStates(m)
		s.log.Info().Str("match", m.ID()).Msg("match started")

		if current := m.CurrentPlayer(); current != nil && current.Scripted {
			s.scheduleScriptedTurn(m.ID(), current.ID)
		}
		return nil
	}

	s.emitStates(m)
	return nil
}

// FireShot resolves one shot from a human player and advances the
// match, triggering the scripted opponent's reply when the turn passes
// to it.
func (s *matchServiceImpl) FireShot(ctx context.Context, matchID, userID, targetID string, coord engine.Coord) error {
	m, err := s.match(matchID)
	if err != nil {
		return err
	}

	outcome, err := m.Fire(userID, targetID, coord)
	if err != nil {
		return err
	}

	s.broadcastOutcome(m, outcome)
	return nil
}

// CreateScriptedMatch assembles a match against the scripted opponent
// without a transport session; used by the REST and MCP surfaces.
func (s *matchServiceImpl) CreateScriptedMatch(ctx context.Context, userID, username, nation string) (engine.MatchState, error) {
	m, err := s.newScriptedMatch(userID, username)
	if err != nil {
		return engine.MatchState{}, err
	}
	_ = nation // human nation is fixed for now; scripted nation comes from settings
	return m.StateFor(userID), nil
}

// MatchState returns the snapshot of a match redacted for the viewer.
func (s *matchServiceImpl) MatchState(ctx context.Context, matchID, viewerID string) (engine.MatchState, error) {
	m, err := s.match(matchID)
	if err != nil {
		return engine.MatchState{}, err
	}
	return m.StateFor(viewerID), nil
}

// ListMatches returns a summary of every registered match.
func (s *matchServiceImpl) ListMatches(ctx context.Context) []engine.MatchSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]engine.MatchSummary, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m.Summary())
	}
	return out
}

// newScriptedMatch builds and registers a human-vs-scripted match.
func (s *matchServiceImpl) newScriptedMatch(userID, username string) (*engine.Match, error) {
	m := engine.NewMatch(uuid.NewString(), s.cfg.BoardSize, nil)
	if err := m.AddPlayer(&engine.Player{ID: userID, Username: username, Nation: "USA"}); err != nil {
		return nil, err
	}
	ai := &engine.Player{
		ID:       "ai_" + uuid.NewString()[:8],
		Username: "AI Commander",
		Nation:   s.cfg.ScriptedNation,
		Scripted: true,
	}
	if err := m.AddPlayer(ai); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.matches[m.ID()] = m
	s.mu.Unlock()
	return m, nil
}

// scheduleScriptedTurn defers the scripted opponent's shot. A finished
// match produces no further turns structurally, so no cancellation is
// needed.
func (s *matchServiceImpl) scheduleScriptedTurn(matchID, playerID string) {
	s.sched.After(s.cfg.ScriptedDelay, func() {
		s.runScriptedTurn(matchID, playerID)
	})
}

func (s *matchServiceImpl) runScriptedTurn(matchID, playerID string) {
	m, err := s.match(matchID)
	if err != nil {
		return
	}

	outcome, err := m.ScriptedTurn(playerID)
	if err != nil {
		// The match finished or the turn moved on before the timer fired.
		s.log.Warn().Err(err).Str("match", matchID).Msg("scripted turn skipped")
		return
	}

	s.broadcastOutcome(m, outcome)
}

// broadcastOutcome pushes a shot result, the follow-up snapshots, and
// the finish notice (if any) to every human seat, then chains the next
// scripted turn.
func (s *matchServiceImpl) broadcastOutcome(m *engine.Match, outcome *engine.FireOutcome) {
	s.emitToHumans(m, ShotResultEvent{
		ShooterID: outcome.ShooterID,
		TargetID:  outcome.TargetID,
		Coord:     outcome.Result.Coord,
		Result:    outcome.Result,
	})

	if outcome.Finished {
		s.emitToHumans(m, MatchFinished{WinnerID: outcome.WinnerID, WinnerName: outcome.WinnerName})
		s.log.Info().Str("match", m.ID()).Str("winner", outcome.WinnerID).Msg("match finished")
		return
	}

	s.emitStates(m)

	if outcome.NextScripted {
		s.scheduleScriptedTurn(m.ID(), outcome.NextTurnID)
	}
}

// emitStates sends each human player a snapshot redacted for them.
func (s *matchServiceImpl) emitStates(m *engine.Match) {
	for _, p := range m.Players() {
		if p.Scripted {
			continue
		}
		if sess := s.sessionFor(p.ID); sess != "" {
			s.emitter.Emit(sess, MatchStateUpdate{State: m.StateFor(p.ID)})
		}
	}
}

// emitToHumans sends the same event to every human seat of the match.
func (s *matchServiceImpl) emitToHumans(m *engine.Match, ev Event) {
	for _, p := range m.Players() {
		if p.Scripted {
			continue
		}
		if sess := s.sessionFor(p.ID); sess != "" {
			s.emitter.Emit(sess, ev)
		}
	}
}

func (s *matchServiceImpl) match(id string) (*engine.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return m, nil
}

func (s *matchServiceImpl) sessionFor(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

func (s *matchServiceImpl) removeFromQueueLocked(sessionID string) {
	for i, entry := range s.queue {
		if entry.sessionID == sessionID {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// uniqueRoomCodeLocked draws codes until one is unused. Collisions are
// vanishingly rare at 32^6 codes but cheap to rule out.
func (s *matchServiceImpl) uniqueRoomCodeLocked() string {
	for {
		code := generateRoomCode()
		if _, taken := s.roomCodes[code]; !taken {
			return code
		}
	}
}

// generateRoomCode produces a 6-character token from the restricted
// alphabet using crypto-grade randomness.
func generateRoomCode() string {
	buf := make([]byte, roomCodeLength)
	rand.Read(buf)
	code := make([]byte, roomCodeLength)
	for i, b := range buf {
		code[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(code)
}
