package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/armadagame/armada/game/fleet"
)

// Match is the authoritative server-side model of one game: the two-seat
// roster, turn order, lifecycle phase, boards, and the gunner instances
// for scripted seats. All mutating methods serialize on an internal
// mutex, so events targeting the same match never interleave; distinct
// matches share no mutable state.
type Match struct {
	mu sync.Mutex

	id        string
	boardSize int
	players   []*Player
	turn      int
	phase     Phase
	winnerID  string
	gunners   map[string]*Gunner
	rng       *rand.Rand

	roomCode string
	private  bool
}

// NewMatch creates an empty match in the waiting phase. A nil rng gets
// a time-seeded source; tests inject a fixed seed.
func NewMatch(id string, boardSize int, rng *rand.Rand) *Match {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Match{
		id:        id,
		boardSize: boardSize,
		phase:     PhaseWaiting,
		gunners:   make(map[string]*Gunner),
		rng:       rng,
	}
}

// ID returns the match id.
func (m *Match) ID() string { return m.id }

// BoardSize returns the board size shared by both players.
func (m *Match) BoardSize() int { return m.boardSize }

// SetRoomCode marks the match as a private room awaiting its second player.
func (m *Match) SetRoomCode(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roomCode = code
	m.private = true
}

// RoomCode returns the private room code, if any.
func (m *Match) RoomCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roomCode
}

// Phase returns the current lifecycle phase.
func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// TurnIndex returns the current turn index into the roster.
func (m *Match) TurnIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.turn
}

// WinnerID returns the winner's player id once the match is finished.
func (m *Match) WinnerID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winnerID
}

// AddPlayer appends a player to the roster. The first registered player
// shoots first. Fails once two seats are taken or after the match has
// left the waiting phase.
func (m *Match) AddPlayer(p *Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseWaiting {
		return ErrMatchNotActive
	}
	if len(m.players) >= 2 {
		return ErrRosterFull
	}
	m.players = append(m.players, p)
	if p.Scripted {
		m.gunners[p.ID] = NewGunner(m.boardSize, m.rng)
	}
	return nil
}

// Players returns a copy of the roster slice.
func (m *Match) Players() []*Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Player, len(m.players))
	copy(out, m.players)
	return out
}

// PlayerByID returns the roster member with the given id, or nil.
func (m *Match) PlayerByID(id string) *Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerByIDLocked(id)
}

// CurrentPlayer returns the player whose turn it is, or nil before the
// roster is complete.
func (m *Match) CurrentPlayer() *Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.turn >= len(m.players) {
		return nil
	}
	return m.players[m.turn]
}

// Full reports whether both seats are taken.
func (m *Match) Full() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.players) >= 2
}

// SubmitPlacement validates and stores a player's fleet layout and sets
// the ready flag. A board is set exactly once; re-submission or
// submission outside the waiting phase fails with ErrInvalidPlacement.
// Scripted roster members still lacking boards are auto-placed. When
// every player is ready the match transitions to active; the returned
// bool reports that transition.
func (m *Match) SubmitPlacement(playerID string, placements []Placement) (started bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	player := m.playerByIDLocked(playerID)
	if player == nil {
		return false, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if m.phase != PhaseWaiting || player.Board != nil {
		return false, ErrInvalidPlacement
	}
	if !ValidatePlacement(m.boardSize, placements) {
		return false, ErrInvalidPlacement
	}

	board := NewBoard(m.boardSize)
	board.Ships = placements
	player.Board = board
	player.Ready = true

	for _, p := range m.players {
		if !p.Scripted || p.Board != nil {
			continue
		}
		auto, err := RandomPlacement(m.rng, m.boardSize, fleet.ForNation(p.Nation))
		if err != nil {
			return false, err
		}
		b := NewBoard(m.boardSize)
		b.Ships = auto
		p.Board = b
		p.Ready = true
	}

	if len(m.players) == 2 {
		allReady := true
		for _, p := range m.players {
			if !p.Ready {
				allReady = false
				break
			}
		}
		if allReady {
			m.phase = PhaseActive
			started = true
		}
	}

	return started, nil
}

// Fire resolves a shot from shooter at target's board. The shooter must
// be the player at the current turn index and the target a roster
// member with a placed board. A destroyed fleet finishes the match with
// no further turn advancement; otherwise the turn advances modulo the
// roster size.
func (m *Match) Fire(shooterID, targetID string, coord Coord) (*FireOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fireLocked(shooterID, targetID, coord)
}

// ScriptedTurn runs one full automated turn for the scripted player:
// select a shot, fire it at the opponent, and feed the result back to
// the gunner. The whole turn executes atomically with respect to other
// events on the match.
func (m *Match) ScriptedTurn(playerID string) (*FireOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseActive {
		return nil, ErrMatchNotActive
	}
	shooter := m.playerByIDLocked(playerID)
	if shooter == nil || !shooter.Scripted {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if m.players[m.turn].ID != playerID {
		return nil, ErrNotYourTurn
	}
	gunner := m.gunners[playerID]
	if gunner == nil {
		return nil, fmt.Errorf("%w: no gunner for %s", ErrPlayerNotFound, playerID)
	}

	var opponent *Player
	for _, p := range m.players {
		if p.ID != playerID {
			opponent = p
			break
		}
	}
	if opponent == nil || opponent.Board == nil {
		return nil, ErrInvalidTarget
	}

	coord, err := gunner.SelectShot()
	if err != nil {
		return nil, err
	}

	outcome, err := m.fireLocked(playerID, opponent.ID, coord)
	if err != nil {
		return nil, err
	}
	gunner.RecordShot(coord, outcome.Result.Hit, outcome.Result.Sunk)
	return outcome, nil
}

// StateFor shapes a full match snapshot for the given viewer, with
// every other player's ship layout withheld.
func (m *Match) StateFor(viewerID string) MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := MatchState{
		ID:        m.id,
		Phase:     m.phase,
		BoardSize: m.boardSize,
		WinnerID:  m.winnerID,
		Players:   make([]PlayerState, 0, len(m.players)),
	}
	if m.turn < len(m.players) {
		state.CurrentTurn = m.players[m.turn].ID
	}
	for _, p := range m.players {
		ps := PlayerState{
			ID:       p.ID,
			Username: p.Username,
			Nation:   p.Nation,
			Ready:    p.Ready,
			Scripted: p.Scripted,
		}
		if p.Board != nil {
			view := p.Board.View(p.ID == viewerID)
			ps.Board = &view
		}
		state.Players = append(state.Players, ps)
	}
	return state
}

// Summary returns a listing entry for the match.
func (m *Match) Summary() MatchSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MatchSummary{
		ID:       m.id,
		Phase:    m.phase,
		Players:  len(m.players),
		Private:  m.private,
		WinnerID: m.winnerID,
	}
}

func (m *Match) fireLocked(shooterID, targetID string, coord Coord) (*FireOutcome, error) {
	if m.phase != PhaseActive {
		return nil, ErrMatchNotActive
	}

	shooter := m.players[m.turn]
	if shooter.ID != shooterID {
		return nil, ErrNotYourTurn
	}

	target := m.playerByIDLocked(targetID)
	if targetID == shooterID || target == nil || target.Board == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTarget, targetID)
	}

	x, y, err := ParseCoord(coord)
	if err != nil {
		return nil, err
	}
	if x >= m.boardSize || y >= m.boardSize {
		return nil, fmt.Errorf("%w: %s out of bounds", ErrInvalidCoordinate, coord)
	}

	result, err := target.Board.ResolveShot(coord)
	if err != nil {
		return nil, err
	}

	outcome := &FireOutcome{
		ShooterID: shooterID,
		TargetID:  targetID,
		Result:    result,
	}

	if target.Board.FleetDestroyed() {
		m.phase = PhaseFinished
		m.winnerID = shooterID
		outcome.Finished = true
		outcome.WinnerID = shooterID
		outcome.WinnerName = shooter.Username
		return outcome, nil
	}

	m.turn = (m.turn + 1) % len(m.players)
	next := m.players[m.turn]
	outcome.NextTurnID = next.ID
	outcome.NextScripted = next.Scripted
	return outcome, nil
}

func (m *Match) playerByIDLocked(id string) *Player {
	for _, p := range m.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
