package engine

import (
	"math/rand"
	"time"
)

// Hunt-mode random draws before falling back to a full-board scan.
const huntBudget = 5000

// Gunner is the scripted opponent's shot selector. It operates only on
// its own public shot history: a fired set, a queue of follow-up
// candidates around confirmed hits, and the most recent hit.
//
// In hunt mode it probes random cells constrained to checkerboard
// parity (x+y even): every ship of length >= 2 occupies at least one
// even-parity cell, so parity halves the expected probes to find the
// smallest ship. After a non-sunk hit it switches to target mode,
// working through orthogonal neighbors until the ship sinks, then
// returns to hunting.
type Gunner struct {
	boardSize int
	rng       *rand.Rand
	fired     map[Coord]bool
	queue     []Coord
	lastHit   Coord
}

// NewGunner creates a gunner for the given board size. A nil rng gets a
// time-seeded source; tests inject a fixed seed for reproducibility.
func NewGunner(boardSize int, rng *rand.Rand) *Gunner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Gunner{
		boardSize: boardSize,
		rng:       rng,
		fired:     make(map[Coord]bool),
	}
}

// SelectShot picks the next coordinate to fire at and marks it fired.
// Queued follow-ups are popped first, skipping any that went stale
// (fired through another path since being queued). With an empty queue
// it hunts by parity-constrained random draws, then falls back to a
// deterministic column-major scan for the first unfired cell. Fails
// with ErrNoShotsRemaining only when the whole board is exhausted.
func (g *Gunner) SelectShot() (Coord, error) {
	// Target mode: pop-and-check rather than recursing on stale entries.
	for len(g.queue) > 0 {
		target := g.queue[0]
		g.queue = g.queue[1:]
		if g.fired[target] {
			continue
		}
		g.fired[target] = true
		return target, nil
	}

	for tries := 0; tries < huntBudget; tries++ {
		x := g.rng.Intn(g.boardSize)
		y := g.rng.Intn(g.boardSize)
		if (x+y)%2 != 0 {
			continue
		}
		coord := FormatCoord(x, y)
		if !g.fired[coord] {
			g.fired[coord] = true
			return coord, nil
		}
	}

	for x := 0; x < g.boardSize; x++ {
		for y := 0; y < g.boardSize; y++ {
			coord := FormatCoord(x, y)
			if !g.fired[coord] {
				g.fired[coord] = true
				return coord, nil
			}
		}
	}

	return "", ErrNoShotsRemaining
}

// RecordShot feeds a shot's outcome back into the gunner. A non-sunk
// hit enqueues the in-bounds, unfired, not-yet-queued orthogonal
// neighbors in the fixed order right, left, down, up. A sinking hit
// abandons all partial leads and returns to pure hunt mode.
func (g *Gunner) RecordShot(coord Coord, hit, sunk bool) {
	g.fired[coord] = true

	if !hit {
		return
	}

	if sunk {
		g.queue = nil
		g.lastHit = ""
		return
	}

	g.lastHit = coord
	g.enqueueNeighbors(coord)
}

// Reset clears all state for reuse in a fresh match.
func (g *Gunner) Reset() {
	g.fired = make(map[Coord]bool)
	g.queue = nil
	g.lastHit = ""
}

func (g *Gunner) enqueueNeighbors(coord Coord) {
	x, y, err := ParseCoord(coord)
	if err != nil {
		return
	}

	neighbors := [][2]int{
		{x + 1, y},
		{x - 1, y},
		{x, y + 1},
		{x, y - 1},
	}

	for _, n := range neighbors {
		nx, ny := n[0], n[1]
		if nx < 0 || ny < 0 || nx >= g.boardSize || ny >= g.boardSize {
			continue
		}
		c := FormatCoord(nx, ny)
		if g.fired[c] || containsCoord(g.queue, c) {
			continue
		}
		g.queue = append(g.queue, c)
	}
}
