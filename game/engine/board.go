package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/armadagame/armada/game/fleet"
)

// CellState is the recorded outcome at a fired coordinate. A coordinate
// absent from the outcome map has not been fired upon.
type CellState string

const (
	CellMiss CellState = "miss"
	CellHit  CellState = "hit"
	CellSunk CellState = "sunk"
)

// Maximum random origin/orientation draws per ship before giving up.
const placementAttempts = 1000

// Placement is one ship's occupied cells plus its catalog metadata.
type Placement struct {
	Kind   fleet.Kind   `json:"kind"`
	Cells  []Coord      `json:"cells"`
	Vessel fleet.Vessel `json:"vessel"`
}

// Board is one player's grid: the outcome map for fired cells and the
// ship layout, known only to the owner and the engine.
type Board struct {
	Size  int                 `json:"size"`
	Cells map[Coord]CellState `json:"cells"`
	Ships []Placement         `json:"ships"`
}

// BoardView is a board snapshot shaped for a particular viewer. For
// non-owners the ship layout is withheld.
type BoardView struct {
	Size  int                 `json:"size"`
	Cells map[Coord]CellState `json:"cells"`
	Ships []Placement         `json:"ships"`
}

// ShotResult describes the outcome of a resolved shot.
type ShotResult struct {
	Coord Coord      `json:"coord"`
	Hit   bool       `json:"hit"`
	Sunk  bool       `json:"sunk"`
	Kind  fleet.Kind `json:"kind,omitempty"`
}

// NewBoard creates an empty board of the given size.
func NewBoard(size int) *Board {
	return &Board{
		Size:  size,
		Cells: make(map[Coord]CellState),
		Ships: []Placement{},
	}
}

// ValidatePlacement reports whether a fleet layout is legal: every
// placement has exactly its kind's hull length, all cells are in bounds
// and distinct across the whole fleet, and each ship forms a single
// unbroken horizontal or vertical run. It returns false rather than an
// error; the caller decides how to report the violation.
func ValidatePlacement(boardSize int, placements []Placement) bool {
	seen := make(map[[2]int]bool)

	for _, p := range placements {
		if len(p.Cells) != p.Kind.Length() {
			return false
		}

		xs := make([]int, 0, len(p.Cells))
		ys := make([]int, 0, len(p.Cells))
		for _, cell := range p.Cells {
			x, y, err := ParseCoord(cell)
			if err != nil {
				return false
			}
			if x < 0 || y < 0 || x >= boardSize || y >= boardSize {
				return false
			}
			key := [2]int{x, y}
			if seen[key] {
				return false
			}
			seen[key] = true
			xs = append(xs, x)
			ys = append(ys, y)
		}

		if !isContiguousRun(xs, ys) && !isContiguousRun(ys, xs) {
			return false
		}
	}

	return true
}

// isContiguousRun reports whether the run values form an unbroken
// ascending sequence while every fixed value is identical. Cells with a
// gap are rejected even when collinear.
func isContiguousRun(run, fixed []int) bool {
	for _, v := range fixed {
		if v != fixed[0] {
			return false
		}
	}
	sorted := append([]int(nil), run...)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

// ResolveShot records the outcome of a shot at coord and returns it.
// This is the sole mutator of the outcome map: exactly one new entry is
// added, plus the hit→sunk upgrade of a ship's cells when its last
// unhit segment is struck. Firing at a resolved cell fails with
// ErrAlreadyFired and leaves the board unchanged.
func (b *Board) ResolveShot(coord Coord) (ShotResult, error) {
	if _, fired := b.Cells[coord]; fired {
		return ShotResult{}, fmt.Errorf("%w: %s", ErrAlreadyFired, coord)
	}

	for i := range b.Ships {
		ship := &b.Ships[i]
		if !containsCoord(ship.Cells, coord) {
			continue
		}

		b.Cells[coord] = CellHit

		allHit := true
		for _, c := range ship.Cells {
			if b.Cells[c] != CellHit {
				allHit = false
				break
			}
		}
		if allHit {
			for _, c := range ship.Cells {
				b.Cells[c] = CellSunk
			}
			return ShotResult{Coord: coord, Hit: true, Sunk: true, Kind: ship.Kind}, nil
		}
		return ShotResult{Coord: coord, Hit: true, Sunk: false, Kind: ship.Kind}, nil
	}

	b.Cells[coord] = CellMiss
	return ShotResult{Coord: coord, Hit: false, Sunk: false}, nil
}

// FleetDestroyed reports whether every cell of every ship is sunk.
func (b *Board) FleetDestroyed() bool {
	if len(b.Ships) == 0 {
		return false
	}
	for _, ship := range b.Ships {
		for _, c := range ship.Cells {
			if b.Cells[c] != CellSunk {
				return false
			}
		}
	}
	return true
}

// View shapes the board for a viewer. The owner sees everything;
// everyone else sees outcomes only, with the ship layout withheld. This
// is the sole mechanism preventing leakage of unseen ship positions.
func (b *Board) View(owner bool) BoardView {
	view := BoardView{
		Size:  b.Size,
		Cells: make(map[Coord]CellState, len(b.Cells)),
		Ships: []Placement{},
	}
	for c, s := range b.Cells {
		view.Cells[c] = s
	}
	if owner {
		view.Ships = append(view.Ships, b.Ships...)
	}
	return view
}

// RandomPlacement places each vessel in catalog order at a uniformly
// drawn origin and orientation, retrying until the run is disjoint from
// all previously placed cells. The result always passes
// ValidatePlacement. Fails with ErrPlacementExhausted if any ship cannot
// be placed within the attempt budget.
func RandomPlacement(rng *rand.Rand, boardSize int, vessels []fleet.Vessel) ([]Placement, error) {
	placements := make([]Placement, 0, len(vessels))
	occupied := make(map[[2]int]bool)

	for _, v := range vessels {
		length := v.Kind.Length()
		if length > boardSize {
			return nil, fmt.Errorf("%w: %s", ErrPlacementExhausted, v.Kind)
		}
		placed := false

		for attempt := 0; attempt < placementAttempts && !placed; attempt++ {
			horizontal := rng.Intn(2) == 0

			var x, y int
			if horizontal {
				x = rng.Intn(boardSize - length + 1)
				y = rng.Intn(boardSize)
			} else {
				x = rng.Intn(boardSize)
				y = rng.Intn(boardSize - length + 1)
			}

			cells := make([]Coord, 0, length)
			free := true
			for i := 0; i < length; i++ {
				cx, cy := x, y
				if horizontal {
					cx += i
				} else {
					cy += i
				}
				if occupied[[2]int{cx, cy}] {
					free = false
					break
				}
				cells = append(cells, FormatCoord(cx, cy))
			}
			if !free {
				continue
			}

			for _, c := range cells {
				cx, cy, _ := ParseCoord(c)
				occupied[[2]int{cx, cy}] = true
			}
			placements = append(placements, Placement{Kind: v.Kind, Cells: cells, Vessel: v})
			placed = true
		}

		if !placed {
			return nil, fmt.Errorf("%w: %s", ErrPlacementExhausted, v.Kind)
		}
	}

	return placements, nil
}

func containsCoord(cells []Coord, c Coord) bool {
	for _, cell := range cells {
		if cell == c {
			return true
		}
	}
	return false
}
