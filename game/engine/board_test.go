package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/armadagame/armada/game/fleet"
)

func ship(kind fleet.Kind, cells ...Coord) Placement {
	return Placement{Kind: kind, Cells: cells}
}

func validFleet() []Placement {
	return []Placement{
		ship(fleet.Carrier, "A1", "A2", "A3", "A4", "A5"),
		ship(fleet.Battleship, "C1", "D1", "E1", "F1"),
		ship(fleet.Cruiser, "H3", "H4", "H5"),
		ship(fleet.Submarine, "B8", "C8", "D8"),
		ship(fleet.Destroyer, "J9", "J10"),
	}
}

func TestValidatePlacement(t *testing.T) {
	tests := []struct {
		name       string
		placements []Placement
		want       bool
	}{
		{
			name:       "valid fleet",
			placements: validFleet(),
			want:       true,
		},
		{
			name: "wrong hull length",
			placements: []Placement{
				ship(fleet.Carrier, "A1", "A2", "A3", "A4"),
			},
			want: false,
		},
		{
			name: "out of bounds",
			placements: []Placement{
				ship(fleet.Destroyer, "K1", "K2"),
			},
			want: false,
		},
		{
			name: "row out of bounds",
			placements: []Placement{
				ship(fleet.Destroyer, "A10", "A11"),
			},
			want: false,
		},
		{
			name: "overlapping ships",
			placements: []Placement{
				ship(fleet.Cruiser, "A1", "A2", "A3"),
				ship(fleet.Destroyer, "A3", "A4"),
			},
			want: false,
		},
		{
			name: "gap in run",
			placements: []Placement{
				ship(fleet.Cruiser, "A1", "A2", "A4"),
			},
			want: false,
		},
		{
			name: "bent ship",
			placements: []Placement{
				ship(fleet.Cruiser, "A1", "A2", "B2"),
			},
			want: false,
		},
		{
			name: "diagonal ship",
			placements: []Placement{
				ship(fleet.Destroyer, "A1", "B2"),
			},
			want: false,
		},
		{
			name: "malformed coordinate",
			placements: []Placement{
				ship(fleet.Destroyer, "A1", "xx"),
			},
			want: false,
		},
		{
			name: "unordered cells still contiguous",
			placements: []Placement{
				ship(fleet.Cruiser, "D5", "B5", "C5"),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePlacement(10, tt.placements); got != tt.want {
				t.Errorf("ValidatePlacement = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestResolveShot(t *testing.T) {
	board := NewBoard(10)
	board.Ships = []Placement{ship(fleet.Destroyer, "A1", "A2")}

	result, err := board.ResolveShot("B5")
	if err != nil {
		t.Fatalf("ResolveShot(B5) returned error: %v", err)
	}
	if result.Hit || result.Sunk {
		t.Errorf("shot at open water reported hit=%t sunk=%t", result.Hit, result.Sunk)
	}
	if board.Cells["B5"] != CellMiss {
		t.Errorf("cell B5 = %q, want miss", board.Cells["B5"])
	}

	result, err = board.ResolveShot("A1")
	if err != nil {
		t.Fatalf("ResolveShot(A1) returned error: %v", err)
	}
	if !result.Hit || result.Sunk {
		t.Errorf("first hull hit reported hit=%t sunk=%t", result.Hit, result.Sunk)
	}
	if result.Kind != fleet.Destroyer {
		t.Errorf("hit kind = %q, want destroyer", result.Kind)
	}

	result, err = board.ResolveShot("A2")
	if err != nil {
		t.Fatalf("ResolveShot(A2) returned error: %v", err)
	}
	if !result.Hit || !result.Sunk {
		t.Errorf("final hull hit reported hit=%t sunk=%t", result.Hit, result.Sunk)
	}
	// Sinking upgrades every cell of the ship.
	if board.Cells["A1"] != CellSunk || board.Cells["A2"] != CellSunk {
		t.Errorf("sunk ship cells = %q, %q, want sunk", board.Cells["A1"], board.Cells["A2"])
	}
}

func TestResolveShotAlreadyFired(t *testing.T) {
	board := NewBoard(10)
	board.Ships = []Placement{ship(fleet.Destroyer, "A1", "A2")}

	if _, err := board.ResolveShot("A1"); err != nil {
		t.Fatalf("first shot returned error: %v", err)
	}
	before := len(board.Cells)

	if _, err := board.ResolveShot("A1"); !errors.Is(err, ErrAlreadyFired) {
		t.Fatalf("repeat shot = %v, want ErrAlreadyFired", err)
	}
	if len(board.Cells) != before {
		t.Errorf("rejected shot mutated the board: %d cells, want %d", len(board.Cells), before)
	}
}

func TestFleetDestroyed(t *testing.T) {
	board := NewBoard(10)
	if board.FleetDestroyed() {
		t.Error("empty board reported fleet destroyed")
	}

	board.Ships = []Placement{
		ship(fleet.Destroyer, "A1", "A2"),
		ship(fleet.Cruiser, "C3", "C4", "C5"),
	}

	for _, c := range []Coord{"A1", "A2", "C3", "C4"} {
		if _, err := board.ResolveShot(c); err != nil {
			t.Fatalf("ResolveShot(%s) returned error: %v", c, err)
		}
	}
	if board.FleetDestroyed() {
		t.Error("fleet reported destroyed with a cruiser cell intact")
	}

	if _, err := board.ResolveShot("C5"); err != nil {
		t.Fatalf("ResolveShot(C5) returned error: %v", err)
	}
	if !board.FleetDestroyed() {
		t.Error("fleet not reported destroyed after last cell sunk")
	}
}

func TestBoardView(t *testing.T) {
	board := NewBoard(10)
	board.Ships = []Placement{ship(fleet.Destroyer, "A1", "A2")}
	if _, err := board.ResolveShot("B5"); err != nil {
		t.Fatalf("ResolveShot returned error: %v", err)
	}

	owner := board.View(true)
	if len(owner.Ships) != 1 {
		t.Errorf("owner view has %d ships, want 1", len(owner.Ships))
	}

	opponent := board.View(false)
	if len(opponent.Ships) != 0 {
		t.Errorf("opponent view has %d ships, want 0", len(opponent.Ships))
	}
	if opponent.Cells["B5"] != CellMiss {
		t.Errorf("opponent view missing shot outcome at B5")
	}
}

func TestRandomPlacement(t *testing.T) {
	vessels := fleet.ForNation(fleet.DefaultNation)

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		placements, err := RandomPlacement(rng, 10, vessels)
		if err != nil {
			t.Fatalf("seed %d: RandomPlacement returned error: %v", seed, err)
		}
		if len(placements) != len(vessels) {
			t.Fatalf("seed %d: placed %d ships, want %d", seed, len(placements), len(vessels))
		}
		if !ValidatePlacement(10, placements) {
			t.Fatalf("seed %d: random layout failed validation: %v", seed, placements)
		}
	}
}

func TestRandomPlacementTooSmall(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := RandomPlacement(rng, 4, fleet.ForNation(fleet.DefaultNation))
	if !errors.Is(err, ErrPlacementExhausted) {
		t.Fatalf("RandomPlacement on 4x4 = %v, want ErrPlacementExhausted", err)
	}
}
