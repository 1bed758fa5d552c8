// Command simulate runs solo firing drills against randomly placed
// fleets and prints quick, human-readable statistics: how many shots
// the targeting routine needs to destroy a full fleet, per nation and
// overall. Useful for eyeballing regressions in the hunt/target logic.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/armadagame/armada/game/engine"
	"github.com/armadagame/armada/game/fleet"
)

var (
	games     = flag.Int("games", 200, "number of games per nation")
	boardSize = flag.Int("board", 10, "board size")
	seed      = flag.Int64("seed", 1, "RNG seed")
	nation    = flag.String("nation", "", "single nation to drill (default: all)")
)

func main() {
	flag.Parse()

	nations := fleet.Nations()
	if *nation != "" {
		nations = []string{*nation}
	}

	rng := rand.New(rand.NewSource(*seed))

	var totalShots, totalGames int
	for _, n := range nations {
		avg, min, max, err := drill(rng, n, *games)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", n, err)
			continue
		}
		fmt.Printf("%-14s avg %.1f shots (min %d, max %d)\n", n, avg, min, max)
		totalShots += int(avg * float64(*games))
		totalGames += *games
	}

	if totalGames > 0 && len(nations) > 1 {
		fmt.Printf("\noverall: %.1f shots per game across %d games\n",
			float64(totalShots)/float64(totalGames), totalGames)
	}
}

// drill plays n solo games against the nation's fleet and reports the
// shot-count distribution.
func drill(rng *rand.Rand, nation string, n int) (avg float64, min, max int, err error) {
	vessels := fleet.ForNation(nation)
	min = -1

	var total int
	for i := 0; i < n; i++ {
		shots, err := playOne(rng, vessels)
		if err != nil {
			return 0, 0, 0, err
		}
		total += shots
		if min == -1 || shots < min {
			min = shots
		}
		if shots > max {
			max = shots
		}
	}

	return float64(total) / float64(n), min, max, nil
}

// playOne places the fleet randomly and fires until it is destroyed.
func playOne(rng *rand.Rand, vessels []fleet.Vessel) (int, error) {
	placements, err := engine.RandomPlacement(rng, *boardSize, vessels)
	if err != nil {
		return 0, err
	}

	board := engine.NewBoard(*boardSize)
	board.Ships = placements

	gunner := engine.NewGunner(*boardSize, rng)

	shots := 0
	for !board.FleetDestroyed() {
		coord, err := gunner.SelectShot()
		if err != nil {
			return 0, err
		}
		result, err := board.ResolveShot(coord)
		if err != nil {
			return 0, err
		}
		gunner.RecordShot(coord, result.Hit, result.Sunk)
		shots++
	}

	return shots, nil
}
