// Package engine provides the authoritative match model for the Armada
// grid-battle game.
//
// The engine package implements the game rules with no transport or
// presentation concerns:
//   - Coordinate codec between textual ("C11") and zero-based (x, y) form
//   - Board model: placement validation, shot resolution, fleet-destroyed
//     detection, random fleet placement, per-viewer redaction
//   - Gunner: the scripted opponent's hunt/target shot selection
//   - Match: roster, turn order, lifecycle phases, win detection
//
// Core Types:
//
// Match orchestrates one game between exactly two Players, routing
// placements and shots to each player's Board and tracking the current
// turn and phase. Gunner instances are attached per scripted seat.
//
// Usage:
//
//	m := engine.NewMatch(id, 10, nil)
//	m.AddPlayer(&engine.Player{ID: "p1", Username: "alice", Nation: "USA"})
//	m.AddPlayer(&engine.Player{ID: "p2", Username: "bob", Nation: "UK"})
//
//	started, err := m.SubmitPlacement("p1", placements)
//	...
//	outcome, err := m.Fire("p1", "p2", "C3")
//
// Concurrency:
//
// Every mutating Match method serializes on a per-match mutex, so a
// match only ever sees a strict sequence of events. Distinct matches
// are fully independent.
package engine
