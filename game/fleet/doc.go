// Package fleet provides the static vessel catalog for the Armada game.
//
// The catalog binds each vessel kind to a fixed hull length shared by all
// matches, and supplies per-nation fleets of named vessels. Every fleet
// contains exactly one vessel of each kind, so every player fields the
// same five hull lengths regardless of nation.
//
// Usage:
//
//	vessels := fleet.ForNation("UK")
//	for _, v := range vessels {
//		fmt.Println(v.Name, v.Kind, v.Kind.Length())
//	}
//
// The catalog is read-only; callers receive copies and cannot mutate it.
package fleet
