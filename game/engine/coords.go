package engine

import (
	"fmt"
	"regexp"
	"strconv"
)

// Coord is the textual grid coordinate: a column letter followed by a
// 1-based row number, e.g. "C11".
type Coord string

var coordPattern = regexp.MustCompile(`^([A-Za-z])([0-9]{1,2})$`)

// ParseCoord converts a coordinate like "C11" to zero-based (x, y).
// Column letters map to x by alphabet position (A=0); rows are 1-based
// in text and converted to zero-based y. Bounds checking against a board
// is the caller's concern.
func ParseCoord(c Coord) (x, y int, err error) {
	m := coordPattern.FindStringSubmatch(string(c))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, c)
	}

	col := m[1][0]
	if col >= 'a' {
		col -= 'a' - 'A'
	}
	x = int(col - 'A')

	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, c)
	}
	y = row - 1

	return x, y, nil
}

// FormatCoord is the inverse of ParseCoord for valid zero-based (x, y).
func FormatCoord(x, y int) Coord {
	return Coord(fmt.Sprintf("%c%d", 'A'+byte(x), y+1))
}
