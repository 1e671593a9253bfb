// Package lines evaluates a 3x3 grid for three-in-a-row. The same routine
// scores a single Nested-Grid sub-board (cell contents) and the meta-board
// (the nine sub-board outcomes).
package lines

const (
	// Undecided means at least one entry is still empty and no line is complete.
	Undecided = 0
	// Draw means every entry is decided and no line is complete.
	Draw = -1
)

// Triples lists the eight winning lines: two diagonals, three rows and
// three columns, in that order.
var Triples = [8][3]int{
	{0, 4, 8},
	{2, 4, 6},
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
}

// Evaluate returns the id of the player owning the first complete line,
// Draw if the grid is full with no line, or Undecided otherwise.
// Only positive values count as owners; a line of drawn sub-boards is not
// a win.
func Evaluate(g [9]int) int {
	for _, t := range Triples {
		v := g[t[0]]
		if v > 0 && g[t[1]] == v && g[t[2]] == v {
			return v
		}
	}
	for _, v := range g {
		if v == 0 {
			return Undecided
		}
	}
	return Draw
}
