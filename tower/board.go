// Package tower implements the rules of the stacking-tower game (Avalam):
// a 9x9 board of stacks that players merge onto neighbouring stacks until
// no merge of combined height five or less remains.
package tower

import "fmt"

const (
	// BoardDim is the number of rows and columns of the board.
	BoardDim = 9
	// MaxHeight is the tallest stack a merge may produce.
	MaxHeight = 5
	// NumCells is the number of cells on the board.
	NumCells = BoardDim * BoardDim
)

// Coords is a (row, column) position on the board.
type Coords struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// InBounds reports whether c lies on the board.
func (c Coords) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardDim && c.Col >= 0 && c.Col < BoardDim
}

func (c Coords) index() int {
	return c.Row*BoardDim + c.Col
}

func (c Coords) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Move stacks the tower at Origin on top of the tower at Dest.
type Move struct {
	Origin Coords `yaml:"origin"`
	Dest   Coords `yaml:"dest"`
}

func (m Move) String() string {
	return fmt.Sprintf("%v->%v", m.Origin, m.Dest)
}

// Board holds one signed integer per cell. Zero is empty, the sign is the
// owner of the top piece (positive for player 1) and the magnitude is the
// height of the stack.
type Board [BoardDim][BoardDim]int

// At returns the value at c. c must be in bounds.
func (b *Board) At(c Coords) int {
	return b[c.Row][c.Col]
}

func (b *Board) set(c Coords, v int) {
	b[c.Row][c.Col] = v
}

// Height returns the stack height at c. c must be in bounds.
func (b *Board) Height(c Coords) int {
	return abs(b[c.Row][c.Col])
}

// Ratios counts, per player, the pieces embedded in the stack of each
// cell. Channel 0 belongs to player 1 and channel 1 to player 2.
type Ratios [2][BoardDim][BoardDim]int

// seedBoard is the starting layout: 48 stacks of height one.
var seedBoard = Board{
	{0, 0, 1, -1, 0, 0, 0, 0, 0},
	{0, 1, -1, 1, -1, 0, 0, 0, 0},
	{0, -1, 1, -1, 1, -1, 1, 0, 0},
	{0, 1, -1, 1, -1, 1, -1, 1, -1},
	{1, -1, 1, -1, 0, -1, 1, -1, 1},
	{-1, 1, -1, 1, -1, 1, -1, 1, 0},
	{0, 0, 1, -1, 1, -1, 1, -1, 0},
	{0, 0, 0, 0, -1, 1, -1, 1, 0},
	{0, 0, 0, 0, 0, -1, 1, 0, 0},
}

// seedRatios gives every piece of the seed layout to its owner.
func seedRatios(b *Board) Ratios {
	var r Ratios
	for i := 0; i < BoardDim; i++ {
		for j := 0; j < BoardDim; j++ {
			switch {
			case b[i][j] > 0:
				r[0][i][j] = b[i][j]
			case b[i][j] < 0:
				r[1][i][j] = -b[i][j]
			}
		}
	}
	return r
}

// window returns the half-open row and column ranges of the 3x3
// neighbourhood of c, clipped to the board.
func window(c Coords) (r0, r1, c0, c1 int) {
	r0, r1 = max(c.Row-1, 0), min(c.Row+2, BoardDim)
	c0, c1 = max(c.Col-1, 0), min(c.Col+2, BoardDim)
	return
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
