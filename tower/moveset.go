package tower

import "math/bits"

// Each cell has at most eight neighbours, so a directed move is addressed
// by its origin cell and the direction towards its destination.
const (
	numDirections = 8
	moveSetWords  = (NumCells*numDirections + 63) / 64
)

var directions = [numDirections]Coords{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// direction returns the index into directions of the step from a to b, or
// -1 if b is not one of a's eight neighbours.
func direction(a, b Coords) int {
	dr, dc := b.Row-a.Row, b.Col-a.Col
	if dr < -1 || dr > 1 || dc < -1 || dc > 1 {
		return -1
	}
	k := (dr+1)*3 + (dc + 1)
	switch {
	case k == 4:
		return -1
	case k > 4:
		return k - 1
	}
	return k
}

func moveBit(m Move) (int, bool) {
	if !m.Origin.InBounds() || !m.Dest.InBounds() {
		return 0, false
	}
	d := direction(m.Origin, m.Dest)
	if d < 0 {
		return 0, false
	}
	return m.Origin.index()*numDirections + d, true
}

// A MoveSet is a set of moves between neighbouring cells, stored as a
// bitset so that copying a state copies the set by value. Pairs that are
// not neighbours can never be members.
type MoveSet [moveSetWords]uint64

// Add inserts m. It panics if m does not join two neighbouring cells.
func (ms *MoveSet) Add(m Move) {
	b, ok := moveBit(m)
	if !ok {
		panic("tower: move set only holds moves between neighbours: " + m.String())
	}
	ms[b>>6] |= 1 << (b & 63)
}

// Remove deletes m. Removing a non-member is a no-op.
func (ms *MoveSet) Remove(m Move) {
	if b, ok := moveBit(m); ok {
		ms[b>>6] &^= 1 << (b & 63)
	}
}

// Has reports whether m is a member.
func (ms *MoveSet) Has(m Move) bool {
	b, ok := moveBit(m)
	return ok && ms[b>>6]&(1<<(b&63)) != 0
}

// Len returns the number of members.
func (ms *MoveSet) Len() int {
	n := 0
	for _, w := range ms {
		n += bits.OnesCount64(w)
	}
	return n
}

// Moves lists the members ordered by origin cell (row-major), then by
// direction.
func (ms *MoveSet) Moves() []Move {
	moves := make([]Move, 0, ms.Len())
	for wi, w := range ms {
		for w != 0 {
			b := wi*64 + bits.TrailingZeros64(w)
			w &= w - 1
			cell, d := b/numDirections, b%numDirections
			origin := Coords{cell / BoardDim, cell % BoardDim}
			step := directions[d]
			moves = append(moves, Move{
				Origin: origin,
				Dest:   Coords{origin.Row + step.Row, origin.Col + step.Col},
			})
		}
	}
	return moves
}
