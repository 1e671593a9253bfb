package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/gameengines/cache"
	"github.com/domino14/gameengines/nestedgrid"
	"github.com/domino14/gameengines/tower"
)

const bignum = 1<<63 - 2

const (
	towerValues = 2*tower.MaxHeight + 1
	cells       = tower.NumCells
)

// generate a zobrist hash for Tower and Nested-Grid positions.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	secondToMove uint64

	towerTable      [cells][towerValues]uint64
	towerRatioTable [cells][tower.MaxHeight + 1]uint64

	nestedTable       [cells][2]uint64
	nestedActiveTable [nestedgrid.BoardDim + 1]uint64
}

func rnd() uint64 {
	return frand.Uint64n(bignum) + 1
}

func (z *Zobrist) Initialize() {
	for i := 0; i < cells; i++ {
		for j := 0; j < towerValues; j++ {
			z.towerTable[i][j] = rnd()
		}
		for j := 0; j <= tower.MaxHeight; j++ {
			z.towerRatioTable[i][j] = rnd()
		}
		for j := 0; j < 2; j++ {
			z.nestedTable[i][j] = rnd()
		}
	}
	for i := range z.nestedActiveTable {
		z.nestedActiveTable[i] = rnd()
	}
	z.secondToMove = rnd()
}

// Default returns the process-wide tables, built on first use.
func Default() *Zobrist {
	obj, err := cache.Load("zobrist", func(string) (any, error) {
		z := &Zobrist{}
		z.Initialize()
		return z, nil
	})
	if err != nil {
		panic(err)
	}
	return obj.(*Zobrist)
}

// towerCell hashes stack v at cell i, with p1 of its pieces belonging to
// player 1. Player 2's share is implied by the height.
func (z *Zobrist) towerCell(i, v, p1 int) uint64 {
	if v == 0 {
		return 0
	}
	return z.towerTable[i][v+tower.MaxHeight] ^ z.towerRatioTable[i][p1]
}

// TowerHash hashes a Tower position. The state does not record whose turn
// it is, so the caller says.
func (z *Zobrist) TowerHash(s *tower.State, secondToMove bool) uint64 {
	b, r := s.Board(), s.Ratios()
	key := uint64(0)
	for row := 0; row < tower.BoardDim; row++ {
		for col := 0; col < tower.BoardDim; col++ {
			key ^= z.towerCell(row*tower.BoardDim+col, b[row][col], r[0][row][col])
		}
	}
	if secondToMove {
		key ^= z.secondToMove
	}
	return key
}

// AddTowerMove returns the hash of the position reached by playing m from
// before, given key, the hash of before.
func (z *Zobrist) AddTowerMove(key uint64, before *tower.State, m tower.Move) uint64 {
	b, r := before.Board(), before.Ratios()
	o, d := m.Origin, m.Dest
	oi, di := o.Row*tower.BoardDim+o.Col, d.Row*tower.BoardDim+d.Col

	key ^= z.towerCell(oi, b[o.Row][o.Col], r[0][o.Row][o.Col])
	key ^= z.towerCell(di, b[d.Row][d.Col], r[0][d.Row][d.Col])
	key ^= z.towerCell(di, tower.Merge(b[o.Row][o.Col], b[d.Row][d.Col]),
		r[0][o.Row][o.Col]+r[0][d.Row][d.Col])

	key ^= z.secondToMove
	return key
}

// NestedHash hashes a Nested-Grid position, including the active
// sub-board and the player to move.
func (z *Zobrist) NestedHash(s *nestedgrid.State) uint64 {
	b := s.Board()
	key := uint64(0)
	for sup := range b {
		for sub, v := range b[sup] {
			if v == 0 {
				continue
			}
			key ^= z.nestedTable[sup*nestedgrid.BoardDim+sub][v-1]
		}
	}
	key ^= z.nestedActiveTable[s.ActiveSuperCell()+1]
	if s.CurrentPlayer() == 2 {
		key ^= z.secondToMove
	}
	return key
}

// AddNestedMove returns the hash of after, which was reached by playing m
// from before, given key, the hash of before.
func (z *Zobrist) AddNestedMove(key uint64, before, after *nestedgrid.State, m nestedgrid.Move) uint64 {
	sup := m.Super.Row*3 + m.Super.Col
	sub := m.Sub.Row*3 + m.Sub.Col
	key ^= z.nestedTable[sup*nestedgrid.BoardDim+sub][before.CurrentPlayer()-1]
	key ^= z.nestedActiveTable[before.ActiveSuperCell()+1]
	key ^= z.nestedActiveTable[after.ActiveSuperCell()+1]
	key ^= z.secondToMove
	return key
}
