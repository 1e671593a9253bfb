package tower

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"
)

func seededRNG(n byte) *frand.RNG {
	seed := make([]byte, 32)
	seed[0] = n
	return frand.NewCustom(seed, 1024, 12)
}

func totalPieces(b Board) int {
	n := 0
	for i := range b {
		for _, v := range b[i] {
			n += abs(v)
		}
	}
	return n
}

func checkRatios(t *testing.T, s *State) {
	t.Helper()
	b, r := s.Board(), s.Ratios()
	for i := 0; i < BoardDim; i++ {
		for j := 0; j < BoardDim; j++ {
			if r[0][i][j]+r[1][i][j] != abs(b[i][j]) {
				t.Fatalf("ratios at (%d,%d) are %d+%d, height is %d",
					i, j, r[0][i][j], r[1][i][j], abs(b[i][j]))
			}
		}
	}
}

func TestSeedPosition(t *testing.T) {
	is := is.New(t)
	s := NewState()
	is.Equal(totalPieces(s.Board()), 48)
	is.Equal(s.Score(), [2]int{24, 24})
	checkRatios(t, s)
	b := s.Board()
	full := GenAll(&b)
	is.Equal(s.MoveSet(), full)
	is.True(!s.GameOver())
}

func TestPlayScenario(t *testing.T) {
	is := is.New(t)
	s := NewState()
	m := Move{Origin: Coords{1, 1}, Dest: Coords{0, 2}}
	start := s.Board()
	is.Equal(start.At(m.Origin), 1)
	is.Equal(start.At(m.Dest), 1)

	ns, err := s.Play(m)
	is.NoErr(err)
	b := ns.Board()
	is.Equal(b[0][2], 2)
	is.Equal(b[1][1], 0)
	is.Equal(ns.Ratios()[0][0][2], 2)
	is.Equal(ns.Ratios()[0][1][1], 0)

	// the predecessor is untouched
	is.Equal(s.Board()[1][1], 1)
	is.Equal(s.Board()[0][2], 1)
	is.True(s.IsLegal(m))
	is.True(!ns.IsLegal(m))
}

func TestStackOwnerIsMovingTop(t *testing.T) {
	is := is.New(t)
	s := NewState()
	// (1,2) belongs to player 2 and (0,2) to player 1
	ns, err := s.Play(Move{Origin: Coords{1, 2}, Dest: Coords{0, 2}})
	is.NoErr(err)
	is.Equal(ns.Board()[0][2], -2)
	is.Equal(ns.Ratios()[0][0][2], 1)
	is.Equal(ns.Ratios()[1][0][2], 1)
	is.Equal(ns.Score(), [2]int{23, 24})
}

// Plays random legal games and checks after every move that the stacking
// law holds, pieces are conserved, and the incrementally maintained move
// set matches a full rescan of the board.
func TestRandomGamesMatchFullScan(t *testing.T) {
	for g := byte(0); g < 40; g++ {
		rng := seededRNG(g)
		s := NewState()
		for plies := 0; ; plies++ {
			moves := s.LegalMoves()
			b := s.Board()
			full := GenAll(&b)
			if s.MoveSet() != full {
				t.Fatalf("game %d ply %d: incremental move set %v differs from full scan %v",
					g, plies, s.LegalMoves(), full.Moves())
			}
			if len(moves) == 0 {
				if !s.GameOver() {
					t.Fatalf("game %d: no moves but game not over", g)
				}
				break
			}
			m := moves[rng.Intn(len(moves))]
			before := s.Board()
			ns, err := s.Play(m)
			if err != nil {
				t.Fatalf("game %d ply %d: %v", g, plies, err)
			}
			after := ns.Board()
			if after.Height(m.Dest) != before.Height(m.Origin)+before.Height(m.Dest) {
				t.Fatalf("game %d ply %d: bad height after %v", g, plies, m)
			}
			if after.At(m.Origin) != 0 {
				t.Fatalf("game %d ply %d: origin not emptied", g, plies)
			}
			if (after.At(m.Dest) > 0) != (before.At(m.Origin) > 0) {
				t.Fatalf("game %d ply %d: wrong owner after %v", g, plies, m)
			}
			if totalPieces(after) != totalPieces(before) {
				t.Fatalf("game %d ply %d: pieces not conserved", g, plies)
			}
			checkRatios(t, ns)
			s = ns
		}
		sc := s.Score()
		if sc[0]+sc[1] == 0 {
			t.Fatalf("game %d: no towers left", g)
		}
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	is := is.New(t)
	s, err := NewState().Play(Move{Origin: Coords{4, 3}, Dest: Coords{4, 2}})
	is.NoErr(err)
	first := s.LegalMoves()
	second := s.LegalMoves()
	assert.Equal(t, first, second)
}

func TestPlayFromUnqueriedState(t *testing.T) {
	is := is.New(t)
	// Nobody asks s1 for its moves before s2 is derived from it.
	s1 := NewState().PlayUnchecked(Move{Origin: Coords{4, 3}, Dest: Coords{4, 2}})
	s2, err := s1.Play(Move{Origin: Coords{4, 1}, Dest: Coords{4, 2}})
	is.NoErr(err)
	b := s2.Board()
	is.Equal(s2.MoveSet(), GenAll(&b))
}

func TestPlayRejectsIllegalMoves(t *testing.T) {
	is := is.New(t)
	s := NewState()

	_, err := s.Play(Move{Origin: Coords{0, 2}, Dest: Coords{4, 4}})
	is.True(errors.Is(err, ErrInvalidMove))

	// (0,1) is empty
	_, err = s.Play(Move{Origin: Coords{0, 2}, Dest: Coords{0, 1}})
	is.True(errors.Is(err, ErrInvalidMove))

	_, err = s.Play(Move{Origin: Coords{8, 8}, Dest: Coords{9, 8}})
	is.True(errors.Is(err, ErrOutOfBounds))

	_, err = s.Play(Move{Origin: Coords{-1, 0}, Dest: Coords{0, 0}})
	is.True(errors.Is(err, ErrOutOfBounds))
}

func TestPermissivePlay(t *testing.T) {
	is := is.New(t)
	s := NewState(WithPermissivePlay(true))
	ns, err := s.Play(Move{Origin: Coords{0, 2}, Dest: Coords{0, 1}})
	is.NoErr(err)
	b := ns.Board()
	is.Equal(b[0][1], 1)
	is.Equal(b[0][2], 0)
	// the cache still agrees with the board
	is.Equal(ns.MoveSet(), GenAll(&b))

	// options carry over to successors
	_, err = ns.Play(Move{Origin: Coords{0, 1}, Dest: Coords{5, 5}})
	is.NoErr(err)

	// a tower stacked onto itself keeps its ratios in step with its height
	self, err := s.Play(Move{Origin: Coords{1, 1}, Dest: Coords{1, 1}})
	is.NoErr(err)
	sb, sr := self.Board(), self.Ratios()
	is.Equal(sb[1][1], 2)
	is.Equal(sr[0][1][1]+sr[1][1][1], 2)
	is.Equal(self.MoveSet(), GenAll(&sb))
}

func TestPlayUncheckedPanicsOffBoard(t *testing.T) {
	assert.Panics(t, func() {
		NewState().PlayUnchecked(Move{Origin: Coords{0, 9}, Dest: Coords{0, 8}})
	})
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	s := NewState()
	c := s.Copy()
	is.Equal(c.Board(), s.Board())
	is.Equal(c.MoveSet(), s.MoveSet())

	ns, err := c.Play(Move{Origin: Coords{1, 1}, Dest: Coords{0, 2}})
	is.NoErr(err)
	is.True(ns.Board() != s.Board())
	is.Equal(c.Board(), s.Board())
}

func TestConcurrentLegalMoves(t *testing.T) {
	is := is.New(t)
	s, err := NewState().Play(Move{Origin: Coords{3, 3}, Dest: Coords{3, 4}})
	is.NoErr(err)

	results := make([][]Move, 16)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.LegalMoves()
		}(i)
	}
	wg.Wait()
	for i := range results {
		assert.Equal(t, results[0], results[i])
	}
	b := s.Board()
	is.Equal(s.MoveSet(), GenAll(&b))
}

func TestSaveLoad(t *testing.T) {
	is := is.New(t)
	s := NewState()
	for _, m := range []Move{
		{Coords{1, 1}, Coords{0, 2}},
		{Coords{1, 2}, Coords{0, 2}},
		{Coords{4, 5}, Coords{5, 5}},
	} {
		var err error
		s, err = s.Play(m)
		is.NoErr(err)
	}
	var buf bytes.Buffer
	is.NoErr(s.Save(&buf))

	loaded, err := Load(&buf)
	is.NoErr(err)
	is.Equal(loaded.Board(), s.Board())
	is.Equal(loaded.Ratios(), s.Ratios())
	assert.Equal(t, s.LegalMoves(), loaded.LegalMoves())
}

func TestFromSnapshotValidates(t *testing.T) {
	is := is.New(t)
	sn := NewState().Snapshot()
	sn.Ratios[0][0][2] = 0
	_, err := FromSnapshot(sn)
	is.True(errors.Is(err, ErrInvalidSnapshot))

	sn = NewState().Snapshot()
	sn.Board[0][2] = 6
	_, err = FromSnapshot(sn)
	is.True(errors.Is(err, ErrInvalidSnapshot))

	// player 1 on top with only player 2 pieces underneath
	sn = NewState().Snapshot()
	sn.Ratios[0][0][2], sn.Ratios[1][0][2] = 0, 1
	_, err = FromSnapshot(sn)
	is.True(errors.Is(err, ErrInvalidSnapshot))
}

func TestString(t *testing.T) {
	is := is.New(t)
	out := NewState().String()
	is.True(bytes.Contains([]byte(out), []byte("towers X:24 O:24")))
	is.True(bytes.Contains([]byte(out), []byte("X1 O1")))
}
