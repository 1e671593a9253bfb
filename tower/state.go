package tower

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gameengines/cache"
)

const seedMovesCacheKey = "tower-seed-moves"

// State is a Tower position. A State is never changed by a transition:
// Play returns a fresh successor. The one thing that changes in place is
// the legal-move cache, which is brought up to date lazily, under a lock,
// the first time it is needed after the move that produced the state.
type State struct {
	board  Board
	ratios Ratios

	mu      sync.Mutex
	moves   MoveSet
	pending *Move

	opts options
}

func seedMoves() MoveSet {
	obj, err := cache.Load(seedMovesCacheKey, func(string) (any, error) {
		b := seedBoard
		return GenAll(&b), nil
	})
	if err != nil {
		// GenAll cannot fail.
		panic(err)
	}
	return obj.(MoveSet)
}

// NewState returns the starting position.
func NewState(opts ...Option) *State {
	return &State{
		board:  seedBoard,
		ratios: seedRatios(&seedBoard),
		moves:  seedMoves(),
		opts:   buildOptions(opts),
	}
}

// refresh applies the pending incremental update, if any. s.mu must be
// held.
func (s *State) refresh() {
	if s.pending == nil {
		return
	}
	s.moves.invalidate(&s.board, *s.pending)
	s.pending = nil
}

// MoveSet returns an up-to-date copy of the legal-move set.
func (s *State) MoveSet() MoveSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	return s.moves
}

// LegalMoves lists every legal move, ordered by origin cell.
func (s *State) LegalMoves() []Move {
	ms := s.MoveSet()
	return ms.Moves()
}

// IsLegal reports whether m is currently legal.
func (s *State) IsLegal(m Move) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	return s.moves.Has(m)
}

// GameOver reports whether no legal move remains.
func (s *State) GameOver() bool {
	ms := s.MoveSet()
	return ms.Len() == 0
}

// Copy returns a deep, independent copy of s.
func (s *State) Copy() *State {
	return &State{
		board:  s.board,
		ratios: s.ratios,
		moves:  s.MoveSet(),
		opts:   s.opts,
	}
}

// Play returns the state that results from playing m. Both cells must be
// on the board, and m must be legal unless the state was built with
// WithPermissivePlay.
func (s *State) Play(m Move) (*State, error) {
	if !m.Origin.InBounds() || !m.Dest.InBounds() {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, m)
	}
	if !s.opts.permissive && !s.IsLegal(m) {
		log.Debug().Stringer("move", m).Msg("rejecting illegal tower move")
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	return s.PlayUnchecked(m), nil
}

// PlayUnchecked applies m without checking that it is legal. Coordinates
// outside the board are a programmer error and panic.
func (s *State) PlayUnchecked(m Move) *State {
	legal := s.IsLegal(m)
	ns := s.Copy()
	ns.apply(m)
	if legal {
		ns.pending = &m
	} else {
		// An illegal move can create adjacencies the incremental update
		// does not know about.
		ns.moves = GenAll(&ns.board)
	}
	return ns
}

// apply stacks the tower at the origin onto the destination. The owner of
// the moving tower's top piece owns the result.
func (s *State) apply(m Move) {
	merged := Merge(s.board.At(m.Origin), s.board.At(m.Dest))
	s.board.set(m.Origin, 0)
	s.board.set(m.Dest, merged)

	o, d := m.Origin, m.Dest
	for p := range s.ratios {
		top, bottom := s.ratios[p][o.Row][o.Col], s.ratios[p][d.Row][d.Col]
		s.ratios[p][o.Row][o.Col] = 0
		s.ratios[p][d.Row][d.Col] = top + bottom
	}
}

// Merge returns the value of the stack formed by putting the stack top on
// the stack bottom.
func Merge(top, bottom int) int {
	if top >= 0 {
		return top + abs(bottom)
	}
	return top - abs(bottom)
}

// Board returns the board in its numeric interchange form.
func (s *State) Board() Board {
	return s.board
}

// Ratios returns the per-player piece counts of every stack.
func (s *State) Ratios() Ratios {
	return s.ratios
}

// Score returns the number of towers each player controls, player 1
// first.
func (s *State) Score() [2]int {
	var sc [2]int
	for i := range s.board {
		for _, v := range s.board[i] {
			switch {
			case v > 0:
				sc[0]++
			case v < 0:
				sc[1]++
			}
		}
	}
	return sc
}
