// Package nestedgrid implements nested tic-tac-toe (Ultimate Tic-Tac-Toe):
// nine 3x3 sub-boards laid out in a 3x3 meta-board. The sub-cell a player
// picks sends the opponent to the matching sub-board.
package nestedgrid

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gameengines/lines"
)

const (
	// BoardDim is the number of sub-boards, and of cells in each sub-board.
	BoardDim = 9
	// Unconstrained is the active super-cell when any undecided sub-board
	// may be played.
	Unconstrained = -1
)

// Outcomes of a sub-board or of the whole game.
const (
	Ongoing = lines.Undecided
	Draw    = lines.Draw
)

// Coords addresses a cell of a 3x3 grid; both components are in [0,3).
type Coords struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// InBounds reports whether c addresses a cell of a 3x3 grid.
func (c Coords) InBounds() bool {
	return c.Row >= 0 && c.Row < 3 && c.Col >= 0 && c.Col < 3
}

func (c Coords) index() int {
	return 3*c.Row + c.Col
}

func coordsOf(i int) Coords {
	return Coords{i / 3, i % 3}
}

// Move places a piece in sub-cell Sub of the sub-board at Super.
type Move struct {
	Super Coords `yaml:"super"`
	Sub   Coords `yaml:"sub"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)/(%d,%d)", m.Super.Row, m.Super.Col, m.Sub.Row, m.Sub.Col)
}

// Board holds a player id (0 for empty) per cell. Row k is sub-board k and
// column j is cell j of that sub-board, both numbered row-major.
type Board [BoardDim][BoardDim]int

// State is a Nested-Grid position. Play never modifies the receiver.
type State struct {
	board      Board
	subResults [BoardDim]int
	active     int
	turn       int
	player     int

	opts options
}

// NewState returns the empty board with player 1 to move anywhere.
func NewState(opts ...Option) *State {
	return &State{
		active: Unconstrained,
		player: 1,
		opts:   buildOptions(opts),
	}
}

// Copy returns an independent copy of s.
func (s *State) Copy() *State {
	ns := *s
	return &ns
}

// Play returns the state that results from playing m. Both coordinates
// must be in [0,3)x[0,3), and m must be legal unless the state was built
// with WithPermissivePlay.
func (s *State) Play(m Move) (*State, error) {
	if !m.Super.InBounds() || !m.Sub.InBounds() {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, m)
	}
	if !s.opts.permissive && !s.legal(m.Super.index(), m.Sub.index()) {
		log.Debug().Stringer("move", m).Int("active", s.active).Msg("rejecting illegal nestedgrid move")
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	return s.PlayUnchecked(m), nil
}

// PlayUnchecked applies m without checking that it is legal. Coordinates
// outside [0,3) are a programmer error and panic.
func (s *State) PlayUnchecked(m Move) *State {
	if !m.Super.InBounds() || !m.Sub.InBounds() {
		panic(fmt.Sprintf("nestedgrid: move %v out of bounds", m))
	}
	sup, sub := m.Super.index(), m.Sub.index()

	ns := s.Copy()
	ns.board[sup][sub] = s.player
	ns.subResults[sup] = lines.Evaluate(ns.board[sup])
	if ns.subResults[sub] != Ongoing {
		ns.active = Unconstrained
	} else {
		ns.active = sub
	}
	ns.turn++
	ns.player = s.player%2 + 1
	return ns
}

func (s *State) unconstrained() bool {
	return s.active == Unconstrained || s.subResults[s.active] != Ongoing
}

func (s *State) legal(sup, sub int) bool {
	if s.board[sup][sub] != 0 {
		return false
	}
	if s.unconstrained() {
		return s.subResults[sup] == Ongoing
	}
	return sup == s.active
}

// IsLegal reports whether m may be played now.
func (s *State) IsLegal(m Move) bool {
	return m.Super.InBounds() && m.Sub.InBounds() && s.legal(m.Super.index(), m.Sub.index())
}

// LegalMoves lists the empty cells the player to move may fill, in
// row-major order of sub-board then cell. It does not look at Winner;
// callers stop once the game is decided.
func (s *State) LegalMoves() []Move {
	moves := make([]Move, 0, BoardDim*BoardDim)
	for sup := 0; sup < BoardDim; sup++ {
		for sub := 0; sub < BoardDim; sub++ {
			if s.legal(sup, sub) {
				moves = append(moves, Move{Super: coordsOf(sup), Sub: coordsOf(sub)})
			}
		}
	}
	return moves
}

// Winner evaluates the meta-board: Ongoing (0), Draw (-1), or the id of
// the winning player.
func (s *State) Winner() int {
	return lines.Evaluate(s.subResults)
}

// Score has no meaning for this game and is always zero.
func (s *State) Score() [2]int {
	return [2]int{}
}

// Board returns the board in its numeric interchange form.
func (s *State) Board() Board {
	return s.board
}

// SubResults returns the outcome of each sub-board: Ongoing, Draw or the
// winner's id.
func (s *State) SubResults() [BoardDim]int {
	return s.subResults
}

// ActiveSuperCell returns the sub-board the player to move must play in,
// or Unconstrained.
func (s *State) ActiveSuperCell() int {
	return s.active
}

// Turn returns the number of moves played so far.
func (s *State) Turn() int {
	return s.turn
}

// CurrentPlayer returns the id of the player to move, 1 or 2.
func (s *State) CurrentPlayer() int {
	return s.player
}
