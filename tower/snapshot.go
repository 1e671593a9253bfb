package tower

import (
	"fmt"
	"io"
)

// Snapshot is the interchange form of a State handed to a persistence
// strategy. The legal-move cache is derived data and is not part of it.
type Snapshot struct {
	Board  Board  `yaml:"board"`
	Ratios Ratios `yaml:"ratios"`
}

// Snapshot returns the interchange form of s.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Board: s.board, Ratios: s.ratios}
}

// Validate checks that every stack is at most MaxHeight tall, that the
// ratio channels add up to the stack height and that the owner of the top
// piece has at least one piece in the stack.
func (sn *Snapshot) Validate() error {
	for i := 0; i < BoardDim; i++ {
		for j := 0; j < BoardDim; j++ {
			v := sn.Board[i][j]
			p1, p2 := sn.Ratios[0][i][j], sn.Ratios[1][i][j]
			switch {
			case abs(v) > MaxHeight:
				return fmt.Errorf("%w: stack at (%d,%d) has height %d", ErrInvalidSnapshot, i, j, abs(v))
			case p1 < 0 || p2 < 0:
				return fmt.Errorf("%w: negative ratio at (%d,%d)", ErrInvalidSnapshot, i, j)
			case p1+p2 != abs(v):
				return fmt.Errorf("%w: ratios at (%d,%d) sum to %d, stack height is %d",
					ErrInvalidSnapshot, i, j, p1+p2, abs(v))
			case v > 0 && p1 == 0, v < 0 && p2 == 0:
				return fmt.Errorf("%w: owner of (%d,%d) has no piece in the stack", ErrInvalidSnapshot, i, j)
			}
		}
	}
	return nil
}

// FromSnapshot builds a State from its interchange form, recomputing the
// legal-move set with a full scan.
func FromSnapshot(sn Snapshot, opts ...Option) (*State, error) {
	if err := sn.Validate(); err != nil {
		return nil, err
	}
	return &State{
		board:  sn.Board,
		ratios: sn.Ratios,
		moves:  GenAll(&sn.Board),
		opts:   buildOptions(opts),
	}, nil
}

// Save writes s with the state's persistence strategy.
func (s *State) Save(w io.Writer) error {
	if err := s.opts.strategy.SaveState(w, s.Snapshot()); err != nil {
		return fmt.Errorf("saving tower state: %w", err)
	}
	return nil
}

// Load reads a State with the persistence strategy given in opts, or
// persist.Default.
func Load(r io.Reader, opts ...Option) (*State, error) {
	o := buildOptions(opts)
	var sn Snapshot
	if err := o.strategy.LoadState(r, &sn); err != nil {
		return nil, fmt.Errorf("loading tower state: %w", err)
	}
	return FromSnapshot(sn, opts...)
}
