package nestedgrid

import (
	"fmt"
	"io"

	"github.com/domino14/gameengines/lines"
)

// Snapshot is the interchange form of a State handed to a persistence
// strategy.
type Snapshot struct {
	Board         Board         `yaml:"board"`
	SubResults    [BoardDim]int `yaml:"sub_results"`
	Active        int           `yaml:"active"`
	Turn          int           `yaml:"turn"`
	CurrentPlayer int           `yaml:"current_player"`
}

// Snapshot returns the interchange form of s.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Board:         s.board,
		SubResults:    s.subResults,
		Active:        s.active,
		Turn:          s.turn,
		CurrentPlayer: s.player,
	}
}

// Validate checks cell values, that every sub-board outcome matches its
// cells, that the active super-cell is in range and undecided, and that the player to
// move agrees with the turn count.
func (sn *Snapshot) Validate() error {
	for k := 0; k < BoardDim; k++ {
		for j, v := range sn.Board[k] {
			if v < 0 || v > 2 {
				return fmt.Errorf("%w: cell %d of sub-board %d holds %d", ErrInvalidSnapshot, j, k, v)
			}
		}
		if want := lines.Evaluate(sn.Board[k]); sn.SubResults[k] != want {
			return fmt.Errorf("%w: sub-board %d recorded as %d, cells say %d",
				ErrInvalidSnapshot, k, sn.SubResults[k], want)
		}
	}
	if sn.Active < Unconstrained || sn.Active >= BoardDim {
		return fmt.Errorf("%w: active super-cell %d", ErrInvalidSnapshot, sn.Active)
	}
	if sn.Active != Unconstrained && sn.SubResults[sn.Active] != Ongoing {
		return fmt.Errorf("%w: active super-cell %d is already decided", ErrInvalidSnapshot, sn.Active)
	}
	if sn.Turn < 0 || sn.CurrentPlayer != sn.Turn%2+1 {
		return fmt.Errorf("%w: player %d cannot move on turn %d", ErrInvalidSnapshot, sn.CurrentPlayer, sn.Turn)
	}
	return nil
}

// FromSnapshot builds a State from its interchange form.
func FromSnapshot(sn Snapshot, opts ...Option) (*State, error) {
	if err := sn.Validate(); err != nil {
		return nil, err
	}
	return &State{
		board:      sn.Board,
		subResults: sn.SubResults,
		active:     sn.Active,
		turn:       sn.Turn,
		player:     sn.CurrentPlayer,
		opts:       buildOptions(opts),
	}, nil
}

// Save writes s with the state's persistence strategy.
func (s *State) Save(w io.Writer) error {
	if err := s.opts.strategy.SaveState(w, s.Snapshot()); err != nil {
		return fmt.Errorf("saving nestedgrid state: %w", err)
	}
	return nil
}

// Load reads a State with the persistence strategy given in opts, or
// persist.Default.
func Load(r io.Reader, opts ...Option) (*State, error) {
	o := buildOptions(opts)
	var sn Snapshot
	if err := o.strategy.LoadState(r, &sn); err != nil {
		return nil, fmt.Errorf("loading nestedgrid state: %w", err)
	}
	return FromSnapshot(sn, opts...)
}
