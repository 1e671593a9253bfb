package nestedgrid

import (
	"fmt"
	"strings"
)

var marks = [3]string{".", "X", "O"}

// String draws the nine sub-boards in their physical layout, followed by
// the player to move and the active sub-board.
func (s *State) String() string {
	var sb strings.Builder
	for r := 0; r < BoardDim; r++ {
		if r > 0 && r%3 == 0 {
			sb.WriteString("------+-------+------\n")
		}
		for c := 0; c < BoardDim; c++ {
			if c > 0 && c%3 == 0 {
				sb.WriteString("| ")
			}
			sup := 3*(r/3) + c/3
			sub := 3*(r%3) + c%3
			sb.WriteString(marks[s.board[sup][sub]])
			if c < BoardDim-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	active := "any"
	if !s.unconstrained() {
		active = fmt.Sprint(s.active)
	}
	fmt.Fprintf(&sb, "turn %d, %s to move, active %s\n", s.turn, marks[s.player], active)
	return sb.String()
}
