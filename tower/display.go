package tower

import (
	"fmt"
	"strings"
)

// String draws the board. Player 1 stacks are shown as X<height>, player 2
// stacks as O<height>.
func (s *State) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for j := 0; j < BoardDim; j++ {
		fmt.Fprintf(&sb, " %d ", j)
	}
	sb.WriteString("\n")
	for i := 0; i < BoardDim; i++ {
		fmt.Fprintf(&sb, "%d |", i)
		for j := 0; j < BoardDim; j++ {
			v := s.board[i][j]
			switch {
			case v > 0:
				fmt.Fprintf(&sb, "X%d ", v)
			case v < 0:
				fmt.Fprintf(&sb, "O%d ", -v)
			default:
				sb.WriteString(" . ")
			}
		}
		sb.WriteString("\n")
	}
	sc := s.Score()
	fmt.Fprintf(&sb, "towers X:%d O:%d\n", sc[0], sc[1])
	return sb.String()
}
