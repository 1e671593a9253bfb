package tower

// GenAll scans the whole board and returns every legal move: each ordered
// pair of neighbouring occupied stacks whose combined height does not
// exceed MaxHeight. Every occupied cell is visited as a destination, so
// both directions of each pair are produced.
func GenAll(b *Board) MoveSet {
	var ms MoveSet
	for i := 0; i < BoardDim; i++ {
		for j := 0; j < BoardDim; j++ {
			h := abs(b[i][j])
			if h == 0 {
				continue
			}
			dest := Coords{i, j}
			r0, r1, c0, c1 := window(dest)
			for r := r0; r < r1; r++ {
				for c := c0; c < c1; c++ {
					if r == i && c == j {
						continue
					}
					nh := abs(b[r][c])
					if nh == 0 || nh+h > MaxHeight {
						continue
					}
					ms.Add(Move{Origin: Coords{r, c}, Dest: dest})
				}
			}
		}
	}
	return ms
}

// invalidate brings ms up to date after the legal move m was played on b.
// Heights only grow and cells never move, so a move that was illegal can
// never become legal; only removals are needed, and only around the two
// cells the move touched.
func (ms *MoveSet) invalidate(b *Board, m Move) {
	origin, dest := m.Origin, m.Dest

	// The origin is empty for the rest of the game.
	r0, r1, c0, c1 := window(origin)
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			k := Coords{r, c}
			ms.Remove(Move{origin, k})
			ms.Remove(Move{k, origin})
		}
	}

	// The destination grew; drop the merges that would now be too tall.
	h := b.Height(dest)
	r0, r1, c0, c1 = window(dest)
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			k := Coords{r, c}
			ms.Remove(Move{origin, k})
			ms.Remove(Move{k, origin})
			if h+abs(b[r][c]) > MaxHeight {
				ms.Remove(Move{k, dest})
				ms.Remove(Move{dest, k})
			}
		}
	}
}
