package tower

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	is := is.New(t)
	c := Coords{4, 4}
	for d, step := range directions {
		is.Equal(direction(c, Coords{c.Row + step.Row, c.Col + step.Col}), d)
	}
	is.Equal(direction(c, c), -1)
	is.Equal(direction(c, Coords{6, 4}), -1)
}

func TestMoveSet(t *testing.T) {
	is := is.New(t)
	var ms MoveSet
	a := Move{Coords{0, 0}, Coords{1, 1}}
	b := Move{Coords{8, 8}, Coords{8, 7}}
	c := Move{Coords{3, 4}, Coords{2, 4}}
	ms.Add(b)
	ms.Add(a)
	ms.Add(c)
	ms.Add(a)
	is.Equal(ms.Len(), 3)
	is.True(ms.Has(a))
	is.True(!ms.Has(Move{a.Dest, a.Origin}))
	assert.Equal(t, []Move{a, c, b}, ms.Moves())

	ms.Remove(c)
	ms.Remove(Move{Coords{0, 0}, Coords{5, 5}})
	ms.Remove(Move{Coords{0, 0}, Coords{-1, 0}})
	is.Equal(ms.Len(), 2)
	is.True(!ms.Has(c))
}

func TestMoveSetRejectsDistantPairs(t *testing.T) {
	var ms MoveSet
	assert.Panics(t, func() { ms.Add(Move{Coords{0, 0}, Coords{0, 2}}) })
	assert.Panics(t, func() { ms.Add(Move{Coords{0, 0}, Coords{0, 0}}) })
	assert.False(t, ms.Has(Move{Coords{0, 0}, Coords{0, 2}}))
}

func TestGenAllBothDirections(t *testing.T) {
	is := is.New(t)
	var b Board
	b[0][0] = 3
	b[0][1] = -2
	b[1][1] = 3
	b[5][5] = 1
	ms := GenAll(&b)
	// 3+3 is too tall, 3+2 is fine both ways, (5,5) is isolated
	assert.ElementsMatch(t, []Move{
		{Coords{0, 0}, Coords{0, 1}},
		{Coords{0, 1}, Coords{0, 0}},
		{Coords{0, 1}, Coords{1, 1}},
		{Coords{1, 1}, Coords{0, 1}},
	}, ms.Moves())
	is.Equal(ms.Len(), 4)
}
