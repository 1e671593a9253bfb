package nestedgrid

import "errors"

var (
	ErrOutOfBounds     = errors.New("nestedgrid: coordinates out of bounds")
	ErrInvalidMove     = errors.New("nestedgrid: move is not legal in this position")
	ErrInvalidSnapshot = errors.New("nestedgrid: invalid snapshot")
)
