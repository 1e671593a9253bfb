package tower

import "errors"

var (
	ErrOutOfBounds     = errors.New("tower: coordinates out of bounds")
	ErrInvalidMove     = errors.New("tower: move is not legal in this position")
	ErrInvalidSnapshot = errors.New("tower: invalid snapshot")
)
