package shape

import "errors"

var (
	ErrInvalidPolygon = errors.New("shape: polygon needs 3 to 8 vertices")
	ErrInvalidRatio   = errors.New("shape: scale ratio must be positive")
	ErrStaleEntity    = errors.New("shape: entity destroyed")
	ErrAlreadyCreated = errors.New("shape: body already created")
	ErrNotBuilt       = errors.New("shape: shapes not built")
	ErrNoWorld        = errors.New("shape: no physics world")
)
