package terrain

import "errors"

// Construction errors. They are returned wrapped with the offending value.
var (
	ErrNilHeightField    = errors.New("terrain: nil height field")
	ErrInvalidWindow     = errors.New("terrain: patches per side must be a positive odd number")
	ErrInvalidPatchSize  = errors.New("terrain: patch size must be positive and finite")
	ErrInvalidResolution = errors.New("terrain: resolution must divide side length - 1")
)
