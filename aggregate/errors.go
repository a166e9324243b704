package aggregate

import "errors"

var (
	// ErrInvalidWindow is returned when the window size is not positive.
	ErrInvalidWindow = errors.New("window must be greater than 0")

	// ErrInvalidStride is returned when the stride is not positive.
	ErrInvalidStride = errors.New("stride must be greater than 0")
)
