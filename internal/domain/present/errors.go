package present

import (
	"errors"
)

// Sentinel error kinds for this package.
var (
	ErrEmptyChart    = errors.New("chart has no data")
	ErrUnknownChart  = errors.New("unknown chart")
	ErrUnknownFormat = errors.New("unknown image format")
)
