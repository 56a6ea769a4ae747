package polyline

import (
	"errors"
	"fmt"
)

// ErrMalformedPolyline matches every *DecodeError via errors.Is.
var ErrMalformedPolyline = errors.New("malformed polyline")

// DecodeError describes where and why decoding stopped.
type DecodeError struct {
	Reason string
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed polyline at offset %d: %s", e.Offset, e.Reason)
}

// Is reports whether target is ErrMalformedPolyline.
func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedPolyline
}
