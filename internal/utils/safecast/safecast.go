// Package safecast converts between integer widths for wire length fields,
// failing instead of silently truncating.
package safecast

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// RangeError reports a value that does not fit the requested width.
type RangeError struct {
	Value  any
	Target string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("value %v exceeds %s range", e.Value, e.Target)
}

// IntToUint8 converts a count to a u8 length prefix.
func IntToUint8(value int) (uint8, error) {
	if value < 0 || value > math.MaxUint8 {
		return 0, &RangeError{Value: value, Target: "uint8"}
	}

	return cast.ToUint8E(value)
}

// IntToUint32 converts a count to a u32 length prefix.
func IntToUint32(value int) (uint32, error) {
	if value < 0 || uint64(value) > math.MaxUint32 {
		return 0, &RangeError{Value: value, Target: "uint32"}
	}

	return cast.ToUint32E(value)
}

// Uint64ToUint32 narrows a proposal or transaction index.
func Uint64ToUint32(value uint64) (uint32, error) {
	if value > math.MaxUint32 {
		return 0, &RangeError{Value: value, Target: "uint32"}
	}

	return cast.ToUint32E(value)
}
