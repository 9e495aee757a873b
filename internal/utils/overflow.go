package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow checks if multiplying two uint64 values would overflow.
func CheckMultiplyOverflow(a, b uint64) error {
	if a == 0 || b == 0 {
		return nil
	}
	if a > math.MaxUint64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds uint64 max", a, b)
	}
	return nil
}

// SafeMultiply multiplies two uint64 values and returns the result if no
// overflow occurs.
func SafeMultiply(a, b uint64) (uint64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// FitsUint32 reports whether v can be represented losslessly in the
// narrow (pre-7500) node-header encoding. Used by the writer to raise
// FileTooLarge/TooManyAttributes/AttributeTooLong as nodes and
// attributes are written, for files declared below FBX version 7500.
func FitsUint32(v uint64) bool {
	return v <= math.MaxUint32
}

// FitsUint8 reports whether v fits the single-byte bytelen_name field.
func FitsUint8(v int) bool {
	return v >= 0 && v <= math.MaxUint8
}
