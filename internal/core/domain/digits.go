package domain

import (
	"fmt"
	"strings"
)

// Integer is any built-in signed or unsigned integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// parseDigits fills dst from s. s must be exactly len(dst) ASCII decimal digits.
func parseDigits(s string, dst []uint8) error {
	if len(s) != len(dst) {
		return fmt.Errorf("%w: expected %d digits, got %q", ErrCannotParseDigits, len(dst), s)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: %q", ErrCannotParseDigits, s)
		}
		dst[i] = c - '0'
	}
	return nil
}

// checkDigits verifies that every element is a single decimal digit.
func checkDigits(digits []uint8) error {
	for i, d := range digits {
		if d > 9 {
			return fmt.Errorf("%w: element %d is %d", ErrCannotParseDigits, i, d)
		}
	}
	return nil
}

// intToDigits extracts the decimal digits of v right to left into dst,
// left-padding with zeros. Values that are negative or need more than
// len(dst) digits are rejected.
func intToDigits[T Integer](v T, dst []uint8) error {
	if v < 0 {
		return fmt.Errorf("%w: %d is negative", ErrValueOutOfRange, v)
	}
	n := uint64(v)
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = uint8(n % 10)
		n /= 10
	}
	if n != 0 {
		return fmt.Errorf("%w: %d has more than %d digits", ErrValueOutOfRange, v, len(dst))
	}
	return nil
}

func digitsToUint64(digits []uint8) uint64 {
	var n uint64
	for _, d := range digits {
		n = n*10 + uint64(d)
	}
	return n
}

func renderDigits(digits []uint8) string {
	var b strings.Builder
	b.Grow(len(digits))
	for _, d := range digits {
		b.WriteByte('0' + d)
	}
	return b.String()
}
