// Package domain defines the device identifier value objects (IMEI, TAC) and the
// lookup result they produce.
package domain

import "errors"

var (
	// ErrCannotParseDigits indicates the input does not decompose into exactly the
	// expected number of decimal digits.
	ErrCannotParseDigits = errors.New("one or more characters in the input is not a decimal digit or the length is wrong")

	// ErrValueOutOfRange indicates an integer input is negative or has more digits
	// than the target identifier holds.
	ErrValueOutOfRange = errors.New("integer value is out of range for the identifier")

	// ErrChecksumDoesNotMatch indicates the IMEI check digit disagrees with its Luhn checksum.
	ErrChecksumDoesNotMatch = errors.New("the IMEI check digit does not match its Luhn checksum")
)
