package domain

import "fmt"

// ImeiLength is the number of decimal digits in an IMEI.
const ImeiLength = 15

// Imei is a 15-digit International Mobile Equipment Identity.
//
// Digits are kept individually so that leading zeros survive every conversion.
// The zero value is the all-zero IMEI, which happens to be Luhn-valid.
type Imei struct {
	digits [ImeiLength]uint8
}

// ParseImei parses a 15-character decimal string and validates its check digit.
func ParseImei(s string) (Imei, error) {
	imei, err := ParseImeiDigits(s)
	if err != nil {
		return Imei{}, err
	}
	if err := imei.validate(); err != nil {
		return Imei{}, err
	}
	return imei, nil
}

// ParseImeiDigits parses a 15-character decimal string without checking the
// check digit. Use IsValid to inspect the result.
func ParseImeiDigits(s string) (Imei, error) {
	var imei Imei
	if err := parseDigits(s, imei.digits[:]); err != nil {
		return Imei{}, err
	}
	return imei, nil
}

// ImeiFromInt builds an IMEI from a non-negative integer of at most 15 digits,
// left-padding with zeros, and validates its check digit.
//
// Only 64-bit values can carry a full IMEI; narrower types are accepted but
// always produce an IMEI with leading zeros.
func ImeiFromInt[T Integer](v T) (Imei, error) {
	var imei Imei
	if err := intToDigits(v, imei.digits[:]); err != nil {
		return Imei{}, err
	}
	if err := imei.validate(); err != nil {
		return Imei{}, err
	}
	return imei, nil
}

// NewImei builds an IMEI from its digits and validates the check digit.
func NewImei(digits [ImeiLength]uint8) (Imei, error) {
	if err := checkDigits(digits[:]); err != nil {
		return Imei{}, err
	}
	imei := Imei{digits: digits}
	if err := imei.validate(); err != nil {
		return Imei{}, err
	}
	return imei, nil
}

func (i Imei) validate() error {
	if !i.IsValid() {
		return fmt.Errorf("%w: %s (expected check digit %d)", ErrChecksumDoesNotMatch, i, i.expectedCheckDigit())
	}
	return nil
}

func (i Imei) expectedCheckDigit() uint8 {
	return LuhnChecksum(i.digits[:ImeiLength-1])
}

// IsValid reports whether the check digit equals the Luhn checksum of the first 14 digits.
// It says nothing about whether the IMEI belongs to a real device.
func (i Imei) IsValid() bool {
	return i.expectedCheckDigit() == i.CheckDigit()
}

// Digits returns a copy of all 15 digits.
func (i Imei) Digits() [ImeiLength]uint8 {
	return i.digits
}

// ReportingBody returns digits 1-2.
func (i Imei) ReportingBody() [2]uint8 {
	return [2]uint8(i.digits[0:2])
}

// ModelIdentifier returns digits 3-8.
func (i Imei) ModelIdentifier() [6]uint8 {
	return [6]uint8(i.digits[2:8])
}

// TypeAllocationCode returns digits 1-8.
func (i Imei) TypeAllocationCode() [TacLength]uint8 {
	return [TacLength]uint8(i.digits[0:8])
}

// Tac truncates the IMEI to its type allocation code.
func (i Imei) Tac() Tac {
	return Tac{digits: i.TypeAllocationCode()}
}

// SerialNumber returns digits 9-14.
func (i Imei) SerialNumber() [6]uint8 {
	return [6]uint8(i.digits[8:14])
}

// CheckDigit returns digit 15.
func (i Imei) CheckDigit() uint8 {
	return i.digits[ImeiLength-1]
}

// Uint64 returns the IMEI as an unsigned integer. Leading zeros are lost.
func (i Imei) Uint64() uint64 {
	return digitsToUint64(i.digits[:])
}

// Int64 returns the IMEI as a signed integer. Leading zeros are lost.
func (i Imei) Int64() int64 {
	return int64(i.Uint64())
}

// String renders exactly 15 digits. This is the form sent to the lookup service.
func (i Imei) String() string {
	return renderDigits(i.digits[:])
}

// Equals checks if two Imei values have the same digits.
func (i Imei) Equals(other Imei) bool {
	return i.digits == other.digits
}

// MarshalText implements encoding.TextMarshaler.
func (i Imei) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The check digit is validated.
func (i *Imei) UnmarshalText(text []byte) error {
	parsed, err := ParseImei(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
