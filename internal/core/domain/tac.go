package domain

// TacLength is the number of decimal digits in a type allocation code.
const TacLength = 8

// Tac is an 8-digit type allocation code: the reporting body followed by the
// model identifier. It has no check digit, so parsing only checks its shape.
type Tac struct {
	digits [TacLength]uint8
}

// ParseTac parses an 8-character decimal string.
func ParseTac(s string) (Tac, error) {
	var tac Tac
	if err := parseDigits(s, tac.digits[:]); err != nil {
		return Tac{}, err
	}
	return tac, nil
}

// TacFromInt builds a TAC from a non-negative integer of at most 8 digits,
// left-padding with zeros.
func TacFromInt[T Integer](v T) (Tac, error) {
	var tac Tac
	if err := intToDigits(v, tac.digits[:]); err != nil {
		return Tac{}, err
	}
	return tac, nil
}

// NewTac builds a TAC from its digits.
func NewTac(digits [TacLength]uint8) (Tac, error) {
	if err := checkDigits(digits[:]); err != nil {
		return Tac{}, err
	}
	return Tac{digits: digits}, nil
}

// Digits returns a copy of all 8 digits.
func (t Tac) Digits() [TacLength]uint8 {
	return t.digits
}

// ReportingBody returns digits 1-2.
func (t Tac) ReportingBody() [2]uint8 {
	return [2]uint8(t.digits[0:2])
}

// ModelIdentifier returns digits 3-8.
func (t Tac) ModelIdentifier() [6]uint8 {
	return [6]uint8(t.digits[2:8])
}

// Imei synthesizes a valid IMEI for this TAC: a zero serial number followed by
// the Luhn check digit of the first 14 digits.
func (t Tac) Imei() Imei {
	var imei Imei
	copy(imei.digits[:TacLength], t.digits[:])
	imei.digits[ImeiLength-1] = imei.expectedCheckDigit()
	return imei
}

// Uint32 returns the TAC as an unsigned integer. Leading zeros are lost.
func (t Tac) Uint32() uint32 {
	return uint32(digitsToUint64(t.digits[:]))
}

// Int32 returns the TAC as a signed integer. Leading zeros are lost.
func (t Tac) Int32() int32 {
	return int32(t.Uint32())
}

// Uint64 returns the TAC as a 64-bit unsigned integer.
func (t Tac) Uint64() uint64 {
	return digitsToUint64(t.digits[:])
}

// Int64 returns the TAC as a 64-bit signed integer.
func (t Tac) Int64() int64 {
	return int64(t.Uint64())
}

// String renders exactly 8 digits.
func (t Tac) String() string {
	return renderDigits(t.digits[:])
}

// Equals checks if two Tac values have the same digits.
func (t Tac) Equals(other Tac) bool {
	return t.digits == other.digits
}

// MarshalText implements encoding.TextMarshaler.
func (t Tac) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tac) UnmarshalText(text []byte) error {
	parsed, err := ParseTac(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
