package domain

// LuhnChecksum returns the digit that, appended to digits, makes the sequence
// Luhn-valid. Digits are walked left to right: even positions are added as is,
// odd positions are doubled and reduced by 9 when the double exceeds 9.
//
// Every element must already be in the range 0-9.
func LuhnChecksum(digits []uint8) uint8 {
	var sum uint
	for i, d := range digits {
		v := uint(d)
		if i%2 != 0 {
			v *= 2
			if v >= 10 {
				v -= 9
			}
		}
		sum += v
	}
	return uint8((10 - sum%10) % 10)
}
