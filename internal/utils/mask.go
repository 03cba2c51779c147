// Package utils provides common utility functions.
package utils

import "regexp"

var imeiInText = regexp.MustCompile(`\b\d{15}\b`)

// MaskPartial replaces every rune of s except the first keepPrefix and the last
// keepSuffix with maskChar. Strings too short to mask are returned unchanged.
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	if len(runes) <= keepPrefix+keepSuffix {
		return s
	}
	for i := keepPrefix; i < len(runes)-keepSuffix; i++ {
		runes[i] = maskChar
	}
	return string(runes)
}

// MaskIMEI hides the serial number of an IMEI, keeping the TAC and the check digit.
// Example: 355086752340133 -> 35508675******3
func MaskIMEI(imei string) string {
	return MaskPartial(imei, 8, 1, '*')
}

// MaskIMEIsInText applies MaskIMEI to every standalone 15-digit run in s.
func MaskIMEIsInText(s string) string {
	return imeiInText.ReplaceAllStringFunc(s, MaskIMEI)
}
