// Package phone normalizes Turkish telephone numbers found in contact data.
//
// Numbers are classified purely by digit count and area code. Anything that
// does not look like a Turkish mobile or landline number is passed through
// untouched, so Normalize never loses information.
package phone

import (
	"strconv"
	"strings"
	"unicode"
)

// CountryCode is the Turkish international dialling prefix.
const CountryCode = "90"

// Area code ranges. Landline codes are the even numbers in their range.
const (
	mobileMin   = 501
	mobileMax   = 560
	landlineMin = 212
	landlineMax = 490
)

// Normalize returns raw reformatted as "0 (AAA) BBB CC DD" when it is a
// Turkish mobile or landline number, otherwise raw unchanged.
func Normalize(raw string) string {
	digits := Digits(raw)
	if len(digits) == 0 {
		return raw
	}

	candidate := StripCountryCode(digits)
	if !IsTurkish(candidate) {
		return raw
	}

	formatted, ok := format(candidate)
	if !ok {
		return raw
	}
	return formatted
}

// Digits returns the digit characters of s in order.
func Digits(s string) []rune {
	var out []rune
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return out
}

// StripCountryCode drops a leading "90" from digit strings long enough to
// carry one.
func StripCountryCode(digits []rune) []rune {
	if len(digits) >= 12 && strings.HasPrefix(string(digits[:2]), CountryCode) {
		return digits[2:]
	}
	return digits
}

// IsTurkish reports whether digits (already country-code stripped) form a
// plausible Turkish number: 11 digits with a trunk "0", or 10 digits without.
func IsTurkish(digits []rune) bool {
	var area []rune
	switch {
	case len(digits) == 11 && digits[0] == '0':
		area = digits[1:4]
	case len(digits) == 10:
		area = digits[0:3]
	default:
		return false
	}
	return isKnownAreaCode(string(area))
}

// IsMobileAreaCode reports whether code is in 501..560.
func IsMobileAreaCode(code int) bool {
	return code >= mobileMin && code <= mobileMax
}

// IsLandlineAreaCode reports whether code is an even number in 212..490.
func IsLandlineAreaCode(code int) bool {
	return code >= landlineMin && code <= landlineMax && code%2 == 0
}

// isKnownAreaCode parses a three digit area code. Non-ASCII digits never
// match.
func isKnownAreaCode(area string) bool {
	if len(area) != 3 {
		return false
	}
	code, err := strconv.Atoi(area)
	if err != nil {
		return false
	}
	return IsMobileAreaCode(code) || IsLandlineAreaCode(code)
}

// format renders an already classified number. It re-checks length and area
// code after adding the trunk prefix.
func format(digits []rune) (string, bool) {
	candidate := StripCountryCode(digits)

	normalized := candidate
	if candidate[0] != '0' {
		normalized = append([]rune{'0'}, candidate...)
	}
	if len(normalized) != 11 {
		return "", false
	}

	area := string(normalized[1:4])
	if !isKnownAreaCode(area) {
		return "", false
	}

	var b strings.Builder
	b.Grow(17)
	b.WriteString("0 (")
	b.WriteString(area)
	b.WriteString(") ")
	b.WriteString(string(normalized[4:7]))
	b.WriteByte(' ')
	b.WriteString(string(normalized[7:9]))
	b.WriteByte(' ')
	b.WriteString(string(normalized[9:11]))
	return b.String(), true
}
