// Package cpf validates and formats Brazilian individual taxpayer ids (CPF).
package cpf

import (
	"errors"
	"strings"
)

// Length is the number of digits in a CPF
const Length = 11

// ErrInvalidBase is returned by CheckDigits when the base is not nine digits
var ErrInvalidBase = errors.New("cpf base must have 9 digits")

// Strip removes every non-digit character
func Strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate reports whether s is a well-formed CPF with correct check digits.
// Punctuation is ignored.
func Validate(s string) bool {
	digits := Strip(s)
	if len(digits) != Length {
		return false
	}
	if allSame(digits) {
		return false
	}

	first := checkDigit(digits[:9])
	second := checkDigit(digits[:10])
	return digits[9] == first && digits[10] == second
}

// Format renders a CPF as XXX.XXX.XXX-XX. It does not validate; input that does
// not have exactly 11 digits is returned stripped but unformatted.
func Format(s string) string {
	d := Strip(s)
	if len(d) != Length {
		return d
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// CheckDigits returns the full 11-digit CPF for a 9-digit base
func CheckDigits(base string) (string, error) {
	digits := Strip(base)
	if len(digits) != 9 || len(digits) != len(base) {
		return "", ErrInvalidBase
	}
	withFirst := digits + string(checkDigit(digits))
	return withFirst + string(checkDigit(withFirst)), nil
}

// checkDigit computes the verification digit for the given prefix using
// descending weights that start at len(prefix)+1.
func checkDigit(prefix string) byte {
	sum := 0
	weight := len(prefix) + 1
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * weight
		weight--
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
