package game

import "strings"

// Code is one candidate secret: a fixed-length digit sequence. The digits
// are stored in a string so Code is comparable, usable as a map key, and
// immutable by construction. Identity is by value; dense integer IDs are the
// Space's business.
type Code struct {
	digits string
}

// NewCode builds a code from its digits, first position first.
func NewCode(digits ...uint8) Code {
	b := make([]byte, len(digits))
	for i, d := range digits {
		b[i] = d
	}
	return Code{digits: string(b)}
}

// Len returns the number of positions.
func (c Code) Len() int { return len(c.digits) }

// Digit returns the digit at position i.
func (c Code) Digit(i int) uint8 { return c.digits[i] }

// Digits returns a fresh copy of the digit sequence.
func (c Code) Digits() []uint8 {
	out := make([]uint8, len(c.digits))
	for i := 0; i < len(c.digits); i++ {
		out[i] = c.digits[i]
	}
	return out
}

// IsZero reports whether the code is the zero value (no digits).
func (c Code) IsZero() bool { return len(c.digits) == 0 }

// String renders the digits as a plain decimal string, e.g. "145".
// Colored rendering lives in the ui layer.
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(len(c.digits))
	for i := 0; i < len(c.digits); i++ {
		sb.WriteByte('0' + c.digits[i])
	}
	return sb.String()
}

// sum of all digits. Several catalog rules need it.
func (c Code) sum() int {
	total := 0
	for i := 0; i < len(c.digits); i++ {
		total += int(c.digits[i])
	}
	return total
}

// countDigit returns how many positions hold the given digit.
func (c Code) countDigit(d uint8) uint8 {
	var n uint8
	for i := 0; i < len(c.digits); i++ {
		if c.digits[i] == d {
			n++
		}
	}
	return n
}

// countOdd returns how many digits are odd.
func (c Code) countOdd() int {
	n := 0
	for i := 0; i < len(c.digits); i++ {
		if c.digits[i]%2 == 1 {
			n++
		}
	}
	return n
}
