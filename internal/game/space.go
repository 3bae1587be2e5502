package game

import "fmt"

// Space is the complete, deduplicated enumeration of every code a
// definition admits. Built once per solving session; IDs are dense ints
// stable for the session's lifetime.
type Space struct {
	def   Definition
	codes []Code
	index map[Code]int
}

// NewSpace enumerates the full code space for a definition. Enumeration is
// total and deterministic: odometer order with the first position cycling
// fastest, so the classic board yields 111, 211, 311, 411, 511, 121, ...
func NewSpace(def Definition) (*Space, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	length := def.Length()
	alphabet := def.AlphabetSize()
	total := 1
	for i := 0; i < length; i++ {
		total *= alphabet
	}

	s := &Space{
		def:   def,
		codes: make([]Code, 0, total),
		index: make(map[Code]int, total),
	}

	digits := make([]uint8, length)
	for n := 0; n < total; n++ {
		rem := n
		for i := 0; i < length; i++ {
			digits[i] = def.MinDigit + uint8(rem%alphabet)
			rem /= alphabet
		}
		if !def.admits(digits) {
			continue
		}
		code := NewCode(digits...)
		s.index[code] = len(s.codes)
		s.codes = append(s.codes, code)
	}

	if len(s.codes) == 0 {
		return nil, fmt.Errorf("game space: %w: constraint %q admits no codes",
			ErrBadDefinition, def.Constraint)
	}
	return s, nil
}

// Definition returns the definition this space was enumerated from.
func (s *Space) Definition() Definition { return s.def }

// Count returns the number of valid codes.
func (s *Space) Count() int { return len(s.codes) }

// At returns the code with dense ID i. Panics on a bad index, like any
// slice access; IDs only ever come from this space.
func (s *Space) At(i int) Code { return s.codes[i] }

// IndexOf returns the dense ID for a code and whether the code is a member
// of the space.
func (s *Space) IndexOf(c Code) (int, bool) {
	i, ok := s.index[c]
	return i, ok
}

// Codes returns a copy of the enumeration, in ID order.
func (s *Space) Codes() []Code {
	out := make([]Code, len(s.codes))
	copy(out, s.codes)
	return out
}
