// Package game defines the puzzle domain: the code space being searched and
// the catalog of comparison rules the physical verifier cards implement.
// Everything here is pure, immutable data; solving sessions share a single
// catalog and enumerate their own code spaces.
package game

import (
	"fmt"
)

// Constraint names a structural validity predicate applied to every
// enumerated code. The classic game uses ConstraintNone; the others exist
// for variant boards and synthetic test spaces.
type Constraint string

const (
	// ConstraintNone admits every digit combination.
	ConstraintNone Constraint = "none"
	// ConstraintNoAdjacentRepeat rejects codes where two neighbouring
	// positions hold the same digit.
	ConstraintNoAdjacentRepeat Constraint = "no-adjacent-repeat"
	// ConstraintAllDistinct rejects codes with any repeated digit.
	ConstraintAllDistinct Constraint = "all-distinct"
)

// Position describes one dial of the code: a display name and the color the
// UI renders its digit with.
type Position struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Definition is the externally specified shape of a game: how many
// positions, which digit alphabet, and which validity constraint. The solver
// never assumes the classic 3x5 board; it only reads a Definition.
type Definition struct {
	Positions  []Position `yaml:"positions"`
	MinDigit   uint8      `yaml:"min_digit"`
	MaxDigit   uint8      `yaml:"max_digit"`
	Constraint Constraint `yaml:"constraint"`
}

// ClassicDefinition returns the standard board: three positions
// (blue, yellow, purple), digits 1 through 5, no structural constraint.
// 125 valid codes.
func ClassicDefinition() Definition {
	return Definition{
		Positions: []Position{
			{Name: "blue", Color: "#2196F3"},
			{Name: "yellow", Color: "#FFC107"},
			{Name: "purple", Color: "#9C27B0"},
		},
		MinDigit:   1,
		MaxDigit:   5,
		Constraint: ConstraintNone,
	}
}

// Length returns the number of positions in a code.
func (d Definition) Length() int { return len(d.Positions) }

// AlphabetSize returns the number of distinct digit values.
func (d Definition) AlphabetSize() int { return int(d.MaxDigit-d.MinDigit) + 1 }

// Validate checks the definition is enumerable. Called before any
// enumeration work so a malformed definition fails fast.
func (d Definition) Validate() error {
	if len(d.Positions) == 0 {
		return fmt.Errorf("game definition: %w: no positions", ErrBadDefinition)
	}
	if len(d.Positions) > maxPositions {
		return fmt.Errorf("game definition: %w: %d positions exceeds limit %d",
			ErrBadDefinition, len(d.Positions), maxPositions)
	}
	if d.MinDigit == 0 || d.MaxDigit > 9 || d.MinDigit > d.MaxDigit {
		return fmt.Errorf("game definition: %w: digit range [%d..%d]",
			ErrBadDefinition, d.MinDigit, d.MaxDigit)
	}
	switch d.Constraint {
	case "", ConstraintNone, ConstraintNoAdjacentRepeat, ConstraintAllDistinct:
	default:
		return fmt.Errorf("game definition: %w: unknown constraint %q",
			ErrBadDefinition, d.Constraint)
	}
	return nil
}

// maxPositions bounds enumeration size. 8 positions over 9 digits is already
// ~43M codes, far beyond anything the tree search can chew through.
const maxPositions = 8

// admits reports whether the digit sequence satisfies the definition's
// structural constraint. Digit range validity is the enumerator's job.
func (d Definition) admits(digits []uint8) bool {
	switch d.Constraint {
	case ConstraintNoAdjacentRepeat:
		for i := 1; i < len(digits); i++ {
			if digits[i] == digits[i-1] {
				return false
			}
		}
	case ConstraintAllDistinct:
		var seen [10]bool
		for _, v := range digits {
			if seen[v] {
				return false
			}
			seen[v] = true
		}
	}
	return true
}

// PositionName returns the display name for a position index, falling back
// to "pos N" when the definition carries no name.
func (d Definition) PositionName(i int) string {
	if i >= 0 && i < len(d.Positions) && d.Positions[i].Name != "" {
		return d.Positions[i].Name
	}
	return fmt.Sprintf("pos %d", i+1)
}
