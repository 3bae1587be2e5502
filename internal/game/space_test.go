package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpace_Classic(t *testing.T) {
	space, err := NewSpace(ClassicDefinition())
	require.NoError(t, err)

	assert.Equal(t, 125, space.Count())

	// Odometer order, first position fastest.
	wantPrefix := []string{"111", "211", "311", "411", "511", "121"}
	for i, want := range wantPrefix {
		assert.Equal(t, want, space.At(i).String(), "code at index %d", i)
	}
	assert.Equal(t, "555", space.At(124).String())
}

func TestNewSpace_IndexRoundTrip(t *testing.T) {
	space, err := NewSpace(ClassicDefinition())
	require.NoError(t, err)

	seen := make(map[Code]bool, space.Count())
	for i := 0; i < space.Count(); i++ {
		c := space.At(i)
		if seen[c] {
			t.Fatalf("duplicate code %s at index %d", c, i)
		}
		seen[c] = true

		got, ok := space.IndexOf(c)
		if !ok || got != i {
			t.Fatalf("IndexOf(%s) = (%d, %v), want (%d, true)", c, got, ok, i)
		}
	}
}

func TestNewSpace_IndexOfNonMember(t *testing.T) {
	space, err := NewSpace(ClassicDefinition())
	require.NoError(t, err)

	_, ok := space.IndexOf(NewCode(6, 6, 6))
	assert.False(t, ok, "out-of-alphabet code must not be a member")

	_, ok = space.IndexOf(Code{})
	assert.False(t, ok, "zero code must not be a member")

	_, ok = space.IndexOf(NewCode(1, 1))
	assert.False(t, ok, "short code must not be a member")
}

func TestNewSpace_Constraints(t *testing.T) {
	twoPositions := []Position{{Name: "left"}, {Name: "right"}}
	threePositions := []Position{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	tests := []struct {
		name string
		def  Definition
		want int
	}{
		{"2 positions, 3 digits, unconstrained", Definition{Positions: twoPositions, MinDigit: 1, MaxDigit: 3}, 9},
		{"2 positions, 3 digits, no adjacent repeat", Definition{Positions: twoPositions, MinDigit: 1, MaxDigit: 3, Constraint: ConstraintNoAdjacentRepeat}, 6},
		{"3 positions, 3 digits, all distinct", Definition{Positions: threePositions, MinDigit: 1, MaxDigit: 3, Constraint: ConstraintAllDistinct}, 6},
		{"3 positions, 4 digits, all distinct", Definition{Positions: threePositions, MinDigit: 1, MaxDigit: 4, Constraint: ConstraintAllDistinct}, 24},
		{"3 positions, 4 digits, no adjacent repeat", Definition{Positions: threePositions, MinDigit: 1, MaxDigit: 4, Constraint: ConstraintNoAdjacentRepeat}, 36},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space, err := NewSpace(tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, space.Count())

			for i := 0; i < space.Count(); i++ {
				if !tt.def.admits(space.At(i).Digits()) {
					t.Fatalf("enumerated code %s violates constraint %q", space.At(i), tt.def.Constraint)
				}
			}
		})
	}
}

func TestNewSpace_BadDefinition(t *testing.T) {
	nine := make([]Position, 9)

	tests := []struct {
		name string
		def  Definition
	}{
		{"no positions", Definition{MinDigit: 1, MaxDigit: 5}},
		{"too many positions", Definition{Positions: nine, MinDigit: 1, MaxDigit: 5}},
		{"zero min digit", Definition{Positions: []Position{{}}, MinDigit: 0, MaxDigit: 5}},
		{"min above max", Definition{Positions: []Position{{}}, MinDigit: 5, MaxDigit: 2}},
		{"max above 9", Definition{Positions: []Position{{}}, MinDigit: 1, MaxDigit: 12}},
		{"unknown constraint", Definition{Positions: []Position{{}}, MinDigit: 1, MaxDigit: 5, Constraint: "palindromic"}},
		{
			"constraint admits nothing",
			Definition{
				Positions:  []Position{{}, {}, {}, {}},
				MinDigit:   1,
				MaxDigit:   3,
				Constraint: ConstraintAllDistinct,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpace(tt.def)
			if !errors.Is(err, ErrBadDefinition) {
				t.Fatalf("NewSpace() error = %v, want ErrBadDefinition", err)
			}
		})
	}
}

func TestSpace_Deterministic(t *testing.T) {
	a, err := NewSpace(ClassicDefinition())
	require.NoError(t, err)
	b, err := NewSpace(ClassicDefinition())
	require.NoError(t, err)

	require.Equal(t, a.Count(), b.Count())
	for i := 0; i < a.Count(); i++ {
		if a.At(i) != b.At(i) {
			t.Fatalf("enumeration order differs at %d: %s vs %s", i, a.At(i), b.At(i))
		}
	}
}

func TestSpace_CodesReturnsCopy(t *testing.T) {
	space, err := NewSpace(ClassicDefinition())
	require.NoError(t, err)

	codes := space.Codes()
	codes[0] = NewCode(9, 9, 9)
	assert.Equal(t, "111", space.At(0).String(), "mutating the returned slice must not touch the space")
}

func TestDefinition_PositionName(t *testing.T) {
	def := ClassicDefinition()
	assert.Equal(t, "blue", def.PositionName(0))
	assert.Equal(t, "purple", def.PositionName(2))
	assert.Equal(t, "pos 4", def.PositionName(3))

	unnamed := Definition{Positions: []Position{{}}, MinDigit: 1, MaxDigit: 2}
	assert.Equal(t, "pos 1", unnamed.PositionName(0))
}
