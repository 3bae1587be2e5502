package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChallenge(t *testing.T) {
	ch, err := NewChallenge(Builtin(), []RuleID{5, 3, 9})
	require.NoError(t, err)

	assert.Equal(t, 3, ch.Size())
	assert.Equal(t, RuleID(5), ch.Rule(0).ID, "table order must follow input order")
	assert.Equal(t, RuleID(3), ch.Rule(1).ID)
	assert.Equal(t, RuleID(9), ch.Rule(2).ID)
	assert.Equal(t, []RuleID{5, 3, 9}, ch.IDs())
}

func TestNewChallenge_Errors(t *testing.T) {
	tests := []struct {
		name string
		ids  []RuleID
		want error
	}{
		{"empty", nil, ErrEmptyChallenge},
		{"duplicate", []RuleID{4, 7, 4}, ErrDuplicateRule},
		{"unknown", []RuleID{1, 26}, ErrUnknownRule},
		{"zero", []RuleID{0}, ErrUnknownRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChallenge(Builtin(), tt.ids)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewChallenge(%v) error = %v, want %v", tt.ids, err, tt.want)
			}
		})
	}
}

func TestChallenge_Labels(t *testing.T) {
	ch, err := NewChallenge(Builtin(), []RuleID{2, 14, 18, 21})
	require.NoError(t, err)

	assert.Equal(t, "A", ch.Label(0))
	assert.Equal(t, "B", ch.Label(1))
	assert.Equal(t, "D", ch.Label(3))
	assert.Equal(t, "Z", ch.Label(25))
	assert.Equal(t, "#27", ch.Label(26))
}

func TestChallenge_RulesReturnsCopy(t *testing.T) {
	ch, err := NewChallenge(Builtin(), []RuleID{1, 2})
	require.NoError(t, err)

	rules := ch.Rules()
	rules[0] = Rule{}
	assert.Equal(t, RuleID(1), ch.Rule(0).ID)
}
