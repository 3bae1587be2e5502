package game

import "fmt"

// Challenge is the set of verifier cards in play for one puzzle instance.
// Order follows the player's input so prompts can label the cards A, B, C...
// the way they sit on the table. Immutable after construction.
type Challenge struct {
	rules []Rule
}

// NewChallenge resolves and validates a list of rule IDs against the
// catalog. Every ID must resolve before any enumeration work happens:
// an unknown or repeated card is a configuration error, not something to
// discover mid-session.
func NewChallenge(cat *Catalog, ids []RuleID) (*Challenge, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyChallenge
	}
	seen := make(map[RuleID]bool, len(ids))
	rules := make([]Rule, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: rule %d", ErrDuplicateRule, id)
		}
		seen[id] = true
		r, err := cat.Get(id)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return &Challenge{rules: rules}, nil
}

// Size returns the number of cards in play.
func (ch *Challenge) Size() int { return len(ch.rules) }

// Rule returns the card at challenge position i (0-based).
func (ch *Challenge) Rule(i int) Rule { return ch.rules[i] }

// Rules returns the cards in play, in table order.
func (ch *Challenge) Rules() []Rule {
	out := make([]Rule, len(ch.rules))
	copy(out, ch.rules)
	return out
}

// IDs returns the rule IDs in table order.
func (ch *Challenge) IDs() []RuleID {
	out := make([]RuleID, len(ch.rules))
	for i, r := range ch.rules {
		out[i] = r.ID
	}
	return out
}

// Label returns the table label for a challenge position: "A" for the
// first card, "B" for the second, and so on.
func (ch *Challenge) Label(i int) string { return TableLabel(i) }

// TableLabel maps a challenge position to its table label. Positions past
// "Z" fall back to "#27" style labels; no physical table gets there.
func TableLabel(i int) string {
	if i >= 0 && i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("#%d", i+1)
}
