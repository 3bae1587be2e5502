package solver

import (
	"fmt"

	"codecrack/internal/game"
)

// Query is one question to the table: present the probe code to the card
// at challenge position RulePos and ask whether the card gives the probe
// the same result it gives the secret. The probe need not be a candidate,
// only a code the card can judge.
type Query struct {
	RulePos int
	Rule    game.Rule
	Probe   game.Code
}

func (q Query) String() string {
	return fmt.Sprintf("rule %d (%s) vs %s", q.Rule.ID, q.Rule.Name, q.Probe)
}
