package game

import (
	"fmt"
	"sync"
)

// RuleID identifies a verifier card in the catalog. IDs are stable,
// 1-based, and printed to the player, so they never change meaning.
type RuleID int

// Rule is one verifier card: a pure function from a code to a small result
// value. Only equality of result values matters to the solver, since a
// query asks whether the probe's value matches the secret's, so encodings
// just need to be deterministic and distinct per outcome.
//
// Some cards are partial: "which digit is strictly smallest" has no answer
// when the minimum is tied. Eval reports ok=false for such codes; the
// analyzer excludes them from play.
type Rule struct {
	ID   RuleID
	Name string
	Desc string
	eval func(Code) (uint8, bool)
}

// NewRule builds a custom rule. The builtin catalog covers the physical
// card set; variant boards and tests bring their own rules through here.
func NewRule(id RuleID, name, desc string, eval func(Code) (uint8, bool)) Rule {
	return Rule{ID: id, Name: name, Desc: desc, eval: eval}
}

// Eval applies the rule to a code. The boolean is false when the rule has
// no defined value for the code.
func (r Rule) Eval(c Code) (uint8, bool) {
	return r.eval(c)
}

// Catalog is the immutable, process-wide rule table. Constructed once,
// shared by reference across concurrent sessions, never mutated.
type Catalog struct {
	rules []Rule // index = ID-1
}

// NewCatalog builds a catalog from rules whose IDs must be exactly 1..n.
// Gaps or duplicates are construction bugs, not runtime conditions.
func NewCatalog(rules []Rule) (*Catalog, error) {
	ordered := make([]Rule, len(rules))
	for _, r := range rules {
		i := int(r.ID) - 1
		if i < 0 || i >= len(rules) {
			return nil, fmt.Errorf("catalog: rule ID %d outside 1..%d", r.ID, len(rules))
		}
		if ordered[i].eval != nil {
			return nil, fmt.Errorf("catalog: rule ID %d defined twice", r.ID)
		}
		ordered[i] = r
	}
	return &Catalog{rules: ordered}, nil
}

// Size returns the number of implemented rules.
func (c *Catalog) Size() int { return len(c.rules) }

// Get resolves a rule ID, failing fast on anything outside the implemented
// range.
func (c *Catalog) Get(id RuleID) (Rule, error) {
	if id < 1 || int(id) > len(c.rules) {
		return Rule{}, fmt.Errorf("%w: rule %d (implemented range 1..%d)",
			ErrUnknownRule, id, len(c.rules))
	}
	return c.rules[id-1], nil
}

// All returns the rules in ID order. The slice is a copy; the rules inside
// are shared immutable values.
func (c *Catalog) All() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

var (
	builtinOnce sync.Once
	builtin     *Catalog
)

// Builtin returns the standard 25-card catalog, built once per process.
// Cards 1-21 follow the classic set exactly; 22-25 extend it with the
// ordering, sum and run cards. Descriptions name the classic positions;
// evaluation is positional and degrades to "undefined" on codes too short
// for the referenced positions.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		cat, err := NewCatalog(builtinRules())
		if err != nil {
			// builtinRules is a compile-time table; a bad ID is a
			// programming error.
			panic(err)
		}
		builtin = cat
	})
	return builtin
}

// Outcome encodings shared by the builtin cards. Values are arbitrary but
// fixed: comparisons use less=0 equal=1 greater=2, parity uses even=0
// odd=1, counts use the count itself.
const (
	cmpLess    = 0
	cmpEqual   = 1
	cmpGreater = 2
)

func compare(a, b int) uint8 {
	switch {
	case a < b:
		return cmpLess
	case a > b:
		return cmpGreater
	default:
		return cmpEqual
	}
}

func parity(v uint8) uint8 {
	if v%2 == 0 {
		return 0
	}
	return 1
}

// comparePos compares the digit at position pos with a fixed target.
func comparePos(pos int, target uint8) func(Code) (uint8, bool) {
	return func(c Code) (uint8, bool) {
		if c.Len() <= pos {
			return 0, false
		}
		return compare(int(c.Digit(pos)), int(target)), true
	}
}

// comparePair compares the digits at two positions.
func comparePair(a, b int) func(Code) (uint8, bool) {
	return func(c Code) (uint8, bool) {
		if c.Len() <= a || c.Len() <= b {
			return 0, false
		}
		return compare(int(c.Digit(a)), int(c.Digit(b))), true
	}
}

// parityPos reports the parity of the digit at one position.
func parityPos(pos int) func(Code) (uint8, bool) {
	return func(c Code) (uint8, bool) {
		if c.Len() <= pos {
			return 0, false
		}
		return parity(c.Digit(pos)), true
	}
}

// countOf counts occurrences of a fixed digit.
func countOf(d uint8) func(Code) (uint8, bool) {
	return func(c Code) (uint8, bool) {
		return c.countDigit(d), true
	}
}

// strictExtreme returns the position holding the strict minimum (sign < 0)
// or strict maximum (sign > 0), undefined when the extreme is shared.
func strictExtreme(sign int) func(Code) (uint8, bool) {
	return func(c Code) (uint8, bool) {
		best := 0
		tied := false
		for i := 1; i < c.Len(); i++ {
			d, cur := c.Digit(i), c.Digit(best)
			switch {
			case (sign < 0 && d < cur) || (sign > 0 && d > cur):
				best, tied = i, false
			case d == cur:
				tied = true
			}
		}
		if tied || c.Len() < 2 {
			return 0, false
		}
		return uint8(best), true
	}
}

// pairCount counts equal pairs across all position pairs: a triple on the
// classic board produces three pairs.
func pairCount(c Code) int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		for j := i + 1; j < c.Len(); j++ {
			if c.Digit(i) == c.Digit(j) {
				n++
			}
		}
	}
	return n
}

// longestRun returns the longest run of adjacent positions stepping by
// exactly +1 (asc), or by +1 or consistently -1 when desc is allowed.
func longestRun(c Code, allowDesc bool) int {
	best, up, down := 1, 1, 1
	for i := 1; i < c.Len(); i++ {
		if int(c.Digit(i)) == int(c.Digit(i-1))+1 {
			up++
		} else {
			up = 1
		}
		if int(c.Digit(i)) == int(c.Digit(i-1))-1 {
			down++
		} else {
			down = 1
		}
		if up > best {
			best = up
		}
		if allowDesc && down > best {
			best = down
		}
	}
	return best
}

// runOutcome maps a run length to the card outcome: 3+ in a row, exactly
// 2, or no run.
func runOutcome(run int) uint8 {
	switch {
	case run >= 3:
		return 2
	case run == 2:
		return 1
	default:
		return 0
	}
}

func builtinRules() []Rule {
	return []Rule{
		{ID: 1, Name: "blue vs 1", Desc: "Compares the blue digit with 1.", eval: comparePos(0, 1)},
		{ID: 2, Name: "blue vs 3", Desc: "Compares the blue digit with 3.", eval: comparePos(0, 3)},
		{ID: 3, Name: "yellow vs 3", Desc: "Compares the yellow digit with 3.", eval: comparePos(1, 3)},
		{ID: 4, Name: "yellow vs 4", Desc: "Compares the yellow digit with 4.", eval: comparePos(1, 4)},
		{ID: 5, Name: "blue parity", Desc: "Checks whether the blue digit is even or odd.", eval: parityPos(0)},
		{ID: 6, Name: "yellow parity", Desc: "Checks whether the yellow digit is even or odd.", eval: parityPos(1)},
		{ID: 7, Name: "purple parity", Desc: "Checks whether the purple digit is even or odd.", eval: parityPos(2)},
		{ID: 8, Name: "count of 1s", Desc: "Counts how many digits equal 1.", eval: countOf(1)},
		{ID: 9, Name: "count of 3s", Desc: "Counts how many digits equal 3.", eval: countOf(3)},
		{ID: 10, Name: "count of 4s", Desc: "Counts how many digits equal 4.", eval: countOf(4)},
		{ID: 11, Name: "blue vs yellow", Desc: "Compares the blue digit with the yellow digit.", eval: comparePair(0, 1)},
		{ID: 12, Name: "blue vs purple", Desc: "Compares the blue digit with the purple digit.", eval: comparePair(0, 2)},
		{ID: 13, Name: "yellow vs purple", Desc: "Compares the yellow digit with the purple digit.", eval: comparePair(1, 2)},
		{ID: 14, Name: "strict minimum", Desc: "Names the position holding the strictly smallest digit; undefined on ties.", eval: strictExtreme(-1)},
		{ID: 15, Name: "strict maximum", Desc: "Names the position holding the strictly largest digit; undefined on ties.", eval: strictExtreme(+1)},
		{ID: 16, Name: "parity majority", Desc: "Checks whether odd digits outnumber even digits.", eval: func(c Code) (uint8, bool) {
			if 2*c.countOdd() > c.Len() {
				return 1, true
			}
			return 0, true
		}},
		{ID: 17, Name: "even count", Desc: "Counts the even digits.", eval: func(c Code) (uint8, bool) {
			return uint8(c.Len() - c.countOdd()), true
		}},
		{ID: 18, Name: "sum parity", Desc: "Checks whether the digit sum is even or odd.", eval: func(c Code) (uint8, bool) {
			return uint8(c.sum() % 2), true
		}},
		{ID: 19, Name: "blue+yellow vs 6", Desc: "Compares the sum of blue and yellow with 6.", eval: func(c Code) (uint8, bool) {
			if c.Len() < 2 {
				return 0, false
			}
			return compare(int(c.Digit(0))+int(c.Digit(1)), 6), true
		}},
		{ID: 20, Name: "repeats", Desc: "Checks whether a digit appears three times, exactly twice, or never repeats.", eval: func(c Code) (uint8, bool) {
			switch pairCount(c) {
			case 0:
				return 2, true
			case 1:
				return 1, true
			default:
				return 0, true
			}
		}},
		{ID: 21, Name: "pair presence", Desc: "Checks whether exactly one pair of equal digits exists.", eval: func(c Code) (uint8, bool) {
			if pairCount(c) == 1 {
				return 1, true
			}
			return 0, true
		}},
		{ID: 22, Name: "ordering", Desc: "Checks whether the digits strictly ascend, strictly descend, or neither.", eval: func(c Code) (uint8, bool) {
			if c.Len() < 2 {
				return 0, false
			}
			asc, desc := true, true
			for i := 1; i < c.Len(); i++ {
				if c.Digit(i) <= c.Digit(i-1) {
					asc = false
				}
				if c.Digit(i) >= c.Digit(i-1) {
					desc = false
				}
			}
			switch {
			case asc:
				return 0, true
			case desc:
				return 1, true
			default:
				return 2, true
			}
		}},
		{ID: 23, Name: "sum vs 6", Desc: "Compares the sum of all digits with 6.", eval: func(c Code) (uint8, bool) {
			return compare(c.sum(), 6), true
		}},
		{ID: 24, Name: "ascending run", Desc: "Finds the longest run of consecutive ascending digits: three or more, exactly two, or none.", eval: func(c Code) (uint8, bool) {
			return runOutcome(longestRun(c, false)), true
		}},
		{ID: 25, Name: "monotone run", Desc: "Finds the longest run of consecutive ascending or descending digits: three or more, exactly two, or none.", eval: func(c Code) (uint8, bool) {
			return runOutcome(longestRun(c, true)), true
		}},
	}
}
