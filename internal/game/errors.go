package game

import "errors"

var (
	// ErrBadDefinition marks a game definition that cannot be enumerated.
	ErrBadDefinition = errors.New("invalid game definition")

	// ErrUnknownRule marks a rule ID with no implementation in the catalog.
	// Surfaced before any enumeration work begins: an unknown verifier is a
	// configuration error, never a silent default.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrEmptyChallenge marks a challenge with no rules in play.
	ErrEmptyChallenge = errors.New("challenge has no rules")

	// ErrDuplicateRule marks a challenge listing the same rule twice.
	ErrDuplicateRule = errors.New("duplicate rule in challenge")
)
