package intent

import "errors"

var (
	// ErrDuplicateRule is returned when two rules share an id.
	ErrDuplicateRule = errors.New("duplicate intent rule")

	// ErrEmptyRule is returned when a rule has neither phrases nor keywords.
	ErrEmptyRule = errors.New("intent rule has no phrases or keywords")

	// ErrReservedIntent is returned when a rule tries to declare the clarify intent.
	ErrReservedIntent = errors.New("intent id is reserved")

	// ErrInvalidPattern is returned when a phrase, keyword or alias normalizes to nothing
	// or a keyword spans more than one word.
	ErrInvalidPattern = errors.New("invalid rule pattern")
)
