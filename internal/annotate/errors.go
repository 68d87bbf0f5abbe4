package annotate

import "errors"

// ErrUnknownMode reports a lookup of a mode absent from the registry.
// This is a configuration error, not a user input error.
var ErrUnknownMode = errors.New("unknown mode")

// ErrSpanOutOfRange reports a selection span outside the clue text.
var ErrSpanOutOfRange = errors.New("span out of range")
