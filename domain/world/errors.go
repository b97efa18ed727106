package world

import "errors"

var (
	// ErrUnknownKind indicates a value kind outside the supported set.
	ErrUnknownKind = errors.New("unknown value kind")

	// ErrMissingPayload indicates an encoded value without a payload for
	// its declared kind.
	ErrMissingPayload = errors.New("missing value payload")
)
