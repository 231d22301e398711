package domain

import "errors"

// ErrArtboardNotFound is returned when a document store has no entry for an artboard.
var ErrArtboardNotFound = errors.New("artboard not found")

// ErrInvalidDocument is returned when a persisted document cannot be decoded.
var ErrInvalidDocument = errors.New("invalid animation document")

// ErrUnknownTrigger is returned when a trigger envelope names an unsupported variant.
var ErrUnknownTrigger = errors.New("unknown trigger type")

// ErrStateNotFound is returned by boundary adapters when a state id does not resolve.
var ErrStateNotFound = errors.New("state not found")

// ErrChainNotFound is returned by boundary adapters when a chain id does not resolve.
var ErrChainNotFound = errors.New("chain not found")
