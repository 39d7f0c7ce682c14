package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrInvalidKey signals a non-finite key (NaN or ±Inf) offered to a
	// mutating operation.
	ErrInvalidKey = errors.New("btree: invalid key")
	// ErrKeyNotFound signals a removal of a key that is not in the tree.
	ErrKeyNotFound = errors.New("btree: key not found")
	// ErrInvalidRange signals inverted or non-finite query bounds.
	ErrInvalidRange = errors.New("btree: invalid range")
)
