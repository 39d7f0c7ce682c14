package hk

import "errors"

var (
	// ErrInvalidConfig signals an invalid model configuration.
	ErrInvalidConfig = errors.New("hk: invalid configuration")
	// ErrInconsistentState signals that the opinion multiset and the agent
	// population disagree. This is a bookkeeping bug, not an input error.
	ErrInconsistentState = errors.New("hk: inconsistent model state")
)
