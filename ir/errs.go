package ir

import (
	"errors"
)

var (
	// ErrBadValue reports a Go value that cannot be represented as a node.
	ErrBadValue = errors.New("bad value")
)
