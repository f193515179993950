package squeeze

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates that a structure was requested for an
	// input with no symbols, such as a Huffman tree with no leaves.
	ErrEmptyInput = errors.New("empty input")
	// ErrCorruptTree indicates a serialized Huffman tree that cannot be
	// rebuilt, or a traversal that walked off the tree.
	ErrCorruptTree = errors.New("corrupt Huffman tree")
	// ErrCorruptStream indicates an undecodable payload: an invalid LZW
	// code, a truncated bit stream, or a misplaced end marker.
	ErrCorruptStream = errors.New("corrupt compressed stream")
	// ErrIOFailure wraps errors from the file system or an underlying
	// reader or writer.
	ErrIOFailure = errors.New("I/O failure")
	// ErrInvalidContainer indicates container metadata that is truncated
	// or inconsistent with itself.
	ErrInvalidContainer = errors.New("invalid container")
)

func corruptTreef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorruptTree, fmt.Sprintf(format, args...))
}

func corruptStreamf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorruptStream, fmt.Sprintf(format, args...))
}

func invalidContainerf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidContainer, fmt.Sprintf(format, args...))
}

func ioFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrIOFailure, op, err)
}
