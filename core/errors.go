package core

import "errors"

var (
	// ErrFormat is returned when the input is not a raw (P6) pixel map or its
	// header cannot be parsed.
	ErrFormat = errors.New("not a raw P6 pixel map")

	// ErrTruncatedInput is returned when fewer pixel bytes are present than the
	// header declares.
	ErrTruncatedInput = errors.New("pixel data truncated")

	// ErrNoBlocks is returned when the image is smaller than a single block.
	ErrNoBlocks = errors.New("image has no complete blocks")

	ErrInvalidBlockSize = errors.New("block size must be positive")
)
