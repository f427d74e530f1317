package spritesmith

import "errors"

// Sentinel errors returned by the compositing and extraction pipelines.
// All failures are deterministic and data-dependent; none are retryable.
// Returned errors wrap one of these values, so callers match with
// errors.Is rather than comparing messages.
var (
	// ErrEmptyInput indicates an operation that requires at least one
	// frame or instruction received none.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidArgument indicates a numeric parameter outside its
	// documented range (alpha outside [0,1], scale < 1, block size < 1).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates a missing or unreadable source directory,
	// file, or event name.
	ErrNotFound = errors.New("not found")

	// ErrNoRegionFound indicates a connected-component selection asked
	// for a rank that does not exist (e.g. second largest of one region).
	ErrNoRegionFound = errors.New("no region found")

	// ErrEmptyFrame indicates Render was called while the first committed
	// frame has no draw instructions, so no canvas size can be established.
	ErrEmptyFrame = errors.New("empty frame")
)
