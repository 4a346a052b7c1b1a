package internal

import "errors"

// Error taxonomy. Each sentinel is wrapped with fmt.Errorf("%w: ...") at the
// call site to attach positional detail; callers branch on error class with
// errors.Is.
var (
	// ErrBadCoordinate is returned for a malformed coordinate string.
	ErrBadCoordinate = errors.New("bad coordinate")
	// ErrContent is returned for a malformed formula, a division by zero, a
	// textual operand used numerically, an unexpected character, or an
	// empty formula body.
	ErrContent = errors.New("content error")
	// ErrCircularDependency is returned when attaching a formula's
	// dependencies would introduce a cycle.
	ErrCircularDependency = errors.New("circular dependency")
	// ErrNoNumber is returned when a cell's value is requested as a number
	// but the cell is textual or empty.
	ErrNoNumber = errors.New("cell has no numeric value")
	// ErrIO is returned by the loader/saver shell for I/O failures.
	ErrIO = errors.New("io error")
	// ErrFormat is returned by the loader/saver shell for malformed files.
	ErrFormat = errors.New("format error")
)
