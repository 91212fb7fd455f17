// Package errs defines the sentinel error kinds shared across the voxel
// DAG storage engine, plus a context-wrapping helper in the style the
// rest of the module uses for every fallible operation.
package errs

import (
	"errors"
	"fmt"
)

// The seven kinds every fallible operation in this module reduces to.
// Callers match these with errors.Is; the wrapped message carries the
// specifics (which bucket, which level, which pool index).
var (
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrUnallocated    = errors.New("unallocated")
	ErrOutOfSpace     = errors.New("out of space")
	ErrBucketOverflow = errors.New("bucket overflow")
	ErrInvalidNode    = errors.New("invalid node")
	ErrImportError    = errors.New("import error")
	ErrEmptyDAG       = errors.New("empty dag")
)

// DAGError is a structured, wrapped error: a human-readable context
// string plus the sentinel kind it reduces to.
type DAGError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *DAGError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// Unwrap lets errors.Is/errors.As see through to the sentinel kind.
func (e *DAGError) Unwrap() error {
	return e.Cause
}

// Wrap attaches context to one of the sentinel kinds above. Wrapping a
// nil cause returns nil, so call sites can do:
//
//	return errs.Wrap("seek pool index 4096", errs.ErrOutOfBounds)
func Wrap(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &DAGError{Context: context, Cause: cause}
}

// Wrapf is Wrap with a formatted context string.
func Wrapf(cause error, format string, args ...any) error {
	return Wrap(fmt.Sprintf(format, args...), cause)
}
