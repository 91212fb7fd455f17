package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDAGError_Error(t *testing.T) {
	err := &DAGError{Context: "seeking pool index 9001", Cause: ErrOutOfBounds}
	require.Equal(t, "seeking pool index 9001: out of bounds", err.Error())
}

func TestWrap(t *testing.T) {
	require.Nil(t, Wrap("anything", nil))

	err := Wrap("page 3 lut entry", ErrUnallocated)
	require.NotNil(t, err)

	var dagErr *DAGError
	require.True(t, errors.As(err, &dagErr))
	require.Equal(t, "page 3 lut entry", dagErr.Context)
	require.True(t, errors.Is(err, ErrUnallocated))
}

func TestWrapf(t *testing.T) {
	err := Wrapf(ErrOutOfSpace, "allocate %d pages", 256)
	require.EqualError(t, err, "allocate 256 pages: out of space")
	require.True(t, errors.Is(err, ErrOutOfSpace))
}

func TestWrap_ChainedUnwrap(t *testing.T) {
	base := ErrInvalidNode
	wrapped := Wrap("validating leaf at depth 17", base)
	require.True(t, errors.Is(wrapped, ErrInvalidNode))
	require.Equal(t, base, errors.Unwrap(wrapped))
}

func TestSentinelsAreDistinct(t *testing.T) {
	kinds := []error{
		ErrOutOfBounds, ErrUnallocated, ErrOutOfSpace, ErrBucketOverflow,
		ErrInvalidNode, ErrImportError, ErrEmptyDAG,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				continue
			}
			require.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
