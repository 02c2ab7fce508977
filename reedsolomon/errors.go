package reedsolomon

import "errors"

// Error kinds. Each is a closed sentinel value; callers use errors.Is to
// test for a kind even when a call site has wrapped it with additional
// context via github.com/pkg/errors.
var (
	// ErrInvalidParameters reports k<=0, m<=0, k+m>256, a block size that
	// is <=0 or not a multiple of 8, or k==0 on Decode.
	ErrInvalidParameters = errors.New("reedsolomon: invalid parameters")

	// ErrNullData reports a required input array or buffer that was nil.
	ErrNullData = errors.New("reedsolomon: required data absent")

	// ErrUninitializedContext reports use of a Coder that was not built
	// through New.
	ErrUninitializedContext = errors.New("reedsolomon: field context not initialized")

	// ErrInsufficientBlocks reports fewer than k present blocks, or fewer
	// present recovery blocks than there are missing data blocks.
	ErrInsufficientBlocks = errors.New("reedsolomon: insufficient blocks for operation")

	// ErrMatrixOperation reports a singular submatrix during decode; this
	// should not occur for well-formed Cauchy-derived inputs and signals
	// corruption or a bug upstream.
	ErrMatrixOperation = errors.New("reedsolomon: matrix operation failed")

	// ErrBlockBuffer reports no empty slot available to place a
	// reconstructed block, or recovery data unexpectedly absent.
	ErrBlockBuffer = errors.New("reedsolomon: no block buffer slot available")
)
