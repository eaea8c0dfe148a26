package ftrl

import "github.com/pkg/errors"

// Sentinel errors for the failure classes the engines can report. All of
// them are programming or configuration errors: none is retried, and a
// call that returns one must be treated as failed by the host.
var (
	// ErrConfig reports an invalid hyperparameter at construction time.
	ErrConfig = errors.New("ftrl: invalid configuration")

	// ErrShape reports a weight/accumulator/gradient length mismatch,
	// detected before any element is written.
	ErrShape = errors.New("ftrl: shape mismatch")

	// ErrUnsupportedIndexType reports an index tensor whose element type
	// is neither int32 nor int64.
	ErrUnsupportedIndexType = errors.New("ftrl: unsupported index type")

	// ErrIndexOutOfRange reports a row index outside [0, rowCount),
	// detected per access during the sparse scan.
	ErrIndexOutOfRange = errors.New("ftrl: index out of range")
)
