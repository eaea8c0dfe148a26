package ftrl

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ftrl-ml/ftrl/internal/parallel"
	"github.com/ftrl-ml/ftrl/internal/tensor"
)

// Sparse applies the FTRL-Proximal update only to the embedding rows
// named by an index tensor. Each index selects one fixed-width row of
// the weight vector; the gradient supplies one row per index entry.
//
// The per-element math is shared with Dense, so updating row r sparsely
// and updating the same elements densely produce identical results.
type Sparse[T Float] struct {
	params Params[T]
	par    parallel.Config
}

// NewSparse creates a sparse engine with validated, immutable
// hyperparameters.
func NewSparse[T Float](cfg Config, par parallel.Config) (*Sparse[T], error) {
	p, err := NewParams[T](cfg)
	if err != nil {
		return nil, err
	}
	return &Sparse[T]{params: p, par: par}, nil
}

// Params returns the engine's hyperparameter block.
func (s *Sparse[T]) Params() Params[T] {
	return s.params
}

// Apply updates the rows of w selected by indices, in place.
//
// w holds rowCount rows of width len(w)/rowCount; nz holds the
// interleaved (n, z) pair for every element of w; g holds one gradient
// row per index entry, in index order. The index tensor's element type
// must be int32 or int64; the two width variants share one generic row
// loop and differ only in index arithmetic.
//
// Duplicate indices are legal and compose sequentially in array order:
// each occurrence reads the row state left by the previous one. Distinct
// rows never overlap and are processed by parallel workers; occurrences
// of the same row are kept on one worker to preserve their order.
//
// An index outside [0, rowCount) fails the call with ErrIndexOutOfRange.
// The bound is checked per access, so rows updated before the bad index
// keep their new values; no unrelated row is ever touched.
func (s *Sparse[T]) Apply(w, nz []T, indices *tensor.RawTensor, g []T, rowCount int) error {
	if rowCount <= 0 {
		return errors.Wrapf(ErrShape, "row count must be > 0, got %d", rowCount)
	}
	if len(w)%rowCount != 0 {
		return errors.Wrapf(ErrShape, "weight length %d not divisible by row count %d", len(w), rowCount)
	}
	if len(nz) != 2*len(w) {
		return errors.Wrapf(ErrShape, "accumulator length %d, want %d (2 per weight)", len(nz), 2*len(w))
	}

	switch indices.DType() {
	case tensor.Int32:
		return applyRows(s, w, nz, indices.AsInt32(), g, rowCount)
	case tensor.Int64:
		return applyRows(s, w, nz, indices.AsInt64(), g, rowCount)
	default:
		return errors.Wrapf(ErrUnsupportedIndexType, "index dtype %s, want int32 or int64", indices.DType())
	}
}

// applyRows is the width-generic sparse driver: one dispatch per call in
// Apply selects I, everything below is identical for both index widths.
func applyRows[T Float, I int32 | int64](s *Sparse[T], w, nz []T, idx []I, g []T, rowCount int) error {
	rowWidth := len(w) / rowCount
	if len(g) != len(idx)*rowWidth {
		return errors.Wrapf(ErrShape, "gradient length %d, want %d (%d rows of width %d)",
			len(g), len(idx)*rowWidth, len(idx), rowWidth)
	}

	p := s.params
	updateRow := func(k int) error {
		row := int(idx[k])
		if row < 0 || row >= rowCount {
			return errors.Wrapf(ErrIndexOutOfRange, "index %d at position %d, row count %d", row, k, rowCount)
		}
		off := row * rowWidth
		goff := k * rowWidth
		for j := 0; j < rowWidth; j++ {
			e := off + j
			w[e], nz[2*e], nz[2*e+1] = Update(w[e], nz[2*e], nz[2*e+1], g[goff+j], p)
		}
		return nil
	}

	// Partition positions by row so duplicate occurrences of one row stay
	// on a single worker, in array order, while distinct rows fan out.
	groups := parallel.PartitionIndex(idx)

	var mu sync.Mutex
	var firstErr error
	parallel.For(len(groups), func(gi int) {
		for _, k := range groups[gi] {
			if err := updateRow(k); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
		}
	}, s.par)
	return firstErr
}
