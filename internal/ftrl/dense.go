package ftrl

import (
	"github.com/pkg/errors"

	"github.com/ftrl-ml/ftrl/internal/parallel"
)

// Dense applies the FTRL-Proximal update to every element of a weight
// vector on every call.
//
// The accumulator slice nz is interleaved: nz[2i] holds n and nz[2i+1]
// holds z for weight i, so its length is exactly twice the weight count.
//
// Example:
//
//	engine, err := ftrl.NewDense[float32](ftrl.DefaultConfig(), parallel.DefaultConfig())
//	if err != nil { ... }
//	err = engine.Apply(weights, accumulators, grads)
type Dense[T Float] struct {
	params Params[T]
	par    parallel.Config
}

// NewDense creates a dense engine. The hyperparameters are validated and
// captured once; the engine is immutable and safe for concurrent use on
// disjoint weight vectors.
func NewDense[T Float](cfg Config, par parallel.Config) (*Dense[T], error) {
	p, err := NewParams[T](cfg)
	if err != nil {
		return nil, err
	}
	return &Dense[T]{params: p, par: par}, nil
}

// Params returns the engine's hyperparameter block.
func (d *Dense[T]) Params() Params[T] {
	return d.params
}

// Apply updates every weight in place from its gradient and accumulator
// pair. Lengths are validated before the first write, so a shape error
// leaves the inputs untouched. Elements are independent and may be
// processed by multiple workers; callers may pass the same backing
// storage they handed out as outputs elsewhere (read-then-write per
// element, no staging copy).
func (d *Dense[T]) Apply(w, nz, g []T) error {
	if len(nz) != 2*len(w) {
		return errors.Wrapf(ErrShape, "accumulator length %d, want %d (2 per weight)", len(nz), 2*len(w))
	}
	if len(g) != len(w) {
		return errors.Wrapf(ErrShape, "gradient length %d, want %d", len(g), len(w))
	}

	p := d.params
	parallel.For(len(w), func(i int) {
		w[i], nz[2*i], nz[2*i+1] = Update(w[i], nz[2*i], nz[2*i+1], g[i], p)
	}, d.par)
	return nil
}
