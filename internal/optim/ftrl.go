package optim

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ftrl-ml/ftrl/internal/ftrl"
	"github.com/ftrl-ml/ftrl/internal/nn"
	"github.com/ftrl-ml/ftrl/internal/parallel"
	"github.com/ftrl-ml/ftrl/internal/tensor"
)

// FTRL implements the FTRL-Proximal optimizer.
//
// Every weight carries two accumulators (n, z): n sums squared gradients
// and drives a per-weight adaptive learning rate, z sums a regularized
// gradient term and drives a closed-form proximal update that zeroes
// weights exactly under L1 pressure. This makes FTRL the standard choice
// for large sparse linear models (ad click prediction and similar),
// where most learned weights should end up exactly zero.
//
// Update rule per weight:
//
//	n' = n + g²
//	z' = z + g − (√n' − √n)/α · w
//	w' = 0 if |z'| ≤ λ1, else (sign(z')·λ1 − z') / ((β + √n')/α + λ2)
//
// Reference: "Ad Click Prediction: a View from the Trenches"
// (McMahan et al., KDD 2013).
//
// Example:
//
//	optimizer, err := optim.NewFTRL(model.Parameters(), optim.FTRLConfig{
//	    Alpha:   0.1,
//	    Lambda1: 0.01,
//	})
//
//	for epoch := range epochs {
//	    grads := computeGradients(model, batch)
//	    if err := optimizer.Step(grads); err != nil { ... }
//	    optimizer.ZeroGrad()
//	}
type FTRL struct {
	params []*nn.Parameter
	cfg    ftrl.Config
	state  map[*nn.Parameter]*tensor.RawTensor // Interleaved (n, z) accumulators

	dense32  *ftrl.Dense[float32]
	dense64  *ftrl.Dense[float64]
	sparse32 *ftrl.Sparse[float32]
	sparse64 *ftrl.Sparse[float64]
}

// FTRLConfig holds configuration for the FTRL optimizer.
// A zero field selects the corresponding default.
type FTRLConfig struct {
	Alpha   float64 // Learning-rate scale (default: 0.005)
	Beta    float64 // Adaptive-rate smoothing (default: 1.0)
	Lambda1 float64 // L1 strength (default: 0.001)
	Lambda2 float64 // L2 strength (default: 0.001)
}

// NewFTRL creates a new FTRL optimizer.
//
// Hyperparameters are validated and captured once; accumulator state is
// allocated lazily, the first time each parameter receives a gradient.
func NewFTRL(params []*nn.Parameter, config FTRLConfig) (*FTRL, error) {
	// Set defaults
	if config.Alpha == 0 {
		config.Alpha = ftrl.DefaultAlpha
	}
	if config.Beta == 0 {
		config.Beta = ftrl.DefaultBeta
	}
	if config.Lambda1 == 0 {
		config.Lambda1 = ftrl.DefaultLambda1
	}
	if config.Lambda2 == 0 {
		config.Lambda2 = ftrl.DefaultLambda2
	}

	cfg := ftrl.Config{
		Alpha:   config.Alpha,
		Beta:    config.Beta,
		Lambda1: config.Lambda1,
		Lambda2: config.Lambda2,
	}
	par := parallel.DefaultConfig()

	dense32, err := ftrl.NewDense[float32](cfg, par)
	if err != nil {
		return nil, err
	}
	dense64, err := ftrl.NewDense[float64](cfg, par)
	if err != nil {
		return nil, err
	}
	sparse32, err := ftrl.NewSparse[float32](cfg, par)
	if err != nil {
		return nil, err
	}
	sparse64, err := ftrl.NewSparse[float64](cfg, par)
	if err != nil {
		return nil, err
	}

	return &FTRL{
		params:   params,
		cfg:      cfg,
		state:    make(map[*nn.Parameter]*tensor.RawTensor),
		dense32:  dense32,
		dense64:  dense64,
		sparse32: sparse32,
		sparse64: sparse64,
	}, nil
}

// Step performs one dense FTRL update on every parameter that has a
// gradient in grads. Parameters without a gradient are skipped.
func (f *FTRL) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error {
	for _, param := range f.params {
		grad := getGradient(param, grads)
		if grad == nil {
			// Parameter didn't participate in this step, skip
			continue
		}
		if err := f.stepDense(param, grad); err != nil {
			return errors.WithMessagef(err, "parameter %q", param.Name())
		}
	}
	return nil
}

// StepSparse updates only the embedding rows of param selected by
// indices. The parameter's first shape dimension is the row count;
// grad carries one row per index entry. Duplicate indices compose
// sequentially in array order.
func (f *FTRL) StepSparse(param *nn.Parameter, indices, grad *tensor.RawTensor) error {
	value := param.Value()
	if len(value.Shape()) == 0 {
		return errors.Wrapf(ftrl.ErrShape, "parameter %q is a scalar, sparse update needs rows", param.Name())
	}
	if grad.DType() != value.DType() {
		return errors.Wrapf(ftrl.ErrShape, "parameter %q gradient dtype %s, want %s",
			param.Name(), grad.DType(), value.DType())
	}
	rowCount := value.Shape()[0]
	st := f.stateFor(param)

	var err error
	switch value.DType() {
	case tensor.Float32:
		err = f.sparse32.Apply(value.AsFloat32(), st.AsFloat32(), indices, grad.AsFloat32(), rowCount)
	case tensor.Float64:
		err = f.sparse64.Apply(value.AsFloat64(), st.AsFloat64(), indices, grad.AsFloat64(), rowCount)
	default:
		err = errors.Wrapf(ftrl.ErrShape, "dtype %s is not a float type", value.DType())
	}
	return errors.WithMessagef(err, "parameter %q", param.Name())
}

func (f *FTRL) stepDense(param *nn.Parameter, grad *tensor.RawTensor) error {
	value := param.Value()
	if grad.DType() != value.DType() {
		return errors.Wrapf(ftrl.ErrShape, "gradient dtype %s, want %s", grad.DType(), value.DType())
	}
	st := f.stateFor(param)

	switch value.DType() {
	case tensor.Float32:
		return f.dense32.Apply(value.AsFloat32(), st.AsFloat32(), grad.AsFloat32())
	case tensor.Float64:
		return f.dense64.Apply(value.AsFloat64(), st.AsFloat64(), grad.AsFloat64())
	default:
		return errors.Wrapf(ftrl.ErrShape, "dtype %s is not a float type", value.DType())
	}
}

// stateFor returns the (n, z) accumulator tensor for param, allocating
// it zero-filled on first use (as Adam does for its moments).
func (f *FTRL) stateFor(param *nn.Parameter) *tensor.RawTensor {
	st, ok := f.state[param]
	if !ok {
		var err error
		st, err = tensor.Zeros(tensor.Shape{param.Value().NumElements(), 2}, param.Value().DType())
		if err != nil {
			panic(err) // Parameter shapes are validated at creation
		}
		f.state[param] = st
	}
	return st
}

// ZeroGrad clears gradients for all parameters.
func (f *FTRL) ZeroGrad() {
	for _, param := range f.params {
		param.ZeroGrad()
	}
}

// GetLR returns the learning-rate scale alpha.
//
// FTRL's effective per-weight rate is adaptive (driven by the n
// accumulator); alpha only scales it.
func (f *FTRL) GetLR() float64 {
	return f.cfg.Alpha
}

// StateDict returns the optimizer state for serialization.
//
// Exports one interleaved (n, z) accumulator tensor per parameter that
// has been stepped at least once.
//
// State keys: "n_z.{param_index}" -> accumulator tensor.
func (f *FTRL) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for i, param := range f.params {
		st, ok := f.state[param]
		if !ok {
			continue // Never stepped, nothing to save
		}
		key := fmt.Sprintf("n_z.%d", i)
		stateDict[key] = st
	}
	return stateDict
}

// LoadStateDict restores accumulator state from serialization.
//
// Parameters without an entry keep lazily-initialized zero state.
// Returns an error if an accumulator's size doesn't match its parameter.
func (f *FTRL) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	f.state = make(map[*nn.Parameter]*tensor.RawTensor)

	for i, param := range f.params {
		key := fmt.Sprintf("n_z.%d", i)
		st, ok := stateDict[key]
		if !ok {
			continue // Will be zero-initialized on first step
		}
		if st.NumElements() != 2*param.Value().NumElements() {
			return errors.Wrapf(ftrl.ErrShape,
				"accumulator for parameter %d has %d elements, want %d",
				i, st.NumElements(), 2*param.Value().NumElements())
		}
		if st.DType() != param.Value().DType() {
			return errors.Wrapf(ftrl.ErrShape,
				"accumulator for parameter %d has dtype %s, want %s",
				i, st.DType(), param.Value().DType())
		}
		f.state[param] = st
	}
	return nil
}
