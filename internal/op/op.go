// Package op binds named tensors to the FTRL engines the way the host
// execution framework hands them over: a workspace of named blobs in, an
// update run in place or into designated output blobs, errors back.
package op

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/ftrl-ml/ftrl/internal/ftrl"
	"github.com/ftrl-ml/ftrl/internal/parallel"
	"github.com/ftrl-ml/ftrl/internal/tensor"
)

// Blob names forming the wire contract with the host framework.
const (
	BlobVar     = "VAR"     // Weights, float array
	BlobNZ      = "N_Z"     // Accumulator pairs, float array of size 2x weight count
	BlobIndices = "INDICES" // Row indices, int32 or int64 array (sparse mode only)
	BlobGrad    = "GRAD"    // Gradients, float array

	BlobOutputVar = "OUTPUT_VAR" // Updated weights
	BlobOutputNZ  = "OUTPUT_N_Z" // Updated accumulator pairs
)

// Argument names read at construction.
const (
	ArgAlpha   = "alpha"
	ArgBeta    = "beta"
	ArgLambda1 = "lambda1"
	ArgLambda2 = "lambda2"
)

// Blobs is a workspace of named tensors. Output entries may reference
// the same RawTensor as the corresponding input for in-place updates;
// absent output entries default to in-place.
type Blobs map[string]*tensor.RawTensor

func (b Blobs) input(name string) (*tensor.RawTensor, error) {
	t, ok := b[name]
	if !ok || t == nil {
		return nil, errors.Wrapf(ftrl.ErrShape, "missing input blob %s", name)
	}
	return t, nil
}

// Op is one FTRL operator instance. Hyperparameters are read once from
// the argument source at construction; each Run call then processes one
// workspace to completion, selecting the sparse path when an INDICES
// blob is present and the weight precision from VAR's dtype.
type Op struct {
	cfg ftrl.Config
	log *log.Entry

	dense32  *ftrl.Dense[float32]
	dense64  *ftrl.Dense[float64]
	sparse32 *ftrl.Sparse[float32]
	sparse64 *ftrl.Sparse[float64]
}

// New builds an operator from named arguments, falling back to the
// reference defaults for absent ones. Invalid hyperparameters fail here,
// never during Run.
func New(args ArgSource) (*Op, error) {
	cfg := ftrl.Config{
		Alpha:   args.Float(ArgAlpha, ftrl.DefaultAlpha),
		Beta:    args.Float(ArgBeta, ftrl.DefaultBeta),
		Lambda1: args.Float(ArgLambda1, ftrl.DefaultLambda1),
		Lambda2: args.Float(ArgLambda2, ftrl.DefaultLambda2),
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

	o := &Op{
		cfg:      cfg,
		log:      log.WithField("op", "ftrl"),
		dense32:  dense32,
		dense64:  dense64,
		sparse32: sparse32,
		sparse64: sparse64,
	}
	o.log.WithFields(log.Fields{
		"alpha":   cfg.Alpha,
		"beta":    cfg.Beta,
		"lambda1": cfg.Lambda1,
		"lambda2": cfg.Lambda2,
	}).Debug("constructed FTRL operator")
	return o, nil
}

// Config returns the operator's hyperparameters.
func (o *Op) Config() ftrl.Config {
	return o.cfg
}

// Run executes one update over the workspace. The call is synchronous
// and bounded; any returned error is fatal for the call and logged.
func (o *Op) Run(ws Blobs) error {
	if err := o.run(ws); err != nil {
		o.log.WithError(err).Error("FTRL update failed")
		return err
	}
	return nil
}

func (o *Op) run(ws Blobs) error {
	v, err := ws.input(BlobVar)
	if err != nil {
		return err
	}
	nz, err := ws.input(BlobNZ)
	if err != nil {
		return err
	}
	g, err := ws.input(BlobGrad)
	if err != nil {
		return err
	}
	indices := ws[BlobIndices] // Optional: presence selects the sparse path

	if v.DType() != tensor.Float32 && v.DType() != tensor.Float64 {
		return errors.Wrapf(ftrl.ErrShape, "%s dtype %s is not a float type", BlobVar, v.DType())
	}
	if nz.DType() != v.DType() {
		return errors.Wrapf(ftrl.ErrShape, "%s dtype %s, want %s", BlobNZ, nz.DType(), v.DType())
	}
	if g.DType() != v.DType() {
		return errors.Wrapf(ftrl.ErrShape, "%s dtype %s, want %s", BlobGrad, g.DType(), v.DType())
	}
	if nz.NumElements() != 2*v.NumElements() {
		return errors.Wrapf(ftrl.ErrShape, "%s has %d elements, want %d (2 per weight)",
			BlobNZ, nz.NumElements(), 2*v.NumElements())
	}

	outV, err := o.resolveOutput(ws, BlobOutputVar, v)
	if err != nil {
		return err
	}
	outNZ, err := o.resolveOutput(ws, BlobOutputNZ, nz)
	if err != nil {
		return err
	}

	if indices == nil {
		switch v.DType() {
		case tensor.Float32:
			return o.dense32.Apply(outV.AsFloat32(), outNZ.AsFloat32(), g.AsFloat32())
		default:
			return o.dense64.Apply(outV.AsFloat64(), outNZ.AsFloat64(), g.AsFloat64())
		}
	}

	if len(v.Shape()) == 0 {
		return errors.Wrapf(ftrl.ErrShape, "%s must have a leading row dimension for sparse updates", BlobVar)
	}
	rowCount := v.Shape()[0]
	switch v.DType() {
	case tensor.Float32:
		return o.sparse32.Apply(outV.AsFloat32(), outNZ.AsFloat32(), indices, g.AsFloat32(), rowCount)
	default:
		return o.sparse64.Apply(outV.AsFloat64(), outNZ.AsFloat64(), indices, g.AsFloat64(), rowCount)
	}
}

// resolveOutput maps an output blob onto its input: absent means update
// the input in place, aliased backing storage is used as is, and a
// distinct output buffer is seeded from the input first so the engines
// can work read-then-write on a single array.
func (o *Op) resolveOutput(ws Blobs, name string, in *tensor.RawTensor) (*tensor.RawTensor, error) {
	out := ws[name]
	if out == nil || out == in || out.SharesBuffer(in) {
		return in, nil
	}
	if err := out.CopyFrom(in); err != nil {
		return nil, errors.Wrapf(ftrl.ErrShape, "output blob %s: %v", name, err)
	}
	return out, nil
}
