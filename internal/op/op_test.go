package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftrl-ml/ftrl/internal/ftrl"
	"github.com/ftrl-ml/ftrl/internal/tensor"
)

func mustTensor[T tensor.DType](t *testing.T, data []T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return raw
}

func TestNew_Defaults(t *testing.T) {
	o, err := New(MapArgs{})
	require.NoError(t, err)

	assert.Equal(t, ftrl.DefaultConfig(), o.Config())
}

func TestNew_ArgsOverrideDefaults(t *testing.T) {
	o, err := New(MapArgs{"alpha": 0.1, "lambda1": 0.01})
	require.NoError(t, err)

	cfg := o.Config()
	assert.Equal(t, 0.1, cfg.Alpha)
	assert.Equal(t, ftrl.DefaultBeta, cfg.Beta)
	assert.Equal(t, 0.01, cfg.Lambda1)
	assert.Equal(t, ftrl.DefaultLambda2, cfg.Lambda2)
}

func TestNew_RejectsInvalidArgs(t *testing.T) {
	_, err := New(MapArgs{"alpha": -1.0})
	assert.ErrorIs(t, err, ftrl.ErrConfig)
}

// TestRun_DenseInPlace: without output blobs the op updates VAR and N_Z
// through their own storage.
func TestRun_DenseInPlace(t *testing.T) {
	o, err := New(MapArgs{"alpha": 0.1, "beta": 1, "lambda1": 0.01, "lambda2": 0.01})
	require.NoError(t, err)

	v := mustTensor(t, []float64{0}, tensor.Shape{1})
	nz := mustTensor(t, []float64{0, 0}, tensor.Shape{1, 2})
	g := mustTensor(t, []float64{1.0}, tensor.Shape{1})

	ws := Blobs{BlobVar: v, BlobNZ: nz, BlobGrad: g}
	require.NoError(t, o.Run(ws))

	assert.InDelta(t, -0.99/20.01, v.AsFloat64()[0], 1e-12)
	assert.Equal(t, []float64{1, 1}, nz.AsFloat64())
}

// TestRun_DenseSeparateOutputs: distinct output blobs receive the update
// and the inputs stay untouched.
func TestRun_DenseSeparateOutputs(t *testing.T) {
	o, err := New(MapArgs{"alpha": 0.1, "beta": 1, "lambda1": 0.01, "lambda2": 0.01})
	require.NoError(t, err)

	v := mustTensor(t, []float64{0}, tensor.Shape{1})
	nz := mustTensor(t, []float64{0, 0}, tensor.Shape{1, 2})
	g := mustTensor(t, []float64{1.0}, tensor.Shape{1})
	outV := v.Clone()
	outNZ := nz.Clone()

	ws := Blobs{
		BlobVar: v, BlobNZ: nz, BlobGrad: g,
		BlobOutputVar: outV, BlobOutputNZ: outNZ,
	}
	require.NoError(t, o.Run(ws))

	assert.Equal(t, []float64{0}, v.AsFloat64())
	assert.Equal(t, []float64{0, 0}, nz.AsFloat64())
	assert.InDelta(t, -0.99/20.01, outV.AsFloat64()[0], 1e-12)
	assert.Equal(t, []float64{1, 1}, outNZ.AsFloat64())
}

// TestRun_AliasedOutputs: output entries pointing at the input storage
// behave exactly like the in-place form.
func TestRun_AliasedOutputs(t *testing.T) {
	o, err := New(MapArgs{"alpha": 0.1, "beta": 1, "lambda1": 0.01, "lambda2": 0.01})
	require.NoError(t, err)

	v := mustTensor(t, []float64{0}, tensor.Shape{1})
	nz := mustTensor(t, []float64{0, 0}, tensor.Shape{1, 2})
	g := mustTensor(t, []float64{1.0}, tensor.Shape{1})

	ws := Blobs{
		BlobVar: v, BlobNZ: nz, BlobGrad: g,
		BlobOutputVar: v, BlobOutputNZ: nz,
	}
	require.NoError(t, o.Run(ws))

	assert.InDelta(t, -0.99/20.01, v.AsFloat64()[0], 1e-12)
}

// TestRun_SparseSelectedByIndices: the presence of INDICES switches to
// row-wise updates; rows not named stay untouched.
func TestRun_SparseSelectedByIndices(t *testing.T) {
	o, err := New(MapArgs{"alpha": 0.1, "beta": 1, "lambda1": 0.01, "lambda2": 0.01})
	require.NoError(t, err)

	const rows, width = 4, 2
	v := mustTensor(t, make([]float64, rows*width), tensor.Shape{rows, width})
	nz := mustTensor(t, make([]float64, 2*rows*width), tensor.Shape{rows * width, 2})
	idx := mustTensor(t, []int64{2}, tensor.Shape{1})
	g := mustTensor(t, []float64{1.0, 1.0}, tensor.Shape{1, width})

	ws := Blobs{BlobVar: v, BlobNZ: nz, BlobIndices: idx, BlobGrad: g}
	require.NoError(t, o.Run(ws))

	got := v.AsFloat64()
	for i := 0; i < rows*width; i++ {
		if i/width == 2 {
			assert.InDelta(t, -0.99/20.01, got[i], 1e-12)
		} else {
			assert.Zero(t, got[i])
		}
	}
}

func TestRun_Float32(t *testing.T) {
	o, err := New(MapArgs{"alpha": 0.1, "beta": 1, "lambda1": 0.01, "lambda2": 0.01})
	require.NoError(t, err)

	v := mustTensor(t, []float32{0}, tensor.Shape{1})
	nz := mustTensor(t, []float32{0, 0}, tensor.Shape{1, 2})
	g := mustTensor(t, []float32{1.0}, tensor.Shape{1})

	require.NoError(t, o.Run(Blobs{BlobVar: v, BlobNZ: nz, BlobGrad: g}))
	assert.InDelta(t, -0.99/20.01, float64(v.AsFloat32()[0]), 1e-6)
}

func TestRun_MissingBlob(t *testing.T) {
	o, err := New(MapArgs{})
	require.NoError(t, err)

	v := mustTensor(t, []float64{0}, tensor.Shape{1})
	err = o.Run(Blobs{BlobVar: v})
	assert.ErrorIs(t, err, ftrl.ErrShape)
}

func TestRun_DTypeMismatch(t *testing.T) {
	o, err := New(MapArgs{})
	require.NoError(t, err)

	v := mustTensor(t, []float64{0}, tensor.Shape{1})
	nz := mustTensor(t, []float32{0, 0}, tensor.Shape{1, 2})
	g := mustTensor(t, []float64{1.0}, tensor.Shape{1})

	err = o.Run(Blobs{BlobVar: v, BlobNZ: nz, BlobGrad: g})
	assert.ErrorIs(t, err, ftrl.ErrShape)
}

func TestRun_IntegerWeightsRejected(t *testing.T) {
	o, err := New(MapArgs{})
	require.NoError(t, err)

	v := mustTensor(t, []int32{0}, tensor.Shape{1})
	nz := mustTensor(t, []int32{0, 0}, tensor.Shape{1, 2})
	g := mustTensor(t, []int32{1}, tensor.Shape{1})

	err = o.Run(Blobs{BlobVar: v, BlobNZ: nz, BlobGrad: g})
	assert.ErrorIs(t, err, ftrl.ErrShape)
}

func TestRun_OutOfRangeIndexPropagates(t *testing.T) {
	o, err := New(MapArgs{})
	require.NoError(t, err)

	v := mustTensor(t, make([]float64, 4), tensor.Shape{4, 1})
	nz := mustTensor(t, make([]float64, 8), tensor.Shape{4, 2})
	idx := mustTensor(t, []int64{4}, tensor.Shape{1})
	g := mustTensor(t, []float64{1}, tensor.Shape{1, 1})

	err = o.Run(Blobs{BlobVar: v, BlobNZ: nz, BlobIndices: idx, BlobGrad: g})
	assert.ErrorIs(t, err, ftrl.ErrIndexOutOfRange)
}

func TestRun_UnsupportedIndexType(t *testing.T) {
	o, err := New(MapArgs{})
	require.NoError(t, err)

	v := mustTensor(t, make([]float64, 4), tensor.Shape{4, 1})
	nz := mustTensor(t, make([]float64, 8), tensor.Shape{4, 2})
	idx := mustTensor(t, []float32{0}, tensor.Shape{1})
	g := mustTensor(t, []float64{1}, tensor.Shape{1, 1})

	err = o.Run(Blobs{BlobVar: v, BlobNZ: nz, BlobIndices: idx, BlobGrad: g})
	assert.ErrorIs(t, err, ftrl.ErrUnsupportedIndexType)
}
