package ftrl

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustParams builds a validated block or fails the test.
func mustParams[T Float](t *testing.T, cfg Config) Params[T] {
	t.Helper()
	p, err := NewParams[T](cfg)
	require.NoError(t, err)
	return p
}

// TestUpdate_WorkedExample checks the reference numbers:
// alpha=0.1, beta=1, lambda1=lambda2=0.01, starting from (w,n,z)=(0,0,0)
// with g=1 gives n'=1, z'=1, w' = -0.99/20.01.
func TestUpdate_WorkedExample(t *testing.T) {
	p := mustParams[float64](t, Config{Alpha: 0.1, Beta: 1, Lambda1: 0.01, Lambda2: 0.01})
	require.Equal(t, 10.0, float64(p.AlphaInv))

	w, n, z := Update[float64](0, 0, 0, 1.0, p)

	assert.Equal(t, 1.0, n)
	assert.Equal(t, 1.0, z)
	assert.InDelta(t, -0.99/20.01, w, 1e-12)
}

// TestUpdate_Deterministic verifies the kernel is a pure function of its
// inputs: repeated calls give identical bits.
func TestUpdate_Deterministic(t *testing.T) {
	p := mustParams[float32](t, DefaultConfig())

	w1, n1, z1 := Update[float32](0.25, 3.5, -1.25, 0.75, p)
	for i := 0; i < 10; i++ {
		w2, n2, z2 := Update[float32](0.25, 3.5, -1.25, 0.75, p)
		require.Equal(t, w1, w2)
		require.Equal(t, n1, n2)
		require.Equal(t, z1, z2)
	}
}

// TestUpdate_L1Boundary checks that |z'| == lambda1 exactly still zeroes
// the weight: the proximal solution only moves off zero strictly above
// the L1 threshold.
func TestUpdate_L1Boundary(t *testing.T) {
	p := mustParams[float64](t, Config{Alpha: 0.1, Beta: 1, Lambda1: 0.5, Lambda2: 0.01})

	// w=0 makes sigma*w vanish, so z' = z + g = 0.5 = lambda1 exactly.
	w, _, z := Update[float64](0, 0, 0, 0.5, p)
	require.Equal(t, 0.5, z)
	assert.Equal(t, 0.0, w)

	// Just above the threshold the weight moves off zero.
	w, _, z = Update[float64](0, 0, 0, 0.6, p)
	require.Greater(t, z, 0.5)
	assert.Negative(t, w)
}

// TestUpdate_ZeroGradient: g=0 leaves n in place and, from a clean
// accumulator, keeps the weight at zero.
func TestUpdate_ZeroGradient(t *testing.T) {
	p := mustParams[float64](t, DefaultConfig())

	w, n, z := Update[float64](0, 0, 0, 0, p)
	assert.Equal(t, 0.0, n)
	assert.Equal(t, 0.0, z)
	assert.Equal(t, 0.0, w)
}

// TestUpdate_NMonotonic: over any gradient sequence n never decreases
// and never goes negative.
func TestUpdate_NMonotonic(t *testing.T) {
	p := mustParams[float64](t, Config{Alpha: 0.05, Beta: 1, Lambda1: 0.1, Lambda2: 0.1})
	rng := rand.New(rand.NewSource(7))

	var w, n, z float64
	for i := 0; i < 1000; i++ {
		g := rng.NormFloat64()
		prev := n
		w, n, z = Update(w, n, z, g, p)
		require.GreaterOrEqual(t, n, prev)
		require.GreaterOrEqual(t, n, 0.0)
	}
}

// TestUpdate_Float32 runs the kernel in single precision; the result
// must track the float64 path within float32 tolerance.
func TestUpdate_Float32(t *testing.T) {
	cfg := Config{Alpha: 0.1, Beta: 1, Lambda1: 0.01, Lambda2: 0.01}
	p32 := mustParams[float32](t, cfg)
	p64 := mustParams[float64](t, cfg)

	w32, n32, z32 := Update[float32](0, 0, 0, 1.0, p32)
	w64, n64, z64 := Update[float64](0, 0, 0, 1.0, p64)

	assert.InDelta(t, n64, float64(n32), 1e-6)
	assert.InDelta(t, z64, float64(z32), 1e-6)
	assert.InDelta(t, w64, float64(w32), 1e-6)
}

func TestSign(t *testing.T) {
	assert.Equal(t, float64(1), sign(3.0))
	assert.Equal(t, float64(-1), sign(-0.5))
	assert.Equal(t, float64(0), sign(0.0))
}
