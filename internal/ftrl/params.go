// Package ftrl implements the FTRL-Proximal per-weight update rule and the
// dense and sparse engines that drive it over weight vectors and embedding
// tables.
//
// FTRL-Proximal ("Follow The Regularized Leader") is an online-learning
// optimizer that keeps two accumulators per weight: n, the running sum of
// squared gradients, and z, the running sum of a regularized gradient term.
// Each step solves the L1/L2-regularized proximal problem in closed form,
// which zeroes weights exactly when |z| falls under the L1 threshold.
//
// Reference: "Ad Click Prediction: a View from the Trenches"
// (McMahan et al., KDD 2013).
package ftrl

import (
	"math"

	"github.com/pkg/errors"
)

// Float is a constraint for the weight element types the engines support.
type Float interface {
	~float32 | ~float64
}

// Default hyperparameter values, applied by callers reading named
// configuration when an argument is absent.
const (
	DefaultAlpha   = 0.005
	DefaultBeta    = 1.0
	DefaultLambda1 = 0.001
	DefaultLambda2 = 0.001
)

// Config holds the FTRL hyperparameters in the form callers supply them.
type Config struct {
	Alpha   float64 // Learning-rate scale, must be > 0.
	Beta    float64 // Smoothing term in the adaptive denominator, >= 0.
	Lambda1 float64 // L1 regularization strength, >= 0.
	Lambda2 float64 // L2 regularization strength, >= 0.
}

// DefaultConfig returns the reference hyperparameters
// {alpha: 0.005, beta: 1.0, lambda1: 0.001, lambda2: 0.001}.
func DefaultConfig() Config {
	return Config{
		Alpha:   DefaultAlpha,
		Beta:    DefaultBeta,
		Lambda1: DefaultLambda1,
		Lambda2: DefaultLambda2,
	}
}

// Validate checks the hyperparameters. Violations are configuration
// errors surfaced at construction, never checked again per element.
func (c Config) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"alpha", c.Alpha},
		{"beta", c.Beta},
		{"lambda1", c.Lambda1},
		{"lambda2", c.Lambda2},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.Wrapf(ErrConfig, "%s must be finite, got %v", f.name, f.value)
		}
	}
	if c.Alpha <= 0 {
		return errors.Wrapf(ErrConfig, "alpha must be > 0, got %v", c.Alpha)
	}
	if c.Beta < 0 {
		return errors.Wrapf(ErrConfig, "beta must be >= 0, got %v", c.Beta)
	}
	if c.Lambda1 < 0 {
		return errors.Wrapf(ErrConfig, "lambda1 must be >= 0, got %v", c.Lambda1)
	}
	if c.Lambda2 < 0 {
		return errors.Wrapf(ErrConfig, "lambda2 must be >= 0, got %v", c.Lambda2)
	}
	return nil
}

// Params is the immutable per-engine hyperparameter block, stored in the
// same precision as the weight vector. Alpha is kept inverted so the hot
// per-element path multiplies instead of divides.
type Params[T Float] struct {
	AlphaInv T // 1/alpha
	Beta     T
	Lambda1  T
	Lambda2  T
}

// NewParams validates cfg and converts it to the working precision T.
func NewParams[T Float](cfg Config) (Params[T], error) {
	if err := cfg.Validate(); err != nil {
		return Params[T]{}, err
	}
	return Params[T]{
		AlphaInv: T(1.0 / cfg.Alpha),
		Beta:     T(cfg.Beta),
		Lambda1:  T(cfg.Lambda1),
		Lambda2:  T(cfg.Lambda2),
	}, nil
}
