// Package optim implements parameter-level optimization on top of the
// FTRL engines.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - FTRL: Follow-The-Regularized-Leader-Proximal with per-weight
//     adaptive learning rates and closed-form L1/L2 regularization
//
// Example usage:
//
//	// Create optimizer
//	optimizer, err := optim.NewFTRL(model.Parameters(), optim.FTRLConfig{
//	    Alpha: 0.005,
//	})
//
//	// Training loop
//	for epoch := range epochs {
//	    grads := computeGradients(model, data)
//	    if err := optimizer.Step(grads); err != nil { ... }
//	    optimizer.ZeroGrad()
//	}
package optim

import (
	"github.com/ftrl-ml/ftrl/internal/nn"
	"github.com/ftrl-ml/ftrl/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update model parameters in place from computed gradients.
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Takes a map from a parameter's raw tensor to its gradient tensor.
	// Parameters without an entry are skipped. A shape or dtype mismatch
	// between a parameter and its gradient fails the step.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor) error

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called after each step to prevent stale gradients
	// from leaking into the next iteration.
	ZeroGrad()

	// GetLR returns the optimizer's learning-rate scale
	// (for monitoring/scheduling).
	GetLR() float64
}

// getGradient safely retrieves the gradient for a parameter.
//
// Returns nil if no gradient is found (parameter wasn't part of this step).
func getGradient(param *nn.Parameter, grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Value()]
}
