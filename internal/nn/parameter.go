// Package nn provides the trainable-parameter type the optimizers operate on.
package nn

import (
	"github.com/ftrl-ml/ftrl/internal/tensor"
)

// Parameter represents a trainable parameter: a named weight tensor plus
// a gradient slot filled in by whatever computes gradients.
//
// Example:
//
//	weight := nn.NewParameter("embedding.weight", weightTensor)
//	weight.SetGrad(gradTensor)
type Parameter struct {
	name  string            // Parameter name (e.g., "weight", "bias")
	value *tensor.RawTensor // The parameter tensor
	grad  *tensor.RawTensor // Gradient tensor, nil until set
}

// NewParameter creates a new trainable parameter.
//
// The value tensor should be initialized before creating the Parameter;
// the gradient slot starts empty.
func NewParameter(name string, value *tensor.RawTensor) *Parameter {
	return &Parameter{
		name:  name,
		value: value,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter tensor.
func (p *Parameter) Value() *tensor.RawTensor {
	return p.value
}

// Grad returns the gradient tensor, or nil if none has been set.
func (p *Parameter) Grad() *tensor.RawTensor {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter) SetGrad(grad *tensor.RawTensor) {
	p.grad = grad
}

// ZeroGrad clears the gradient slot.
//
// This should be called before each training iteration to avoid
// reusing gradients from previous iterations.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
