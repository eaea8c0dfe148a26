// Copyright 2025 FTRL-ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn exposes the trainable-parameter type the optimizers work on.
package nn

import (
	"github.com/ftrl-ml/ftrl/internal/nn"
	"github.com/ftrl-ml/ftrl/internal/tensor"
)

// Parameter represents a named trainable tensor with a gradient slot.
type Parameter = nn.Parameter

// NewParameter creates a new trainable parameter.
//
// Example:
//
//	weights, _ := tensor.Zeros(tensor.Shape{1000, 16}, tensor.Float32)
//	param := nn.NewParameter("embedding.weight", weights)
func NewParameter(name string, value *tensor.RawTensor) *Parameter {
	return nn.NewParameter(name, value)
}
