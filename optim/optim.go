// Copyright 2025 FTRL-ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/ftrl-ml/ftrl/internal/nn"
	"github.com/ftrl-ml/ftrl/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// FTRL (Follow-The-Regularized-Leader-Proximal)

// FTRL represents the FTRL-Proximal optimizer.
type FTRL = optim.FTRL

// FTRLConfig contains configuration for the FTRL optimizer.
type FTRLConfig = optim.FTRLConfig

// NewFTRL creates a new FTRL optimizer.
//
// Example:
//
//	weights, _ := tensor.Zeros(tensor.Shape{1000, 16}, tensor.Float32)
//	param := nn.NewParameter("embedding.weight", weights)
//	optimizer, err := optim.NewFTRL(
//	    []*nn.Parameter{param},
//	    optim.FTRLConfig{
//	        Alpha:   0.1,
//	        Lambda1: 0.01,
//	    },
//	)
func NewFTRL(params []*nn.Parameter, config FTRLConfig) (*FTRL, error) {
	return optim.NewFTRL(params, config)
}
