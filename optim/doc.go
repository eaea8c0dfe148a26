// Copyright 2025 FTRL-ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the FTRL-Proximal optimizer for online learning.
//
// # Overview
//
// This package contains:
//   - FTRL: per-weight adaptive learning rates with closed-form L1/L2
//     regularization, in dense and sparse (embedding-row) variants
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/ftrl-ml/ftrl/nn"
//	    "github.com/ftrl-ml/ftrl/optim"
//	    "github.com/ftrl-ml/ftrl/tensor"
//	)
//
//	func main() {
//	    weights, _ := tensor.Zeros(tensor.Shape{numFeatures}, tensor.Float32)
//	    param := nn.NewParameter("weight", weights)
//
//	    optimizer, err := optim.NewFTRL(
//	        []*nn.Parameter{param},
//	        optim.FTRLConfig{
//	            Alpha:   0.005,
//	            Beta:    1.0,
//	            Lambda1: 0.001,
//	            Lambda2: 0.001,
//	        },
//	    )
//
//	    // Training loop
//	    for _, batch := range batches {
//	        grads := computeGradients(param, batch)
//	        if err := optimizer.Step(grads); err != nil {
//	            // handle
//	        }
//	        optimizer.ZeroGrad()
//	    }
//	}
//
// # Sparse Updates
//
// Embedding tables are updated row-wise: only the rows named by an index
// tensor are touched, and repeated indices compose sequentially in array
// order.
//
//	indices, _ := tensor.FromSlice([]int64{4, 17, 4}, tensor.Shape{3})
//	gradRows, _ := tensor.FromSlice(rowGrads, tensor.Shape{3, rowWidth})
//	err := optimizer.StepSparse(param, indices, gradRows)
//
// # Checkpointing
//
// The (n, z) accumulators are exported and restored through
// StateDict/LoadStateDict, keyed as "n_z.{param_index}".
package optim
