// Copyright 2025 FTRL-ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the typed array views the
// FTRL engines operate on.
//
// The package defines the core types for type-safe array handling:
//   - RawTensor: flat buffer plus shape and runtime type information
//   - Shape, DataType: core type definitions
//
// Example:
//
//	w, err := tensor.FromSlice([]float32{0, 0, 0}, tensor.Shape{3})
//	nz, err := tensor.Zeros(tensor.Shape{3, 2}, tensor.Float32)
package tensor

import (
	"github.com/ftrl-ml/ftrl/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// RawTensor is the low-level tensor representation.
type RawTensor = tensor.RawTensor

// NewRaw creates a new zero-initialized RawTensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// Zeros creates a zero-filled tensor with the given shape and type.
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.Zeros(shape, dtype)
}

// FromSlice creates a tensor from a Go slice, copying the data.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}
