package tensor

import "fmt"

func errSizeMismatch(got, want int) error {
	return fmt.Errorf("data length %d does not match shape element count %d", got, want)
}

// Zeros creates a zero-filled tensor with the given shape and type.
//
// Example:
//
//	t, err := tensor.Zeros(Shape{3, 4}, tensor.Float32)
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	// Buffers from NewRaw are already zero-initialized by make().
	return NewRaw(shape, dtype)
}

// FromSlice creates a tensor from a Go slice, copying the data.
// The slice length must match the shape's element count.
//
// Example:
//
//	t, err := tensor.FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	if len(data) != raw.NumElements() {
		return nil, errSizeMismatch(len(data), raw.NumElements())
	}

	copy(viewOf[T](raw), data)
	return raw, nil
}

// viewOf returns the typed view matching T's dtype.
func viewOf[T DType](r *RawTensor) []T {
	var dummy T
	switch inferDataType(dummy) {
	case Float32:
		return any(r.AsFloat32()).([]T)
	case Float64:
		return any(r.AsFloat64()).([]T)
	case Int32:
		return any(r.AsInt32()).([]T)
	case Int64:
		return any(r.AsInt64()).([]T)
	default:
		panic("unsupported type")
	}
}
