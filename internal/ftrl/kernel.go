package ftrl

import "math"

// Update applies the closed-form FTRL-Proximal step to one coordinate.
//
// Given the current weight w, accumulators (n, z) and gradient g, it
// produces the updated triple:
//
//	n' = n + g²
//	σ  = (√n' − √n) / α
//	z' = z + g − σ·w
//	w' = 0                                     if |z'| ≤ λ1
//	w' = (sign(z')·λ1 − z') / ((β + √n')/α + λ2)  otherwise
//
// Update is a pure function: both the dense and the sparse engine call it
// so that updates of the same element are bit-for-bit consistent. The
// denominator is strictly positive for any hyperparameters accepted by
// NewParams, and n never decreases, so √ always sees a non-negative
// argument.
func Update[T Float](w, n, z, g T, p Params[T]) (nw, nn, nz T) {
	nn = n + g*g
	sigma := (sqrt(nn) - sqrt(n)) * p.AlphaInv
	nz = z + g - sigma*w

	if abs(nz) > p.Lambda1 {
		nw = (sign(nz)*p.Lambda1 - nz) / ((p.Beta+sqrt(nn))*p.AlphaInv + p.Lambda2)
	} else {
		nw = 0
	}
	return nw, nn, nz
}

func sqrt[T Float](x T) T {
	return T(math.Sqrt(float64(x)))
}

func abs[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func sign[T Float](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
