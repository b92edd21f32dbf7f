// Package bitnum provides small generic numeric helpers shared by the
// bit-level readers in bitstream and pfr.
package bitnum

import "golang.org/x/exp/constraints"

// SignExtend treats the low width bits of v as a two's-complement integer
// and sign-extends the result to the full width of T.
func SignExtend[T constraints.Signed](v uint32, width uint) T {
	shift := 32 - width
	return T(int32(v<<shift) >> shift)
}

// Clamp restricts v to the inclusive range [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
