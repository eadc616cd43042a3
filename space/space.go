// Package space defines the coordinate scalar type used by extents and
// the per-type constants the sweep needs to widen endpoints in superset
// mode.
//
// The four instantiations mirror the original SPACE_TYPE_SELECT values
// (int32, int64, float32, float64): a build of this algorithm commits to
// exactly one of them via the type parameter, the same way the C source
// committed to one via a preprocessor selector.
package space

import "math"

// Value is the set of scalar types a coordinate may use.
type Value interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// flt32MinBits is the bit pattern of FLT_MIN: the smallest positive
// *normal* float32, written by hand (not math.SmallestNonzeroFloat32, which is the smallest *subnormal*
// value, about seven orders of magnitude smaller).
const flt32MinBits uint32 = 0x00800000

// Min returns the minimum representable value of T.
//
// For the floating-point instantiations this intentionally returns
// FLT_MIN (the smallest positive normal float32), not the true negative
// bound, and not math.SmallestNonzeroFloat32/64 (the smallest subnormal
// value). That matches the original SPACE_TYPE_MIN header, which defines
// SPACE_TYPE_MIN == FLT_MIN for both its float and double selections
// rather than using DBL_MIN for double — so Min[float64]() deliberately
// returns the same ~1.175494e-38 value as Min[float32](), not
// the true float64 smallest normal. This means superset widening
// misbehaves near the true lower bound of the float range. See
// DESIGN.md's Open Question decisions: this is preserved as-is rather
// than "fixed", per spec.
func Min[T Value]() T {
	var zero T
	switch any(zero).(type) {
	case int32:
		return T(math.MinInt32)
	case int64:
		v := int64(math.MinInt64)
		return T(v)
	case float32:
		return T(math.Float32frombits(flt32MinBits))
	case float64:
		return T(float64(math.Float32frombits(flt32MinBits)))
	default:
		return zero
	}
}

// Max returns the maximum representable value of T.
func Max[T Value]() T {
	var zero T
	switch any(zero).(type) {
	case int32:
		return T(math.MaxInt32)
	case int64:
		v := int64(math.MaxInt64)
		return T(v)
	case float32:
		v := float32(math.MaxFloat32)
		return T(v)
	case float64:
		v := float64(math.MaxFloat64)
		return T(v)
	default:
		return zero
	}
}

// Inc returns the minimum positive increment of T: 1 for the integer
// instantiations, the type's machine epsilon for the floating-point
// ones. This is a fixed per-type constant, not a per-value ULP computed
// with math.Nextafter — that's what the original SPACE_TYPE_INC is.
func Inc[T Value]() T {
	var zero T
	switch any(zero).(type) {
	case int32, int64:
		return T(1)
	case float32:
		v := float32(1.0 / (1 << 23))
		return T(v)
	case float64:
		v := float64(1.0 / (1 << 52))
		return T(v)
	default:
		return zero
	}
}
