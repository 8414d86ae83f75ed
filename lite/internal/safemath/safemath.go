// Package safemath provides overflow-checked arithmetic for the handful of
// additions and multiplications the light client core performs on heights
// and voting power. None of these may silently wrap: a wrapped
// height or a wrapped voting-power product could make a forged transition
// look valid.
package safemath

// AddUint64 returns a+b, or ok=false if the addition overflows.
func AddUint64(a, b uint64) (sum uint64, ok bool) {
	sum = a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// MulUint64 returns a*b, or ok=false if the multiplication overflows.
func MulUint64(a, b uint64) (product uint64, ok bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product = a * b
	if product/a != b {
		return 0, false
	}
	return product, true
}
