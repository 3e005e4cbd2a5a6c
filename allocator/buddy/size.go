package buddy

import "math/bits"

// IsPowerOfTwo reports whether x is a positive power of two.
func IsPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}

// nextPowerOfTwo returns the smallest power of two >= x, for x >= 1.
func nextPowerOfTwo(x int) int {
	if IsPowerOfTwo(x) {
		return x
	}
	return 1 << bits.Len(uint(x))
}

// BestSize computes the block size to reserve for a request of count units:
// the smallest power of two >= count, clamped into [minBlock, maxBlock].
// It reports false when no legal block can hold the request, i.e. when
// count is not positive or exceeds maxBlock. Pure policy, no tree access;
// this is the single gate evaluated before any tree mutation.
func BestSize(count, minBlock, maxBlock int) (int, bool) {
	if count <= 0 {
		return 0, false
	}
	size := nextPowerOfTwo(count)
	if size < minBlock {
		size = minBlock
	}
	if size > maxBlock {
		size = maxBlock
	}
	if size < count {
		return 0, false
	}
	return size, true
}
