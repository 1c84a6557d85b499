package core

// ModInverse2Pow64 returns x such that n*x == 1 (mod 2^64).
// n must be odd; for even n there is no inverse and 0 is returned.
func ModInverse2Pow64(n uint64) uint64 {
	if n&1 == 0 {
		return 0
	}
	// (3n) ^ 2 is correct to 5 bits. Each Newton step x = x*(2 - n*x)
	// doubles the number of correct low bits: 5, 10, 20, 40, 80.
	x := (3 * n) ^ 2
	x *= 2 - n*x
	x *= 2 - n*x
	x *= 2 - n*x
	x *= 2 - n*x
	return x
}

// ModInverse2Pow returns the inverse of odd n modulo 2^k, 1 <= k <= 64.
func ModInverse2Pow(n uint64, k uint) uint64 {
	if k >= 64 {
		return ModInverse2Pow64(n)
	}
	return ModInverse2Pow64(n) & (uint64(1)<<k - 1)
}
