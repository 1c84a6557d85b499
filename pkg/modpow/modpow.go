// Package modpow computes a^e mod n for 64-bit unsigned operands, over the
// whole uint64 range of n including even moduli, without math/big and
// without allocating.
//
// The plain functions signal invalid input through reserved return values:
// a modulus below 2 yields 0, and bases 0 and 1 are returned unchanged
// whatever the exponent (so Exp(0, 0, n) is 0). Use ExpChecked to tell an
// invalid modulus apart from a genuine zero result.
package modpow

import (
	"github.com/pkg/errors"

	"modpowgo/internal/core"
)

var (
	// ErrInvalidModulus is returned for moduli below 2.
	ErrInvalidModulus = errors.New("modulus must be at least 2")
	// ErrEvenModulus is returned where an odd modulus is required.
	ErrEvenModulus = errors.New("modulus must be odd")
)

// Exp returns a^e mod n. It returns 0 for n < 2.
func Exp(a, e, n uint64) uint64 {
	return core.PowMod(a, e, n)
}

// ExpOdd returns a^e mod n for odd n using Montgomery arithmetic. It
// returns 0 for n < 2 or even n.
func ExpOdd(a, e, n uint64) uint64 {
	return core.PowModOdd(a, e, n)
}

// GenExp returns a^e mod n by direct square-and-multiply, skipping the
// Montgomery setup. Cheaper than Exp for short exponents.
func GenExp(a, e, n uint64) uint64 {
	return core.GenPow(a, e, n)
}

// MulMod returns a*b mod n. It returns 0 for n == 0.
func MulMod(a, b, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return core.MulMod(a, b, n)
}

// ExpChecked is Exp with the modulus validated up front.
func ExpChecked(a, e, n uint64) (uint64, error) {
	if n < 2 {
		return 0, errors.Wrapf(ErrInvalidModulus, "exp(%d, %d, %d)", a, e, n)
	}
	return core.PowMod(a, e, n), nil
}

// ExpOddChecked is ExpOdd with the modulus validated up front.
func ExpOddChecked(a, e, n uint64) (uint64, error) {
	if n < 2 {
		return 0, errors.Wrapf(ErrInvalidModulus, "exp(%d, %d, %d)", a, e, n)
	}
	if n&1 == 0 {
		return 0, errors.Wrapf(ErrEvenModulus, "exp(%d, %d, %d)", a, e, n)
	}
	return core.PowModOdd(a, e, n), nil
}

// ModInverse2Pow64 returns n^-1 mod 2^64 for odd n, and 0 for even n.
func ModInverse2Pow64(n uint64) uint64 {
	return core.ModInverse2Pow64(n)
}
