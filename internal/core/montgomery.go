package core

import (
	"fmt"
	"math/bits"
)

// Residue is a value in Montgomery form, x*R mod n with R = 2^64.
// A Residue produced by MontMul is congruent to the product but may be
// >= n; it only becomes a plain value through FromMontgomery or Reduce.
type Residue uint64

// Reduce returns the canonical representative of r in [0, n).
func (r Residue) Reduce(n uint64) Residue {
	return r % Residue(n)
}

// Context holds the per-modulus constants of Montgomery arithmetic.
// The zero Context is invalid.
type Context struct {
	N     uint64 // odd modulus, N >= 3
	RModN uint64 // 2^64 mod N; also the Montgomery form of 1
	NInv  uint64 // N^-1 mod 2^64
}

// NewContext builds the Montgomery context for n. It reports false when
// n < 2 or n is even.
func NewContext(n uint64) (Context, bool) {
	if n < 2 || n&1 == 0 {
		return Context{}, false
	}
	return Context{N: n, RModN: twoTo64Mod(n), NInv: ModInverse2Pow64(n)}, true
}

// Valid reports whether c describes an odd modulus with consistent constants.
func (c Context) Valid() bool {
	if c.N < 2 || c.N&1 == 0 {
		return false
	}
	return c.N*c.NInv == 1 && c.RModN == twoTo64Mod(c.N)
}

// String provides a string representation.
func (c Context) String() string {
	return fmt.Sprintf("{N: %d, RModN: %d, NInv: 0x%016x}", c.N, c.RModN, c.NInv)
}

// ToMontgomery converts a into Montgomery form under c.
func (c Context) ToMontgomery(a uint64) Residue {
	return toMontgomery(a, c.N, c.RModN)
}

// FromMontgomery converts ar back into an ordinary value in [0, N).
func (c Context) FromMontgomery(ar Residue) uint64 {
	return FromMontgomery(ar, c.N, c.NInv, c.RModN)
}

// Mul returns the Montgomery product of ar and br under c.
func (c Context) Mul(ar, br Residue) Residue {
	return MontMul(ar, br, c.N, c.NInv, c.RModN)
}

// Pow returns ar^e in Montgomery form, reduced into [0, N).
func (c Context) Pow(ar Residue, e uint64) Residue {
	return MontPow(ar, e, c.N, c.NInv, c.RModN)
}

// twoTo64Mod returns 2^64 mod n for n > 0.
func twoTo64Mod(n uint64) uint64 {
	// 2^64 = (1 << 64 | 0); Div64 needs hi < n, so reduce the high word first.
	_, rem := bits.Div64(1%n, 0, n)
	return rem
}

func toMontgomery(a, n, rModN uint64) Residue {
	hi, lo := bits.Mul64(rModN, a)
	_, rem := bits.Div64(hi, lo, n)
	return Residue(rem)
}

// ToMontgomery converts a into Montgomery form mod odd n, returning 0 for
// n == 0 or even n. If rModN is non-nil it acts as a memo cell: a zero
// value is filled with 2^64 mod n, a non-zero value is trusted and used.
//
// Recommended usage when converting several values under one modulus:
//
//	var rModN uint64
//	ar := ToMontgomery(a, n, &rModN)
//	br := ToMontgomery(b, n, &rModN)
func ToMontgomery(a, n uint64, rModN *uint64) Residue {
	if n == 0 || n&1 == 0 {
		return 0
	}
	var r uint64
	switch {
	case rModN == nil:
		r = twoTo64Mod(n)
	case *rModN != 0:
		r = *rModN
	default:
		r = twoTo64Mod(n)
		*rModN = r
	}
	return toMontgomery(a, n, r)
}

// FromMontgomery converts ar out of Montgomery form mod odd n, where
// nInv = n^-1 mod 2^64 and rModN = 2^64 mod n. The result is in [0, n).
func FromMontgomery(ar Residue, n, nInv, rModN uint64) uint64 {
	if n == 0 {
		return 0
	}
	return uint64(redc(0, uint64(ar), n, nInv, rModN)) % n
}

// MontMul multiplies two residues mod odd n. The result is congruent to
// ar*br*2^-64 mod n and lies in [0, 2^64), but is not necessarily < n.
func MontMul(ar, br Residue, n, nInv, rModN uint64) Residue {
	hi, lo := bits.Mul64(uint64(ar), uint64(br))
	return redc(hi, lo, n, nInv, rModN)
}

// redc performs one Montgomery reduction of the 128-bit value (hi, lo).
// With m = -lo*nInv mod 2^64, (hi, lo) + m*n is divisible by 2^64. When that
// sum wraps past 2^128, the lost 2^128 contributes 2^64 == rModN to the
// quotient. The corrected quotient stays below 2^64 because the wrapped
// high word is below n and rModN <= 2^64 - n.
func redc(hi, lo, n, nInv, rModN uint64) Residue {
	m := lo * -nInv
	mnHi, mnLo := bits.Mul64(m, n)
	_, carry := bits.Add64(lo, mnLo, 0)
	sum, overflow := bits.Add64(hi, mnHi, carry)
	if overflow != 0 {
		sum += rModN
	}
	return Residue(sum)
}

// MontPow returns (a^e)*R mod n for odd n, where ar = a*R mod n. The result
// is fully reduced into [0, n). It returns 0 when n < 2 or n is even.
//
// ar == 0 is returned as is. Residue 1 is not a fixed point: it stands for
// R^-1, so only the zero residue short-circuits.
func MontPow(ar Residue, e, n, nInv, rModN uint64) Residue {
	if n < 2 || n&1 == 0 {
		return 0
	}
	if ar == 0 {
		return 0
	}
	res := Residue(rModN)
	sq := ar
	for {
		if e&1 != 0 {
			res = MontMul(res, sq, n, nInv, rModN)
		}
		e >>= 1
		if e == 0 {
			break
		}
		sq = MontMul(sq, sq, n, nInv, rModN)
	}
	return res.Reduce(n)
}
