package core

import "math/bits"

// PowModOdd returns a^e mod n for odd n using Montgomery arithmetic: one
// division to establish 2^64 mod n, one inverse, and one final reduction.
//
// n < 2 or even n returns 0. a < 2 returns a without consulting e.
func PowModOdd(a, e, n uint64) uint64 {
	if n < 2 || n&1 == 0 {
		return 0
	}
	if a < 2 {
		return a
	}
	if e == 0 {
		return 1
	}
	var rModN uint64
	ar := ToMontgomery(a, n, &rModN)
	nInv := ModInverse2Pow64(n)
	res := MontPow(ar, e, n, nInv, rModN)
	return FromMontgomery(res, n, nInv, rModN)
}

// PowModContext is PowModOdd with the Montgomery constants supplied by the
// caller. c must come from NewContext.
func PowModContext(c Context, a, e uint64) uint64 {
	if a < 2 {
		return a
	}
	if e == 0 {
		return 1
	}
	return c.FromMontgomery(c.Pow(c.ToMontgomery(a), e))
}

// PowMod returns a^e mod n for any n.
//
// n < 2 returns 0. a < 2 returns a without consulting e, so PowMod(0, 0, n)
// is 0. Odd n goes straight to PowModOdd. Even n = 2^k * m with m odd is
// split into a^e mod m and a^e mod 2^k and recombined; k == 1, and k == 2
// with odd a, take closed-form shortcuts that agree with PowModGeneral.
func PowMod(a, e, n uint64) uint64 {
	if n < 2 {
		return 0
	}
	if a < 2 {
		return a
	}
	if n&1 != 0 {
		return PowModOdd(a, e, n)
	}
	if e == 0 {
		return 1
	}
	if half := n >> 1; half&1 != 0 {
		// a^e and a share parity for e >= 1. Adding the odd m flips parity.
		r := PowModOdd(a, e, half)
		return ((r-a)&1)*half + r
	}
	if quarter := n >> 2; quarter&1 != 0 && a&1 != 0 {
		r := PowModOdd(a, e, quarter)
		// a^e mod 4 is 3 when a == 3 (mod 4) and e is odd, 1 otherwise.
		mod4 := uint64(1)
		if a&3 == 3 && e&1 != 0 {
			mod4 = 3
		}
		// quarter is its own inverse mod 4.
		x := (quarter * (mod4 - r)) & 3
		return x*quarter + r
	}
	return powModEven(a, e, n)
}

// PowModGeneral is PowMod without the small power-of-two shortcuts: every
// even n goes through the general reconstruction.
func PowModGeneral(a, e, n uint64) uint64 {
	if n < 2 {
		return 0
	}
	if a < 2 {
		return a
	}
	if n&1 != 0 {
		return PowModOdd(a, e, n)
	}
	if e == 0 {
		return 1
	}
	return powModEven(a, e, n)
}

// powModEven reconstructs a^e mod n for even n = 2^k * m, e >= 1, from
// r1 = a^e mod m and r2 = a^e mod 2^k using a single inverse:
//
//	x = (r2 - r1) * m^-1 mod 2^k
//	a^e mod n = r1 + x*m
func powModEven(a, e, n uint64) uint64 {
	k := uint(bits.TrailingZeros64(n))
	m := n >> k
	pow2 := uint64(1) << k
	mask := pow2 - 1

	// The units mod 2^k have order dividing 2^(k-1).
	e2 := e
	if a&1 != 0 {
		e2 = e & (pow2/2 - 1)
	}
	r1 := PowModOdd(a, e, m) // 0 when m == 1
	r2 := GenPow(a&mask, e2, pow2)
	x := ((r2 - r1) * ModInverse2Pow64(m)) & mask
	return r1 + x*m
}
