package core

import (
	"math"
	"math/bits"
)

// GenPow returns a^e mod n by plain square-and-multiply, without Montgomery
// setup. It works for any n, odd or even.
//
// n < 2 returns 0. a < 2 returns a without consulting e, so GenPow(0, 0, n)
// is 0.
func GenPow(a, e, n uint64) uint64 {
	if n < 2 {
		return 0
	}
	if a < 2 {
		return a
	}
	if n <= math.MaxUint32 {
		return genPow32(a, e, n)
	}
	return genPow64(a%n, e, n)
}

// genPow32 handles n < 2^32, where every product of reduced operands fits in
// 64 bits and can be reduced with a precomputed fastmod constant.
func genPow32(a, e, n uint64) uint64 {
	r := NewReducer(n)
	res := uint64(1)
	sq := r.Reduce(a)
	for {
		if e&1 != 0 {
			res = r.Reduce(res * sq)
		}
		e >>= 1
		if e == 0 {
			break
		}
		sq = r.Reduce(sq * sq)
	}
	return res
}

// genPow64 uses a 128-bit product for each multiply-then-reduce step.
// a must already be reduced mod n.
func genPow64(a, e, n uint64) uint64 {
	res := uint64(1)
	sq := a
	for {
		if e&1 != 0 {
			res = mulModReduced(res, sq, n)
		}
		e >>= 1
		if e == 0 {
			break
		}
		sq = mulModReduced(sq, sq, n)
	}
	return res
}

// MulMod returns a*b mod n using a 128-bit intermediate product.
// n must be non-zero.
func MulMod(a, b, n uint64) uint64 {
	return mulModReduced(a%n, b%n, n)
}

// mulModReduced requires a, b < n so that the high word of the product is
// below n, as bits.Div64 demands.
func mulModReduced(a, b, n uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, n)
	return rem
}
