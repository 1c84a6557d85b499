// Package core provides the 64-bit modular arithmetic kernels.
package core

import (
	"math/bits"
)

// M64 represents the 128-bit magic constant for 64-bit fastmod.
type M64 [2]uint64 // [0] is Low, [1] is High

// ComputeM64 computes the 128-bit magic number for 64-bit fast modulus.
// M = floor( ( (1<<128) - 1 ) / d ) + 1
// For d == 1 the constant wraps to zero, which still yields x % 1 == 0.
func ComputeM64(d uint64) M64 {
	if d == 0 {
		panic("division by zero")
	}
	// N = 2^128 - 1 = (N_h << 64) | N_l with N_h = N_l = 2^64 - 1.
	// Schoolbook division by d using two Div64 steps.
	qh := ^uint64(0) / d
	rh := ^uint64(0) - qh*d
	ql, _ := bits.Div64(rh, ^uint64(0), d)

	var m M64
	m[0], m[1] = bits.Add64(ql, 1, 0)
	m[1], _ = bits.Add64(qh, m[1], 0)
	return m
}

// mul128_u64 calculates the high 64 bits of (lowbits * d), where lowbits is 128-bit.
// lowbits = [low_hi << 64 | low_lo]
func mul128_u64(low_hi, low_lo, d uint64) uint64 {
	phh, phl := bits.Mul64(low_hi, d)
	plh, _ := bits.Mul64(low_lo, d)
	_, carry := bits.Add64(phl, plh, 0)
	res, _ := bits.Add64(phh, 0, carry)
	return res
}

// FastModU64 computes (a % d) given precomputed M (128-bit).
// Based on lemire/fastmod:
//
//	__uint128_t lowbits = M * a;
//	return mul128_u64(lowbits, d);
func FastModU64(a uint64, m M64, d uint64) uint64 {
	p1h, p1l := bits.Mul64(m[0], a)
	p0h := m[1] * a // only the low word of the high product survives the 128-bit truncation
	lowbits_hi := p1h + p0h
	return mul128_u64(lowbits_hi, p1l, d)
}

// Reducer reduces 64-bit values modulo a fixed divisor without issuing a
// hardware division per call.
type Reducer struct {
	d uint64
	m M64
}

// NewReducer precomputes the fastmod constant for d. d must be non-zero.
func NewReducer(d uint64) Reducer {
	return Reducer{d: d, m: ComputeM64(d)}
}

// Divisor returns the modulus the reducer was built for.
func (r Reducer) Divisor() uint64 {
	return r.d
}

// Reduce returns x % d.
func (r Reducer) Reduce(x uint64) uint64 {
	return FastModU64(x, r.m, r.d)
}
