package util

import (
	"encoding/binary"
	"math/bits"
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
)

// InvalidSeed asks for a time-derived seed.
const InvalidSeed = ^uint64(0)

// RandomSeed generates a random seed.
func RandomSeed() uint64 {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Uint64()
}

// Sampler produces a reproducible stream of 64-bit values by hashing
// (seed, counter) with xxHash. The same seed always yields the same
// sequence, independent of platform and Go version. Not safe for
// concurrent use.
type Sampler struct {
	seed    uint64
	counter uint64
	buf     [16]byte
}

// NewSampler creates a sampler. InvalidSeed picks a random seed.
func NewSampler(seed uint64) *Sampler {
	if seed == InvalidSeed {
		seed = RandomSeed()
	}
	return &Sampler{seed: seed}
}

// Seed returns the seed the sampler was created with.
func (s *Sampler) Seed() uint64 {
	return s.seed
}

// Uint64 returns the next value of the stream.
func (s *Sampler) Uint64() uint64 {
	binary.LittleEndian.PutUint64(s.buf[0:8], s.seed)
	binary.LittleEndian.PutUint64(s.buf[8:16], s.counter)
	s.counter++
	return xxhash.Sum64(s.buf[:])
}

// Bits returns a value uniformly distributed in [0, 2^k). k > 64 is
// treated as 64.
func (s *Sampler) Bits(k uint) uint64 {
	if k == 0 {
		return 0
	}
	if k >= 64 {
		return s.Uint64()
	}
	return s.Uint64() >> (64 - k)
}

// Below returns a value in [0, n) using the multiply-shift range
// reduction. n == 0 returns 0.
func (s *Sampler) Below(n uint64) uint64 {
	hi, _ := bits.Mul64(s.Uint64(), n)
	return hi
}

// Modulus returns a modulus >= 2 whose bit length is drawn uniformly from
// [2, maxBits]. maxBits is clamped to [2, 64].
func (s *Sampler) Modulus(maxBits uint) uint64 {
	if maxBits < 2 {
		maxBits = 2
	}
	if maxBits > 64 {
		maxBits = 64
	}
	length := 2 + uint(s.Below(uint64(maxBits-1)))
	top := uint64(1) << (length - 1)
	return top | s.Bits(length-1)
}

// Triple is one sampled exponentiation problem.
type Triple struct {
	A, E, N uint64
}

// Triple samples n via Modulus(maxBits), a in [0, n) and e over the full
// 64-bit range with a random bit length, so small exponents show up too.
func (s *Sampler) Triple(maxBits uint) Triple {
	n := s.Modulus(maxBits)
	return Triple{
		A: s.Below(n),
		E: s.Bits(uint(s.Below(65))),
		N: n,
	}
}
