package modpow

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"modpowgo/internal/core"
)

// contextSize is the encoded size of a Context: n, 2^64 mod n, n^-1 mod 2^64.
const contextSize = 24

// Residue is a value in Montgomery form under some Context. It only has
// meaning for the Context that produced it and may be unreduced; convert it
// back with Context.FromMontgomery before comparing or storing it.
type Residue = core.Residue

// Context carries the precomputed Montgomery constants for one odd modulus.
// Building it costs one division and one inverse; reuse it for every
// exponentiation under the same modulus. A Context is immutable and safe
// for concurrent use.
type Context struct {
	c core.Context
}

// NewContext builds the Montgomery context for odd n >= 3.
func NewContext(n uint64) (*Context, error) {
	if n < 2 {
		return nil, errors.Wrapf(ErrInvalidModulus, "context for %d", n)
	}
	c, ok := core.NewContext(n)
	if !ok {
		return nil, errors.Wrapf(ErrEvenModulus, "context for %d", n)
	}
	return &Context{c: c}, nil
}

// Modulus returns n.
func (c *Context) Modulus() uint64 { return c.c.N }

// RModN returns 2^64 mod n.
func (c *Context) RModN() uint64 { return c.c.RModN }

// NInv returns n^-1 mod 2^64.
func (c *Context) NInv() uint64 { return c.c.NInv }

// Exp returns a^e mod n.
func (c *Context) Exp(a, e uint64) uint64 {
	return core.PowModContext(c.c, a, e)
}

// Mul returns a*b mod n through a single Montgomery product.
func (c *Context) Mul(a, b uint64) uint64 {
	// (aR * b) R^-1 = ab, so only one operand needs converting.
	return uint64(c.c.Mul(c.c.ToMontgomery(a), core.Residue(b)).Reduce(c.c.N))
}

// ToMontgomery converts a into Montgomery form.
func (c *Context) ToMontgomery(a uint64) Residue {
	return c.c.ToMontgomery(a)
}

// FromMontgomery converts ar back into a value in [0, n).
func (c *Context) FromMontgomery(ar Residue) uint64 {
	return c.c.FromMontgomery(ar)
}

// MontMul multiplies two residues. The result may exceed n.
func (c *Context) MontMul(ar, br Residue) Residue {
	return c.c.Mul(ar, br)
}

// MontExp raises a residue to e, staying in Montgomery form.
func (c *Context) MontExp(ar Residue, e uint64) Residue {
	return c.c.Pow(ar, e)
}

// String provides a string representation.
func (c *Context) String() string {
	return c.c.String()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Context) MarshalBinary() ([]byte, error) {
	buf := make([]byte, contextSize)
	binary.LittleEndian.PutUint64(buf[0:8], c.c.N)
	binary.LittleEndian.PutUint64(buf[8:16], c.c.RModN)
	binary.LittleEndian.PutUint64(buf[16:24], c.c.NInv)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The decoded
// constants are checked against the modulus.
func (c *Context) UnmarshalBinary(data []byte) error {
	if len(data) < contextSize {
		return io.ErrUnexpectedEOF
	}
	dec := core.Context{
		N:     binary.LittleEndian.Uint64(data[0:8]),
		RModN: binary.LittleEndian.Uint64(data[8:16]),
		NInv:  binary.LittleEndian.Uint64(data[16:24]),
	}
	if !dec.Valid() {
		return errors.Errorf("inconsistent montgomery context %v", dec)
	}
	c.c = dec
	return nil
}

// ContextCache memoizes Contexts by modulus. It is a plain map and is not
// safe for concurrent use; give each goroutine its own cache.
type ContextCache struct {
	contexts map[uint64]*Context
}

// NewContextCache creates an empty cache.
func NewContextCache() *ContextCache {
	return &ContextCache{contexts: make(map[uint64]*Context)}
}

// Get returns the cached context for n, building it on first use.
func (cc *ContextCache) Get(n uint64) (*Context, error) {
	if c, ok := cc.contexts[n]; ok {
		return c, nil
	}
	c, err := NewContext(n)
	if err != nil {
		return nil, err
	}
	if cc.contexts == nil {
		cc.contexts = make(map[uint64]*Context)
	}
	cc.contexts[n] = c
	return c, nil
}

// Exp returns a^e mod n, reusing the cached context when n is odd.
func (cc *ContextCache) Exp(a, e, n uint64) uint64 {
	if n < 2 || n&1 == 0 {
		return core.PowMod(a, e, n)
	}
	c, err := cc.Get(n)
	if err != nil {
		return 0
	}
	return c.Exp(a, e)
}

// Len returns the number of cached moduli.
func (cc *ContextCache) Len() int {
	return len(cc.contexts)
}

// Reset drops every cached context.
func (cc *ContextCache) Reset() {
	cc.contexts = make(map[uint64]*Context)
}
