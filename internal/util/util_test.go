package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestSamplerDeterministic(t *testing.T) {
	a, b := NewSampler(99), NewSampler(99)
	for i := 0; i < 100; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("step %d: %d != %d for the same seed", i, x, y)
		}
	}
	if NewSampler(1).Uint64() == NewSampler(2).Uint64() {
		t.Errorf("different seeds produced the same first value")
	}
	if s := NewSampler(InvalidSeed); s.Seed() == InvalidSeed {
		t.Errorf("InvalidSeed was not replaced")
	}
}

func TestSamplerRanges(t *testing.T) {
	s := NewSampler(3)
	for i := 0; i < 10000; i++ {
		if v := s.Bits(10); v >= 1<<10 {
			t.Fatalf("Bits(10) = %d", v)
		}
		if v := s.Below(1000); v >= 1000 {
			t.Fatalf("Below(1000) = %d", v)
		}
		n := s.Modulus(20)
		if n < 2 || n >= 1<<20 {
			t.Fatalf("Modulus(20) = %d", n)
		}
		tr := s.Triple(64)
		if tr.N < 2 || tr.A >= tr.N {
			t.Fatalf("bad triple %+v", tr)
		}
	}
	if s.Bits(0) != 0 || s.Below(0) != 0 {
		t.Errorf("degenerate ranges must yield 0")
	}
	if n := s.Modulus(0); n < 2 || n > 3 {
		t.Errorf("Modulus(0) = %d, want a 2-bit modulus", n)
	}
}

func TestSamplerModulusCoversAllLengths(t *testing.T) {
	s := NewSampler(4)
	seen := make(map[int]bool)
	for i := 0; i < 20000; i++ {
		n := s.Modulus(64)
		length := 64
		for n>>(length-1) == 0 {
			length--
		}
		seen[length] = true
	}
	for l := 2; l <= 64; l++ {
		if !seen[l] {
			t.Errorf("bit length %d never sampled", l)
		}
	}
}

func TestProgressLogger(t *testing.T) {
	var buf bytes.Buffer
	pl := NewProgressLogger(&buf, 100, "check: ", true)
	for i := 0; i < 100; i++ {
		pl.Add(1)
	}
	if pl.Logged() != 100 {
		t.Errorf("Logged() = %d, want 100", pl.Logged())
	}
	pl.Finalize()
	out := buf.String()
	if !strings.Contains(out, "check: 50%") || !strings.Contains(out, "check: 100%") {
		t.Errorf("unexpected progress output %q", out)
	}
	if !strings.HasSuffix(out, "s)\n") {
		t.Errorf("final line missing elapsed time: %q", out)
	}

	buf.Reset()
	quiet := NewProgressLogger(&buf, 10, "x", false)
	quiet.Add(10)
	quiet.Finalize()
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}
