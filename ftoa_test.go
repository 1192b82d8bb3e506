// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"math"
	"math/rand/v2"
	"strconv"
	"testing"
)

func TestFormatFloat64_layout(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{1, "1"},
		{-1, "-1"},
		{100, "100"},
		{0.5, "0.5"},
		{0.1, "0.1"},
		{123.456, "123.456"},
		{1e20, "1e20"},
		{1e21, "1e21"},
		{1e-5, "0.00001"},
		{1e-6, "1e-6"},
		{1e23, "1e23"},
		{2.2250738585072014e-308, "2.2250738585072014e-308"},
	}
	for _, test := range tests {
		got := FormatFloat64(test.v)
		if got != test.want {
			t.Errorf("FormatFloat64(%v) = %q, want %q", test.v, got, test.want)
		}
	}
}

// TestFormatFloat64_roundTrip checks that strconv.ParseFloat recovers the
// original bit pattern from our formatted output, for a battery of corner
// values plus uniformly random mantissas.
func TestFormatFloat64_roundTrip(t *testing.T) {
	corners := []float64{
		0,
		math.Copysign(0, -1),
		1,
		-1,
		math.SmallestNonzeroFloat64,
		math.MaxFloat64,
		-math.MaxFloat64,
		1e-308,
		1e23,
		math.Pi,
		math.E,
		1.0 / 3.0,
	}
	for _, d := range corners {
		checkRoundTrip(t, d)
	}

	// Bit patterns in [1, 2^63-2^52) are exactly the positive, finite,
	// non-zero doubles: the upper bound is 0x7FF0000000000000, the first
	// pattern whose exponent field is the Inf/NaN reserved value.
	rng := rand.New(rand.NewPCG(1, 2))
	const upper = uint64(1)<<63 - uint64(1)<<52
	const trials = 1000000
	for i := 0; i < trials; i++ {
		bits := rng.Uint64N(upper-1) + 1
		checkRoundTrip(t, math.Float64frombits(bits))
	}
}

func checkRoundTrip(t *testing.T, d float64) {
	t.Helper()
	s := FormatFloat64(d)
	got, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.Fatalf("FormatFloat64(%g) = %q, which failed to parse: %v", d, s, err)
	}
	if math.Float64bits(got) != math.Float64bits(d) {
		t.Fatalf("FormatFloat64(%g) = %q, ParseFloat round-trips to %g (bits %x, want %x)",
			d, s, got, math.Float64bits(got), math.Float64bits(d))
	}
}

func TestComputeShortest_ties(t *testing.T) {
	// Regression for the round-to-even path when minus/mid share trailing
	// zeros all the way down.
	out, exp := computeShortest(100, 150, 200, 0, true, true, true)
	if out == 0 {
		t.Fatalf("computeShortest returned 0 digits at exponent %d", exp)
	}
}

func BenchmarkFormatFloat64(b *testing.B) {
	vals := []float64{0, 1, -1.5, 3.14159265358979, 1e300, 1e-300, 123456789.123456}
	for i := 0; i < b.N; i++ {
		for _, v := range vals {
			_ = FormatFloat64(v)
		}
	}
}
