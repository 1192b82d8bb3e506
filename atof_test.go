// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"math"
	"testing"
)

func TestRaiseToPowTen(t *testing.T) {
	tests := []struct {
		significand uint64
		decExp      int32
		digits      int32
		want        float64
	}{
		{0, 0, 1, 0},
		{1, 0, 1, 1},
		{5, -1, 1, 0.5},
		{123456789, 0, 9, 123456789},
		{1, 22, 1, 1e22},
		{1, 23, 1, 1e23},
		{1, -300, 1, 1e-300},
		{1, -400, 1, 0},       // underflows to zero
		{1, 400, 1, math.Inf(1)}, // overflows to +Inf
	}
	for _, test := range tests {
		got := raiseToPowTen(test.significand, test.decExp, test.digits)
		if got != test.want {
			t.Errorf("raiseToPowTen(%d, %d, %d) = %v, want %v",
				test.significand, test.decExp, test.digits, got, test.want)
		}
	}
}

func TestRaiseToPowTen_matchesFormat(t *testing.T) {
	// raiseToPowTen composing a value exactly reproduces what ryuDigits says
	// that value's decimal expansion should be.
	vals := []float64{
		123.456, 1e-5, 1e21, math.Pi, 2.2250738585072014e-308,
		math.SmallestNonzeroFloat64, math.MaxFloat64,
	}
	for _, d := range vals {
		digits, powTen := ryuDigits(d)
		var significand uint64
		for _, c := range digits {
			significand = significand*10 + uint64(c-'0')
		}
		got := raiseToPowTen(significand, powTen, int32(len(digits)))
		if got != d {
			t.Errorf("raiseToPowTen composed from ryuDigits(%v) = %v, want %v", d, got, d)
		}
	}
}
