// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"math"
	"math/bits"
)

// explodedFloat is a binary floating-point value represented as a
// 64-bit integer mantissa and a base-2 exponent, i.e. the value it
// denotes is mantissa * 2^exponent. This is the ExplodedFloat of §3.
type explodedFloat struct {
	mantissa uint64
	exponent int32
}

const (
	significandBits = 52
	exponentBias    = 1075
	significandMask = uint64(1)<<significandBits - 1
	impliedBit      = uint64(1) << significandBits
)

// explode decomposes the bit pattern of a positive, finite, non-zero double
// into its mantissa (with the implied bit restored for normal values, or
// zero-padded for subnormals) and its unbiased base-2 exponent.
func explode(d float64) explodedFloat {
	bits := math.Float64bits(d)
	significand := bits & significandMask
	biasedExponent := int32(bits >> significandBits)
	if biasedExponent != 0 {
		return explodedFloat{mantissa: significand + impliedBit, exponent: biasedExponent - exponentBias}
	}
	return explodedFloat{mantissa: significand, exponent: 1 - exponentBias}
}

// mulShift computes (m1 * f) >> (64 + shift), truncated to 64 bits, where f
// is a 128-bit fixed-point factor. shift must lie in (0, 64).
func mulShift(m1 uint64, f pow10Factor, shift uint) uint64 {
	hiHi, hiLo := bits.Mul64(m1, f.hi)
	loHi, _ := bits.Mul64(m1, f.lo)
	sum, carry := bits.Add64(loHi, hiLo, 0)
	hiHi += carry
	return (sum >> shift) | (hiHi << (64 - shift))
}

// bitCountOf5ToThe approximates floor(log2(5^pow)) + 1 using the rational
// approximation log2(5) ~= 1217359/2^19.
func bitCountOf5ToThe(pow int32) uint32 {
	return ((uint32(pow) * 1217359) >> 19) + 1
}

func isDivisibleByPow5(value uint64, power uint32) bool {
	for power > 0 {
		if value%5 != 0 {
			return false
		}
		value /= 5
		power--
	}
	return true
}

// computeShortest picks the shortest decimal integer within [minus, plus]
// that is closest to mid (breaking ties to even), given whether minus
// and/or mid have all-zero trailing digits below the current position.
// It returns the chosen decimal digits (as an integer) and the decimal
// exponent, increased by one for each digit dropped.
func computeShortest(minus, mid, plus uint64, exponent int32, even, minusTrailing, midTrailing bool) (uint64, int32) {
	outExponent := exponent
	if minusTrailing || midTrailing {
		var lastRemoved uint64
		for plus/10 > minus/10 {
			minusTrailing = minusTrailing && minus%10 == 0
			midTrailing = midTrailing && lastRemoved == 0
			lastRemoved = mid % 10
			minus /= 10
			mid /= 10
			plus /= 10
			outExponent++
		}
		if minusTrailing {
			for minus%10 == 0 {
				lastRemoved = mid % 10
				minus /= 10
				mid /= 10
				plus /= 10
				midTrailing = midTrailing && lastRemoved == 0
				outExponent++
			}
		}
		if midTrailing && lastRemoved == 5 && mid%2 == 0 {
			lastRemoved = 4
		}
		out := mid
		if (mid == minus && (!even || !minusTrailing)) || lastRemoved >= 5 {
			out++
		}
		return out, outExponent
	}

	roundUp := false
	if plus/100 > minus/100 {
		roundUp = mid%100 >= 50
		minus /= 100
		mid /= 100
		plus /= 100
		outExponent += 2
	}
	for plus/10 > minus/10 {
		roundUp = mid%10 >= 5
		minus /= 10
		mid /= 10
		plus /= 10
		outExponent++
	}
	out := mid
	if mid == minus || roundUp {
		out++
	}
	return out, outExponent
}

// ryuDigits runs the Ryu shortest-digits algorithm on a positive, finite,
// non-zero double and returns its decimal digit string (no leading zeros,
// no sign) together with the decimal exponent such that the value equals
// 0.<digits> * 10^(exponent+len(digits)), consistent with conformalize's
// expectations (see conformalizeDigits).
func ryuDigits(d float64) ([]byte, int32) {
	binary := explode(d)
	even := binary.mantissa&1 == 0

	var minusShift uint64
	if binary.mantissa != impliedBit || binary.exponent+exponentBias <= 1 {
		minusShift = 1
	}
	mid := binary.mantissa << 2
	plus := mid + 2
	minus := mid - 1 - minusShift
	e2 := binary.exponent - 2

	var decMinus, decMid, decPlus uint64
	var decimalExponent int32
	var minusTrailing, midTrailing bool

	if e2 >= 0 {
		ue2 := uint32(e2)
		decimalExponent = int32((ue2 * 78913) >> 18)
		if e2 > 3 {
			decimalExponent--
		}
		i := uint32(decimalExponent - e2 + int32(bitCountOf5ToThe(decimalExponent)) - 1 + 125)
		shift := uint(i - 64)
		factor := negPow10[decimalExponent]
		decMinus = mulShift(minus, factor, shift)
		decMid = mulShift(mid, factor, shift)
		decPlus = mulShift(plus, factor, shift)

		if decimalExponent <= 21 {
			switch {
			case mid%5 == 0:
				midTrailing = isDivisibleByPow5(mid, uint32(decimalExponent))
			case even:
				minusTrailing = isDivisibleByPow5(minus, uint32(decimalExponent))
			case isDivisibleByPow5(plus, uint32(decimalExponent)):
				decPlus--
			}
		}
	} else {
		ue2 := uint32(-e2)
		q := int32((ue2 * 732923) >> 20)
		if e2 < -1 {
			q--
		}
		decimalExponent = q + e2
		i := uint32(-decimalExponent)
		b5i := bitCountOf5ToThe(int32(i))
		j := uint32(q - int32(b5i) + 125)
		shift := uint(j - 64)
		factor := posPow10[i]
		decMinus = mulShift(minus, factor, shift)
		decMid = mulShift(mid, factor, shift)
		decPlus = mulShift(plus, factor, shift)

		if q <= 1 {
			midTrailing = true
			if even {
				minusTrailing = minusShift == 1
			} else {
				decPlus--
			}
		} else if q < 63 {
			midTrailing = mid&((uint64(1)<<uint(q-1))-1) == 0
		}
	}

	out, outExp := computeShortest(decMinus, decMid, decPlus, decimalExponent, even, minusTrailing, midTrailing)
	return appendUnsigned(nil, out), outExp
}

// conformalizeDigits lays out a raw digit string plus a decimal exponent
// into its final textual form: plain integer, fixed-point decimal, or
// scientific notation, per the size heuristics of §4.3.
func conformalizeDigits(dst, digits []byte, powTen int32) []byte {
	length := int32(len(digits))
	total := length + powTen
	if total <= 19 {
		switch {
		case powTen >= 0:
			dst = append(dst, digits...)
			for i := length; i < total; i++ {
				dst = append(dst, '0')
			}
			return dst
		case total > 0:
			dst = append(dst, digits[:total]...)
			dst = append(dst, '.')
			dst = append(dst, digits[total:]...)
			return dst
		case total > -5:
			dst = append(dst, '0', '.')
			for i := int32(2); i < 2-total; i++ {
				dst = append(dst, '0')
			}
			dst = append(dst, digits...)
			return dst
		}
	}
	// Scientific notation.
	if length == 1 {
		dst = append(dst, digits[0], 'e')
		return appendSigned(dst, int64(powTen))
	}
	dst = append(dst, digits[0], '.')
	dst = append(dst, digits[1:]...)
	dst = append(dst, 'e')
	return appendSigned(dst, int64(total-1))
}

// AppendFloat64 appends the shortest round-trip decimal representation of v
// to dst and returns the extended slice. The format is chosen per §6:
// plain decimal for magnitudes roughly in [1e-5, 1e19), scientific
// otherwise; -0.0 formats as "-0".
func AppendFloat64(dst []byte, v float64) []byte {
	if v == 0 {
		if math.Signbit(v) {
			return append(dst, '-', '0')
		}
		return append(dst, '0')
	}
	if math.Signbit(v) {
		dst = append(dst, '-')
		v = -v
	}
	digits, powTen := ryuDigits(v)
	return conformalizeDigits(dst, digits, powTen)
}

// FormatFloat64 returns the shortest round-trip decimal representation of v.
func FormatFloat64(v float64) string {
	return string(AppendFloat64(nil, v))
}
