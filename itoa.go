// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow

// twoDigits is a lookup table of two-ASCII-digit pairs for the values
// 00..99, laid out low-digit-first so that a single index yields both
// digits of value%100 without a division per digit.
const twoDigits = "00102030405060708090011121314151617181910212223242526272829203132333435363738393041424344454647484940515253545556575859506162636465666768696071727374757677787970818283848586878889809192939495969798999"

// appendUnsigned writes the decimal ASCII representation of v to the end of
// buf, right-to-left, and returns the extended slice. It never allocates
// beyond doubling buf's backing array and produces at most 20 digits.
func appendUnsigned(buf []byte, v uint64) []byte {
	var tmp [20]byte
	i := len(tmp)
	for v >= 100 {
		off := (v % 100) * 2
		v /= 100
		i -= 2
		tmp[i] = twoDigits[off+1]
		tmp[i+1] = twoDigits[off]
	}
	if v < 10 {
		i--
		tmp[i] = '0' + byte(v)
	} else {
		off := v * 2
		i -= 2
		tmp[i] = twoDigits[off+1]
		tmp[i+1] = twoDigits[off]
	}
	return append(buf, tmp[i:]...)
}

// appendSigned writes the decimal ASCII representation of v, including a
// leading '-' for negative values, and handles math.MinInt64 correctly by
// negating into an unsigned value before formatting.
func appendSigned(buf []byte, v int64) []byte {
	if v >= 0 {
		return appendUnsigned(buf, uint64(v))
	}
	buf = append(buf, '-')
	return appendUnsigned(buf, -uint64(v)) // unsigned negation, correct even for math.MinInt64
}

// formatInt64 returns the decimal ASCII representation of v.
func formatInt64(v int64) []byte {
	return appendSigned(make([]byte, 0, 20), v)
}
