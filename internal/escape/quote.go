// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

var controlEsc = [0x20]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src for inclusion in a JSON string. Runs of safe bytes
// (>= 0x20, excluding '"' and '\\') are copied verbatim in a single
// append, including high-bit bytes: multibyte UTF-8 payloads are passed
// through unexamined, and the caller is responsible for src being valid
// UTF-8. Only '"', '\\', and control bytes below 0x20 are escaped.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	start := 0
	for i := 0; i < src.Len(); i++ {
		c := src.At(i)
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if i > start {
			buf = mem.Append(buf, src.SliceTo(i).SliceFrom(start))
		}
		switch {
		case c == '"' || c == '\\':
			buf = append(buf, '\\', c)
		case controlEsc[c] != 0:
			buf = append(buf, '\\', controlEsc[c])
		default:
			buf = append(buf, '\\', 'u', '0', '0', hexDigit[c>>4], hexDigit[c&15])
		}
		start = i + 1
	}
	if start < src.Len() {
		buf = mem.Append(buf, src.SliceFrom(start))
	}
	return buf
}
