// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"testing"

	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"hello", "hello"},
		{`he said "hi"`, `he said \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"tab\there", `tab\there`},
		{"line\nsep", `line\nsep`},
		{"bell\x07here", "bell\\u0007here"},
		// High-bit multibyte UTF-8 is passed through verbatim, not
		// decoded and re-escaped.
		{"héllo", "héllo"},
		{"日本語", "日本語"},
		// U+2028 LINE SEPARATOR is ordinary UTF-8 to this function; it
		// is not special-cased into a \u escape.
		{"a b", "a b"},
	}
	for _, test := range tests {
		got := string(Quote(mem.S(test.input)))
		if got != test.want {
			t.Errorf("Quote(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestQuote_invalidUTF8PassedThrough(t *testing.T) {
	// An invalid UTF-8 byte sequence is copied byte-for-byte rather than
	// replaced with the Unicode replacement character.
	input := []byte{'a', 0xff, 0xfe, 'b'}
	got := Quote(mem.B(input))
	want := []byte{'a', 0xff, 0xfe, 'b'}
	if string(got) != string(want) {
		t.Errorf("Quote(%v) = %v, want %v", input, got, want)
	}
}
