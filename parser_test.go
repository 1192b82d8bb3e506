// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow_test

import (
	"strings"
	"testing"

	"github.com/cflux/jflow"
	"github.com/google/go-cmp/cmp"
)

func scanAll(t *testing.T, input string) []jflow.Token {
	t.Helper()
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(input)))
	var got []jflow.Token
	for {
		tok, err := p.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if tok == jflow.NotAvailable {
			return got
		}
		got = append(got, tok)
	}
}

func TestParser_tokens(t *testing.T) {
	tests := []struct {
		input string
		want  []jflow.Token
	}{
		{"", nil},
		{"   \n\t  ", nil},
		{"true false null", []jflow.Token{jflow.True, jflow.False, jflow.Null}},
		{`"hello"`, []jflow.Token{jflow.String}},
		{`0 -1 5139 2.3 5e9`, []jflow.Token{
			jflow.Integer, jflow.Integer, jflow.Integer, jflow.Float, jflow.Float,
		}},
		{`[]`, []jflow.Token{jflow.StartArray, jflow.EndArray}},
		{`{}`, []jflow.Token{jflow.StartObject, jflow.EndObject}},
		{`{"a": true, "b": [null, 1, 0.5]}`, []jflow.Token{
			jflow.StartObject,
			jflow.FieldName, jflow.True,
			jflow.FieldName, jflow.StartArray, jflow.Null, jflow.Integer, jflow.Float, jflow.EndArray,
			jflow.EndObject,
		}},
	}
	for _, test := range tests {
		got := scanAll(t, test.input)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens (-want, +got):\n%s", test.input, diff)
		}
	}
}

func TestParser_values(t *testing.T) {
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(`{"name": "ok", "n": 42, "pi": 3.5, "t": true, "f": false, "z": null}`)))

	next := func() jflow.Token {
		tok, err := p.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		return tok
	}

	if next() != jflow.StartObject {
		t.Fatal("expected StartObject")
	}

	wantField := func(name string) {
		t.Helper()
		if next() != jflow.FieldName {
			t.Fatal("expected FieldName")
		}
		if got := p.FieldName(); got != name {
			t.Fatalf("FieldName = %q, want %q", got, name)
		}
	}

	wantField("name")
	if next() != jflow.String || p.Text() != "ok" {
		t.Fatalf("Text = %q, want ok", p.Text())
	}

	wantField("n")
	if next() != jflow.Integer {
		t.Fatal("expected Integer")
	}
	if v, err := p.Int64(); err != nil || v != 42 {
		t.Fatalf("Int64 = %v, %v, want 42, nil", v, err)
	}

	wantField("pi")
	if next() != jflow.Float {
		t.Fatal("expected Float")
	}
	if v, err := p.Float64(); err != nil || v != 3.5 {
		t.Fatalf("Float64 = %v, %v, want 3.5, nil", v, err)
	}

	wantField("t")
	if next() != jflow.True {
		t.Fatal("expected True")
	}
	if v, err := p.Bool(); err != nil || v != true {
		t.Fatalf("Bool = %v, %v, want true, nil", v, err)
	}

	wantField("f")
	if next() != jflow.False {
		t.Fatal("expected False")
	}

	wantField("z")
	if next() != jflow.Null {
		t.Fatal("expected Null")
	}

	if next() != jflow.EndObject {
		t.Fatal("expected EndObject")
	}
	if next() != jflow.NotAvailable {
		t.Fatal("expected NotAvailable at end of stream")
	}
}

func TestParser_errors(t *testing.T) {
	tests := []string{
		`{`,
		`]`,
		`{,}`,
		`"unterminated`,
		`01`,
		`.5`,
		`1.`,
		`1e`,
		`{"a" 1}`,
		"\"bad control \x01 char\"",
	}
	for _, input := range tests {
		p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(input)))
		var lastErr error
		for {
			tok, err := p.Next()
			if err != nil {
				lastErr = err
				break
			}
			if tok == jflow.NotAvailable {
				break
			}
		}
		if lastErr == nil {
			t.Errorf("Input %#q: expected an error, got none", input)
		}
	}
}

func TestParser_skipChildren(t *testing.T) {
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(`[1, [2, 3, [4, 5]], 6]`)))

	tok, err := p.Next()
	if err != nil || tok != jflow.StartArray {
		t.Fatalf("Next = %v, %v, want StartArray", tok, err)
	}
	tok, err = p.Next()
	if err != nil || tok != jflow.Integer {
		t.Fatalf("Next = %v, %v, want Integer", tok, err)
	}
	tok, err = p.Next()
	if err != nil || tok != jflow.StartArray {
		t.Fatalf("Next = %v, %v, want StartArray", tok, err)
	}
	if err := p.SkipChildren(); err != nil {
		t.Fatalf("SkipChildren failed: %v", err)
	}
	tok, err = p.Next()
	if err != nil || tok != jflow.Integer {
		t.Fatalf("Next after skip = %v, %v, want Integer (6)", tok, err)
	}
	if v, _ := p.Int64(); v != 6 {
		t.Fatalf("Int64 = %v, want 6", v)
	}
}

func TestParser_largeIntegerFallsToFloat(t *testing.T) {
	// One digit beyond int64 range rounds to even rather than erroring.
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(`9223372036854775808`)))
	tok, err := p.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if tok != jflow.Float {
		t.Fatalf("Token = %v, want Float", tok)
	}
	if v, err := p.Float64(); err != nil || v != 9223372036854775808.0 {
		t.Fatalf("Float64 = %v, %v, want 9223372036854775808", v, err)
	}
}

func TestParser_fractionalUnderflowBoundary(t *testing.T) {
	// 4.9e-324 carries two significant digits entirely in the fractional
	// part; the correctly-rounded result is the smallest denormal, not 0.
	tests := []struct {
		input string
		want  float64
	}{
		{"4.9e-324", 5e-324},
		{"1.0e-324", 0},
	}
	for _, test := range tests {
		p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(test.input)))
		tok, err := p.Next()
		if err != nil || tok != jflow.Float {
			t.Fatalf("Input %#q: Next = %v, %v, want Float", test.input, tok, err)
		}
		v, err := p.Float64()
		if err != nil || v != test.want {
			t.Errorf("Input %#q: Float64 = %v, %v, want %v, nil", test.input, v, err, test.want)
		}
	}
}

func TestParser_surrogateEscapesNotCombined(t *testing.T) {
	// D83D DE00 is a UTF-16 surrogate pair; each half is decoded as an
	// independent code point rather than combined into the astral
	// character it denotes in UTF-16.
	const input = "\"\\uD83D\\uDE00\""
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(input)))
	tok, err := p.Next()
	if err != nil || tok != jflow.String {
		t.Fatalf("Next = %v, %v, want String", tok, err)
	}
	got := []byte(p.Text())
	// Each surrogate half is encoded as its own 3-byte UTF-8 sequence
	// (0xED 0xA0 0xBD for D83D, 0xED 0xB8 0x80 for DE00), not merged.
	want := []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}
	if string(got) != string(want) {
		t.Errorf("Text = % x, want % x", got, want)
	}
}
