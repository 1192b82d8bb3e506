// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/cflux/jflow"
)

func parseErr(t *testing.T, input string) error {
	t.Helper()
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(input)))
	for {
		tok, err := p.Next()
		if err != nil {
			return err
		}
		if tok == jflow.NotAvailable {
			t.Fatalf("input %#q: no error, want one", input)
		}
	}
}

func TestSyntaxError_sentinels(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"truthy", jflow.ErrUnexpectedByte},
		{"01", jflow.ErrLeadingZero},
		{`"unterminated`, jflow.ErrUnterminatedString},
	}
	for _, test := range tests {
		err := parseErr(t, test.input)
		if !errors.Is(err, test.want) {
			t.Errorf("Input %#q: error %v does not wrap %v", test.input, err, test.want)
		}
		var se *jflow.SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Input %#q: error %v is not a *jflow.SyntaxError", test.input, err)
		}
	}
}

func TestSyntaxError_typeMismatch(t *testing.T) {
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(`"not a number"`)))
	if _, err := p.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	_, err := p.Int64()
	if !errors.Is(err, jflow.ErrTypeMismatch) {
		t.Errorf("Int64 on a String token: error %v does not wrap ErrTypeMismatch", err)
	}
}
