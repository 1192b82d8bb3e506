// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"errors"
	"fmt"
)

// Kind classifies a SyntaxError by the taxonomy of §7: lexical, structural,
// numeric, depth, or resource (I/O) failures.
type Kind byte

const (
	// KindOther covers errors that do not fit one of the named categories.
	KindOther Kind = iota
	KindLex
	KindStructure
	KindNumeric
	KindDepth
	KindResource
	KindType
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindStructure:
		return "structure"
	case KindNumeric:
		return "numeric"
	case KindDepth:
		return "depth"
	case KindResource:
		return "resource"
	case KindType:
		return "type"
	default:
		return "other"
	}
}

// A SyntaxError reports a fail-fast parse, generation, or accessor error.
// It carries a human-readable message and, when available, the offending
// byte and the buffer offset at which the error was detected. Once a Parser
// or Generator has returned a SyntaxError, further calls on that instance
// are undefined.
//
// Ref, when set, identifies the error against one of the sentinel values
// below; errors.Is(err, ErrLeadingZero) and similar checks work through
// Unwrap rather than by inspecting Kind or Msg, since Msg is meant for
// humans and can change wording across releases.
type SyntaxError struct {
	Kind    Kind
	Msg     string
	Offset  int64 // -1 if not known
	Byte    byte  // only meaningful if HasByte is true
	HasByte bool
	Ref     error
}

func (e *SyntaxError) Error() string {
	if e.HasByte {
		return fmt.Sprintf("json: %s: %s (byte %q at offset %d)", e.Kind, e.Msg, e.Byte, e.Offset)
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("json: %s: %s (offset %d)", e.Kind, e.Msg, e.Offset)
	}
	return fmt.Sprintf("json: %s: %s", e.Kind, e.Msg)
}

// Unwrap supports errors.Is/errors.As against e.Ref, when set.
func (e *SyntaxError) Unwrap() error { return e.Ref }

// Sentinel errors identifying common SyntaxError causes across the parser,
// generator, and node accessors, for callers that want to switch on cause
// rather than parse a Msg string. Not every SyntaxError has one of these as
// its Ref; they cover the causes common enough to be worth naming.
var (
	ErrUnexpectedByte     = errors.New("unexpected byte")
	ErrUnterminatedString = errors.New("string was not terminated")
	ErrLeadingZero        = errors.New("leading zeroes are not allowed")
	ErrDepthExceeded      = errors.New("maximum nesting depth exceeded")
	ErrTypeMismatch       = errors.New("value is of the wrong type")
)

func syntaxErrorf(kind Kind, offset int64, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Msg: fmt.Sprintf(format, args...), Offset: offset}
}

func syntaxErrorByte(kind Kind, offset int64, b byte, format string, args ...any) *SyntaxError {
	return &SyntaxError{Kind: kind, Msg: fmt.Sprintf(format, args...), Offset: offset, Byte: b, HasByte: true}
}

// wrap sets e.Ref to ref and returns e, for chaining onto a
// syntaxErrorf/syntaxErrorByte call at the point a cause is known to match
// one of the sentinel errors above.
func (e *SyntaxError) wrap(ref error) *SyntaxError {
	e.Ref = ref
	return e
}

// typeMismatchError reports that an accessor was called against a token or
// node of the wrong kind.
func typeMismatchError(want string, got fmt.Stringer) error {
	return &SyntaxError{Kind: KindType, Msg: fmt.Sprintf("expected %s, have %s", want, got), Offset: -1, Ref: ErrTypeMismatch}
}
