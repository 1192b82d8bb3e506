// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"math"

	"go4.org/mem"

	"github.com/cflux/jflow/internal/escape"
)

// maxAccumulate is floor(math.MaxInt64/10); a significand below this value
// can always absorb one more decimal digit without overflowing an int64.
const maxAccumulate = math.MaxInt64 / 10

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDelimiter(c byte) bool {
	return c == ',' || c == ':' || c == ']' || c == '}' || isWhitespace(c)
}

// A Parser pulls a stream of Tokens out of a Source. Call Next to advance
// and consult Token, FieldName, Text, Int64, Float64, or Bool to read the
// value associated with the current token. A Parser is not safe for
// concurrent use.
type Parser struct {
	src  Source
	buf  []byte
	pos  int
	size int
	base int64 // stream offset of buf[0]
	eof  bool

	token     Token
	tagStack  []Token
	fieldName []byte
	text      []byte
	scratch   []byte
	intValue  int64
	floatVal  float64

	err *SyntaxError
}

// NewParser returns a Parser that reads from src.
func NewParser(src Source) *Parser {
	return &Parser{
		src:      src,
		buf:      make([]byte, bufSize),
		tagStack: make([]Token, 0, 32),
	}
}

// Token reports the most recently parsed token.
func (p *Parser) Token() Token { return p.token }

// FieldName returns the name associated with the current FieldName token.
func (p *Parser) FieldName() string { return string(p.fieldName) }

// Text returns the decoded value of the current String token.
func (p *Parser) Text() string { return string(p.text) }

// Int64 returns the value of the current Integer token, or the truncated
// value of a Float token.
func (p *Parser) Int64() (int64, error) {
	switch p.token {
	case Integer:
		return p.intValue, nil
	case Float:
		return int64(p.floatVal), nil
	}
	return 0, typeMismatchError("integer", p.token)
}

// Float64 returns the value of the current Float or Integer token.
func (p *Parser) Float64() (float64, error) {
	switch p.token {
	case Float:
		return p.floatVal, nil
	case Integer:
		return float64(p.intValue), nil
	}
	return 0, typeMismatchError("float", p.token)
}

// Bool returns the value of the current True or False token.
func (p *Parser) Bool() (bool, error) {
	switch p.token {
	case True:
		return true, nil
	case False:
		return false, nil
	}
	return false, typeMismatchError("boolean", p.token)
}

// Depth reports the current container nesting depth.
func (p *Parser) Depth() int { return len(p.tagStack) }

func (p *Parser) curOffset() int64 { return p.base + int64(p.pos) }

func (p *Parser) loadMore() bool {
	if p.eof {
		return false
	}
	p.base += int64(p.size)
	n, err := p.src.Fill(p.buf)
	if err != nil {
		p.err = syntaxErrorf(KindResource, p.base, "%v", err)
		p.eof = true
		return false
	}
	p.pos, p.size = 0, n
	if n == 0 {
		p.eof = true
		return false
	}
	return true
}

func (p *Parser) readByte() (byte, bool) {
	if p.pos >= p.size {
		if !p.loadMore() {
			return 0, false
		}
	}
	c := p.buf[p.pos]
	p.pos++
	return c, true
}

func (p *Parser) peekByte() (byte, bool) {
	if p.pos >= p.size {
		if !p.loadMore() {
			return 0, false
		}
	}
	return p.buf[p.pos], true
}

func (p *Parser) nextIsDelimiter() bool {
	c, ok := p.peekByte()
	return !ok || isDelimiter(c)
}

func (p *Parser) significantByte() (byte, bool) {
	for {
		c, ok := p.readByte()
		if !ok || !isWhitespace(c) {
			return c, ok
		}
	}
}

func (p *Parser) found(t Token) (Token, error) {
	p.token = t
	return t, nil
}

func (p *Parser) fail(err error) (Token, error) {
	se, ok := err.(*SyntaxError)
	if !ok {
		se = syntaxErrorf(KindOther, p.curOffset(), "%v", err)
	}
	p.err = se
	p.token = NotAvailable
	return NotAvailable, se
}

// Next advances the parser and returns the next token, or NotAvailable
// with a nil error at a well-formed end of input.
func (p *Parser) Next() (Token, error) {
	if p.err != nil {
		return NotAvailable, p.err
	}

	if p.token == FieldName {
		c, ok := p.significantByte()
		if !ok {
			return p.fail(syntaxErrorf(KindStructure, p.curOffset(), "unexpected end of input after field name"))
		}
		if c != ':' {
			return p.fail(syntaxErrorByte(KindStructure, p.curOffset(), c, "expected ':' after field name"))
		}
	} else if len(p.tagStack) > 0 && p.token != StartArray && p.token != StartObject {
		c, ok := p.significantByte()
		if !ok {
			return p.fail(syntaxErrorf(KindStructure, p.curOffset(), "unclosed container"))
		}
		switch c {
		case ']':
			return p.closeArray()
		case '}':
			return p.closeObject()
		case ',':
			// Fall through to the value (or field name) dispatch below.
		default:
			return p.fail(syntaxErrorByte(KindStructure, p.curOffset(), c, "expected ',' before next value"))
		}
	}

	if p.token != FieldName && len(p.tagStack) > 0 && p.tagStack[len(p.tagStack)-1] == StartObject {
		c, ok := p.significantByte()
		if !ok {
			return p.fail(syntaxErrorf(KindStructure, p.curOffset(), "unclosed object"))
		}
		if c == '}' {
			return p.closeObject()
		}
		if c != '"' {
			return p.fail(syntaxErrorByte(KindStructure, p.curOffset(), c, "expected a field name"))
		}
		name, err := p.scanString()
		if err != nil {
			return p.fail(err)
		}
		p.fieldName = name
		return p.found(FieldName)
	}

	for {
		c, ok := p.readByte()
		if !ok {
			break
		}
		if isWhitespace(c) {
			continue
		}
		switch {
		case c == '-':
			return p.parseNegativeNumber()
		case c >= '0' && c <= '9':
			return p.parsePositiveNumber(c)
		case c == '"':
			s, err := p.scanString()
			if err != nil {
				return p.fail(err)
			}
			p.text = s
			return p.found(String)
		case c == 't':
			if !p.expectLiteral("rue") {
				return p.fail(syntaxErrorByte(KindLex, p.curOffset(), c, "invalid token").wrap(ErrUnexpectedByte))
			}
			return p.found(True)
		case c == 'f':
			if !p.expectLiteral("alse") {
				return p.fail(syntaxErrorByte(KindLex, p.curOffset(), c, "invalid token").wrap(ErrUnexpectedByte))
			}
			return p.found(False)
		case c == 'n':
			if !p.expectLiteral("ull") {
				return p.fail(syntaxErrorByte(KindLex, p.curOffset(), c, "invalid token").wrap(ErrUnexpectedByte))
			}
			return p.found(Null)
		case c == '{':
			p.tagStack = append(p.tagStack, StartObject)
			return p.found(StartObject)
		case c == '[':
			p.tagStack = append(p.tagStack, StartArray)
			return p.found(StartArray)
		case c == '}':
			return p.closeObject()
		case c == ']':
			return p.closeArray()
		default:
			return p.fail(syntaxErrorByte(KindLex, p.curOffset(), c, "invalid token").wrap(ErrUnexpectedByte))
		}
	}

	if len(p.tagStack) > 0 {
		return p.fail(syntaxErrorf(KindStructure, p.curOffset(), "unclosed container"))
	}
	return p.found(NotAvailable)
}

// SkipChildren consumes and discards tokens up to and including the close
// matching the current StartObject/StartArray token. It is a no-op for any
// other current token.
func (p *Parser) SkipChildren() error {
	var start, end Token
	switch p.token {
	case StartObject:
		start, end = StartObject, EndObject
	case StartArray:
		start, end = StartArray, EndArray
	default:
		return nil
	}
	count := 1
	for count > 0 {
		t, err := p.Next()
		if err != nil {
			return err
		}
		switch t {
		case start:
			count++
		case end:
			count--
		case NotAvailable:
			return syntaxErrorf(KindStructure, p.curOffset(), "unclosed container while skipping")
		}
	}
	return nil
}

func (p *Parser) closeArray() (Token, error) {
	if len(p.tagStack) == 0 || p.tagStack[len(p.tagStack)-1] != StartArray {
		return p.fail(syntaxErrorf(KindStructure, p.curOffset(), "unexpected ']'"))
	}
	p.tagStack = p.tagStack[:len(p.tagStack)-1]
	return p.found(EndArray)
}

func (p *Parser) closeObject() (Token, error) {
	if len(p.tagStack) == 0 || p.tagStack[len(p.tagStack)-1] != StartObject {
		return p.fail(syntaxErrorf(KindStructure, p.curOffset(), "unexpected '}'"))
	}
	p.tagStack = p.tagStack[:len(p.tagStack)-1]
	return p.found(EndObject)
}

func (p *Parser) expectLiteral(rest string) bool {
	for i := 0; i < len(rest); i++ {
		c, ok := p.readByte()
		if !ok || c != rest[i] {
			return false
		}
	}
	return p.nextIsDelimiter()
}

// scanString reads a quoted string (the opening quote already consumed)
// into raw escaped bytes, copying safe runs with a single append, then
// unescapes the whole thing in one pass.
func (p *Parser) scanString() ([]byte, error) {
	raw := p.scratch[:0]
	for {
		runStart := p.pos
		for p.pos < p.size {
			c := p.buf[p.pos]
			if c < 0x20 || c == '"' || c == '\\' {
				break
			}
			p.pos++
		}
		raw = append(raw, p.buf[runStart:p.pos]...)

		if p.pos >= p.size {
			if !p.loadMore() {
				return nil, syntaxErrorf(KindLex, p.curOffset(), "string was not terminated").wrap(ErrUnterminatedString)
			}
			continue
		}

		c := p.buf[p.pos]
		p.pos++
		switch {
		case c == '"':
			if !p.nextIsDelimiter() {
				return nil, syntaxErrorf(KindLex, p.curOffset(), "invalid string terminator")
			}
			p.scratch = raw
			return escape.Unquote(mem.B(raw))
		case c == '\\':
			raw = append(raw, '\\')
			e, ok := p.readByte()
			if !ok {
				return nil, syntaxErrorf(KindLex, p.curOffset(), "incomplete escape sequence")
			}
			raw = append(raw, e)
			if e == 'u' {
				for i := 0; i < 4; i++ {
					h, ok := p.readByte()
					if !ok {
						return nil, syntaxErrorf(KindLex, p.curOffset(), "incomplete unicode escape")
					}
					raw = append(raw, h)
				}
			}
		default:
			return nil, syntaxErrorByte(KindLex, p.curOffset(), c, "unescaped control character")
		}
	}
}

func (p *Parser) parseNegativeNumber() (Token, error) {
	c, ok := p.readByte()
	if !ok || c < '0' || c > '9' {
		return p.fail(syntaxErrorf(KindNumeric, p.curOffset(), "invalid number"))
	}
	tok, err := p.parsePositiveNumber(c)
	if err != nil {
		return tok, err
	}
	if p.token == Integer {
		p.intValue = -p.intValue
	} else {
		p.floatVal = -p.floatVal
	}
	return tok, nil
}

func (p *Parser) parsePositiveNumber(first byte) (Token, error) {
	if first == '0' {
		if n, ok := p.peekByte(); ok && n >= '0' && n <= '9' {
			return p.fail(syntaxErrorByte(KindNumeric, p.curOffset(), n, "leading zeroes are not allowed").wrap(ErrLeadingZero))
		}
	}

	significand := uint64(first - '0')
	digits := int32(1)
	var decimalExponent int32
	var rounded, isFloat bool

	for {
		n, ok := p.peekByte()
		if !ok || n < '0' || n > '9' {
			break
		}
		p.pos++
		d := uint64(n - '0')
		switch {
		case rounded:
			decimalExponent++
		case significand < maxAccumulate || (significand == maxAccumulate && d <= 7):
			significand = significand*10 + d
			digits++
		default:
			rounded = true
			if d > 5 || (d == 5 && significand&1 == 1) {
				significand++
			}
			decimalExponent++
		}
	}

	c, hasNext := p.peekByte()

	if hasNext && c == '.' {
		isFloat = true
		p.pos++
		if n, ok := p.peekByte(); !ok || n < '0' || n > '9' {
			return p.fail(syntaxErrorf(KindNumeric, p.curOffset(), "expected a fractional digit"))
		}
		for {
			n, ok := p.peekByte()
			if !ok || n < '0' || n > '9' {
				break
			}
			p.pos++
			if rounded {
				continue
			}
			d := uint64(n - '0')
			if significand < maxAccumulate || (significand == maxAccumulate && d <= 7) {
				significand = significand*10 + d
				digits++
				decimalExponent--
			} else {
				rounded = true
				if d > 5 || (d == 5 && significand&1 == 1) {
					significand++
				}
			}
		}
		c, hasNext = p.peekByte()
	}

	if hasNext && (c == 'e' || c == 'E') {
		isFloat = true
		p.pos++
		n, ok := p.peekByte()
		neg := false
		if ok && (n == '+' || n == '-') {
			neg = n == '-'
			p.pos++
			n, ok = p.peekByte()
		}
		if !ok || n < '0' || n > '9' {
			return p.fail(syntaxErrorf(KindNumeric, p.curOffset(), "invalid exponent"))
		}
		var exp int32
		for {
			n, ok = p.peekByte()
			if !ok || n < '0' || n > '9' {
				break
			}
			p.pos++
			if exp < 2000 {
				exp = exp*10 + int32(n-'0')
			}
		}
		if neg {
			decimalExponent -= exp
		} else {
			decimalExponent += exp
		}
		c, hasNext = p.peekByte()
	}

	if hasNext && !isDelimiter(c) {
		return p.fail(syntaxErrorByte(KindNumeric, p.curOffset(), c, "invalid number"))
	}

	if !isFloat {
		if !rounded && decimalExponent == 0 {
			p.intValue = int64(significand)
			return p.found(Integer)
		}
		if !rounded && decimalExponent > 0 && decimalExponent < 20 {
			scaled := significand
			ok := true
			for i := int32(0); i < decimalExponent; i++ {
				next := scaled * 10
				if scaled != 0 && next/10 != scaled {
					ok = false
					break
				}
				scaled = next
			}
			if ok && scaled <= uint64(math.MaxInt64) {
				p.intValue = int64(scaled)
				return p.found(Integer)
			}
		}
	}

	p.floatVal = raiseToPowTen(significand, decimalExponent, digits)
	return p.found(Float)
}
