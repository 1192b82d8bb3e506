// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow

import (
	"go4.org/mem"

	"github.com/cflux/jflow/internal/escape"
)

// A Generator pushes a stream of Tokens to a Sink. Call the Write* methods
// in an order that produces well-formed JSON; each enforces the grammar
// rule that applies to it. A Generator is not safe for concurrent use, and
// Close must be called to flush any buffered output.
type Generator struct {
	sink     Sink
	buf      []byte
	size     int
	token    Token
	tagStack []Token
	pretty   bool
	indent   []byte
	numBuf   [32]byte
}

// NewGenerator returns a Generator that writes compact JSON to sink.
func NewGenerator(sink Sink) *Generator {
	return &Generator{
		sink:     sink,
		buf:      make([]byte, bufSize),
		tagStack: make([]Token, 0, 32),
		indent:   []byte{'\n'},
	}
}

// NewPrettyGenerator returns a Generator that writes tab-indented JSON, with
// a newline and one tab per nesting level before each element and field.
func NewPrettyGenerator(sink Sink) *Generator {
	g := NewGenerator(sink)
	g.pretty = true
	return g
}

// Depth reports the current container nesting depth.
func (g *Generator) Depth() int { return len(g.tagStack) }

// Close flushes any buffered output to the sink.
func (g *Generator) Close() error { return g.flush() }

func (g *Generator) flush() error {
	if g.size > 0 {
		if err := g.sink.Drain(g.buf[:g.size]); err != nil {
			return err
		}
		g.size = 0
	}
	return nil
}

func (g *Generator) writeByte(c byte) error {
	if g.size >= len(g.buf) {
		if err := g.flush(); err != nil {
			return err
		}
	}
	g.buf[g.size] = c
	g.size++
	return nil
}

// writeBytes copies b into the output buffer, flushing and splitting the
// write across buffers as needed. A write larger than the whole buffer is
// drained directly to the sink once the buffer is flushed.
func (g *Generator) writeBytes(b []byte) error {
	if g.size+len(b) <= len(g.buf) {
		copy(g.buf[g.size:], b)
		g.size += len(b)
		return nil
	}
	first := len(g.buf) - g.size
	copy(g.buf[g.size:], b[:first])
	g.size = len(g.buf)
	if err := g.flush(); err != nil {
		return err
	}
	rest := b[first:]
	if len(rest) >= len(g.buf) {
		return g.sink.Drain(rest)
	}
	copy(g.buf, rest)
	g.size = len(rest)
	return nil
}

func (g *Generator) writeIndent() error { return g.writeBytes(g.indent) }

func (g *Generator) prepareWriteValue() error {
	if len(g.tagStack) == 0 {
		return nil
	}
	parent := g.tagStack[len(g.tagStack)-1]
	if parent == StartObject && g.token != FieldName {
		return syntaxErrorf(KindStructure, -1, "value written without a preceding field name")
	}
	if parent == StartArray && g.token != StartArray {
		if err := g.writeByte(','); err != nil {
			return err
		}
	}
	if g.pretty && parent == StartArray {
		if err := g.writeIndent(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) encodeString(s string) error {
	if err := g.writeByte('"'); err != nil {
		return err
	}
	if err := g.writeBytes(escape.Quote(mem.S(s))); err != nil {
		return err
	}
	return g.writeByte('"')
}

// WriteString writes a JSON string value.
func (g *Generator) WriteString(s string) error {
	if err := g.prepareWriteValue(); err != nil {
		return err
	}
	g.token = String
	return g.encodeString(s)
}

// WriteInt64 writes a JSON integer value.
func (g *Generator) WriteInt64(v int64) error {
	if err := g.prepareWriteValue(); err != nil {
		return err
	}
	g.token = Integer
	return g.writeBytes(appendSigned(g.numBuf[:0], v))
}

// WriteFloat64 writes a JSON number value using the shortest round-trip
// decimal representation of v.
func (g *Generator) WriteFloat64(v float64) error {
	if err := g.prepareWriteValue(); err != nil {
		return err
	}
	g.token = Float
	return g.writeBytes(AppendFloat64(g.numBuf[:0], v))
}

// WriteBool writes a JSON boolean value.
func (g *Generator) WriteBool(v bool) error {
	if err := g.prepareWriteValue(); err != nil {
		return err
	}
	if v {
		g.token = True
		return g.writeBytes([]byte("true"))
	}
	g.token = False
	return g.writeBytes([]byte("false"))
}

// WriteNull writes a JSON null value.
func (g *Generator) WriteNull() error {
	if err := g.prepareWriteValue(); err != nil {
		return err
	}
	g.token = Null
	return g.writeBytes([]byte("null"))
}

// WriteFieldName writes an object field name. It must be followed by exactly
// one value-writing call before the next WriteFieldName or WriteEndObject.
func (g *Generator) WriteFieldName(field string) error {
	if len(g.tagStack) == 0 || g.tagStack[len(g.tagStack)-1] != StartObject {
		return syntaxErrorf(KindStructure, -1, "field name written outside an object")
	}
	if g.token == FieldName {
		return syntaxErrorf(KindStructure, -1, "field name written before a value for the previous one")
	}
	if g.token != StartObject {
		if err := g.writeByte(','); err != nil {
			return err
		}
	}
	if g.pretty {
		if err := g.writeIndent(); err != nil {
			return err
		}
	}
	g.token = FieldName
	if err := g.encodeString(field); err != nil {
		return err
	}
	if g.pretty {
		return g.writeBytes([]byte(" : "))
	}
	return g.writeByte(':')
}

// WriteStartObject opens a JSON object.
func (g *Generator) WriteStartObject() error {
	if err := g.prepareWriteValue(); err != nil {
		return err
	}
	g.token = StartObject
	g.tagStack = append(g.tagStack, StartObject)
	if err := g.writeByte('{'); err != nil {
		return err
	}
	if g.pretty {
		g.indent = append(g.indent, '\t')
	}
	return nil
}

// WriteEndObject closes the innermost open object.
func (g *Generator) WriteEndObject() error {
	if len(g.tagStack) == 0 || g.tagStack[len(g.tagStack)-1] != StartObject {
		return syntaxErrorf(KindStructure, -1, "end object without a matching start")
	}
	if g.token == FieldName {
		return syntaxErrorf(KindStructure, -1, "end object written before a value for the last field name")
	}
	g.tagStack = g.tagStack[:len(g.tagStack)-1]
	if g.pretty {
		g.indent = g.indent[:len(g.indent)-1]
		if err := g.writeIndent(); err != nil {
			return err
		}
	}
	g.token = EndObject
	return g.writeByte('}')
}

// WriteStartArray opens a JSON array.
func (g *Generator) WriteStartArray() error {
	if err := g.prepareWriteValue(); err != nil {
		return err
	}
	g.token = StartArray
	g.tagStack = append(g.tagStack, StartArray)
	if err := g.writeByte('['); err != nil {
		return err
	}
	if g.pretty {
		g.indent = append(g.indent, '\t')
	}
	return nil
}

// WriteEndArray closes the innermost open array.
func (g *Generator) WriteEndArray() error {
	if len(g.tagStack) == 0 || g.tagStack[len(g.tagStack)-1] != StartArray {
		return syntaxErrorf(KindStructure, -1, "end array without a matching start")
	}
	g.tagStack = g.tagStack[:len(g.tagStack)-1]
	if g.pretty {
		g.indent = g.indent[:len(g.indent)-1]
		if err := g.writeIndent(); err != nil {
			return err
		}
	}
	g.token = EndArray
	return g.writeByte(']')
}
