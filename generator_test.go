// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cflux/jflow"
)

func TestGenerator_compact(t *testing.T) {
	var buf bytes.Buffer
	g := jflow.NewGenerator(jflow.NewWriterSink(&buf))

	if err := g.WriteStartObject(); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteFieldName("name"); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteString("ok"); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteFieldName("n"); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteInt64(42); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteFieldName("list"); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteStartArray(); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteNull(); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteBool(true); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteFloat64(0.5); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteEndArray(); err != nil {
		t.Fatal(err)
	}
	if err := g.WriteEndObject(); err != nil {
		t.Fatal(err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	want := `{"name":"ok","n":42,"list":[null,true,0.5]}`
	if got := buf.String(); got != want {
		t.Errorf("Generator output = %q, want %q", got, want)
	}
}

func TestGenerator_pretty(t *testing.T) {
	var buf bytes.Buffer
	g := jflow.NewPrettyGenerator(jflow.NewWriterSink(&buf))

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	must(g.WriteStartObject())
	must(g.WriteFieldName("a"))
	must(g.WriteInt64(1))
	must(g.WriteEndObject())
	must(g.Close())

	want := "{\n\t\"a\" : 1\n}"
	if got := buf.String(); got != want {
		t.Errorf("Generator output = %q, want %q", got, want)
	}
}

func TestGenerator_structuralErrors(t *testing.T) {
	t.Run("FieldNameOutsideObject", func(t *testing.T) {
		var buf bytes.Buffer
		g := jflow.NewGenerator(jflow.NewWriterSink(&buf))
		if err := g.WriteFieldName("x"); err == nil {
			t.Error("WriteFieldName outside an object: got nil error, want one")
		}
	})
	t.Run("ValueWithoutFieldName", func(t *testing.T) {
		var buf bytes.Buffer
		g := jflow.NewGenerator(jflow.NewWriterSink(&buf))
		if err := g.WriteStartObject(); err != nil {
			t.Fatal(err)
		}
		if err := g.WriteInt64(1); err == nil {
			t.Error("value written without a field name: got nil error, want one")
		}
	})
	t.Run("MismatchedEnd", func(t *testing.T) {
		var buf bytes.Buffer
		g := jflow.NewGenerator(jflow.NewWriterSink(&buf))
		if err := g.WriteStartArray(); err != nil {
			t.Fatal(err)
		}
		if err := g.WriteEndObject(); err == nil {
			t.Error("EndObject closing an array: got nil error, want one")
		}
	})
}

// TestGenerator_longString exercises the writeBytes split-and-drain path
// by writing a string longer than the internal buffer.
func TestGenerator_longString(t *testing.T) {
	var buf bytes.Buffer
	g := jflow.NewGenerator(jflow.NewWriterSink(&buf))
	long := strings.Repeat("x", 100000)
	if err := g.WriteString(long); err != nil {
		t.Fatal(err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	want := `"` + long + `"`
	if got := buf.String(); got != want {
		t.Errorf("Generator output length = %d, want %d", len(got), len(want))
	}
}

// TestGenerator_roundTripsParser feeds the compact output of a Generator
// back into a Parser and checks the token stream matches what was written.
func TestGenerator_roundTripsParser(t *testing.T) {
	var buf bytes.Buffer
	g := jflow.NewGenerator(jflow.NewWriterSink(&buf))
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(g.WriteStartArray())
	must(g.WriteString("héllo"))
	must(g.WriteInt64(-7))
	must(g.WriteFloat64(3.5))
	must(g.WriteBool(false))
	must(g.WriteNull())
	must(g.WriteEndArray())
	must(g.Close())

	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(buf.String())))
	want := []jflow.Token{
		jflow.StartArray, jflow.String, jflow.Integer, jflow.Float, jflow.False, jflow.Null, jflow.EndArray,
	}
	for _, w := range want {
		tok, err := p.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if tok != w {
			t.Fatalf("Next = %v, want %v", tok, w)
		}
	}
	if got, err := p.Next(); err != nil || got != jflow.NotAvailable {
		t.Fatalf("Next at end = %v, %v, want NotAvailable, nil", got, err)
	}
}
