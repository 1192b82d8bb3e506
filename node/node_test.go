// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cflux/jflow"
	"github.com/cflux/jflow/node"
)

func mustRead(t *testing.T, input string) node.Node {
	t.Helper()
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(input)))
	n, err := node.Read(p)
	if err != nil {
		t.Fatalf("Read(%#q) failed: %v", input, err)
	}
	return n
}

func TestRead_scalars(t *testing.T) {
	tests := []struct {
		input string
		kind  node.Kind
	}{
		{"null", node.Null},
		{"true", node.Bool},
		{"false", node.Bool},
		{"42", node.Integer},
		{"-42", node.Integer},
		{"3.5", node.Float},
		{`"hi"`, node.String},
	}
	for _, test := range tests {
		n := mustRead(t, test.input)
		if n.Kind() != test.kind {
			t.Errorf("Read(%#q).Kind() = %v, want %v", test.input, n.Kind(), test.kind)
		}
	}

	n := mustRead(t, "42")
	if v, err := n.Integer(); err != nil || v != 42 {
		t.Errorf("Integer() = %v, %v, want 42, nil", v, err)
	}
	n = mustRead(t, "3.5")
	if v, err := n.Float(); err != nil || v != 3.5 {
		t.Errorf("Float() = %v, %v, want 3.5, nil", v, err)
	}
	n = mustRead(t, `"hi"`)
	if v, err := n.String(); err != nil || v != "hi" {
		t.Errorf("String() = %v, %v, want hi, nil", v, err)
	}
}

func TestRead_arrayAndObject(t *testing.T) {
	n := mustRead(t, `{"a": [1, 2, 3], "b": {"c": true}}`)
	if n.Kind() != node.Object {
		t.Fatalf("Kind() = %v, want Object", n.Kind())
	}
	if got := n.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}

	a := n.Lookup("a")
	if a.Kind() != node.Array {
		t.Fatalf("a.Kind() = %v, want Array", a.Kind())
	}
	if got := a.Size(); got != 3 {
		t.Errorf("a.Size() = %d, want 3", got)
	}
	for i, want := range []int64{1, 2, 3} {
		v, err := a.Index(i).Integer()
		if err != nil || v != want {
			t.Errorf("a.Index(%d) = %v, %v, want %d, nil", i, v, err, want)
		}
	}

	b := n.Lookup("b")
	c := b.Lookup("c")
	v, err := c.Bool()
	if err != nil || v != true {
		t.Errorf("b.c = %v, %v, want true, nil", v, err)
	}

	if missing := n.Lookup("nonesuch"); !missing.IsNull() {
		t.Errorf("Lookup(nonesuch).IsNull() = false, want true")
	}
}

func TestRead_depthLimit(t *testing.T) {
	var b strings.Builder
	const depth = 60
	for i := 0; i < depth; i++ {
		b.WriteByte('[')
	}
	for i := 0; i < depth; i++ {
		b.WriteByte(']')
	}
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(b.String())))
	if _, err := node.Read(p); err == nil {
		t.Error("Read with nesting beyond DefaultMaxDepth: got nil error, want one")
	}
}

func TestWrite_roundTrip(t *testing.T) {
	var n node.Node
	n.Field("name").SetString("ok")
	n.Field("count").SetInteger(3)
	list := n.Field("list")
	list.Append().SetInteger(1)
	list.Append().SetInteger(2)
	list.Append().SetNull()

	var buf bytes.Buffer
	g := jflow.NewGenerator(jflow.NewWriterSink(&buf))
	if err := node.Write(g, &n); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	want := `{"name":"ok","count":3,"list":[1,2,null]}`
	got := buf.String()
	if got != want {
		t.Errorf("Write output = %q, want %q", got, want)
	}

	// And back through Read to confirm the shape matches.
	p := jflow.NewParser(jflow.NewReaderSource(strings.NewReader(got)))
	round, err := node.Read(p)
	if err != nil {
		t.Fatalf("Read of written output failed: %v", err)
	}
	if round.Lookup("count").Kind() != node.Integer {
		t.Errorf("round-tripped count kind = %v, want Integer", round.Lookup("count").Kind())
	}
}

func TestAppendField_allowsDuplicateKeys(t *testing.T) {
	var n node.Node
	n.AppendField("a").SetInteger(1)
	n.AppendField("a").SetInteger(2)
	if got := n.Size(); got != 2 {
		t.Fatalf("Size() = %d, want 2", got)
	}
	fields := n.Fields()
	if len(fields) != 2 || fields[0].Name != "a" || fields[1].Name != "a" {
		t.Fatalf("Fields() = %+v, want two fields named a", fields)
	}
	// Field (find-or-create) returns the first match.
	if v, _ := n.Field("a").Integer(); v != 1 {
		t.Errorf("Field(a) = %d, want 1 (first match)", v)
	}
}

func TestAccessorDefaults(t *testing.T) {
	var n node.Node
	if v, err := n.IntegerOr(9); err != nil || v != 9 {
		t.Errorf("IntegerOr on Null = %v, %v, want 9, nil", v, err)
	}
	n.SetString("x")
	if _, err := n.IntegerOr(9); err == nil {
		t.Errorf("IntegerOr on a String node: got nil error, want one")
	}
}

func TestAccessorTypeMismatch_sharesSentinelWithParser(t *testing.T) {
	var n node.Node
	n.SetString("x")
	_, err := n.Integer()
	if !errors.Is(err, jflow.ErrTypeMismatch) {
		t.Errorf("Integer() on a String node: error %v does not wrap jflow.ErrTypeMismatch", err)
	}
	var se *jflow.SyntaxError
	if !errors.As(err, &se) {
		t.Errorf("Integer() on a String node: error %v is not a *jflow.SyntaxError", err)
	}
}
