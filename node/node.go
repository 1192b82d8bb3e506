// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package node implements an in-memory JSON tree that can be built from a
// jflow.Parser and rendered to a jflow.Generator, without an intermediate
// Go struct or reflection.
package node

import (
	"fmt"

	"github.com/cflux/jflow"
)

// Kind identifies the concrete type of value a Node holds.
type Kind byte

const (
	Null Kind = iota
	Bool
	Integer
	Float
	String
	Array
	Object
)

var kindStr = [...]string{
	Null:    "null",
	Bool:    "bool",
	Integer: "integer",
	Float:   "float",
	String:  "string",
	Array:   "array",
	Object:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return "invalid kind"
}

// field is one key-value pair of an Object node. Objects keep fields in
// insertion order and allow duplicate keys, mirroring what a JSON stream
// can actually contain; Field and AppendField give the find-or-create and
// always-create behaviors respectively.
type field struct {
	name  string
	value Node
}

// A Node is a single value in a JSON tree: one of Null, Bool, Integer,
// Float, String, Array, or Object. The zero Node is Null.
type Node struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Node
	obj  []field
}

// Kind reports n's concrete type.
func (n *Node) Kind() Kind { return n.kind }

// IsNull reports whether n holds the Null value.
func (n *Node) IsNull() bool { return n.kind == Null }

// typeError reports an accessor called against a Node of the wrong kind. It
// returns a *jflow.SyntaxError wrapping jflow.ErrTypeMismatch, the same
// error identity Parser's numeric accessors use for the equivalent failure,
// so callers have one error type and one sentinel to switch on whether the
// mismatch came from a Node or a Parser.
func typeError(want Kind, got Kind) error {
	return &jflow.SyntaxError{
		Kind:   jflow.KindType,
		Msg:    fmt.Sprintf("want %s, have %s", want, got),
		Offset: -1,
		Ref:    jflow.ErrTypeMismatch,
	}
}

// setType switches n to kind k, discarding any value of a different kind.
// If n is already of kind k, its current value is left untouched.
func (n *Node) setType(k Kind) {
	if n.kind == k {
		return
	}
	*n = Node{kind: k}
}

// SetNull resets n to the Null value.
func (n *Node) SetNull() { n.setType(Null) }

// SetBool sets n to a Bool value.
func (n *Node) SetBool(v bool) { n.setType(Bool); n.b = v }

// SetInteger sets n to an Integer value.
func (n *Node) SetInteger(v int64) { n.setType(Integer); n.i = v }

// SetFloat sets n to a Float value.
func (n *Node) SetFloat(v float64) { n.setType(Float); n.f = v }

// SetString sets n to a String value.
func (n *Node) SetString(v string) { n.setType(String); n.s = v }

// Bool returns n's boolean value, or an error if n is not a Bool.
func (n *Node) Bool() (bool, error) {
	if n.kind != Bool {
		return false, typeError(Bool, n.kind)
	}
	return n.b, nil
}

// BoolOr returns n's boolean value, or def if n is Null. It still reports
// an error if n holds some other, non-boolean value.
func (n *Node) BoolOr(def bool) (bool, error) {
	if n.kind == Null {
		return def, nil
	}
	return n.Bool()
}

// Integer returns n's integer value. A Float node is truncated toward
// zero; any other kind is an error.
func (n *Node) Integer() (int64, error) {
	switch n.kind {
	case Integer:
		return n.i, nil
	case Float:
		return int64(n.f), nil
	}
	return 0, typeError(Integer, n.kind)
}

// IntegerOr returns n's integer value, or def if n is Null.
func (n *Node) IntegerOr(def int64) (int64, error) {
	if n.kind == Null {
		return def, nil
	}
	return n.Integer()
}

// Float returns n's floating-point value. An Integer node is widened; any
// other kind is an error.
func (n *Node) Float() (float64, error) {
	switch n.kind {
	case Float:
		return n.f, nil
	case Integer:
		return float64(n.i), nil
	}
	return 0, typeError(Float, n.kind)
}

// FloatOr returns n's floating-point value, or def if n is Null.
func (n *Node) FloatOr(def float64) (float64, error) {
	if n.kind == Null {
		return def, nil
	}
	return n.Float()
}

// String returns n's string value, or an error if n is not a String.
func (n *Node) String() (string, error) {
	if n.kind != String {
		return "", typeError(String, n.kind)
	}
	return n.s, nil
}

// StringOr returns n's string value, or def if n is Null.
func (n *Node) StringOr(def string) (string, error) {
	if n.kind == Null {
		return def, nil
	}
	return n.String()
}

// Size reports the number of elements of an Array or fields of an Object;
// for any other kind it reports 1.
func (n *Node) Size() int {
	switch n.kind {
	case Array:
		return len(n.arr)
	case Object:
		return len(n.obj)
	default:
		return 1
	}
}

// Index returns a pointer to the i'th element of n, converting n to an
// Array first if it is not already one, and growing it as needed so that
// index i exists (new elements in between are Null). The returned pointer
// is invalidated by any later call that appends to n.
func (n *Node) Index(i int) *Node {
	n.setType(Array)
	for len(n.arr) <= i {
		n.arr = append(n.arr, Node{})
	}
	return &n.arr[i]
}

// Elements returns pointers to the elements of an Array node, or nil if n
// is not an Array.
func (n *Node) Elements() []*Node {
	if n.kind != Array {
		return nil
	}
	out := make([]*Node, len(n.arr))
	for i := range n.arr {
		out[i] = &n.arr[i]
	}
	return out
}

// Append adds a new Null element to the end of n, converting n to an Array
// first if needed, and returns a pointer to it.
func (n *Node) Append() *Node {
	n.setType(Array)
	n.arr = append(n.arr, Node{})
	return &n.arr[len(n.arr)-1]
}

// Field returns a pointer to the value of the first field of n named key,
// converting n to an Object first if it is not already one. If no field
// with that name exists, a new one is appended with a Null value.
func (n *Node) Field(key string) *Node {
	n.setType(Object)
	for i := range n.obj {
		if n.obj[i].name == key {
			return &n.obj[i].value
		}
	}
	n.obj = append(n.obj, field{name: key})
	return &n.obj[len(n.obj)-1].value
}

// Lookup returns a pointer to the value of the first field of n named key.
// Unlike Field, it never modifies n: if n is not an Object, or has no
// field named key, it returns a pointer to a shared Null node that callers
// must treat as read-only.
func (n *Node) Lookup(key string) *Node {
	if n.kind == Object {
		for i := range n.obj {
			if n.obj[i].name == key {
				return &n.obj[i].value
			}
		}
	}
	return &sharedNull
}

var sharedNull Node

// AppendField adds a new field named key with a Null value to the end of
// n, converting n to an Object first if needed, and returns a pointer to
// its value. Unlike Field, it does not check for an existing field with
// the same name, so an Object may carry duplicate keys.
func (n *Node) AppendField(key string) *Node {
	n.setType(Object)
	n.obj = append(n.obj, field{name: key})
	return &n.obj[len(n.obj)-1].value
}

// A Field pairs an Object field's name with a pointer to its value, as
// returned by Fields.
type Field struct {
	Name  string
	Value *Node
}

// Fields returns the fields of an Object node in insertion order, or nil
// if n is not an Object.
func (n *Node) Fields() []Field {
	if n.kind != Object {
		return nil
	}
	out := make([]Field, len(n.obj))
	for i := range n.obj {
		out[i] = Field{Name: n.obj[i].name, Value: &n.obj[i].value}
	}
	return out
}
