// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import (
	"fmt"

	"github.com/cflux/jflow"
)

// Write drives g through a traversal of n, emitting the value it denotes.
func Write(g *jflow.Generator, n *Node) error {
	return n.writeAt(g, DefaultMaxDepth)
}

// WriteDepth is Write with an explicit maximum nesting depth.
func WriteDepth(g *jflow.Generator, n *Node, maxDepth int) error {
	return n.writeAt(g, maxDepth)
}

func (n *Node) writeAt(g *jflow.Generator, depth int) error {
	switch n.kind {
	case Null:
		return g.WriteNull()
	case Bool:
		return g.WriteBool(n.b)
	case Integer:
		return g.WriteInt64(n.i)
	case Float:
		return g.WriteFloat64(n.f)
	case String:
		return g.WriteString(n.s)
	case Array:
		if depth <= 0 {
			return &jflow.SyntaxError{Kind: jflow.KindDepth, Msg: "max nesting depth exceeded", Offset: -1, Ref: jflow.ErrDepthExceeded}
		}
		if err := g.WriteStartArray(); err != nil {
			return err
		}
		for i := range n.arr {
			if err := n.arr[i].writeAt(g, depth-1); err != nil {
				return err
			}
		}
		return g.WriteEndArray()
	case Object:
		if depth <= 0 {
			return &jflow.SyntaxError{Kind: jflow.KindDepth, Msg: "max nesting depth exceeded", Offset: -1, Ref: jflow.ErrDepthExceeded}
		}
		if err := g.WriteStartObject(); err != nil {
			return err
		}
		for i := range n.obj {
			if err := g.WriteFieldName(n.obj[i].name); err != nil {
				return err
			}
			if err := n.obj[i].value.writeAt(g, depth-1); err != nil {
				return err
			}
		}
		return g.WriteEndObject()
	default:
		return fmt.Errorf("node: invalid kind %v", n.kind)
	}
}
