// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import "github.com/cflux/jflow"

// DefaultMaxDepth is the container nesting depth Read refuses to exceed
// when no explicit limit is given.
const DefaultMaxDepth = 50

// Read builds a Node tree from the value at p's current position,
// advancing p past it, and returns the root. If p has not yet produced a
// token, Read fetches the first one itself.
func Read(p *jflow.Parser) (Node, error) {
	var n Node
	if err := n.readAt(p, DefaultMaxDepth); err != nil {
		return Node{}, err
	}
	return n, nil
}

// ReadDepth is Read with an explicit maximum nesting depth.
func ReadDepth(p *jflow.Parser, maxDepth int) (Node, error) {
	var n Node
	if err := n.readAt(p, maxDepth); err != nil {
		return Node{}, err
	}
	return n, nil
}

// readAt decodes the value at p's current token into n, then advances p
// once more so that on return p.Token is positioned just past the value
// that was read -- ready for a sibling call of readAt, or for the caller
// to inspect what follows.
func (n *Node) readAt(p *jflow.Parser, depth int) error {
	tok := p.Token()
	if tok == jflow.NotAvailable {
		var err error
		tok, err = p.Next()
		if err != nil {
			return err
		}
	}
	switch tok {
	case jflow.Null:
		n.SetNull()
	case jflow.True:
		n.SetBool(true)
	case jflow.False:
		n.SetBool(false)
	case jflow.Integer:
		v, err := p.Int64()
		if err != nil {
			return err
		}
		n.SetInteger(v)
	case jflow.Float:
		v, err := p.Float64()
		if err != nil {
			return err
		}
		n.SetFloat(v)
	case jflow.String:
		n.SetString(p.Text())
	case jflow.StartArray:
		if depth <= 0 {
			return &jflow.SyntaxError{Kind: jflow.KindDepth, Msg: "max nesting depth exceeded", Offset: -1, Ref: jflow.ErrDepthExceeded}
		}
		n.setType(Array)
		cur, err := p.Next()
		if err != nil {
			return err
		}
		for cur != jflow.EndArray && cur != jflow.NotAvailable {
			var child Node
			if err := child.readAt(p, depth-1); err != nil {
				return err
			}
			n.arr = append(n.arr, child)
			cur = p.Token()
		}
	case jflow.StartObject:
		if depth <= 0 {
			return &jflow.SyntaxError{Kind: jflow.KindDepth, Msg: "max nesting depth exceeded", Offset: -1, Ref: jflow.ErrDepthExceeded}
		}
		n.setType(Object)
		cur, err := p.Next()
		if err != nil {
			return err
		}
		for cur == jflow.FieldName {
			name := p.FieldName()
			if _, err := p.Next(); err != nil {
				return err
			}
			var child Node
			if err := child.readAt(p, depth-1); err != nil {
				return err
			}
			n.obj = append(n.obj, field{name: name, value: child})
			cur = p.Token()
		}
	default:
		return nil
	}
	_, err := p.Next()
	return err
}
