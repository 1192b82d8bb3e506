// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jflow implements a streaming JSON (RFC 8259) codec.
//
// # Parsing
//
// The Parser type is a pull-style token iterator over a Source. Construct
// one with NewParser, wrapping an io.Reader with NewReaderSource, and call
// Next to advance. Next returns (NotAvailable, nil) at a well-formed end
// of input:
//
//	p := jflow.NewParser(jflow.NewReaderSource(input))
//	for {
//	    tok, err := p.Next()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if tok == jflow.NotAvailable {
//	        break
//	    }
//	    log.Print("token: ", tok)
//	}
//
// While the current token is FieldName, FieldName returns the field's
// name; while it is String, Text returns the decoded text. While it is
// Integer or Float, Int64 and Float64 return the numeric value. The two
// numeric accessors permit lossy cross-reads (an Integer read as Float64,
// or a Float truncated by Int64).
//
// # Generating
//
// The Generator type is the symmetric push-style counterpart, writing
// tokens to a Sink:
//
//	g := jflow.NewGenerator(jflow.NewWriterSink(output))
//	g.WriteStartObject()
//	g.WriteFieldName("ok")
//	g.WriteBool(true)
//	g.WriteEndObject()
//	if err := g.Close(); err != nil {
//	    log.Fatal(err)
//	}
//
// Use NewPrettyGenerator for tab-indented output; the default is compact.
// A Generator must be closed to guarantee buffered bytes reach the sink.
//
// # Errors
//
// Both Parser and Generator report structural and lexical violations as a
// *SyntaxError. Once an operation fails, the instance must not be reused.
//
// # Trees
//
// Package node builds an in-memory Node tree from a Parser, or walks one to
// drive a Generator, for callers that want a DOM-like view of a
// sub-document rather than a raw token stream.
package jflow
