// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jflow-fmt streams a JSON document through a Parser and a
// Generator, either compacting it or indenting it, without building an
// intermediate tree.
//
// Usage:
//
//	jflow-fmt pretty|minify inputFile outputFile [--prettify]
//
// The subcommand selects the output style; --prettify forces pretty
// output regardless of the subcommand, so "minify --prettify" behaves
// like "pretty". Exit status is 0 on success and non-zero if the input
// could not be parsed as JSON.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cflux/jflow"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("jflow-fmt", flag.ContinueOnError)
	prettify := fs.Bool("prettify", false, "force pretty (indented) output")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest) > 3 {
		// Flags may also follow the positional arguments.
		if err := fs.Parse(rest[3:]); err != nil {
			return 2
		}
		rest = append(rest[:3:3], fs.Args()...)
	}
	if len(rest) != 3 {
		fmt.Fprintln(os.Stderr, "usage: jflow-fmt pretty|minify inputFile outputFile [--prettify]")
		return 2
	}
	mode, inputPath, outputPath := rest[0], rest[1], rest[2]

	var pretty bool
	switch mode {
	case "pretty":
		pretty = true
	case "minify":
		pretty = false
	default:
		fmt.Fprintf(os.Stderr, "jflow-fmt: unknown mode %q, want pretty or minify\n", mode)
		return 2
	}
	if *prettify {
		pretty = true
	}

	if err := transcode(inputPath, outputPath, pretty); err != nil {
		fmt.Fprintf(os.Stderr, "jflow-fmt: %v\n", err)
		return 1
	}
	return 0
}

// transcode streams every token from inputPath to outputPath, re-emitting
// each one without building a tree.
func transcode(inputPath, outputPath string, pretty bool) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	p := jflow.NewParser(jflow.NewReaderSource(in))
	var g *jflow.Generator
	if pretty {
		g = jflow.NewPrettyGenerator(jflow.NewWriterSink(out))
	} else {
		g = jflow.NewGenerator(jflow.NewWriterSink(out))
	}

	for {
		tok, err := p.Next()
		if err != nil {
			return err
		}
		if tok == jflow.NotAvailable {
			break
		}
		if err := copyToken(p, g, tok); err != nil {
			return err
		}
	}
	return g.Close()
}

func copyToken(p *jflow.Parser, g *jflow.Generator, tok jflow.Token) error {
	switch tok {
	case jflow.StartObject:
		return g.WriteStartObject()
	case jflow.EndObject:
		return g.WriteEndObject()
	case jflow.StartArray:
		return g.WriteStartArray()
	case jflow.EndArray:
		return g.WriteEndArray()
	case jflow.FieldName:
		return g.WriteFieldName(p.FieldName())
	case jflow.String:
		return g.WriteString(p.Text())
	case jflow.Integer:
		v, err := p.Int64()
		if err != nil {
			return err
		}
		return g.WriteInt64(v)
	case jflow.Float:
		v, err := p.Float64()
		if err != nil {
			return err
		}
		return g.WriteFloat64(v)
	case jflow.True:
		return g.WriteBool(true)
	case jflow.False:
		return g.WriteBool(false)
	case jflow.Null:
		return g.WriteNull()
	}
	return fmt.Errorf("unexpected token %v", tok)
}
