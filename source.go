// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow

import "io"

// bufSize is the default capacity of a Parser's read buffer and a
// Generator's write buffer, matching the original implementation's
// initialBuffSize.
const bufSize = 4096

// A Source refills a caller-owned buffer with input bytes. Fill copies up
// to len(buf) bytes into buf and returns the number of bytes copied. A
// return of (0, nil) indicates end of input; once Fill has reported EOF,
// subsequent calls must continue to do so until the source is reset. A
// non-nil error is a resource failure and is surfaced to the Parser as-is.
type Source interface {
	Fill(buf []byte) (int, error)
}

// A Sink drains a caller-owned buffer of output bytes. Drain must consume
// all of buf or return an error; partial writes are not supported at this
// layer.
type Sink interface {
	Drain(buf []byte) error
}

// readerSource adapts an io.Reader to the Source interface.
type readerSource struct{ r io.Reader }

// NewReaderSource returns a Source that fills from r.
func NewReaderSource(r io.Reader) Source { return readerSource{r: r} }

func (s readerSource) Fill(buf []byte) (int, error) {
	n, err := s.r.Read(buf)
	if err == io.EOF {
		return n, nil
	}
	return n, err
}

// writerSink adapts an io.Writer to the Sink interface.
type writerSink struct{ w io.Writer }

// NewWriterSink returns a Sink that drains to w.
func NewWriterSink(w io.Writer) Sink { return writerSink{w: w} }

func (s writerSink) Drain(buf []byte) error {
	_, err := s.w.Write(buf)
	return err
}
