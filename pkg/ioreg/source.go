package ioreg

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineSource yields lines without their terminators. ReadLine returns io.EOF
// once no lines are left.
type LineSource interface {
	ReadLine() (string, error)
}

type readerSource struct {
	r *bufio.Reader
}

// NewReaderSource reads lines from r. Lines have no length limit, since
// ioreg -w0 prints arbitrarily long property values.
func NewReaderSource(r io.Reader) LineSource {
	return &readerSource{r: bufio.NewReader(r)}
}

func (s *readerSource) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

type contextSource struct {
	ctx context.Context
	src LineSource
}

// WithContext returns a LineSource that fails with ctx.Err() before reading
// a line once ctx is done. It never interrupts a line mid-read.
func WithContext(ctx context.Context, src LineSource) LineSource {
	return &contextSource{ctx: ctx, src: src}
}

func (s *contextSource) ReadLine() (string, error) {
	if err := s.ctx.Err(); err != nil {
		return "", err
	}
	return s.src.ReadLine()
}

type sliceSource struct {
	lines []string
}

// LinesSource yields the given lines in order.
func LinesSource(lines ...string) LineSource {
	return &sliceSource{lines: lines}
}

func (s *sliceSource) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}
