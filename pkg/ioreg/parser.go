// Package ioreg decodes the output of the macOS ioreg utility into a flat,
// ordered sequence of properties scoped by the registry objects that own
// them.
//
// Text dumps (ioreg -w0) look like:
//
//	+-o Root  <class IORegistryEntry, id 0x100000100, retain 30>
//	  +-o AppleSmartBattery  <class AppleSmartBattery, id 0x100000a1e, ...>
//	      {
//	        "CurrentCapacity" = 3005
//	        "IsCharging" = No
//	      }
//
// Plist dumps (ioreg -a) are handled by WalkPlist and produce the same event
// shape.
package ioreg

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Object is a registry entry the parser is currently inside of. Class is
// the identifier token printed after the name ("<class AppleSmartBattery, ...").
type Object struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

// Property is one "name" = value line. Value is the raw, unescaped text.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Handler receives every property in order. stack holds all open objects,
// outermost first, and obj is its last element. stack is only valid for the
// duration of the call. A non-nil return aborts the parse.
type Handler func(stack []Object, obj Object, prop Property) error

// Offsets of the fixed-layout parts of ioreg text lines.
const (
	objectNameOffset  = len("+-o ")
	objectClassOffset = len("  <class ")
	propNameOffset    = len(`"`)
	propValueOffset   = len(`" = `)
)

// Parse reads the whole of r and calls fn for each property.
func Parse(r io.Reader, fn Handler) error {
	return ParseLines(NewReaderSource(r), fn)
}

// ParseContext is Parse, but gives up between lines once ctx is done.
func ParseContext(ctx context.Context, r io.Reader, fn Handler) error {
	return ParseLines(WithContext(ctx, NewReaderSource(r)), fn)
}

// ParseLines runs the parser over src. Any error from src, fn or the input
// format stops the parse and is returned as is.
func ParseLines(src LineSource, fn Handler) error {
	p := &parser{}
	for {
		line, err := src.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		p.line++
		if err := p.feed(line, fn); err != nil {
			return err
		}
	}
}

type parser struct {
	stack  []Object
	inBody bool
	line   int
}

func (p *parser) feed(line string, fn Handler) error {
	depth, ok := lineDepth(line)
	if !ok {
		return nil
	}

	if p.inBody {
		if line[depth] == '}' {
			p.inBody = false
			return nil
		}
		return p.property(line, depth, fn)
	}

	switch line[depth] {
	case '{':
		p.inBody = true
		return nil
	case '+':
		return p.object(line, depth)
	}
	return p.errorf(line, "unexpected line marker %q", line[depth])
}

func (p *parser) object(line string, depth int) error {
	nameIdx := depth + objectNameOffset
	if nameIdx > len(line) {
		return p.errorf(line, "truncated object line")
	}
	nameEnd := strings.IndexByte(line[nameIdx:], ' ')
	if nameEnd == -1 {
		return p.errorf(line, "unterminated object name")
	}
	name := line[nameIdx : nameIdx+nameEnd]

	classIdx := nameIdx + nameEnd + objectClassOffset
	if classIdx > len(line) {
		return p.errorf(line, "missing object class")
	}
	classEnd := strings.IndexByte(line[classIdx:], ' ')
	if classEnd == -1 {
		return p.errorf(line, "unterminated object class")
	}
	class := strings.TrimSuffix(line[classIdx:classIdx+classEnd], ",")

	if n := depth / 2; len(p.stack) > n {
		p.stack = p.stack[:n]
	}
	p.stack = append(p.stack, Object{Name: name, Class: class})
	return nil
}

func (p *parser) property(line string, depth int, fn Handler) error {
	nameIdx := depth + propNameOffset
	nameEnd := strings.IndexByte(line[nameIdx:], '"')
	if nameEnd == -1 {
		return p.errorf(line, "unterminated property name")
	}
	if len(p.stack) == 0 {
		return nil
	}
	valueIdx := nameIdx + nameEnd + propValueOffset
	if valueIdx > len(line) {
		return p.errorf(line, "missing property value")
	}
	prop := Property{
		Name:  line[nameIdx : nameIdx+nameEnd],
		Value: line[valueIdx:],
	}
	stack := p.stack[:len(p.stack):len(p.stack)]
	return fn(stack, stack[len(stack)-1], prop)
}

func (p *parser) errorf(line, format string, args ...any) error {
	return &FormatError{Line: p.line, Reason: fmt.Sprintf(format, args...), Text: line}
}

// lineDepth returns the index of the first character that is not part of
// the tree guides. ok is false for blank lines.
func lineDepth(line string) (depth int, ok bool) {
	for i := 0; i < len(line); i++ {
		if c := line[i]; c != ' ' && c != '|' {
			return i, true
		}
	}
	return len(line), false
}
