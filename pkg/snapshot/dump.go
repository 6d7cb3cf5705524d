package snapshot

import (
	"fmt"
	"strings"
)

// Entry is one "Name = value" line of a raw record dump.
type Entry struct {
	Name  string
	Value string
}

// Value formats an optional field, printing null when p is nil.
func Value[T any](p *T) string {
	if p == nil {
		return "null"
	}
	return fmt.Sprint(*p)
}

// Dump renders entries as a bracketed block:
//
//	{
//	    Name = value,
//	}
func Dump(entries []Entry) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "    %s = %s,\n", e.Name, e.Value)
	}
	b.WriteString("}")
	return b.String()
}

// JoinDumps renders several record dumps as a bracketed list.
func JoinDumps(dumps []string) string {
	if len(dumps) == 0 {
		return "[]"
	}
	return "[\n" + strings.Join(dumps, ",\n") + "\n]"
}
