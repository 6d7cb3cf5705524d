package ioreg

import (
	"context"
	"io"
	"sort"
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"howett.net/plist"
)

// Keys ioreg -a uses for registry structure rather than properties.
const (
	plistChildrenKey = "IORegistryEntryChildren"
	plistNameKey     = "IORegistryEntryName"
	plistClassKey    = "IOObjectClass"
)

// WalkPlist decodes ioreg -a output and calls fn for every scalar property,
// in the same shape Parse produces for the text format. Integers are
// rendered in decimal and booleans as Yes/No so the same field coercion
// works for both formats. Properties of one object are visited in key order,
// then its children depth-first.
func WalkPlist(r io.Reader, fn Handler) error {
	return WalkPlistContext(context.Background(), r, fn)
}

// WalkPlistContext is WalkPlist, but checks ctx before visiting each object.
func WalkPlistContext(ctx context.Context, r io.Reader, fn Handler) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var root any
	if _, err := plist.Unmarshal(b, &root); err != nil {
		return pkgerrors.Wrapf(ErrFormat, "failed to decode plist: %v", err)
	}
	w := &plistWalker{ctx: ctx, fn: fn}
	return w.node(root)
}

type plistWalker struct {
	ctx   context.Context
	fn    Handler
	stack []Object
}

func (w *plistWalker) node(n any) error {
	switch v := n.(type) {
	case []any:
		for _, child := range v {
			if err := w.node(child); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		return w.object(v)
	}
	return pkgerrors.Wrapf(ErrFormat, "unexpected plist node %T", n)
}

func (w *plistWalker) object(dict map[string]any) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	w.stack = append(w.stack, plistObject(dict))
	defer func() { w.stack = w.stack[:len(w.stack)-1] }()

	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stack := w.stack[:len(w.stack):len(w.stack)]
	for _, k := range keys {
		if k == plistChildrenKey {
			continue
		}
		text, ok := scalarText(dict[k])
		if !ok {
			continue
		}
		if err := w.fn(stack, stack[len(stack)-1], Property{Name: k, Value: text}); err != nil {
			return err
		}
	}

	if children, ok := dict[plistChildrenKey]; ok {
		return w.node(children)
	}
	return nil
}

func plistObject(dict map[string]any) Object {
	var o Object
	o.Class, _ = dict[plistClassKey].(string)
	o.Name, _ = dict[plistNameKey].(string)
	if o.Name == "" {
		o.Name = o.Class
	}
	return o
}

// scalarText renders numbers, booleans and strings the way the text dump
// prints them, strings in double quotes. Dictionaries, arrays, data and
// dates are skipped.
func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return "Yes", true
		}
		return "No", true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int:
		return strconv.Itoa(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case string:
		return `"` + x + `"`, true
	}
	return "", false
}
