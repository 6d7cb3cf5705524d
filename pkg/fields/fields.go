// Package fields turns raw text values into typed, optional struct fields
// using a static table keyed by field name.
//
// A table is declared once per record type:
//
//	var table = fields.Table[State]{
//		"CycleCount": fields.Int64(func(s *State) **int64 { return &s.CycleCount }),
//		"IsCharging": fields.Bool(func(s *State) **bool { return &s.IsCharging }),
//	}
//
// and consulted once per incoming property with Apply.
package fields

import (
	"sort"
	"strconv"
)

// Kind is the coercion rule of a field.
type Kind int

const (
	KindInt Kind = iota
	KindUint
	KindBool
	KindString
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindUint:
		return "unsigned integer"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	}
	return "unknown"
}

// Field describes how one named value is stored into S. Set returns false
// when raw does not satisfy the rule; the table turns that into an
// InvalidDataError carrying the field name.
type Field[S any] struct {
	Kind Kind
	Set  func(s *S, raw string) bool
}

// Table maps source field names to their descriptors.
type Table[S any] map[string]Field[S]

// Apply stores raw into the field called name. Unknown names are ignored.
// A field that was already set is overwritten.
func (t Table[S]) Apply(s *S, name, raw string) error {
	f, ok := t[name]
	if !ok {
		return nil
	}
	if !f.Set(s, raw) {
		return &InvalidDataError{Field: name, Value: raw, Kind: f.Kind}
	}
	return nil
}

// ApplyMap applies every entry of m in key order, stopping at the first
// invalid value.
func (t Table[S]) ApplyMap(s *S, m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := t.Apply(s, k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the known field names, sorted.
func (t Table[S]) Names() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type signed interface {
	~int16 | ~int32 | ~int64
}

// Int16 parses a signed 16-bit integer, see ParseSigned.
func Int16[S any](field func(*S) **int16) Field[S] { return signedField(16, field) }

// Int32 parses a signed 32-bit integer, see ParseSigned.
func Int32[S any](field func(*S) **int32) Field[S] { return signedField(32, field) }

// Int64 parses a signed 64-bit integer, see ParseSigned.
func Int64[S any](field func(*S) **int64) Field[S] { return signedField(64, field) }

func signedField[S any, T signed](bits int, field func(*S) **T) Field[S] {
	return Field[S]{
		Kind: KindInt,
		Set: func(s *S, raw string) bool {
			v, ok := ParseSigned(raw, bits)
			if !ok {
				return false
			}
			t := T(v)
			*field(s) = &t
			return true
		},
	}
}

// Uint64 parses an unsigned 64-bit integer. Negative text is rejected.
func Uint64[S any](field func(*S) **uint64) Field[S] {
	return Field[S]{
		Kind: KindUint,
		Set: func(s *S, raw string) bool {
			v, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return false
			}
			*field(s) = &v
			return true
		},
	}
}

// Bool accepts the literal tokens Yes and No.
func Bool[S any](field func(*S) **bool) Field[S] {
	return Field[S]{
		Kind: KindBool,
		Set: func(s *S, raw string) bool {
			var v bool
			switch raw {
			case "Yes":
				v = true
			case "No":
				v = false
			default:
				return false
			}
			*field(s) = &v
			return true
		},
	}
}

// String stores raw as is.
func String[S any](field func(*S) **string) Field[S] {
	return Field[S]{
		Kind: KindString,
		Set: func(s *S, raw string) bool {
			*field(s) = &raw
			return true
		},
	}
}

// Float parses a decimal floating point number.
func Float[S any](field func(*S) **float64) Field[S] {
	return Field[S]{
		Kind: KindFloat,
		Set: func(s *S, raw string) bool {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return false
			}
			*field(s) = &v
			return true
		},
	}
}

// ParseSigned parses raw as a signed integer of the given bit size. Text
// that only fits the unsigned range of the same size is reinterpreted as
// two's complement, so 65535 parses as -1 at 16 bits.
func ParseSigned(raw string, bits int) (int64, bool) {
	if v, err := strconv.ParseInt(raw, 10, bits); err == nil {
		return v, true
	}
	u, err := strconv.ParseUint(raw, 10, bits)
	if err != nil {
		return 0, false
	}
	shift := 64 - uint(bits)
	return int64(u<<shift) >> shift, true
}
