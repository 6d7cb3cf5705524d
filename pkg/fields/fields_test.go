package fields

import (
	"errors"
	"testing"
)

type record struct {
	Short   *int16
	Medium  *int32
	Long    *int64
	Counter *uint64
	Flag    *bool
	Name    *string
	Ratio   *float64
}

var testTable = Table[record]{
	"Short":   Int16(func(r *record) **int16 { return &r.Short }),
	"Medium":  Int32(func(r *record) **int32 { return &r.Medium }),
	"Long":    Int64(func(r *record) **int64 { return &r.Long }),
	"Counter": Uint64(func(r *record) **uint64 { return &r.Counter }),
	"Flag":    Bool(func(r *record) **bool { return &r.Flag }),
	"Name":    String(func(r *record) **string { return &r.Name }),
	"Ratio":   Float(func(r *record) **float64 { return &r.Ratio }),
}

func TestParseSigned(t *testing.T) {
	tests := []struct {
		raw    string
		bits   int
		want   int64
		wantOk bool
	}{
		{"12", 16, 12, true},
		{"-1", 16, -1, true},
		{"65535", 16, -1, true},
		{"32768", 16, -32768, true},
		{"65536", 16, 0, false},
		{"4294967295", 32, -1, true},
		{"18446744073709551184", 64, -432, true},
		{"18446744073709551615", 64, -1, true},
		{"18446744073709551616", 64, 0, false},
		{"Yes", 64, 0, false},
		{"", 32, 0, false},
		{"1.5", 32, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseSigned(tt.raw, tt.bits)
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("ParseSigned(%q, %d) = %v, %v, want %v, %v", tt.raw, tt.bits, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestParseSigned_UnsignedMatchesNegative(t *testing.T) {
	tests := []struct {
		unsigned string
		negative string
		bits     int
	}{
		{"65535", "-1", 16},
		{"65100", "-436", 16},
		{"4294966864", "-432", 32},
		{"18446744073709551184", "-432", 64},
		{"18446744073709551100", "-516", 64},
	}
	for _, tt := range tests {
		t.Run(tt.unsigned, func(t *testing.T) {
			a, okA := ParseSigned(tt.unsigned, tt.bits)
			b, okB := ParseSigned(tt.negative, tt.bits)
			if !okA || !okB || a != b {
				t.Errorf("ParseSigned(%q) = %v, ParseSigned(%q) = %v", tt.unsigned, a, tt.negative, b)
			}
		})
	}
}

func TestTable_Apply(t *testing.T) {
	var r record
	for _, kv := range [][2]string{
		{"Short", "65535"},
		{"Medium", "-7"},
		{"Long", "18446744073709551184"},
		{"Counter", "1718000000"},
		{"Flag", "Yes"},
		{"Name", `"SMP"`},
		{"Ratio", "0.5"},
		{"Unknown", "whatever"},
	} {
		if err := testTable.Apply(&r, kv[0], kv[1]); err != nil {
			t.Fatalf("Apply(%s, %s) error = %v", kv[0], kv[1], err)
		}
	}

	if r.Short == nil || *r.Short != -1 {
		t.Errorf("Short = %v, want -1", r.Short)
	}
	if r.Medium == nil || *r.Medium != -7 {
		t.Errorf("Medium = %v, want -7", r.Medium)
	}
	if r.Long == nil || *r.Long != -432 {
		t.Errorf("Long = %v, want -432", r.Long)
	}
	if r.Counter == nil || *r.Counter != 1718000000 {
		t.Errorf("Counter = %v, want 1718000000", r.Counter)
	}
	if r.Flag == nil || !*r.Flag {
		t.Errorf("Flag = %v, want true", r.Flag)
	}
	if r.Name == nil || *r.Name != `"SMP"` {
		t.Errorf("Name = %v, want \"SMP\"", r.Name)
	}
	if r.Ratio == nil || *r.Ratio != 0.5 {
		t.Errorf("Ratio = %v, want 0.5", r.Ratio)
	}
}

func TestTable_LastWriteWins(t *testing.T) {
	var r record
	for _, v := range []string{"Yes", "No"} {
		if err := testTable.Apply(&r, "Flag", v); err != nil {
			t.Fatal(err)
		}
	}
	if r.Flag == nil || *r.Flag {
		t.Errorf("Flag = %v, want false", r.Flag)
	}
}

func TestTable_UnsetStaysNil(t *testing.T) {
	var r record
	if err := testTable.Apply(&r, "Long", "1"); err != nil {
		t.Fatal(err)
	}
	if r.Short != nil || r.Flag != nil || r.Name != nil {
		t.Errorf("unrelated fields were set: %+v", r)
	}
}

func TestTable_InvalidData(t *testing.T) {
	tests := []struct {
		field string
		raw   string
	}{
		{"Flag", "yes"},
		{"Flag", "true"},
		{"Flag", "1"},
		{"Short", "70000"},
		{"Long", "abc"},
		{"Counter", "-1"},
		{"Ratio", "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.raw, func(t *testing.T) {
			var r record
			err := testTable.Apply(&r, tt.field, tt.raw)
			if !errors.Is(err, ErrInvalidData) {
				t.Fatalf("Apply() error = %v, want ErrInvalidData", err)
			}
			var ide *InvalidDataError
			if !errors.As(err, &ide) || ide.Field != tt.field || ide.Value != tt.raw {
				t.Errorf("InvalidDataError = %+v", ide)
			}
		})
	}
}

func TestTable_ApplyMap(t *testing.T) {
	var r record
	err := testTable.ApplyMap(&r, map[string]string{
		"Long":  "5",
		"Flag":  "No",
		"other": "x",
	})
	if err != nil {
		t.Fatalf("ApplyMap() error = %v", err)
	}
	if r.Long == nil || *r.Long != 5 || r.Flag == nil || *r.Flag {
		t.Errorf("ApplyMap() = %+v", r)
	}

	err = testTable.ApplyMap(&record{}, map[string]string{"Flag": "maybe"})
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("ApplyMap() error = %v, want ErrInvalidData", err)
	}
}

func TestTable_Names(t *testing.T) {
	got := testTable.Names()
	if len(got) != 7 || got[0] != "Counter" || got[6] != "Short" {
		t.Errorf("Names() = %v", got)
	}
}
