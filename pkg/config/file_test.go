package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"/etc/xbat.json", FormatJSON},
		{"/etc/xbat.toml", FormatTOML},
		{"/etc/xbat.TOML", FormatTOML},
		{"xbat.yaml", FormatYAML},
		{"xbat.yml", FormatYAML},
		{"xbat.conf", FormatJSON},
		{"xbat", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatOf(tt.path); got != tt.want {
			t.Errorf("FormatOf(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"missing.json", "blank.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if name == "blank.json" {
				if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
					t.Fatal(err)
				}
			}
			f, err := NewFile(path)
			if err != nil {
				t.Fatalf("NewFile() error = %v", err)
			}
			want := map[string]interface{}{
				"source":             "auto",
				"ioregPath":          "ioreg",
				"sysfsRoot":          "/sys",
				"socketPath":         DefaultSocketPath,
				"allowNonRootAccess": false,
			}
			for k, v := range want {
				if got := f.LogrusFields()[k]; got != v {
					t.Errorf("LogrusFields()[%s] = %v, want %v", k, got, v)
				}
			}
		})
	}
}

func TestFile_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"xbat.json", `{"source": "upower", "sysfsRoot": "/tmp/sys", "allowNonRootAccess": true}`},
		{"xbat.toml", "source = \"upower\"\nsysfsRoot = \"/tmp/sys\"\nallowNonRootAccess = true\n"},
		{"xbat.yaml", "source: upower\nsysfsRoot: /tmp/sys\nallowNonRootAccess: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			f, err := NewFile(path)
			if err != nil {
				t.Fatalf("NewFile() error = %v", err)
			}
			if got := f.Source(); got != "upower" {
				t.Errorf("Source() = %v, want upower", got)
			}
			if got := f.SysfsRoot(); got != "/tmp/sys" {
				t.Errorf("SysfsRoot() = %v, want /tmp/sys", got)
			}
			if !f.AllowNonRootAccess() {
				t.Errorf("AllowNonRootAccess() = false, want true")
			}
			if got := f.IORegPath(); got != "ioreg" {
				t.Errorf("IORegPath() = %v, want default ioreg", got)
			}
		})
	}
}

func TestFile_LoadMalformed(t *testing.T) {
	for _, name := range []string{"bad.json", "bad.toml", "bad.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := os.WriteFile(path, []byte("{[ source = : \n\t- x"), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := NewFile(path); err == nil {
				t.Errorf("NewFile() error = nil, want error")
			}
		})
	}
}

func TestFile_SaveRoundTrip(t *testing.T) {
	for _, name := range []string{"xbat.json", "xbat.toml", "xbat.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			f := NewFileFromConfig(nil, path)
			f.SetSource("generic")
			f.SetSocketPath("/tmp/xbat.sock")
			f.SetAllowNonRootAccess(true)
			if err := f.Save(); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			loaded, err := NewFile(path)
			if err != nil {
				t.Fatalf("NewFile() error = %v", err)
			}
			want := &RawFileConfig{
				Source:             ptr.To("generic"),
				SocketPath:         ptr.To("/tmp/xbat.sock"),
				AllowNonRootAccess: ptr.To(true),
			}
			if !reflect.DeepEqual(loaded.c, want) {
				t.Errorf("loaded = %+v, want %+v", loaded.c, want)
			}
		})
	}
}

func TestNewRawFileConfigFromConfig(t *testing.T) {
	f := NewFileFromConfig(&RawFileConfig{IORegPath: ptr.To("/usr/sbin/ioreg")}, "")
	raw, err := NewRawFileConfigFromConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if *raw.IORegPath != "/usr/sbin/ioreg" || *raw.Source != "auto" || *raw.SocketPath != DefaultSocketPath {
		t.Errorf("NewRawFileConfigFromConfig() = %+v", raw)
	}

	if _, err := NewRawFileConfigFromConfig(nil); err == nil {
		t.Errorf("NewRawFileConfigFromConfig(nil) error = nil, want error")
	}
}
