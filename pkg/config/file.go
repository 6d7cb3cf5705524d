package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

// DefaultSocketPath is where the daemon listens unless configured.
const DefaultSocketPath = "/var/run/xbat.sock"

var (
	defaultFileConfig = &RawFileConfig{
		Source:             ptr.To("auto"),
		IORegPath:          ptr.To("ioreg"),
		SysfsRoot:          ptr.To("/sys"),
		SocketPath:         ptr.To(DefaultSocketPath),
		AllowNonRootAccess: ptr.To(false),
	}
)

var _ Config = &File{}

// Format is the on-disk encoding of a config file.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the encoding from the file extension. Anything that is
// not TOML or YAML is JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

type RawFileConfig struct {
	Source             *string `json:"source,omitempty" toml:"source,omitempty" yaml:"source,omitempty"`
	IORegPath          *string `json:"ioregPath,omitempty" toml:"ioregPath,omitempty" yaml:"ioregPath,omitempty"`
	SysfsRoot          *string `json:"sysfsRoot,omitempty" toml:"sysfsRoot,omitempty" yaml:"sysfsRoot,omitempty"`
	SocketPath         *string `json:"socketPath,omitempty" toml:"socketPath,omitempty" yaml:"socketPath,omitempty"`
	AllowNonRootAccess *bool   `json:"allowNonRootAccess,omitempty" toml:"allowNonRootAccess,omitempty" yaml:"allowNonRootAccess,omitempty"`
}

// NewRawFileConfigFromConfig captures the effective values of c, defaults
// included.
func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	return &RawFileConfig{
		Source:             ptr.To(c.Source()),
		IORegPath:          ptr.To(c.IORegPath()),
		SysfsRoot:          ptr.To(c.SysfsRoot()),
		SocketPath:         ptr.To(c.SocketPath()),
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
	}, nil
}

// value returns the configured value, else the default.
func value[T any](f *File, field func(*RawFileConfig) *T) T {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if v := field(f.c); v != nil {
		return *v
	}
	return *field(defaultFileConfig)
}

func set[T any](f *File, field func(*RawFileConfig) **T, v T) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	*field(f.c) = &v
}

func (f *File) Source() string {
	return value(f, func(c *RawFileConfig) *string { return c.Source })
}

func (f *File) IORegPath() string {
	return value(f, func(c *RawFileConfig) *string { return c.IORegPath })
}

func (f *File) SysfsRoot() string {
	return value(f, func(c *RawFileConfig) *string { return c.SysfsRoot })
}

func (f *File) SocketPath() string {
	return value(f, func(c *RawFileConfig) *string { return c.SocketPath })
}

func (f *File) AllowNonRootAccess() bool {
	return value(f, func(c *RawFileConfig) *bool { return c.AllowNonRootAccess })
}

func (f *File) SetSource(s string) {
	set(f, func(c *RawFileConfig) **string { return &c.Source }, s)
}

func (f *File) SetIORegPath(s string) {
	set(f, func(c *RawFileConfig) **string { return &c.IORegPath }, s)
}

func (f *File) SetSysfsRoot(s string) {
	set(f, func(c *RawFileConfig) **string { return &c.SysfsRoot }, s)
}

func (f *File) SetSocketPath(s string) {
	set(f, func(c *RawFileConfig) **string { return &c.SocketPath }, s)
}

func (f *File) SetAllowNonRootAccess(b bool) {
	set(f, func(c *RawFileConfig) **bool { return &c.AllowNonRootAccess }, b)
}

// Load reads the file. A missing or blank file yields the empty config, so
// every accessor reports its default.
func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if len(bytes.TrimSpace(b)) == 0 {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	switch FormatOf(f.filepath) {
	case FormatTOML:
		err = toml.Unmarshal(b, &conf)
	case FormatYAML:
		err = yaml.Unmarshal(b, &conf)
	default:
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	var buf bytes.Buffer
	var err error
	switch FormatOf(f.filepath) {
	case FormatTOML:
		err = toml.NewEncoder(&buf).Encode(f.c)
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(f.c)
		if err == nil {
			err = enc.Close()
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(f.c)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	if err := os.WriteFile(f.filepath, buf.Bytes(), 0644); err != nil {
		return pkgerrors.Wrapf(err, "failed to write file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"source":             f.Source(),
		"ioregPath":          f.IORegPath(),
		"sysfsRoot":          f.SysfsRoot(),
		"socketPath":         f.SocketPath(),
		"allowNonRootAccess": f.AllowNonRootAccess(),
	}
}
