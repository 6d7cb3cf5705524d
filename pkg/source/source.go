// Package source resolves a source name to a platform collaborator and
// takes one battery snapshot from it.
package source

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/xbat/pkg/apple"
	"github.com/charlie0129/xbat/pkg/generic"
	"github.com/charlie0129/xbat/pkg/snapshot"
	"github.com/charlie0129/xbat/pkg/sysfs"
	"github.com/charlie0129/xbat/pkg/upower"
	"github.com/charlie0129/xbat/pkg/win32"
)

// Source names.
const (
	Auto       = "auto"
	IOReg      = "ioreg"
	IORegPlist = "ioreg-plist"
	Sysfs      = "sysfs"
	UPower     = "upower"
	Win32      = "win32"
	Win32Basic = "win32-basic"
	Generic    = "generic"
)

// Options configures the collaborators. Zero values select the defaults
// of each package.
type Options struct {
	IORegPath string
	SysfsRoot string
	// Bus overrides the D-Bus system bus used by the upower source.
	Bus upower.Bus
}

type opener func(ctx context.Context, o Options) (snapshot.Snapshot, error)

type entry struct {
	goos []string
	open opener
}

var genericOS = []string{"darwin", "linux", "windows", "freebsd", "dragonfly", "netbsd", "openbsd", "solaris"}

var sources = map[string]entry{
	IOReg: {goos: []string{"darwin"}, open: func(ctx context.Context, o Options) (snapshot.Snapshot, error) {
		s, err := apple.Command{Path: o.IORegPath}.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	}},
	IORegPlist: {goos: []string{"darwin"}, open: func(ctx context.Context, o Options) (snapshot.Snapshot, error) {
		s, err := apple.Command{Path: o.IORegPath, Plist: true}.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	}},
	Sysfs: {goos: []string{"linux"}, open: func(ctx context.Context, o Options) (snapshot.Snapshot, error) {
		s, err := sysfs.Reader{Root: o.SysfsRoot}.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	}},
	UPower: {goos: []string{"linux"}, open: func(ctx context.Context, o Options) (snapshot.Snapshot, error) {
		s, err := upower.Client{Bus: o.Bus}.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	}},
	Win32: {goos: []string{"windows"}, open: func(ctx context.Context, _ Options) (snapshot.Snapshot, error) {
		s, err := win32.DeviceIoSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	}},
	Win32Basic: {goos: []string{"windows"}, open: func(ctx context.Context, _ Options) (snapshot.Snapshot, error) {
		s, err := win32.BasicSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	}},
	Generic: {goos: genericOS, open: func(ctx context.Context, _ Options) (snapshot.Snapshot, error) {
		s, err := generic.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	}},
}

var autoSources = map[string]string{
	"darwin":  IOReg,
	"linux":   Sysfs,
	"windows": Win32,
}

// Names returns every accepted source name, auto first.
func Names() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{Auto}, names...)
}

// Resolve maps name to a concrete source for goos. An empty name means
// Auto.
func Resolve(name, goos string) (string, error) {
	if name == "" || name == Auto {
		if s, ok := autoSources[goos]; ok {
			return s, nil
		}
		if slices.Contains(genericOS, goos) {
			return Generic, nil
		}
		return "", fmt.Errorf("%w: no source for %s", snapshot.ErrPlatformUnsupported, goos)
	}

	e, ok := sources[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown source %q", snapshot.ErrPlatformUnsupported, name)
	}
	if !slices.Contains(e.goos, goos) {
		return "", fmt.Errorf("%w: source %s is not available on %s", snapshot.ErrPlatformUnsupported, name, goos)
	}
	return name, nil
}

// Open takes one snapshot from the named source on the running OS.
func Open(ctx context.Context, name string, o Options) (snapshot.Snapshot, error) {
	resolved, err := Resolve(name, runtime.GOOS)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"source":   name,
		"resolved": resolved,
	}).Debug("taking snapshot")

	return sources[resolved].open(ctx, o)
}
