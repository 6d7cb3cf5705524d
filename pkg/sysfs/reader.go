package sysfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/xbat/pkg/snapshot"
)

// DefaultRoot is where sysfs is mounted.
const DefaultRoot = "/sys"

const (
	powerSupplyDir = "class/power_supply"
	ueventFile     = "uevent"
	typeBattery    = "Battery"
)

var batteryNameRe = regexp.MustCompile(`^BAT\d+`)

// Reader enumerates batteries under a sysfs root.
type Reader struct {
	// Root defaults to DefaultRoot.
	Root string
}

func (r Reader) dir() string {
	root := r.Root
	if root == "" {
		root = DefaultRoot
	}
	return filepath.Join(root, powerSupplyDir)
}

// Snapshot reads every battery device. The context is checked between
// devices.
func (r Reader) Snapshot(ctx context.Context) (*snapshot.Multi[State], error) {
	names, err := r.Batteries()
	if err != nil {
		return nil, err
	}

	states := make([]State, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, ok, err := r.ReadDevice(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			logrus.WithField("device", name).Debug("skipping device that is not a power supply")
			continue
		}
		states = append(states, st)
	}

	return snapshot.NewMulti(states, State.Info, State.String), nil
}

// Batteries returns the names of battery devices in directory order. A
// missing power_supply directory yields no devices.
func (r Reader) Batteries() ([]string, error) {
	dir := r.dir()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list %s", dir)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if batteryNameRe.MatchString(name) {
			names = append(names, name)
			continue
		}
		t, err := os.ReadFile(filepath.Join(dir, name, "type"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(t)) == typeBattery {
			names = append(names, name)
		}
	}
	return names, nil
}

// ReadDevice loads one device. The uevent file is preferred, with
// individual attribute files filling in keys it lacks. Without a uevent
// file only attribute files are read. ok is false when the uevent names a
// device type other than power_supply.
func (r Reader) ReadDevice(name string) (st State, ok bool, err error) {
	devDir := filepath.Join(r.dir(), name)

	primary := map[string]string{}
	f, err := os.Open(filepath.Join(devDir, ueventFile))
	switch {
	case err == nil:
		uevent, perr := ParseUEvent(f)
		f.Close()
		if perr != nil {
			return State{}, false, pkgerrors.Wrapf(perr, "failed to parse uevent of %s", name)
		}
		if primary, ok = UEventAttributes(uevent); !ok {
			return State{}, false, nil
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return State{}, false, pkgerrors.Wrapf(err, "failed to open uevent of %s", name)
	}

	fallback := map[string]string{}
	for _, attr := range Attributes() {
		if _, found := primary[attr]; found {
			continue
		}
		b, err := os.ReadFile(filepath.Join(devDir, attr))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return State{}, false, pkgerrors.Wrapf(err, "failed to read %s of %s", attr, name)
		}
		fallback[attr] = string(b)
	}

	logrus.WithFields(logrus.Fields{
		"device":   name,
		"uevent":   len(primary),
		"fallback": len(fallback),
	}).Trace("read power_supply device")

	return FromMap(name, Merge(primary, fallback)), true, nil
}
