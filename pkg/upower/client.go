package upower

import (
	"context"

	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/xbat/pkg/snapshot"
	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

const (
	busName         = "org.freedesktop.UPower"
	busPath         = "/org/freedesktop/UPower"
	deviceInterface = "org.freedesktop.UPower.Device"
)

// Bus is the part of *dbus.Conn used to reach UPower.
type Bus interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
}

// Client queries UPower. A nil Bus uses the shared system bus connection.
type Client struct {
	Bus Bus
}

func (c Client) bus() (Bus, error) {
	if c.Bus != nil {
		return c.Bus, nil
	}
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to connect to system bus")
	}
	return conn, nil
}

// Snapshot reads every battery device UPower knows about, in its
// enumeration order. ExternalPowerConnected is derived from line power
// devices.
func (c Client) Snapshot(ctx context.Context) (*snapshot.Multi[State], error) {
	bus, err := c.bus()
	if err != nil {
		return nil, err
	}

	var paths []dbus.ObjectPath
	err = bus.Object(busName, busPath).CallWithContext(ctx, busName+".EnumerateDevices", 0).Store(&paths)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to enumerate UPower devices")
	}

	var batteries []State
	var lineOnline *bool
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var props map[string]dbus.Variant
		err := bus.Object(busName, path).
			CallWithContext(ctx, "org.freedesktop.DBus.Properties.GetAll", 0, deviceInterface).
			Store(&props)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to get properties of %s", path)
		}
		st, err := FromProperties(path, props)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to decode properties of %s", path)
		}

		switch ptr.Deref(st.Type, 0) {
		case TypeBattery:
			batteries = append(batteries, st)
		case TypeLinePower:
			online := ptr.Deref(st.Online, false) || ptr.Deref(lineOnline, false)
			lineOnline = &online
		default:
			logrus.WithField("device", path).Trace("skipping UPower device")
		}
	}

	for i := range batteries {
		batteries[i].LinePowerOnline = lineOnline
	}

	return snapshot.NewMulti(batteries, State.Info, State.String), nil
}
