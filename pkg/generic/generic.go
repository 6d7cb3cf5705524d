// Package generic adapts github.com/distatus/battery, which works on the
// BSDs and Solaris besides the platforms with native sources.
package generic

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/snapshot"
	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

// Info normalizes one battery. Capacities are mWh, the rate is mW and the
// design voltage is V.
func Info(b battery.Battery) powerinfo.BatteryInfo {
	info := powerinfo.BatteryInfo{HasBattery: true}

	var flags powerinfo.ChargingFlags
	switch b.State {
	case battery.Charging:
		flags |= powerinfo.ExternalPowerConnected | powerinfo.ExternalPowerCharging
	case battery.Full:
		flags |= powerinfo.ExternalPowerConnected
	case battery.Discharging:
		flags |= powerinfo.Discharging
	}
	info.ChargingFlags = flags.Exclusive()

	info.CurrentChargeCapacity = ptr.To(powerinfo.MilliwattHoursOf(b.Current))
	info.MaxChargeCapacity = ptr.To(powerinfo.MilliwattHoursOf(b.Full))
	info.DesignChargeCapacity = ptr.To(powerinfo.MilliwattHoursOf(b.Design))
	info.OrderCapacities()
	info.ChargePercentage = powerinfo.Percent(info.CurrentChargeCapacity, info.MaxChargeCapacity)
	info.ChargeHealthPercentage = powerinfo.Percent(info.MaxChargeCapacity, info.DesignChargeCapacity)

	rate := math.Abs(b.ChargeRate)
	watts := rate / 1e3
	if info.ChargingFlags.Has(powerinfo.Discharging) && watts != 0 {
		watts = -watts
	}
	info.ChargeRate = ptr.To(watts)

	if b.DesignVoltage > 0 {
		info.Voltage = ptr.To(b.DesignVoltage * 1e3)
	}

	if rate > 0 {
		switch {
		case info.ChargingFlags.Has(powerinfo.ExternalPowerCharging):
			info.TimeToChargeCompletion = ptr.To(math.Max(b.Full-b.Current, 0) / rate * 3600)
		case info.ChargingFlags.Has(powerinfo.Discharging):
			info.TimeToDischargeCompletion = ptr.To(b.Current / rate * 3600)
		}
	}
	return info
}

// Dump renders the library's view of one battery.
func Dump(b battery.Battery) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return snapshot.Dump([]snapshot.Entry{
		{Name: "State", Value: fmt.Sprint(b.State)},
		{Name: "Current", Value: f(b.Current)},
		{Name: "Full", Value: f(b.Full)},
		{Name: "Design", Value: f(b.Design)},
		{Name: "ChargeRate", Value: f(b.ChargeRate)},
		{Name: "DesignVoltage", Value: f(b.DesignVoltage)},
	})
}

// NewSnapshot wraps batteries in library order.
func NewSnapshot(batteries []battery.Battery) *snapshot.Multi[battery.Battery] {
	return snapshot.NewMulti(batteries, Info, Dump)
}

// Snapshot reads all batteries through the library.
func Snapshot(ctx context.Context) (*snapshot.Multi[battery.Battery], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	batteries, err := battery.GetAll()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to get batteries")
	}

	logrus.WithField("count", len(batteries)).Debug("got batteries")

	ret := make([]battery.Battery, 0, len(batteries))
	for _, b := range batteries {
		ret = append(ret, *b)
	}
	return NewSnapshot(ret), nil
}
