// Package win32 normalizes the battery structures returned by the Windows
// power APIs: SYSTEM_POWER_STATUS for the basic system view and the
// IOCTL_BATTERY_QUERY_* results for individual battery devices.
package win32

import (
	"context"
	"strconv"

	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/snapshot"
	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

// SystemPowerStatus mirrors SYSTEM_POWER_STATUS.
type SystemPowerStatus struct {
	ACLineStatus        uint8
	BatteryFlag         uint8
	BatteryLifePercent  uint8
	SystemStatusFlag    uint8
	BatteryLifeTime     uint32
	BatteryFullLifeTime uint32
}

// ACLineStatus values.
const (
	ACLineOffline = 0
	ACLineOnline  = 1
	ACLineUnknown = 255
)

// BatteryFlag bits.
const (
	BatteryFlagHigh      = 1
	BatteryFlagLow       = 2
	BatteryFlagCritical  = 4
	BatteryFlagCharging  = 8
	BatteryFlagNoBattery = 128
	BatteryFlagUnknown   = 255
)

const (
	unknownPercent  = 255
	unknownLifeTime = 0xFFFFFFFF
)

// Info normalizes the status. The basic API reports no capacities.
func (s SystemPowerStatus) Info() powerinfo.BatteryInfo {
	known := s.BatteryFlag != BatteryFlagUnknown
	info := powerinfo.BatteryInfo{
		HasBattery: known && s.BatteryFlag&BatteryFlagNoBattery == 0,
	}

	charging := known && s.BatteryFlag&BatteryFlagCharging != 0
	var flags powerinfo.ChargingFlags
	if charging {
		flags |= powerinfo.ExternalPowerCharging
	}
	if known && s.BatteryFlag&BatteryFlagCritical != 0 {
		flags |= powerinfo.CriticalCharge
	}
	switch s.ACLineStatus {
	case ACLineOnline:
		flags |= powerinfo.ExternalPowerConnected
	case ACLineOffline:
		if !charging {
			flags |= powerinfo.Discharging
		}
	}
	info.ChargingFlags = flags.Exclusive()

	if s.BatteryLifePercent != unknownPercent {
		info.ChargePercentage = ptr.To(powerinfo.Clamp(float64(s.BatteryLifePercent), 0, 100))
	}
	if info.ChargingFlags.Has(powerinfo.Discharging) && s.BatteryLifeTime != unknownLifeTime {
		info.TimeToDischargeCompletion = ptr.To(float64(s.BatteryLifeTime))
	}
	return info
}

func (s SystemPowerStatus) String() string {
	return snapshot.Dump([]snapshot.Entry{
		{Name: "ACLineStatus", Value: strconv.Itoa(int(s.ACLineStatus))},
		{Name: "BatteryFlag", Value: strconv.Itoa(int(s.BatteryFlag))},
		{Name: "BatteryLifePercent", Value: strconv.Itoa(int(s.BatteryLifePercent))},
		{Name: "SystemStatusFlag", Value: strconv.Itoa(int(s.SystemStatusFlag))},
		{Name: "BatteryLifeTime", Value: strconv.FormatUint(uint64(s.BatteryLifeTime), 10)},
		{Name: "BatteryFullLifeTime", Value: strconv.FormatUint(uint64(s.BatteryFullLifeTime), 10)},
	})
}

// NewBasicSnapshot wraps one SYSTEM_POWER_STATUS as the only battery.
func NewBasicSnapshot(s SystemPowerStatus) *snapshot.Multi[SystemPowerStatus] {
	return snapshot.NewMulti([]SystemPowerStatus{s}, SystemPowerStatus.Info, SystemPowerStatus.String)
}

// BasicSnapshot calls GetSystemPowerStatus.
func BasicSnapshot(ctx context.Context) (*snapshot.Multi[SystemPowerStatus], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := querySystemPowerStatus()
	if err != nil {
		return nil, err
	}
	return NewBasicSnapshot(s), nil
}
