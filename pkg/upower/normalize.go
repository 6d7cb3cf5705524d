package upower

import (
	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

// Device types.
const (
	TypeLinePower = 1
	TypeBattery   = 2
)

// Device states.
const (
	StateUnknown          = 0
	StateCharging         = 1
	StateDischarging      = 2
	StateEmpty            = 3
	StateFullyCharged     = 4
	StatePendingCharge    = 5
	StatePendingDischarge = 6
)

// Warning levels.
const (
	WarningNone     = 1
	WarningLow      = 3
	WarningCritical = 4
	WarningAction   = 5
)

// Info normalizes the device. Capacities are in mWh.
func (s State) Info() powerinfo.BatteryInfo {
	info := powerinfo.BatteryInfo{
		HasBattery: ptr.Deref(s.IsPresent, true),
	}

	var flags powerinfo.ChargingFlags
	switch ptr.Deref(s.State, StateUnknown) {
	case StateCharging:
		flags |= powerinfo.ExternalPowerConnected | powerinfo.ExternalPowerCharging
	case StateFullyCharged, StatePendingCharge:
		flags |= powerinfo.ExternalPowerConnected
	case StateDischarging, StatePendingDischarge:
		flags |= powerinfo.Discharging
	}
	if ptr.Deref(s.LinePowerOnline, false) {
		flags |= powerinfo.ExternalPowerConnected
	}
	switch ptr.Deref(s.WarningLevel, 0) {
	case WarningAction:
		flags |= powerinfo.CriticalCharge | powerinfo.FailureImminent
	case WarningCritical:
		flags |= powerinfo.CriticalCharge
	}
	info.ChargingFlags = flags.Exclusive()
	charging := info.ChargingFlags.Has(powerinfo.ExternalPowerCharging)
	discharging := info.ChargingFlags.Has(powerinfo.Discharging)

	info.CurrentChargeCapacity = wattHours(s.Energy)
	info.MaxChargeCapacity = wattHours(s.EnergyFull)
	info.DesignChargeCapacity = wattHours(s.EnergyFullDesign)
	info.OrderCapacities()

	if s.Percentage != nil {
		info.ChargePercentage = ptr.To(powerinfo.Clamp(*s.Percentage, 0, 100))
	} else {
		info.ChargePercentage = powerinfo.Percent(info.CurrentChargeCapacity, info.MaxChargeCapacity)
	}
	info.ChargeHealthPercentage = powerinfo.Percent(info.MaxChargeCapacity, info.DesignChargeCapacity)

	if s.EnergyRate != nil {
		rate := *s.EnergyRate
		if rate < 0 {
			rate = -rate
		}
		if !charging && rate != 0 {
			rate = -rate
		}
		info.ChargeRate = ptr.To(rate)
	}

	if s.Voltage != nil && *s.Voltage > 0 {
		info.Voltage = ptr.To(*s.Voltage * 1e3)
	}
	// UPower reports 0 when the temperature is unknown.
	if s.Temperature != nil && *s.Temperature != 0 {
		info.Temperature = ptr.To(*s.Temperature)
	}

	if charging && s.TimeToFull != nil && *s.TimeToFull > 0 {
		info.TimeToChargeCompletion = ptr.To(float64(*s.TimeToFull))
	}
	if discharging && s.TimeToEmpty != nil && *s.TimeToEmpty > 0 {
		info.TimeToDischargeCompletion = ptr.To(float64(*s.TimeToEmpty))
	}

	return info
}

func wattHours(v *float64) *powerinfo.CapacityValue {
	if v == nil {
		return nil
	}
	return ptr.To(powerinfo.MilliwattHoursOf(*v * 1e3))
}
