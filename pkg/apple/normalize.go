package apple

import (
	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

// Info normalizes the state. Capacities are in mAh.
func (s State) Info() powerinfo.BatteryInfo {
	info := powerinfo.BatteryInfo{
		HasBattery: ptr.Deref(s.BatteryInstalled, false),
	}

	if s.CurrentCapacity != nil && s.MaxCapacity != nil {
		info.ChargePercentage = powerinfo.PercentOf(float64(*s.CurrentCapacity), float64(*s.MaxCapacity))
	}
	// Fresh cells report a raw max capacity above the design capacity.
	if s.AppleRawMaxCapacity != nil && s.DesignCapacity != nil {
		info.ChargeHealthPercentage = powerinfo.PercentOf(float64(*s.AppleRawMaxCapacity), float64(*s.DesignCapacity))
	}

	info.CurrentChargeCapacity = mAh(s.AppleRawCurrentCapacity)
	info.MaxChargeCapacity = mAh(s.AppleRawMaxCapacity)
	info.DesignChargeCapacity = mAh(s.DesignCapacity)
	info.OrderCapacities()

	voltage := s.AppleRawBatteryVoltage
	if voltage == nil {
		voltage = s.Voltage
	}
	if voltage != nil {
		info.Voltage = ptr.To(float64(*voltage))
		if s.Amperage != nil {
			info.ChargeRate = ptr.To(float64(*voltage) * float64(*s.Amperage) / 1e6)
		}
	}

	if s.VirtualTemperature != nil {
		info.Temperature = ptr.To(float64(*s.VirtualTemperature) / 100)
	} else if s.Temperature != nil {
		info.Temperature = ptr.To(float64(*s.Temperature) / 100)
	}

	charging := ptr.Deref(s.IsCharging, false)
	var flags powerinfo.ChargingFlags
	if ptr.Deref(s.ExternalConnected, false) {
		flags |= powerinfo.ExternalPowerConnected
	}
	if charging {
		flags |= powerinfo.ExternalPowerCharging
	}
	if s.Amperage != nil && *s.Amperage < 0 && !charging {
		flags |= powerinfo.Discharging
	}
	if ptr.Deref(s.AtCriticalLevel, false) {
		flags |= powerinfo.CriticalCharge
	}
	info.ChargingFlags = flags.Exclusive()

	if info.ChargingFlags.Has(powerinfo.ExternalPowerCharging) {
		info.TimeToChargeCompletion = minutes(s.AvgTimeToFull)
	}
	if info.ChargingFlags.Has(powerinfo.Discharging) {
		info.TimeToDischargeCompletion = minutes(s.AvgTimeToEmpty)
	}

	return info
}

func mAh(v *int32) *powerinfo.CapacityValue {
	if v == nil {
		return nil
	}
	return ptr.To(powerinfo.MilliampereHoursOf(float64(*v)))
}

// minutes converts an estimate to seconds. Negative values mean unknown.
func minutes(v *int16) *float64 {
	if v == nil || *v < 0 {
		return nil
	}
	return ptr.To(float64(*v) * 60)
}
