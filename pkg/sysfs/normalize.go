package sysfs

import (
	"math"

	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

// Values of the status attribute.
const (
	StatusCharging       = "Charging"
	StatusDischarging    = "Discharging"
	StatusNotCharging    = "Not charging"
	StatusNotChargingAlt = "NotCharging"
	StatusFull           = "Full"
)

const capacityLevelCritical = "Critical"

// Info normalizes the device. Energy attributes give mWh capacities;
// without them charge attributes give mAh.
func (s State) Info() powerinfo.BatteryInfo {
	info := powerinfo.BatteryInfo{
		HasBattery: s.Present == nil || *s.Present != 0,
	}

	var flags powerinfo.ChargingFlags
	switch ptr.Deref(s.Status, "") {
	case StatusCharging:
		flags |= powerinfo.ExternalPowerConnected | powerinfo.ExternalPowerCharging
	case StatusNotCharging, StatusNotChargingAlt, StatusFull:
		flags |= powerinfo.ExternalPowerConnected
	case StatusDischarging:
		flags |= powerinfo.Discharging
	}
	if ptr.Deref(s.CapacityLevel, "") == capacityLevelCritical {
		flags |= powerinfo.CriticalCharge
	}
	info.ChargingFlags = flags.Exclusive()
	charging := info.ChargingFlags.Has(powerinfo.ExternalPowerCharging)
	discharging := info.ChargingFlags.Has(powerinfo.Discharging)

	now, full, design, energy := s.capacities()
	info.CurrentChargeCapacity = now
	info.MaxChargeCapacity = full
	info.DesignChargeCapacity = design
	info.OrderCapacities()

	if s.Capacity != nil {
		info.ChargePercentage = ptr.To(powerinfo.Clamp(*s.Capacity, 0, 100))
	} else {
		info.ChargePercentage = powerinfo.Percent(now, full)
	}
	info.ChargeHealthPercentage = powerinfo.Percent(full, design)

	if watts, ok := s.watts(); ok {
		if !charging && watts != 0 {
			watts = -watts
		}
		info.ChargeRate = ptr.To(watts)
	}

	// Hours to completion: µWh over µW, or µAh over µA.
	var perHour float64
	if energy {
		if w, ok := s.watts(); ok {
			perHour = w * 1e3
		}
	} else if s.CurrentNow != nil {
		perHour = math.Abs(float64(*s.CurrentNow)) / 1e3
	}
	if perHour > 0 && now != nil {
		if charging && full != nil {
			info.TimeToChargeCompletion = ptr.To(math.Max(full.Value-now.Value, 0) / perHour * 3600)
		}
		if discharging {
			info.TimeToDischargeCompletion = ptr.To(now.Value / perHour * 3600)
		}
	}

	if s.VoltageNow != nil {
		info.Voltage = ptr.To(float64(*s.VoltageNow) / 1e3)
	}
	if s.Temp != nil {
		info.Temperature = ptr.To(float64(*s.Temp) / 10)
	}

	return info
}

// capacities returns now/full/design in mWh or mAh, and whether they are
// energies.
func (s State) capacities() (now, full, design *powerinfo.CapacityValue, energy bool) {
	if s.EnergyNow != nil || s.EnergyFull != nil || s.EnergyFullDesign != nil {
		return micro(s.EnergyNow, powerinfo.MilliwattHoursOf),
			micro(s.EnergyFull, powerinfo.MilliwattHoursOf),
			micro(s.EnergyFullDesign, powerinfo.MilliwattHoursOf),
			true
	}
	return micro(s.ChargeNow, powerinfo.MilliampereHoursOf),
		micro(s.ChargeFull, powerinfo.MilliampereHoursOf),
		micro(s.ChargeFullDesign, powerinfo.MilliampereHoursOf),
		false
}

// watts returns the unsigned power draw in W from power_now, or from
// voltage_now and current_now.
func (s State) watts() (float64, bool) {
	if s.PowerNow != nil {
		return math.Abs(float64(*s.PowerNow)) / 1e6, true
	}
	if s.VoltageNow != nil && s.CurrentNow != nil {
		return float64(*s.VoltageNow) * math.Abs(float64(*s.CurrentNow)) / 1e12, true
	}
	return 0, false
}

func micro(v *uint64, unit func(float64) powerinfo.CapacityValue) *powerinfo.CapacityValue {
	if v == nil {
		return nil
	}
	return ptr.To(unit(float64(*v) / 1e3))
}
