package win32

import (
	"context"
	"math"
	"strconv"

	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/snapshot"
	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

// DeviceIoRecord combines BATTERY_INFORMATION, BATTERY_STATUS, the
// estimated time and the temperature of one battery device.
type DeviceIoRecord struct {
	Capabilities        uint32
	PowerState          uint32
	Capacity            uint32
	Rate                int32
	Voltage             uint32
	EstimatedTime       uint32
	FullChargedCapacity uint32
	DesignedCapacity    uint32
	CycleCount          uint32
	// Tenths of a Kelvin, 0 when unknown.
	Temperature uint32
}

// BATTERY_INFORMATION.Capabilities bits.
const (
	CapabilitySystemBattery    = 0x80000000
	CapabilityCapacityRelative = 0x40000000
	CapabilityIsShortTerm      = 0x20000000
)

// BATTERY_STATUS.PowerState bits.
const (
	PowerOnLine      = 0x00000001
	PowerDischarging = 0x00000002
	PowerCharging    = 0x00000004
	PowerCritical    = 0x00000008
)

// Unknown sentinels of BATTERY_STATUS and the estimated time query.
const (
	UnknownCapacity = 0xFFFFFFFF
	UnknownVoltage  = 0xFFFFFFFF
	UnknownTime     = 0xFFFFFFFF
	UnknownRate     = math.MinInt32
)

// Relative reports whether capacities are unitless proportions.
func (r DeviceIoRecord) Relative() bool {
	return r.Capabilities&CapabilityCapacityRelative != 0
}

// Info normalizes the record. Absolute capacities and the rate are in mWh
// and mW.
func (r DeviceIoRecord) Info() powerinfo.BatteryInfo {
	info := powerinfo.BatteryInfo{HasBattery: true}

	var flags powerinfo.ChargingFlags
	if r.PowerState&PowerCharging != 0 {
		flags |= powerinfo.ExternalPowerCharging
	}
	if r.PowerState&PowerOnLine != 0 {
		flags |= powerinfo.ExternalPowerConnected
	}
	if r.PowerState&PowerDischarging != 0 {
		flags |= powerinfo.Discharging
	}
	if r.PowerState&PowerCritical != 0 {
		flags |= powerinfo.FailureImminent
	}
	info.ChargingFlags = flags.Exclusive()

	capacityKnown := r.Capacity != UnknownCapacity
	if capacityKnown {
		info.ChargePercentage = powerinfo.PercentOf(float64(r.Capacity), float64(r.FullChargedCapacity))
	}
	if !r.Relative() {
		if capacityKnown {
			info.CurrentChargeCapacity = ptr.To(powerinfo.MilliwattHoursOf(float64(r.Capacity)))
		}
		info.MaxChargeCapacity = ptr.To(powerinfo.MilliwattHoursOf(float64(r.FullChargedCapacity)))
		info.DesignChargeCapacity = ptr.To(powerinfo.MilliwattHoursOf(float64(r.DesignedCapacity)))
		info.ChargeHealthPercentage = powerinfo.PercentOf(float64(r.FullChargedCapacity), float64(r.DesignedCapacity))
		info.OrderCapacities()
		if r.Rate != UnknownRate {
			info.ChargeRate = ptr.To(float64(r.Rate) / 1e3)
		}
	}

	if r.Voltage != UnknownVoltage {
		info.Voltage = ptr.To(float64(r.Voltage))
	}
	if r.Temperature != 0 {
		info.Temperature = ptr.To(float64(r.Temperature)/10 - 273.15)
	}
	if info.ChargingFlags.Has(powerinfo.Discharging) && r.EstimatedTime != UnknownTime {
		info.TimeToDischargeCompletion = ptr.To(float64(r.EstimatedTime))
	}
	return info
}

func (r DeviceIoRecord) String() string {
	hex := func(v uint32) string { return "0x" + strconv.FormatUint(uint64(v), 16) }
	dec := func(v uint32) string { return strconv.FormatUint(uint64(v), 10) }
	return snapshot.Dump([]snapshot.Entry{
		{Name: "Capabilities", Value: hex(r.Capabilities)},
		{Name: "PowerState", Value: hex(r.PowerState)},
		{Name: "Capacity", Value: dec(r.Capacity)},
		{Name: "Rate", Value: strconv.Itoa(int(r.Rate))},
		{Name: "Voltage", Value: dec(r.Voltage)},
		{Name: "EstimatedTime", Value: dec(r.EstimatedTime)},
		{Name: "FullChargedCapacity", Value: dec(r.FullChargedCapacity)},
		{Name: "DesignedCapacity", Value: dec(r.DesignedCapacity)},
		{Name: "CycleCount", Value: dec(r.CycleCount)},
		{Name: "Temperature", Value: dec(r.Temperature)},
	})
}

// NewDeviceIoSnapshot wraps records in enumeration order.
func NewDeviceIoSnapshot(records []DeviceIoRecord) *snapshot.Multi[DeviceIoRecord] {
	return snapshot.NewMulti(records, DeviceIoRecord.Info, DeviceIoRecord.String)
}

// DeviceIoSnapshot queries every present system battery device.
func DeviceIoSnapshot(ctx context.Context) (*snapshot.Multi[DeviceIoRecord], error) {
	records, err := queryDeviceIo(ctx)
	if err != nil {
		return nil, err
	}
	return NewDeviceIoSnapshot(records), nil
}
