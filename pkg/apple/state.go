// Package apple reads the AppleSmartBattery registry entry that macOS
// exposes through ioreg.
package apple

import (
	"time"

	"github.com/charlie0129/xbat/pkg/fields"
	"github.com/charlie0129/xbat/pkg/snapshot"
)

// BatteryObjectName is the registry entry holding battery properties.
const BatteryObjectName = "AppleSmartBattery"

// State holds the AppleSmartBattery properties. Nil fields were not
// reported.
type State struct {
	// Raw capacities, mAh.
	AppleRawCurrentCapacity *int32
	AppleRawMaxCapacity     *int32
	// Raw voltage, mV.
	AppleRawBatteryVoltage *int32

	// CurrentCapacity is relative to MaxCapacity. On Apple Silicon both are
	// percentages.
	CurrentCapacity       *int32
	NominalChargeCapacity *int32
	MaxCapacity           *int32
	DesignCapacity        *int32
	Voltage               *int32

	IsCharging       *bool
	BatteryInstalled *bool
	AtCriticalLevel  *bool

	// Hundredths of a degree Celsius.
	VirtualTemperature *int32
	Temperature        *int32

	// mA, negative while discharging.
	Amperage        *int64
	InstantAmperage *int64
	CycleCount      *int64

	ExternalConnected     *bool
	ExternalChargeCapable *bool

	// Unix seconds.
	UpdateTime         *uint64
	DesignCycleCount9C *int32
	FullyCharged       *bool

	// Minutes. -1 (65535 in the dump) means no estimate.
	TimeRemaining  *int16
	AvgTimeToFull  *int16
	AvgTimeToEmpty *int16
}

var stateFields = fields.Table[State]{
	"AppleRawCurrentCapacity": fields.Int32(func(s *State) **int32 { return &s.AppleRawCurrentCapacity }),
	"AppleRawMaxCapacity":     fields.Int32(func(s *State) **int32 { return &s.AppleRawMaxCapacity }),
	"AppleRawBatteryVoltage":  fields.Int32(func(s *State) **int32 { return &s.AppleRawBatteryVoltage }),
	"CurrentCapacity":         fields.Int32(func(s *State) **int32 { return &s.CurrentCapacity }),
	"NominalChargeCapacity":   fields.Int32(func(s *State) **int32 { return &s.NominalChargeCapacity }),
	"MaxCapacity":             fields.Int32(func(s *State) **int32 { return &s.MaxCapacity }),
	"DesignCapacity":          fields.Int32(func(s *State) **int32 { return &s.DesignCapacity }),
	"Voltage":                 fields.Int32(func(s *State) **int32 { return &s.Voltage }),
	"IsCharging":              fields.Bool(func(s *State) **bool { return &s.IsCharging }),
	"BatteryInstalled":        fields.Bool(func(s *State) **bool { return &s.BatteryInstalled }),
	"AtCriticalLevel":         fields.Bool(func(s *State) **bool { return &s.AtCriticalLevel }),
	"VirtualTemperature":      fields.Int32(func(s *State) **int32 { return &s.VirtualTemperature }),
	"Temperature":             fields.Int32(func(s *State) **int32 { return &s.Temperature }),
	"Amperage":                fields.Int64(func(s *State) **int64 { return &s.Amperage }),
	"InstantAmperage":         fields.Int64(func(s *State) **int64 { return &s.InstantAmperage }),
	"CycleCount":              fields.Int64(func(s *State) **int64 { return &s.CycleCount }),
	"ExternalConnected":       fields.Bool(func(s *State) **bool { return &s.ExternalConnected }),
	"ExternalChargeCapable":   fields.Bool(func(s *State) **bool { return &s.ExternalChargeCapable }),
	"UpdateTime":              fields.Uint64(func(s *State) **uint64 { return &s.UpdateTime }),
	"DesignCycleCount9C":      fields.Int32(func(s *State) **int32 { return &s.DesignCycleCount9C }),
	"FullyCharged":            fields.Bool(func(s *State) **bool { return &s.FullyCharged }),
	"TimeRemaining":           fields.Int16(func(s *State) **int16 { return &s.TimeRemaining }),
	"AvgTimeToFull":           fields.Int16(func(s *State) **int16 { return &s.AvgTimeToFull }),
	"AvgTimeToEmpty":          fields.Int16(func(s *State) **int16 { return &s.AvgTimeToEmpty }),
}

// Set stores one raw property value. Unknown names are ignored.
func (s *State) Set(name, raw string) error {
	return stateFields.Apply(s, name, raw)
}

// String dumps every field, null when unset.
func (s State) String() string {
	updateTime := snapshot.Value(s.UpdateTime)
	if s.UpdateTime != nil {
		updateTime += " /* " + time.Unix(int64(*s.UpdateTime), 0).UTC().Format(time.RFC3339) + " */"
	}
	return snapshot.Dump([]snapshot.Entry{
		{Name: "AppleRawCurrentCapacity", Value: snapshot.Value(s.AppleRawCurrentCapacity)},
		{Name: "AppleRawMaxCapacity", Value: snapshot.Value(s.AppleRawMaxCapacity)},
		{Name: "AppleRawBatteryVoltage", Value: snapshot.Value(s.AppleRawBatteryVoltage)},
		{Name: "CurrentCapacity", Value: snapshot.Value(s.CurrentCapacity)},
		{Name: "NominalChargeCapacity", Value: snapshot.Value(s.NominalChargeCapacity)},
		{Name: "MaxCapacity", Value: snapshot.Value(s.MaxCapacity)},
		{Name: "DesignCapacity", Value: snapshot.Value(s.DesignCapacity)},
		{Name: "Voltage", Value: snapshot.Value(s.Voltage)},
		{Name: "IsCharging", Value: snapshot.Value(s.IsCharging)},
		{Name: "BatteryInstalled", Value: snapshot.Value(s.BatteryInstalled)},
		{Name: "AtCriticalLevel", Value: snapshot.Value(s.AtCriticalLevel)},
		{Name: "VirtualTemperature", Value: snapshot.Value(s.VirtualTemperature)},
		{Name: "Temperature", Value: snapshot.Value(s.Temperature)},
		{Name: "Amperage", Value: snapshot.Value(s.Amperage)},
		{Name: "InstantAmperage", Value: snapshot.Value(s.InstantAmperage)},
		{Name: "CycleCount", Value: snapshot.Value(s.CycleCount)},
		{Name: "ExternalConnected", Value: snapshot.Value(s.ExternalConnected)},
		{Name: "ExternalChargeCapable", Value: snapshot.Value(s.ExternalChargeCapable)},
		{Name: "UpdateTime", Value: updateTime},
		{Name: "DesignCycleCount9C", Value: snapshot.Value(s.DesignCycleCount9C)},
		{Name: "FullyCharged", Value: snapshot.Value(s.FullyCharged)},
		{Name: "TimeRemaining", Value: snapshot.Value(s.TimeRemaining)},
		{Name: "AvgTimeToFull", Value: snapshot.Value(s.AvgTimeToFull)},
		{Name: "AvgTimeToEmpty", Value: snapshot.Value(s.AvgTimeToEmpty)},
	})
}
