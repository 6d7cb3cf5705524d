// Package sysfs reads Linux power_supply class devices.
package sysfs

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/xbat/pkg/fields"
	"github.com/charlie0129/xbat/pkg/snapshot"
)

// State holds the attributes of one power_supply device. Energies are µWh,
// charges µAh, power µW, current µA and voltages µV, as the kernel reports
// them.
type State struct {
	// Name is the device directory name, e.g. BAT0.
	Name string

	Alarm            *uint64
	Capacity         *float64
	CapacityLevel    *string
	CycleCount       *int32
	EnergyNow        *uint64
	EnergyFull       *uint64
	EnergyFullDesign *uint64
	ChargeNow        *uint64
	ChargeFull       *uint64
	ChargeFullDesign *uint64
	// Some drivers report power and current as negative while discharging.
	PowerNow         *int64
	CurrentNow       *int64
	VoltageNow       *uint64
	VoltageMinDesign *uint64
	Present          *uint64
	// Tenths of a degree Celsius.
	Temp         *int64
	Manufacturer *string
	ModelName    *string
	SerialNumber *string
	Status       *string
	Technology   *string
	Type         *string
	Scope        *string
}

var stateFields = fields.Table[State]{
	"alarm":              fields.Uint64(func(s *State) **uint64 { return &s.Alarm }),
	"capacity":           fields.Float(func(s *State) **float64 { return &s.Capacity }),
	"capacity_level":     fields.String(func(s *State) **string { return &s.CapacityLevel }),
	"cycle_count":        fields.Int32(func(s *State) **int32 { return &s.CycleCount }),
	"energy_now":         fields.Uint64(func(s *State) **uint64 { return &s.EnergyNow }),
	"energy_full":        fields.Uint64(func(s *State) **uint64 { return &s.EnergyFull }),
	"energy_full_design": fields.Uint64(func(s *State) **uint64 { return &s.EnergyFullDesign }),
	"charge_now":         fields.Uint64(func(s *State) **uint64 { return &s.ChargeNow }),
	"charge_full":        fields.Uint64(func(s *State) **uint64 { return &s.ChargeFull }),
	"charge_full_design": fields.Uint64(func(s *State) **uint64 { return &s.ChargeFullDesign }),
	"power_now":          fields.Int64(func(s *State) **int64 { return &s.PowerNow }),
	"current_now":        fields.Int64(func(s *State) **int64 { return &s.CurrentNow }),
	"voltage_now":        fields.Uint64(func(s *State) **uint64 { return &s.VoltageNow }),
	"voltage_min_design": fields.Uint64(func(s *State) **uint64 { return &s.VoltageMinDesign }),
	"present":            fields.Uint64(func(s *State) **uint64 { return &s.Present }),
	"temp":               fields.Int64(func(s *State) **int64 { return &s.Temp }),
	"manufacturer":       fields.String(func(s *State) **string { return &s.Manufacturer }),
	"model_name":         fields.String(func(s *State) **string { return &s.ModelName }),
	"serial_number":      fields.String(func(s *State) **string { return &s.SerialNumber }),
	"status":             fields.String(func(s *State) **string { return &s.Status }),
	"technology":         fields.String(func(s *State) **string { return &s.Technology }),
	"type":               fields.String(func(s *State) **string { return &s.Type }),
	"scope":              fields.String(func(s *State) **string { return &s.Scope }),
}

// Attributes lists the attribute file names a State is built from.
func Attributes() []string {
	return stateFields.Names()
}

// FromMap builds a State from attribute name to value pairs. Values are
// trimmed. A value that does not parse leaves its field unset, since
// drivers commonly expose placeholder text for attributes they cannot read.
func FromMap(name string, m map[string]string) State {
	st := State{Name: name}
	for _, k := range sortedKeys(m) {
		err := stateFields.Apply(&st, k, strings.TrimSpace(m[k]))
		if err == nil {
			continue
		}
		var ide *fields.InvalidDataError
		if !errors.As(err, &ide) {
			continue
		}
		logrus.WithFields(logrus.Fields{
			"device": name,
			"field":  ide.Field,
			"value":  ide.Value,
		}).Debug("ignoring unparsable power_supply attribute")
	}
	return st
}

func (s State) String() string {
	return snapshot.Dump([]snapshot.Entry{
		{Name: "Name", Value: s.Name},
		{Name: "Alarm", Value: snapshot.Value(s.Alarm)},
		{Name: "Capacity", Value: snapshot.Value(s.Capacity)},
		{Name: "CapacityLevel", Value: snapshot.Value(s.CapacityLevel)},
		{Name: "CycleCount", Value: snapshot.Value(s.CycleCount)},
		{Name: "EnergyNow", Value: snapshot.Value(s.EnergyNow)},
		{Name: "EnergyFull", Value: snapshot.Value(s.EnergyFull)},
		{Name: "EnergyFullDesign", Value: snapshot.Value(s.EnergyFullDesign)},
		{Name: "ChargeNow", Value: snapshot.Value(s.ChargeNow)},
		{Name: "ChargeFull", Value: snapshot.Value(s.ChargeFull)},
		{Name: "ChargeFullDesign", Value: snapshot.Value(s.ChargeFullDesign)},
		{Name: "PowerNow", Value: snapshot.Value(s.PowerNow)},
		{Name: "CurrentNow", Value: snapshot.Value(s.CurrentNow)},
		{Name: "VoltageNow", Value: snapshot.Value(s.VoltageNow)},
		{Name: "VoltageMinDesign", Value: snapshot.Value(s.VoltageMinDesign)},
		{Name: "Present", Value: snapshot.Value(s.Present)},
		{Name: "Temp", Value: snapshot.Value(s.Temp)},
		{Name: "Manufacturer", Value: snapshot.Value(s.Manufacturer)},
		{Name: "ModelName", Value: snapshot.Value(s.ModelName)},
		{Name: "SerialNumber", Value: snapshot.Value(s.SerialNumber)},
		{Name: "Status", Value: snapshot.Value(s.Status)},
		{Name: "Technology", Value: snapshot.Value(s.Technology)},
		{Name: "Type", Value: snapshot.Value(s.Type)},
		{Name: "Scope", Value: snapshot.Value(s.Scope)},
	})
}
