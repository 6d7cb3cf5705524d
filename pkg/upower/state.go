// Package upower reads battery devices from the UPower daemon over the
// system D-Bus.
package upower

import (
	"strconv"

	"github.com/godbus/dbus/v5"

	"github.com/charlie0129/xbat/pkg/fields"
	"github.com/charlie0129/xbat/pkg/snapshot"
)

// State holds the org.freedesktop.UPower.Device properties of one device.
// Energies are Wh, rate W, voltage V, temperature °C, times seconds.
type State struct {
	Path dbus.ObjectPath

	Type             *int64
	State            *int64
	Percentage       *float64
	Energy           *float64
	EnergyFull       *float64
	EnergyFullDesign *float64
	EnergyRate       *float64
	Voltage          *float64
	Temperature      *float64
	TimeToEmpty      *int64
	TimeToFull       *int64
	IsPresent        *bool
	PowerSupply      *bool
	Online           *bool
	WarningLevel     *int64
	NativePath       *string
	Vendor           *string
	Model            *string

	// LinePowerOnline is set from the line power devices, not from this
	// device's properties.
	LinePowerOnline *bool
}

var stateFields = fields.Table[State]{
	"Type":             fields.Int64(func(s *State) **int64 { return &s.Type }),
	"State":            fields.Int64(func(s *State) **int64 { return &s.State }),
	"Percentage":       fields.Float(func(s *State) **float64 { return &s.Percentage }),
	"Energy":           fields.Float(func(s *State) **float64 { return &s.Energy }),
	"EnergyFull":       fields.Float(func(s *State) **float64 { return &s.EnergyFull }),
	"EnergyFullDesign": fields.Float(func(s *State) **float64 { return &s.EnergyFullDesign }),
	"EnergyRate":       fields.Float(func(s *State) **float64 { return &s.EnergyRate }),
	"Voltage":          fields.Float(func(s *State) **float64 { return &s.Voltage }),
	"Temperature":      fields.Float(func(s *State) **float64 { return &s.Temperature }),
	"TimeToEmpty":      fields.Int64(func(s *State) **int64 { return &s.TimeToEmpty }),
	"TimeToFull":       fields.Int64(func(s *State) **int64 { return &s.TimeToFull }),
	"IsPresent":        fields.Bool(func(s *State) **bool { return &s.IsPresent }),
	"PowerSupply":      fields.Bool(func(s *State) **bool { return &s.PowerSupply }),
	"Online":           fields.Bool(func(s *State) **bool { return &s.Online }),
	"WarningLevel":     fields.Int64(func(s *State) **int64 { return &s.WarningLevel }),
	"NativePath":       fields.String(func(s *State) **string { return &s.NativePath }),
	"Vendor":           fields.String(func(s *State) **string { return &s.Vendor }),
	"Model":            fields.String(func(s *State) **string { return &s.Model }),
}

// FromProperties builds a State from a Properties.GetAll reply.
// Properties of types the table does not expect are skipped.
func FromProperties(path dbus.ObjectPath, props map[string]dbus.Variant) (State, error) {
	st := State{Path: path}
	text := make(map[string]string, len(props))
	for k, v := range props {
		if s, ok := variantText(v.Value()); ok {
			text[k] = s
		}
	}
	if err := stateFields.ApplyMap(&st, text); err != nil {
		return State{}, err
	}
	return st, nil
}

// variantText renders basic D-Bus values the way the field table parses
// them.
func variantText(v any) (string, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return "Yes", true
		}
		return "No", true
	case byte:
		return strconv.FormatUint(uint64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case string:
		return x, true
	case dbus.ObjectPath:
		return string(x), true
	}
	return "", false
}

func (s State) String() string {
	return snapshot.Dump([]snapshot.Entry{
		{Name: "Path", Value: string(s.Path)},
		{Name: "Type", Value: snapshot.Value(s.Type)},
		{Name: "State", Value: snapshot.Value(s.State)},
		{Name: "Percentage", Value: snapshot.Value(s.Percentage)},
		{Name: "Energy", Value: snapshot.Value(s.Energy)},
		{Name: "EnergyFull", Value: snapshot.Value(s.EnergyFull)},
		{Name: "EnergyFullDesign", Value: snapshot.Value(s.EnergyFullDesign)},
		{Name: "EnergyRate", Value: snapshot.Value(s.EnergyRate)},
		{Name: "Voltage", Value: snapshot.Value(s.Voltage)},
		{Name: "Temperature", Value: snapshot.Value(s.Temperature)},
		{Name: "TimeToEmpty", Value: snapshot.Value(s.TimeToEmpty)},
		{Name: "TimeToFull", Value: snapshot.Value(s.TimeToFull)},
		{Name: "IsPresent", Value: snapshot.Value(s.IsPresent)},
		{Name: "PowerSupply", Value: snapshot.Value(s.PowerSupply)},
		{Name: "Online", Value: snapshot.Value(s.Online)},
		{Name: "WarningLevel", Value: snapshot.Value(s.WarningLevel)},
		{Name: "NativePath", Value: snapshot.Value(s.NativePath)},
		{Name: "Vendor", Value: snapshot.Value(s.Vendor)},
		{Name: "Model", Value: snapshot.Value(s.Model)},
		{Name: "LinePowerOnline", Value: snapshot.Value(s.LinePowerOnline)},
	})
}
