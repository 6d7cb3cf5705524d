package powerinfo

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnitMismatch is returned when two capacities with different units are
// combined or compared.
var ErrUnitMismatch = errors.New("capacity unit mismatch")

// CapacityUnit is the unit a CapacityValue is expressed in.
type CapacityUnit int

const (
	// MilliwattHours is energy in mWh.
	MilliwattHours CapacityUnit = iota
	// MilliampereHours is charge in mAh.
	MilliampereHours
)

func (u CapacityUnit) String() string {
	switch u {
	case MilliwattHours:
		return "mWh"
	case MilliampereHours:
		return "mAh"
	}
	return "CapacityUnit(" + strconv.Itoa(int(u)) + ")"
}

// MarshalText encodes the unit as "mWh" or "mAh".
func (u CapacityUnit) MarshalText() ([]byte, error) {
	switch u {
	case MilliwattHours, MilliampereHours:
		return []byte(u.String()), nil
	}
	return nil, fmt.Errorf("unknown capacity unit %d", int(u))
}

// UnmarshalText decodes "mWh" or "mAh".
func (u *CapacityUnit) UnmarshalText(b []byte) error {
	switch string(b) {
	case "mWh":
		*u = MilliwattHours
	case "mAh":
		*u = MilliampereHours
	default:
		return fmt.Errorf("unknown capacity unit %q", string(b))
	}
	return nil
}

// CapacityValue is a charge or energy quantity tagged with its unit.
// Values with different units are never combined implicitly.
type CapacityValue struct {
	Value float64      `json:"value"`
	Unit  CapacityUnit `json:"unit"`
}

// MilliwattHoursOf returns v mWh.
func MilliwattHoursOf(v float64) CapacityValue {
	return CapacityValue{Value: v, Unit: MilliwattHours}
}

// MilliampereHoursOf returns v mAh.
func MilliampereHoursOf(v float64) CapacityValue {
	return CapacityValue{Value: v, Unit: MilliampereHours}
}

func (c CapacityValue) String() string {
	return strconv.FormatFloat(c.Value, 'f', -1, 64) + c.Unit.String()
}

// SameUnit reports whether c and o can be combined without conversion.
func (c CapacityValue) SameUnit(o CapacityValue) bool {
	return c.Unit == o.Unit
}

// Add returns c+o.
func (c CapacityValue) Add(o CapacityValue) (CapacityValue, error) {
	if !c.SameUnit(o) {
		return CapacityValue{}, mismatch(c, o)
	}
	return CapacityValue{Value: c.Value + o.Value, Unit: c.Unit}, nil
}

// Sub returns c-o.
func (c CapacityValue) Sub(o CapacityValue) (CapacityValue, error) {
	if !c.SameUnit(o) {
		return CapacityValue{}, mismatch(c, o)
	}
	return CapacityValue{Value: c.Value - o.Value, Unit: c.Unit}, nil
}

// Compare returns -1, 0 or 1 depending on whether c is less than, equal to
// or greater than o.
func (c CapacityValue) Compare(o CapacityValue) (int, error) {
	if !c.SameUnit(o) {
		return 0, mismatch(c, o)
	}
	switch {
	case c.Value < o.Value:
		return -1, nil
	case c.Value > o.Value:
		return 1, nil
	}
	return 0, nil
}

// Ratio returns c/o. The result is unitless.
func (c CapacityValue) Ratio(o CapacityValue) (float64, error) {
	if !c.SameUnit(o) {
		return 0, mismatch(c, o)
	}
	if o.Value == 0 {
		return 0, errors.New("ratio with zero denominator")
	}
	return c.Value / o.Value, nil
}

// ToMilliwattHours converts c using the given voltage in mV.
func (c CapacityValue) ToMilliwattHours(voltageMV float64) (CapacityValue, error) {
	switch c.Unit {
	case MilliwattHours:
		return c, nil
	case MilliampereHours:
		if voltageMV <= 0 {
			return CapacityValue{}, fmt.Errorf("cannot convert %s to mWh at %gmV", c, voltageMV)
		}
		return MilliwattHoursOf(c.Value * voltageMV / 1000), nil
	}
	return CapacityValue{}, fmt.Errorf("unknown capacity unit %d", int(c.Unit))
}

// ToMilliampereHours converts c using the given voltage in mV.
func (c CapacityValue) ToMilliampereHours(voltageMV float64) (CapacityValue, error) {
	switch c.Unit {
	case MilliampereHours:
		return c, nil
	case MilliwattHours:
		if voltageMV <= 0 {
			return CapacityValue{}, fmt.Errorf("cannot convert %s to mAh at %gmV", c, voltageMV)
		}
		return MilliampereHoursOf(c.Value * 1000 / voltageMV), nil
	}
	return CapacityValue{}, fmt.Errorf("unknown capacity unit %d", int(c.Unit))
}

func mismatch(a, b CapacityValue) error {
	return fmt.Errorf("%w: %s vs %s", ErrUnitMismatch, a.Unit, b.Unit)
}
