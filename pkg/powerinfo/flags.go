package powerinfo

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ChargingFlags describes external power presence, charge direction and
// critical conditions.
type ChargingFlags uint8

const (
	// Discharging means the battery is supplying power.
	Discharging ChargingFlags = 1 << iota
	// ExternalPowerConnected means an external power source is connected.
	ExternalPowerConnected
	// ExternalPowerCharging means external power is charging the battery.
	ExternalPowerCharging
	// CriticalCharge means the charge level is critical, as judged by the OS.
	CriticalCharge
	// FailureImminent means the battery system reports imminent failure.
	FailureImminent
)

// NoFlags is the empty set.
const NoFlags ChargingFlags = 0

var flagNames = []struct {
	flag ChargingFlags
	name string
}{
	{Discharging, "Discharging"},
	{ExternalPowerConnected, "ExternalPowerConnected"},
	{ExternalPowerCharging, "ExternalPowerCharging"},
	{CriticalCharge, "CriticalCharge"},
	{FailureImminent, "FailureImminent"},
}

// Has reports whether all bits of f are set.
func (c ChargingFlags) Has(f ChargingFlags) bool {
	return c&f == f
}

// Names returns the names of the set flags in bit order.
func (c ChargingFlags) Names() []string {
	names := []string{}
	for _, fn := range flagNames {
		if c&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

func (c ChargingFlags) String() string {
	if c == NoFlags {
		return "None"
	}
	return strings.Join(c.Names(), "|")
}

// MarshalJSON encodes the set as a list of flag names.
func (c ChargingFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Names())
}

// UnmarshalJSON decodes a list of flag names.
func (c *ChargingFlags) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	var out ChargingFlags
outer:
	for _, n := range names {
		for _, fn := range flagNames {
			if fn.name == n {
				out |= fn.flag
				continue outer
			}
		}
		return fmt.Errorf("unknown charging flag %q", n)
	}
	*c = out
	return nil
}

// Exclusive drops Discharging when ExternalPowerCharging is also set.
// Every normalizer passes its flags through this before returning.
func (c ChargingFlags) Exclusive() ChargingFlags {
	if c.Has(ExternalPowerCharging) {
		return c &^ Discharging
	}
	return c
}
