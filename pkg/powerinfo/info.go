package powerinfo

import (
	"fmt"
	"math"

	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

// BatteryInfo is the normalized view of one battery at one point in time.
// Nil pointer fields mean the source did not report the value.
//
// Units:
//   - ChargeRate: W (positive when charging, negative when discharging)
//   - Voltage: mV
//   - Temperature: degrees Celsius
//   - TimeTo*Completion: seconds
type BatteryInfo struct {
	HasBattery                bool           `json:"hasBattery"`
	ChargePercentage          *float64       `json:"chargePercentage"`
	ChargeHealthPercentage    *float64       `json:"chargeHealthPercentage"`
	CurrentChargeCapacity     *CapacityValue `json:"currentChargeCapacity"`
	MaxChargeCapacity         *CapacityValue `json:"maxChargeCapacity"`
	DesignChargeCapacity      *CapacityValue `json:"designChargeCapacity"`
	ChargeRate                *float64       `json:"chargeRate"`
	Voltage                   *float64       `json:"voltage"`
	Temperature               *float64       `json:"temperature"`
	ChargingFlags             ChargingFlags  `json:"chargingFlags"`
	TimeToDischargeCompletion *float64       `json:"timeToDischargeCompletion"`
	TimeToChargeCompletion    *float64       `json:"timeToChargeCompletion"`
}

// Charge status labels, see BatteryInfo.ChargeStatus.
const (
	StatusCharging     = "charging"
	StatusPluggedIn    = "plugged in"
	StatusDischarging  = "discharging"
	StatusNotAvailable = "n/a"
)

// ChargeStatus returns a label chosen by precedence
// charging > plugged in > discharging > n/a.
func (b BatteryInfo) ChargeStatus() string {
	switch {
	case b.ChargingFlags.Has(ExternalPowerCharging):
		return StatusCharging
	case b.ChargingFlags.Has(ExternalPowerConnected):
		return StatusPluggedIn
	case b.ChargingFlags.Has(Discharging):
		return StatusDischarging
	}
	return StatusNotAvailable
}

// Validate checks the model invariants and returns the first violation.
func (b BatteryInfo) Validate() error {
	for name, p := range map[string]*float64{
		"chargePercentage":       b.ChargePercentage,
		"chargeHealthPercentage": b.ChargeHealthPercentage,
	} {
		if p != nil && (*p < 0 || *p > 100 || math.IsNaN(*p)) {
			return fmt.Errorf("%s %v out of [0,100]", name, *p)
		}
	}
	if b.ChargingFlags.Has(Discharging) && b.ChargingFlags.Has(ExternalPowerCharging) {
		return fmt.Errorf("charging flags %s are contradictory", b.ChargingFlags)
	}
	if b.CurrentChargeCapacity != nil && b.MaxChargeCapacity != nil && b.DesignChargeCapacity != nil {
		cur, max, design := *b.CurrentChargeCapacity, *b.MaxChargeCapacity, *b.DesignChargeCapacity
		if cur.SameUnit(max) && max.SameUnit(design) {
			if cur.Value > max.Value || max.Value > design.Value {
				return fmt.Errorf("capacities %s/%s/%s violate current <= max <= design", cur, max, design)
			}
		}
	}
	return nil
}

// OrderCapacities clamps MaxChargeCapacity to DesignChargeCapacity and then
// CurrentChargeCapacity to MaxChargeCapacity. Pairs in different units are
// left alone. Engines call it once the capacities are set; percentages are
// clamped separately and are unaffected.
func (b *BatteryInfo) OrderCapacities() {
	b.MaxChargeCapacity = clampTo(b.MaxChargeCapacity, b.DesignChargeCapacity)
	b.CurrentChargeCapacity = clampTo(b.CurrentChargeCapacity, b.MaxChargeCapacity)
}

func clampTo(v, limit *CapacityValue) *CapacityValue {
	if v == nil || limit == nil || !v.SameUnit(*limit) || v.Value <= limit.Value {
		return v
	}
	return ptr.To(*limit)
}

// Percent returns num/den*100 clamped to [0,100], or nil when the values
// carry different units or den is not positive.
func Percent(num, den *CapacityValue) *float64 {
	if num == nil || den == nil {
		return nil
	}
	r, err := num.Ratio(*den)
	if err != nil || den.Value < 0 {
		return nil
	}
	return ptr.To(Clamp(r*100, 0, 100))
}

// PercentOf returns num/den*100 clamped to [0,100] for unitless raw values.
func PercentOf(num, den float64) *float64 {
	if den <= 0 {
		return nil
	}
	return ptr.To(Clamp(num/den*100, 0, 100))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
