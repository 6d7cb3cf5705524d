package generic

import (
	"math"
	"strings"
	"testing"

	"github.com/distatus/battery"

	"github.com/charlie0129/xbat/pkg/powerinfo"
)

func approx(p *float64, want float64) bool {
	return p != nil && math.Abs(*p-want) < 1e-6
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name       string
		bat        battery.Battery
		wantFlags  powerinfo.ChargingFlags
		wantRate   float64
		wantToFull *float64
		wantEmpty  *float64
	}{
		{
			name:      "discharging",
			bat:       battery.Battery{State: battery.Discharging, Current: 20000, Full: 40000, Design: 50000, ChargeRate: 10000, DesignVoltage: 11.4},
			wantFlags: powerinfo.Discharging,
			wantRate:  -10,
			wantEmpty: ptrFloat(7200),
		},
		{
			name:       "charging",
			bat:        battery.Battery{State: battery.Charging, Current: 20000, Full: 40000, Design: 50000, ChargeRate: 40000},
			wantFlags:  powerinfo.ExternalPowerConnected | powerinfo.ExternalPowerCharging,
			wantRate:   40,
			wantToFull: ptrFloat(1800),
		},
		{
			name:      "full",
			bat:       battery.Battery{State: battery.Full, Current: 40000, Full: 40000, Design: 50000},
			wantFlags: powerinfo.ExternalPowerConnected,
		},
		{
			name:      "discharging at zero rate",
			bat:       battery.Battery{State: battery.Discharging, Current: 1, Full: 2, Design: 2},
			wantFlags: powerinfo.Discharging,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info(tt.bat)
			if info.ChargingFlags != tt.wantFlags {
				t.Errorf("ChargingFlags = %v, want %v", info.ChargingFlags, tt.wantFlags)
			}
			if !approx(info.ChargeRate, tt.wantRate) {
				t.Errorf("ChargeRate = %v, want %v", info.ChargeRate, tt.wantRate)
			}
			if !equalPtr(info.TimeToChargeCompletion, tt.wantToFull) {
				t.Errorf("TimeToChargeCompletion = %v, want %v", info.TimeToChargeCompletion, tt.wantToFull)
			}
			if !equalPtr(info.TimeToDischargeCompletion, tt.wantEmpty) {
				t.Errorf("TimeToDischargeCompletion = %v, want %v", info.TimeToDischargeCompletion, tt.wantEmpty)
			}
			if err := info.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestInfo_Capacities(t *testing.T) {
	info := Info(battery.Battery{State: battery.Discharging, Current: 20000, Full: 40000, Design: 50000, DesignVoltage: 11.4})
	if !approx(info.ChargePercentage, 50) {
		t.Errorf("ChargePercentage = %v, want 50", info.ChargePercentage)
	}
	if !approx(info.ChargeHealthPercentage, 80) {
		t.Errorf("ChargeHealthPercentage = %v, want 80", info.ChargeHealthPercentage)
	}
	if !approx(info.Voltage, 11400) {
		t.Errorf("Voltage = %v, want 11400", info.Voltage)
	}
	if got := info.DesignChargeCapacity; got == nil || got.Unit != powerinfo.MilliwattHours {
		t.Errorf("DesignChargeCapacity = %v, want mWh", got)
	}
	if info.Temperature != nil {
		t.Errorf("Temperature = %v, want nil", *info.Temperature)
	}
}

func TestNewSnapshot(t *testing.T) {
	s := NewSnapshot([]battery.Battery{
		{State: battery.Charging, Current: 1, Full: 4, Design: 4},
		{State: battery.Full, Current: 4, Full: 4, Design: 4},
	})
	if got := s.PrimaryInfo().ChargePercentage; !approx(got, 25) {
		t.Errorf("PrimaryInfo().ChargePercentage = %v, want 25", got)
	}
	if len(s.AllInfos()) != 2 {
		t.Errorf("AllInfos() = %v, want 2 batteries", s.AllInfos())
	}
	if d := s.Details(); !strings.Contains(d, "    Full = 4,\n") {
		t.Errorf("Details() = %s", d)
	}
}

func ptrFloat(v float64) *float64 { return &v }

func equalPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return math.Abs(*a-*b) < 1e-6
}
