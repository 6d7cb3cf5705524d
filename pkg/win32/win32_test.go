package win32

import (
	"context"
	"errors"
	"math"
	"runtime"
	"strings"
	"testing"

	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/snapshot"
)

func approx(p *float64, want float64) bool {
	return p != nil && math.Abs(*p-want) < 1e-6
}

func TestSystemPowerStatus_Info(t *testing.T) {
	tests := []struct {
		name        string
		status      SystemPowerStatus
		wantFlags   powerinfo.ChargingFlags
		wantBattery bool
		wantPercent *float64
		wantTime    *float64
	}{
		{
			name:        "on battery",
			status:      SystemPowerStatus{ACLineStatus: ACLineOffline, BatteryFlag: BatteryFlagHigh, BatteryLifePercent: 80, BatteryLifeTime: 7200},
			wantFlags:   powerinfo.Discharging,
			wantBattery: true,
			wantPercent: ptrFloat(80),
			wantTime:    ptrFloat(7200),
		},
		{
			name:        "charging",
			status:      SystemPowerStatus{ACLineStatus: ACLineOnline, BatteryFlag: BatteryFlagCharging, BatteryLifePercent: 40, BatteryLifeTime: unknownLifeTime},
			wantFlags:   powerinfo.ExternalPowerConnected | powerinfo.ExternalPowerCharging,
			wantBattery: true,
			wantPercent: ptrFloat(40),
		},
		{
			name:        "critical with unknown life time",
			status:      SystemPowerStatus{ACLineStatus: ACLineOffline, BatteryFlag: BatteryFlagCritical | BatteryFlagLow, BatteryLifePercent: 3, BatteryLifeTime: unknownLifeTime},
			wantFlags:   powerinfo.Discharging | powerinfo.CriticalCharge,
			wantBattery: true,
			wantPercent: ptrFloat(3),
		},
		{
			name:      "desktop without battery",
			status:    SystemPowerStatus{ACLineStatus: ACLineOnline, BatteryFlag: BatteryFlagNoBattery, BatteryLifePercent: unknownPercent},
			wantFlags: powerinfo.ExternalPowerConnected,
		},
		{
			name:   "everything unknown",
			status: SystemPowerStatus{ACLineStatus: ACLineUnknown, BatteryFlag: BatteryFlagUnknown, BatteryLifePercent: unknownPercent, BatteryLifeTime: unknownLifeTime},
		},
		{
			name:        "charging bit wins over offline line",
			status:      SystemPowerStatus{ACLineStatus: ACLineOffline, BatteryFlag: BatteryFlagCharging, BatteryLifePercent: 101, BatteryLifeTime: 60},
			wantFlags:   powerinfo.ExternalPowerCharging,
			wantBattery: true,
			wantPercent: ptrFloat(100),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.status.Info()
			if info.ChargingFlags != tt.wantFlags {
				t.Errorf("ChargingFlags = %v, want %v", info.ChargingFlags, tt.wantFlags)
			}
			if info.HasBattery != tt.wantBattery {
				t.Errorf("HasBattery = %v, want %v", info.HasBattery, tt.wantBattery)
			}
			if !equalPtr(info.ChargePercentage, tt.wantPercent) {
				t.Errorf("ChargePercentage = %v, want %v", info.ChargePercentage, tt.wantPercent)
			}
			if !equalPtr(info.TimeToDischargeCompletion, tt.wantTime) {
				t.Errorf("TimeToDischargeCompletion = %v, want %v", info.TimeToDischargeCompletion, tt.wantTime)
			}
			if info.CurrentChargeCapacity != nil || info.ChargeRate != nil {
				t.Errorf("basic status should not report capacities or rate")
			}
		})
	}
}

func TestDeviceIoRecord_Info(t *testing.T) {
	discharging := DeviceIoRecord{
		Capabilities:        CapabilitySystemBattery,
		PowerState:          PowerDischarging,
		Capacity:            30000,
		Rate:                -12500,
		Voltage:             11800,
		EstimatedTime:       8640,
		FullChargedCapacity: 50000,
		DesignedCapacity:    55000,
		Temperature:         3031,
	}
	info := discharging.Info()
	if !approx(info.ChargePercentage, 60) {
		t.Errorf("ChargePercentage = %v, want 60", info.ChargePercentage)
	}
	if !approx(info.ChargeHealthPercentage, 50000.0/55000*100) {
		t.Errorf("ChargeHealthPercentage = %v", info.ChargeHealthPercentage)
	}
	if !approx(info.ChargeRate, -12.5) {
		t.Errorf("ChargeRate = %v, want -12.5", info.ChargeRate)
	}
	if !approx(info.Voltage, 11800) {
		t.Errorf("Voltage = %v, want 11800", info.Voltage)
	}
	if !approx(info.Temperature, 29.95) {
		t.Errorf("Temperature = %v, want 29.95", info.Temperature)
	}
	if !approx(info.TimeToDischargeCompletion, 8640) {
		t.Errorf("TimeToDischargeCompletion = %v, want 8640", info.TimeToDischargeCompletion)
	}
	if got := info.CurrentChargeCapacity; got == nil || *got != powerinfo.MilliwattHoursOf(30000) {
		t.Errorf("CurrentChargeCapacity = %v, want 30000mWh", got)
	}
	if info.ChargingFlags != powerinfo.Discharging {
		t.Errorf("ChargingFlags = %v, want Discharging", info.ChargingFlags)
	}

	tests := []struct {
		name   string
		record DeviceIoRecord
		check  func(t *testing.T, info powerinfo.BatteryInfo)
	}{
		{
			name: "relative capacity withholds capacities",
			record: DeviceIoRecord{
				Capabilities:        CapabilitySystemBattery | CapabilityCapacityRelative,
				PowerState:          PowerOnLine | PowerCharging,
				Capacity:            40,
				Rate:                500,
				FullChargedCapacity: 100,
				DesignedCapacity:    100,
				EstimatedTime:       UnknownTime,
				Voltage:             UnknownVoltage,
			},
			check: func(t *testing.T, info powerinfo.BatteryInfo) {
				if info.CurrentChargeCapacity != nil || info.MaxChargeCapacity != nil || info.DesignChargeCapacity != nil {
					t.Errorf("capacities should be nil for relative batteries")
				}
				if info.ChargeHealthPercentage != nil || info.ChargeRate != nil {
					t.Errorf("health and rate should be nil for relative batteries")
				}
				if !approx(info.ChargePercentage, 40) {
					t.Errorf("ChargePercentage = %v, want 40", info.ChargePercentage)
				}
				if info.Voltage != nil || info.Temperature != nil {
					t.Errorf("unknown voltage and temperature should be nil")
				}
				if info.ChargingFlags != powerinfo.ExternalPowerConnected|powerinfo.ExternalPowerCharging {
					t.Errorf("ChargingFlags = %v", info.ChargingFlags)
				}
			},
		},
		{
			name: "unknown sentinels",
			record: DeviceIoRecord{
				PowerState:          PowerDischarging | PowerCritical,
				Capacity:            UnknownCapacity,
				Rate:                UnknownRate,
				EstimatedTime:       UnknownTime,
				Voltage:             UnknownVoltage,
				FullChargedCapacity: 60000,
				DesignedCapacity:    50000,
			},
			check: func(t *testing.T, info powerinfo.BatteryInfo) {
				if info.ChargePercentage != nil || info.CurrentChargeCapacity != nil {
					t.Errorf("unknown capacity should leave percentage and current nil")
				}
				if info.ChargeRate != nil || info.TimeToDischargeCompletion != nil {
					t.Errorf("unknown rate and time should be nil")
				}
				if info.ChargeHealthPercentage == nil || *info.ChargeHealthPercentage != 100 {
					t.Errorf("ChargeHealthPercentage = %v, want clamped 100", info.ChargeHealthPercentage)
				}
				if info.ChargingFlags != powerinfo.Discharging|powerinfo.FailureImminent {
					t.Errorf("ChargingFlags = %v", info.ChargingFlags)
				}
			},
		},
		{
			name:   "charging wins over discharging",
			record: DeviceIoRecord{PowerState: PowerCharging | PowerDischarging, EstimatedTime: 100, Capacity: UnknownCapacity, Voltage: UnknownVoltage},
			check: func(t *testing.T, info powerinfo.BatteryInfo) {
				if info.ChargingFlags != powerinfo.ExternalPowerCharging {
					t.Errorf("ChargingFlags = %v, want ExternalPowerCharging", info.ChargingFlags)
				}
				if info.TimeToDischargeCompletion != nil {
					t.Errorf("TimeToDischargeCompletion = %v, want nil while charging", *info.TimeToDischargeCompletion)
				}
			},
		},
		{
			name:   "zero full capacity",
			record: DeviceIoRecord{Capacity: 10, Voltage: UnknownVoltage},
			check: func(t *testing.T, info powerinfo.BatteryInfo) {
				if info.ChargePercentage != nil || info.ChargeHealthPercentage != nil {
					t.Errorf("percentages should be nil without a full capacity")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.record.Info())
		})
	}
}

func TestNewDeviceIoSnapshot(t *testing.T) {
	s := NewDeviceIoSnapshot(nil)
	if s.PrimaryInfo().HasBattery {
		t.Errorf("PrimaryInfo().HasBattery = true for no devices")
	}
	if d := s.Details(); d != "[]" {
		t.Errorf("Details() = %q, want []", d)
	}

	s = NewDeviceIoSnapshot([]DeviceIoRecord{
		{Capacity: 1, FullChargedCapacity: 2, Voltage: UnknownVoltage},
		{Capacity: 3, FullChargedCapacity: 4, Voltage: UnknownVoltage},
	})
	all := s.AllInfos()
	if len(all) != 2 || !approx(all[0].ChargePercentage, 50) || !approx(all[1].ChargePercentage, 75) {
		t.Errorf("AllInfos() = %+v", all)
	}
	if d := s.Details(); !strings.Contains(d, "    Capacity = 3,\n") || !strings.Contains(d, "    Voltage = 4294967295,\n") {
		t.Errorf("Details() = %s", d)
	}
}

func TestNewBasicSnapshot(t *testing.T) {
	s := NewBasicSnapshot(SystemPowerStatus{ACLineStatus: ACLineOnline, BatteryLifePercent: 50})
	if len(s.AllInfos()) != 1 {
		t.Errorf("AllInfos() = %v, want one battery", s.AllInfos())
	}
	if d := s.Details(); !strings.Contains(d, "    BatteryLifePercent = 50,\n") {
		t.Errorf("Details() = %s", d)
	}
}

func TestSnapshots_UnsupportedElsewhere(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("native APIs are available")
	}
	if _, err := BasicSnapshot(context.Background()); !errors.Is(err, snapshot.ErrPlatformUnsupported) {
		t.Errorf("BasicSnapshot() error = %v, want ErrPlatformUnsupported", err)
	}
	if _, err := DeviceIoSnapshot(context.Background()); !errors.Is(err, snapshot.ErrPlatformUnsupported) {
		t.Errorf("DeviceIoSnapshot() error = %v, want ErrPlatformUnsupported", err)
	}
}

func ptrFloat(v float64) *float64 { return &v }

func equalPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return math.Abs(*a-*b) < 1e-6
}
