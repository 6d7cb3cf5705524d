package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/utils/ptr"
)

func init() {
	color.NoColor = true
}

func sampleInfo() powerinfo.BatteryInfo {
	return powerinfo.BatteryInfo{
		HasBattery:                true,
		ChargePercentage:          ptr.To(85.13),
		ChargeHealthPercentage:    ptr.To(73.71),
		CurrentChargeCapacity:     ptr.To(powerinfo.MilliampereHoursOf(3005)),
		MaxChargeCapacity:         ptr.To(powerinfo.MilliampereHoursOf(3531)),
		DesignChargeCapacity:      ptr.To(powerinfo.MilliampereHoursOf(4790)),
		ChargeRate:                ptr.To(-5.0),
		Voltage:                   ptr.To(12470.0),
		Temperature:               ptr.To(30.5),
		ChargingFlags:             powerinfo.Discharging,
		TimeToDischargeCompletion: ptr.To(3900.0),
	}
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	printInfo(&buf, sampleInfo())
	out := buf.String()

	for _, want := range []string{
		"State: discharging",
		"Current charge: 85.1%",
		"Health: 73.7%",
		"Charge rate: -5.0 W",
		"Voltage: 12.47 V",
		"Temperature: 30.5 °C",
		"Time to empty: 1h05m",
		"Current capacity: 3005 mAh",
		"Design capacity: 4790 mAh",
		"Flags: Discharging",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("printInfo() output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Time to full") {
		t.Errorf("printInfo() printed time to full while discharging:\n%s", out)
	}
}

func TestPrintInfo_Empty(t *testing.T) {
	var buf bytes.Buffer
	printInfo(&buf, powerinfo.BatteryInfo{})
	out := buf.String()

	for _, want := range []string{"Battery: ✘", "State: n/a", "Current charge: n/a", "Charge rate: n/a", "Flags: None"} {
		if !strings.Contains(out, want) {
			t.Errorf("printInfo() output missing %q:\n%s", want, out)
		}
	}
}

func TestDurationText(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "0h00m"},
		{1440, "0h24m"},
		{3900, "1h05m"},
		{36000 + 29, "10h00m"},
		{36000 + 31, "10h01m"},
	}
	for _, tt := range tests {
		if got := durationText(tt.sec); got != tt.want {
			t.Errorf("durationText(%v) = %v, want %v", tt.sec, got, tt.want)
		}
	}
}

func TestPrintStatusJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printStatusJSON(&buf, []powerinfo.BatteryInfo{sampleInfo()}, false, ""); err != nil {
		t.Fatal(err)
	}
	var primary map[string]any
	if err := json.Unmarshal(buf.Bytes(), &primary); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if primary["status"] != powerinfo.StatusDischarging {
		t.Errorf("status = %v, want %v", primary["status"], powerinfo.StatusDischarging)
	}
	if primary["chargeRate"] != -5.0 {
		t.Errorf("chargeRate = %v, want -5", primary["chargeRate"])
	}
	if _, ok := primary["details"]; ok {
		t.Errorf("details present without --details")
	}

	buf.Reset()
	if err := printStatusJSON(&buf, nil, true, "[]"); err != nil {
		t.Fatal(err)
	}
	var list statusListJSON
	if err := json.Unmarshal(buf.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list.Batteries) != 0 || list.Details != "[]" {
		t.Errorf("list = %+v", list)
	}
}
