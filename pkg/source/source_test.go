package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charlie0129/xbat/pkg/powerinfo"
	"github.com/charlie0129/xbat/pkg/snapshot"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		want    string
		wantErr bool
	}{
		{"", "darwin", IOReg, false},
		{Auto, "darwin", IOReg, false},
		{Auto, "linux", Sysfs, false},
		{Auto, "windows", Win32, false},
		{Auto, "freebsd", Generic, false},
		{Auto, "plan9", "", true},
		{IORegPlist, "darwin", IORegPlist, false},
		{IOReg, "linux", "", true},
		{UPower, "linux", UPower, false},
		{UPower, "windows", "", true},
		{Win32Basic, "windows", Win32Basic, false},
		{Generic, "openbsd", Generic, false},
		{Generic, "js", "", true},
		{"smc", "darwin", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.goos, func(t *testing.T) {
			got, err := Resolve(tt.name, tt.goos)
			if tt.wantErr {
				if !errors.Is(err, snapshot.ErrPlatformUnsupported) {
					t.Errorf("Resolve() error = %v, want ErrPlatformUnsupported", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if names[0] != Auto {
		t.Errorf("Names()[0] = %v, want %v", names[0], Auto)
	}
	if len(names) != len(sources)+1 {
		t.Errorf("len(Names()) = %d, want %d", len(names), len(sources)+1)
	}
	for _, n := range names[1:] {
		if _, err := Resolve(n, sources[n].goos[0]); err != nil {
			t.Errorf("Resolve(%q) error = %v", n, err)
		}
	}
}

func TestOpen_Unknown(t *testing.T) {
	_, err := Open(context.Background(), "nope", Options{})
	if !errors.Is(err, snapshot.ErrPlatformUnsupported) {
		t.Errorf("Open() error = %v, want ErrPlatformUnsupported", err)
	}
}

func TestOpen_Sysfs(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("sysfs is linux only")
	}
	root := t.TempDir()
	dir := filepath.Join(root, "class", "power_supply", "BAT0")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	uevent := "POWER_SUPPLY_STATUS=Charging\nPOWER_SUPPLY_CAPACITY=42\n"
	if err := os.WriteFile(filepath.Join(dir, "uevent"), []byte(uevent), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(context.Background(), Sysfs, Options{SysfsRoot: root})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	info := s.PrimaryInfo()
	if info.ChargePercentage == nil || *info.ChargePercentage != 42 {
		t.Errorf("ChargePercentage = %v, want 42", info.ChargePercentage)
	}
	if !info.ChargingFlags.Has(powerinfo.ExternalPowerCharging) {
		t.Errorf("ChargingFlags = %v, want ExternalPowerCharging", info.ChargingFlags)
	}
}
