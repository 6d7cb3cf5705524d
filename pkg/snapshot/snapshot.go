package snapshot

import (
	"errors"

	"github.com/charlie0129/xbat/pkg/powerinfo"
)

// ErrPlatformUnsupported is returned when no battery source exists for the
// running OS or the requested source.
var ErrPlatformUnsupported = errors.New("battery information is not supported on this platform")

// Snapshot is the battery state of a system captured once. Implementations
// are immutable after construction.
type Snapshot interface {
	// PrimaryInfo returns the first battery, or a BatteryInfo with
	// HasBattery false if there is none.
	PrimaryInfo() powerinfo.BatteryInfo
	// AllInfos returns every battery in source enumeration order.
	AllInfos() []powerinfo.BatteryInfo
	// Details returns a dump of the raw source records.
	Details() string
}

// Multi is a Snapshot over an ordered list of raw per-device records.
type Multi[S any] struct {
	records   []S
	normalize func(S) powerinfo.BatteryInfo
	dump      func(S) string
}

// NewMulti normalizes and dumps each record with the given functions. The
// records slice is owned by the returned Multi.
func NewMulti[S any](records []S, normalize func(S) powerinfo.BatteryInfo, dump func(S) string) *Multi[S] {
	return &Multi[S]{records: records, normalize: normalize, dump: dump}
}

// Records returns the raw records in order.
func (m *Multi[S]) Records() []S {
	return append([]S(nil), m.records...)
}

func (m *Multi[S]) PrimaryInfo() powerinfo.BatteryInfo {
	if len(m.records) == 0 {
		return powerinfo.BatteryInfo{}
	}
	return m.normalize(m.records[0])
}

func (m *Multi[S]) AllInfos() []powerinfo.BatteryInfo {
	ret := make([]powerinfo.BatteryInfo, 0, len(m.records))
	for _, r := range m.records {
		ret = append(ret, m.normalize(r))
	}
	return ret
}

func (m *Multi[S]) Details() string {
	dumps := make([]string, 0, len(m.records))
	for _, r := range m.records {
		dumps = append(dumps, m.dump(r))
	}
	return JoinDumps(dumps)
}

// Supported reports whether a native source exists for goos.
func Supported(goos string) bool {
	switch goos {
	case "darwin", "linux", "windows":
		return true
	}
	return false
}
