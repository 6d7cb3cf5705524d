package apple

import (
	"context"
	"io"

	"github.com/charlie0129/xbat/pkg/ioreg"
	"github.com/charlie0129/xbat/pkg/powerinfo"
)

// Snapshot is the single system battery of a Mac.
type Snapshot struct {
	State State
}

func (s *Snapshot) PrimaryInfo() powerinfo.BatteryInfo {
	return s.State.Info()
}

func (s *Snapshot) AllInfos() []powerinfo.BatteryInfo {
	return []powerinfo.BatteryInfo{s.State.Info()}
}

func (s *Snapshot) Details() string {
	return s.State.String()
}

// FromIOReg builds a snapshot from ioreg text output. Only properties of
// AppleSmartBattery objects are used.
func FromIOReg(r io.Reader) (*Snapshot, error) {
	var st State
	if err := ioreg.Parse(r, accumulate(&st)); err != nil {
		return nil, err
	}
	return &Snapshot{State: st}, nil
}

// FromIORegContext is FromIOReg, but stops between lines once ctx is done.
func FromIORegContext(ctx context.Context, r io.Reader) (*Snapshot, error) {
	var st State
	if err := ioreg.ParseContext(ctx, r, accumulate(&st)); err != nil {
		return nil, err
	}
	return &Snapshot{State: st}, nil
}

// FromPlist builds a snapshot from ioreg -a output.
func FromPlist(ctx context.Context, r io.Reader) (*Snapshot, error) {
	var st State
	if err := ioreg.WalkPlistContext(ctx, r, accumulate(&st)); err != nil {
		return nil, err
	}
	return &Snapshot{State: st}, nil
}

func accumulate(st *State) ioreg.Handler {
	return func(_ []ioreg.Object, obj ioreg.Object, prop ioreg.Property) error {
		if obj.Name != BatteryObjectName {
			return nil
		}
		return st.Set(prop.Name, prop.Value)
	}
}
