//go:build !windows

package win32

import (
	"context"

	"github.com/charlie0129/xbat/pkg/snapshot"
)

func querySystemPowerStatus() (SystemPowerStatus, error) {
	return SystemPowerStatus{}, snapshot.ErrPlatformUnsupported
}

func queryDeviceIo(context.Context) ([]DeviceIoRecord, error) {
	return nil, snapshot.ErrPlatformUnsupported
}
