//go:build windows

package win32

import (
	"context"
	"unsafe"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

var (
	kernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procGetSystemPowerStatus = kernel32.NewProc("GetSystemPowerStatus")
)

// {72631E54-78A4-11D0-BCF7-00AA00B7B32A}
var guidDeviceBattery = windows.GUID{
	Data1: 0x72631e54,
	Data2: 0x78a4,
	Data3: 0x11d0,
	Data4: [8]byte{0xbc, 0xf7, 0x00, 0xaa, 0x00, 0xb7, 0xb3, 0x2a},
}

const (
	ioctlBatteryQueryTag         = 0x294040
	ioctlBatteryQueryInformation = 0x294044
	ioctlBatteryQueryStatus      = 0x29404c
)

// BATTERY_QUERY_INFORMATION_LEVEL
const (
	batteryInformation   = 0
	batteryTemperature   = 2
	batteryEstimatedTime = 3
)

type batteryQueryInformation struct {
	BatteryTag       uint32
	InformationLevel int32
	AtRate           int32
}

type batteryInfo struct {
	Capabilities        uint32
	Technology          uint8
	Reserved            [3]uint8
	Chemistry           [4]uint8
	DesignedCapacity    uint32
	FullChargedCapacity uint32
	DefaultAlert1       uint32
	DefaultAlert2       uint32
	CriticalBias        uint32
	CycleCount          uint32
}

type batteryWaitStatus struct {
	BatteryTag   uint32
	Timeout      uint32
	PowerState   uint32
	LowCapacity  uint32
	HighCapacity uint32
}

type batteryStatus struct {
	PowerState uint32
	Capacity   uint32
	Voltage    uint32
	Rate       int32
}

func querySystemPowerStatus() (SystemPowerStatus, error) {
	var s SystemPowerStatus
	r, _, err := procGetSystemPowerStatus.Call(uintptr(unsafe.Pointer(&s)))
	if r == 0 {
		return s, pkgerrors.Wrap(err, "GetSystemPowerStatus failed")
	}
	return s, nil
}

func queryDeviceIo(ctx context.Context) ([]DeviceIoRecord, error) {
	paths, err := windows.CM_Get_Device_Interface_List("", &guidDeviceBattery, windows.CM_GET_DEVICE_INTERFACE_LIST_PRESENT)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list battery devices")
	}

	var records []DeviceIoRecord
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, ok, err := queryDevice(path)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to query battery %s", path)
		}
		if !ok {
			logrus.WithField("device", path).Debug("skipping battery device that is not a system battery")
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func ioctl(h windows.Handle, code uint32, in unsafe.Pointer, inSize uintptr, out unsafe.Pointer, outSize uintptr) error {
	var n uint32
	return windows.DeviceIoControl(h, code, (*byte)(in), uint32(inSize), (*byte)(out), uint32(outSize), &n, nil)
}

func queryDevice(path string) (DeviceIoRecord, bool, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return DeviceIoRecord{}, false, err
	}
	h, err := windows.CreateFile(p,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil, windows.OPEN_EXISTING, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return DeviceIoRecord{}, false, err
	}
	defer windows.CloseHandle(h)

	var wait uint32
	var bqi batteryQueryInformation
	if err := ioctl(h, ioctlBatteryQueryTag, unsafe.Pointer(&wait), unsafe.Sizeof(wait), unsafe.Pointer(&bqi.BatteryTag), unsafe.Sizeof(bqi.BatteryTag)); err != nil {
		return DeviceIoRecord{}, false, err
	}
	if bqi.BatteryTag == 0 {
		return DeviceIoRecord{}, false, nil
	}

	var bi batteryInfo
	bqi.InformationLevel = batteryInformation
	if err := ioctl(h, ioctlBatteryQueryInformation, unsafe.Pointer(&bqi), unsafe.Sizeof(bqi), unsafe.Pointer(&bi), unsafe.Sizeof(bi)); err != nil {
		return DeviceIoRecord{}, false, err
	}
	if bi.Capabilities&CapabilitySystemBattery == 0 {
		return DeviceIoRecord{}, false, nil
	}

	estimated := uint32(UnknownTime)
	bqi.InformationLevel = batteryEstimatedTime
	bqi.AtRate = 0
	if err := ioctl(h, ioctlBatteryQueryInformation, unsafe.Pointer(&bqi), unsafe.Sizeof(bqi), unsafe.Pointer(&estimated), unsafe.Sizeof(estimated)); err != nil {
		return DeviceIoRecord{}, false, err
	}

	// Many drivers do not implement the temperature level.
	var temperature uint32
	bqi.InformationLevel = batteryTemperature
	if err := ioctl(h, ioctlBatteryQueryInformation, unsafe.Pointer(&bqi), unsafe.Sizeof(bqi), unsafe.Pointer(&temperature), unsafe.Sizeof(temperature)); err != nil {
		temperature = 0
	}

	bws := batteryWaitStatus{BatteryTag: bqi.BatteryTag}
	var bs batteryStatus
	if err := ioctl(h, ioctlBatteryQueryStatus, unsafe.Pointer(&bws), unsafe.Sizeof(bws), unsafe.Pointer(&bs), unsafe.Sizeof(bs)); err != nil {
		return DeviceIoRecord{}, false, err
	}

	return DeviceIoRecord{
		Capabilities:        bi.Capabilities,
		PowerState:          bs.PowerState,
		Capacity:            bs.Capacity,
		Rate:                bs.Rate,
		Voltage:             bs.Voltage,
		EstimatedTime:       estimated,
		FullChargedCapacity: bi.FullChargedCapacity,
		DesignedCapacity:    bi.DesignedCapacity,
		CycleCount:          bi.CycleCount,
		Temperature:         temperature,
	}, true, nil
}
