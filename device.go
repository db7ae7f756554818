package boostbench

import (
	"fmt"
	"runtime"
	"sync"
)

// DeviceKind selects the hardware class a training run boosts on.
type DeviceKind int

const (
	// DeviceCPU selects the host CPU
	DeviceCPU DeviceKind = iota
	// DeviceCUDA selects an NVIDIA GPU; requires a binary built with
	// the cuda tag and a usable driver
	DeviceCUDA
)

// String returns the selector string engines recognize.
func (k DeviceKind) String() string {
	switch k {
	case DeviceCPU:
		return "cpu"
	case DeviceCUDA:
		return "cuda"
	default:
		return "unknown"
	}
}

// ParseDeviceKind maps a selector string to a DeviceKind. "gpu" is
// accepted as an alias for "cuda".
func ParseDeviceKind(s string) (DeviceKind, error) {
	switch s {
	case "cpu":
		return DeviceCPU, nil
	case "cuda", "gpu":
		return DeviceCUDA, nil
	}
	return 0, NewInvalidArgError("ParseDeviceKind", fmt.Sprintf("unknown device %q", s))
}

// Device describes a compute device. The host CPU is always device 0;
// CUDA devices follow when present. Each device has a unique ID and
// capabilities.
type Device struct {
	ID         int        // Unique device identifier
	Kind       DeviceKind // Hardware class
	Name       string     // Human-readable device name
	TotalMem   uint64     // Total available memory in bytes
	NumCores   int        // Physical cores (CPU) or multiprocessors (GPU)
	MaxThreads int        // Maximum concurrent threads
}

// Global device state
var (
	deviceOnce sync.Once
	deviceList []Device
)

// Devices returns every compute device visible to the process. The list
// is probed once and cached.
func Devices() []Device {
	deviceOnce.Do(func() {
		deviceList = []Device{hostDevice()}
		deviceList = append(deviceList, cudaDevices(len(deviceList))...)
	})
	return deviceList
}

// DeviceByKind returns the first device of the requested kind, or
// ErrNoDevice when none is available. Training paths surface this error
// unchanged, so selecting cuda on a CPU-only host fails the same way an
// engine binding would.
func DeviceByKind(kind DeviceKind) (Device, error) {
	for _, d := range Devices() {
		if d.Kind == kind {
			return d, nil
		}
	}
	return Device{}, ErrNoDevice
}

// DeviceByID returns the device with the given ID.
func DeviceByID(id int) (Device, error) {
	for _, d := range Devices() {
		if d.ID == id {
			return d, nil
		}
	}
	return Device{}, NewInvalidArgError("DeviceByID", fmt.Sprintf("invalid device ID: %d", id))
}

func hostDevice() Device {
	cores := physicalCores()
	threads := logicalCores()
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return Device{
		ID:         0,
		Kind:       DeviceCPU,
		Name:       cpuName(),
		TotalMem:   hostMemory(),
		NumCores:   cores,
		MaxThreads: threads,
	}
}

// hostMemory returns total system memory in bytes
func hostMemory() uint64 {
	// This is a simplified version
	// In production, we'd use syscalls to get actual memory
	return 16 * 1024 * 1024 * 1024 // Default to 16GB
}

// String formats a device for reports.
func (d Device) String() string {
	return fmt.Sprintf("[%d] %s (%s, %d cores, %d threads)",
		d.ID, d.Name, d.Kind, d.NumCores, d.MaxThreads)
}
