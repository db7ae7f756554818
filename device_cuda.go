//go:build cuda

package boostbench

import (
	"gorgonia.org/cu"
)

// cudaDevices enumerates NVIDIA GPUs through the CUDA driver API.
// Device IDs continue after the host devices already probed. A missing
// or broken driver yields an empty list, not an error; lookup failures
// surface later as ErrNoDevice.
func cudaDevices(firstID int) []Device {
	n, err := cu.NumDevices()
	if err != nil || n <= 0 {
		return nil
	}
	out := make([]Device, 0, n)
	for i := 0; i < n; i++ {
		dev := cu.Device(i)
		name, err := dev.Name()
		if err != nil {
			continue
		}
		mem, _ := dev.TotalMem()
		sms, _ := dev.Attribute(cu.MultiprocessorCount)
		threads, _ := dev.Attribute(cu.MaxThreadsPerMultiProcessor)
		out = append(out, Device{
			ID:         firstID + i,
			Kind:       DeviceCUDA,
			Name:       name,
			TotalMem:   uint64(mem),
			NumCores:   sms,
			MaxThreads: sms * threads,
		})
	}
	return out
}
