//go:build !cuda

package boostbench

// cudaDevices reports no GPUs in builds without the cuda tag.
func cudaDevices(firstID int) []Device {
	return nil
}
