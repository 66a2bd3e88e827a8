package perf

import (
	"fmt"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

// resourceSample is one point-in-time reading of process resource usage.
type resourceSample struct {
	cpuMicros int64 // accumulated user+system CPU time
	memKiB    int64 // current virtual memory size
}

// sampleResources reads CPU usage from the kernel's rusage counters and
// memory from the VmSize field of the process's own status file. Either
// source failing fails the whole sample.
func sampleResources() (resourceSample, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return resourceSample{}, fmt.Errorf("getrusage: %w", err)
	}
	cpu := (int64(ru.Utime.Sec)+int64(ru.Stime.Sec))*1000000 +
		int64(ru.Utime.Usec) + int64(ru.Stime.Usec)

	proc, err := procfs.Self()
	if err != nil {
		return resourceSample{}, fmt.Errorf("open process status: %w", err)
	}
	status, err := proc.NewStatus()
	if err != nil {
		return resourceSample{}, fmt.Errorf("read process status: %w", err)
	}

	return resourceSample{cpuMicros: cpu, memKiB: int64(status.VmSize) / 1024}, nil
}
