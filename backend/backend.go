package backend

import "errors"

// ErrBackendUnavailable is returned when the requested capability is
// not compiled in, or not supported for the instantiated field or
// curve.
var ErrBackendUnavailable = errors.New("backend: requested acceleration is not available")

// Capability is an execution level for the compute-heavy primitives.
type Capability int

const (
	// None runs single-threaded on the CPU.
	None Capability = iota
	// Parallel uses all CPUs.
	Parallel
	// GPU offloads to an accelerator (build tag `icicle`).
	GPU
	maxCapability
)

func (c Capability) String() string {
	switch c {
	case None:
		return "none"
	case Parallel:
		return "parallel"
	case GPU:
		return "gpu"
	default:
		return "unknown"
	}
}
