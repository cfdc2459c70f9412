// Package backend selects execution backends for the compute-heavy
// primitives of this module: the field FFT and the curve multi-scalar
// multiplication.
//
// Three capability levels exist: None runs single-threaded on the CPU,
// Parallel fans the work out over all CPUs, and GPU offloads to an
// accelerator through the [ICICLE] library. GPU support is compiled in
// with the `icicle` build tag:
//
//	go build -tags=icicle
//
// and needs the ICICLE runtime installed; follow the instructions in
// the ICICLE repository, then set:
//
//	export CGO_LDFLAGS="-L/usr/local/lib -licicle_device -lstdc++ -lm -Wl,-rpath=/usr/local/lib"
//	export ICICLE_BACKEND_INSTALL_DIR="/usr/local/lib/backend/"
//
// Requesting a capability that is not compiled in or not supported for
// the instantiated field or curve returns ErrBackendUnavailable; the
// Best constructors degrade to the strongest available level instead.
//
// [ICICLE]: https://github.com/ingonyama-zk/icicle-gnark
package backend
