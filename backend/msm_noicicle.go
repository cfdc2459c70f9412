//go:build !icicle

package backend

// HasGPU reports whether GPU acceleration is compiled in.
const HasGPU = false
