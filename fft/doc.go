// Package fft provides the radix-2 Fast Fourier Transform over prime
// fields with sufficient two-adicity (the Number-Theoretic Transform).
//
// A Domain fixes the evaluation set {ωᵏ}, ω a primitive n-th root of
// unity, and carries the precomputed constants the transforms need.
// The forward transform maps coefficients to evaluations in canonical
// order (index k ↔ ωᵏ); the inverse transform is its exact inverse.
// Coset variants evaluate on g·{ωᵏ} by pre/post-scaling coefficients,
// reusing the same core transform.
package fft
