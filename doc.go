// Package zkmath provides the arithmetic core shared by zero-knowledge
// proof systems: prime and extension field arithmetic with a pluggable
// modulus, elliptic curve group operations over several coordinate
// systems, a radix-2 FFT/NTT engine, and a multi-scalar multiplication
// engine with pluggable acceleration backends.
//
// The packages compose bottom-up: ff provides field elements, polynomial
// and fft build on ff, ecc/sw and ecc/twistededwards provide curve
// groups, and backend selects an execution strategy (CPU reference,
// worker pool, or GPU offload) without changing observable results.
package zkmath
