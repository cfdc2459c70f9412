// Package ff implements arithmetic over prime fields with a pluggable,
// compile-time modulus.
//
// A field is described by a zero-size type implementing [Modulus]; the
// element type [Element] takes the descriptor as a type parameter so
// that each field instantiation is specialized by the compiler and no
// per-operation dispatch on the modulus takes place.
//
// Elements are fixed-width (4×64-bit) unsigned integers kept in
// Montgomery form internally. Every publicly observable value is the
// canonical representative in [0, q); the internal representation never
// leaks through the API. The modulus must be an odd prime smaller than
// 2²⁵⁴ whose most significant word is below 2⁶³-1, the precondition of
// the no-carry Montgomery multiplication used here.
package ff
