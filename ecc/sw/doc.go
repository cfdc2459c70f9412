// Package sw implements short Weierstrass elliptic curve groups
// y² = x³ + ax + b over the prime fields of package ff.
//
// A curve is selected at compile time by a zero-size CurveParams
// descriptor used as a type parameter, so Affine and Jacobian points of
// different curves are distinct Go types. Group operations run on
// Jacobian coordinates (the point at infinity has Z = 0); Affine is the
// serialization and input form, with (0, 0) denoting infinity.
package sw
