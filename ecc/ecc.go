// Package ecc identifies the elliptic curves of this module and holds
// curve-agnostic scalar utilities shared by the group implementations.
package ecc

import (
	"math/big"
)

// ID is a unique identifier for a supported curve, stable across
// releases; it guards serialized objects against cross-curve
// deserialization.
type ID uint16

const (
	UNKNOWN ID = iota
	BN254
	BABYJUBJUB
	STARK252
)

func (id ID) String() string {
	switch id {
	case BN254:
		return "bn254"
	case BABYJUBJUB:
		return "babyjubjub"
	case STARK252:
		return "stark252"
	default:
		return "unknown"
	}
}

var (
	zero, one, three big.Int
)

func init() {
	one.SetUint64(1)
	three.SetUint64(3)
}

// NafDecomposition writes the non-adjacent form of a into result,
// least significant digit first, and returns the number of digits.
// result must have room for a.BitLen()+1 digits. a must be
// non-negative.
func NafDecomposition(a *big.Int, result []int8) int {

	length := 0

	// some buffers
	var buf, aCopy big.Int
	aCopy.Set(a)

	for aCopy.Cmp(&zero) != 0 {

		// if aCopy % 2 == 0
		buf.And(&aCopy, &one)

		// aCopy even
		if buf.Cmp(&zero) == 0 {
			result[length] = 0
		} else { // aCopy odd
			buf.And(&aCopy, &three)
			if buf.Cmp(&three) == 0 {
				result[length] = -1
				aCopy.Add(&aCopy, &one)
			} else {
				result[length] = 1
			}
		}
		aCopy.Rsh(&aCopy, 1)
		length++
	}
	return length
}
