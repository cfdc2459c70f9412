package fft

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/zkmath/zkmath/ff"
)

// ErrInvalidDomainSize is returned when a domain size is not a power of
// two, exceeds the field's two-adic subgroup, or does not match the
// length of a transform input.
var ErrInvalidDomainSize = errors.New("fft: domain size must be a power of two with a matching root of unity")

// Domain is an FFT evaluation domain of size n: the subgroup generated
// by a primitive n-th root of unity, plus an optional multiplicative
// coset shift. Domains are immutable after construction.
type Domain[M ff.Modulus] struct {
	Cardinality    uint64
	Generator      ff.Element[M] // ω, primitive n-th root of unity
	GeneratorInv   ff.Element[M]
	CardinalityInv ff.Element[M] // n⁻¹, scaling factor of the inverse transform
	CosetShift     ff.Element[M] // g, offset of the coset g·{ωᵏ}
	CosetShiftInv  ff.Element[M]
}

// NewDomain builds the domain of size n. n must be a power of two no
// larger than 2ˢ, s the two-adicity of the field; otherwise
// ErrInvalidDomainSize is returned. The coset shift defaults to the
// field's multiplicative generator, which never lies in the 2-adic
// subgroup, so the coset is disjoint from the vanishing domain.
func NewDomain[M ff.Modulus](n uint64) (*Domain[M], error) {
	var m M
	if n == 0 || n&(n-1) != 0 {
		return nil, ErrInvalidDomainSize
	}
	logN := uint32(bits.TrailingZeros64(n))
	if logN > m.TwoAdicity() {
		return nil, ErrInvalidDomainSize
	}

	d := &Domain[M]{Cardinality: n}

	// ω = root^(2^(s-logN)) has exact order n
	root := ff.TwoAdicRootOfUnity[M]()
	e := new(big.Int).Lsh(big.NewInt(1), uint(m.TwoAdicity()-logN))
	d.Generator.SetOne()
	for i := e.BitLen() - 1; i >= 0; i-- {
		d.Generator.Square(&d.Generator)
		if e.Bit(i) == 1 {
			d.Generator.Mul(&d.Generator, &root)
		}
	}
	if err := d.GeneratorInv.Inverse(&d.Generator); err != nil {
		return nil, ErrInvalidDomainSize
	}

	d.CardinalityInv.SetUint64(n)
	if err := d.CardinalityInv.Inverse(&d.CardinalityInv); err != nil {
		return nil, err
	}

	d.CosetShift = ff.MultiplicativeGenerator[M]()
	if err := d.CosetShiftInv.Inverse(&d.CosetShift); err != nil {
		return nil, err
	}

	return d, nil
}

// WithCosetShift returns a copy of d evaluating on g·{ωᵏ} for the given
// nonzero shift g.
func (d *Domain[M]) WithCosetShift(g ff.Element[M]) (*Domain[M], error) {
	var gInv ff.Element[M]
	if err := gInv.Inverse(&g); err != nil {
		return nil, err
	}
	cpy := *d
	cpy.CosetShift = g
	cpy.CosetShiftInv = gInv
	return &cpy, nil
}
