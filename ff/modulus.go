package ff

import (
	"math/big"
	"sync"
)

// Modulus describes a prime field at the type level. Implementations
// are zero-size struct types whose methods return the precomputed
// constants of the field; they are supplied to [Element] as a type
// parameter so the compiler specializes all arithmetic per field.
//
// All [4]uint64 values are little-endian limbs. Constants documented as
// "Montgomery form" are pre-multiplied by R = 2²⁵⁶ mod q.
type Modulus interface {
	// Limbs returns the modulus q.
	Limbs() [4]uint64
	// QInvNeg returns -q⁻¹ mod 2⁶⁴.
	QInvNeg() uint64
	// RSquared returns R² mod q, used to enter the Montgomery domain.
	RSquared() [4]uint64
	// One returns R mod q, the Montgomery form of 1.
	One() [4]uint64
	// TwoAdicity returns s where q-1 = 2ˢ·t with t odd.
	TwoAdicity() uint32
	// TwoAdicRoot returns a generator of the order-2ˢ subgroup of the
	// multiplicative group, in Montgomery form.
	TwoAdicRoot() [4]uint64
	// Generator returns a generator of the full multiplicative group,
	// in Montgomery form. It doubles as the canonical coset shift.
	Generator() [4]uint64
	// NonResidue returns a quadratic non-residue in Montgomery form,
	// usable as the defining non-residue of a quadratic extension.
	NonResidue() [4]uint64
	// Name returns a short unique identifier for the field.
	Name() string
}

// Stark252 is the prime field of order 2²⁵¹ + 17·2¹⁹² + 1, the base
// field of the Cairo VM. Its huge 2-adicity (192) makes every
// realistically sized FFT domain available.
type Stark252 struct{}

func (Stark252) Limbs() [4]uint64 {
	return [4]uint64{0x0000000000000001, 0, 0, 0x0800000000000011}
}
func (Stark252) QInvNeg() uint64 { return 0xffffffffffffffff }
func (Stark252) RSquared() [4]uint64 {
	return [4]uint64{0xfffffd737e000401, 0x00000001330fffff, 0xffffffffff6f8000, 0x07ffd4ab5e008810}
}
func (Stark252) One() [4]uint64 {
	return [4]uint64{0xffffffffffffffe1, 0xffffffffffffffff, 0xffffffffffffffff, 0x07fffffffffffdf0}
}
func (Stark252) TwoAdicity() uint32 { return 192 }
func (Stark252) TwoAdicRoot() [4]uint64 {
	return [4]uint64{0x4106bccd64a2bdd8, 0xaaada25731fe3be9, 0x0a35c5be60505574, 0x07222e32c47afc26}
}
func (Stark252) Generator() [4]uint64 {
	return [4]uint64{0xffffffffffffffa1, 0xffffffffffffffff, 0xffffffffffffffff, 0x07fffffffffff9b0}
}
func (Stark252) NonResidue() [4]uint64 {
	// 3 is the smallest non-residue mod q
	return [4]uint64{0xffffffffffffffa1, 0xffffffffffffffff, 0xffffffffffffffff, 0x07fffffffffff9b0}
}
func (Stark252) Name() string { return "stark252" }

// BN254Fr is the scalar field of the BN254 pairing curve, the
// coefficient field of Groth16 and PLONK witnesses over that curve.
type BN254Fr struct{}

func (BN254Fr) Limbs() [4]uint64 {
	return [4]uint64{0x43e1f593f0000001, 0x2833e84879b97091, 0xb85045b68181585d, 0x30644e72e131a029}
}
func (BN254Fr) QInvNeg() uint64 { return 0xc2e1f593efffffff }
func (BN254Fr) RSquared() [4]uint64 {
	return [4]uint64{0x1bb8e645ae216da7, 0x53fe3ab1e35c59e3, 0x8c49833d53bb8085, 0x0216d0b17f4e44a5}
}
func (BN254Fr) One() [4]uint64 {
	return [4]uint64{0xac96341c4ffffffb, 0x36fc76959f60cd29, 0x666ea36f7879462e, 0x0e0a77c19a07df2f}
}
func (BN254Fr) TwoAdicity() uint32 { return 28 }
func (BN254Fr) TwoAdicRoot() [4]uint64 {
	return [4]uint64{0x636e735580d13d9c, 0xa22bf3742445ffd6, 0x56452ac01eb203d8, 0x1860ef942963f9e7}
}
func (BN254Fr) Generator() [4]uint64 {
	return [4]uint64{0x1b0d0ef99fffffe6, 0xeaba68a3a32a913f, 0x47d8eb76d8dd0689, 0x15d0085520f5bbc3}
}
func (BN254Fr) NonResidue() [4]uint64 {
	// 5, which is also the multiplicative generator
	return [4]uint64{0x1b0d0ef99fffffe6, 0xeaba68a3a32a913f, 0x47d8eb76d8dd0689, 0x15d0085520f5bbc3}
}
func (BN254Fr) Name() string { return "bn254fr" }

// BN254Fp is the base field of the BN254 curve; curve point coordinates
// live here. q ≡ 3 mod 4, so square roots use the exponentiation
// shortcut and the 2-adicity is 1.
type BN254Fp struct{}

func (BN254Fp) Limbs() [4]uint64 {
	return [4]uint64{0x3c208c16d87cfd47, 0x97816a916871ca8d, 0xb85045b68181585d, 0x30644e72e131a029}
}
func (BN254Fp) QInvNeg() uint64 { return 0x87d20782e4866389 }
func (BN254Fp) RSquared() [4]uint64 {
	return [4]uint64{0xf32cfc5b538afa89, 0xb5e71911d44501fb, 0x47ab1eff0a417ff6, 0x06d89f71cab8351f}
}
func (BN254Fp) One() [4]uint64 {
	return [4]uint64{0xd35d438dc58f0d9d, 0x0a78eb28f5c70b3d, 0x666ea36f7879462c, 0x0e0a77c19a07df2f}
}
func (BN254Fp) TwoAdicity() uint32 { return 1 }
func (BN254Fp) TwoAdicRoot() [4]uint64 {
	// -1, the only element of order 2
	return [4]uint64{0x68c3488912edefaa, 0x8d087f6872aabf4f, 0x51e1a24709081231, 0x2259d6b14729c0fa}
}
func (BN254Fp) Generator() [4]uint64 {
	return [4]uint64{0x7a17caa950ad28d7, 0x1f6ac17ae15521b9, 0x334bea4e696bd284, 0x2a1f6744ce179d8e}
}
func (BN254Fp) NonResidue() [4]uint64 {
	// -1 since q ≡ 3 mod 4
	return [4]uint64{0x68c3488912edefaa, 0x8d087f6872aabf4f, 0x51e1a24709081231, 0x2259d6b14729c0fa}
}
func (BN254Fp) Name() string { return "bn254fp" }

// derived big.Int constants, computed once per field
type modulusConstants struct {
	q          *big.Int
	qMinusTwo  *big.Int // inversion exponent
	legendre   *big.Int // (q-1)/2
	sqrtExp    *big.Int // (q+1)/4 when q ≡ 3 mod 4, (t+1)/2 otherwise
	trailing   *big.Int // t with q-1 = 2ˢ·t
	isThreeMod4 bool
}

var modConstCache sync.Map // Name() -> *modulusConstants

func constants[M Modulus]() *modulusConstants {
	var m M
	if c, ok := modConstCache.Load(m.Name()); ok {
		return c.(*modulusConstants)
	}
	c := &modulusConstants{}
	c.q = limbsToBig(m.Limbs())
	c.qMinusTwo = new(big.Int).Sub(c.q, big.NewInt(2))
	c.legendre = new(big.Int).Rsh(new(big.Int).Sub(c.q, big.NewInt(1)), 1)
	c.isThreeMod4 = c.q.Bit(0) == 1 && c.q.Bit(1) == 1
	if c.isThreeMod4 {
		c.sqrtExp = new(big.Int).Rsh(new(big.Int).Add(c.q, big.NewInt(1)), 2)
	} else {
		t := new(big.Int).Sub(c.q, big.NewInt(1))
		t.Rsh(t, uint(m.TwoAdicity()))
		c.trailing = t
		c.sqrtExp = new(big.Int).Rsh(new(big.Int).Add(t, big.NewInt(1)), 1)
	}
	modConstCache.Store(m.Name(), c)
	return c
}

// FieldModulus returns the modulus of the field described by M as a
// big.Int. The caller must not mutate the result.
func FieldModulus[M Modulus]() *big.Int {
	return constants[M]().q
}

// TwoAdicRootOfUnity returns a generator of the order-2ˢ subgroup of
// the multiplicative group, s being the field's two-adicity.
func TwoAdicRootOfUnity[M Modulus]() Element[M] {
	var m M
	return Element[M](m.TwoAdicRoot())
}

// MultiplicativeGenerator returns a generator of the full
// multiplicative group of the field.
func MultiplicativeGenerator[M Modulus]() Element[M] {
	var m M
	return Element[M](m.Generator())
}

// NonResidue returns the field's canonical quadratic non-residue.
func NonResidue[M Modulus]() Element[M] {
	var m M
	return Element[M](m.NonResidue())
}

func limbsToBig(l [4]uint64) *big.Int {
	b := make([]byte, 32)
	for i := 0; i < 4; i++ {
		for j := 0; j < 8; j++ {
			b[31-8*i-j] = byte(l[i] >> (8 * j))
		}
	}
	return new(big.Int).SetBytes(b)
}
