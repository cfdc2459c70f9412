package ff

import (
	"crypto/rand"
	"math/big"
	"math/bits"
)

// Element is an element of the prime field described by M, stored in
// Montgomery form. The zero value is the field's zero. Elements are
// plain values; copy them freely.
//
// Mutating methods follow the z.Op(args) convention: they store the
// result in the receiver and return it to allow chaining.
type Element[M Modulus] [4]uint64

// NewElement returns v as a field element.
func NewElement[M Modulus](v uint64) Element[M] {
	var e Element[M]
	e.SetUint64(v)
	return e
}

// One returns the field's one.
func One[M Modulus]() Element[M] {
	var m M
	return Element[M](m.One())
}

// Set z = x
func (z *Element[M]) Set(x *Element[M]) *Element[M] {
	*z = *x
	return z
}

// SetZero z = 0
func (z *Element[M]) SetZero() *Element[M] {
	*z = Element[M]{}
	return z
}

// SetOne z = 1
func (z *Element[M]) SetOne() *Element[M] {
	var m M
	*z = Element[M](m.One())
	return z
}

// SetUint64 z = v
func (z *Element[M]) SetUint64(v uint64) *Element[M] {
	*z = Element[M]{v}
	return z.toMont()
}

// SetInt64 z = v, reduced modulo q
func (z *Element[M]) SetInt64(v int64) *Element[M] {
	if v >= 0 {
		return z.SetUint64(uint64(v))
	}
	z.SetUint64(uint64(-v))
	return z.Neg(z)
}

// SetBigInt sets z to v reduced modulo q. Out-of-range representatives
// are canonicalized implicitly; use [Element.SetBytesCanonical] for a
// strict constructor.
func (z *Element[M]) SetBigInt(v *big.Int) *Element[M] {
	var r big.Int
	r.Mod(v, FieldModulus[M]())
	if r.Sign() < 0 {
		r.Add(&r, FieldModulus[M]())
	}
	words := r.Bits()
	*z = Element[M]{}
	for i := 0; i < len(words) && i < 4; i++ {
		z[i] = uint64(words[i])
	}
	return z.toMont()
}

// SetString sets z to the number written in s (decimal, or the bases
// accepted by big.Int.SetString with a prefix). The value is reduced
// modulo q. Returns ErrInvalidValue if s does not parse.
func (z *Element[M]) SetString(s string) (*Element[M], error) {
	var v big.Int
	if _, ok := v.SetString(s, 0); !ok {
		return nil, ErrInvalidValue
	}
	return z.SetBigInt(&v), nil
}

// SetRandom sets z to a uniformly random field element read from
// crypto/rand.
func (z *Element[M]) SetRandom() (*Element[M], error) {
	v, err := rand.Int(rand.Reader, FieldModulus[M]())
	if err != nil {
		return nil, err
	}
	return z.SetBigInt(v), nil
}

// SetBytes interprets b as a big-endian unsigned integer and sets z to
// that value reduced modulo q.
func (z *Element[M]) SetBytes(b []byte) *Element[M] {
	var v big.Int
	v.SetBytes(b)
	return z.SetBigInt(&v)
}

// SetBytesCanonical sets z from a 32-byte big-endian canonical
// encoding. It returns ErrInvalidValue if b is not exactly 32 bytes or
// encodes a value ≥ q.
func (z *Element[M]) SetBytesCanonical(b []byte) error {
	if len(b) != Bytes {
		return ErrInvalidValue
	}
	var v big.Int
	v.SetBytes(b)
	if v.Cmp(FieldModulus[M]()) >= 0 {
		return ErrInvalidValue
	}
	z.SetBigInt(&v)
	return nil
}

// Bytes is the length of the canonical byte encoding of an element.
const Bytes = 32

// Bytes returns the canonical (big-endian, fully reduced) encoding of z.
func (z *Element[M]) Bytes() [Bytes]byte {
	var res [Bytes]byte
	c := *z
	c.fromMont()
	for i := 0; i < 4; i++ {
		for j := 0; j < 8; j++ {
			res[31-8*i-j] = byte(c[i] >> (8 * j))
		}
	}
	return res
}

// BigInt stores the canonical value of z into res and returns it.
func (z *Element[M]) BigInt(res *big.Int) *big.Int {
	b := z.Bytes()
	return res.SetBytes(b[:])
}

// IsZero reports whether z is the zero element.
func (z *Element[M]) IsZero() bool {
	return (z[0] | z[1] | z[2] | z[3]) == 0
}

// IsOne reports whether z is the one element.
func (z *Element[M]) IsOne() bool {
	var m M
	return *z == Element[M](m.One())
}

// Equal reports whether z and x represent the same canonical value.
// Elements are kept fully reduced, so this is a constant-time limb
// comparison.
func (z *Element[M]) Equal(x *Element[M]) bool {
	return *z == *x
}

// Cmp compares the canonical values of z and x: -1 if z < x, 0 if
// equal, 1 if z > x.
func (z *Element[M]) Cmp(x *Element[M]) int {
	zc, xc := *z, *x
	zc.fromMont()
	xc.fromMont()
	for i := 3; i >= 0; i-- {
		if zc[i] > xc[i] {
			return 1
		}
		if zc[i] < xc[i] {
			return -1
		}
	}
	return 0
}

// Add z = x + y (mod q)
func (z *Element[M]) Add(x, y *Element[M]) *Element[M] {
	var carry uint64
	z[0], carry = bits.Add64(x[0], y[0], 0)
	z[1], carry = bits.Add64(x[1], y[1], carry)
	z[2], carry = bits.Add64(x[2], y[2], carry)
	z[3], _ = bits.Add64(x[3], y[3], carry)
	// q < 2²⁵⁴ so the sum never wraps 2²⁵⁶
	z.reduceOnce()
	return z
}

// Double z = 2x (mod q)
func (z *Element[M]) Double(x *Element[M]) *Element[M] {
	return z.Add(x, x)
}

// Sub z = x - y (mod q)
func (z *Element[M]) Sub(x, y *Element[M]) *Element[M] {
	var m M
	q := m.Limbs()
	var borrow uint64
	z[0], borrow = bits.Sub64(x[0], y[0], 0)
	z[1], borrow = bits.Sub64(x[1], y[1], borrow)
	z[2], borrow = bits.Sub64(x[2], y[2], borrow)
	z[3], borrow = bits.Sub64(x[3], y[3], borrow)
	if borrow != 0 {
		var c uint64
		z[0], c = bits.Add64(z[0], q[0], 0)
		z[1], c = bits.Add64(z[1], q[1], c)
		z[2], c = bits.Add64(z[2], q[2], c)
		z[3], _ = bits.Add64(z[3], q[3], c)
	}
	return z
}

// Neg z = -x (mod q)
func (z *Element[M]) Neg(x *Element[M]) *Element[M] {
	if x.IsZero() {
		return z.SetZero()
	}
	var m M
	q := m.Limbs()
	var borrow uint64
	z[0], borrow = bits.Sub64(q[0], x[0], 0)
	z[1], borrow = bits.Sub64(q[1], x[1], borrow)
	z[2], borrow = bits.Sub64(q[2], x[2], borrow)
	z[3], _ = bits.Sub64(q[3], x[3], borrow)
	return z
}

// Halve z = z/2 (mod q)
func (z *Element[M]) Halve() *Element[M] {
	var m M
	q := m.Limbs()
	var carry uint64
	if z[0]&1 == 1 {
		z[0], carry = bits.Add64(z[0], q[0], 0)
		z[1], carry = bits.Add64(z[1], q[1], carry)
		z[2], carry = bits.Add64(z[2], q[2], carry)
		z[3], _ = bits.Add64(z[3], q[3], carry)
	}
	z[0] = z[0]>>1 | z[1]<<63
	z[1] = z[1]>>1 | z[2]<<63
	z[2] = z[2]>>1 | z[3]<<63
	z[3] >>= 1
	return z
}

// Exp z = x^k (mod q). A negative k is interpreted as the inverse of
// x^|k|; this fails with ErrDivisionByZero when x is zero.
func (z *Element[M]) Exp(x Element[M], k *big.Int) (*Element[M], error) {
	if k.Sign() == 0 {
		return z.SetOne(), nil
	}
	e := k
	if k.Sign() < 0 {
		if err := z.Inverse(&x); err != nil {
			return nil, err
		}
		x = *z
		e = new(big.Int).Abs(k)
	}
	z.SetOne()
	for i := e.BitLen() - 1; i >= 0; i-- {
		z.Square(z)
		if e.Bit(i) == 1 {
			z.Mul(z, &x)
		}
	}
	return z, nil
}

// expUnchecked is Exp for internal call sites with non-negative
// exponents.
func (z *Element[M]) expUnchecked(x Element[M], k *big.Int) *Element[M] {
	z.SetOne()
	for i := k.BitLen() - 1; i >= 0; i-- {
		z.Square(z)
		if k.Bit(i) == 1 {
			z.Mul(z, &x)
		}
	}
	return z
}

// Inverse sets z to x⁻¹ (mod q) and fails with ErrDivisionByZero when x
// is zero.
func (z *Element[M]) Inverse(x *Element[M]) error {
	if x.IsZero() {
		return ErrDivisionByZero
	}
	// Fermat: x⁻¹ = x^(q-2) since q is prime
	z.expUnchecked(*x, constants[M]().qMinusTwo)
	return nil
}

// BatchInvert inverts the nonzero entries of a with a single field
// inversion (Montgomery batch trick). Zero entries stay zero. The input
// is left untouched.
func BatchInvert[M Modulus](a []Element[M]) []Element[M] {
	res := make([]Element[M], len(a))
	if len(a) == 0 {
		return res
	}

	zeroes := make([]bool, len(a))
	var accumulator Element[M]
	accumulator.SetOne()

	for i := range a {
		if a[i].IsZero() {
			zeroes[i] = true
			continue
		}
		res[i] = accumulator
		accumulator.Mul(&accumulator, &a[i])
	}

	// accumulator is a product of nonzero elements, hence nonzero
	if err := accumulator.Inverse(&accumulator); err != nil {
		panic(err)
	}

	for i := len(a) - 1; i >= 0; i-- {
		if zeroes[i] {
			continue
		}
		res[i].Mul(&res[i], &accumulator)
		accumulator.Mul(&accumulator, &a[i])
	}

	return res
}

// String returns the canonical decimal representation of z.
func (z *Element[M]) String() string {
	return z.Text(10)
}

// Text returns the canonical representation of z in the given base.
func (z *Element[M]) Text(base int) string {
	var v big.Int
	return z.BigInt(&v).Text(base)
}

// MarshalText implements encoding.TextMarshaler (canonical decimal).
func (z Element[M]) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Element[M]) UnmarshalText(b []byte) error {
	_, err := z.SetString(string(b))
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler (canonical 32-byte
// big-endian form).
func (z Element[M]) MarshalBinary() ([]byte, error) {
	b := z.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It rejects
// non-canonical encodings with ErrInvalidValue.
func (z *Element[M]) UnmarshalBinary(b []byte) error {
	return z.SetBytesCanonical(b)
}
