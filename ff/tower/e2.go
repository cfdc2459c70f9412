package tower

import (
	"math/big"

	"github.com/zkmath/zkmath/ff"
)

// E2 is an element a0 + a1·u of the quadratic extension F[u]/(u²-γ),
// where γ is the base field's canonical non-residue. Like ff.Element it
// is a plain value in Montgomery form, copied freely.
type E2[M ff.Modulus] struct {
	A0, A1 ff.Element[M]
}

// SetZero z = 0
func (z *E2[M]) SetZero() *E2[M] {
	z.A0.SetZero()
	z.A1.SetZero()
	return z
}

// SetOne z = 1
func (z *E2[M]) SetOne() *E2[M] {
	z.A0.SetOne()
	z.A1.SetZero()
	return z
}

// Set z = x
func (z *E2[M]) Set(x *E2[M]) *E2[M] {
	*z = *x
	return z
}

// SetRandom sets z to a uniformly random element.
func (z *E2[M]) SetRandom() (*E2[M], error) {
	if _, err := z.A0.SetRandom(); err != nil {
		return nil, err
	}
	if _, err := z.A1.SetRandom(); err != nil {
		return nil, err
	}
	return z, nil
}

// IsZero reports whether z is zero.
func (z *E2[M]) IsZero() bool {
	return z.A0.IsZero() && z.A1.IsZero()
}

// Equal reports whether z == x.
func (z *E2[M]) Equal(x *E2[M]) bool {
	return z.A0.Equal(&x.A0) && z.A1.Equal(&x.A1)
}

// Add z = x + y
func (z *E2[M]) Add(x, y *E2[M]) *E2[M] {
	z.A0.Add(&x.A0, &y.A0)
	z.A1.Add(&x.A1, &y.A1)
	return z
}

// Sub z = x - y
func (z *E2[M]) Sub(x, y *E2[M]) *E2[M] {
	z.A0.Sub(&x.A0, &y.A0)
	z.A1.Sub(&x.A1, &y.A1)
	return z
}

// Double z = 2x
func (z *E2[M]) Double(x *E2[M]) *E2[M] {
	z.A0.Double(&x.A0)
	z.A1.Double(&x.A1)
	return z
}

// Neg z = -x
func (z *E2[M]) Neg(x *E2[M]) *E2[M] {
	z.A0.Neg(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// Conjugate z = a0 - a1·u
func (z *E2[M]) Conjugate(x *E2[M]) *E2[M] {
	z.A0.Set(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// Mul z = x * y, Karatsuba: 3 base multiplications instead of 4.
func (z *E2[M]) Mul(x, y *E2[M]) *E2[M] {
	nr := ff.NonResidue[M]()
	var v0, v1, s, t ff.Element[M]
	v0.Mul(&x.A0, &y.A0)
	v1.Mul(&x.A1, &y.A1)
	s.Add(&x.A0, &x.A1)
	t.Add(&y.A0, &y.A1)
	s.Mul(&s, &t).
		Sub(&s, &v0).
		Sub(&s, &v1)
	t.Mul(&v1, &nr)
	z.A0.Add(&v0, &t)
	z.A1.Set(&s)
	return z
}

// Square z = x * x
func (z *E2[M]) Square(x *E2[M]) *E2[M] {
	nr := ff.NonResidue[M]()
	var v0, v1, s ff.Element[M]
	v0.Square(&x.A0)
	v1.Square(&x.A1)
	s.Add(&x.A0, &x.A1).Square(&s).
		Sub(&s, &v0).
		Sub(&s, &v1)
	v1.Mul(&v1, &nr)
	z.A0.Add(&v0, &v1)
	z.A1.Set(&s)
	return z
}

// MulByElement z = x scaled by the base field element c.
func (z *E2[M]) MulByElement(x *E2[M], c *ff.Element[M]) *E2[M] {
	z.A0.Mul(&x.A0, c)
	z.A1.Mul(&x.A1, c)
	return z
}

// MulByNonResidue z = x·u, the cheap rotation used when stacking a
// further extension on top of E2.
func (z *E2[M]) MulByNonResidue(x *E2[M]) *E2[M] {
	nr := ff.NonResidue[M]()
	var t ff.Element[M]
	t.Mul(&x.A1, &nr)
	z.A1.Set(&x.A0)
	z.A0.Set(&t)
	return z
}

// Norm returns a0² - γ·a1², the norm of z down to the base field.
func (z *E2[M]) Norm(res *ff.Element[M]) *ff.Element[M] {
	nr := ff.NonResidue[M]()
	var t ff.Element[M]
	t.Square(&z.A1).Mul(&t, &nr)
	res.Square(&z.A0).Sub(res, &t)
	return res
}

// Inverse sets z to x⁻¹ via the norm map: x⁻¹ = conj(x)/norm(x).
// Fails with ff.ErrDivisionByZero on the zero element.
func (z *E2[M]) Inverse(x *E2[M]) error {
	var norm ff.Element[M]
	x.Norm(&norm)
	if err := norm.Inverse(&norm); err != nil {
		return err
	}
	z.A0.Mul(&x.A0, &norm)
	z.A1.Neg(&x.A1).Mul(&z.A1, &norm)
	return nil
}

// Exp z = x^k for non-negative k.
func (z *E2[M]) Exp(x E2[M], k *big.Int) *E2[M] {
	z.SetOne()
	for i := k.BitLen() - 1; i >= 0; i-- {
		z.Square(z)
		if k.Bit(i) == 1 {
			z.Mul(z, &x)
		}
	}
	return z
}

// String returns "a0+a1*u" in canonical decimal form.
func (z *E2[M]) String() string {
	return z.A0.String() + "+" + z.A1.String() + "*u"
}
