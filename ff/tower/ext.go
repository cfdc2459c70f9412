package tower

import (
	"strings"

	"github.com/zkmath/zkmath/ff"
)

// ExtParams describes a binomial extension F[x]/(xᵈ-γ) at the type
// level. Irreducibility of xᵈ-γ is the implementation's contract.
type ExtParams[M ff.Modulus] interface {
	// Degree returns d ≥ 2.
	Degree() int
	// Gamma returns the defining constant γ.
	Gamma() ff.Element[M]
	// Name returns a short unique identifier for the extension.
	Name() string
}

// Quartic2Adic is the degree-4 extension of the field M by its
// canonical non-residue, F[x]/(x⁴-γ). x⁴-γ is irreducible whenever γ is
// a non-residue and q ≡ 1 mod 4, which holds for the shipped FFT
// fields.
type Quartic2Adic[M ff.Modulus] struct{}

func (Quartic2Adic[M]) Degree() int           { return 4 }
func (Quartic2Adic[M]) Gamma() ff.Element[M]  { return ff.NonResidue[M]() }
func (Quartic2Adic[M]) Name() string          { var m M; return m.Name() + "^4" }

// Ext is an element of the degree-d extension described by P,
// represented by its d coefficients, C[i] the coefficient of xⁱ.
// Methods treat receivers and operands as immutable values and never
// alias C across results.
type Ext[M ff.Modulus, P ExtParams[M]] struct {
	C []ff.Element[M]
}

func degree[M ff.Modulus, P ExtParams[M]]() int {
	var p P
	return p.Degree()
}

// NewExt returns the zero element of the extension.
func NewExt[M ff.Modulus, P ExtParams[M]]() Ext[M, P] {
	return Ext[M, P]{C: make([]ff.Element[M], degree[M, P]())}
}

// SetZero z = 0
func (z *Ext[M, P]) SetZero() *Ext[M, P] {
	z.C = make([]ff.Element[M], degree[M, P]())
	return z
}

// SetOne z = 1
func (z *Ext[M, P]) SetOne() *Ext[M, P] {
	z.SetZero()
	z.C[0].SetOne()
	return z
}

// SetFromBase embeds the base field element c into the extension.
func (z *Ext[M, P]) SetFromBase(c *ff.Element[M]) *Ext[M, P] {
	z.SetZero()
	z.C[0].Set(c)
	return z
}

// Set z = x
func (z *Ext[M, P]) Set(x *Ext[M, P]) *Ext[M, P] {
	z.C = make([]ff.Element[M], len(x.C))
	copy(z.C, x.C)
	return z
}

// SetRandom sets z to a uniformly random element.
func (z *Ext[M, P]) SetRandom() (*Ext[M, P], error) {
	z.SetZero()
	for i := range z.C {
		if _, err := z.C[i].SetRandom(); err != nil {
			return nil, err
		}
	}
	return z, nil
}

// IsZero reports whether z is zero.
func (z *Ext[M, P]) IsZero() bool {
	for i := range z.C {
		if !z.C[i].IsZero() {
			return false
		}
	}
	return true
}

// Equal reports whether z == x.
func (z *Ext[M, P]) Equal(x *Ext[M, P]) bool {
	for i := range z.C {
		if !z.C[i].Equal(&x.C[i]) {
			return false
		}
	}
	return true
}

// Add z = x + y
func (z *Ext[M, P]) Add(x, y *Ext[M, P]) *Ext[M, P] {
	res := make([]ff.Element[M], len(x.C))
	for i := range res {
		res[i].Add(&x.C[i], &y.C[i])
	}
	z.C = res
	return z
}

// Sub z = x - y
func (z *Ext[M, P]) Sub(x, y *Ext[M, P]) *Ext[M, P] {
	res := make([]ff.Element[M], len(x.C))
	for i := range res {
		res[i].Sub(&x.C[i], &y.C[i])
	}
	z.C = res
	return z
}

// Neg z = -x
func (z *Ext[M, P]) Neg(x *Ext[M, P]) *Ext[M, P] {
	res := make([]ff.Element[M], len(x.C))
	for i := range res {
		res[i].Neg(&x.C[i])
	}
	z.C = res
	return z
}

// Mul z = x * y: coefficient convolution followed by reduction with
// xᵈ = γ. Degrees 2, 3 and 4 use Karatsuba splittings; larger degrees
// fall back to the schoolbook product.
func (z *Ext[M, P]) Mul(x, y *Ext[M, P]) *Ext[M, P] {
	var p P
	d := p.Degree()

	var conv []ff.Element[M]
	switch d {
	case 2:
		conv = karatsuba2(x.C, y.C)
	case 3:
		conv = karatsuba3(x.C, y.C)
	case 4:
		conv = karatsuba4(x.C, y.C)
	default:
		conv = schoolbook(x.C, y.C)
	}

	// fold xᵈ⁺ᵏ = γ·xᵏ
	gamma := p.Gamma()
	res := make([]ff.Element[M], d)
	copy(res, conv[:d])
	var t ff.Element[M]
	for i := d; i < len(conv); i++ {
		t.Mul(&conv[i], &gamma)
		res[i-d].Add(&res[i-d], &t)
	}
	z.C = res
	return z
}

// Square z = x * x
func (z *Ext[M, P]) Square(x *Ext[M, P]) *Ext[M, P] {
	return z.Mul(x, x)
}

// MulByElement z = x scaled by the base field element c.
func (z *Ext[M, P]) MulByElement(x *Ext[M, P], c *ff.Element[M]) *Ext[M, P] {
	res := make([]ff.Element[M], len(x.C))
	for i := range res {
		res[i].Mul(&x.C[i], c)
	}
	z.C = res
	return z
}

// Inverse sets z to x⁻¹ by running the extended Euclidean algorithm
// against the defining polynomial. Fails with ff.ErrDivisionByZero on
// the zero element.
func (z *Ext[M, P]) Inverse(x *Ext[M, P]) error {
	if x.IsZero() {
		return ff.ErrDivisionByZero
	}
	var p P
	d := p.Degree()

	// f = xᵈ - γ
	f := make([]ff.Element[M], d+1)
	gamma := p.Gamma()
	f[0].Neg(&gamma)
	f[d].SetOne()

	r0 := f
	r1 := trimmed(x.C)
	t0 := []ff.Element[M]{}
	t1 := []ff.Element[M]{{}}
	t1[0].SetOne()

	for len(r1) > 0 {
		q, r := polyDivRem(r0, r1)
		r0, r1 = r1, r
		t0, t1 = t1, polySub(t0, polyMul(q, t1))
	}

	// r0 is gcd(f, x), a nonzero constant since f is irreducible
	var c ff.Element[M]
	if err := c.Inverse(&r0[0]); err != nil {
		return err
	}
	res := make([]ff.Element[M], d)
	for i := 0; i < len(t0) && i < d; i++ {
		res[i].Mul(&t0[i], &c)
	}
	z.C = res
	return nil
}

// String returns the canonical decimal coefficients, lowest degree
// first.
func (z *Ext[M, P]) String() string {
	parts := make([]string, len(z.C))
	for i := range z.C {
		parts[i] = z.C[i].String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// schoolbook returns the full convolution product of a and b.
func schoolbook[M ff.Modulus](a, b []ff.Element[M]) []ff.Element[M] {
	conv := make([]ff.Element[M], len(a)+len(b)-1)
	var t ff.Element[M]
	for i := range a {
		for j := range b {
			t.Mul(&a[i], &b[j])
			conv[i+j].Add(&conv[i+j], &t)
		}
	}
	return conv
}

// karatsuba2 3-multiplication product of two degree-1 slices.
func karatsuba2[M ff.Modulus](a, b []ff.Element[M]) []ff.Element[M] {
	conv := make([]ff.Element[M], 3)
	var v0, v1, s, t ff.Element[M]
	v0.Mul(&a[0], &b[0])
	v1.Mul(&a[1], &b[1])
	s.Add(&a[0], &a[1])
	t.Add(&b[0], &b[1])
	s.Mul(&s, &t).Sub(&s, &v0).Sub(&s, &v1)
	conv[0] = v0
	conv[1] = s
	conv[2] = v1
	return conv
}

// karatsuba3 6-multiplication product of two degree-2 slices.
func karatsuba3[M ff.Modulus](a, b []ff.Element[M]) []ff.Element[M] {
	conv := make([]ff.Element[M], 5)
	var v0, v1, v2, s, t ff.Element[M]
	v0.Mul(&a[0], &b[0])
	v1.Mul(&a[1], &b[1])
	v2.Mul(&a[2], &b[2])

	// c1 = (a0+a1)(b0+b1) - v0 - v1
	s.Add(&a[0], &a[1])
	t.Add(&b[0], &b[1])
	conv[1].Mul(&s, &t).Sub(&conv[1], &v0).Sub(&conv[1], &v1)

	// c2 = (a0+a2)(b0+b2) - v0 - v2 + v1
	s.Add(&a[0], &a[2])
	t.Add(&b[0], &b[2])
	conv[2].Mul(&s, &t).Sub(&conv[2], &v0).Sub(&conv[2], &v2).Add(&conv[2], &v1)

	// c3 = (a1+a2)(b1+b2) - v1 - v2
	s.Add(&a[1], &a[2])
	t.Add(&b[1], &b[2])
	conv[3].Mul(&s, &t).Sub(&conv[3], &v1).Sub(&conv[3], &v2)

	conv[0] = v0
	conv[4] = v2
	return conv
}

// karatsuba4 9-multiplication product of two degree-3 slices: one
// Karatsuba level over degree-2 halves.
func karatsuba4[M ff.Modulus](a, b []ff.Element[M]) []ff.Element[M] {
	p0 := karatsuba2(a[:2], b[:2])
	p2 := karatsuba2(a[2:], b[2:])

	sa := []ff.Element[M]{{}, {}}
	sb := []ff.Element[M]{{}, {}}
	sa[0].Add(&a[0], &a[2])
	sa[1].Add(&a[1], &a[3])
	sb[0].Add(&b[0], &b[2])
	sb[1].Add(&b[1], &b[3])
	p1 := karatsuba2(sa, sb)
	for i := 0; i < 3; i++ {
		p1[i].Sub(&p1[i], &p0[i]).Sub(&p1[i], &p2[i])
	}

	conv := make([]ff.Element[M], 7)
	for i := 0; i < 3; i++ {
		conv[i].Add(&conv[i], &p0[i])
		conv[i+2].Add(&conv[i+2], &p1[i])
		conv[i+4].Add(&conv[i+4], &p2[i])
	}
	return conv
}

// helpers for the extended Euclidean inverse; operands are trimmed
// coefficient slices (no trailing zeros, empty slice == zero).

func trimmed[M ff.Modulus](a []ff.Element[M]) []ff.Element[M] {
	n := len(a)
	for n > 0 && a[n-1].IsZero() {
		n--
	}
	res := make([]ff.Element[M], n)
	copy(res, a[:n])
	return res
}

func polyMul[M ff.Modulus](a, b []ff.Element[M]) []ff.Element[M] {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	return trimmed(schoolbook(a, b))
}

func polySub[M ff.Modulus](a, b []ff.Element[M]) []ff.Element[M] {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	res := make([]ff.Element[M], n)
	for i := range res {
		if i < len(a) {
			res[i] = a[i]
		}
		if i < len(b) {
			res[i].Sub(&res[i], &b[i])
		}
	}
	return trimmed(res)
}

func polyDivRem[M ff.Modulus](a, b []ff.Element[M]) (q, r []ff.Element[M]) {
	if len(a) < len(b) {
		return nil, trimmed(a)
	}
	var lcInv ff.Element[M]
	if err := lcInv.Inverse(&b[len(b)-1]); err != nil {
		panic(err) // b is nonzero and trimmed
	}
	rem := make([]ff.Element[M], len(a))
	copy(rem, a)
	q = make([]ff.Element[M], len(a)-len(b)+1)
	var t ff.Element[M]
	for i := len(a) - 1; i >= len(b)-1; i-- {
		if rem[i].IsZero() {
			continue
		}
		k := i - (len(b) - 1)
		q[k].Mul(&rem[i], &lcInv)
		for j := 0; j < len(b); j++ {
			t.Mul(&q[k], &b[j])
			rem[k+j].Sub(&rem[k+j], &t)
		}
	}
	return trimmed(q), trimmed(rem)
}
