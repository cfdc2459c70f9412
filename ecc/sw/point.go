package sw

import (
	"math/big"

	"github.com/zkmath/zkmath/ecc"
	"github.com/zkmath/zkmath/ff"
)

// Affine is a curve point in affine coordinates. (0, 0) is the point at
// infinity.
type Affine[F ff.Modulus, C CurveParams[F]] struct {
	X, Y ff.Element[F]
}

// Jacobian is a curve point in Jacobian coordinates
// (x = X/Z², y = Y/Z³). Z = 0 is the point at infinity.
type Jacobian[F ff.Modulus, C CurveParams[F]] struct {
	X, Y, Z ff.Element[F]
}

// -------------------------------------------------------------------------
// affine

// SetInfinity sets p to the point at infinity.
func (p *Affine[F, C]) SetInfinity() *Affine[F, C] {
	p.X.SetZero()
	p.Y.SetZero()
	return p
}

// IsInfinity reports whether p is the point at infinity.
func (p *Affine[F, C]) IsInfinity() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// Equal reports whether p == a.
func (p *Affine[F, C]) Equal(a *Affine[F, C]) bool {
	return p.X.Equal(&a.X) && p.Y.Equal(&a.Y)
}

// Neg sets p = -a.
func (p *Affine[F, C]) Neg(a *Affine[F, C]) *Affine[F, C] {
	p.X = a.X
	if a.IsInfinity() {
		p.Y = a.Y
		return p
	}
	p.Y.Neg(&a.Y)
	return p
}

// IsOnCurve reports whether p satisfies y² = x³ + ax + b. Infinity is
// on the curve.
func (p *Affine[F, C]) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	k := getConstants[F, C]()
	var lhs, rhs, t ff.Element[F]
	lhs.Square(&p.Y)
	rhs.Square(&p.X)
	rhs.Mul(&rhs, &p.X)
	if !k.aIsZero {
		t.Mul(&k.a, &p.X)
		rhs.Add(&rhs, &t)
	}
	rhs.Add(&rhs, &k.b)
	return lhs.Equal(&rhs)
}

// FromJacobian sets p to the affine form of a.
func (p *Affine[F, C]) FromJacobian(a *Jacobian[F, C]) *Affine[F, C] {
	if a.Z.IsZero() {
		return p.SetInfinity()
	}
	var zInv, zInv2 ff.Element[F]
	// Z != 0, Inverse cannot fail
	_ = zInv.Inverse(&a.Z)
	zInv2.Square(&zInv)
	p.X.Mul(&a.X, &zInv2)
	p.Y.Mul(&a.Y, &zInv2)
	p.Y.Mul(&p.Y, &zInv)
	return p
}

func (p *Affine[F, C]) String() string {
	if p.IsInfinity() {
		return "O"
	}
	return "(" + p.X.String() + ", " + p.Y.String() + ")"
}

// -------------------------------------------------------------------------
// jacobian

// Set sets p = a.
func (p *Jacobian[F, C]) Set(a *Jacobian[F, C]) *Jacobian[F, C] {
	*p = *a
	return p
}

// SetInfinity sets p to the point at infinity.
func (p *Jacobian[F, C]) SetInfinity() *Jacobian[F, C] {
	p.X.SetOne()
	p.Y.SetOne()
	p.Z.SetZero()
	return p
}

// IsInfinity reports whether p is the point at infinity.
func (p *Jacobian[F, C]) IsInfinity() bool {
	return p.Z.IsZero()
}

// FromAffine sets p to the Jacobian form of a.
func (p *Jacobian[F, C]) FromAffine(a *Affine[F, C]) *Jacobian[F, C] {
	if a.IsInfinity() {
		return p.SetInfinity()
	}
	p.X = a.X
	p.Y = a.Y
	p.Z.SetOne()
	return p
}

// Neg sets p = -a.
func (p *Jacobian[F, C]) Neg(a *Jacobian[F, C]) *Jacobian[F, C] {
	p.X = a.X
	p.Y.Neg(&a.Y)
	p.Z = a.Z
	return p
}

// Equal reports whether p and a represent the same curve point.
func (p *Jacobian[F, C]) Equal(a *Jacobian[F, C]) bool {
	if p.Z.IsZero() {
		return a.Z.IsZero()
	}
	if a.Z.IsZero() {
		return false
	}
	// x₁ == x₂ ⇔ X₁Z₂² == X₂Z₁², y₁ == y₂ ⇔ Y₁Z₂³ == Y₂Z₁³
	var zz1, zz2, l, r ff.Element[F]
	zz1.Square(&p.Z)
	zz2.Square(&a.Z)
	l.Mul(&p.X, &zz2)
	r.Mul(&a.X, &zz1)
	if !l.Equal(&r) {
		return false
	}
	zz1.Mul(&zz1, &p.Z)
	zz2.Mul(&zz2, &a.Z)
	l.Mul(&p.Y, &zz2)
	r.Mul(&a.Y, &zz1)
	return l.Equal(&r)
}

// IsOnCurve reports whether p satisfies Y² = X³ + aXZ⁴ + bZ⁶.
func (p *Jacobian[F, C]) IsOnCurve() bool {
	if p.Z.IsZero() {
		return true
	}
	k := getConstants[F, C]()
	var lhs, rhs, zz, t ff.Element[F]
	lhs.Square(&p.Y)
	rhs.Square(&p.X)
	rhs.Mul(&rhs, &p.X)
	zz.Square(&p.Z)
	zz.Square(&zz) // Z⁴
	if !k.aIsZero {
		t.Mul(&k.a, &p.X)
		t.Mul(&t, &zz)
		rhs.Add(&rhs, &t)
	}
	zz.Mul(&zz, &p.Z)
	zz.Mul(&zz, &p.Z) // Z⁶
	t.Mul(&k.b, &zz)
	rhs.Add(&rhs, &t)
	return lhs.Equal(&rhs)
}

// Add sets p = p + a.
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (p *Jacobian[F, C]) Add(a *Jacobian[F, C]) *Jacobian[F, C] {
	// p is infinity, return a
	if p.Z.IsZero() {
		return p.Set(a)
	}

	// a is infinity, return p
	if a.Z.IsZero() {
		return p
	}

	var Z1Z1, Z2Z2, U1, U2, S1, S2, H, I, J, r, V ff.Element[F]

	Z1Z1.Square(&a.Z)
	Z2Z2.Square(&p.Z)

	// U1 = a.X * Z2Z2, U2 = p.X * Z1Z1
	U1.Mul(&a.X, &Z2Z2)
	U2.Mul(&p.X, &Z1Z1)

	// S1 = a.Y * p.Z * Z2Z2, S2 = p.Y * a.Z * Z1Z1
	S1.Mul(&a.Y, &p.Z)
	S1.Mul(&S1, &Z2Z2)
	S2.Mul(&p.Y, &a.Z)
	S2.Mul(&S2, &Z1Z1)

	// same x coordinate
	if U1.Equal(&U2) {
		if S1.Equal(&S2) {
			// p == a, the addition law degenerates; double instead
			return p.Double()
		}
		// p == -a
		return p.SetInfinity()
	}

	// H = U2 - U1
	H.Sub(&U2, &U1)

	// I = (2*H)^2
	I.Double(&H)
	I.Square(&I)

	// J = H*I
	J.Mul(&H, &I)

	// r = 2*(S2-S1)
	r.Sub(&S2, &S1)
	r.Double(&r)

	// V = U1*I
	V.Mul(&U1, &I)

	// res.X = r^2 - J - 2*V
	p.X.Square(&r)
	p.X.Sub(&p.X, &J)
	p.X.Sub(&p.X, &V)
	p.X.Sub(&p.X, &V)

	// res.Y = r*(V-X3) - 2*S1*J
	p.Y.Sub(&V, &p.X)
	p.Y.Mul(&p.Y, &r)
	S1.Mul(&S1, &J)
	S1.Double(&S1)
	p.Y.Sub(&p.Y, &S1)

	// res.Z = ((a.Z+p.Z)^2 - Z1Z1 - Z2Z2) * H
	p.Z.Add(&p.Z, &a.Z)
	p.Z.Square(&p.Z)
	p.Z.Sub(&p.Z, &Z1Z1)
	p.Z.Sub(&p.Z, &Z2Z2)
	p.Z.Mul(&p.Z, &H)

	return p
}

// AddMixed sets p = p + a with a affine.
// http://www.hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#addition-madd-2007-bl
func (p *Jacobian[F, C]) AddMixed(a *Affine[F, C]) *Jacobian[F, C] {
	// a is infinity, return p
	if a.IsInfinity() {
		return p
	}
	// p is infinity, return a
	if p.Z.IsZero() {
		p.X = a.X
		p.Y = a.Y
		p.Z.SetOne()
		return p
	}

	var Z1Z1, U2, S2, H, HH, I, J, r, V ff.Element[F]

	// Z1Z1 = p.Z ^ 2
	Z1Z1.Square(&p.Z)

	// U2 = a.X * Z1Z1
	U2.Mul(&a.X, &Z1Z1)

	// S2 = a.Y * p.Z * Z1Z1
	S2.Mul(&a.Y, &p.Z)
	S2.Mul(&S2, &Z1Z1)

	// same x coordinate
	if U2.Equal(&p.X) {
		if S2.Equal(&p.Y) {
			return p.Double()
		}
		return p.SetInfinity()
	}

	// H = U2 - p.X
	H.Sub(&U2, &p.X)
	HH.Square(&H)

	// I = 4*HH
	I.Double(&HH)
	I.Double(&I)

	// J = H*I
	J.Mul(&H, &I)

	// r = 2*(S2-Y1)
	r.Sub(&S2, &p.Y)
	r.Double(&r)

	// V = X1*I
	V.Mul(&p.X, &I)

	// res.X = r^2 - J - 2*V
	p.X.Square(&r)
	p.X.Sub(&p.X, &J)
	p.X.Sub(&p.X, &V)
	p.X.Sub(&p.X, &V)

	// res.Y = r*(V-X3) - 2*Y1*J
	J.Mul(&J, &p.Y)
	J.Double(&J)
	p.Y.Sub(&V, &p.X)
	p.Y.Mul(&p.Y, &r)
	p.Y.Sub(&p.Y, &J)

	// res.Z = (p.Z+H)^2 - Z1Z1 - HH
	p.Z.Add(&p.Z, &H)
	p.Z.Square(&p.Z)
	p.Z.Sub(&p.Z, &Z1Z1)
	p.Z.Sub(&p.Z, &HH)

	return p
}

// Double sets p = 2p.
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#doubling-dbl-2007-bl
func (p *Jacobian[F, C]) Double() *Jacobian[F, C] {
	var XX, YY, YYYY, ZZ, S, M, T ff.Element[F]

	XX.Square(&p.X)
	YY.Square(&p.Y)
	YYYY.Square(&YY)
	ZZ.Square(&p.Z)

	// S = 2*((X1+YY)^2 - XX - YYYY)
	S.Add(&p.X, &YY)
	S.Square(&S)
	S.Sub(&S, &XX)
	S.Sub(&S, &YYYY)
	S.Double(&S)

	// M = 3*XX + a*ZZ^2
	M.Double(&XX)
	M.Add(&M, &XX)
	if k := getConstants[F, C](); !k.aIsZero {
		T.Square(&ZZ)
		T.Mul(&T, &k.a)
		M.Add(&M, &T)
	}

	// res.Z = (Y1+Z1)^2 - YY - ZZ
	p.Z.Add(&p.Z, &p.Y)
	p.Z.Square(&p.Z)
	p.Z.Sub(&p.Z, &YY)
	p.Z.Sub(&p.Z, &ZZ)

	// res.X = M^2 - 2*S
	T.Square(&M)
	p.X = T
	T.Double(&S)
	p.X.Sub(&p.X, &T)

	// res.Y = M*(S-X3) - 8*YYYY
	p.Y.Sub(&S, &p.X)
	p.Y.Mul(&p.Y, &M)
	YYYY.Double(&YYYY)
	YYYY.Double(&YYYY)
	YYYY.Double(&YYYY)
	p.Y.Sub(&p.Y, &YYYY)

	return p
}

// ScalarMul sets p = s·a. Negative scalars multiply by |s| and negate
// the result. The scalar is processed in non-adjacent form, trading
// half the additions of the double-and-add ladder for one precomputed
// negation.
func (p *Jacobian[F, C]) ScalarMul(a *Jacobian[F, C], s *big.Int) *Jacobian[F, C] {
	var k big.Int
	k.Abs(s)

	if k.Sign() == 0 || a.Z.IsZero() {
		return p.SetInfinity()
	}

	digits := make([]int8, k.BitLen()+1)
	l := ecc.NafDecomposition(&k, digits)

	base, baseNeg := *a, Jacobian[F, C]{}
	baseNeg.Neg(a)

	var res Jacobian[F, C]
	res.SetInfinity()
	for i := l - 1; i >= 0; i-- {
		res.Double()
		switch digits[i] {
		case 1:
			res.Add(&base)
		case -1:
			res.Add(&baseNeg)
		}
	}
	if s.Sign() < 0 {
		res.Neg(&res)
	}
	return p.Set(&res)
}

// ScalarMulAffine sets p = s·a for an affine base point.
func (p *Jacobian[F, C]) ScalarMulAffine(a *Affine[F, C], s *big.Int) *Jacobian[F, C] {
	var j Jacobian[F, C]
	j.FromAffine(a)
	return p.ScalarMul(&j, s)
}

func (p *Jacobian[F, C]) String() string {
	var a Affine[F, C]
	a.FromJacobian(p)
	return a.String()
}
