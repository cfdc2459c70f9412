// Package twistededwards implements twisted Edwards curve groups
// a·x² + y² = 1 + d·x²·y² over the prime fields of package ff.
//
// With a a square and d a non-square in the field, the addition law is
// complete: one formula covers every pair of points, identity and
// doubling included. Points are affine; the identity is (0, 1).
package twistededwards

import (
	"math/big"
	"sync"

	"github.com/zkmath/zkmath/ecc"
	"github.com/zkmath/zkmath/ff"
)

// CurveParams describes a twisted Edwards curve over the field F.
// Implementations are zero-size marker types used as type parameters;
// the decimal strings are parsed once per curve and cached.
type CurveParams[F ff.Modulus] interface {
	ID() ecc.ID
	// A and D are the curve coefficients, base-10. A must be a square
	// and D a non-square in F for the addition law to be complete.
	A() string
	D() string
	// Generator returns the affine coordinates, base-10, of a
	// generator of the prime-order subgroup.
	Generator() (x, y string)
	// Order is the prime order of the subgroup, base-10.
	Order() string
	Cofactor() uint64
}

// BabyJubjub is the twisted Edwards curve embedded in the BN254 scalar
// field, the curve of circomlib's EdDSA.
type BabyJubjub struct{}

func (BabyJubjub) ID() ecc.ID { return ecc.BABYJUBJUB }
func (BabyJubjub) A() string  { return "168700" }
func (BabyJubjub) D() string  { return "168696" }
func (BabyJubjub) Generator() (string, string) {
	return "5299619240641551281634865583518297030282874472190772894086521144482721001553",
		"16950150798460657717958625567821834550301663161624707787222815936182638968203"
}
func (BabyJubjub) Order() string {
	return "2736030358979909402780800718157159386076813972158567259200215660948447373041"
}
func (BabyJubjub) Cofactor() uint64 { return 8 }

type curveConstants[F ff.Modulus] struct {
	a, d   ff.Element[F]
	gx, gy ff.Element[F]
	order  big.Int
}

var constantsCache sync.Map // ecc.ID -> *curveConstants[F]

func getConstants[F ff.Modulus, C CurveParams[F]]() *curveConstants[F] {
	var c C
	if v, ok := constantsCache.Load(c.ID()); ok {
		return v.(*curveConstants[F])
	}

	k := new(curveConstants[F])
	if _, err := k.a.SetString(c.A()); err != nil {
		panic("twistededwards: invalid curve coefficient a: " + err.Error())
	}
	if _, err := k.d.SetString(c.D()); err != nil {
		panic("twistededwards: invalid curve coefficient d: " + err.Error())
	}
	gx, gy := c.Generator()
	if _, err := k.gx.SetString(gx); err != nil {
		panic("twistededwards: invalid generator: " + err.Error())
	}
	if _, err := k.gy.SetString(gy); err != nil {
		panic("twistededwards: invalid generator: " + err.Error())
	}
	if _, ok := k.order.SetString(c.Order(), 10); !ok {
		panic("twistededwards: invalid group order")
	}

	v, _ := constantsCache.LoadOrStore(c.ID(), k)
	return v.(*curveConstants[F])
}

// Order returns a copy of the prime order of the curve subgroup.
func Order[F ff.Modulus, C CurveParams[F]]() *big.Int {
	return new(big.Int).Set(&getConstants[F, C]().order)
}

// Generator returns the subgroup generator.
func Generator[F ff.Modulus, C CurveParams[F]]() Point[F, C] {
	k := getConstants[F, C]()
	return Point[F, C]{X: k.gx, Y: k.gy}
}

// Point is an affine twisted Edwards point.
type Point[F ff.Modulus, C CurveParams[F]] struct {
	X, Y ff.Element[F]
}

// SetIdentity sets p to the group identity (0, 1).
func (p *Point[F, C]) SetIdentity() *Point[F, C] {
	p.X.SetZero()
	p.Y.SetOne()
	return p
}

// IsIdentity reports whether p is the group identity.
func (p *Point[F, C]) IsIdentity() bool {
	return p.X.IsZero() && p.Y.IsOne()
}

// Set sets p = a.
func (p *Point[F, C]) Set(a *Point[F, C]) *Point[F, C] {
	*p = *a
	return p
}

// Equal reports whether p == a.
func (p *Point[F, C]) Equal(a *Point[F, C]) bool {
	return p.X.Equal(&a.X) && p.Y.Equal(&a.Y)
}

// Neg sets p = -a, the reflection (-x, y).
func (p *Point[F, C]) Neg(a *Point[F, C]) *Point[F, C] {
	p.X.Neg(&a.X)
	p.Y = a.Y
	return p
}

// IsOnCurve reports whether p satisfies a·x² + y² = 1 + d·x²·y².
func (p *Point[F, C]) IsOnCurve() bool {
	k := getConstants[F, C]()
	var xx, yy, lhs, rhs ff.Element[F]
	xx.Square(&p.X)
	yy.Square(&p.Y)
	lhs.Mul(&k.a, &xx)
	lhs.Add(&lhs, &yy)
	rhs.Mul(&xx, &yy)
	rhs.Mul(&rhs, &k.d)
	var one ff.Element[F]
	one.SetOne()
	rhs.Add(&rhs, &one)
	return lhs.Equal(&rhs)
}

// Add sets p = a + b with the complete unified formula
//
//	x3 = (x1·y2 + y1·x2) / (1 + d·x1·x2·y1·y2)
//	y3 = (y1·y2 − a·x1·x2) / (1 − d·x1·x2·y1·y2)
func (p *Point[F, C]) Add(a, b *Point[F, C]) *Point[F, C] {
	k := getConstants[F, C]()

	var xx, yy, xy, yx, t, den1, den2, one ff.Element[F]
	xx.Mul(&a.X, &b.X)
	yy.Mul(&a.Y, &b.Y)
	xy.Mul(&a.X, &b.Y)
	yx.Mul(&a.Y, &b.X)

	// t = d·x1·x2·y1·y2
	t.Mul(&xx, &yy)
	t.Mul(&t, &k.d)

	one.SetOne()
	den1.Add(&one, &t)
	den2.Sub(&one, &t)
	// d non-square makes both denominators nonzero for curve points
	_ = den1.Inverse(&den1)
	_ = den2.Inverse(&den2)

	var x3, y3 ff.Element[F]
	x3.Add(&xy, &yx)
	x3.Mul(&x3, &den1)
	y3.Mul(&k.a, &xx)
	y3.Sub(&yy, &y3)
	y3.Mul(&y3, &den2)

	p.X = x3
	p.Y = y3
	return p
}

// Double sets p = 2a.
func (p *Point[F, C]) Double(a *Point[F, C]) *Point[F, C] {
	return p.Add(a, a)
}

// ScalarMul sets p = s·a. Negative scalars multiply by |s| and negate
// the result.
func (p *Point[F, C]) ScalarMul(a *Point[F, C], s *big.Int) *Point[F, C] {
	var k big.Int
	k.Abs(s)

	if k.Sign() == 0 {
		return p.SetIdentity()
	}

	digits := make([]int8, k.BitLen()+1)
	l := ecc.NafDecomposition(&k, digits)

	base, baseNeg := *a, Point[F, C]{}
	baseNeg.Neg(a)

	var res Point[F, C]
	res.SetIdentity()
	for i := l - 1; i >= 0; i-- {
		res.Double(&res)
		switch digits[i] {
		case 1:
			res.Add(&res, &base)
		case -1:
			res.Add(&res, &baseNeg)
		}
	}
	if s.Sign() < 0 {
		res.Neg(&res)
	}
	return p.Set(&res)
}

func (p *Point[F, C]) String() string {
	return "(" + p.X.String() + ", " + p.Y.String() + ")"
}
