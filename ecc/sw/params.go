package sw

import (
	"math/big"
	"sync"

	"github.com/zkmath/zkmath/ecc"
	"github.com/zkmath/zkmath/ff"
)

// CurveParams describes a short Weierstrass curve y² = x³ + ax + b over
// the field F. Implementations are zero-size marker types used as type
// parameters; the decimal strings are parsed once per curve and cached.
type CurveParams[F ff.Modulus] interface {
	ID() ecc.ID
	// A and B are the curve coefficients, base-10.
	A() string
	B() string
	// Generator returns the affine coordinates, base-10, of a
	// generator of the prime-order subgroup.
	Generator() (x, y string)
	// Order is the prime order of the subgroup, base-10.
	Order() string
}

// BN254G1 is the G1 group of the BN254 pairing curve, y² = x³ + 3 over
// its base field.
type BN254G1 struct{}

func (BN254G1) ID() ecc.ID { return ecc.BN254 }
func (BN254G1) A() string  { return "0" }
func (BN254G1) B() string  { return "3" }
func (BN254G1) Generator() (string, string) {
	return "1", "2"
}
func (BN254G1) Order() string {
	return "21888242871839275222246405745257275088548364400416034343698204186575808495617"
}

// StarkCurve is the STARK-friendly curve y² = x³ + x + b over the
// stark252 field, used by the StarkNet ECDSA scheme.
type StarkCurve struct{}

func (StarkCurve) ID() ecc.ID { return ecc.STARK252 }
func (StarkCurve) A() string  { return "1" }
func (StarkCurve) B() string {
	return "3141592653589793238462643383279502884197169399375105820974944592307816406665"
}
func (StarkCurve) Generator() (string, string) {
	return "874739451078007766457464989774322083649278607533249481151382481072868806602",
		"152666792071518830868575557812948353041420400780739481342941381225525861407"
}
func (StarkCurve) Order() string {
	return "3618502788666131213697322783095070105526743751716087489154079457884512865583"
}

// parsed, cached form of a CurveParams descriptor
type curveConstants[F ff.Modulus] struct {
	a, b    ff.Element[F]
	aIsZero bool
	gx, gy  ff.Element[F]
	order   big.Int
}

var constantsCache sync.Map // ecc.ID -> *curveConstants[F]

func getConstants[F ff.Modulus, C CurveParams[F]]() *curveConstants[F] {
	var c C
	if v, ok := constantsCache.Load(c.ID()); ok {
		return v.(*curveConstants[F])
	}

	k := new(curveConstants[F])
	if _, err := k.a.SetString(c.A()); err != nil {
		panic("sw: invalid curve coefficient a: " + err.Error())
	}
	if _, err := k.b.SetString(c.B()); err != nil {
		panic("sw: invalid curve coefficient b: " + err.Error())
	}
	k.aIsZero = k.a.IsZero()
	gx, gy := c.Generator()
	if _, err := k.gx.SetString(gx); err != nil {
		panic("sw: invalid generator: " + err.Error())
	}
	if _, err := k.gy.SetString(gy); err != nil {
		panic("sw: invalid generator: " + err.Error())
	}
	if _, ok := k.order.SetString(c.Order(), 10); !ok {
		panic("sw: invalid group order")
	}

	v, _ := constantsCache.LoadOrStore(c.ID(), k)
	return v.(*curveConstants[F])
}

// Order returns a copy of the prime order of the curve subgroup.
func Order[F ff.Modulus, C CurveParams[F]]() *big.Int {
	return new(big.Int).Set(&getConstants[F, C]().order)
}

// Generator returns the subgroup generator in affine coordinates.
func Generator[F ff.Modulus, C CurveParams[F]]() Affine[F, C] {
	k := getConstants[F, C]()
	return Affine[F, C]{X: k.gx, Y: k.gy}
}
