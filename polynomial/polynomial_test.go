package polynomial

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/zkmath/zkmath/ff"
	"github.com/zkmath/zkmath/fft"
)

type fr = ff.Element[ff.BN254Fr]

func pseudoRandomPoly(degree int, seed uint64) Polynomial[ff.BN254Fr] {
	p := make(Polynomial[ff.BN254Fr], degree+1)
	s := seed | 1
	for i := range p {
		s ^= s << 13
		s ^= s >> 7
		s ^= s << 17
		p[i].SetUint64(s)
	}
	return New(p)
}

func TestCanonicalForm(t *testing.T) {
	var zero fr
	var one fr
	one.SetOne()

	// trailing zeroes are trimmed away
	p := New([]fr{one, zero, zero})
	require.Equal(t, 0, p.Degree())

	// the zero polynomial is empty with degree -1
	z := New([]fr{zero, zero})
	require.True(t, z.IsZero())
	require.Equal(t, -1, z.Degree())
	require.Equal(t, "0", z.String())
}

func TestArithmeticProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("(p+q)(x) == p(x)+q(x) and (p·q)(x) == p(x)·q(x)", prop.ForAll(
		func(s1, s2, xv uint64) bool {
			p := pseudoRandomPoly(int(s1%20), s1)
			q := pseudoRandomPoly(int(s2%20), s2)
			var x fr
			x.SetUint64(xv)

			sum := p.Add(q)
			prod := p.Mul(q)

			pe := p.Eval(&x)
			qe := q.Eval(&x)

			var wantSum, wantProd fr
			wantSum.Add(&pe, &qe)
			wantProd.Mul(&pe, &qe)

			se := sum.Eval(&x)
			me := prod.Eval(&x)
			return se.Equal(&wantSum) && me.Equal(&wantProd)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("p - p == 0 and p + (-p) == 0", prop.ForAll(
		func(s uint64) bool {
			p := pseudoRandomPoly(int(s%30), s)
			return p.Sub(p).IsZero() && p.Add(p.Neg()).IsZero()
		},
		gen.UInt64(),
	))

	properties.Property("division identity p == q·quo + rem with deg(rem) < deg(q)", prop.ForAll(
		func(s1, s2 uint64) bool {
			p := pseudoRandomPoly(int(s1%40)+5, s1)
			q := pseudoRandomPoly(int(s2%10), s2)
			if q.IsZero() {
				return true
			}
			quo, rem, err := p.DivRem(q)
			if err != nil {
				return false
			}
			if rem.Degree() >= q.Degree() && !rem.IsZero() {
				return false
			}
			back := q.Mul(quo).Add(rem)
			return back.Equal(p)
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestMulFFTMatchesDirect(t *testing.T) {
	// both operands above the transform crossover
	p := pseudoRandomPoly(90, 3)
	q := pseudoRandomPoly(80, 7)

	got := p.Mul(q)
	want := p.mulDirect(q)
	require.True(t, got.Equal(want))
	require.Equal(t, p.Degree()+q.Degree(), got.Degree())
}

func TestMulEdgeCases(t *testing.T) {
	p := pseudoRandomPoly(5, 11)
	var zero Polynomial[ff.BN254Fr]
	require.True(t, p.Mul(zero).IsZero())
	require.True(t, zero.Mul(p).IsZero())

	// multiplying by the constant 2 doubles every coefficient
	var two fr
	two.SetUint64(2)
	c := New([]fr{two})
	prod := p.Mul(c)
	require.True(t, prod.Equal(p.ScalarMul(&two)))
}

func TestDivRemByZero(t *testing.T) {
	p := pseudoRandomPoly(4, 5)
	_, _, err := p.DivRem(nil)
	require.ErrorIs(t, err, ErrDivisionByZeroPolynomial)
}

func TestEvalDomain(t *testing.T) {
	const n = 32
	d, err := fft.NewDomain[ff.BN254Fr](n)
	require.NoError(t, err)

	p := pseudoRandomPoly(n-1, 13)
	evals, err := p.EvalDomain(d)
	require.NoError(t, err)

	// spot check a few points against Horner
	var x fr
	x.SetOne()
	for k := 0; k < 4; k++ {
		want := p.Eval(&x)
		require.True(t, evals[k].Equal(&want), "mismatch at %d", k)
		x.Mul(&x, &d.Generator)
	}

	// degree too large for the domain
	tooBig := pseudoRandomPoly(n, 17)
	_, err = tooBig.EvalDomain(d)
	require.ErrorIs(t, err, fft.ErrInvalidDomainSize)
}

func TestInterpolate(t *testing.T) {
	const n = 12
	points := make([]fr, n)
	values := make([]fr, n)
	for i := range points {
		points[i].SetUint64(uint64(i) * 1000003)
		_, err := values[i].SetRandom()
		require.NoError(t, err)
	}

	p, err := Interpolate(points, values)
	require.NoError(t, err)
	require.Less(t, p.Degree(), n)

	for i := range points {
		got := p.Eval(&points[i])
		require.True(t, got.Equal(&values[i]), "wrong value at point %d", i)
	}
}

func TestInterpolateErrors(t *testing.T) {
	var a, b fr
	a.SetUint64(1)
	b.SetUint64(1)
	_, err := Interpolate([]fr{a, b}, []fr{a, b})
	require.ErrorIs(t, err, ErrDuplicateEvaluationPoint)

	_, err = Interpolate([]fr{a}, []fr{a, b})
	require.ErrorIs(t, err, ErrLengthMismatch)

	p, err := Interpolate[ff.BN254Fr](nil, nil)
	require.NoError(t, err)
	require.True(t, p.IsZero())
}

func TestInterpolateRoundTripWithEval(t *testing.T) {
	// interpolating the evaluations of a known polynomial recovers it
	orig := pseudoRandomPoly(7, 23)
	points := make([]fr, 8)
	values := make([]fr, 8)
	for i := range points {
		points[i].SetUint64(uint64(i + 1))
		values[i] = orig.Eval(&points[i])
	}
	back, err := Interpolate(points, values)
	require.NoError(t, err)
	require.True(t, back.Equal(orig))
}

func TestEvalAgainstBigInt(t *testing.T) {
	q := ff.FieldModulus[ff.BN254Fr]()
	p := pseudoRandomPoly(6, 31)

	var x fr
	x.SetUint64(77)

	// reference via big.Int Horner
	want := new(big.Int)
	var c big.Int
	for i := len(p) - 1; i >= 0; i-- {
		want.Mul(want, big.NewInt(77))
		want.Add(want, p[i].BigInt(&c))
		want.Mod(want, q)
	}
	got := p.Eval(&x)
	var gotBig big.Int
	require.Equal(t, 0, got.BigInt(&gotBig).Cmp(want))
}
