package tower

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/zkmath/zkmath/ff"
)

func randE2[M ff.Modulus](vals ...uint64) E2[M] {
	var e E2[M]
	a := new(big.Int).SetUint64(vals[0])
	for _, v := range vals[1 : len(vals)/2] {
		a.Lsh(a, 64)
		a.Or(a, new(big.Int).SetUint64(v))
	}
	b := new(big.Int).SetUint64(vals[len(vals)/2])
	for _, v := range vals[len(vals)/2+1:] {
		b.Lsh(b, 64)
		b.Or(b, new(big.Int).SetUint64(v))
	}
	e.A0.SetBigInt(a)
	e.A1.SetBigInt(b)
	return e
}

func testE2Properties[M ff.Modulus](t *testing.T) {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Mul is commutative and associative", prop.ForAll(
		func(a0, a1, b0, b1, c0, c1 uint64) bool {
			a := randE2[M](a0, a1^b0, a1, b1)
			b := randE2[M](b0, c1, b1, a0^c0)
			c := randE2[M](c0, a0, c1, b0^a1)

			var ab, ba, l, r E2[M]
			ab.Mul(&a, &b)
			ba.Mul(&b, &a)
			if !ab.Equal(&ba) {
				return false
			}
			l.Mul(&ab, &c)
			r.Mul(&b, &c)
			r.Mul(&a, &r)
			return l.Equal(&r)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("Square equals Mul by self", prop.ForAll(
		func(a0, a1, b0, b1 uint64) bool {
			a := randE2[M](a0, a1, b0, b1)
			var s, m E2[M]
			s.Square(&a)
			m.Mul(&a, &a)
			return s.Equal(&m)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("Inverse is a two-sided inverse", prop.ForAll(
		func(a0, a1, b0, b1 uint64) bool {
			a := randE2[M](a0, a1, b0, b1)
			if a.IsZero() {
				return true
			}
			var inv, c E2[M]
			if err := inv.Inverse(&a); err != nil {
				return false
			}
			c.Mul(&a, &inv)
			var one E2[M]
			one.SetOne()
			return c.Equal(&one)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("Conjugate fixes the base field and flips A1", prop.ForAll(
		func(a0, a1, b0, b1 uint64) bool {
			a := randE2[M](a0, a1, b0, b1)
			var c E2[M]
			c.Conjugate(&a)
			var n ff.Element[M]
			n.Neg(&a.A1)
			return c.A0.Equal(&a.A0) && c.A1.Equal(&n)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("Norm is multiplicative", prop.ForAll(
		func(a0, a1, b0, b1, c0, c1 uint64) bool {
			a := randE2[M](a0, a1, c0, b1)
			b := randE2[M](b0, c1, b1, a0)
			var ab E2[M]
			ab.Mul(&a, &b)

			var na, nb, nab, want ff.Element[M]
			a.Norm(&na)
			b.Norm(&nb)
			ab.Norm(&nab)
			want.Mul(&na, &nb)
			return nab.Equal(&want)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("MulByNonResidue is multiplication by u", prop.ForAll(
		func(a0, a1, b0, b1 uint64) bool {
			a := randE2[M](a0, a1, b0, b1)
			var u E2[M]
			u.A1.SetOne()

			var fast, slow E2[M]
			fast.MulByNonResidue(&a)
			slow.Mul(&a, &u)
			return fast.Equal(&slow)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestE2BN254Fp(t *testing.T)  { testE2Properties[ff.BN254Fp](t) }
func TestE2Stark252(t *testing.T) { testE2Properties[ff.Stark252](t) }

func TestE2InverseOfZero(t *testing.T) {
	var z, inv E2[ff.BN254Fp]
	require.ErrorIs(t, inv.Inverse(&z), ff.ErrDivisionByZero)
}

func TestE2KnownProduct(t *testing.T) {
	// over bn254fp the non-residue is -1, so (a0+a1·u)(b0+b1·u) with
	// u² = -1 follows complex multiplication
	var a, b, c E2[ff.BN254Fp]
	a.A0.SetUint64(3)
	a.A1.SetUint64(4)
	b.A0.SetUint64(5)
	b.A1.SetUint64(6)
	c.Mul(&a, &b)

	// (3+4u)(5+6u) = 15 - 24 + (18+20)u = -9 + 38u
	var wantA0, wantA1 ff.Element[ff.BN254Fp]
	wantA0.SetInt64(-9)
	wantA1.SetUint64(38)
	require.True(t, c.A0.Equal(&wantA0))
	require.True(t, c.A1.Equal(&wantA1))
}
