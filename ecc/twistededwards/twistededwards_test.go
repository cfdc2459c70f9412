package twistededwards

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/zkmath/zkmath/ff"
)

type bjj = Point[ff.BN254Fr, BabyJubjub]

func TestGeneratorOnCurve(t *testing.T) {
	g := Generator[ff.BN254Fr, BabyJubjub]()
	require.True(t, g.IsOnCurve())
	require.False(t, g.IsIdentity())
}

func TestIdentity(t *testing.T) {
	var id bjj
	id.SetIdentity()
	require.True(t, id.IsOnCurve())
	require.True(t, id.IsIdentity())

	// G + O == G
	g := Generator[ff.BN254Fr, BabyJubjub]()
	var sum bjj
	sum.Add(&g, &id)
	require.True(t, sum.Equal(&g))

	// G + (-G) == O
	var neg bjj
	neg.Neg(&g)
	sum.Add(&g, &neg)
	require.True(t, sum.IsIdentity())
}

func TestGroupProperties(t *testing.T) {
	g := Generator[ff.BN254Fr, BabyJubjub]()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	properties.Property("addition is commutative and closed", prop.ForAll(
		func(a, b uint64) bool {
			var p, q, pq, qp bjj
			p.ScalarMul(&g, new(big.Int).SetUint64(a|1))
			q.ScalarMul(&g, new(big.Int).SetUint64(b|1))
			pq.Add(&p, &q)
			qp.Add(&q, &p)
			return pq.Equal(&qp) && pq.IsOnCurve()
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.Property("(a+b)·G == a·G + b·G", prop.ForAll(
		func(a, b uint64) bool {
			av := new(big.Int).SetUint64(a)
			bv := new(big.Int).SetUint64(b)

			var pa, pb, sum, want bjj
			pa.ScalarMul(&g, av)
			pb.ScalarMul(&g, bv)
			sum.Add(&pa, &pb)
			want.ScalarMul(&g, new(big.Int).Add(av, bv))
			return sum.Equal(&want)
		},
		gen.UInt64(), gen.UInt64(),
	))

	properties.Property("unified formula doubles correctly", prop.ForAll(
		func(a uint64) bool {
			var p, d, s bjj
			p.ScalarMul(&g, new(big.Int).SetUint64(a|1))
			d.Double(&p)
			s.ScalarMul(&p, big.NewInt(2))
			return d.Equal(&s) && d.IsOnCurve()
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSubgroupOrder(t *testing.T) {
	g := Generator[ff.BN254Fr, BabyJubjub]()
	order := Order[ff.BN254Fr, BabyJubjub]()

	var p bjj
	p.ScalarMul(&g, order)
	require.True(t, p.IsIdentity())

	p.ScalarMul(&g, new(big.Int).Add(order, big.NewInt(1)))
	require.True(t, p.Equal(&g))
}

func TestNegativeScalar(t *testing.T) {
	g := Generator[ff.BN254Fr, BabyJubjub]()
	var a, b bjj
	a.ScalarMul(&g, big.NewInt(-7))
	b.ScalarMul(&g, big.NewInt(7))
	b.Neg(&b)
	require.True(t, a.Equal(&b))
}

func TestCofactor(t *testing.T) {
	var c BabyJubjub
	require.Equal(t, uint64(8), c.Cofactor())
}
