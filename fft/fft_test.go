package fft

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/zkmath/zkmath/ff"
)

func TestNewDomain(t *testing.T) {
	// power-of-two sizes up to the field adicity work
	for _, n := range []uint64{1, 2, 4, 256, 1 << 20} {
		d, err := NewDomain[ff.BN254Fr](n)
		require.NoError(t, err)
		require.Equal(t, n, d.Cardinality)
	}

	// non powers of two are rejected
	for _, n := range []uint64{0, 3, 6, 100} {
		_, err := NewDomain[ff.BN254Fr](n)
		require.ErrorIs(t, err, ErrInvalidDomainSize)
	}

	// bn254fp has adicity 1: nothing above 2 exists
	_, err := NewDomain[ff.BN254Fp](4)
	require.ErrorIs(t, err, ErrInvalidDomainSize)
}

func TestDomainGeneratorOrder(t *testing.T) {
	const n = 64
	d, err := NewDomain[ff.Stark252](n)
	require.NoError(t, err)

	// ω^n == 1 and ω^(n/2) == -1
	var r ff.Element[ff.Stark252]
	_, err = r.Exp(d.Generator, big.NewInt(n))
	require.NoError(t, err)
	require.True(t, r.IsOne())

	_, err = r.Exp(d.Generator, big.NewInt(n/2))
	require.NoError(t, err)
	var negOne ff.Element[ff.Stark252]
	negOne.SetOne()
	negOne.Neg(&negOne)
	require.True(t, r.Equal(&negOne))
}

// evaluations must match a direct Horner evaluation at each ω^k
func TestFFTMatchesHorner(t *testing.T) {
	const n = 8
	d, err := NewDomain[ff.BN254Fr](n)
	require.NoError(t, err)

	coeffs := make([]ff.Element[ff.BN254Fr], n)
	for i := range coeffs {
		_, err := coeffs[i].SetRandom()
		require.NoError(t, err)
	}

	a := make([]ff.Element[ff.BN254Fr], n)
	copy(a, coeffs)
	require.NoError(t, d.FFT(a))

	var x, acc ff.Element[ff.BN254Fr]
	x.SetOne()
	for k := 0; k < n; k++ {
		// Horner at ω^k
		acc = coeffs[n-1]
		for i := n - 2; i >= 0; i-- {
			acc.Mul(&acc, &x)
			acc.Add(&acc, &coeffs[i])
		}
		require.True(t, a[k].Equal(&acc), "mismatch at evaluation %d", k)
		x.Mul(&x, &d.Generator)
	}
}

func TestFFTSize4(t *testing.T) {
	d, err := NewDomain[ff.BN254Fr](4)
	require.NoError(t, err)

	a := make([]ff.Element[ff.BN254Fr], 4)
	for i := range a {
		a[i].SetUint64(uint64(i + 1))
	}
	require.NoError(t, d.FFT(a))

	// a[k] is now 1 + 2ω^k + 3ω^2k + 4ω^3k
	var x, acc, t1 ff.Element[ff.BN254Fr]
	x.SetOne()
	for k := 0; k < 4; k++ {
		acc.SetZero()
		var pow ff.Element[ff.BN254Fr]
		pow.SetOne()
		for i := 1; i <= 4; i++ {
			t1.SetUint64(uint64(i))
			t1.Mul(&t1, &pow)
			acc.Add(&acc, &t1)
			pow.Mul(&pow, &x)
		}
		require.True(t, a[k].Equal(&acc), "evaluation %d", k)
		x.Mul(&x, &d.Generator)
	}

	// the inverse recovers [1, 2, 3, 4]
	require.NoError(t, d.FFTInverse(a))
	for i := range a {
		var e ff.Element[ff.BN254Fr]
		e.SetUint64(uint64(i + 1))
		require.True(t, a[i].Equal(&e))
	}
}

func testRoundTrip[M ff.Modulus](t *testing.T, n uint64, parallel bool) {
	d, err := NewDomain[M](n)
	require.NoError(t, err)

	var opts []Option
	if parallel {
		opts = append(opts, WithParallelism())
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	properties.Property("FFTInverse undoes FFT", prop.ForAll(
		func(seed uint64) bool {
			a := pseudoRandom[M](n, seed)
			orig := make([]ff.Element[M], n)
			copy(orig, a)

			if err := d.FFT(a, opts...); err != nil {
				return false
			}
			if err := d.FFTInverse(a, opts...); err != nil {
				return false
			}
			for i := range a {
				if !a[i].Equal(&orig[i]) {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
	))

	properties.Property("CosetFFTInverse undoes CosetFFT", prop.ForAll(
		func(seed uint64) bool {
			a := pseudoRandom[M](n, seed)
			orig := make([]ff.Element[M], n)
			copy(orig, a)

			if err := d.CosetFFT(a, opts...); err != nil {
				return false
			}
			if err := d.CosetFFTInverse(a, opts...); err != nil {
				return false
			}
			for i := range a {
				if !a[i].Equal(&orig[i]) {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRoundTripBN254Fr(t *testing.T)  { testRoundTrip[ff.BN254Fr](t, 128, false) }
func TestRoundTripStark252(t *testing.T) { testRoundTrip[ff.Stark252](t, 64, false) }

// large enough to cross the goroutine fan-out threshold
func TestRoundTripParallel(t *testing.T) { testRoundTrip[ff.BN254Fr](t, 2048, true) }

func TestParallelMatchesSerial(t *testing.T) {
	const n = 1024
	d, err := NewDomain[ff.BN254Fr](n)
	require.NoError(t, err)

	a := pseudoRandom[ff.BN254Fr](n, 42)
	b := make([]ff.Element[ff.BN254Fr], n)
	copy(b, a)

	require.NoError(t, d.FFT(a))
	require.NoError(t, d.FFT(b, WithParallelism()))
	for i := range a {
		require.True(t, a[i].Equal(&b[i]))
	}
}

func TestCosetDisjointFromSubgroup(t *testing.T) {
	// the vanishing polynomial xⁿ - 1 is zero on the domain and nonzero
	// on the default coset
	const n = 16
	d, err := NewDomain[ff.BN254Fr](n)
	require.NoError(t, err)

	var v ff.Element[ff.BN254Fr]
	_, err = v.Exp(d.CosetShift, big.NewInt(n))
	require.NoError(t, err)
	var one ff.Element[ff.BN254Fr]
	one.SetOne()
	require.False(t, v.Equal(&one))
}

func TestBitReverse(t *testing.T) {
	a := make([]ff.Element[ff.BN254Fr], 8)
	for i := range a {
		a[i].SetUint64(uint64(i))
	}
	BitReverse(a)
	want := []uint64{0, 4, 2, 6, 1, 5, 3, 7}
	for i, w := range want {
		var e ff.Element[ff.BN254Fr]
		e.SetUint64(w)
		require.True(t, a[i].Equal(&e))
	}
	// involution
	BitReverse(a)
	for i := range a {
		var e ff.Element[ff.BN254Fr]
		e.SetUint64(uint64(i))
		require.True(t, a[i].Equal(&e))
	}
}

func TestFFTLengthMismatch(t *testing.T) {
	d, err := NewDomain[ff.BN254Fr](8)
	require.NoError(t, err)
	a := make([]ff.Element[ff.BN254Fr], 4)
	require.ErrorIs(t, d.FFT(a), ErrInvalidDomainSize)
	require.ErrorIs(t, d.FFTInverse(a), ErrInvalidDomainSize)
}

func pseudoRandom[M ff.Modulus](n, seed uint64) []ff.Element[M] {
	a := make([]ff.Element[M], n)
	s := seed | 1
	for i := range a {
		s ^= s << 13
		s ^= s >> 7
		s ^= s << 17
		a[i].SetUint64(s)
	}
	return a
}
