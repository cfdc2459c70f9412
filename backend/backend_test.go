package backend

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/zkmath/zkmath/ecc/sw"
	"github.com/zkmath/zkmath/ff"
	"github.com/zkmath/zkmath/fft"
)

func TestCapabilityString(t *testing.T) {
	require.Equal(t, "none", None.String())
	require.Equal(t, "parallel", Parallel.String())
	require.Equal(t, "gpu", GPU.String())
}

func TestConfigOptions(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, 0, cfg.DeviceID)
	require.Equal(t, CUDA, cfg.Device)

	cfg, err = NewConfig(WithDeviceID(2), WithDevice(CPU), WithBackendLibrary("/opt/icicle"))
	require.NoError(t, err)
	require.Equal(t, 2, cfg.DeviceID)
	require.Equal(t, CPU, cfg.Device)
	require.Equal(t, "/opt/icicle", cfg.BackendLibs)

	_, err = NewConfig(WithDeviceID(-1))
	require.Error(t, err)
	_, err = NewConfig(WithBackendLibrary(""))
	require.Error(t, err)
}

func TestFFTCapabilities(t *testing.T) {
	const n = 256
	d, err := fft.NewDomain[ff.BN254Fr](n)
	require.NoError(t, err)

	a := make([]ff.Element[ff.BN254Fr], n)
	rng := rand.New(rand.NewSource(1))
	for i := range a {
		a[i].SetUint64(rng.Uint64())
	}

	serial, err := NewFFT[ff.BN254Fr](d, None)
	require.NoError(t, err)
	parallel, err := NewFFT[ff.BN254Fr](d, Parallel)
	require.NoError(t, err)

	as := append([]ff.Element[ff.BN254Fr](nil), a...)
	ap := append([]ff.Element[ff.BN254Fr](nil), a...)
	require.NoError(t, serial.Transform(as))
	require.NoError(t, parallel.Transform(ap))
	require.Empty(t, cmp.Diff(as, ap))

	require.NoError(t, serial.TransformInverse(as))
	require.Empty(t, cmp.Diff(a, as))
}

func TestFFTGPUUnavailable(t *testing.T) {
	if HasGPU {
		t.Skip("GPU support compiled in")
	}
	d, err := fft.NewDomain[ff.BN254Fr](8)
	require.NoError(t, err)

	_, err = NewFFT[ff.BN254Fr](d, GPU)
	require.ErrorIs(t, err, ErrBackendUnavailable)

	// Best must degrade instead of failing
	f := BestFFT[ff.BN254Fr](d)
	require.NotNil(t, f)
	a := make([]ff.Element[ff.BN254Fr], 8)
	require.NoError(t, f.Transform(a))
}

func TestMSMCapabilities(t *testing.T) {
	gAff := sw.Generator[ff.BN254Fp, sw.BN254G1]()
	var g, jac sw.Jacobian[ff.BN254Fp, sw.BN254G1]
	g.FromAffine(&gAff)

	order := sw.Order[ff.BN254Fp, sw.BN254G1]()
	rng := rand.New(rand.NewSource(2))

	const n = 30
	points := make([]sw.Affine[ff.BN254Fp, sw.BN254G1], n)
	scalars := make([]*big.Int, n)
	for i := range points {
		jac.ScalarMul(&g, new(big.Int).Rand(rng, order))
		points[i].FromJacobian(&jac)
		scalars[i] = new(big.Int).Rand(rng, order)
	}

	serial, err := NewMSM[ff.BN254Fp, sw.BN254G1](None)
	require.NoError(t, err)
	parallel, err := NewMSM[ff.BN254Fp, sw.BN254G1](Parallel)
	require.NoError(t, err)

	want, err := serial.MultiExp(points, scalars)
	require.NoError(t, err)
	got, err := parallel.MultiExp(points, scalars)
	require.NoError(t, err)
	require.True(t, want.Equal(&got))
}

func TestMSMGPUUnavailable(t *testing.T) {
	if HasGPU {
		t.Skip("GPU support compiled in")
	}
	_, err := NewMSM[ff.BN254Fp, sw.BN254G1](GPU)
	require.ErrorIs(t, err, ErrBackendUnavailable)

	// stark curve has no device implementation either way
	_, err = NewMSM[ff.Stark252, sw.StarkCurve](GPU)
	require.ErrorIs(t, err, ErrBackendUnavailable)

	m := BestMSM[ff.BN254Fp, sw.BN254G1]()
	require.NotNil(t, m)
	res, err := m.MultiExp(nil, nil)
	require.NoError(t, err)
	require.True(t, res.IsInfinity())
}

func TestInvalidCapability(t *testing.T) {
	d, err := fft.NewDomain[ff.BN254Fr](8)
	require.NoError(t, err)
	_, err = NewFFT[ff.BN254Fr](d, maxCapability)
	require.ErrorIs(t, err, ErrBackendUnavailable)
	_, err = NewMSM[ff.BN254Fp, sw.BN254G1](maxCapability)
	require.ErrorIs(t, err, ErrBackendUnavailable)
}
