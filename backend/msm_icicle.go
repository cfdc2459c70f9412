//go:build icicle

package backend

import (
	"fmt"
	"math/big"
	"sync"

	icicle_core "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/core"
	icicle_bn254 "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bn254"
	icicle_msm "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bn254/msm"
	icicle_runtime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"

	"github.com/zkmath/zkmath/ecc"
	"github.com/zkmath/zkmath/ecc/sw"
	"github.com/zkmath/zkmath/ff"
	"github.com/zkmath/zkmath/logger"
)

// HasGPU reports whether GPU acceleration is compiled in.
const HasGPU = true

func init() {
	gpuMSMs[ecc.BN254] = func(cfg *Config) any {
		warmUpDevice(cfg)
		return &icicleMSMBN254{
			device: icicle_runtime.CreateDevice(cfg.Device.String(), cfg.DeviceID),
		}
	}
}

var onceWarmUpDevice sync.Once

// warmUpDevice performs one-time initialization of the ICICLE backend
// and warms up all available devices. It is safe to call multiple
// times; the initialization will only occur once.
func warmUpDevice(config *Config) {
	onceWarmUpDevice.Do(func() {
		log := logger.Logger()
		if config.BackendLibs != "" {
			err := icicle_runtime.LoadBackend(config.BackendLibs, true)
			if err != icicle_runtime.Success {
				panic(fmt.Sprintf("custom ICICLE backend loading error: %s", err.AsString()))
			}
		} else {
			err := icicle_runtime.LoadBackendFromEnvOrDefault()
			if err != icicle_runtime.Success {
				panic(fmt.Sprintf("default ICICLE backend loading error: %s", err.AsString()))
			}
		}
		nbDev, err := icicle_runtime.GetDeviceCount()
		if err != icicle_runtime.Success {
			panic(fmt.Sprintf("ICICLE get device count error: %s", err.AsString()))
		}
		log.Info().Int("nbDev", nbDev).Msg("ICICLE devices detected")
		for id := 0; id < nbDev; id++ {
			device := icicle_runtime.CreateDevice(config.Device.String(), id)
			log.Debug().Int32("id", device.Id).Str("type", device.GetDeviceType()).Msg("ICICLE device created")
			icicle_runtime.RunOnDevice(&device, func(args ...any) {
				stream, err := icicle_runtime.CreateStream()
				if err != icicle_runtime.Success {
					panic(fmt.Sprintf("ICICLE create stream error: %s", err.AsString()))
				}
				err = icicle_runtime.WarmUpDevice(stream)
				if err != icicle_runtime.Success {
					panic(fmt.Sprintf("ICICLE device warmup error: %s", err.AsString()))
				}
			})
		}
	})
}

type icicleMSMBN254 struct {
	device icicle_runtime.Device
}

func (m *icicleMSMBN254) MultiExp(points []sw.Affine[ff.BN254Fp, sw.BN254G1], scalars []*big.Int) (sw.Jacobian[ff.BN254Fp, sw.BN254G1], error) {
	var res sw.Jacobian[ff.BN254Fp, sw.BN254G1]
	res.SetInfinity()
	if len(points) != len(scalars) {
		return res, sw.ErrLengthMismatch
	}
	if len(points) == 0 {
		return res, nil
	}

	order := sw.Order[ff.BN254Fp, sw.BN254G1]()

	// everything crosses the wrapper boundary in canonical
	// little-endian bytes
	icScalars := make([]icicle_bn254.ScalarField, len(scalars))
	var s big.Int
	for i := range scalars {
		s.Mod(scalars[i], order)
		icScalars[i].FromBytesLittleEndian(littleEndian32(&s))
	}
	icPoints := make([]icicle_bn254.Affine, len(points))
	for i := range points {
		x := points[i].X.Bytes()
		y := points[i].Y.Bytes()
		icPoints[i].X.FromBytesLittleEndian(reverse32(x))
		icPoints[i].Y.FromBytesLittleEndian(reverse32(y))
	}

	out := make(icicle_core.HostSlice[icicle_bn254.Projective], 1)
	cfg := icicle_msm.GetDefaultMSMConfig()

	done := make(chan icicle_runtime.EIcicleError, 1)
	icicle_runtime.RunOnDevice(&m.device, func(args ...any) {
		done <- icicle_msm.Msm(
			icicle_core.HostSliceFromElements(icScalars),
			icicle_core.HostSliceFromElements(icPoints),
			&cfg,
			out,
		)
	})
	if err := <-done; err != icicle_runtime.Success {
		return res, fmt.Errorf("%w: icicle msm: %s", ErrBackendUnavailable, err.AsString())
	}

	// homogeneous (X, Y, Z) maps to Jacobian (X·Z, Y·Z², Z)
	var x, y, z ff.Element[ff.BN254Fp]
	x.SetBytes(reverse32In(out[0].X.ToBytesLittleEndian()))
	y.SetBytes(reverse32In(out[0].Y.ToBytesLittleEndian()))
	z.SetBytes(reverse32In(out[0].Z.ToBytesLittleEndian()))
	if z.IsZero() {
		return res, nil
	}
	res.X.Mul(&x, &z)
	res.Z = z
	z.Square(&z)
	res.Y.Mul(&y, &z)
	return res, nil
}

// littleEndian32 returns s as 32 little-endian bytes.
func littleEndian32(s *big.Int) []byte {
	b := s.Bytes()
	out := make([]byte, 32)
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out
}

func reverse32(b [32]byte) []byte {
	out := make([]byte, 32)
	for i := range b {
		out[i] = b[31-i]
	}
	return out
}

func reverse32In(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
