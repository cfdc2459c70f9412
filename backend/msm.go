package backend

import (
	"math/big"

	"github.com/zkmath/zkmath/ecc"
	"github.com/zkmath/zkmath/ecc/sw"
	"github.com/zkmath/zkmath/ff"
	"github.com/zkmath/zkmath/logger"
)

// MSM computes multi-scalar multiplications over a fixed curve.
type MSM[F ff.Modulus, C sw.CurveParams[F]] interface {
	// MultiExp returns Σ scalars[i]·points[i].
	MultiExp(points []sw.Affine[F, C], scalars []*big.Int) (sw.Jacobian[F, C], error)
}

// NewMSM returns a multi-scalar multiplier for the curve C running at
// the requested capability, or ErrBackendUnavailable when that
// capability is not compiled in for C.
func NewMSM[F ff.Modulus, C sw.CurveParams[F]](c Capability, opts ...Option) (MSM[F, C], error) {
	switch c {
	case None:
		return &cpuMSM[F, C]{}, nil
	case Parallel:
		return &cpuMSM[F, C]{opts: []sw.MSMOption{sw.WithMSMParallelism()}}, nil
	case GPU:
		cfg, err := NewConfig(opts...)
		if err != nil {
			return nil, err
		}
		var params C
		mk, ok := gpuMSMs[params.ID()]
		if !ok {
			return nil, ErrBackendUnavailable
		}
		m, ok := mk(cfg).(MSM[F, C])
		if !ok {
			return nil, ErrBackendUnavailable
		}
		return m, nil
	default:
		return nil, ErrBackendUnavailable
	}
}

// BestMSM returns the strongest multi-scalar multiplier available for
// the curve C: GPU when compiled in and supported, all CPUs otherwise.
func BestMSM[F ff.Modulus, C sw.CurveParams[F]](opts ...Option) MSM[F, C] {
	var params C
	log := logger.Logger()
	if m, err := NewMSM[F, C](GPU, opts...); err == nil {
		log.Debug().Stringer("curve", params.ID()).Str("capability", GPU.String()).Msg("msm backend selected")
		return m
	}
	log.Debug().Stringer("curve", params.ID()).Str("capability", Parallel.String()).Msg("msm backend selected")
	m, _ := NewMSM[F, C](Parallel)
	return m
}

type cpuMSM[F ff.Modulus, C sw.CurveParams[F]] struct {
	opts []sw.MSMOption
}

func (m *cpuMSM[F, C]) MultiExp(points []sw.Affine[F, C], scalars []*big.Int) (sw.Jacobian[F, C], error) {
	return sw.MSM(points, scalars, m.opts...)
}

// gpuMSMs maps a curve ID to a device multiplier factory. Populated by
// the `icicle` build; the value is asserted back to MSM[F, C] by
// NewMSM.
var gpuMSMs = make(map[ecc.ID]func(cfg *Config) any)
