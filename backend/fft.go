package backend

import (
	"github.com/zkmath/zkmath/ff"
	"github.com/zkmath/zkmath/fft"
	"github.com/zkmath/zkmath/logger"
)

// FFT is a transform bound to a fixed evaluation domain.
type FFT[M ff.Modulus] interface {
	// Transform maps coefficients to evaluations in place.
	Transform(a []ff.Element[M]) error
	// TransformInverse maps evaluations back to coefficients in place.
	TransformInverse(a []ff.Element[M]) error
}

// NewFFT returns a transform over d running at the requested
// capability, or ErrBackendUnavailable when that capability is not
// compiled in for the field M.
func NewFFT[M ff.Modulus](d *fft.Domain[M], c Capability, opts ...Option) (FFT[M], error) {
	switch c {
	case None:
		return &cpuFFT[M]{d: d}, nil
	case Parallel:
		return &cpuFFT[M]{d: d, opts: []fft.Option{fft.WithParallelism()}}, nil
	case GPU:
		cfg, err := NewConfig(opts...)
		if err != nil {
			return nil, err
		}
		var m M
		mk, ok := gpuFFTs[m.Name()]
		if !ok {
			return nil, ErrBackendUnavailable
		}
		f, ok := mk(d, cfg).(FFT[M])
		if !ok {
			return nil, ErrBackendUnavailable
		}
		return f, nil
	default:
		return nil, ErrBackendUnavailable
	}
}

// BestFFT returns the strongest transform available for the field M:
// GPU when compiled in and supported, all CPUs otherwise.
func BestFFT[M ff.Modulus](d *fft.Domain[M], opts ...Option) FFT[M] {
	var m M
	log := logger.Logger()
	if f, err := NewFFT[M](d, GPU, opts...); err == nil {
		log.Debug().Str("field", m.Name()).Str("capability", GPU.String()).Msg("fft backend selected")
		return f
	}
	log.Debug().Str("field", m.Name()).Str("capability", Parallel.String()).Msg("fft backend selected")
	f, _ := NewFFT[M](d, Parallel)
	return f
}

type cpuFFT[M ff.Modulus] struct {
	d    *fft.Domain[M]
	opts []fft.Option
}

func (f *cpuFFT[M]) Transform(a []ff.Element[M]) error {
	return f.d.FFT(a, f.opts...)
}

func (f *cpuFFT[M]) TransformInverse(a []ff.Element[M]) error {
	return f.d.FFTInverse(a, f.opts...)
}

// gpuFFTs maps a field name to a device transform factory. Populated by
// the `icicle` build; the value is asserted back to FFT[M] by NewFFT.
var gpuFFTs = make(map[string]func(d any, cfg *Config) any)
