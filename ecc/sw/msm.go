package sw

import (
	"errors"
	"math/big"
	"runtime"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/zkmath/zkmath/ff"
	"github.com/zkmath/zkmath/internal/debug"
	"github.com/zkmath/zkmath/utils/parallel"
)

// ErrLengthMismatch is returned by MSM when the point and scalar counts
// differ.
var ErrLengthMismatch = errors.New("sw: points and scalars must have the same length")

type msmConfig struct {
	window   int
	parallel bool
}

// MSMOption configures an MSM call.
type MSMOption func(*msmConfig)

// WithWindowSize overrides the bucket window width (in bits). Values
// outside [1, 16] are clamped. The default is chosen from the input
// size.
func WithWindowSize(c int) MSMOption {
	return func(cfg *msmConfig) { cfg.window = c }
}

// WithMSMParallelism processes the scalar windows on all CPUs. The
// result is identical to the serial computation.
func WithMSMParallelism() MSMOption {
	return func(cfg *msmConfig) { cfg.parallel = true }
}

// MSM computes Σ scalars[i]·points[i] with Pippenger's bucket method.
// Scalars are arbitrary integers; they are reduced modulo the group
// order first, so negative scalars act as order−|s| mod order.
// An empty input yields the point at infinity.
func MSM[F ff.Modulus, C CurveParams[F]](points []Affine[F, C], scalars []*big.Int, opts ...MSMOption) (Jacobian[F, C], error) {
	var res Jacobian[F, C]
	res.SetInfinity()
	if len(points) != len(scalars) {
		return res, ErrLengthMismatch
	}
	if len(points) == 0 {
		return res, nil
	}

	var cfg msmConfig
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.window == 0 {
		cfg.window = windowSize(len(points))
	}
	if cfg.window < 1 {
		cfg.window = 1
	}
	if cfg.window > 16 {
		cfg.window = 16
	}

	order := &getConstants[F, C]().order
	reduced := make([]*big.Int, len(scalars))
	if cfg.parallel {
		parallel.Execute(0, len(scalars), func(start, end int) {
			for i := start; i < end; i++ {
				reduced[i] = new(big.Int).Mod(scalars[i], order)
			}
		}, false)
	} else {
		for i, s := range scalars {
			reduced[i] = new(big.Int).Mod(s, order)
		}
	}
	maxBits := 0
	for i := range reduced {
		if bl := reduced[i].BitLen(); bl > maxBits {
			maxBits = bl
		}
	}
	if maxBits == 0 {
		return res, nil
	}

	c := cfg.window
	nbWindows := (maxBits + c - 1) / c
	windowSums := make([]Jacobian[F, C], nbWindows)

	if cfg.parallel && nbWindows > 1 {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for w := 0; w < nbWindows; w++ {
			w := w
			g.Go(func() error {
				windowSums[w] = bucketAccumulate(points, reduced, w*c, c)
				return nil
			})
		}
		// workers cannot fail; Wait only joins them
		_ = g.Wait()
	} else {
		for w := 0; w < nbWindows; w++ {
			windowSums[w] = bucketAccumulate(points, reduced, w*c, c)
		}
	}

	// fold windows most significant first: res = Σ 2^(w·c)·windowSums[w]
	res = windowSums[nbWindows-1]
	for w := nbWindows - 2; w >= 0; w-- {
		for j := 0; j < c; j++ {
			res.Double()
		}
		res.Add(&windowSums[w])
	}
	return res, nil
}

// bucketAccumulate computes Σ dᵢ·pointsᵢ where dᵢ is the c-bit digit of
// scalar i starting at bit `shift`, by sorting points into 2ᶜ−1 buckets
// and folding them with a running sum.
func bucketAccumulate[F ff.Modulus, C CurveParams[F]](points []Affine[F, C], scalars []*big.Int, shift, c int) Jacobian[F, C] {
	debug.Assert(c >= 1 && c <= 16)
	buckets := make([]Jacobian[F, C], (1<<c)-1)
	occupied := bitset.New(uint(len(buckets)))
	for i := range buckets {
		buckets[i].SetInfinity()
	}

	for i := range points {
		d := digit(scalars[i], shift, c)
		if d == 0 {
			continue
		}
		buckets[d-1].AddMixed(&points[i])
		occupied.Set(uint(d - 1))
	}

	// running sum from the top bucket: Σ j·buckets[j-1]
	var sum, total Jacobian[F, C]
	sum.SetInfinity()
	total.SetInfinity()
	for j := len(buckets) - 1; j >= 0; j-- {
		if occupied.Test(uint(j)) {
			sum.Add(&buckets[j])
		}
		total.Add(&sum)
	}
	return total
}

// digit extracts c bits of s starting at bit shift.
func digit(s *big.Int, shift, c int) uint64 {
	var d uint64
	for k := 0; k < c; k++ {
		d |= uint64(s.Bit(shift+k)) << k
	}
	return d
}

// windowSize picks the bucket width from the input size; wider windows
// amortize the bucket fold over more points.
func windowSize(n int) int {
	switch {
	case n < 8:
		return 2
	case n < 64:
		return 4
	case n < 512:
		return 6
	case n < 4096:
		return 8
	case n < 65536:
		return 10
	default:
		return 13
	}
}

// MSMNaive computes Σ scalars[i]·points[i] by independent scalar
// multiplications. It is the reference the bucket method is checked
// against; prefer MSM for anything beyond a handful of points.
func MSMNaive[F ff.Modulus, C CurveParams[F]](points []Affine[F, C], scalars []*big.Int) (Jacobian[F, C], error) {
	var res Jacobian[F, C]
	res.SetInfinity()
	if len(points) != len(scalars) {
		return res, ErrLengthMismatch
	}
	var t Jacobian[F, C]
	for i := range points {
		t.ScalarMulAffine(&points[i], scalars[i])
		res.Add(&t)
	}
	return res, nil
}
