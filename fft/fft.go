/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fft

import (
	"math/bits"
	"sync"

	"github.com/zkmath/zkmath/ff"
	"github.com/zkmath/zkmath/internal/debug"
)

// below this size the recursion stops spawning goroutines; the split
// overhead dominates the butterfly work
const minParallelSize = 256

type config struct {
	parallel bool
}

// Option configures a transform call.
type Option func(*config)

// WithParallelism makes the transform fan out its independent
// sub-transforms across goroutines. Output is identical to the serial
// transform.
func WithParallelism() Option {
	return func(c *config) { c.parallel = true }
}

// FFT transforms, in place, the coefficients a into the evaluations of
// the corresponding polynomial at the domain points, in canonical order
// (a[k] becomes the evaluation at ωᵏ). len(a) must equal the domain
// cardinality.
func (d *Domain[M]) FFT(a []ff.Element[M], opts ...Option) error {
	if uint64(len(a)) != d.Cardinality {
		return ErrInvalidDomainSize
	}
	transform(a, d.Generator, options(opts))
	BitReverse(a)
	return nil
}

// FFTInverse is the exact inverse of FFT: evaluations in canonical
// order back to coefficients.
func (d *Domain[M]) FFTInverse(a []ff.Element[M], opts ...Option) error {
	if uint64(len(a)) != d.Cardinality {
		return ErrInvalidDomainSize
	}
	transform(a, d.GeneratorInv, options(opts))
	BitReverse(a)
	for i := range a {
		a[i].Mul(&a[i], &d.CardinalityInv)
	}
	return nil
}

// CosetFFT evaluates the polynomial on the coset g·{ωᵏ}: coefficients
// are pre-scaled by powers of the coset shift, then transformed.
func (d *Domain[M]) CosetFFT(a []ff.Element[M], opts ...Option) error {
	if uint64(len(a)) != d.Cardinality {
		return ErrInvalidDomainSize
	}
	scalePowers(a, d.CosetShift)
	return d.FFT(a, opts...)
}

// CosetFFTInverse recovers coefficients from evaluations on the coset
// g·{ωᵏ}.
func (d *Domain[M]) CosetFFTInverse(a []ff.Element[M], opts ...Option) error {
	if err := d.FFTInverse(a, opts...); err != nil {
		return err
	}
	scalePowers(a, d.CosetShiftInv)
	return nil
}

func options(opts []Option) config {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// transform runs the radix-2 decimation-in-frequency recursion:
// natural-order input, bit-reversed output. w must be a primitive
// len(a)-th root of unity.
func transform[M ff.Modulus](a []ff.Element[M], w ff.Element[M], cfg config) {
	debug.Assert(len(a)&(len(a)-1) == 0, "transform length must be a power of two")
	if cfg.parallel {
		var wg sync.WaitGroup
		difFFT(a, w, &wg)
		wg.Wait()
		return
	}
	difFFT(a, w, nil)
}

func difFFT[M ff.Modulus](a []ff.Element[M], w ff.Element[M], wg *sync.WaitGroup) {
	n := len(a)
	if n == 1 {
		return
	}
	m := n / 2

	// butterfly pass; wPow walks w¹, w², ...
	wPow := w

	tmp := a[0]
	a[0].Add(&a[0], &a[m])
	a[m].Sub(&tmp, &a[m])

	for i := 1; i < m; i++ {
		tmp = a[i]
		a[i].Add(&a[i], &a[i+m])
		a[i+m].
			Sub(&tmp, &a[i+m]).
			Mul(&a[i+m], &wPow)
		wPow.Mul(&wPow, &w)
	}

	// the two halves are independent sub-transforms over w²
	w.Square(&w)

	if wg == nil || m < minParallelSize {
		difFFT(a[:m], w, nil)
		difFFT(a[m:], w, nil)
		return
	}
	wg.Add(2)
	go func() {
		difFFT(a[:m], w, wg)
		wg.Done()
	}()
	go func() {
		difFFT(a[m:], w, wg)
		wg.Done()
	}()
}

// BitReverse applies the bit-reversal permutation to a in place.
// len(a) must be a power of 2.
func BitReverse[M ff.Modulus](a []ff.Element[M]) {
	l := uint64(len(a))
	n := uint(bits.UintSize - bits.TrailingZeros64(l))

	for i := uint64(0); i < l; i++ {
		irev := bits.Reverse64(i) >> n
		if irev > i {
			a[i], a[irev] = a[irev], a[i]
		}
	}
}

// scalePowers multiplies a[i] by gⁱ.
func scalePowers[M ff.Modulus](a []ff.Element[M], g ff.Element[M]) {
	pow := g
	for i := 1; i < len(a); i++ {
		a[i].Mul(&a[i], &pow)
		pow.Mul(&pow, &g)
	}
}
