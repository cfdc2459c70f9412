// Package polynomial implements dense univariate polynomials over the
// prime fields of package ff.
//
// A polynomial is a coefficient slice, index i holding the coefficient
// of xⁱ. The canonical form never has trailing zero coefficients, and
// the zero polynomial is the empty (or nil) slice; all constructors and
// operations return canonical results.
package polynomial

import (
	"errors"
	"strconv"
	"strings"

	"github.com/zkmath/zkmath/ff"
	"github.com/zkmath/zkmath/fft"
)

var (
	// ErrDivisionByZeroPolynomial is returned by DivRem when the
	// divisor is the zero polynomial.
	ErrDivisionByZeroPolynomial = errors.New("polynomial: division by the zero polynomial")

	// ErrDuplicateEvaluationPoint is returned by Interpolate when two
	// evaluation points coincide.
	ErrDuplicateEvaluationPoint = errors.New("polynomial: duplicate evaluation point")

	// ErrLengthMismatch is returned by Interpolate when the point and
	// value counts differ.
	ErrLengthMismatch = errors.New("polynomial: points and values must have the same length")
)

// direct convolution wins below this operand size; above it the product
// goes through the FFT when a large enough domain exists
const fftMulThreshold = 64

// Polynomial is a univariate polynomial over the field M.
type Polynomial[M ff.Modulus] []ff.Element[M]

// New returns the canonical polynomial with the given coefficients
// (coeffs[i] the coefficient of xⁱ). The input is copied.
func New[M ff.Modulus](coeffs []ff.Element[M]) Polynomial[M] {
	p := make(Polynomial[M], len(coeffs))
	copy(p, coeffs)
	return trim(p)
}

// Random returns a uniformly random polynomial of degree at most
// degree.
func Random[M ff.Modulus](degree int) (Polynomial[M], error) {
	p := make(Polynomial[M], degree+1)
	for i := range p {
		if _, err := p[i].SetRandom(); err != nil {
			return nil, err
		}
	}
	return trim(p), nil
}

// Degree returns the degree of p, -1 for the zero polynomial.
func (p Polynomial[M]) Degree() int {
	return len(p) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial[M]) IsZero() bool {
	return len(p) == 0
}

// Clone returns a copy of p.
func (p Polynomial[M]) Clone() Polynomial[M] {
	c := make(Polynomial[M], len(p))
	copy(c, p)
	return c
}

// Equal reports whether p and q have identical canonical coefficients.
func (p Polynomial[M]) Equal(q Polynomial[M]) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !p[i].Equal(&q[i]) {
			return false
		}
	}
	return true
}

// Add returns p + q.
func (p Polynomial[M]) Add(q Polynomial[M]) Polynomial[M] {
	longer, shorter := p, q
	if len(longer) < len(shorter) {
		longer, shorter = shorter, longer
	}
	res := longer.Clone()
	for i := range shorter {
		res[i].Add(&res[i], &shorter[i])
	}
	return trim(res)
}

// Sub returns p - q.
func (p Polynomial[M]) Sub(q Polynomial[M]) Polynomial[M] {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	res := make(Polynomial[M], n)
	copy(res, p)
	for i := range q {
		res[i].Sub(&res[i], &q[i])
	}
	return trim(res)
}

// Neg returns -p.
func (p Polynomial[M]) Neg() Polynomial[M] {
	res := make(Polynomial[M], len(p))
	for i := range p {
		res[i].Neg(&p[i])
	}
	return res
}

// ScalarMul returns p scaled by c.
func (p Polynomial[M]) ScalarMul(c *ff.Element[M]) Polynomial[M] {
	res := make(Polynomial[M], len(p))
	for i := range p {
		res[i].Mul(&p[i], c)
	}
	return trim(res)
}

// Mul returns the product p·q. Large operands are multiplied by
// transform-pointwise-inverse over a power-of-two domain; small ones
// (or fields without a big enough domain) use direct convolution. The
// crossover is internal and does not affect the result.
func (p Polynomial[M]) Mul(q Polynomial[M]) Polynomial[M] {
	if p.IsZero() || q.IsZero() {
		return nil
	}
	small := len(p)
	if len(q) < small {
		small = len(q)
	}
	if small >= fftMulThreshold {
		if res, err := p.mulFFT(q); err == nil {
			return res
		}
		// no domain large enough in this field
	}
	return p.mulDirect(q)
}

func (p Polynomial[M]) mulDirect(q Polynomial[M]) Polynomial[M] {
	res := make(Polynomial[M], len(p)+len(q)-1)
	var t ff.Element[M]
	for i := range p {
		if p[i].IsZero() {
			continue
		}
		for j := range q {
			t.Mul(&p[i], &q[j])
			res[i+j].Add(&res[i+j], &t)
		}
	}
	return trim(res)
}

func (p Polynomial[M]) mulFFT(q Polynomial[M]) (Polynomial[M], error) {
	n := uint64(1)
	for n < uint64(len(p)+len(q)-1) {
		n <<= 1
	}
	d, err := fft.NewDomain[M](n)
	if err != nil {
		return nil, err
	}
	pe := make([]ff.Element[M], n)
	qe := make([]ff.Element[M], n)
	copy(pe, p)
	copy(qe, q)
	if err := d.FFT(pe); err != nil {
		return nil, err
	}
	if err := d.FFT(qe); err != nil {
		return nil, err
	}
	for i := range pe {
		pe[i].Mul(&pe[i], &qe[i])
	}
	if err := d.FFTInverse(pe); err != nil {
		return nil, err
	}
	return trim(pe), nil
}

// Eval returns p(x) by Horner's rule.
func (p Polynomial[M]) Eval(x *ff.Element[M]) ff.Element[M] {
	var res ff.Element[M]
	if len(p) == 0 {
		return res
	}
	res = p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		res.Mul(&res, x)
		res.Add(&res, &p[i])
	}
	return res
}

// EvalDomain returns the evaluations of p at every point of the domain,
// in canonical order, via the forward FFT. deg(p) must be below the
// domain cardinality; otherwise ErrInvalidDomainSize is returned.
func (p Polynomial[M]) EvalDomain(d *fft.Domain[M], opts ...fft.Option) ([]ff.Element[M], error) {
	if uint64(len(p)) > d.Cardinality {
		return nil, fft.ErrInvalidDomainSize
	}
	evals := make([]ff.Element[M], d.Cardinality)
	copy(evals, p)
	if err := d.FFT(evals, opts...); err != nil {
		return nil, err
	}
	return evals, nil
}

// DivRem returns the quotient and remainder of the euclidean division
// p = quo·q + rem with deg(rem) < deg(q). Fails with
// ErrDivisionByZeroPolynomial when q is the zero polynomial.
func (p Polynomial[M]) DivRem(q Polynomial[M]) (quo, rem Polynomial[M], err error) {
	if q.IsZero() {
		return nil, nil, ErrDivisionByZeroPolynomial
	}
	if len(p) < len(q) {
		return nil, p.Clone(), nil
	}

	var lcInv ff.Element[M]
	if err := lcInv.Inverse(&q[len(q)-1]); err != nil {
		// cannot happen: q is canonical, its leading coefficient is nonzero
		return nil, nil, err
	}

	r := p.Clone()
	quo = make(Polynomial[M], len(p)-len(q)+1)
	var t ff.Element[M]
	for i := len(p) - 1; i >= len(q)-1; i-- {
		if r[i].IsZero() {
			continue
		}
		k := i - (len(q) - 1)
		quo[k].Mul(&r[i], &lcInv)
		for j := range q {
			t.Mul(&quo[k], &q[j])
			r[k+j].Sub(&r[k+j], &t)
		}
	}
	return trim(quo), trim(r[:len(q)-1]), nil
}

// Interpolate returns the unique polynomial of degree < len(points)
// with p(points[i]) == values[i], by Lagrange interpolation. Fails with
// ErrDuplicateEvaluationPoint if two points coincide and
// ErrLengthMismatch if the slice lengths differ.
func Interpolate[M ff.Modulus](points, values []ff.Element[M]) (Polynomial[M], error) {
	if len(points) != len(values) {
		return nil, ErrLengthMismatch
	}
	if len(points) == 0 {
		return nil, nil
	}

	seen := make(map[[ff.Bytes]byte]struct{}, len(points))
	for i := range points {
		k := points[i].Bytes()
		if _, dup := seen[k]; dup {
			return nil, ErrDuplicateEvaluationPoint
		}
		seen[k] = struct{}{}
	}

	// master = Π (x - pointᵢ)
	master := Polynomial[M]{{}, ff.One[M]()}
	master[0].Neg(&points[0])
	var t ff.Element[M]
	for i := 1; i < len(points); i++ {
		t.Neg(&points[i])
		master = master.Mul(Polynomial[M]{t, ff.One[M]()})
	}

	// denomᵢ = Π_{j≠i} (pointᵢ - pointⱼ), all inverted in one batch
	denoms := make([]ff.Element[M], len(points))
	for i := range points {
		denoms[i].SetOne()
		for j := range points {
			if j == i {
				continue
			}
			t.Sub(&points[i], &points[j])
			denoms[i].Mul(&denoms[i], &t)
		}
	}
	denomInvs := ff.BatchInvert(denoms)

	var res Polynomial[M]
	for i := range points {
		// basisᵢ = master / (x - pointᵢ), scaled to 1 at pointᵢ
		t.Neg(&points[i])
		basis, _, err := master.DivRem(Polynomial[M]{t, ff.One[M]()})
		if err != nil {
			return nil, err
		}
		t.Mul(&denomInvs[i], &values[i])
		res = res.Add(basis.ScalarMul(&t))
	}
	return res, nil
}

// String renders p as a human-readable sum, highest degree first.
func (p Polynomial[M]) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	first := true
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].IsZero() {
			continue
		}
		if !first {
			sb.WriteString(" + ")
		}
		first = false
		sb.WriteString(p[i].String())
		if i == 1 {
			sb.WriteString("*x")
		} else if i > 1 {
			sb.WriteString("*x^")
			sb.WriteString(strconv.Itoa(i))
		}
	}
	return sb.String()
}

func trim[M ff.Modulus](p Polynomial[M]) Polynomial[M] {
	n := len(p)
	for n > 0 && p[n-1].IsZero() {
		n--
	}
	if n == 0 {
		return nil
	}
	return p[:n]
}
