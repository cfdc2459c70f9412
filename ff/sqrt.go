package ff

// Legendre returns the Legendre symbol of z: 1 if z is a nonzero
// square, -1 if it is a non-residue, 0 if z is zero.
func (z *Element[M]) Legendre() int {
	if z.IsZero() {
		return 0
	}
	var l Element[M]
	l.expUnchecked(*z, constants[M]().legendre)
	if l.IsOne() {
		return 1
	}
	return -1
}

// Sqrt sets z to a square root of x and fails with ErrNoSquareRoot if x
// is not a quadratic residue. Which of the two roots is returned is
// unspecified.
//
// When q ≡ 3 mod 4 the root is x^((q+1)/4); otherwise the
// Tonelli-Shanks procedure walks the 2-Sylow subgroup generated by the
// field's two-adic root.
func (z *Element[M]) Sqrt(x *Element[M]) error {
	if x.IsZero() {
		z.SetZero()
		return nil
	}
	c := constants[M]()
	if c.isThreeMod4 {
		var candidate, square Element[M]
		candidate.expUnchecked(*x, c.sqrtExp)
		square.Square(&candidate)
		if !square.Equal(x) {
			return ErrNoSquareRoot
		}
		z.Set(&candidate)
		return nil
	}

	if x.Legendre() != 1 {
		return ErrNoSquareRoot
	}

	var m M
	// candidate = x^((t+1)/2), b = x^t, g generates the 2-Sylow subgroup
	var candidate, b, g, t Element[M]
	candidate.expUnchecked(*x, c.sqrtExp)
	b.expUnchecked(*x, c.trailing)
	g = Element[M](m.TwoAdicRoot())
	r := m.TwoAdicity()

	for !b.IsOne() {
		// least e with b^(2^e) == 1
		var e uint32
		t.Set(&b)
		for !t.IsOne() {
			t.Square(&t)
			e++
		}
		// g ← g^(2^(r-e-1)); candidate ← candidate·g; b ← b·g²
		for i := uint32(0); i < r-e-1; i++ {
			g.Square(&g)
		}
		candidate.Mul(&candidate, &g)
		g.Square(&g)
		b.Mul(&b, &g)
		r = e
	}
	z.Set(&candidate)
	return nil
}
