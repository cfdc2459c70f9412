package ff

import "math/bits"

// Montgomery multiplication, CIOS variant with the "no carry"
// optimization (Algorithm 2 of "Faster big-integer modular
// multiplication for most moduli", valid while q[3] < 2⁶³-1).

// Mul z = x * y (mod q)
func (z *Element[M]) Mul(x, y *Element[M]) *Element[M] {
	var m M
	q := m.Limbs()
	qInvNeg := m.QInvNeg()

	var t [4]uint64
	var c [3]uint64
	{
		// round 0
		v := x[0]
		c[1], c[0] = bits.Mul64(v, y[0])
		mm := c[0] * qInvNeg
		c[2] = madd0(mm, q[0], c[0])
		c[1], c[0] = madd1(v, y[1], c[1])
		c[2], t[0] = madd2(mm, q[1], c[2], c[0])
		c[1], c[0] = madd1(v, y[2], c[1])
		c[2], t[1] = madd2(mm, q[2], c[2], c[0])
		c[1], c[0] = madd1(v, y[3], c[1])
		t[3], t[2] = madd3(mm, q[3], c[0], c[2], c[1])
	}
	{
		// round 1
		v := x[1]
		c[1], c[0] = madd1(v, y[0], t[0])
		mm := c[0] * qInvNeg
		c[2] = madd0(mm, q[0], c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], t[0] = madd2(mm, q[1], c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], t[1] = madd2(mm, q[2], c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		t[3], t[2] = madd3(mm, q[3], c[0], c[2], c[1])
	}
	{
		// round 2
		v := x[2]
		c[1], c[0] = madd1(v, y[0], t[0])
		mm := c[0] * qInvNeg
		c[2] = madd0(mm, q[0], c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], t[0] = madd2(mm, q[1], c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], t[1] = madd2(mm, q[2], c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		t[3], t[2] = madd3(mm, q[3], c[0], c[2], c[1])
	}
	{
		// round 3
		v := x[3]
		c[1], c[0] = madd1(v, y[0], t[0])
		mm := c[0] * qInvNeg
		c[2] = madd0(mm, q[0], c[0])
		c[1], c[0] = madd2(v, y[1], c[1], t[1])
		c[2], z[0] = madd2(mm, q[1], c[2], c[0])
		c[1], c[0] = madd2(v, y[2], c[1], t[2])
		c[2], z[1] = madd2(mm, q[2], c[2], c[0])
		c[1], c[0] = madd2(v, y[3], c[1], t[3])
		z[3], z[2] = madd3(mm, q[3], c[0], c[2], c[1])
	}
	z.reduceOnce()
	return z
}

// Square z = x * x (mod q)
func (z *Element[M]) Square(x *Element[M]) *Element[M] {
	return z.Mul(x, x)
}

// toMont converts z to Montgomery form (z ← z·R mod q).
func (z *Element[M]) toMont() *Element[M] {
	var m M
	r2 := Element[M](m.RSquared())
	return z.Mul(z, &r2)
}

// fromMont converts z out of Montgomery form (z ← z·R⁻¹ mod q).
func (z *Element[M]) fromMont() *Element[M] {
	var m M
	q := m.Limbs()
	qInvNeg := m.QInvNeg()
	for i := 0; i < 4; i++ {
		mm := z[0] * qInvNeg
		c := madd0(mm, q[0], z[0])
		c, z[0] = madd2(mm, q[1], z[1], c)
		c, z[1] = madd2(mm, q[2], z[2], c)
		c, z[2] = madd2(mm, q[3], z[3], c)
		z[3] = c
	}
	z.reduceOnce()
	return z
}

// reduceOnce subtracts q if z ≥ q. Inputs are always below 2q here, so
// a single conditional subtraction restores full reduction.
func (z *Element[M]) reduceOnce() {
	var m M
	q := m.Limbs()
	if !z.smallerThanModulus() {
		var b uint64
		z[0], b = bits.Sub64(z[0], q[0], 0)
		z[1], b = bits.Sub64(z[1], q[1], b)
		z[2], b = bits.Sub64(z[2], q[2], b)
		z[3], _ = bits.Sub64(z[3], q[3], b)
	}
}

// smallerThanModulus reports whether z < q.
func (z *Element[M]) smallerThanModulus() bool {
	var m M
	q := m.Limbs()
	return (z[3] < q[3] || (z[3] == q[3] && (z[2] < q[2] || (z[2] == q[2] && (z[1] < q[1] || (z[1] == q[1] && z[0] < q[0]))))))
}
