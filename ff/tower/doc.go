// Package tower implements extension fields on top of the prime fields
// of package ff.
//
// Two shapes are provided: E2, a quadratic extension with hand-derived
// short formulas, and Ext, a degree-N binomial extension F[x]/(xᴺ-γ)
// whose multiplication uses Karatsuba splittings for the small degrees
// provers use (2, 3, 4) and schoolbook convolution otherwise.
package tower
