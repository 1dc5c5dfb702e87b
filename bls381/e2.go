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

package bls381

import (
	"io"
	"math/big"

	"github.com/consensys/gurvy/bls381/fp"
)

// E2 is a degree-two finite field extension of fp.Element:
// an element is A0 + A1*u where u^2 = -1
type E2 struct {
	A0, A1 fp.Element
}

// SetZero sets z to 0 and returns z
func (z *E2) SetZero() *E2 {
	z.A0.SetZero()
	z.A1.SetZero()
	return z
}

// SetOne sets z to 1 and returns z
func (z *E2) SetOne() *E2 {
	z.A0.SetOne()
	z.A1.SetZero()
	return z
}

// Set z = x and returns z
func (z *E2) Set(x *E2) *E2 {
	*z = *x
	return z
}

// SetString sets z from the decimal or hex representations of its coefficients
func (z *E2) SetString(s0, s1 string) *E2 {
	z.A0.SetString(s0)
	z.A1.SetString(s1)
	return z
}

// SetRandom sets z to a uniform random value, reading entropy from src
func (z *E2) SetRandom(src io.Reader) (*E2, error) {
	if _, err := z.A0.SetRandom(src); err != nil {
		return nil, err
	}
	if _, err := z.A1.SetRandom(src); err != nil {
		return nil, err
	}
	return z, nil
}

// IsZero returns z == 0
func (z *E2) IsZero() bool {
	return z.A0.IsZero() && z.A1.IsZero()
}

// IsOne returns z == 1
func (z *E2) IsOne() bool {
	return z.A0.IsOne() && z.A1.IsZero()
}

// Equal returns z == x
func (z *E2) Equal(x *E2) bool {
	return z.A0.Equal(&x.A0) && z.A1.Equal(&x.A1)
}

// Add sets z = x + y and returns z
func (z *E2) Add(x, y *E2) *E2 {
	z.A0.Add(&x.A0, &y.A0)
	z.A1.Add(&x.A1, &y.A1)
	return z
}

// Sub sets z = x - y and returns z
func (z *E2) Sub(x, y *E2) *E2 {
	z.A0.Sub(&x.A0, &y.A0)
	z.A1.Sub(&x.A1, &y.A1)
	return z
}

// Double sets z = 2x and returns z
func (z *E2) Double(x *E2) *E2 {
	z.A0.Double(&x.A0)
	z.A1.Double(&x.A1)
	return z
}

// Neg sets z = -x and returns z
func (z *E2) Neg(x *E2) *E2 {
	z.A0.Neg(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// Conjugate sets z = A0 - A1*u and returns z.
// This is the p-power Frobenius on E2 since u^p = -u.
func (z *E2) Conjugate(x *E2) *E2 {
	z.A0.Set(&x.A0)
	z.A1.Neg(&x.A1)
	return z
}

// Mul sets z = x * y and returns z
func (z *E2) Mul(x, y *E2) *E2 {
	// Karatsuba, Algorithm 5 from https://eprint.iacr.org/2010/354.pdf
	var t0, t1, sx, sy fp.Element

	t0.Mul(&x.A0, &y.A0)
	t1.Mul(&x.A1, &y.A1)
	sx.Add(&x.A0, &x.A1)
	sy.Add(&y.A0, &y.A1)

	z.A0.Sub(&t0, &t1)
	z.A1.Mul(&sx, &sy).
		Sub(&z.A1, &t0).
		Sub(&z.A1, &t1)

	return z
}

// Square sets z = x * x and returns z
func (z *E2) Square(x *E2) *E2 {
	// complex squaring, Algorithm 22 from https://eprint.iacr.org/2010/354.pdf
	var sum, diff, prod fp.Element

	sum.Add(&x.A0, &x.A1)
	diff.Sub(&x.A0, &x.A1)
	prod.Mul(&x.A0, &x.A1)

	z.A0.Mul(&sum, &diff)
	z.A1.Double(&prod)

	return z
}

// MulByElement sets z = x * y for a base field y and returns z
func (z *E2) MulByElement(x *E2, y *fp.Element) *E2 {
	z.A0.Mul(&x.A0, y)
	z.A1.Mul(&x.A1, y)
	return z
}

// MulByNonResidue sets z = x * (1+u), the cubic non-residue defining E6
func (z *E2) MulByNonResidue(x *E2) *E2 {
	// (1+u)(a0 + a1 u) = (a0 - a1) + (a0 + a1) u
	var t fp.Element
	t.Sub(&x.A0, &x.A1)
	z.A1.Add(&x.A0, &x.A1)
	z.A0.Set(&t)
	return z
}

// Inverse sets z = x^-1 and returns z; if x == 0, z is set to 0
func (z *E2) Inverse(x *E2) *E2 {
	// Algorithm 8 from https://eprint.iacr.org/2010/354.pdf
	var t0, t1 fp.Element

	t0.Square(&x.A0)
	t1.Square(&x.A1)
	t0.Add(&t0, &t1) // norm
	t1.Inverse(&t0)

	z.A0.Mul(&x.A0, &t1)
	z.A1.Mul(&x.A1, &t1).Neg(&z.A1)

	return z
}

// InverseChecked sets z = x^-1; returns ErrNoInverse when x == 0
func (z *E2) InverseChecked(x *E2) error {
	if x.IsZero() {
		return ErrNoInverse
	}
	z.Inverse(x)
	return nil
}

// Exp sets z = x^k and returns z
func (z *E2) Exp(x E2, k *big.Int) *E2 {
	if k.IsUint64() && k.Uint64() == 0 {
		return z.SetOne()
	}

	e := k
	if k.Sign() == -1 {
		x.Inverse(&x)
		e = new(big.Int).Neg(k)
	}

	z.SetOne()
	for i := e.BitLen() - 1; i >= 0; i-- {
		z.Square(z)
		if e.Bit(i) == 1 {
			z.Mul(z, &x)
		}
	}
	return z
}

// Legendre classifies z as zero (0), quadratic residue (1) or non-residue (-1),
// using the norm map down to fp
func (z *E2) Legendre() int {
	var n, t fp.Element
	n.Square(&z.A0)
	t.Square(&z.A1)
	n.Add(&n, &t)
	return n.Legendre()
}

// Sqrt sets z to a square root of x, returns nil if x is not a square.
//
// Algorithm 9 from https://eprint.iacr.org/2012/685.pdf (p ≡ 3 mod 4).
// Of the two roots ±y the canonical one is returned, i.e. the one that is
// not LexicographicallyLargest.
func (z *E2) Sqrt(x *E2) *E2 {
	if x.IsZero() {
		return z.SetZero()
	}

	var a1, alpha, x0, minusOne E2

	minusOne.SetOne().Neg(&minusOne)

	a1.Exp(*x, &pMinus3Over4)
	alpha.Square(&a1).
		Mul(&alpha, x)
	x0.Mul(&a1, x)

	if alpha.Equal(&minusOne) {
		// y = u * x0
		var t fp.Element
		t.Neg(&x0.A1)
		a1.A1.Set(&x0.A0)
		a1.A0.Set(&t)
	} else {
		var b E2
		b.SetOne().
			Add(&b, &alpha).
			Exp(b, &pMinus1Over2)
		a1.Mul(&b, &x0)
	}

	var check E2
	check.Square(&a1)
	if !check.Equal(x) {
		return nil
	}
	if a1.LexicographicallyLargest() {
		a1.Neg(&a1)
	}
	return z.Set(&a1)
}

// LexicographicallyLargest returns true if z is strictly greater than -z:
// the A1 coefficient decides, with ties broken by A0
func (z *E2) LexicographicallyLargest() bool {
	if z.A1.IsZero() {
		return z.A0.LexicographicallyLargest()
	}
	return z.A1.LexicographicallyLargest()
}

func (z *E2) String() string {
	return z.A0.String() + "+" + z.A1.String() + "*u"
}
