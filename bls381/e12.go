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
)

// E12 is a degree-two finite field extension of E6:
// an element is C0 + C1*w where w**2 = v
type E12 struct {
	C0, C1 E6
}

// SetZero sets z to 0 and returns z
func (z *E12) SetZero() *E12 {
	z.C0.SetZero()
	z.C1.SetZero()
	return z
}

// SetOne sets z to 1 and returns z
func (z *E12) SetOne() *E12 {
	z.C0.SetOne()
	z.C1.SetZero()
	return z
}

// Set z = x and returns z
func (z *E12) Set(x *E12) *E12 {
	*z = *x
	return z
}

// SetRandom sets z to a uniform random value, reading entropy from src
func (z *E12) SetRandom(src io.Reader) (*E12, error) {
	if _, err := z.C0.SetRandom(src); err != nil {
		return nil, err
	}
	if _, err := z.C1.SetRandom(src); err != nil {
		return nil, err
	}
	return z, nil
}

// IsZero returns z == 0
func (z *E12) IsZero() bool {
	return z.C0.IsZero() && z.C1.IsZero()
}

// IsOne returns z == 1
func (z *E12) IsOne() bool {
	return z.C0.IsOne() && z.C1.IsZero()
}

// Equal returns z == x
func (z *E12) Equal(x *E12) bool {
	return z.C0.Equal(&x.C0) && z.C1.Equal(&x.C1)
}

// Add sets z = x + y and returns z
func (z *E12) Add(x, y *E12) *E12 {
	z.C0.Add(&x.C0, &y.C0)
	z.C1.Add(&x.C1, &y.C1)
	return z
}

// Sub sets z = x - y and returns z
func (z *E12) Sub(x, y *E12) *E12 {
	z.C0.Sub(&x.C0, &y.C0)
	z.C1.Sub(&x.C1, &y.C1)
	return z
}

// Double sets z = 2x and returns z
func (z *E12) Double(x *E12) *E12 {
	z.C0.Double(&x.C0)
	z.C1.Double(&x.C1)
	return z
}

// Neg sets z = -x and returns z
func (z *E12) Neg(x *E12) *E12 {
	z.C0.Neg(&x.C0)
	z.C1.Neg(&x.C1)
	return z
}

// Conjugate sets z = C0 - C1*w and returns z.
// On the cyclotomic subgroup this is the inverse.
func (z *E12) Conjugate(x *E12) *E12 {
	z.C0.Set(&x.C0)
	z.C1.Neg(&x.C1)
	return z
}

// Mul sets z = x * y and returns z
func (z *E12) Mul(x, y *E12) *E12 {
	// Karatsuba, Algorithm 20 from https://eprint.iacr.org/2010/354.pdf
	var t0, t1, sx, sy E6

	t0.Mul(&x.C0, &y.C0)
	t1.Mul(&x.C1, &y.C1)
	sx.Add(&x.C0, &x.C1)
	sy.Add(&y.C0, &y.C1)

	z.C1.Mul(&sx, &sy).
		Sub(&z.C1, &t0).
		Sub(&z.C1, &t1)
	z.C0.MulByNonResidue(&t1).
		Add(&z.C0, &t0)

	return z
}

// Square sets z = x * x and returns z
func (z *E12) Square(x *E12) *E12 {
	// complex squaring over E6
	var t0, t1 E6

	t0.Square(&x.C0)
	t1.Square(&x.C1)
	z.C1.Mul(&x.C0, &x.C1).Double(&z.C1)
	z.C0.MulByNonResidue(&t1).
		Add(&z.C0, &t0)

	return z
}

// Inverse sets z = x^-1 and returns z; if x == 0, z is set to 0
func (z *E12) Inverse(x *E12) *E12 {
	// Algorithm 23 from https://eprint.iacr.org/2010/354.pdf
	var t0, t1 E6

	t0.Square(&x.C0)
	t1.Square(&x.C1).
		MulByNonResidue(&t1)
	t0.Sub(&t0, &t1) // norm
	t1.Inverse(&t0)

	z.C0.Mul(&x.C0, &t1)
	z.C1.Mul(&x.C1, &t1).Neg(&z.C1)

	return z
}

// InverseChecked sets z = x^-1; returns ErrNoInverse when x == 0
func (z *E12) InverseChecked(x *E12) error {
	if x.IsZero() {
		return ErrNoInverse
	}
	z.Inverse(x)
	return nil
}

// Exp sets z = x^k and returns z
func (z *E12) Exp(x E12, k *big.Int) *E12 {
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

// Frobenius sets z = x^p and returns z.
//
// Written on the basis (1, w, w^2, w^3, w^4, w^5) over E2, the coefficient
// of w^k maps to conj(a_k) * gamma1^k with gamma1 = (1+u)^((p-1)/6).
func (z *E12) Frobenius(x *E12) *E12 {
	var t [6]E2

	t[0].Conjugate(&x.C0.B0)
	t[1].Conjugate(&x.C1.B0).Mul(&t[1], &frobCoeffs[0])
	t[2].Conjugate(&x.C0.B1).Mul(&t[2], &frobCoeffs[1])
	t[3].Conjugate(&x.C1.B1).Mul(&t[3], &frobCoeffs[2])
	t[4].Conjugate(&x.C0.B2).Mul(&t[4], &frobCoeffs[3])
	t[5].Conjugate(&x.C1.B2).Mul(&t[5], &frobCoeffs[4])

	z.C0.B0.Set(&t[0])
	z.C0.B1.Set(&t[2])
	z.C0.B2.Set(&t[4])
	z.C1.B0.Set(&t[1])
	z.C1.B1.Set(&t[3])
	z.C1.B2.Set(&t[5])

	return z
}

// FrobeniusSquare sets z = x^(p^2) and returns z
func (z *E12) FrobeniusSquare(x *E12) *E12 {
	z.Frobenius(x)
	return z.Frobenius(z)
}

func (z *E12) String() string {
	return "(" + z.C0.String() + ")+(" + z.C1.String() + ")*w"
}
