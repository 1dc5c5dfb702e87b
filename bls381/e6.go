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

// E6 is a degree-three finite field extension of E2:
// an element is B0 + B1*v + B2*v**2 where v**3 = 1+u
type E6 struct {
	B0, B1, B2 E2
}

// SetZero sets z to 0 and returns z
func (z *E6) SetZero() *E6 {
	z.B0.SetZero()
	z.B1.SetZero()
	z.B2.SetZero()
	return z
}

// SetOne sets z to 1 and returns z
func (z *E6) SetOne() *E6 {
	z.B0.SetOne()
	z.B1.SetZero()
	z.B2.SetZero()
	return z
}

// Set z = x and returns z
func (z *E6) Set(x *E6) *E6 {
	*z = *x
	return z
}

// SetRandom sets z to a uniform random value, reading entropy from src
func (z *E6) SetRandom(src io.Reader) (*E6, error) {
	if _, err := z.B0.SetRandom(src); err != nil {
		return nil, err
	}
	if _, err := z.B1.SetRandom(src); err != nil {
		return nil, err
	}
	if _, err := z.B2.SetRandom(src); err != nil {
		return nil, err
	}
	return z, nil
}

// IsZero returns z == 0
func (z *E6) IsZero() bool {
	return z.B0.IsZero() && z.B1.IsZero() && z.B2.IsZero()
}

// IsOne returns z == 1
func (z *E6) IsOne() bool {
	return z.B0.IsOne() && z.B1.IsZero() && z.B2.IsZero()
}

// Equal returns z == x
func (z *E6) Equal(x *E6) bool {
	return z.B0.Equal(&x.B0) && z.B1.Equal(&x.B1) && z.B2.Equal(&x.B2)
}

// Add sets z = x + y and returns z
func (z *E6) Add(x, y *E6) *E6 {
	z.B0.Add(&x.B0, &y.B0)
	z.B1.Add(&x.B1, &y.B1)
	z.B2.Add(&x.B2, &y.B2)
	return z
}

// Sub sets z = x - y and returns z
func (z *E6) Sub(x, y *E6) *E6 {
	z.B0.Sub(&x.B0, &y.B0)
	z.B1.Sub(&x.B1, &y.B1)
	z.B2.Sub(&x.B2, &y.B2)
	return z
}

// Double sets z = 2x and returns z
func (z *E6) Double(x *E6) *E6 {
	z.B0.Double(&x.B0)
	z.B1.Double(&x.B1)
	z.B2.Double(&x.B2)
	return z
}

// Neg sets z = -x and returns z
func (z *E6) Neg(x *E6) *E6 {
	z.B0.Neg(&x.B0)
	z.B1.Neg(&x.B1)
	z.B2.Neg(&x.B2)
	return z
}

// Mul sets z = x * y and returns z
func (z *E6) Mul(x, y *E6) *E6 {
	// Karatsuba, Algorithm 13 from https://eprint.iacr.org/2010/354.pdf
	var t0, t1, t2, c0, c1, c2, tmp E2

	t0.Mul(&x.B0, &y.B0)
	t1.Mul(&x.B1, &y.B1)
	t2.Mul(&x.B2, &y.B2)

	c0.Add(&x.B1, &x.B2)
	tmp.Add(&y.B1, &y.B2)
	c0.Mul(&c0, &tmp).
		Sub(&c0, &t1).
		Sub(&c0, &t2).
		MulByNonResidue(&c0).
		Add(&c0, &t0)

	c1.Add(&x.B0, &x.B1)
	tmp.Add(&y.B0, &y.B1)
	c1.Mul(&c1, &tmp).
		Sub(&c1, &t0).
		Sub(&c1, &t1)
	tmp.MulByNonResidue(&t2)
	c1.Add(&c1, &tmp)

	c2.Add(&x.B0, &x.B2)
	tmp.Add(&y.B0, &y.B2)
	c2.Mul(&c2, &tmp).
		Sub(&c2, &t0).
		Sub(&c2, &t2).
		Add(&c2, &t1)

	z.B0.Set(&c0)
	z.B1.Set(&c1)
	z.B2.Set(&c2)

	return z
}

// Square sets z = x * x and returns z
func (z *E6) Square(x *E6) *E6 {
	// CH-SQR2, Algorithm 16 from https://eprint.iacr.org/2010/354.pdf
	var s0, s1, s2, s3, s4, c0, c1, c2 E2

	s0.Square(&x.B0)
	s1.Mul(&x.B0, &x.B1).Double(&s1)
	s2.Sub(&x.B0, &x.B1).
		Add(&s2, &x.B2).
		Square(&s2)
	s3.Mul(&x.B1, &x.B2).Double(&s3)
	s4.Square(&x.B2)

	c0.MulByNonResidue(&s3).Add(&c0, &s0)
	c1.MulByNonResidue(&s4).Add(&c1, &s1)
	c2.Add(&s1, &s2).
		Add(&c2, &s3).
		Sub(&c2, &s0).
		Sub(&c2, &s4)

	z.B0.Set(&c0)
	z.B1.Set(&c1)
	z.B2.Set(&c2)

	return z
}

// MulByNonResidue sets z = x * v, the quadratic non-residue defining E12
func (z *E6) MulByNonResidue(x *E6) *E6 {
	// v * (b0 + b1 v + b2 v^2) = (1+u) b2 + b0 v + b1 v^2
	var t E2
	t.MulByNonResidue(&x.B2)
	z.B2.Set(&x.B1)
	z.B1.Set(&x.B0)
	z.B0.Set(&t)
	return z
}

// MulByE2 sets z = x * y for an E2 coefficient y and returns z
func (z *E6) MulByE2(x *E6, y *E2) *E6 {
	z.B0.Mul(&x.B0, y)
	z.B1.Mul(&x.B1, y)
	z.B2.Mul(&x.B2, y)
	return z
}

// Inverse sets z = x^-1 and returns z; if x == 0, z is set to 0
func (z *E6) Inverse(x *E6) *E6 {
	// Algorithm 17 from https://eprint.iacr.org/2010/354.pdf
	var t0, t1, t2, t3, t4, t5, t6, c0, c1, c2, tmp E2

	t0.Square(&x.B0)
	t1.Square(&x.B1)
	t2.Square(&x.B2)
	t3.Mul(&x.B0, &x.B1)
	t4.Mul(&x.B0, &x.B2)
	t5.Mul(&x.B1, &x.B2)

	c0.MulByNonResidue(&t5).
		Neg(&c0).
		Add(&c0, &t0)
	c1.MulByNonResidue(&t2).
		Sub(&c1, &t3)
	c2.Sub(&t1, &t4)

	t6.Mul(&x.B2, &c1)
	tmp.Mul(&x.B1, &c2)
	t6.Add(&t6, &tmp).
		MulByNonResidue(&t6)
	tmp.Mul(&x.B0, &c0)
	t6.Add(&t6, &tmp).
		Inverse(&t6)

	z.B0.Mul(&c0, &t6)
	z.B1.Mul(&c1, &t6)
	z.B2.Mul(&c2, &t6)

	return z
}

// InverseChecked sets z = x^-1; returns ErrNoInverse when x == 0
func (z *E6) InverseChecked(x *E6) error {
	if x.IsZero() {
		return ErrNoInverse
	}
	z.Inverse(x)
	return nil
}

// Exp sets z = x^k and returns z
func (z *E6) Exp(x E6, k *big.Int) *E6 {
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

func (z *E6) String() string {
	return "(" + z.B0.String() + ")+(" + z.B1.String() + ")*v+(" + z.B2.String() + ")*v**2"
}
