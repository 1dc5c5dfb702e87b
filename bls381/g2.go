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
	"math/big"

	"github.com/consensys/gurvy/bls381/fr"
)

// G2Affine is a point on the twist y**2 = x**3 + 4*(1+u) in affine
// coordinates; the point at infinity is (0, 0)
type G2Affine struct {
	X, Y E2
}

// G2Jac is a point on the twist in Jacobian coordinates; the point at
// infinity has Z == 0
type G2Jac struct {
	X, Y, Z E2
}

// -------------------------------------------------------------------------------------------------
// affine

// Set p = a and returns p
func (p *G2Affine) Set(a *G2Affine) *G2Affine {
	p.X, p.Y = a.X, a.Y
	return p
}

// Neg sets p = -a and returns p
func (p *G2Affine) Neg(a *G2Affine) *G2Affine {
	p.X = a.X
	p.Y.Neg(&a.Y)
	return p
}

// Equal returns p == a
func (p *G2Affine) Equal(a *G2Affine) bool {
	return p.X.Equal(&a.X) && p.Y.Equal(&a.Y)
}

// IsInfinity returns p == (0, 0), the affine encoding of the identity
func (p *G2Affine) IsInfinity() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// FromJacobian normalizes a point in Jacobian coordinates, at the cost of
// one field inversion
func (p *G2Affine) FromJacobian(q *G2Jac) *G2Affine {
	if q.Z.IsZero() {
		p.X.SetZero()
		p.Y.SetZero()
		return p
	}

	var a, b E2
	a.Inverse(&q.Z)
	b.Square(&a)
	p.X.Mul(&q.X, &b)
	p.Y.Mul(&q.Y, &b).Mul(&p.Y, &a)

	return p
}

// IsOnCurve returns true if p satisfies the twist equation, the point at
// infinity included
func (p *G2Affine) IsOnCurve() bool {
	if p.IsInfinity() {
		return true
	}
	var left, right E2
	left.Square(&p.Y)
	right.Square(&p.X).
		Mul(&right, &p.X).
		Add(&right, &bTwistCurveCoeff)
	return left.Equal(&right)
}

// IsInSubGroup returns true if p is in the r-order subgroup, i.e. [r]p == 0
func (p *G2Affine) IsInSubGroup() bool {
	var q G2Jac
	q.FromAffine(p)
	return q.IsInSubGroup()
}

// ScalarMultiplication sets p = [s]a and returns p
func (p *G2Affine) ScalarMultiplication(a *G2Affine, s *big.Int) *G2Affine {
	var q, aj G2Jac
	aj.FromAffine(a)
	q.ScalarMultiplication(&aj, s)
	return p.FromJacobian(&q)
}

// Add sets p = a + b and returns p
func (p *G2Affine) Add(a, b *G2Affine) *G2Affine {
	var q G2Jac
	q.FromAffine(a)
	q.AddMixed(b)
	return p.FromJacobian(&q)
}

func (p *G2Affine) String() string {
	if p.IsInfinity() {
		return "O"
	}
	return "E'([" + p.X.String() + "," + p.Y.String() + "])"
}

// -------------------------------------------------------------------------------------------------
// Jacobian

// Set p = a and returns p
func (p *G2Jac) Set(a *G2Jac) *G2Jac {
	p.X, p.Y, p.Z = a.X, a.Y, a.Z
	return p
}

// Neg sets p = -a and returns p
func (p *G2Jac) Neg(a *G2Jac) *G2Jac {
	p.Set(a)
	p.Y.Neg(&a.Y)
	return p
}

// SubAssign sets p = p - a and returns p
func (p *G2Jac) SubAssign(a *G2Jac) *G2Jac {
	var tmp G2Jac
	tmp.Set(a)
	tmp.Y.Neg(&tmp.Y)
	return p.AddAssign(&tmp)
}

// IsInfinity returns Z == 0
func (p *G2Jac) IsInfinity() bool {
	return p.Z.IsZero()
}

// Equal compares p and a up to the Jacobian equivalence
func (p *G2Jac) Equal(a *G2Jac) bool {
	if p.Z.IsZero() || a.Z.IsZero() {
		return p.Z.IsZero() && a.Z.IsZero()
	}

	var pZZ, aZZ, l, r E2
	pZZ.Square(&p.Z)
	aZZ.Square(&a.Z)
	l.Mul(&p.X, &aZZ)
	r.Mul(&a.X, &pZZ)
	if !l.Equal(&r) {
		return false
	}
	pZZ.Mul(&pZZ, &p.Z)
	aZZ.Mul(&aZZ, &a.Z)
	l.Mul(&p.Y, &aZZ)
	r.Mul(&a.Y, &pZZ)
	return l.Equal(&r)
}

// FromAffine lifts a point in affine coordinates, mapping (0, 0) to the
// Jacobian point at infinity
func (p *G2Jac) FromAffine(a *G2Affine) *G2Jac {
	if a.IsInfinity() {
		p.Set(&g2Infinity)
		return p
	}
	p.X = a.X
	p.Y = a.Y
	p.Z.SetOne()
	return p
}

// AddAssign sets p = p + a and returns p
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#addition-add-2007-bl
func (p *G2Jac) AddAssign(a *G2Jac) *G2Jac {
	if a.Z.IsZero() {
		return p
	}
	if p.Z.IsZero() {
		return p.Set(a)
	}

	var Z1Z1, Z2Z2, U1, U2, S1, S2, H, I, J, r, V E2
	Z1Z1.Square(&a.Z)
	Z2Z2.Square(&p.Z)
	U1.Mul(&a.X, &Z2Z2)
	U2.Mul(&p.X, &Z1Z1)
	S1.Mul(&a.Y, &p.Z).
		Mul(&S1, &Z2Z2)
	S2.Mul(&p.Y, &a.Z).
		Mul(&S2, &Z1Z1)

	// p == a, the formula degenerates
	if U1.Equal(&U2) && S1.Equal(&S2) {
		return p.DoubleAssign()
	}

	H.Sub(&U2, &U1)
	I.Double(&H).
		Square(&I)
	J.Mul(&H, &I)
	r.Sub(&S2, &S1).Double(&r)
	V.Mul(&U1, &I)
	p.X.Square(&r).
		Sub(&p.X, &J).
		Sub(&p.X, &V).
		Sub(&p.X, &V)
	p.Y.Sub(&V, &p.X).
		Mul(&p.Y, &r)
	S1.Mul(&S1, &J).Double(&S1)
	p.Y.Sub(&p.Y, &S1)
	p.Z.Add(&p.Z, &a.Z)
	p.Z.Square(&p.Z).
		Sub(&p.Z, &Z1Z1).
		Sub(&p.Z, &Z2Z2).
		Mul(&p.Z, &H)

	return p
}

// AddMixed sets p = p + a for an affine a and returns p
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#addition-madd-2007-bl
func (p *G2Jac) AddMixed(a *G2Affine) *G2Jac {
	if a.IsInfinity() {
		return p
	}
	if p.Z.IsZero() {
		return p.FromAffine(a)
	}

	var Z1Z1, U2, S2, H, HH, I, J, r, V E2
	Z1Z1.Square(&p.Z)
	U2.Mul(&a.X, &Z1Z1)
	S2.Mul(&a.Y, &p.Z).
		Mul(&S2, &Z1Z1)

	// p == a, the formula degenerates
	if U2.Equal(&p.X) && S2.Equal(&p.Y) {
		return p.DoubleAssign()
	}

	H.Sub(&U2, &p.X)
	HH.Square(&H)
	I.Double(&HH).Double(&I)
	J.Mul(&H, &I)
	r.Sub(&S2, &p.Y).Double(&r)
	V.Mul(&p.X, &I)
	p.X.Square(&r).
		Sub(&p.X, &J).
		Sub(&p.X, &V).
		Sub(&p.X, &V)
	J.Mul(&J, &p.Y).Double(&J)
	p.Y.Sub(&V, &p.X).
		Mul(&p.Y, &r).
		Sub(&p.Y, &J)
	p.Z.Add(&p.Z, &H).
		Square(&p.Z).
		Sub(&p.Z, &Z1Z1).
		Sub(&p.Z, &HH)

	return p
}

// DoubleAssign sets p = 2p and returns p
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#doubling-dbl-2007-bl
func (p *G2Jac) DoubleAssign() *G2Jac {
	var XX, YY, YYYY, ZZ, S, M, T E2

	XX.Square(&p.X)
	YY.Square(&p.Y)
	YYYY.Square(&YY)
	ZZ.Square(&p.Z)
	S.Add(&p.X, &YY).
		Square(&S).
		Sub(&S, &XX).
		Sub(&S, &YYYY).
		Double(&S)
	M.Double(&XX).Add(&M, &XX)
	p.Z.Add(&p.Z, &p.Y).
		Square(&p.Z).
		Sub(&p.Z, &YY).
		Sub(&p.Z, &ZZ)
	T.Square(&M).
		Sub(&T, &S).
		Sub(&T, &S)
	p.X.Set(&T)
	p.Y.Sub(&S, &T).
		Mul(&p.Y, &M)
	YYYY.Double(&YYYY).
		Double(&YYYY).
		Double(&YYYY)
	p.Y.Sub(&p.Y, &YYYY)

	return p
}

// Double sets p = 2a and returns p
func (p *G2Jac) Double(a *G2Jac) *G2Jac {
	p.Set(a)
	return p.DoubleAssign()
}

// ScalarMultiplication sets p = [s]a (double-and-add) and returns p
func (p *G2Jac) ScalarMultiplication(a *G2Jac, s *big.Int) *G2Jac {
	var res G2Jac
	res.Set(&g2Infinity)

	base := *a
	e := s
	if s.Sign() == -1 {
		base.Neg(a)
		e = new(big.Int).Neg(s)
	}

	for i := e.BitLen() - 1; i >= 0; i-- {
		res.DoubleAssign()
		if e.Bit(i) == 1 {
			res.AddAssign(&base)
		}
	}

	return p.Set(&res)
}

// IsOnCurve returns true if p satisfies Y**2 == X**3 + 4*(1+u)*Z**6
func (p *G2Jac) IsOnCurve() bool {
	if p.Z.IsZero() {
		return true
	}
	var left, right, tmp E2
	left.Square(&p.Y)
	right.Square(&p.X).
		Mul(&right, &p.X)
	tmp.Square(&p.Z).
		Mul(&tmp, &p.Z).
		Square(&tmp).
		Mul(&tmp, &bTwistCurveCoeff)
	right.Add(&right, &tmp)
	return left.Equal(&right)
}

// IsInSubGroup returns true if [r]p == 0
func (p *G2Jac) IsInSubGroup() bool {
	var res G2Jac
	res.ScalarMultiplication(p, fr.Modulus())
	return res.IsInfinity()
}

func (p *G2Jac) String() string {
	var a G2Affine
	a.FromJacobian(p)
	return a.String()
}
