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

// GT is the target group of the pairing, the r-order subgroup of E12
type GT = E12

// lineEvaluation is a sparse E12 element produced by a Miller loop step.
//
// The untwist map sends a twist point (x', y') to (x'/w**2, y'/w**3); the
// chord or tangent through the untwisted points, evaluated at an affine G1
// point and scaled by w**3 (which the final exponentiation kills), is
//
//	l = r0 + r1*v + r2*v*w
type lineEvaluation struct {
	r0, r1, r2 E2
}

func (l *lineEvaluation) mulAssign(z *E12) *E12 {
	// TODO: a dedicated sparse multiplication exploiting the three zero
	// coefficients would save roughly a third of the E2 multiplications
	var a E12
	a.C0.B0.Set(&l.r0)
	a.C0.B1.Set(&l.r1)
	a.C1.B1.Set(&l.r2)
	return z.Mul(z, &a)
}

// doubleStep doubles the affine accumulator r and evaluates the tangent
// line at p
func doubleStep(r *G2Affine, l *lineEvaluation, p *G1Affine) {
	// lambda = 3*rx^2 / (2*ry)
	var lambda, num, den E2
	num.Square(&r.X)
	den.Double(&num)
	num.Add(&num, &den)
	den.Double(&r.Y)
	lambda.Inverse(&den).
		Mul(&lambda, &num)

	l.r0.Mul(&lambda, &r.X).
		Sub(&l.r0, &r.Y)
	l.r1.MulByElement(&lambda, &p.X).
		Neg(&l.r1)
	l.r2.A0.Set(&p.Y)
	l.r2.A1.SetZero()

	// (x3, y3) = (lambda^2 - 2*rx, lambda*(rx - x3) - ry)
	var x3, y3 E2
	x3.Square(&lambda).
		Sub(&x3, &r.X).
		Sub(&x3, &r.X)
	y3.Sub(&r.X, &x3).
		Mul(&y3, &lambda).
		Sub(&y3, &r.Y)
	r.X.Set(&x3)
	r.Y.Set(&y3)
}

// addStep adds q to the affine accumulator r and evaluates the chord
// line at p
func addStep(r *G2Affine, q *G2Affine, l *lineEvaluation, p *G1Affine) {
	// lambda = (qy - ry) / (qx - rx)
	var lambda, num, den E2
	num.Sub(&q.Y, &r.Y)
	den.Sub(&q.X, &r.X)
	lambda.Inverse(&den).
		Mul(&lambda, &num)

	l.r0.Mul(&lambda, &r.X).
		Sub(&l.r0, &r.Y)
	l.r1.MulByElement(&lambda, &p.X).
		Neg(&l.r1)
	l.r2.A0.Set(&p.Y)
	l.r2.A1.SetZero()

	var x3, y3 E2
	x3.Square(&lambda).
		Sub(&x3, &r.X).
		Sub(&x3, &q.X)
	y3.Sub(&r.X, &x3).
		Mul(&y3, &lambda).
		Sub(&y3, &r.Y)
	r.X.Set(&x3)
	r.Y.Set(&y3)
}

// MillerLoop computes the product of the Miller functions
// prod_i f_{x,Q[i]}(P[i]), sharing the accumulator squarings across pairs.
//
// Pairs where either input is the point at infinity contribute 1 and are
// skipped. Returns ErrInvalidPairingInput when the slice lengths differ.
func MillerLoop(P []G1Affine, Q []G2Affine) (GT, error) {
	var f GT
	f.SetOne()

	if len(P) != len(Q) {
		return f, ErrInvalidPairingInput
	}

	p := make([]G1Affine, 0, len(P))
	q := make([]G2Affine, 0, len(Q))
	for k := range P {
		if P[k].IsInfinity() || Q[k].IsInfinity() {
			continue
		}
		p = append(p, P[k])
		q = append(q, Q[k])
	}
	n := len(p)
	if n == 0 {
		return f, nil
	}

	acc := make([]G2Affine, n)
	qNeg := make([]G2Affine, n)
	for k := 0; k < n; k++ {
		acc[k].Set(&q[k])
		qNeg[k].Neg(&q[k])
	}

	var l lineEvaluation
	for i := lenLoop - 2; i >= 0; i-- {
		f.Square(&f)
		for k := 0; k < n; k++ {
			doubleStep(&acc[k], &l, &p[k])
			l.mulAssign(&f)

			switch loopCounter[i] {
			case 1:
				addStep(&acc[k], &q[k], &l, &p[k])
				l.mulAssign(&f)
			case -1:
				addStep(&acc[k], &qNeg[k], &l, &p[k])
				l.mulAssign(&f)
			}
		}
	}

	// the curve seed is negative
	f.Conjugate(&f)

	return f, nil
}

// FinalExponentiation raises z to (p^12 - 1) / r, mapping Miller loop
// outputs to the r-order subgroup GT. Returns ErrDegeneratePairing when
// z == 0.
func FinalExponentiation(z *GT) (GT, error) {
	var result GT
	result.Set(z)

	if z.IsZero() {
		return result, ErrDegeneratePairing
	}

	// easy part: z^((p^6 - 1) * (p^2 + 1));
	// z^(p^6) is the conjugate of z
	var t GT
	t.Conjugate(&result)
	result.Inverse(&result)
	t.Mul(&t, &result)
	result.FrobeniusSquare(&t).
		Mul(&result, &t)

	// hard part: ^((p^4 - p^2 + 1) / r)
	result.Exp(result, &finalExpHard)

	return result, nil
}

// Pair computes prod_i e(P[i], Q[i])
func Pair(P []G1Affine, Q []G2Affine) (GT, error) {
	f, err := MillerLoop(P, Q)
	if err != nil {
		return f, err
	}
	return FinalExponentiation(&f)
}

// PairingCheck returns true if prod_i e(P[i], Q[i]) == 1
func PairingCheck(P []G1Affine, Q []G2Affine) (bool, error) {
	f, err := Pair(P, Q)
	if err != nil {
		return false, err
	}
	return f.IsOne(), nil
}
