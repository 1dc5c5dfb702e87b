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
	"testing"

	"github.com/consensys/gurvy/bls381/fp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func genE2() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var a E2
		b := new(big.Int).Rand(genParams.Rng, fp.Modulus())
		a.A0.SetBigInt(b)
		b.Rand(genParams.Rng, fp.Modulus())
		a.A1.SetBigInt(b)
		return gopter.NewGenResult(a, gopter.NoShrinker)
	}
}

func TestE2RingLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("a * b == b * a", prop.ForAll(
		func(a, b E2) bool {
			var l, r E2
			l.Mul(&a, &b)
			r.Mul(&b, &a)
			return l.Equal(&r)
		},
		genE2(), genE2(),
	))

	properties.Property("(a * b) * c == a * (b * c)", prop.ForAll(
		func(a, b, c E2) bool {
			var l, r E2
			l.Mul(&a, &b).Mul(&l, &c)
			r.Mul(&b, &c).Mul(&r, &a)
			return l.Equal(&r)
		},
		genE2(), genE2(), genE2(),
	))

	properties.Property("a * (b + c) == a*b + a*c", prop.ForAll(
		func(a, b, c E2) bool {
			var l, r, t E2
			l.Add(&b, &c).Mul(&l, &a)
			r.Mul(&a, &b)
			t.Mul(&a, &c)
			r.Add(&r, &t)
			return l.Equal(&r)
		},
		genE2(), genE2(), genE2(),
	))

	properties.Property("Square(a) == a * a and Double(a) == a + a", prop.ForAll(
		func(a E2) bool {
			var l, r E2
			l.Square(&a)
			r.Mul(&a, &a)
			if !l.Equal(&r) {
				return false
			}
			l.Double(&a)
			r.Add(&a, &a)
			return l.Equal(&r)
		},
		genE2(),
	))

	properties.Property("a * a^-1 == 1 for a != 0", prop.ForAll(
		func(a E2) bool {
			if a.IsZero() {
				return true
			}
			var inv, l E2
			inv.Inverse(&a)
			l.Mul(&a, &inv)
			return l.IsOne()
		},
		genE2(),
	))

	properties.Property("MulByNonResidue(a) == a * (1+u)", prop.ForAll(
		func(a E2) bool {
			var xi, l, r E2
			xi.A0.SetOne()
			xi.A1.SetOne()
			l.MulByNonResidue(&a)
			r.Mul(&a, &xi)
			return l.Equal(&r)
		},
		genE2(),
	))

	properties.Property("Conjugate(a) * a is in the base field", prop.ForAll(
		func(a E2) bool {
			var n E2
			n.Conjugate(&a).Mul(&n, &a)
			return n.A1.IsZero()
		},
		genE2(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestE2Sqrt(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	properties.Property("Sqrt(a^2)^2 == a^2, canonical root", prop.ForAll(
		func(a E2) bool {
			var sq, root, check E2
			sq.Square(&a)
			if root.Sqrt(&sq) == nil {
				return false
			}
			if root.LexicographicallyLargest() && !root.IsZero() {
				return false
			}
			check.Square(&root)
			return check.Equal(&sq)
		},
		genE2(),
	))

	properties.Property("Legendre and Sqrt agree", prop.ForAll(
		func(a E2) bool {
			var root E2
			ok := root.Sqrt(&a) != nil
			switch a.Legendre() {
			case 1, 0:
				return ok
			default:
				return !ok
			}
		},
		genE2(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestE2SqrtNonResidue(t *testing.T) {
	require := require.New(t)

	// 4*(1+u), the twist coefficient, is a non-residue in E2: the twist
	// x-coordinate 0 would otherwise lift to a point
	var root E2
	require.Nil(root.Sqrt(&bTwistCurveCoeff))
	require.Equal(-1, bTwistCurveCoeff.Legendre())
}

func TestE2InverseZero(t *testing.T) {
	require := require.New(t)

	var zero, z E2
	z.SetOne()
	z.Inverse(&zero)
	require.True(z.IsZero())
	require.ErrorIs(z.InverseChecked(&zero), ErrNoInverse)
}
