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

	"github.com/consensys/gurvy/bls381/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func genScalar() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		s := new(big.Int).Rand(genParams.Rng, fr.Modulus())
		return gopter.NewGenResult(s, gopter.NoShrinker)
	}
}

func genG1Jac() gopter.Gen {
	return genScalar().Map(func(s *big.Int) G1Jac {
		var p G1Jac
		p.ScalarMultiplication(&g1Gen, s)
		return p
	})
}

func TestG1Generator(t *testing.T) {
	require := require.New(t)

	require.True(g1Gen.IsOnCurve())
	require.True(g1Gen.IsInSubGroup())
	require.False(g1Gen.IsInfinity())

	require.True(g1GenAff.IsOnCurve())
	require.True(g1GenAff.IsInSubGroup())
}

func TestG1Ops(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10

	properties := gopter.NewProperties(parameters)

	properties.Property("p + q == q + p", prop.ForAll(
		func(p, q G1Jac) bool {
			var l, r G1Jac
			l.Set(&p).AddAssign(&q)
			r.Set(&q).AddAssign(&p)
			return l.Equal(&r)
		},
		genG1Jac(), genG1Jac(),
	))

	properties.Property("mixed addition matches Jacobian addition", prop.ForAll(
		func(p, q G1Jac) bool {
			var qAff G1Affine
			qAff.FromJacobian(&q)

			var l, r G1Jac
			l.Set(&p).AddMixed(&qAff)
			r.Set(&p).AddAssign(&q)
			return l.Equal(&r)
		},
		genG1Jac(), genG1Jac(),
	))

	properties.Property("p + p == Double(p)", prop.ForAll(
		func(p G1Jac) bool {
			var l, r G1Jac
			l.Set(&p).AddAssign(&p)
			r.Double(&p)
			return l.Equal(&r)
		},
		genG1Jac(),
	))

	properties.Property("p - p == 0 and p + 0 == p", prop.ForAll(
		func(p G1Jac) bool {
			var l G1Jac
			l.Set(&p).SubAssign(&p)
			if !l.IsInfinity() {
				return false
			}
			l.Set(&p).AddAssign(&g1Infinity)
			return l.Equal(&p)
		},
		genG1Jac(),
	))

	properties.Property("results stay on the curve", prop.ForAll(
		func(p, q G1Jac) bool {
			var l G1Jac
			l.Set(&p).AddAssign(&q)
			return l.IsOnCurve()
		},
		genG1Jac(), genG1Jac(),
	))

	properties.Property("affine/Jacobian conversions round trip", prop.ForAll(
		func(p G1Jac) bool {
			var a G1Affine
			var back G1Jac
			a.FromJacobian(&p)
			back.FromAffine(&a)
			return back.Equal(&p)
		},
		genG1Jac(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG1ScalarMultiplication(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10

	properties := gopter.NewProperties(parameters)

	properties.Property("[a+b]g == [a]g + [b]g", prop.ForAll(
		func(a, b *big.Int) bool {
			var sum big.Int
			sum.Add(a, b)

			var l, r, t G1Jac
			l.ScalarMultiplication(&g1Gen, &sum)
			r.ScalarMultiplication(&g1Gen, a)
			t.ScalarMultiplication(&g1Gen, b)
			r.AddAssign(&t)
			return l.Equal(&r)
		},
		genScalar(), genScalar(),
	))

	properties.Property("[-a]g == -[a]g", prop.ForAll(
		func(a *big.Int) bool {
			neg := new(big.Int).Neg(a)

			var l, r G1Jac
			l.ScalarMultiplication(&g1Gen, neg)
			r.ScalarMultiplication(&g1Gen, a).Neg(&r)
			return l.Equal(&r)
		},
		genScalar(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG1ScalarMultiplicationEdgeCases(t *testing.T) {
	require := require.New(t)

	var p G1Jac
	p.ScalarMultiplication(&g1Gen, big.NewInt(0))
	require.True(p.IsInfinity())

	p.ScalarMultiplication(&g1Gen, fr.Modulus())
	require.True(p.IsInfinity())

	p.ScalarMultiplication(&g1Gen, big.NewInt(1))
	require.True(p.Equal(&g1Gen))
}

func TestG1SubGroupRejection(t *testing.T) {
	require := require.New(t)

	// (0, 2) satisfies y^2 = x^3 + 4 and has order 3
	var p G1Affine
	p.X.SetZero()
	p.Y.SetUint64(2)
	require.True(p.IsOnCurve())
	require.False(p.IsInSubGroup())

	var d, j G1Jac
	j.FromAffine(&p)
	d.Double(&j)
	j.Neg(&j)
	require.True(d.Equal(&j)) // 2p == -p, so 3p == 0
}
