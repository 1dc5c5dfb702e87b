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

func pairOne(t *testing.T, p *G1Affine, q *G2Affine) GT {
	t.Helper()
	res, err := Pair([]G1Affine{*p}, []G2Affine{*q})
	require.NoError(t, err)
	return res
}

func TestPairingNonDegeneracy(t *testing.T) {
	require := require.New(t)

	e := pairOne(t, &g1GenAff, &g2GenAff)
	require.False(e.IsOne())
	require.False(e.IsZero())

	// e^r == 1: the output lives in the r-order subgroup
	var er GT
	er.Exp(e, fr.Modulus())
	require.True(er.IsOne())
}

func TestPairingInfinity(t *testing.T) {
	require := require.New(t)

	var inf1 G1Affine
	var inf2 G2Affine

	e, err := Pair([]G1Affine{inf1}, []G2Affine{g2GenAff})
	require.NoError(err)
	require.True(e.IsOne())

	e, err = Pair([]G1Affine{g1GenAff}, []G2Affine{inf2})
	require.NoError(err)
	require.True(e.IsOne())
}

func TestPairingBilinearity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 3

	properties := gopter.NewProperties(parameters)

	properties.Property("e([a]P, [b]Q) == e(P, Q)^(a*b)", prop.ForAll(
		func(a, b *big.Int) bool {
			var aP G1Affine
			var bQ G2Affine
			aP.ScalarMultiplication(&g1GenAff, a)
			bQ.ScalarMultiplication(&g2GenAff, b)

			l, err := Pair([]G1Affine{aP}, []G2Affine{bQ})
			if err != nil {
				return false
			}

			e, err := Pair([]G1Affine{g1GenAff}, []G2Affine{g2GenAff})
			if err != nil {
				return false
			}
			var ab big.Int
			ab.Mul(a, b).Mod(&ab, fr.Modulus())
			var r GT
			r.Exp(e, &ab)

			return l.Equal(&r)
		},
		genScalar(), genScalar(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPairingMultiPair(t *testing.T) {
	require := require.New(t)

	// e(P, Q) * e(P, -Q) == 1
	var qNeg G2Affine
	qNeg.Neg(&g2GenAff)

	ok, err := PairingCheck(
		[]G1Affine{g1GenAff, g1GenAff},
		[]G2Affine{g2GenAff, qNeg},
	)
	require.NoError(err)
	require.True(ok)

	// the shared-squaring loop matches the product of single pairings
	var p2 G1Affine
	var q2 G2Affine
	p2.ScalarMultiplication(&g1GenAff, big.NewInt(17))
	q2.ScalarMultiplication(&g2GenAff, big.NewInt(23))

	joint, err := Pair(
		[]G1Affine{g1GenAff, p2},
		[]G2Affine{g2GenAff, q2},
	)
	require.NoError(err)

	e1 := pairOne(t, &g1GenAff, &g2GenAff)
	e2 := pairOne(t, &p2, &q2)
	var product GT
	product.Mul(&e1, &e2)

	require.True(joint.Equal(&product))
}

func TestPairingErrors(t *testing.T) {
	require := require.New(t)

	_, err := MillerLoop([]G1Affine{g1GenAff}, nil)
	require.ErrorIs(err, ErrInvalidPairingInput)

	var zero GT
	_, err = FinalExponentiation(&zero)
	require.ErrorIs(err, ErrDegeneratePairing)
}

func BenchmarkPairing(b *testing.B) {
	p := []G1Affine{g1GenAff}
	q := []G2Affine{g2GenAff}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Pair(p, q)
	}
}

func BenchmarkMillerLoop(b *testing.B) {
	p := []G1Affine{g1GenAff}
	q := []G2Affine{g2GenAff}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MillerLoop(p, q)
	}
}
