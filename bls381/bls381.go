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

// Package bls381 implements the BLS12-381 pairing friendly curve:
// field towers fp, E2, E6, E12, the groups G1 (over fp) and G2 (over E2),
// the optimal Ate pairing and canonical point serialization.
package bls381

import (
	"math/big"

	"github.com/consensys/gurvy"
	"github.com/consensys/gurvy/bls381/fp"
	"github.com/consensys/gurvy/bls381/fr"
)

// ID of the curve, as registered in the gurvy root package
const ID = gurvy.BLS381

// curve equation: y**2 = x**3 + 4, twist (M-type): y**2 = x**3 + 4*(1+u)
var (
	bCurveCoeff      fp.Element
	bTwistCurveCoeff E2
)

// generators of the r-order subgroups
var (
	g1Gen    G1Jac
	g2Gen    G2Jac
	g1GenAff G1Affine
	g2GenAff G2Affine
)

// point at infinity, Jacobian convention Z == 0
var (
	g1Infinity G1Jac
	g2Infinity G2Jac
)

// xGen is the absolute value of the curve seed; the seed itself is negative,
// accounted for by a conjugation at the end of the Miller loop
var xGen big.Int

// loopCounter is the NAF decomposition of xGen, least significant digit first
var (
	loopCounter [65]int8
	lenLoop     int
)

// frobCoeffs[k-1] = (1+u)^(k*(p-1)/6), the twist constants of the
// p-power Frobenius on E12
var frobCoeffs [5]E2

// exponents used by E2.Sqrt, p = 3 mod 4
var (
	pMinus3Over4 big.Int
	pMinus1Over2 big.Int
)

// finalExpHard = (p^4 - p^2 + 1) / r, the cofactor of the hard part of the
// final exponentiation
var finalExpHard big.Int

// Generators returns the canonical generators of the r-order subgroups of
// G1 and G2, in Jacobian and affine coordinates
func Generators() (g1Jac G1Jac, g2Jac G2Jac, g1Aff G1Affine, g2Aff G2Affine) {
	g1Jac = g1Gen
	g2Jac = g2Gen
	g1Aff = g1GenAff
	g2Aff = g2GenAff
	return
}

func init() {
	bCurveCoeff.SetUint64(4)
	bTwistCurveCoeff.A0.SetUint64(4)
	bTwistCurveCoeff.A1.SetUint64(4)

	g1Gen.X.SetString("3685416753713387016781088315183077757961620795782546409894578378688607592378376318836054947676345821548104185464507")
	g1Gen.Y.SetString("1339506544944476473020471379941921221584933875938349620426543736416511423956333506472724655353366534992391756441569")
	g1Gen.Z.SetOne()

	g2Gen.X.SetString(
		"352701069587466618187139116011060144890029952792775240219908644239793785735715026873347600343865175952761926303160",
		"3059144344244213709971259814753781636986470325476647558659373206291635324768958432433509563104347017837885763365758")
	g2Gen.Y.SetString(
		"1985150602287291935568054521177171638300868978215655730859378665066344726373823718423869104263333984641494340347905",
		"927553665492332455747201965776037880757740193453592970025027978793976877002675564980949289727957565575433344219582")
	g2Gen.Z.SetString("1", "0")

	g1GenAff.FromJacobian(&g1Gen)
	g2GenAff.FromJacobian(&g2Gen)

	g1Infinity.X.SetOne()
	g1Infinity.Y.SetOne()
	g2Infinity.X.SetOne()
	g2Infinity.Y.SetOne()

	xGen.SetUint64(0xd201000000010000)
	lenLoop = gurvy.NafDecomposition(&xGen, loopCounter[:])

	p := fp.Modulus()
	one := big.NewInt(1)

	pMinus3Over4.Sub(p, big.NewInt(3)).Rsh(&pMinus3Over4, 2)
	pMinus1Over2.Sub(p, one).Rsh(&pMinus1Over2, 1)

	var sixth big.Int
	sixth.Sub(p, one).Div(&sixth, big.NewInt(6))
	var nonRes E2
	nonRes.A0.SetOne()
	nonRes.A1.SetOne()
	frobCoeffs[0].Exp(nonRes, &sixth)
	for k := 1; k < 5; k++ {
		frobCoeffs[k].Mul(&frobCoeffs[k-1], &frobCoeffs[0])
	}

	var p2, p4 big.Int
	p2.Mul(p, p)
	p4.Mul(&p2, &p2)
	finalExpHard.Sub(&p4, &p2).
		Add(&finalExpHard, one).
		Div(&finalExpHard, fr.Modulus())
}
