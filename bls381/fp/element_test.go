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

package fp

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func genElement() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var a Element
		b := new(big.Int).Rand(genParams.Rng, Modulus())
		a.SetBigInt(b)
		return gopter.NewGenResult(a, gopter.NoShrinker)
	}
}

func TestElementRingLaws(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("a + b == b + a", prop.ForAll(
		func(a, b Element) bool {
			var c, d Element
			c.Add(&a, &b)
			d.Add(&b, &a)
			return c.Equal(&d)
		},
		genElement(), genElement(),
	))

	properties.Property("(a + b) + c == a + (b + c)", prop.ForAll(
		func(a, b, c Element) bool {
			var l, r Element
			l.Add(&a, &b).Add(&l, &c)
			r.Add(&b, &c).Add(&r, &a)
			return l.Equal(&r)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("a * b == b * a", prop.ForAll(
		func(a, b Element) bool {
			var c, d Element
			c.Mul(&a, &b)
			d.Mul(&b, &a)
			return c.Equal(&d)
		},
		genElement(), genElement(),
	))

	properties.Property("(a * b) * c == a * (b * c)", prop.ForAll(
		func(a, b, c Element) bool {
			var l, r Element
			l.Mul(&a, &b).Mul(&l, &c)
			r.Mul(&b, &c).Mul(&r, &a)
			return l.Equal(&r)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("a * (b + c) == a*b + a*c", prop.ForAll(
		func(a, b, c Element) bool {
			var l, r, t Element
			l.Add(&b, &c).Mul(&l, &a)
			r.Mul(&a, &b)
			t.Mul(&a, &c)
			r.Add(&r, &t)
			return l.Equal(&r)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("a + 0 == a and a * 1 == a", prop.ForAll(
		func(a Element) bool {
			var zero, one, l, r Element
			one.SetOne()
			l.Add(&a, &zero)
			r.Mul(&a, &one)
			return l.Equal(&a) && r.Equal(&a)
		},
		genElement(),
	))

	properties.Property("a - a == 0 and a + (-a) == 0", prop.ForAll(
		func(a Element) bool {
			var l, r Element
			l.Sub(&a, &a)
			r.Neg(&a).Add(&r, &a)
			return l.IsZero() && r.IsZero()
		},
		genElement(),
	))

	properties.Property("Double(a) == a + a and Square(a) == a * a", prop.ForAll(
		func(a Element) bool {
			var l, r Element
			l.Double(&a)
			r.Add(&a, &a)
			if !l.Equal(&r) {
				return false
			}
			l.Square(&a)
			r.Mul(&a, &a)
			return l.Equal(&r)
		},
		genElement(),
	))

	properties.Property("a * a^-1 == 1 for a != 0", prop.ForAll(
		func(a Element) bool {
			if a.IsZero() {
				return true
			}
			var inv, l Element
			inv.Inverse(&a)
			l.Mul(&a, &inv)
			return l.IsOne()
		},
		genElement(),
	))

	properties.Property("operations match big.Int arithmetic", prop.ForAll(
		func(a, b Element) bool {
			var ba, bb, br big.Int
			a.BigInt(&ba)
			b.BigInt(&bb)

			var c Element
			c.Mul(&a, &b)
			br.Mul(&ba, &bb).Mod(&br, Modulus())

			var expected Element
			expected.SetBigInt(&br)
			return c.Equal(&expected)
		},
		genElement(), genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestElementExp(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	properties.Property("a^q == a (Fermat)", prop.ForAll(
		func(a Element) bool {
			var l Element
			l.Exp(a, Modulus())
			return l.Equal(&a)
		},
		genElement(),
	))

	properties.Property("a^-1 via Exp matches Inverse", prop.ForAll(
		func(a Element) bool {
			if a.IsZero() {
				return true
			}
			var l, r Element
			minusOne := big.NewInt(-1)
			l.Exp(a, minusOne)
			r.Inverse(&a)
			return l.Equal(&r)
		},
		genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestElementSqrt(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("Sqrt(a^2)^2 == a^2, canonical root", prop.ForAll(
		func(a Element) bool {
			var sq, root, check Element
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
		genElement(),
	))

	properties.Property("Legendre(a^2) == 1 for a != 0", prop.ForAll(
		func(a Element) bool {
			if a.IsZero() {
				return true
			}
			var sq Element
			sq.Square(&a)
			return sq.Legendre() == 1
		},
		genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestElementSqrtNonResidue(t *testing.T) {
	require := require.New(t)

	// -1 is a non-residue mod q since q = 3 mod 4
	var a, root Element
	a.SetOne().Neg(&a)
	require.Equal(-1, a.Legendre())
	require.Nil(root.Sqrt(&a))
}

func TestElementInverseZero(t *testing.T) {
	require := require.New(t)

	var zero, z Element
	z.SetUint64(42)
	z.Inverse(&zero)
	require.True(z.IsZero())

	err := z.InverseChecked(&zero)
	require.ErrorIs(err, ErrNoInverse)
}

func TestElementBytesRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("SetBytesCanonical(Bytes(a)) == a", prop.ForAll(
		func(a Element) bool {
			buf := a.Bytes()
			var b Element
			if err := b.SetBytesCanonical(buf[:]); err != nil {
				return false
			}
			return a.Equal(&b)
		},
		genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestElementBytesNonCanonical(t *testing.T) {
	require := require.New(t)

	// the little-endian encoding of q itself must be rejected
	var buf [Bytes]byte
	q := Modulus()
	qBytes := q.Bytes() // big-endian
	for i := range qBytes {
		buf[i] = qBytes[len(qBytes)-1-i]
	}

	var a Element
	require.ErrorIs(a.SetBytesCanonical(buf[:]), ErrNonCanonical)
	require.ErrorIs(a.SetBytesCanonical(buf[:12]), ErrInvalidEncoding)
}

func TestElementSetString(t *testing.T) {
	require := require.New(t)

	var a, b, c Element
	a.SetString("3")
	b.SetString("4")
	c.SetString("12")

	var d Element
	d.Mul(&a, &b)
	require.True(d.Equal(&c))

	// hex with 0x prefix
	var e Element
	e.SetString("0xc")
	require.True(e.Equal(&c))

	// a negative string wraps around the modulus
	var f, g Element
	f.SetString("-1")
	g.SetOne().Neg(&g)
	require.True(f.Equal(&g))
}

func TestElementCmp(t *testing.T) {
	require := require.New(t)

	var a, b Element
	a.SetUint64(5)
	b.SetUint64(7)
	require.Equal(-1, a.Cmp(&b))
	require.Equal(1, b.Cmp(&a))
	require.Equal(0, a.Cmp(&a))

	// -1 == q-1 is the largest element
	var c Element
	c.SetOne().Neg(&c)
	require.True(c.LexicographicallyLargest())
	require.Equal(1, c.Cmp(&b))
}
