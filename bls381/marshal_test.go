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
	"bytes"
	"math/big"
	"testing"

	"github.com/consensys/gurvy/bls381/fp"
	"github.com/consensys/gurvy/bls381/fr"
	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func genG1Affine() gopter.Gen {
	return genG1Jac().Map(func(p G1Jac) G1Affine {
		var a G1Affine
		a.FromJacobian(&p)
		return a
	})
}

func genG2Affine() gopter.Gen {
	return genG2Jac().Map(func(p G2Jac) G2Affine {
		var a G2Affine
		a.FromJacobian(&p)
		return a
	})
}

func TestG1PointRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10

	properties := gopter.NewProperties(parameters)

	properties.Property("SetBytes(Bytes(p)) == p", prop.ForAll(
		func(p G1Affine) bool {
			buf := p.Bytes()
			var q G1Affine
			if err := q.SetBytes(buf[:]); err != nil {
				return false
			}
			return p.Equal(&q)
		},
		genG1Affine(),
	))

	properties.Property("SetRawBytes(RawBytes(p)) == p", prop.ForAll(
		func(p G1Affine) bool {
			buf := p.RawBytes()
			var q G1Affine
			if err := q.SetRawBytes(buf[:]); err != nil {
				return false
			}
			return p.Equal(&q)
		},
		genG1Affine(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestG2PointRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10

	properties := gopter.NewProperties(parameters)

	properties.Property("SetBytes(Bytes(p)) == p", prop.ForAll(
		func(p G2Affine) bool {
			buf := p.Bytes()
			var q G2Affine
			if err := q.SetBytes(buf[:]); err != nil {
				return false
			}
			return p.Equal(&q)
		},
		genG2Affine(),
	))

	properties.Property("SetRawBytes(RawBytes(p)) == p", prop.ForAll(
		func(p G2Affine) bool {
			buf := p.RawBytes()
			var q G2Affine
			if err := q.SetRawBytes(buf[:]); err != nil {
				return false
			}
			return p.Equal(&q)
		},
		genG2Affine(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPointInfinityEncoding(t *testing.T) {
	require := require.New(t)

	var inf1, p1 G1Affine
	buf := inf1.Bytes()
	require.Equal(mInfinity, buf[SizeOfG1AffineCompressed-1])
	require.NoError(p1.SetBytes(buf[:]))
	require.True(p1.IsInfinity())

	raw := inf1.RawBytes()
	require.NoError(p1.SetRawBytes(raw[:]))
	require.True(p1.IsInfinity())

	// a non-zero coordinate alongside the infinity flag is malformed
	buf[0] = 1
	require.ErrorIs(p1.SetBytes(buf[:]), ErrInvalidEncoding)

	var inf2, p2 G2Affine
	buf2 := inf2.Bytes()
	require.NoError(p2.SetBytes(buf2[:]))
	require.True(p2.IsInfinity())
}

func TestPointEncodingRejections(t *testing.T) {
	require := require.New(t)

	var p G1Affine

	// wrong length
	require.ErrorIs(p.SetBytes(make([]byte, 10)), ErrInvalidEncoding)
	require.ErrorIs(p.SetRawBytes(make([]byte, 10)), ErrInvalidEncoding)

	// non-canonical x: the little-endian bytes of the modulus
	var buf [SizeOfG1AffineCompressed]byte
	qBytes := fp.Modulus().Bytes()
	for i := range qBytes {
		buf[i] = qBytes[len(qBytes)-1-i]
	}
	require.ErrorIs(p.SetBytes(buf[:]), ErrInvalidEncoding)

	// x = 1: 1 + 4 = 5 is a quadratic non-residue mod q, not on the curve
	var notOnCurve [SizeOfG1AffineCompressed]byte
	notOnCurve[0] = 1
	require.ErrorIs(p.SetBytes(notOnCurve[:]), ErrPointNotOnCurve)

	// an uncompressed point with y corrupted is off the curve
	raw := g1GenAff.RawBytes()
	raw[fp.Bytes] ^= 1
	require.ErrorIs(p.SetRawBytes(raw[:]), ErrPointNotOnCurve)
	require.NoError(p.SetRawBytesUnchecked(raw[:]))
}

func TestPointSubGroupRejection(t *testing.T) {
	require := require.New(t)

	// (0, 2) is on the curve but has order 3
	var small G1Affine
	small.X.SetZero()
	small.Y.SetUint64(2)

	raw := small.RawBytes()
	var p G1Affine
	require.ErrorIs(p.SetRawBytes(raw[:]), ErrPointNotInSubgroup)
	require.NoError(p.SetRawBytesUnchecked(raw[:]))
	require.True(p.Equal(&small))

	buf := small.Bytes()
	require.ErrorIs(p.SetBytes(buf[:]), ErrPointNotInSubgroup)
	require.NoError(p.SetBytesUnchecked(buf[:]))
}

func TestEncoderDecoderRoundTrip(t *testing.T) {
	require := require.New(t)

	var p1 G1Affine
	var p2 G2Affine
	p1.ScalarMultiplication(&g1GenAff, big.NewInt(42))
	p2.ScalarMultiplication(&g2GenAff, big.NewInt(42))

	var s fr.Element
	s.SetUint64(8000)

	points1 := []G1Affine{g1GenAff, p1}
	points2 := []G2Affine{g2GenAff, p2}

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(enc.Encode(&s))
	require.NoError(enc.Encode(&p1))
	require.NoError(enc.Encode(&p2))
	require.NoError(enc.Encode(points1))
	require.NoError(enc.Encode(points2))
	require.Equal(int64(buf.Len()), enc.BytesWritten())

	var sBack fr.Element
	var p1Back G1Affine
	var p2Back G2Affine
	var points1Back []G1Affine
	var points2Back []G2Affine

	dec := NewDecoder(&buf)
	require.NoError(dec.Decode(&sBack))
	require.NoError(dec.Decode(&p1Back))
	require.NoError(dec.Decode(&p2Back))
	require.NoError(dec.Decode(&points1Back))
	require.NoError(dec.Decode(&points2Back))

	require.True(s.Equal(&sBack))
	require.True(p1.Equal(&p1Back))
	require.True(p2.Equal(&p2Back))
	require.Empty(cmp.Diff(points1, points1Back))
	require.Empty(cmp.Diff(points2, points2Back))
}

func TestEncoderDecoderRaw(t *testing.T) {
	require := require.New(t)

	var p1 G1Affine
	p1.ScalarMultiplication(&g1GenAff, big.NewInt(7))

	var buf bytes.Buffer
	enc := NewEncoder(&buf, RawEncoding())
	require.NoError(enc.Encode(&p1))
	require.Equal(int64(SizeOfG1AffineUncompressed), enc.BytesWritten())

	var back G1Affine
	dec := NewDecoder(&buf, RawDecoding(), NoSubgroupChecks())
	require.NoError(dec.Decode(&back))
	require.True(p1.Equal(&back))
}
