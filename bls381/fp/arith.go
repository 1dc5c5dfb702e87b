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
	"encoding/binary"
	"math/big"
	"math/bits"
)

// madd2 returns the hi and lo words of a*b + c + d
func madd2(a, b, c, d uint64) (uint64, uint64) {
	hi, lo := bits.Mul64(a, b)
	var carry uint64
	c, carry = bits.Add64(c, d, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	lo, carry = bits.Add64(lo, c, 0)
	hi, _ = bits.Add64(hi, 0, carry)
	return hi, lo
}

// addLimbs z = x + y; the caller guarantees no carry out of the top word
func addLimbs(z, x, y *[Limbs]uint64) {
	var c uint64
	for i := 0; i < Limbs; i++ {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
}

// subLimbs z = x - y, returning the final borrow
func subLimbs(z, x, y *[Limbs]uint64) uint64 {
	var b uint64
	for i := 0; i < Limbs; i++ {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	return b
}

// mulLimbs t = x * y (schoolbook, full 2*Limbs words)
func mulLimbs(t *[2 * Limbs]uint64, x, y *[Limbs]uint64) {
	for i := range t {
		t[i] = 0
	}
	for i := 0; i < Limbs; i++ {
		var carry uint64
		for j := 0; j < Limbs; j++ {
			hi, lo := madd2(x[i], y[j], t[i+j], carry)
			t[i+j] = lo
			carry = hi
		}
		t[i+Limbs] = carry
	}
}

// montReduce z = t / 2^(64*Limbs) mod q (word-by-word Montgomery reduction).
// Requires t < q * 2^(64*Limbs), which holds for any product of two reduced
// elements; the result is < 2q and the caller performs the final subtraction.
func montReduce(z *[Limbs]uint64, t *[2 * Limbs]uint64, q *[Limbs]uint64, qInv uint64) {
	for i := 0; i < Limbs; i++ {
		m := t[i] * qInv
		var carry uint64
		for j := 0; j < Limbs; j++ {
			hi, lo := madd2(m, q[j], t[i+j], carry)
			t[i+j] = lo
			carry = hi
		}
		// propagate the round carry through the upper words
		k := i + Limbs
		var c uint64
		t[k], c = bits.Add64(t[k], carry, 0)
		for k++; c != 0 && k < 2*Limbs; k++ {
			t[k], c = bits.Add64(t[k], 0, c)
		}
	}
	copy(z[:], t[Limbs:])
}

// bigToLimbs fills z with the little-endian words of v; v must be in [0, 2^(64*Limbs))
func bigToLimbs(v *big.Int, z *[Limbs]uint64) {
	var buf [Limbs * 8]byte
	v.FillBytes(buf[:])
	for i := 0; i < Limbs; i++ {
		z[i] = binary.BigEndian.Uint64(buf[len(buf)-(i+1)*8:])
	}
}

// limbsToBig sets res to the integer represented by the little-endian words of z
func limbsToBig(z *[Limbs]uint64, res *big.Int) *big.Int {
	var buf [Limbs * 8]byte
	for i := 0; i < Limbs; i++ {
		binary.BigEndian.PutUint64(buf[len(buf)-(i+1)*8:], z[i])
	}
	return res.SetBytes(buf[:])
}
