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

// Package fp contains field arithmetic operations for modulus
// q = 0x1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab
// (the base field of the BLS381 curve).
//
// The API is similar to math/big (big.Int), but the operations are
// significantly faster (up to 20x).
//
// The internal representation is Montgomery form: a field element x is stored
// as x * 2^384 mod q on 6 little-endian 64bits words. The external behaviour
// (Bytes, String, Cmp, ...) always refers to the canonical residue in [0, q).
package fp

import (
	"encoding/binary"
	"errors"
	"io"
	"math/big"
)

// Element represents a field element stored on 6 words (uint64)
// Element are assumed to be in Montgomery form in all methods
type Element [Limbs]uint64

const (
	// Limbs number of 64 bits words needed to represent Element
	Limbs = 6
	// Bits number bits needed to represent Element
	Bits = 381
	// Bytes number bytes needed to represent Element
	Bytes = Limbs * 8
)

// Modulus q in decimal
const modulusStr = "4002409555221667393417789825735904156556882819939007885332058136124031650490837864442687629129015664037894272559787"

var (
	// q (modulus)
	qElement Element

	// -q^-1 mod 2^64
	qInvNeg uint64

	// rSquare = 2^768 mod q, used to enter the Montgomery domain
	rSquare Element

	// rOne = 2^384 mod q, the Montgomery form of 1
	rOne Element

	// (q+1)/2, used by LexicographicallyLargest
	qHalf [Limbs]uint64

	_modulus         big.Int
	_qMinus1Over2    big.Int
	_qPlus1Over4     big.Int
	_bitMaskHighWord uint64
)

func init() {
	if _, ok := _modulus.SetString(modulusStr, 10); !ok {
		panic("fp: invalid modulus")
	}

	bigToLimbs(&_modulus, (*[Limbs]uint64)(&qElement))

	// -q^-1 mod 2^64
	var radix, qLow, inv big.Int
	radix.Lsh(big.NewInt(1), 64)
	qLow.Mod(&_modulus, &radix)
	inv.ModInverse(&qLow, &radix)
	inv.Sub(&radix, &inv)
	qInvNeg = inv.Uint64()

	// Montgomery constants
	var t big.Int
	t.Lsh(big.NewInt(1), 2*Limbs*64).Mod(&t, &_modulus)
	bigToLimbs(&t, (*[Limbs]uint64)(&rSquare))
	t.Lsh(big.NewInt(1), Limbs*64).Mod(&t, &_modulus)
	bigToLimbs(&t, (*[Limbs]uint64)(&rOne))

	t.Add(&_modulus, big.NewInt(1)).Rsh(&t, 1)
	bigToLimbs(&t, &qHalf)

	_qMinus1Over2.Sub(&_modulus, big.NewInt(1)).Rsh(&_qMinus1Over2, 1)
	_qPlus1Over4.Add(&_modulus, big.NewInt(1)).Rsh(&_qPlus1Over4, 2)

	_bitMaskHighWord = (uint64(1) << (Bits - (Limbs-1)*64)) - 1
}

// ErrNoInverse is returned when inverting the additive identity
var ErrNoInverse = errors.New("fp: no inverse, element is zero")

// ErrInvalidEncoding is returned when a byte slice has an unexpected length
var ErrInvalidEncoding = errors.New("fp: invalid byte length for a canonical encoding")

// ErrNonCanonical is returned when a canonical decode sees a value >= q
var ErrNonCanonical = errors.New("fp: encoded value is not a canonical field element")

// Modulus returns q as a big.Int
func Modulus() *big.Int {
	var r big.Int
	r.Set(&_modulus)
	return &r
}

// One returns 1 (in Montgomery form)
func One() Element {
	return rOne
}

// SetZero z = 0
func (z *Element) SetZero() *Element {
	for i := 0; i < Limbs; i++ {
		z[i] = 0
	}
	return z
}

// SetOne z = 1 (in Montgomery form)
func (z *Element) SetOne() *Element {
	*z = rOne
	return z
}

// Set z = x
func (z *Element) Set(x *Element) *Element {
	*z = *x
	return z
}

// SetUint64 z = v
func (z *Element) SetUint64(v uint64) *Element {
	z.SetZero()
	z[0] = v
	return z.toMont()
}

// SetBigInt z = v mod q
func (z *Element) SetBigInt(v *big.Int) *Element {
	var t big.Int
	t.Mod(v, &_modulus)
	bigToLimbs(&t, (*[Limbs]uint64)(z))
	return z.toMont()
}

// SetString creates an Element from a decimal or 0x-prefixed hexadecimal string
func (z *Element) SetString(s string) *Element {
	var v big.Int
	if _, ok := v.SetString(s, 0); !ok {
		panic("fp: invalid number string " + s)
	}
	return z.SetBigInt(&v)
}

// SetRandom sets z to a uniform random value in [0, q), reading entropy from src.
// The engine never owns a generator: the caller passes the randomness source.
func (z *Element) SetRandom(src io.Reader) (*Element, error) {
	var buf [Bytes]byte
	for {
		if _, err := io.ReadFull(src, buf[:]); err != nil {
			return nil, err
		}
		for i := 0; i < Limbs; i++ {
			z[i] = binary.LittleEndian.Uint64(buf[i*8:])
		}
		z[Limbs-1] &= _bitMaskHighWord
		// rejection sampling to stay uniform
		if z.smallerThanModulus() {
			break
		}
	}
	return z.toMont(), nil
}

// IsZero returns z == 0
func (z *Element) IsZero() bool {
	return (z[0] | z[1] | z[2] | z[3] | z[4] | z[5]) == 0
}

// IsOne returns z == 1
func (z *Element) IsOne() bool {
	return z.Equal(&rOne)
}

// Equal returns z == x
func (z *Element) Equal(x *Element) bool {
	return (z[0] == x[0]) && (z[1] == x[1]) && (z[2] == x[2]) &&
		(z[3] == x[3]) && (z[4] == x[4]) && (z[5] == x[5])
}

// Cmp compares the canonical residues of z and x, returning -1, 0 or 1
func (z *Element) Cmp(x *Element) int {
	zz, xx := *z, *x
	zz.fromMont()
	xx.fromMont()
	for i := Limbs - 1; i >= 0; i-- {
		if zz[i] > xx[i] {
			return 1
		}
		if zz[i] < xx[i] {
			return -1
		}
	}
	return 0
}

// LexicographicallyLargest returns true if the canonical residue of z is
// strictly greater than (q-1)/2, i.e. z > -z
func (z *Element) LexicographicallyLargest() bool {
	zz := *z
	zz.fromMont()
	for i := Limbs - 1; i >= 0; i-- {
		if zz[i] > qHalf[i] {
			return true
		}
		if zz[i] < qHalf[i] {
			return false
		}
	}
	return true // == (q+1)/2
}

// Add z = x + y mod q
func (z *Element) Add(x, y *Element) *Element {
	// x+y < 2q < 2^382: no carry out of the top word
	addLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(x), (*[Limbs]uint64)(y))
	if !z.smallerThanModulus() {
		subLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(z), (*[Limbs]uint64)(&qElement))
	}
	return z
}

// Double z = 2x mod q
func (z *Element) Double(x *Element) *Element {
	return z.Add(x, x)
}

// Sub z = x - y mod q
func (z *Element) Sub(x, y *Element) *Element {
	if b := subLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(x), (*[Limbs]uint64)(y)); b != 0 {
		addLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(z), (*[Limbs]uint64)(&qElement))
	}
	return z
}

// Neg z = -x mod q
func (z *Element) Neg(x *Element) *Element {
	if x.IsZero() {
		return z.SetZero()
	}
	subLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(&qElement), (*[Limbs]uint64)(x))
	return z
}

// Mul z = x * y mod q (Montgomery multiplication: schoolbook product then REDC)
func (z *Element) Mul(x, y *Element) *Element {
	var t [2 * Limbs]uint64
	mulLimbs(&t, (*[Limbs]uint64)(x), (*[Limbs]uint64)(y))
	montReduce((*[Limbs]uint64)(z), &t, (*[Limbs]uint64)(&qElement), qInvNeg)
	if !z.smallerThanModulus() {
		subLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(z), (*[Limbs]uint64)(&qElement))
	}
	return z
}

// Square z = x * x mod q
func (z *Element) Square(x *Element) *Element {
	return z.Mul(x, x)
}

// Inverse z = x^-1 mod q; if x == 0, z is set to 0.
// Callers needing an explicit failure use InverseChecked.
func (z *Element) Inverse(x *Element) *Element {
	if x.IsZero() {
		return z.SetZero()
	}
	// Fermat: x^(q-2)
	var e big.Int
	e.Sub(&_modulus, big.NewInt(2))
	return z.Exp(*x, &e)
}

// InverseChecked z = x^-1 mod q; returns ErrNoInverse when x == 0
func (z *Element) InverseChecked(x *Element) error {
	if x.IsZero() {
		return ErrNoInverse
	}
	z.Inverse(x)
	return nil
}

// Exp z = x^k mod q. A negative exponent inverts the base first.
func (z *Element) Exp(x Element, k *big.Int) *Element {
	if k.IsUint64() && k.Uint64() == 0 {
		return z.SetOne()
	}

	e := k
	if k.Sign() == -1 {
		// x^(-k) = (x^-1)^k
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

// Legendre returns the Legendre symbol of z:
// 1 if z is a nonzero quadratic residue, -1 if it is a non-residue, 0 if z == 0
func (z *Element) Legendre() int {
	var l Element
	l.Exp(*z, &_qMinus1Over2)
	if l.IsZero() {
		return 0
	}
	if l.IsOne() {
		return 1
	}
	return -1
}

// Sqrt z = √x mod q, returns nil if x is not a square.
//
// q ≡ 3 mod 4 so a candidate root is x^((q+1)/4). Of the two roots ±y the
// canonical one is returned: the root whose integer representative is
// ≤ (q-1)/2. Point compression relies on this convention being stable.
func (z *Element) Sqrt(x *Element) *Element {
	var y, square Element
	y.Exp(*x, &_qPlus1Over4)
	square.Square(&y)
	if !square.Equal(x) {
		return nil
	}
	if y.LexicographicallyLargest() {
		y.Neg(&y)
	}
	return z.Set(&y)
}

// BigInt fills res with the canonical residue of z and returns res
func (z *Element) BigInt(res *big.Int) *big.Int {
	zz := *z
	zz.fromMont()
	return limbsToBig((*[Limbs]uint64)(&zz), res)
}

// Bytes returns the canonical residue of z as a little-endian fixed-size array
func (z *Element) Bytes() (res [Bytes]byte) {
	zz := *z
	zz.fromMont()
	for i := 0; i < Limbs; i++ {
		binary.LittleEndian.PutUint64(res[i*8:], zz[i])
	}
	return
}

// SetBytes interprets e as a little-endian integer of arbitrary length and
// sets z to that value reduced modulo q
func (z *Element) SetBytes(e []byte) *Element {
	tmp := make([]byte, len(e))
	for i := range e {
		tmp[len(e)-1-i] = e[i]
	}
	var v big.Int
	v.SetBytes(tmp)
	return z.SetBigInt(&v)
}

// SetBytesCanonical decodes exactly Bytes little-endian bytes, rejecting any
// value >= q with ErrNonCanonical
func (z *Element) SetBytesCanonical(e []byte) error {
	if len(e) != Bytes {
		return ErrInvalidEncoding
	}
	for i := 0; i < Limbs; i++ {
		z[i] = binary.LittleEndian.Uint64(e[i*8:])
	}
	if !z.smallerThanModulus() {
		return ErrNonCanonical
	}
	z.toMont()
	return nil
}

func (z *Element) String() string {
	var v big.Int
	return z.BigInt(&v).String()
}

// smallerThanModulus returns true if z (non-Montgomery interpretation) < q
func (z *Element) smallerThanModulus() bool {
	for i := Limbs - 1; i >= 0; i-- {
		if z[i] < qElement[i] {
			return true
		}
		if z[i] > qElement[i] {
			return false
		}
	}
	return false
}

// toMont converts z from the canonical to the Montgomery domain
func (z *Element) toMont() *Element {
	return z.Mul(z, &rSquare)
}

// fromMont converts z from the Montgomery to the canonical domain
func (z *Element) fromMont() *Element {
	var t [2 * Limbs]uint64
	copy(t[:Limbs], z[:])
	montReduce((*[Limbs]uint64)(z), &t, (*[Limbs]uint64)(&qElement), qInvNeg)
	if !z.smallerThanModulus() {
		subLimbs((*[Limbs]uint64)(z), (*[Limbs]uint64)(z), (*[Limbs]uint64)(&qElement))
	}
	return z
}
