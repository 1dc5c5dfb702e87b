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
	"encoding/binary"
	"errors"
	"io"

	"github.com/consensys/gurvy/bls381/fp"
	"github.com/consensys/gurvy/bls381/fr"
)

// Point serialization. Field coordinates are written little-endian; the two
// most significant bits of the final byte carry flags, which is safe since
// the modulus leaves the top three bits of the top coordinate byte unused.
//
//	mCompressedLargest: compressed form, y is the lexicographically larger root
//	mInfinity:          point at infinity, all other bits and bytes are zero
const (
	mCompressedLargest byte = 0b1000_0000
	mInfinity          byte = 0b0100_0000
	mFlagMask          byte = mCompressedLargest | mInfinity
)

// sizes in bytes of the point encodings
const (
	SizeOfG1AffineCompressed   = fp.Bytes
	SizeOfG1AffineUncompressed = 2 * fp.Bytes
	SizeOfG2AffineCompressed   = 2 * fp.Bytes
	SizeOfG2AffineUncompressed = 4 * fp.Bytes
)

// -------------------------------------------------------------------------------------------------
// G1

// Bytes returns the compressed encoding of p: the x coordinate, with the
// larger-root flag identifying y
func (p *G1Affine) Bytes() (res [SizeOfG1AffineCompressed]byte) {
	if p.IsInfinity() {
		res[SizeOfG1AffineCompressed-1] = mInfinity
		return
	}
	x := p.X.Bytes()
	copy(res[:], x[:])
	if p.Y.LexicographicallyLargest() {
		res[SizeOfG1AffineCompressed-1] |= mCompressedLargest
	}
	return
}

// RawBytes returns the uncompressed encoding of p: x then y
func (p *G1Affine) RawBytes() (res [SizeOfG1AffineUncompressed]byte) {
	if p.IsInfinity() {
		res[SizeOfG1AffineUncompressed-1] = mInfinity
		return
	}
	x := p.X.Bytes()
	y := p.Y.Bytes()
	copy(res[:fp.Bytes], x[:])
	copy(res[fp.Bytes:], y[:])
	return
}

// SetBytes decodes a compressed point, validating canonical coordinates,
// curve membership and subgroup membership
func (p *G1Affine) SetBytes(buf []byte) error {
	return p.setBytes(buf, true)
}

// SetBytesUnchecked decodes a compressed point, skipping the subgroup check.
// Curve membership is inherent to the compressed form.
func (p *G1Affine) SetBytesUnchecked(buf []byte) error {
	return p.setBytes(buf, false)
}

func (p *G1Affine) setBytes(buf []byte, subGroupCheck bool) error {
	if len(buf) != SizeOfG1AffineCompressed {
		return ErrInvalidEncoding
	}

	flags := buf[SizeOfG1AffineCompressed-1] & mFlagMask
	var data [SizeOfG1AffineCompressed]byte
	copy(data[:], buf)
	data[SizeOfG1AffineCompressed-1] &^= mFlagMask

	if flags&mInfinity != 0 {
		if flags&mCompressedLargest != 0 || !isZero(data[:]) {
			return ErrInvalidEncoding
		}
		p.X.SetZero()
		p.Y.SetZero()
		return nil
	}

	if err := p.X.SetBytesCanonical(data[:]); err != nil {
		return ErrInvalidEncoding
	}

	var ySquared fp.Element
	ySquared.Square(&p.X).
		Mul(&ySquared, &p.X).
		Add(&ySquared, &bCurveCoeff)
	if p.Y.Sqrt(&ySquared) == nil {
		return ErrPointNotOnCurve
	}
	if flags&mCompressedLargest != 0 {
		p.Y.Neg(&p.Y)
	}

	if subGroupCheck && !p.IsInSubGroup() {
		return ErrPointNotInSubgroup
	}
	return nil
}

// SetRawBytes decodes an uncompressed point, validating canonical
// coordinates, curve membership and subgroup membership
func (p *G1Affine) SetRawBytes(buf []byte) error {
	return p.setRawBytes(buf, true)
}

// SetRawBytesUnchecked decodes an uncompressed point, skipping the curve
// and subgroup checks
func (p *G1Affine) SetRawBytesUnchecked(buf []byte) error {
	return p.setRawBytes(buf, false)
}

func (p *G1Affine) setRawBytes(buf []byte, check bool) error {
	if len(buf) != SizeOfG1AffineUncompressed {
		return ErrInvalidEncoding
	}

	flags := buf[SizeOfG1AffineUncompressed-1] & mFlagMask
	var data [SizeOfG1AffineUncompressed]byte
	copy(data[:], buf)
	data[SizeOfG1AffineUncompressed-1] &^= mFlagMask

	if flags&mInfinity != 0 {
		if flags&mCompressedLargest != 0 || !isZero(data[:]) {
			return ErrInvalidEncoding
		}
		p.X.SetZero()
		p.Y.SetZero()
		return nil
	}
	if flags != 0 {
		return ErrInvalidEncoding
	}

	if err := p.X.SetBytesCanonical(data[:fp.Bytes]); err != nil {
		return ErrInvalidEncoding
	}
	if err := p.Y.SetBytesCanonical(data[fp.Bytes:]); err != nil {
		return ErrInvalidEncoding
	}

	if check {
		if !p.IsOnCurve() {
			return ErrPointNotOnCurve
		}
		if !p.IsInSubGroup() {
			return ErrPointNotInSubgroup
		}
	}
	return nil
}

// -------------------------------------------------------------------------------------------------
// G2

// Bytes returns the compressed encoding of p: the x coordinate (A0 then A1,
// each little-endian), with the larger-root flag identifying y
func (p *G2Affine) Bytes() (res [SizeOfG2AffineCompressed]byte) {
	if p.IsInfinity() {
		res[SizeOfG2AffineCompressed-1] = mInfinity
		return
	}
	a0 := p.X.A0.Bytes()
	a1 := p.X.A1.Bytes()
	copy(res[:fp.Bytes], a0[:])
	copy(res[fp.Bytes:], a1[:])
	if p.Y.LexicographicallyLargest() {
		res[SizeOfG2AffineCompressed-1] |= mCompressedLargest
	}
	return
}

// RawBytes returns the uncompressed encoding of p: x then y
func (p *G2Affine) RawBytes() (res [SizeOfG2AffineUncompressed]byte) {
	if p.IsInfinity() {
		res[SizeOfG2AffineUncompressed-1] = mInfinity
		return
	}
	xa0 := p.X.A0.Bytes()
	xa1 := p.X.A1.Bytes()
	ya0 := p.Y.A0.Bytes()
	ya1 := p.Y.A1.Bytes()
	copy(res[:fp.Bytes], xa0[:])
	copy(res[fp.Bytes:2*fp.Bytes], xa1[:])
	copy(res[2*fp.Bytes:3*fp.Bytes], ya0[:])
	copy(res[3*fp.Bytes:], ya1[:])
	return
}

// SetBytes decodes a compressed point, validating canonical coordinates,
// curve membership and subgroup membership
func (p *G2Affine) SetBytes(buf []byte) error {
	return p.setBytes(buf, true)
}

// SetBytesUnchecked decodes a compressed point, skipping the subgroup check.
// Curve membership is inherent to the compressed form.
func (p *G2Affine) SetBytesUnchecked(buf []byte) error {
	return p.setBytes(buf, false)
}

func (p *G2Affine) setBytes(buf []byte, subGroupCheck bool) error {
	if len(buf) != SizeOfG2AffineCompressed {
		return ErrInvalidEncoding
	}

	flags := buf[SizeOfG2AffineCompressed-1] & mFlagMask
	var data [SizeOfG2AffineCompressed]byte
	copy(data[:], buf)
	data[SizeOfG2AffineCompressed-1] &^= mFlagMask

	if flags&mInfinity != 0 {
		if flags&mCompressedLargest != 0 || !isZero(data[:]) {
			return ErrInvalidEncoding
		}
		p.X.SetZero()
		p.Y.SetZero()
		return nil
	}

	if err := p.X.A0.SetBytesCanonical(data[:fp.Bytes]); err != nil {
		return ErrInvalidEncoding
	}
	if err := p.X.A1.SetBytesCanonical(data[fp.Bytes:]); err != nil {
		return ErrInvalidEncoding
	}

	var ySquared E2
	ySquared.Square(&p.X).
		Mul(&ySquared, &p.X).
		Add(&ySquared, &bTwistCurveCoeff)
	if p.Y.Sqrt(&ySquared) == nil {
		return ErrPointNotOnCurve
	}
	if flags&mCompressedLargest != 0 {
		p.Y.Neg(&p.Y)
	}

	if subGroupCheck && !p.IsInSubGroup() {
		return ErrPointNotInSubgroup
	}
	return nil
}

// SetRawBytes decodes an uncompressed point, validating canonical
// coordinates, curve membership and subgroup membership
func (p *G2Affine) SetRawBytes(buf []byte) error {
	return p.setRawBytes(buf, true)
}

// SetRawBytesUnchecked decodes an uncompressed point, skipping the curve
// and subgroup checks
func (p *G2Affine) SetRawBytesUnchecked(buf []byte) error {
	return p.setRawBytes(buf, false)
}

func (p *G2Affine) setRawBytes(buf []byte, check bool) error {
	if len(buf) != SizeOfG2AffineUncompressed {
		return ErrInvalidEncoding
	}

	flags := buf[SizeOfG2AffineUncompressed-1] & mFlagMask
	var data [SizeOfG2AffineUncompressed]byte
	copy(data[:], buf)
	data[SizeOfG2AffineUncompressed-1] &^= mFlagMask

	if flags&mInfinity != 0 {
		if flags&mCompressedLargest != 0 || !isZero(data[:]) {
			return ErrInvalidEncoding
		}
		p.X.SetZero()
		p.Y.SetZero()
		return nil
	}
	if flags != 0 {
		return ErrInvalidEncoding
	}

	if err := p.X.A0.SetBytesCanonical(data[:fp.Bytes]); err != nil {
		return ErrInvalidEncoding
	}
	if err := p.X.A1.SetBytesCanonical(data[fp.Bytes : 2*fp.Bytes]); err != nil {
		return ErrInvalidEncoding
	}
	if err := p.Y.A0.SetBytesCanonical(data[2*fp.Bytes : 3*fp.Bytes]); err != nil {
		return ErrInvalidEncoding
	}
	if err := p.Y.A1.SetBytesCanonical(data[3*fp.Bytes:]); err != nil {
		return ErrInvalidEncoding
	}

	if check {
		if !p.IsOnCurve() {
			return ErrPointNotOnCurve
		}
		if !p.IsInSubGroup() {
			return ErrPointNotInSubgroup
		}
	}
	return nil
}

func isZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}

// -------------------------------------------------------------------------------------------------
// Encoder / Decoder

// Encoder writes bls381 objects to an io.Writer; points are compressed
// unless the RawEncoding option is set
type Encoder struct {
	w   io.Writer
	n   int64
	raw bool
}

// Decoder reads bls381 objects from an io.Reader, mirroring Encoder
type Decoder struct {
	r              io.Reader
	n              int64
	raw            bool
	subGroupChecks bool
}

// EncoderOption configures an Encoder
type EncoderOption func(*Encoder)

// DecoderOption configures a Decoder
type DecoderOption func(*Decoder)

// RawEncoding makes the Encoder write points uncompressed
func RawEncoding() EncoderOption {
	return func(enc *Encoder) {
		enc.raw = true
	}
}

// RawDecoding makes the Decoder expect uncompressed points, matching an
// Encoder created with RawEncoding
func RawDecoding() DecoderOption {
	return func(dec *Decoder) {
		dec.raw = true
	}
}

// NoSubgroupChecks makes the Decoder skip the subgroup membership check on
// decoded points; only safe on trusted inputs
func NoSubgroupChecks() DecoderOption {
	return func(dec *Decoder) {
		dec.subGroupChecks = false
	}
}

// NewEncoder returns an Encoder writing to w
func NewEncoder(w io.Writer, options ...EncoderOption) *Encoder {
	enc := &Encoder{w: w}
	for _, o := range options {
		o(enc)
	}
	return enc
}

// NewDecoder returns a Decoder reading from r
func NewDecoder(r io.Reader, options ...DecoderOption) *Decoder {
	dec := &Decoder{r: r, subGroupChecks: true}
	for _, o := range options {
		o(dec)
	}
	return dec
}

// BytesWritten returns the number of bytes written so far
func (enc *Encoder) BytesWritten() int64 { return enc.n }

// BytesRead returns the number of bytes read so far
func (dec *Decoder) BytesRead() int64 { return dec.n }

// Encode writes v; supported types are *fr.Element, *fp.Element,
// *G1Affine, *G2Affine, []G1Affine and []G2Affine (slices are prefixed by
// their length as a big-endian uint32)
func (enc *Encoder) Encode(v interface{}) error {
	switch t := v.(type) {
	case *fr.Element:
		buf := t.Bytes()
		return enc.write(buf[:])
	case *fp.Element:
		buf := t.Bytes()
		return enc.write(buf[:])
	case *G1Affine:
		return enc.encodeG1(t)
	case *G2Affine:
		return enc.encodeG2(t)
	case []G1Affine:
		if err := enc.writeLen(len(t)); err != nil {
			return err
		}
		for i := range t {
			if err := enc.encodeG1(&t[i]); err != nil {
				return err
			}
		}
		return nil
	case []G2Affine:
		if err := enc.writeLen(len(t)); err != nil {
			return err
		}
		for i := range t {
			if err := enc.encodeG2(&t[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New("bls381: unsupported type for encoding")
	}
}

func (enc *Encoder) encodeG1(p *G1Affine) error {
	if enc.raw {
		buf := p.RawBytes()
		return enc.write(buf[:])
	}
	buf := p.Bytes()
	return enc.write(buf[:])
}

func (enc *Encoder) encodeG2(p *G2Affine) error {
	if enc.raw {
		buf := p.RawBytes()
		return enc.write(buf[:])
	}
	buf := p.Bytes()
	return enc.write(buf[:])
}

func (enc *Encoder) write(buf []byte) error {
	n, err := enc.w.Write(buf)
	enc.n += int64(n)
	return err
}

func (enc *Encoder) writeLen(l int) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(l))
	return enc.write(buf[:])
}

// Decode reads into v; supported types are *fr.Element, *fp.Element,
// *G1Affine, *G2Affine, *[]G1Affine and *[]G2Affine. Points are expected
// compressed unless the Decoder was created with RawDecoding.
func (dec *Decoder) Decode(v interface{}) error {
	switch t := v.(type) {
	case *fr.Element:
		var buf [fr.Bytes]byte
		if err := dec.read(buf[:]); err != nil {
			return err
		}
		return t.SetBytesCanonical(buf[:])
	case *fp.Element:
		var buf [fp.Bytes]byte
		if err := dec.read(buf[:]); err != nil {
			return err
		}
		return t.SetBytesCanonical(buf[:])
	case *G1Affine:
		return dec.decodeG1(t)
	case *G2Affine:
		return dec.decodeG2(t)
	case *[]G1Affine:
		l, err := dec.readLen()
		if err != nil {
			return err
		}
		*t = make([]G1Affine, l)
		for i := range *t {
			if err := dec.decodeG1(&(*t)[i]); err != nil {
				return err
			}
		}
		return nil
	case *[]G2Affine:
		l, err := dec.readLen()
		if err != nil {
			return err
		}
		*t = make([]G2Affine, l)
		for i := range *t {
			if err := dec.decodeG2(&(*t)[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New("bls381: unsupported type for decoding")
	}
}

func (dec *Decoder) decodeG1(p *G1Affine) error {
	if dec.raw {
		var buf [SizeOfG1AffineUncompressed]byte
		if err := dec.read(buf[:]); err != nil {
			return err
		}
		if dec.subGroupChecks {
			return p.SetRawBytes(buf[:])
		}
		return p.SetRawBytesUnchecked(buf[:])
	}
	var buf [SizeOfG1AffineCompressed]byte
	if err := dec.read(buf[:]); err != nil {
		return err
	}
	if dec.subGroupChecks {
		return p.SetBytes(buf[:])
	}
	return p.SetBytesUnchecked(buf[:])
}

func (dec *Decoder) decodeG2(p *G2Affine) error {
	if dec.raw {
		var buf [SizeOfG2AffineUncompressed]byte
		if err := dec.read(buf[:]); err != nil {
			return err
		}
		if dec.subGroupChecks {
			return p.SetRawBytes(buf[:])
		}
		return p.SetRawBytesUnchecked(buf[:])
	}
	var buf [SizeOfG2AffineCompressed]byte
	if err := dec.read(buf[:]); err != nil {
		return err
	}
	if dec.subGroupChecks {
		return p.SetBytes(buf[:])
	}
	return p.SetBytesUnchecked(buf[:])
}

func (dec *Decoder) read(buf []byte) error {
	n, err := io.ReadFull(dec.r, buf)
	dec.n += int64(n)
	return err
}

func (dec *Decoder) readLen() (int, error) {
	var buf [4]byte
	if err := dec.read(buf[:]); err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint32(buf[:])), nil
}
