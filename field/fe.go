package field

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"math/bits"
)

// Element represents an element of the field GF(2^255-19) in canonical
// form. It is the exchange format between encoded bytes and the
// lane-parallel [Element4].
//
// This type works similarly to [filippo.io/edwards25519/field.Element],
// and all arguments and receivers are allowed to alias.
//
// The zero value is a valid zero element.
type Element struct {
	// An element t represents the integer
	//     t.l0 + t.l1*2^64 + t.l2*2^128 + t.l3*2^192
	// and is always below 2^255 - 19.
	l0 uint64
	l1 uint64
	l2 uint64
	l3 uint64
}

// Set sets v = a, and returns v.
func (v *Element) Set(a *Element) *Element {
	*v = *a
	return v
}

// SetBytes sets v to x, where x is a 32-byte little-endian encoding. If x is
// not of the right length, SetBytes returns nil and an error, and the
// receiver is unchanged.
//
// Consistent with RFC 7748, the most significant bit (the high bit of the
// last byte) is ignored, and non-canonical values (2^255-19 through 2^255-1)
// are accepted and reduced. Note that this is laxer than specified by
// RFC 8032, but consistent with most Ed25519 implementations.
func (v *Element) SetBytes(x []byte) (*Element, error) {
	if len(x) != 32 {
		return nil, errors.New("edwards25519x4: invalid field element input size")
	}

	v.l0 = binary.LittleEndian.Uint64(x[0*8:])
	v.l1 = binary.LittleEndian.Uint64(x[1*8:])
	v.l2 = binary.LittleEndian.Uint64(x[2*8:])
	v.l3 = binary.LittleEndian.Uint64(x[3*8:])
	v.l3 &= (1<<63 - 1)

	return v.reduce(), nil
}

// reduce subtracts p from v if v >= p. v must be below 2^255.
func (v *Element) reduce() *Element {
	// v >= 2^255 - 19 iff v + 19 has bit 255 set, and then v + 19 - 2^255
	// is the reduced value.
	t0, c := bits.Add64(v.l0, 19, 0)
	t1, c := bits.Add64(v.l1, 0, c)
	t2, c := bits.Add64(v.l2, 0, c)
	t3, _ := bits.Add64(v.l3, 0, c)

	m := -(t3 >> 63)
	t3 &= 1<<63 - 1

	v.l0 = m&t0 | ^m&v.l0
	v.l1 = m&t1 | ^m&v.l1
	v.l2 = m&t2 | ^m&v.l2
	v.l3 = m&t3 | ^m&v.l3
	return v
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *Element) Bytes() []byte {
	// This function is outlined to make the allocations inline in the caller
	// rather than happen on the heap.
	var out [32]byte
	return v.bytes(&out)
}

// FillBytes sets buf the canonical 32-byte little-endian encoding of v, and returns buf.
// If the value of v doesn't fit in buf, FillBytes will panic.
func (v *Element) FillBytes(buf []byte) []byte {
	binary.LittleEndian.PutUint64(buf[0*8:], v.l0)
	binary.LittleEndian.PutUint64(buf[1*8:], v.l1)
	binary.LittleEndian.PutUint64(buf[2*8:], v.l2)
	binary.LittleEndian.PutUint64(buf[3*8:], v.l3)

	return buf
}

func (v *Element) bytes(out *[32]byte) []byte {
	return v.FillBytes(out[:])
}

// Equal returns 1 if v and u are equal, and 0 otherwise.
func (v *Element) Equal(u *Element) int {
	su, sv := u.Bytes(), v.Bytes()
	return subtle.ConstantTimeCompare(su, sv)
}

// mask64Bits returns 0xffffffffffffffff if cond is 1, and 0 otherwise.
func mask64Bits(cond int) uint64 { return ^(uint64(cond) - 1) }

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *Element) Select(a, b *Element, cond int) *Element {
	m := mask64Bits(cond)
	v.l0 = (m & a.l0) | (^m & b.l0)
	v.l1 = (m & a.l1) | (^m & b.l1)
	v.l2 = (m & a.l2) | (^m & b.l2)
	v.l3 = (m & a.l3) | (^m & b.l3)
	return v
}

// Swap swaps v and u if cond == 1 or leaves them unchanged if cond == 0.
func (v *Element) Swap(u *Element, cond int) {
	m := mask64Bits(cond)
	t := m & (v.l0 ^ u.l0)
	v.l0 ^= t
	u.l0 ^= t
	t = m & (v.l1 ^ u.l1)
	v.l1 ^= t
	u.l1 ^= t
	t = m & (v.l2 ^ u.l2)
	v.l2 ^= t
	u.l2 ^= t
	t = m & (v.l3 ^ u.l3)
	v.l3 ^= t
	u.l3 ^= t
}

var feZero = &Element{0, 0, 0, 0}

// Zero sets v = 0, and returns v.
func (v *Element) Zero() *Element {
	*v = *feZero
	return v
}

var feOne = &Element{1, 0, 0, 0}

// One sets v = 1, and returns v.
func (v *Element) One() *Element {
	*v = *feOne
	return v
}

// IsNegative returns 1 if v is negative, and 0 otherwise.
func (v *Element) IsNegative() int {
	return int(v.l0 & 1)
}

// limbs splits v into ten limbs of alternating 26 and 25 bits.
func (v *Element) limbs(x *[10]uint32) {
	var buf [32]byte
	b := v.bytes(&buf)

	var acc uint64
	var n, j uint
	for i := range x {
		w := 26 - uint(i%2)
		for n < w {
			acc |= uint64(b[j]) << n
			n += 8
			j++
		}
		x[i] = uint32(acc & (1<<w - 1))
		acc >>= w
		n -= w
	}
}

// setLimbs sets v from ten limbs of alternating 26 and 25 bits, which must
// be in range and encode a value below p.
func (v *Element) setLimbs(x *[10]uint32) *Element {
	var buf [32]byte

	var acc uint64
	var n, j uint
	for i, l := range x {
		acc |= uint64(l) << n
		n += 26 - uint(i%2)
		for n >= 8 {
			buf[j] = byte(acc)
			acc >>= 8
			n -= 8
			j++
		}
	}
	buf[j] = byte(acc)

	v.l0 = binary.LittleEndian.Uint64(buf[0*8:])
	v.l1 = binary.LittleEndian.Uint64(buf[1*8:])
	v.l2 = binary.LittleEndian.Uint64(buf[2*8:])
	v.l3 = binary.LittleEndian.Uint64(buf[3*8:])
	return v
}
