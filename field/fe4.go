package field

import "crypto/subtle"

// Element4 holds four elements of GF(2^255-19), the slots A, B, C and D,
// so that every operation acts on all of them at once.
//
// Each slot x is kept in radix 2^25.5 and represents the integer
//
//	x_0 + x_1*2^26 + x_2*2^51 + x_3*2^77 + x_4*2^102 +
//	x_5*2^128 + x_6*2^153 + x_7*2^179 + x_8*2^204 + x_9*2^230
//
// Limbs are not kept reduced between operations. An Element4 is said to be
// bounded by b when its even limbs are below 2^(26+b) and its odd limbs are
// below 2^(25+b); every method documents the bounds it accepts and
// produces. Exceeding them silently produces wrong results.
//
// All arguments and receivers are allowed to alias. The zero value is four
// zero elements.
type Element4 struct {
	// v[i] holds limbs 2i and 2i+1 of the four slots as
	//     (a_2i, b_2i, a_2i+1, b_2i+1, c_2i, d_2i, c_2i+1, d_2i+1)
	v [5]u32x8
}

// NewElement4 returns the Element4 with slots (a, b, c, d), bounded by
// b = 0.
func NewElement4(a, b, c, d *Element) *Element4 {
	var x [4][10]uint32
	a.limbs(&x[0])
	b.limbs(&x[1])
	c.limbs(&x[2])
	d.limbs(&x[3])
	return new(Element4).SetLimbs(&x)
}

// SetLimbs sets slot s of v from the radix 2^25.5 limbs x[s], and returns
// v. The limbs are used as is.
func (v *Element4) SetLimbs(x *[4][10]uint32) *Element4 {
	for i := range v.v {
		for s := range 4 {
			v.v[i][evenPos[s]] = x[s][2*i]
			v.v[i][oddPos[s]] = x[s][2*i+1]
		}
	}
	return v
}

// SetRegisters sets v from its packed register form, where r[i] holds
// limbs 2i and 2i+1 as (a_2i, b_2i, a_2i+1, b_2i+1, c_2i, d_2i, c_2i+1,
// d_2i+1), and returns v.
func (v *Element4) SetRegisters(r *[5][8]uint32) *Element4 {
	for i := range v.v {
		v.v[i] = u32x8(r[i])
	}
	return v
}

// Limbs returns the radix 2^25.5 limbs of the four slots of v.
func (v *Element4) Limbs() [4][10]uint32 {
	var x [4][10]uint32
	for i := range v.v {
		for s := range 4 {
			x[s][2*i] = v.v[i][evenPos[s]]
			x[s][2*i+1] = v.v[i][oddPos[s]]
		}
	}
	return x
}

// Split returns the four slots of v as canonical elements.
func (v *Element4) Split() [4]Element {
	var r Element4
	x := r.Reduce(v).Limbs()

	var out [4]Element
	for s := range out {
		out[s].setLimbs(&x[s])
	}
	return out
}

// Set sets v = a, and returns v.
func (v *Element4) Set(a *Element4) *Element4 {
	*v = *a
	return v
}

// Zero sets every slot of v to 0, and returns v.
func (v *Element4) Zero() *Element4 {
	*v = Element4{}
	return v
}

// Add sets v = a + b slot-wise, and returns v.
//
// No carry is performed: the bound of the result is that of the sum of the
// limbs, which must stay below 2^32.
func (v *Element4) Add(a, b *Element4) *Element4 {
	for i := range v.v {
		v.v[i] = a.v[i].add(b.v[i])
	}
	return v
}

// Subtract sets v = a - b slot-wise, and returns v.
//
// 16p is added before subtracting, so b may be bounded by up to b < 3.999
// and a by b < 5.5.
// The result is carried and bounded by b < 0.0002.
func (v *Element4) Subtract(a, b *Element4) *Element4 {
	v.v[0] = a.v[0].add(pTimes16Lo).sub(b.v[0])
	for i := 1; i < len(v.v); i++ {
		v.v[i] = a.v[i].add(pTimes16Hi).sub(b.v[i])
	}
	return v.Carry(v)
}

// Negate sets v = -a slot-wise, and returns v.
//
// a must be bounded by b < 3.999. The result is bounded by b < 0.0002.
func (v *Element4) Negate(a *Element4) *Element4 {
	v.v[0] = pTimes16Lo.sub(a.v[0])
	for i := 1; i < len(v.v); i++ {
		v.v[i] = pTimes16Hi.sub(a.v[i])
	}
	return v.Carry(v)
}

// NegateLazy sets v = 2p - a slot-wise without carrying, and returns v.
//
// a must be bounded by b < 0.999. The result is bounded by b < 1.0.
func (v *Element4) NegateLazy(a *Element4) *Element4 {
	v.v[0] = pTimes2Lo.sub(a.v[0])
	for i := 1; i < len(v.v); i++ {
		v.v[i] = pTimes2Hi.sub(a.v[i])
	}
	return v
}

var maskBC = LanesBC.mask()

// SubtractBC sets slots B and C of v to a - b and slots A and D to a, and
// returns v. No carry is performed.
//
// Slots B and C of b must be bounded by b < 0.999.
func (v *Element4) SubtractBC(a, b *Element4) *Element4 {
	for i := range v.v {
		v.v[i] = a.v[i].add(pTimes2Masked.v[i]).sub(b.v[i].and(maskBC))
	}
	return v
}

// rotatePairs swaps the even and odd limb positions of each slot.
var rotatePairs = [8]uint8{2, 3, 0, 1, 6, 7, 4, 5}

// oddPositions selects the odd limb positions of a register.
const oddPositions = 0b11001100

// Carry performs one round of carries on all limbs in parallel, and
// returns v.
//
// a may hold any 32-bit limbs. Every carry out is below 2^7, so the result
// is bounded by b < 0.0002.
func (v *Element4) Carry(a *Element4) *Element4 {
	// c[i] holds the carry out of every limb of register i, rotated so that
	// it sits in the position of the limb it goes into.
	var c [5]u32x8
	for i := range c {
		c[i] = a.v[i].shrv(registerShifts).permute(&rotatePairs)
	}

	// The carry out of limb 9 wraps around to limb 0 times 19.
	prev := c[4].mullo(splat32(19))
	for i := range v.v {
		v.v[i] = a.v[i].and(registerMasks).add(prev.blend(c[i], oddPositions))
		prev = c[i]
	}
	return v
}

// carry64 moves the bits of z[i] above its limb width into z[i+1].
func carry64(z *[10]u64x4, i int) {
	if i%2 == 0 {
		z[i+1] = z[i+1].add(z[i].shr(26))
		z[i] = z[i].and(low26Bits)
	} else {
		z[i+1] = z[i+1].add(z[i].shr(25))
		z[i] = z[i].and(low25Bits)
	}
}

// reduce64 sets v to the column sums z, carried into limbs, and returns v.
// Every z[i] must be below 2^64; the result is bounded by b < 0.007.
func (v *Element4) reduce64(z *[10]u64x4) *Element4 {
	// Two halves of the carry chain interleaved.
	carry64(z, 0)
	carry64(z, 4)
	carry64(z, 1)
	carry64(z, 5)
	carry64(z, 2)
	carry64(z, 6)
	carry64(z, 3)
	carry64(z, 7)
	// z[4] < 2^26 + 2^39 after the carry from z[3].
	carry64(z, 4)
	carry64(z, 8)

	// The carry out of z[9] is below 2^39. It is split at 2^26 so that both
	// halves times 19 fit in a 32-bit multiplication; the high half lands
	// in limb 1, which starts at 2^26.
	v19 := splat64(19)
	c := z[9].shr(25)
	z[9] = z[9].and(low25Bits)
	z[0] = z[0].add(mul32(c.and(low26Bits), v19)) // < 2^26 + 2^30.25
	z[1] = z[1].add(mul32(c.shr(26), v19))        // < 2^25 + 2^17.25
	carry64(z, 0)

	for i := range v.v {
		v.v[i] = repackPair(z[2*i], z[2*i+1])
	}
	return v
}

func sum(terms ...u64x4) u64x4 {
	var s u64x4
	for _, t := range terms {
		s = s.add(t)
	}
	return s
}

// Multiply sets v = a * b slot-wise, and returns v.
//
// a must be bounded by b < 2.5 and b by b < 1.75. The result is bounded by
// b < 0.007.
func (v *Element4) Multiply(a, b *Element4) *Element4 {
	var x, y [10]u64x4
	for i := range 5 {
		x[i*2], x[i*2+1] = unpackPair(a.v[i])
		y[i*2], y[i*2+1] = unpackPair(b.v[i])
	}

	// Products of two odd limbs land at twice the weight of the column
	// they are summed into, and columns past 2^255 wrap around times 19.
	// 19*y[i] fits in 32 bits as long as b < 1.75.
	var x2, y19 [10]u64x4
	v19 := splat64(19)
	for i := 1; i < 10; i++ {
		y19[i] = mul32(y[i], v19)
	}
	for i := 1; i < 10; i += 2 {
		x2[i] = x[i].add(x[i])
	}

	m := mul32
	var z [10]u64x4
	z[0] = sum(m(x[0], y[0]), m(x2[1], y19[9]), m(x[2], y19[8]), m(x2[3], y19[7]), m(x[4], y19[6]),
		m(x2[5], y19[5]), m(x[6], y19[4]), m(x2[7], y19[3]), m(x[8], y19[2]), m(x2[9], y19[1]))
	z[1] = sum(m(x[0], y[1]), m(x[1], y[0]), m(x[2], y19[9]), m(x[3], y19[8]), m(x[4], y19[7]),
		m(x[5], y19[6]), m(x[6], y19[5]), m(x[7], y19[4]), m(x[8], y19[3]), m(x[9], y19[2]))
	z[2] = sum(m(x[0], y[2]), m(x2[1], y[1]), m(x[2], y[0]), m(x2[3], y19[9]), m(x[4], y19[8]),
		m(x2[5], y19[7]), m(x[6], y19[6]), m(x2[7], y19[5]), m(x[8], y19[4]), m(x2[9], y19[3]))
	z[3] = sum(m(x[0], y[3]), m(x[1], y[2]), m(x[2], y[1]), m(x[3], y[0]), m(x[4], y19[9]),
		m(x[5], y19[8]), m(x[6], y19[7]), m(x[7], y19[6]), m(x[8], y19[5]), m(x[9], y19[4]))
	z[4] = sum(m(x[0], y[4]), m(x2[1], y[3]), m(x[2], y[2]), m(x2[3], y[1]), m(x[4], y[0]),
		m(x2[5], y19[9]), m(x[6], y19[8]), m(x2[7], y19[7]), m(x[8], y19[6]), m(x2[9], y19[5]))
	z[5] = sum(m(x[0], y[5]), m(x[1], y[4]), m(x[2], y[3]), m(x[3], y[2]), m(x[4], y[1]),
		m(x[5], y[0]), m(x[6], y19[9]), m(x[7], y19[8]), m(x[8], y19[7]), m(x[9], y19[6]))
	z[6] = sum(m(x[0], y[6]), m(x2[1], y[5]), m(x[2], y[4]), m(x2[3], y[3]), m(x[4], y[2]),
		m(x2[5], y[1]), m(x[6], y[0]), m(x2[7], y19[9]), m(x[8], y19[8]), m(x2[9], y19[7]))
	z[7] = sum(m(x[0], y[7]), m(x[1], y[6]), m(x[2], y[5]), m(x[3], y[4]), m(x[4], y[3]),
		m(x[5], y[2]), m(x[6], y[1]), m(x[7], y[0]), m(x[8], y19[9]), m(x[9], y19[8]))
	z[8] = sum(m(x[0], y[8]), m(x2[1], y[7]), m(x[2], y[6]), m(x2[3], y[5]), m(x[4], y[4]),
		m(x2[5], y[3]), m(x[6], y[2]), m(x2[7], y[1]), m(x[8], y[0]), m(x2[9], y19[9]))
	z[9] = sum(m(x[0], y[9]), m(x[1], y[8]), m(x[2], y[7]), m(x[3], y[6]), m(x[4], y[5]),
		m(x[5], y[4]), m(x[6], y[3]), m(x[7], y[2]), m(x[8], y[1]), m(x[9], y[0]))

	// z[0] is the largest column, below 124.5 * 2^(52+5.25) < 2^63.2.
	return v.reduce64(&z)
}

// Square sets v = a * a slot-wise, and returns v.
//
// a must be bounded by b < 1.5. The result is bounded by b < 0.007.
func (v *Element4) Square(a *Element4) *Element4 {
	return v.square(a, 0)
}

// SquareAndNegateD sets v to (A², B², C², -D²) where a = (A, B, C, D), and
// returns v. Bounds are the same as for [Element4.Square].
func (v *Element4) SquareAndNegateD(a *Element4) *Element4 {
	return v.square(a, LaneD)
}

// square squares every slot and negates the slots in neg before the final
// carry.
func (v *Element4) square(a *Element4, neg Lanes) *Element4 {
	var x [10]u64x4
	for i := range 5 {
		x[i*2], x[i*2+1] = unpackPair(a.v[i])
	}

	var x2, x19 [10]u64x4
	v19 := splat64(19)
	for i := range 8 {
		x2[i] = x[i].add(x[i])
	}
	for i := 5; i < 10; i++ {
		x19[i] = mul32(x[i], v19)
	}

	m := mul32
	var z [10]u64x4
	z[0] = sum(m(x[0], x[0]), m(x2[2], x19[8]), m(x2[4], x19[6]),
		sum(m(x2[1], x19[9]), m(x2[3], x19[7]), m(x[5], x19[5])).shl(1))
	z[1] = sum(m(x2[0], x[1]), m(x2[3], x19[8]), m(x2[5], x19[6]),
		sum(m(x[2], x19[9]), m(x[4], x19[7])).shl(1))
	z[2] = sum(m(x2[0], x[2]), m(x2[1], x[1]), m(x2[4], x19[8]), m(x[6], x19[6]),
		sum(m(x2[3], x19[9]), m(x2[5], x19[7])).shl(1))
	z[3] = sum(m(x2[0], x[3]), m(x2[1], x[2]), m(x2[5], x19[8]),
		sum(m(x[4], x19[9]), m(x[6], x19[7])).shl(1))
	z[4] = sum(m(x2[0], x[4]), m(x2[1], x2[3]), m(x[2], x[2]), m(x2[6], x19[8]),
		sum(m(x2[5], x19[9]), m(x[7], x19[7])).shl(1))
	z[5] = sum(m(x2[0], x[5]), m(x2[1], x[4]), m(x2[2], x[3]), m(x2[7], x19[8]),
		m(x[6], x19[9]).shl(1))
	z[6] = sum(m(x2[0], x[6]), m(x2[1], x2[5]), m(x2[2], x[4]), m(x2[3], x[3]), m(x[8], x19[8]),
		m(x2[7], x19[9]).shl(1))
	z[7] = sum(m(x2[0], x[7]), m(x2[1], x[6]), m(x2[2], x[5]), m(x2[3], x[4]),
		m(x[8], x19[9]).shl(1))
	z[8] = sum(m(x2[0], x[8]), m(x2[1], x2[7]), m(x2[2], x[6]), m(x2[3], x2[5]), m(x[4], x[4]),
		m(x[9], x19[9]).shl(1))
	z[9] = sum(m(x2[0], x[9]), m(x2[1], x[8]), m(x2[2], x[7]), m(x2[3], x[6]), m(x2[4], x[5]))

	// Negation subtracts each column from the matching limb of p*2^37,
	// which exceeds every column while b < 1.5.
	z[0] = z[0].blend(pLimb0Times2p37.sub(z[0]), neg)
	for i := 1; i < 10; i++ {
		p := pLimbEvenTimes2p37
		if i%2 == 1 {
			p = pLimbOddTimes2p37
		}
		z[i] = z[i].blend(p.sub(z[i]), neg)
	}

	return v.reduce64(&z)
}

// Mult32 sets v = a * (s0, s1, s2, s3), multiplying each slot by its own
// small constant, and returns v.
//
// a may hold any 32-bit limbs and s0, s1, s2, s3 must be below 2^18, which
// covers 2*121666. The result is bounded by b < 0.007.
func (v *Element4) Mult32(a *Element4, s0, s1, s2, s3 uint32) *Element4 {
	s := u64x4{uint64(s0), uint64(s1), uint64(s2), uint64(s3)}
	var z [10]u64x4
	for i := range 5 {
		lo, hi := unpackPair(a.v[i])
		z[i*2], z[i*2+1] = mul32(lo, s), mul32(hi, s)
	}
	return v.reduce64(&z)
}

// Reduce sets every slot of v to its canonical value in [0, p), and
// returns v.
//
// a may hold any 32-bit limbs. The subtraction of p is folded into the
// carry chain, so the same instructions run whatever the value.
func (v *Element4) Reduce(a *Element4) *Element4 {
	var z [10]u64x4
	for i := range 5 {
		z[i*2], z[i*2+1] = unpackPair(a.v[i])
	}

	v19 := splat64(19)
	for i := range 9 {
		carry64(&z, i)
	}
	z[0] = z[0].add(mul32(z[9].shr(25), v19))
	z[9] = z[9].and(low25Bits)
	for i := range 9 {
		carry64(&z, i)
	}

	// Now limbs 0 to 8 are in range and z[9] <= 2^25, so the value is
	// below 2p. It is at least p iff adding 19 carries out of bit 255.
	c := z[0].add(v19).shr(26)
	for i := 1; i < 10; i++ {
		c = z[i].add(c).shr(26 - uint(i%2))
	}

	// If the value is at least p, adding 19 and dropping bit 255 subtracts p.
	z[0] = z[0].add(mul32(c, v19))
	for i := range 9 {
		carry64(&z, i)
	}
	z[9] = z[9].and(low25Bits)

	for i := range v.v {
		v.v[i] = repackPair(z[2*i], z[2*i+1])
	}
	return v
}

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *Element4) Select(a, b *Element4, cond int) *Element4 {
	m := ^(uint32(cond) - 1)
	for i := range v.v {
		for j := range v.v[i] {
			v.v[i][j] = m&a.v[i][j] | ^m&b.v[i][j]
		}
	}
	return v
}

// Equal returns 1 if all four slots of v and u are equal modulo p, and 0
// otherwise.
func (v *Element4) Equal(u *Element4) int {
	var a, b Element4
	a.Reduce(v)
	b.Reduce(u)

	var acc uint32
	for i := range a.v {
		for j := range a.v[i] {
			acc |= a.v[i][j] ^ b.v[i][j]
		}
	}
	return subtle.ConstantTimeEq(int32(acc), 0)
}

// ZeroLanes returns the set of slots of v equal to 0 modulo p.
func (v *Element4) ZeroLanes() Lanes {
	var r Element4
	r.Reduce(v)

	var zero Lanes
	for s := range 4 {
		var acc uint32
		for i := range r.v {
			acc |= r.v[i][evenPos[s]] | r.v[i][oddPos[s]]
		}
		zero |= Lanes(subtle.ConstantTimeEq(int32(acc), 0)) << s
	}
	return zero
}

// Invert sets every slot of v to the inverse of the same slot of z, and
// returns v. Slots equal to 0 invert to 0.
//
// z must be bounded by b < 1.5.
func (v *Element4) Invert(z *Element4) *Element4 {
	// Inversion is implemented as exponentiation with exponent p - 2, using
	// 254 squarings and 11 multiplications on all slots at once.
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t Element4

	z2.Square(z)             // 2
	t.Square(&z2)            // 4
	t.Square(&t)             // 8
	z9.Multiply(&t, z)       // 9
	z11.Multiply(&z9, &z2)   // 11
	t.Square(&z11)           // 22
	z2_5_0.Multiply(&t, &z9) // 31 = 2^5 - 2^0

	t.Square(&z2_5_0) // 2^6 - 2^1
	for range 4 {
		t.Square(&t) // 2^10 - 2^5
	}
	z2_10_0.Multiply(&t, &z2_5_0) // 2^10 - 2^0

	t.Square(&z2_10_0) // 2^11 - 2^1
	for range 9 {
		t.Square(&t) // 2^20 - 2^10
	}
	z2_20_0.Multiply(&t, &z2_10_0) // 2^20 - 2^0

	t.Square(&z2_20_0) // 2^21 - 2^1
	for range 19 {
		t.Square(&t) // 2^40 - 2^20
	}
	t.Multiply(&t, &z2_20_0) // 2^40 - 2^0

	t.Square(&t) // 2^41 - 2^1
	for range 9 {
		t.Square(&t) // 2^50 - 2^10
	}
	z2_50_0.Multiply(&t, &z2_10_0) // 2^50 - 2^0

	t.Square(&z2_50_0) // 2^51 - 2^1
	for range 49 {
		t.Square(&t) // 2^100 - 2^50
	}
	z2_100_0.Multiply(&t, &z2_50_0) // 2^100 - 2^0

	t.Square(&z2_100_0) // 2^101 - 2^1
	for range 99 {
		t.Square(&t) // 2^200 - 2^100
	}
	t.Multiply(&t, &z2_100_0) // 2^200 - 2^0

	t.Square(&t) // 2^201 - 2^1
	for range 49 {
		t.Square(&t) // 2^250 - 2^50
	}
	t.Multiply(&t, &z2_50_0) // 2^250 - 2^0

	t.Square(&t) // 2^251 - 2^1
	t.Square(&t) // 2^252 - 2^2
	t.Square(&t) // 2^253 - 2^3
	t.Square(&t) // 2^254 - 2^4
	t.Square(&t) // 2^255 - 2^5

	return v.Multiply(&t, &z11) // 2^255 - 21
}
