package field

// u32x8 is an 8-lane vector of 32-bit unsigned integers, the register unit
// of the lane-parallel arithmetic. u64x4 is the same register viewed as four
// 64-bit lanes.
//
// All methods apply the same operations to every lane and never branch on
// lane values.
type (
	u32x8 [8]uint32
	u64x4 [4]uint64
)

func splat32(x uint32) u32x8 { return u32x8{x, x, x, x, x, x, x, x} }

func splat64(x uint64) u64x4 { return u64x4{x, x, x, x} }

func (x u32x8) add(y u32x8) u32x8 {
	for i := range x {
		x[i] += y[i]
	}
	return x
}

func (x u32x8) sub(y u32x8) u32x8 {
	for i := range x {
		x[i] -= y[i]
	}
	return x
}

func (x u32x8) and(y u32x8) u32x8 {
	for i := range x {
		x[i] &= y[i]
	}
	return x
}

// shrv shifts each lane right by the count in the same lane of s.
func (x u32x8) shrv(s u32x8) u32x8 {
	for i := range x {
		x[i] >>= s[i]
	}
	return x
}

// mullo keeps the low 32 bits of the lane-wise products.
func (x u32x8) mullo(y u32x8) u32x8 {
	for i := range x {
		x[i] *= y[i]
	}
	return x
}

// blend takes lane i from y where bit i of m is set and from x otherwise.
func (x u32x8) blend(y u32x8, m uint8) u32x8 {
	for i := range x {
		mask := -uint32(m >> i & 1)
		x[i] = x[i]&^mask | y[i]&mask
	}
	return x
}

// permute sets lane i to x[idx[i]].
func (x u32x8) permute(idx *[8]uint8) u32x8 {
	var out u32x8
	for i := range out {
		out[i] = x[idx[i]&7]
	}
	return out
}

func (x u64x4) add(y u64x4) u64x4 {
	for i := range x {
		x[i] += y[i]
	}
	return x
}

func (x u64x4) sub(y u64x4) u64x4 {
	for i := range x {
		x[i] -= y[i]
	}
	return x
}

func (x u64x4) and(y u64x4) u64x4 {
	for i := range x {
		x[i] &= y[i]
	}
	return x
}

func (x u64x4) shr(n uint) u64x4 {
	for i := range x {
		x[i] >>= n
	}
	return x
}

func (x u64x4) shl(n uint) u64x4 {
	for i := range x {
		x[i] <<= n
	}
	return x
}

// blend takes lane i from y where bit i of m is set and from x otherwise.
func (x u64x4) blend(y u64x4, m Lanes) u64x4 {
	for i := range x {
		mask := -uint64(m >> i & 1)
		x[i] = x[i]&^mask | y[i]&mask
	}
	return x
}

// mul32 multiplies the low 32 bits of each lane of x and y into a full
// 64-bit product, like vpmuludq.
func mul32(x, y u64x4) u64x4 {
	for i := range x {
		x[i] = uint64(uint32(x[i])) * uint64(uint32(y[i]))
	}
	return x
}

// unpackPair splits a packed register
//
//	(a0, b0, a1, b1, c0, d0, c1, d1)
//
// into the 64-bit vectors (a0, b0, c0, d0) and (a1, b1, c1, d1).
func unpackPair(x u32x8) (lo, hi u64x4) {
	lo = u64x4{uint64(x[0]), uint64(x[1]), uint64(x[4]), uint64(x[5])}
	hi = u64x4{uint64(x[2]), uint64(x[3]), uint64(x[6]), uint64(x[7])}
	return lo, hi
}

// repackPair is the inverse of unpackPair. Only the low 32 bits of each
// lane are kept.
func repackPair(lo, hi u64x4) u32x8 {
	return u32x8{
		uint32(lo[0]), uint32(lo[1]), uint32(hi[0]), uint32(hi[1]),
		uint32(lo[2]), uint32(lo[3]), uint32(hi[2]), uint32(hi[3]),
	}
}
