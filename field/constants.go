package field

// Limbs of p = 2^255 - 19 in radix 2^25.5.
const (
	pLimb0    = 1<<26 - 19
	pLimbEven = 1<<26 - 1
	pLimbOdd  = 1<<25 - 1
)

// Multiples of p split at register 0, which is the only register holding
// limb 0:
//
//	(2p, 2p, 2p, 2p) = [pTimes2Lo, pTimes2Hi, pTimes2Hi, pTimes2Hi, pTimes2Hi]
//
// Adding them before a limb-wise subtraction keeps every limb non-negative.
var (
	pTimes2Lo = u32x8{
		pLimb0 << 1, pLimb0 << 1, pLimbOdd << 1, pLimbOdd << 1,
		pLimb0 << 1, pLimb0 << 1, pLimbOdd << 1, pLimbOdd << 1,
	}
	pTimes2Hi = u32x8{
		pLimbEven << 1, pLimbEven << 1, pLimbOdd << 1, pLimbOdd << 1,
		pLimbEven << 1, pLimbEven << 1, pLimbOdd << 1, pLimbOdd << 1,
	}
	pTimes16Lo = u32x8{
		pLimb0 << 4, pLimb0 << 4, pLimbOdd << 4, pLimbOdd << 4,
		pLimb0 << 4, pLimb0 << 4, pLimbOdd << 4, pLimbOdd << 4,
	}
	pTimes16Hi = u32x8{
		pLimbEven << 4, pLimbEven << 4, pLimbOdd << 4, pLimbOdd << 4,
		pLimbEven << 4, pLimbEven << 4, pLimbOdd << 4, pLimbOdd << 4,
	}
)

// pTimes2Masked is 2p in slots B and C and zero in slots A and D.
var pTimes2Masked = Element4{[5]u32x8{
	{0, 134217690, 0, 67108862, 134217690, 0, 67108862, 0},
	{0, 134217726, 0, 67108862, 134217726, 0, 67108862, 0},
	{0, 134217726, 0, 67108862, 134217726, 0, 67108862, 0},
	{0, 134217726, 0, 67108862, 134217726, 0, 67108862, 0},
	{0, 134217726, 0, 67108862, 134217726, 0, 67108862, 0},
}}

// Limb masks and carry shifts of a packed register.
var (
	registerShifts = u32x8{26, 26, 25, 25, 26, 26, 25, 25}
	registerMasks  = u32x8{
		1<<26 - 1, 1<<26 - 1, 1<<25 - 1, 1<<25 - 1,
		1<<26 - 1, 1<<26 - 1, 1<<25 - 1, 1<<25 - 1,
	}

	low25Bits = splat64(1<<25 - 1)
	low26Bits = splat64(1<<26 - 1)

	// p * 2^37 in 64-bit limbs, used to negate column sums before the
	// final carry.
	pLimb0Times2p37    = splat64(pLimb0 << 37)
	pLimbEvenTimes2p37 = splat64(pLimbEven << 37)
	pLimbOddTimes2p37  = splat64(pLimbOdd << 37)
)
