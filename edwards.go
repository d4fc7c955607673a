// Package edwards25519x4 implements the edwards25519 group with the four
// extended coordinates of a point processed in parallel.
//
// A point (X : Y : Z : T) is held in the four slots of a single
// [field.Element4], so the addition and doubling formulas become a handful
// of lane-parallel multiplications, squarings and additions plus slot
// shuffles, instead of a sequence of independent field operations.
//
// The formulas are the ones of the AVX2 backend of [curve25519-dalek],
// which in turn follow [HWCD08] with the curve scaled so that d only
// appears through the small constants 121665 and 121666.
//
// All operations run in constant time with respect to point values.
// Scalar multiplication and point encoding are left to callers:
// [ExtendedPoint.SetEdwards] and [ExtendedPoint.Edwards] exchange points
// with [filippo.io/edwards25519]. The only encoding provided here is the
// Montgomery u-coordinate, with [BatchBytesMontgomery] amortizing the field
// inversion over many points.
//
// [curve25519-dalek]: https://github.com/dalek-cryptography/curve25519-dalek
// [HWCD08]: https://eprint.iacr.org/2008/522
package edwards25519x4

import "github.com/AlexanderYastrebov/edwards25519x4/field"

// The curve constant is d = -121665/121666.
const (
	dNum uint32 = 121665
	dDen uint32 = 121666
)

// ExtendedPoint represents a point on the edwards25519 curve in extended
// coordinates (X : Y : Z : T), where x = X/Z, y = Y/Z and xy = T/Z.
//
// Coordinates are bounded by b < 0.007 between operations.
//
// The zero value is NOT valid, and may be used only as a receiver.
type ExtendedPoint struct {
	// (X, Y, Z, T) in slots (A, B, C, D).
	e field.Element4
}

// CachedPoint is a point prepared to be added to an [ExtendedPoint]. It
// holds
//
//	(121666(Y-X), 121666(Y+X), 2*121666*Z, -2*121665*T)
//
// so that an addition needs no multiplication by d.
//
// Coordinates are bounded by b < 1.0.
//
// The zero value is NOT valid, and may be used only as a receiver.
type CachedPoint struct {
	e field.Element4
}

var (
	feZero = new(field.Element)
	feOne  = new(field.Element).One()

	zero4 field.Element4
	one4  = *field.NewElement4(feOne, feOne, feOne, feOne)
)

var identity = ExtendedPoint{*field.NewElement4(feZero, feOne, feOne, feZero)}

// NewIdentityPoint returns a new ExtendedPoint set to the identity.
func NewIdentityPoint() *ExtendedPoint {
	return new(ExtendedPoint).Identity()
}

// Identity sets v to the identity point (0 : 1 : 1 : 0), and returns v.
func (v *ExtendedPoint) Identity() *ExtendedPoint {
	*v = identity
	return v
}

// NewGeneratorPoint returns a new ExtendedPoint set to the canonical
// generator B.
func NewGeneratorPoint() *ExtendedPoint {
	return new(ExtendedPoint).Generator()
}

// Generator sets v to the canonical generator B, and returns v.
func (v *ExtendedPoint) Generator() *ExtendedPoint {
	*v = basepointOddMultiples[0]
	return v
}

// Set sets v = u, and returns v.
func (v *ExtendedPoint) Set(u *ExtendedPoint) *ExtendedPoint {
	*v = *u
	return v
}

// Double sets v = p + p, and returns v.
func (v *ExtendedPoint) Double(p *ExtendedPoint) *ExtendedPoint {
	var tmp0, tmp1 field.Element4

	// (X+Y X+Y X+Y X+Y)
	tmp0.Shuffle(&p.e, field.ShuffleBADC)
	tmp1.Add(&p.e, &tmp0)
	tmp1.Shuffle(&tmp1, field.ShuffleABAB)

	// (X Y Z X+Y)
	tmp0.Blend(&p.e, &tmp1, field.LaneD)

	// (S1 S2 S3 -S4) = (X² Y² Z² -(X+Y)²)
	tmp1.SquareAndNegateD(&tmp0)

	var s1, s2, t field.Element4
	s1.Shuffle(&tmp1, field.ShuffleAAAA)
	s2.Shuffle(&tmp1, field.ShuffleBBBB)

	// (0 0 2S3 -S4)
	tmp0.Add(&tmp1, &tmp1)
	tmp0.Blend(&zero4, &tmp0, field.LaneC)
	tmp0.Blend(&tmp0, &tmp1, field.LaneD)

	// (S1+S2 S1 S1+2S3 S1+S2-S4)
	tmp0.Add(&tmp0, &s1)
	tmp0.Add(&tmp0, t.Blend(&zero4, &s2, field.LanesAD))

	// (S5 S6 S8 S9) = (S1+S2 S1-S2 S1-S2+2S3 S1+S2-S4)
	// bounded by (1.01 1.6 2.33 1.6)
	tmp0.SubtractBC(&tmp0, &s2)

	// With E = -S9, F = -S8, G = -S6 and H = -S5 of the doubling formula,
	// (S8 S5 S8 S5) * (S9 S6 S6 S9) = (EF GH FG EH) = (X3 Y3 Z3 T3).
	tmp1.Shuffle(&tmp0, field.ShuffleDBBD)
	tmp0.Shuffle(&tmp0, field.ShuffleCACA)
	v.e.Multiply(&tmp0, &tmp1)
	return v
}

// Add sets v = p + q, and returns v.
func (v *ExtendedPoint) Add(p, q *ExtendedPoint) *ExtendedPoint {
	var qCached CachedPoint
	return v.AddCached(p, qCached.FromExtended(q))
}

// Subtract sets v = p - q, and returns v.
func (v *ExtendedPoint) Subtract(p, q *ExtendedPoint) *ExtendedPoint {
	var qCached CachedPoint
	qCached.FromExtended(q)
	return v.AddCached(p, qCached.Negate(&qCached))
}

// AddCached sets v = p + q, and returns v.
//
// The formula is complete: it is correct for p == q and for the identity,
// so callers never need to branch on the operands.
func (v *ExtendedPoint) AddCached(p *ExtendedPoint, q *CachedPoint) *ExtendedPoint {
	var tmp, t0, t1 field.Element4

	// (Y1-X1 Y1+X1 Z1 T1)
	tmp.DiffSum(&p.e)
	tmp.Blend(&p.e, &tmp, field.LanesAB)

	// (S8 S9 S10 S11), the products with the cached coordinates
	tmp.Multiply(&tmp, &q.e)

	// (S9-S8 S9+S8 S10-S11 S10+S11) = 121666 * (E H F G)
	tmp.Shuffle(&tmp, field.ShuffleABDC)
	tmp.DiffSum(&tmp)

	// (E G G E) * (F H F H) = (X3 Y3 Z3 T3), up to the factor 121666²
	t0.Shuffle(&tmp, field.ShuffleADDA)
	t1.Shuffle(&tmp, field.ShuffleCBCB)
	v.e.Multiply(&t0, &t1)
	return v
}

// SubtractCached sets v = p - q, and returns v.
func (v *ExtendedPoint) SubtractCached(p *ExtendedPoint, q *CachedPoint) *ExtendedPoint {
	var negQ CachedPoint
	return v.AddCached(p, negQ.Negate(q))
}

// Negate sets v = -p, and returns v.
func (v *ExtendedPoint) Negate(p *ExtendedPoint) *ExtendedPoint {
	var t field.Element4
	t.Negate(&p.e)

	// (-X Y Z -T)
	v.e.Blend(&p.e, &t, field.LanesAD)
	return v
}

// Equal returns 1 if v is equivalent to u, and 0 otherwise.
func (v *ExtendedPoint) Equal(u *ExtendedPoint) int {
	var zu, zv, a, b field.Element4
	zu.Shuffle(&u.e, field.ShuffleCCCC)
	zv.Shuffle(&v.e, field.ShuffleCCCC)

	// (X1Z2 Y1Z2 Z1Z2 T1Z2) and (X2Z1 Y2Z1 Z2Z1 T2Z1)
	a.Multiply(&v.e, &zu)
	b.Multiply(&u.e, &zv)
	return a.Equal(&b)
}

// Normalize sets v to p scaled so that Z = 1, and returns v.
func (v *ExtendedPoint) Normalize(p *ExtendedPoint) *ExtendedPoint {
	var zInv field.Element4
	zInv.Shuffle(&p.e, field.ShuffleCCCC)
	zInv.Invert(&zInv)
	v.e.Multiply(&p.e, &zInv)
	return v
}

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *ExtendedPoint) Select(a, b *ExtendedPoint, cond int) *ExtendedPoint {
	v.e.Select(&a.e, &b.e, cond)
	return v
}

// FromExtended sets v to the cached form of p, and returns v.
func (v *CachedPoint) FromExtended(p *ExtendedPoint) *CachedPoint {
	var t field.Element4

	// (Y-X Y+X Z T)
	t.DiffSum(&p.e)
	v.e.Blend(&p.e, &t, field.LanesAB)

	// (121666(Y-X) 121666(Y+X) 2*121666*Z 2*121665*T)
	v.e.Mult32(&v.e, dDen, dDen, 2*dDen, 2*dNum)

	// Negating T folds in the sign of d.
	t.Negate(&v.e)
	v.e.Blend(&v.e, &t, field.LaneD)
	return v
}

// Set sets v = u, and returns v.
func (v *CachedPoint) Set(u *CachedPoint) *CachedPoint {
	*v = *u
	return v
}

// Negate sets v = -p, and returns v.
func (v *CachedPoint) Negate(p *CachedPoint) *CachedPoint {
	var swapped field.Element4

	// Negating the point swaps Y-X with Y+X and negates T.
	swapped.Shuffle(&p.e, field.ShuffleBACD)
	v.e.NegateLazy(&swapped)
	v.e.Blend(&swapped, &v.e, field.LaneD)
	return v
}

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *CachedPoint) Select(a, b *CachedPoint, cond int) *CachedPoint {
	v.e.Select(&a.e, &b.e, cond)
	return v
}

// CondNegate sets v to -v if cond == 1, and leaves it unchanged if cond == 0.
func (v *CachedPoint) CondNegate(cond int) *CachedPoint {
	var neg CachedPoint
	return v.Select(neg.Negate(v), v, cond)
}
