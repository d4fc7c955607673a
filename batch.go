package edwards25519x4

import "github.com/AlexanderYastrebov/edwards25519x4/field"

// broadcast copies slot s of an Element4 to all four slots.
var broadcast = [4]field.Shuffle{
	field.ShuffleAAAA, field.ShuffleBBBB, field.ShuffleCCCC, field.ShuffleDDDD,
}

// BatchNormalize sets every point of points to an equivalent point with
// Z = 1, using a single field inversion for the whole slice.
//
// The Z coordinates of four points share one Element4, so for n points the
// complexity is
//
//	3M*(n/4-1) + 1I + 1M*n
//
// where M is a lane-parallel multiplication and I an inversion.
//
// https://en.wikipedia.org/wiki/Modular_multiplicative_inverse#Multiple_inverses
func BatchNormalize(points []ExtendedPoint) {
	if len(points) == 0 {
		return
	}

	groups := (len(points) + 3) / 4
	z := make([]field.Element4, groups)
	for g := range z {
		z[g] = gather(points[4*g:min(4*g+4, len(points))], field.ShuffleCCCC, &one4)
	}
	invert(z, make([]field.Element4, groups))

	var zInv field.Element4
	for i := range points {
		zInv.Shuffle(&z[i/4], broadcast[i%4])
		points[i].e.Multiply(&points[i].e, &zInv)
	}
}

// BytesMontgomery returns the canonical encoding of the u-coordinate of the
// Montgomery form of v, as in RFC 7748:
//
//	u = (1 + y) / (1 - y) = (Z + Y) / (Z - Y)
//
// The identity point is encoded as u = 0.
func (v *ExtendedPoint) BytesMontgomery() []byte {
	var num, den field.Element4
	montgomeryFraction(&num, &den, []ExtendedPoint{*v})
	den.Invert(&den)
	u := num.Multiply(&num, &den).Split()
	return u[0].Bytes()
}

// BatchBytesMontgomery returns [ExtendedPoint.BytesMontgomery] of every
// point, using a single field inversion for the whole slice.
func BatchBytesMontgomery(points []ExtendedPoint) [][]byte {
	if len(points) == 0 {
		return nil
	}

	groups := (len(points) + 3) / 4
	num := make([]field.Element4, groups)
	den := make([]field.Element4, groups)
	for g := range groups {
		montgomeryFraction(&num[g], &den[g], points[4*g:min(4*g+4, len(points))])
	}
	invert(den, make([]field.Element4, groups))

	out := make([][]byte, len(points))
	for g := range groups {
		u := num[g].Multiply(&num[g], &den[g]).Split()
		for s := range min(4, len(points)-4*g) {
			out[4*g+s] = u[s].Bytes()
		}
	}
	return out
}

// gather returns the Element4 whose slot s holds the coordinate selected by
// from of points[s], for up to four points. Slots without a point are taken
// from pad.
func gather(points []ExtendedPoint, from field.Shuffle, pad *field.Element4) field.Element4 {
	v := *pad
	var t field.Element4
	for s := range points {
		t.Shuffle(&points[s].e, from)
		v.Blend(&v, &t, field.LaneA<<s)
	}
	return v
}

// montgomeryFraction sets slot s of num and den to Z+Y and Z-Y of
// points[s], for up to four points. For the identity, and for slots without
// a point, they are set to 0 and 1 so that a batch inversion is not spoiled
// by a zero denominator.
func montgomeryFraction(num, den *field.Element4, points []ExtendedPoint) {
	y := gather(points, field.ShuffleBBBB, &zero4)
	z := gather(points, field.ShuffleCCCC, &one4)
	num.Add(&z, &y)
	den.Subtract(&z, &y)

	zero := den.ZeroLanes()
	num.Blend(num, &zero4, zero)
	den.Blend(den, &one4, zero)
}

// invert sets a[i] = 1/a[i] slot-wise using b as a scratch buffer.
//
// The inverses share one product per slot: a slot that is 0 in any a[i]
// becomes 0 in every a[j], so callers must replace zero slots first.
//
// It uses:
//
//	3*(n-1) multiplications
//	1 invert = ~265 multiplications
func invert(a, b []field.Element4) {
	var t field.Element4
	n := len(a)
	pa := new(field.Element4).Set(&a[0]) // a[0]*a[1]*...*a[n-1]
	for i := 1; i < n; i++ {
		b[i].Set(pa)
		pa.Multiply(pa, &a[i])
	}

	paInv := new(field.Element4).Invert(pa)

	for i := n - 1; i > 0; i-- {
		t.Multiply(paInv, &b[i])
		paInv.Multiply(paInv, &a[i])
		a[i].Set(&t)
	}
	a[0].Set(paInv)
}
