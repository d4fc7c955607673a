package edwards25519x4

import (
	"filippo.io/edwards25519"
	edfield "filippo.io/edwards25519/field"

	"github.com/AlexanderYastrebov/edwards25519x4/field"
)

// NewExtendedPoint returns p as an ExtendedPoint.
func NewExtendedPoint(p *edwards25519.Point) *ExtendedPoint {
	return new(ExtendedPoint).SetEdwards(p)
}

// SetEdwards sets v = p, and returns v.
func (v *ExtendedPoint) SetEdwards(p *edwards25519.Point) *ExtendedPoint {
	X, Y, Z, T := p.ExtendedCoordinates()
	v.e = *field.NewElement4(
		fieldElementFromEdwards(X),
		fieldElementFromEdwards(Y),
		fieldElementFromEdwards(Z),
		fieldElementFromEdwards(T),
	)
	return v
}

// Edwards returns v as an [edwards25519.Point], to be encoded or combined
// further with that package.
//
// It returns an error if the coordinates of v do not describe a point on
// the curve, which only happens for points built from invalid limbs.
func (v *ExtendedPoint) Edwards() (*edwards25519.Point, error) {
	c := v.e.Split()
	return new(edwards25519.Point).SetExtendedCoordinates(
		edwardsFieldElement(&c[0]),
		edwardsFieldElement(&c[1]),
		edwardsFieldElement(&c[2]),
		edwardsFieldElement(&c[3]),
	)
}

func fieldElementFromEdwards(x *edfield.Element) *field.Element {
	fe, err := new(field.Element).SetBytes(x.Bytes())
	if err != nil {
		panic(err)
	}
	return fe
}

func edwardsFieldElement(x *field.Element) *edfield.Element {
	fe, err := new(edfield.Element).SetBytes(x.Bytes())
	if err != nil {
		panic(err)
	}
	return fe
}
