package edwards25519x4

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mathrand "math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"filippo.io/edwards25519"

	"github.com/AlexanderYastrebov/edwards25519x4/field"
	"github.com/AlexanderYastrebov/edwards25519x4/internal/assert"
)

// quickCheckConfig returns a quick.Config that scales the max count by the
// given factor if the -short flag is not set.
func quickCheckConfig(slowScale int) *quick.Config {
	cfg := new(quick.Config)
	if !testing.Short() {
		cfg.MaxCountScale = float64(slowScale)
	}
	return cfg
}

// Generate returns a random multiple of the generator, with a random Z.
func (ExtendedPoint) Generate(rand *mathrand.Rand, size int) reflect.Value {
	var buf [64]byte
	rand.Read(buf[:])

	s, err := edwards25519.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		panic(err)
	}
	p := new(edwards25519.Point).ScalarBaseMult(s)

	// Adding the identity scales the coordinates.
	var v ExtendedPoint
	v.Add(NewExtendedPoint(p), NewIdentityPoint())
	return reflect.ValueOf(v)
}

func TestSetEdwardsRoundTrip(t *testing.T) {
	f := func(n uint64) bool {
		want := new(edwards25519.Point).ScalarBaseMult(scalarFromUint64(n))
		got, err := NewExtendedPoint(want).Edwards()
		return err == nil && got.Equal(want) == 1
	}
	assert.NoError(t, quick.Check(f, nil))

	for _, p := range []*edwards25519.Point{edwards25519.NewIdentityPoint(), edwards25519.NewGeneratorPoint()} {
		got, err := NewExtendedPoint(p).Edwards()
		assert.RequireNoError(t, err)
		assert.Equal(t, p.Bytes(), got.Bytes())
	}
}

func TestEdwardsNotOnCurve(t *testing.T) {
	one := new(field.Element).One()
	p := ExtendedPoint{*field.NewElement4(one, one, one, one)}

	_, err := p.Edwards()
	assert.Error(t, err)
}

func scalarFromUint64(n uint64) *edwards25519.Scalar {
	var buf [64]byte
	binary.LittleEndian.PutUint64(buf[:], n)

	xs, err := edwards25519.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		panic(err)
	}
	return xs
}

func randomScalar() *edwards25519.Scalar {
	var buf [64]byte
	rand.Read(buf[:])

	xs, err := edwards25519.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		panic(err)
	}
	return xs
}

// scalarBaseMult returns n*B as an ExtendedPoint, where n may be negative.
func scalarBaseMult(n int64) *ExtendedPoint {
	p := new(edwards25519.Point).ScalarBaseMult(scalarFromUint64(uint64(max(n, -n))))
	if n < 0 {
		p.Negate(p)
	}
	return NewExtendedPoint(p)
}

// isBounded returns whether the coordinates of v are within the bounds kept
// between point operations.
func isBounded(v *ExtendedPoint) bool {
	even := math.Exp2(26 + 0.007)
	odd := math.Exp2(25 + 0.007)
	for _, x := range v.e.Limbs() {
		for i, l := range x {
			if i%2 == 0 && float64(l) >= even || i%2 == 1 && float64(l) >= odd {
				return false
			}
		}
	}
	return true
}

// assertEdwardsEqual asserts that v is a valid point equal to want.
func assertEdwardsEqual(t *testing.T, want *edwards25519.Point, v *ExtendedPoint) {
	t.Helper()
	got, err := v.Edwards()
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, 1, got.Equal(want), "got %x, want %x", got.Bytes(), want.Bytes())
}
