package field

import (
	"bytes"
	"encoding/hex"
	"math/big"
	mathrand "math/rand"
	"reflect"
	"testing"
	"testing/quick"

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

func generateFieldElement(rand *mathrand.Rand) Element {
	const maskLow63Bits = (1 << 63) - 1
	v := Element{
		rand.Uint64(),
		rand.Uint64(),
		rand.Uint64(),
		rand.Uint64() & maskLow63Bits,
	}
	return *v.reduce()
}

func (Element) Generate(rand *mathrand.Rand, size int) reflect.Value {
	return reflect.ValueOf(generateFieldElement(rand))
}

var bigP = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))

func (v *Element) toBig() *big.Int {
	b := v.Bytes()
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return new(big.Int).SetBytes(b)
}

func (v *Element) fromBig(n *big.Int) *Element {
	var buf [32]byte
	new(big.Int).Mod(n, bigP).FillBytes(buf[:])
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	if _, err := v.SetBytes(buf[:]); err != nil {
		panic(err)
	}
	return v
}

func TestSetBytesRoundTrip(t *testing.T) {
	f1 := func(in [32]byte, fe Element) bool {
		fe.SetBytes(in[:])

		// Mask the most significant bit as it's ignored by SetBytes. (Now
		// instead of earlier so we check the masking in SetBytes is working.)
		in[len(in)-1] &= (1 << 7) - 1

		// Values at or above p are reduced, so only compare canonical ones.
		n := new(big.Int).SetBytes(reverse(in[:]))
		if n.Cmp(bigP) >= 0 {
			return fe.toBig().Cmp(n.Sub(n, bigP)) == 0
		}
		return bytes.Equal(in[:], fe.Bytes())
	}
	assert.NoError(t, quick.Check(f1, nil))

	f2 := func(fe, r Element) bool {
		r.SetBytes(fe.Bytes())
		return fe == r
	}
	assert.NoError(t, quick.Check(f2, nil))
}

func TestSetBytesNonCanonical(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		// p
		{
			"edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
			"0000000000000000000000000000000000000000000000000000000000000000",
		},
		// p + 1
		{
			"eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
			"0100000000000000000000000000000000000000000000000000000000000000",
		},
		// 2^255 - 1
		{
			"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
			"1200000000000000000000000000000000000000000000000000000000000000",
		},
		// p - 1 is canonical
		{
			"ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
			"ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
		},
		// the high bit is ignored
		{
			"0100000000000000000000000000000000000000000000000000000000000080",
			"0100000000000000000000000000000000000000000000000000000000000000",
		},
	}
	for _, tt := range tests {
		fe, err := new(Element).SetBytes(decodeHex(tt.in))
		assert.RequireNoError(t, err)
		assert.Equal(t, tt.want, hex.EncodeToString(fe.Bytes()), "SetBytes(%s)", tt.in)
	}
}

func TestSetBytesInvalidLength(t *testing.T) {
	fe := new(Element).One()
	for _, n := range []int{0, 31, 33, 64} {
		r, err := fe.SetBytes(make([]byte, n))
		assert.Error(t, err)
		assert.Nil(t, r)
	}
	assert.Equal(t, 1, fe.Equal(feOne), "receiver must be unchanged")
}

func TestLimbsRoundTrip(t *testing.T) {
	f := func(fe Element) bool {
		var x [10]uint32
		fe.limbs(&x)

		n := new(big.Int)
		for i := len(x) - 1; i >= 0; i-- {
			if x[i]>>(26-i%2) != 0 {
				return false
			}
			n.Lsh(n, uint(26-i%2))
			n.Add(n, big.NewInt(int64(x[i])))
		}
		if n.Cmp(fe.toBig()) != 0 {
			return false
		}

		var r Element
		r.setLimbs(&x)
		return r == fe
	}
	assert.NoError(t, quick.Check(f, quickCheckConfig(64)))
}

func TestSelectSwap(t *testing.T) {
	a := Element{358744748052810, 1691584618240980, 977650209285361, 1429865912637724}
	b := Element{351049813520108, 1237003434467981, 1002163062802478, 1406390573612216}

	var c, d Element

	c.Select(&a, &b, 1)
	d.Select(&a, &b, 0)

	assert.Equal(t, 1, c.Equal(&a))
	assert.Equal(t, 1, d.Equal(&b))

	c.Swap(&d, 0)

	assert.Equal(t, 1, c.Equal(&a))
	assert.Equal(t, 1, d.Equal(&b))

	c.Swap(&d, 1)

	assert.Equal(t, 1, c.Equal(&b))
	assert.Equal(t, 1, d.Equal(&a))
}

func TestIsNegative(t *testing.T) {
	assert.Equal(t, 0, new(Element).Zero().IsNegative())
	assert.Equal(t, 1, new(Element).One().IsNegative())

	pMinusOne := new(Element).fromBig(new(big.Int).Sub(bigP, big.NewInt(1)))
	assert.Equal(t, 0, pMinusOne.IsNegative())
}

func reverse(b []byte) []byte {
	r := make([]byte, len(b))
	for i := range b {
		r[len(b)-1-i] = b[i]
	}
	return r
}

func decodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func BenchmarkSetBytes(b *testing.B) {
	buf := new(Element).One().Bytes()

	b.ResetTimer()
	for range b.N {
		new(Element).SetBytes(buf)
	}
}
