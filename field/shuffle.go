package field

// Lanes is a set of the four element slots A, B, C and D of an [Element4].
type Lanes uint8

const (
	LaneA Lanes = 1 << iota
	LaneB
	LaneC
	LaneD

	LanesAB  = LaneA | LaneB
	LanesAC  = LaneA | LaneC
	LanesAD  = LaneA | LaneD
	LanesBC  = LaneB | LaneC
	LanesCD  = LaneC | LaneD
	LanesAll = LaneA | LaneB | LaneC | LaneD
)

// Shuffle describes a permutation of the slots of an [Element4]. Bits 2i
// and 2i+1 hold the source slot (A=0, B=1, C=2, D=3) of destination slot i.
type Shuffle uint8

const (
	ShuffleAAAA Shuffle = 0 | 0<<2 | 0<<4 | 0<<6
	ShuffleBBBB Shuffle = 1 | 1<<2 | 1<<4 | 1<<6
	ShuffleCCCC Shuffle = 2 | 2<<2 | 2<<4 | 2<<6
	ShuffleDDDD Shuffle = 3 | 3<<2 | 3<<4 | 3<<6
	ShuffleABCD Shuffle = 0 | 1<<2 | 2<<4 | 3<<6
	ShuffleBADC Shuffle = 1 | 0<<2 | 3<<4 | 2<<6
	ShuffleBACD Shuffle = 1 | 0<<2 | 2<<4 | 3<<6
	ShuffleABDC Shuffle = 0 | 1<<2 | 3<<4 | 2<<6
	ShuffleABAB Shuffle = 0 | 1<<2 | 0<<4 | 1<<6
	ShuffleCACA Shuffle = 2 | 0<<2 | 2<<4 | 0<<6
	ShuffleDBBD Shuffle = 3 | 1<<2 | 1<<4 | 3<<6
	ShuffleADDA Shuffle = 0 | 3<<2 | 3<<4 | 0<<6
	ShuffleCBCB Shuffle = 2 | 1<<2 | 2<<4 | 1<<6
)

// Register positions of the even and odd limb of each slot.
var (
	evenPos = [4]uint8{0, 1, 4, 5}
	oddPos  = [4]uint8{2, 3, 6, 7}
)

// positions returns the register lane mask covering the slots in l.
func (l Lanes) positions() uint8 {
	var m uint8
	for s := range 4 {
		bit := uint8(l>>s) & 1
		m |= bit<<evenPos[s] | bit<<oddPos[s]
	}
	return m
}

// mask returns a register with all bits set in the positions of l.
func (l Lanes) mask() u32x8 {
	return u32x8{}.blend(splat32(^uint32(0)), l.positions())
}

func (s Shuffle) index() *[8]uint8 {
	var idx [8]uint8
	for dst := range 4 {
		src := uint8(s>>(2*dst)) & 3
		idx[evenPos[dst]] = evenPos[src]
		idx[oddPos[dst]] = oddPos[src]
	}
	return &idx
}

// Shuffle sets v to the slots of a permuted by s, and returns v.
func (v *Element4) Shuffle(a *Element4, s Shuffle) *Element4 {
	idx := s.index()
	for i := range v.v {
		v.v[i] = a.v[i].permute(idx)
	}
	return v
}

// Blend sets v to the slots of b selected by l and the slots of a
// elsewhere, and returns v.
func (v *Element4) Blend(a, b *Element4, l Lanes) *Element4 {
	m := l.positions()
	for i := range v.v {
		v.v[i] = a.v[i].blend(b.v[i], m)
	}
	return v
}

// DiffSum sets v = (B - A, B + A, D - C, D + C) where a = (A, B, C, D),
// and returns v.
//
// a must be bounded by b < 0.999. The result is not carried: for inputs
// produced by [Element4.Multiply] it is bounded by b < 1.6.
func (v *Element4) DiffSum(a *Element4) *Element4 {
	var swapped, negated Element4
	swapped.Shuffle(a, ShuffleBADC)
	negated.NegateLazy(a)
	negated.Blend(a, &negated, LanesAC)
	return v.Add(&swapped, &negated)
}
