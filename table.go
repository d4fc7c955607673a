package edwards25519x4

import (
	"crypto/subtle"
	"sync"
)

// OddMultiples holds the odd multiples P, 3P, 5P, ..., 15P of a point:
// entry i is (2i+1)P.
//
// It is the precomputation of fixed-window scalar multiplication with
// signed odd digits in [-15, 15], where negative digits use the negated
// entry.
type OddMultiples [8]ExtendedPoint

// CachedOddMultiples holds the entries of an [OddMultiples] table in cached
// form, ready for [ExtendedPoint.AddCached].
type CachedOddMultiples [8]CachedPoint

// NewOddMultiples returns the table of odd multiples of p, computed with
// one doubling and seven additions.
func NewOddMultiples(p *ExtendedPoint) *OddMultiples {
	var p2 ExtendedPoint
	var p2Cached CachedPoint
	p2Cached.FromExtended(p2.Double(p))

	t := new(OddMultiples)
	t[0].Set(p)
	for i := 1; i < len(t); i++ {
		t[i].AddCached(&t[i-1], &p2Cached)
	}
	return t
}

// Cached returns the entries of t in cached form.
func (t *OddMultiples) Cached() *CachedOddMultiples {
	c := new(CachedOddMultiples)
	for i := range t {
		c[i].FromExtended(&t[i])
	}
	return c
}

// Select sets v to digit*P, where digit is odd and in [-15, 15], and
// returns v.
//
// Every entry is read, so the memory access pattern does not depend on
// digit.
func (t *CachedOddMultiples) Select(v *CachedPoint, digit int8) *CachedPoint {
	neg := digit >> 7 // -1 if digit is negative, 0 otherwise
	abs := (digit ^ neg) - neg
	index := uint8(abs) >> 1

	var r CachedPoint
	r.Set(&t[0])
	for i := 1; i < len(t); i++ {
		r.Select(&t[i], &r, subtle.ConstantTimeByteEq(uint8(i), index))
	}
	r.CondNegate(int(neg & 1))
	return v.Set(&r)
}

// BasepointOddMultiples returns the table [B, 3B, 5B, ..., 15B] of the
// canonical generator B.
func BasepointOddMultiples() OddMultiples {
	return basepointOddMultiples
}

// BasepointCachedOddMultiples returns [BasepointOddMultiples] in cached
// form.
func BasepointCachedOddMultiples() CachedOddMultiples {
	return *basepointCachedOddMultiples()
}

var basepointCachedOddMultiples = sync.OnceValue(func() *CachedOddMultiples {
	return basepointOddMultiples.Cached()
})

var basepointOddMultiples = func() OddMultiples {
	var t OddMultiples
	for i := range t {
		t[i].e.SetRegisters(&basepointOddMultiplesRegisters[i])
	}
	return t
}()

// basepointOddMultiplesRegisters holds the packed registers of (2i+1)B,
// with every limb in range.
var basepointOddMultiplesRegisters = [8][5][8]uint32{
	{ // 1B
		{52811034, 40265304, 25909283, 26843545, 1, 28827043, 0, 27438313},
		{16144682, 13421772, 17082669, 20132659, 0, 39759291, 0, 244362},
		{27570973, 26843545, 30858332, 6710886, 0, 8635006, 0, 11264893},
		{40966398, 53687091, 8378388, 13421772, 0, 19351346, 0, 13413597},
		{20764389, 40265318, 8758491, 26843545, 0, 16611511, 0, 27139452},
	},
	{ // 3B
		{63703867, 19156774, 608100, 2486757, 12685460, 3173753, 21649412, 16313381},
		{52397038, 65858675, 26775664, 16661035, 14269998, 9080558, 1059463, 28938752},
		{5461635, 28034025, 23358301, 1245198, 1367765, 20288887, 31111942, 18395221},
		{1886934, 32436996, 681756, 18977693, 8129860, 40112764, 25764567, 11876840},
		{63042604, 52399761, 22087481, 29829870, 8565820, 33723612, 28645162, 8502864},
	},
	{ // 5B
		{14879397, 3951036, 9454671, 16606238, 23529732, 44147004, 11890541, 17067526},
		{58509479, 57216664, 9671992, 32001147, 60966207, 11801823, 10808378, 15115613},
		{54854992, 39210911, 8112050, 1353604, 1337416, 35520540, 32967851, 17786030},
		{59007462, 40864509, 26240923, 30403852, 28456403, 21546582, 32732450, 21005910},
		{40711675, 22446613, 9664668, 12483629, 26142305, 56254715, 15439904, 214849},
	},
	{ // 7B
		{52231579, 51632644, 173613, 7677257, 26374424, 45994428, 5303371, 1425942},
		{38126791, 48854506, 23252518, 30611978, 49977504, 66706952, 1076178, 27100873},
		{26349427, 63077566, 20258199, 3884787, 33226507, 2371423, 5787271, 18628170},
		{15005754, 22729577, 4978944, 2522289, 1404784, 56367795, 22517039, 29271243},
		{22748934, 35977548, 25561257, 31734126, 22775284, 32000077, 927866, 2278697},
	},
	{ // 9B
		{66090281, 61980626, 23780289, 6519561, 62542590, 47174086, 28818882, 15661068},
		{17433715, 12931425, 12232056, 7885877, 44179512, 35590146, 32787344, 22631048},
		{43729883, 6870635, 15782399, 11810556, 2652935, 31800505, 23683367, 13638649},
		{64007953, 40242373, 32810277, 20180235, 20399465, 48133835, 32913956, 19094667},
		{56562708, 40269142, 18953105, 9027935, 35700921, 12896915, 14757156, 22773619},
	},
	{ // 11B
		{65129016, 34709402, 25132940, 13788431, 3661652, 16914498, 27409409, 18941039},
		{42488074, 49427602, 6177212, 20812339, 41644653, 2977316, 12162542, 5293661},
		{7981168, 12223605, 6239200, 20403609, 20710415, 4828170, 11627702, 4431044},
		{65817142, 96824, 25021652, 16364722, 50410869, 24651857, 6979034, 33176209},
		{33008344, 8687253, 27859668, 28796356, 30192014, 11975680, 11991047, 27710707},
	},
	{ // 13B
		{14676653, 50945941, 13489249, 31456262, 47726639, 21761847, 3324839, 7843947},
		{53352326, 8688989, 12944061, 12994004, 50113821, 37990636, 1537898, 20483689},
		{46786852, 15572264, 24004728, 7566233, 32596174, 34437796, 23201722, 3431551},
		{49025674, 52497128, 13273618, 10266201, 66795206, 2887684, 30966565, 33449990},
		{53210238, 65839385, 15458877, 18409918, 24777464, 25586795, 15335748, 12323382},
	},
	{ // 15B
		{57816016, 23106045, 24948505, 27413507, 32551424, 26145165, 22632568, 27527446},
		{53022711, 40974949, 14110533, 30646997, 51399118, 53289754, 32528560, 15822835},
		{23810949, 51779690, 17532625, 21326637, 60314333, 43761996, 4852905, 3474945},
		{13323962, 10752742, 16431634, 26425049, 24258356, 53260846, 19756601, 19546842},
		{17403634, 52199608, 32323720, 5313255, 48522162, 33376516, 31903659, 15291466},
	},
}
