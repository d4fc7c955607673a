// Package field implements lane-parallel arithmetic modulo 2^255-19.
//
// [Element4] packs four field elements into five 8-lane registers of 32-bit
// limbs, in radix 2^25.5, and operates on all of them with the same fixed
// sequence of lane-wise operations. Limbs are reduced lazily: each method
// documents the limb bounds it accepts and produces, and callers chain
// operations so that those bounds hold. No method branches on or indexes
// memory by element values.
//
// [Element] is the canonical form used to exchange values with byte
// encodings.
//
// The register layout follows the AVX2 backend of [curve25519-dalek].
//
// [curve25519-dalek]: https://github.com/dalek-cryptography/curve25519-dalek
package field
