// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

// Match is a back-reference: Length bytes repeated from Offset bytes earlier.
// A zero Length means no match.
type Match struct {
	Offset int
	Length int
}

// Match code formats, selected by the low tag bits of the encoded word:
//
//	tag  length code  offset     size
//	00   0            < 64       1
//	01   0            < 16384    2
//	10   < 16         < 1024     2
//	11   < 32         < 65536    3
//	111  < 256        < 2^21     4
func encodeMatchWord(m Match) (word uint32, size int) {
	// A zero-length match wraps to a huge code and lands in the 4-byte form,
	// which makes it the most expensive choice in cost comparisons.
	lengthCode := uint32(m.Length - MinMatchLength) //nolint:gosec // G115: wrap intended for empty matches
	offsetCode := uint32(m.Offset)                  //nolint:gosec // G115: offset < DictionarySize

	switch {
	case lengthCode == 0 && offsetCode < 64:
		return offsetCode << 2, 1
	case lengthCode == 0 && offsetCode < 16384:
		return offsetCode<<2 | 1, 2
	case lengthCode < 16 && offsetCode < 1024:
		return offsetCode<<6 | lengthCode<<2 | 2, 2
	case lengthCode < 32 && offsetCode < 65536:
		return offsetCode<<8 | lengthCode<<3 | 3, 3
	default:
		return offsetCode<<11 | lengthCode<<3 | 7, 4
	}
}

// encodeMatch writes m at dst[pos:] and returns the encoded size.
// Up to WordSize bytes are touched regardless of the size.
func encodeMatch(dst []byte, pos int, m Match) int {
	word, size := encodeMatchWord(m)
	fastWrite(dst, pos, word, size)
	return size
}

// codedSize returns the encoded size of m in bytes.
func (m Match) codedSize() int {
	_, size := encodeMatchWord(m)
	return size
}

// matchDecodeEntry describes one match code format.
type matchDecodeEntry struct {
	mask        uint32 // mask for the whole encoded match
	offsetShift uint8
	lengthMask  uint8
	lengthShift uint8
	size        uint8 // encoded size in bytes
}

// matchDecodeTable is indexed by the low 3 bits of the encoded match.
var matchDecodeTable = [8]matchDecodeEntry{
	{mask: 0xff, offsetShift: 2, lengthMask: 0, lengthShift: 0, size: 1},          // (0)00
	{mask: 0xffff, offsetShift: 2, lengthMask: 0, lengthShift: 0, size: 2},        // (0)01
	{mask: 0xffff, offsetShift: 6, lengthMask: 15, lengthShift: 2, size: 2},       // (0)10
	{mask: 0xffffff, offsetShift: 8, lengthMask: 31, lengthShift: 3, size: 3},     // (0)11
	{mask: 0xff, offsetShift: 2, lengthMask: 0, lengthShift: 0, size: 1},          // (1)00
	{mask: 0xffff, offsetShift: 2, lengthMask: 0, lengthShift: 0, size: 2},        // (1)01
	{mask: 0xffff, offsetShift: 6, lengthMask: 15, lengthShift: 2, size: 2},       // (1)10
	{mask: 0xffffffff, offsetShift: 11, lengthMask: 255, lengthShift: 3, size: 4}, // 111
}

// decodeMatch decodes the match code at src[pos:] and returns it with its size.
// A full word is read, so WordSize bytes must be readable at pos.
func decodeMatch(src []byte, pos int) (Match, int) {
	word := fastRead(src, pos, WordSize)
	e := &matchDecodeTable[word&7]

	return Match{
		Offset: int((word & e.mask) >> e.offsetShift),
		Length: int((word>>e.lengthShift)&uint32(e.lengthMask)) + MinMatchLength,
	}, int(e.size)
}

// bestMatch picks the longest candidate that is cheaper to encode than to store as literals.
// Candidates are ordered by ascending length.
func bestMatch(candidates []Match) Match {
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].Length > candidates[i].codedSize() {
			return candidates[i]
		}
	}

	return Match{}
}
