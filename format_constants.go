// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

// Format constants shared by the encoder and the decoder.
const (
	// Version is the encoding format version written into every block header.
	Version = 0

	// WordSize is the size of a control word and of the fast read/write unit.
	WordSize = 4

	// MinMatchLength is the shortest back-reference the format can encode.
	MinMatchLength = 3
	// MaxMatchLength is the longest back-reference the format can encode.
	MaxMatchLength = 255 + MinMatchLength

	// MaxMatchCandidateCount bounds the tree nodes visited per input position.
	MaxMatchCandidateCount = 128

	// DictionarySize is the match window; it must be a power of two.
	DictionarySize = 1 << 21
)

const (
	// tailLength is the region at the end of the output where only literals occur,
	// so word-sized writes before it never cross the buffer end.
	tailLength = 2 * WordSize

	// trailingDummySize is the number of zero bytes appended to every compressed stream.
	trailingDummySize = 2 * WordSize

	// maxSizeFieldWidth is the widest header size field.
	maxSizeFieldWidth = 8

	// maxHeaderSize is the header size with the widest size fields.
	maxHeaderSize = 1 + 2*maxSizeFieldWidth

	// compactHeaderSize is the header size with 4-byte size fields.
	compactHeaderSize = 1 + 2*4
)

// Control word layout: bit 31 is the guard bit, bits 0..30 flag the following units.
const (
	controlWordBitCount = WordSize*8 - 1
	controlWordGuardBit = uint32(1) << controlWordBitCount
)

// Header attribute byte layout.
const (
	attrVersionMask = 0x07
	attrWidthShift  = 3
	attrWidthMask   = 0x07
	attrStored      = 0x80
)
