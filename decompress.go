// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

import "math"

// literalRunLengths maps the low nibble of a control word whose lowest bit is a
// literal flag to the number of consecutive literal flags (up to 4).
var literalRunLengths = [16]int{4, 0, 1, 0, 2, 0, 1, 0, 3, 0, 1, 0, 2, 0, 1, 0}

// Decompress decodes the block in src into a newly allocated buffer sized from its header.
// opts may be nil. Headers announcing more than opts.MaxOutputSize bytes return ErrOutputTooLarge.
func Decompress(src []byte, opts *DecompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultDecompressOptions()
	}

	h, hdrSize, err := decodeHeader(src)
	if err != nil {
		return nil, err
	}

	if h.version != Version {
		return nil, ErrUnsupportedVersion
	}

	if h.uncompressedSize > math.MaxInt {
		return nil, ErrCorruptedData
	}

	if opts.MaxOutputSize > 0 && h.uncompressedSize > uint64(opts.MaxOutputSize) {
		return nil, ErrOutputTooLarge
	}

	if h.compressedSize > uint64(len(src)) || h.compressedSize < uint64(hdrSize) { //nolint:gosec // G115: hdrSize is small
		return nil, ErrCorruptedData
	}

	// Refuse to allocate for sizes the block cannot hold: a stored block carries
	// its data verbatim, and no other block expands by more than a maximal
	// match per payload byte.
	payload := h.compressedSize - uint64(hdrSize) //nolint:gosec // G115: hdrSize is small
	if h.isStored {
		if h.uncompressedSize != payload {
			return nil, ErrCorruptedData
		}
	} else if h.uncompressedSize/MaxMatchLength > payload {
		return nil, ErrCorruptedData
	}

	dst := make([]byte, h.uncompressedSize)
	return DecompressInto(src, dst)
}

// DecompressInto decodes the block in src into dst and returns dst[:uncompressedSize].
// dst must hold at least the uncompressed size reported by Info, otherwise
// ErrBufferTooSmall is returned. A larger dst is accepted; bytes past the
// uncompressed size are left untouched. src and dst must not overlap.
func DecompressInto(src, dst []byte) ([]byte, error) {
	h, hdrSize, err := decodeHeader(src)
	if err != nil {
		return nil, err
	}

	if h.version != Version {
		return nil, ErrUnsupportedVersion
	}

	if h.compressedSize > uint64(len(src)) || h.compressedSize < uint64(hdrSize) { //nolint:gosec // G115: hdrSize is small
		return nil, ErrCorruptedData
	}

	if h.uncompressedSize > uint64(len(dst)) {
		return nil, ErrBufferTooSmall
	}

	// Both sizes now fit in int.
	inEnd := int(h.compressedSize)    //nolint:gosec // G115: bounded by len(src)
	outEnd := int(h.uncompressedSize) //nolint:gosec // G115: bounded by len(dst)
	dst = dst[:outEnd]

	if h.isStored {
		if inEnd != hdrSize+outEnd {
			return nil, ErrCorruptedData
		}

		copy(dst, src[hdrSize:inEnd])
		return dst, nil
	}

	if err := decodeBlock(src[:inEnd], hdrSize, dst); err != nil {
		return nil, err
	}

	return dst, nil
}

// decodeBlock replays the control words of the payload starting at src[inPos:]
// and fills dst completely.
func decodeBlock(src []byte, inPos int, dst []byte) error {
	inEnd := len(src)
	outEnd := len(dst)
	outPos := 0

	// Word-sized stores are only allowed before the tail; the encoder never lets
	// a match reach into it.
	outTail := 0
	if outEnd > tailLength {
		outTail = outEnd - tailLength
	}

	// A control word equal to 1 has only its guard bit left.
	controlWord := uint32(1)

	for {
		// A unit needs at most two words of input; the trailing bytes make
		// this hold for every unit of a valid stream.
		if inPos+2*WordSize > inEnd {
			return ErrCorruptedData
		}

		if controlWord == 1 {
			controlWord = fastRead(src, inPos, WordSize)
			inPos += WordSize
		}

		if controlWord&1 == 0 {
			if outPos >= outTail {
				return decodeTail(src, inPos, dst, outPos, controlWord)
			}

			// Copy a whole word and keep only as many bytes as there are
			// consecutive literal flags.
			fastWrite(dst, outPos, fastRead(src, inPos, WordSize), WordSize)

			runLength := literalRunLengths[controlWord&0xf]
			inPos += runLength
			outPos += runLength
			controlWord >>= runLength

			continue
		}

		m, size := decodeMatch(src, inPos)
		inPos += size

		if m.Offset == 0 || outPos-m.Offset < 0 || outPos+m.Length > outTail {
			return ErrCorruptedData
		}

		copyMatch(dst, outPos, m)
		outPos += m.Length

		controlWord >>= 1
	}
}

// decodeTail copies the remaining literals one byte at a time.
func decodeTail(src []byte, inPos int, dst []byte, outPos int, controlWord uint32) error {
	inEnd := len(src)

	for outPos < len(dst) {
		// One literal plus the possible control word ahead of it.
		if inPos+WordSize+1 > inEnd {
			return ErrCorruptedData
		}

		if controlWord == 1 {
			controlWord = fastRead(src, inPos, WordSize)
			inPos += WordSize
		}

		if controlWord&1 != 0 {
			return ErrCorruptedData
		}

		dst[outPos] = src[inPos]
		outPos++
		inPos++

		controlWord >>= 1
	}

	return nil
}
