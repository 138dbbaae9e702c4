// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

// Compress compresses src into a newly allocated block.
// An empty src produces an empty stored block.
func Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		out := make([]byte, headerSize(MaxCompressedSize(0)))
		encodeHeader(out, header{version: Version, isStored: true, compressedSize: uint64(len(out))}, MaxCompressedSize(0))
		return out, nil
	}

	temp := acquireScratch(MaxCompressedSize(len(src)))
	defer releaseScratch(temp)

	n, err := CompressInto(src, temp.data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, temp.data[:n])
	return out, nil
}

// CompressInto compresses src into dst and returns the block size.
// src must not be empty and dst must hold at least MaxCompressedSize(len(src)) bytes,
// otherwise ErrBufferTooSmall is returned. src and dst must not overlap.
func CompressInto(src, dst []byte) (int, error) {
	if len(src) == 0 {
		return 0, ErrBufferTooSmall
	}

	maxSize := MaxCompressedSize(len(src))
	if len(dst) < maxSize {
		return 0, ErrBufferTooSmall
	}

	dict := acquireDictionary(src)
	defer releaseDictionary(dict)

	n, ok := compressBlock(src, dst[:maxSize], dict)
	if !ok {
		return storeBlock(src, dst), nil
	}

	return n, nil
}

// compressBlock runs the match-finding encoder. It reports false when the
// output would grow past len(dst), in which case the block must be stored.
func compressBlock(src, dst []byte, dict *dictionary) (int, bool) {
	maxSize := len(dst)
	outPos := headerSize(maxSize)

	// The decoder must see a control word before the units it describes, so
	// reserve its slot and fill it in once its bits are known.
	controlWord := controlWordGuardBit
	controlWordBit := 0
	controlWordPos := outPos
	outPos += WordSize

	var candidates [MaxMatchCandidateCount]Match

	// Lazy evaluation keeps two slots: the match at the position being encoded
	// and the match one byte ahead. The finder therefore runs one byte ahead.
	var current, next Match
	dict.skip()

	for dict.position()-1 < len(src) {
		// One step emits at most two words (a control word and a match), and the
		// stream still needs its trailing bytes.
		if outPos+2*WordSize+trailingDummySize > maxSize {
			return 0, false
		}

		if controlWordBit == controlWordBitCount {
			fastWrite(dst, controlWordPos, controlWord, WordSize)

			controlWord = controlWordGuardBit
			controlWordBit = 0
			controlWordPos = outPos
			outPos += WordSize
		}

		current = next
		next = bestMatch(candidates[:dict.findMatches(candidates[:])])

		// Prefer a literal now when the next match gives a better ratio than the current one.
		if current.Length > 0 &&
			(1+next.Length)*current.codedSize() > current.Length*(1+next.codedSize()) {
			current = Match{}
		}

		if current.Length == 0 {
			// Literal bits are 0 so that they differ from the guard bit.
			dst[outPos] = src[dict.position()-2]
			outPos++
		} else {
			controlWord |= 1 << controlWordBit
			outPos += encodeMatch(dst, outPos, current)

			// The finder already indexed the first two bytes of the match.
			for range current.Length - 2 {
				dict.skip()
			}

			next = bestMatch(candidates[:dict.findMatches(candidates[:])])
		}

		controlWordBit++
	}

	fastWrite(dst, controlWordPos, controlWord, WordSize)

	clear(dst[outPos : outPos+trailingDummySize])
	outPos += trailingDummySize

	encodeHeader(dst, header{
		version:          Version,
		uncompressedSize: uint64(len(src)),
		compressedSize:   uint64(outPos), //nolint:gosec // G115: outPos is non-negative
	}, maxSize)

	return outPos, true
}

// storeBlock writes src verbatim behind a stored-block header.
func storeBlock(src, dst []byte) int {
	maxSize := MaxCompressedSize(len(src))
	size := headerSize(maxSize) + len(src)

	encodeHeader(dst, header{
		version:          Version,
		isStored:         true,
		uncompressedSize: uint64(len(src)),
		compressedSize:   uint64(size), //nolint:gosec // G115: size is non-negative
	}, maxSize)
	copy(dst[headerSize(maxSize):], src)

	return size
}
