// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

import "encoding/binary"

// fastRead returns up to 4 little-endian bytes at buf[pos:].
// Sizes 3 and 4 load a full word, so the caller must keep WordSize bytes readable.
func fastRead(buf []byte, pos, size int) uint32 {
	switch size {
	case 4, 3:
		return binary.LittleEndian.Uint32(buf[pos:])
	case 2:
		return uint32(binary.LittleEndian.Uint16(buf[pos:]))
	case 1:
		return uint32(buf[pos])
	default:
		return 0
	}
}

// fastWrite stores the low size bytes of word at buf[pos:].
// Sizes 3 and 4 store a full word, so the caller must keep WordSize bytes writable.
func fastWrite(buf []byte, pos int, word uint32, size int) {
	switch size {
	case 4, 3:
		binary.LittleEndian.PutUint32(buf[pos:], word)
	case 2:
		binary.LittleEndian.PutUint16(buf[pos:], uint16(word)) //nolint:gosec // G115: low half intended
	case 1:
		buf[pos] = byte(word) //nolint:gosec // G115: low byte intended
	}
}
