// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

import (
	"encoding/binary"
	"math"
)

// header is the decoded block header.
type header struct {
	uncompressedSize uint64
	compressedSize   uint64
	version          int
	isStored         bool
}

// CompressionInfo describes a compressed block without decoding it.
type CompressionInfo struct {
	// UncompressedSize is the size of the original data.
	UncompressedSize uint64
	// CompressedSize is the size of the whole block, header included.
	CompressedSize uint64
	// Version is the encoding format version of the block.
	Version int
}

// MaxCompressedSize returns the largest block CompressInto can produce for
// size bytes of input, header included. Use it to size the destination buffer.
// Blocks whose bound fits 32 bits reserve a 9-byte header, larger ones 17.
func MaxCompressedSize(size int) int {
	size = max(size, 0)
	if uint64(size) <= math.MaxUint32-compactHeaderSize { //nolint:gosec // G115: size is non-negative
		return compactHeaderSize + size
	}

	return maxHeaderSize + size
}

// Info decodes the block header of src.
func Info(src []byte) (CompressionInfo, error) {
	h, _, err := decodeHeader(src)
	if err != nil {
		return CompressionInfo{}, err
	}

	return CompressionInfo{
		UncompressedSize: h.uncompressedSize,
		CompressedSize:   h.compressedSize,
		Version:          h.version,
	}, nil
}

// sizeFieldWidth returns the narrowest header size field that holds size.
func sizeFieldWidth(size uint64) int {
	switch {
	case size <= math.MaxUint8:
		return 1
	case size <= math.MaxUint16:
		return 2
	case size <= math.MaxUint32:
		return 4
	default:
		return 8
	}
}

// headerSize returns the header size used for a block whose worst-case size is maxCompressedSize.
func headerSize(maxCompressedSize int) int {
	return 1 + 2*sizeFieldWidth(uint64(maxCompressedSize)) //nolint:gosec // G115: sizes are non-negative
}

// encodeHeader writes h at dst[0:]. The size field width is derived from
// maxCompressedSize, not from the actual size, so it is known before compression.
func encodeHeader(dst []byte, h header, maxCompressedSize int) {
	width := sizeFieldWidth(uint64(maxCompressedSize)) //nolint:gosec // G115: sizes are non-negative

	attributes := byte(h.version&attrVersionMask) | byte(width-1)<<attrWidthShift //nolint:gosec // G115: width in 1..8
	if h.isStored {
		attributes |= attrStored
	}
	dst[0] = attributes

	putSize(dst[1:], h.uncompressedSize, width)
	putSize(dst[1+width:], h.compressedSize, width)
}

// decodeHeader parses the block header and returns it with its encoded size.
func decodeHeader(src []byte) (h header, size int, err error) {
	if len(src) < 1 {
		return header{}, 0, ErrCorruptedData
	}

	attributes := src[0]
	width := int(attributes>>attrWidthShift&attrWidthMask) + 1
	switch width {
	case 1, 2, 4, 8:
	default:
		return header{}, 0, ErrCorruptedData
	}

	size = 1 + 2*width
	if len(src) < size {
		return header{}, 0, ErrCorruptedData
	}

	h.version = int(attributes & attrVersionMask)
	h.isStored = attributes&attrStored != 0
	h.uncompressedSize = readSize(src[1:], width)
	h.compressedSize = readSize(src[1+width:], width)

	return h, size, nil
}

// putSize stores v little-endian in width bytes.
func putSize(dst []byte, v uint64, width int) {
	switch width {
	case 1:
		dst[0] = byte(v) //nolint:gosec // G115: width chosen to fit v
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(v)) //nolint:gosec // G115: width chosen to fit v
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(v)) //nolint:gosec // G115: width chosen to fit v
	default:
		binary.LittleEndian.PutUint64(dst, v)
	}
}

// readSize loads a little-endian size of width bytes.
func readSize(src []byte, width int) uint64 {
	switch width {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(src))
	case 4:
		return uint64(binary.LittleEndian.Uint32(src))
	default:
		return binary.LittleEndian.Uint64(src)
	}
}
