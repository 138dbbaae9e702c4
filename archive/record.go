// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/go-restruct/restruct"
)

// MaxNameLength is the longest entry name accepted by the Writer, in bytes.
const MaxNameLength = math.MaxUint16

const (
	// recordPrefixSize is the size of the name length field.
	recordPrefixSize = 4
	// recordSizesSize is the size of the two size fields that follow the name.
	recordSizesSize = 16
)

// recordHeader is the part of a record that precedes the compressed payload:
//
//	uint32 nameLength | name | uint64 originalSize | uint64 compressedSize
//
// All integers are little-endian.
type recordHeader struct {
	NameLength     uint32 `struct:"uint32,sizeof=Name"`
	Name           []byte `struct:"sizefrom=NameLength"`
	OriginalSize   uint64 `struct:"uint64"`
	CompressedSize uint64 `struct:"uint64"`
}

// marshal encodes the record header.
func (h *recordHeader) marshal() ([]byte, error) {
	data, err := restruct.Pack(binary.LittleEndian, h)
	if err != nil {
		return nil, fmt.Errorf("pack record header: %w", err)
	}

	return data, nil
}

// readRecordHeader reads one record header from r. remaining is the number of
// bytes left in the archive from the current position; it bounds the name and
// the payload so a corrupt length cannot trigger a huge allocation.
// It returns the header and its encoded size.
func readRecordHeader(r io.Reader, remaining int64) (recordHeader, int64, error) {
	if remaining < recordPrefixSize {
		return recordHeader{}, 0, fmt.Errorf("%w: truncated record prefix", ErrMalformedArchive)
	}

	buf := make([]byte, recordPrefixSize, recordPrefixSize+recordSizesSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return recordHeader{}, 0, fmt.Errorf("%w: %w", ErrMalformedArchive, err)
	}

	nameLength := int64(binary.LittleEndian.Uint32(buf))
	size := recordPrefixSize + nameLength + recordSizesSize
	if nameLength == 0 || nameLength > MaxNameLength || size > remaining {
		return recordHeader{}, 0, fmt.Errorf("%w: bad name length %d", ErrMalformedArchive, nameLength)
	}

	buf = append(buf, make([]byte, nameLength+recordSizesSize)...)
	if _, err := io.ReadFull(r, buf[recordPrefixSize:]); err != nil {
		return recordHeader{}, 0, fmt.Errorf("%w: %w", ErrMalformedArchive, err)
	}

	var h recordHeader
	if err := restruct.Unpack(buf, binary.LittleEndian, &h); err != nil {
		return recordHeader{}, 0, fmt.Errorf("%w: %w", ErrMalformedArchive, err)
	}

	if h.CompressedSize > uint64(remaining-size) { //nolint:gosec // G115: remaining >= size
		return recordHeader{}, 0, fmt.Errorf("%w: payload of %q runs past the end", ErrMalformedArchive, h.Name)
	}

	return h, size, nil
}
