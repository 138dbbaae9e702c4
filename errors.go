// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

import "errors"

// Sentinel errors for compression and decompression.
var (
	// ErrBufferTooSmall is returned when the source is empty on compression or a
	// destination buffer is smaller than the operation requires.
	ErrBufferTooSmall = errors.New("buffer too small")
	// ErrCorruptedData is returned when a compressed block is malformed or truncated.
	ErrCorruptedData = errors.New("corrupted data")
	// ErrUnsupportedVersion is returned when the block header carries an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported format version")
	// ErrOutputTooLarge is returned when the header announces more than MaxOutputSize bytes.
	ErrOutputTooLarge = errors.New("output exceeds MaxOutputSize")
	// ErrInputTooLarge is returned when DecompressFromReader reads more than MaxInputSize bytes.
	ErrInputTooLarge = errors.New("input exceeds MaxInputSize")
)
