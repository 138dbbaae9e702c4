// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

/*
Package doboz implements the Doboz block compression format.

Doboz is an LZ77-family codec tuned for fast decoding. The encoder indexes the
input with a binary-tree match finder over a 2 MiB window, selects matches
with one step of lazy lookahead and emits a stream of 32-bit control words
followed by literal bytes and 1–4 byte match codes. Blocks that would not
shrink are written as stored blocks, so the output never exceeds
MaxCompressedSize.

Every block starts with a small header carrying the format version and the
uncompressed and compressed sizes, so a block is self-describing:

	attributes (1 byte) | uncompressedSize (w bytes) | compressedSize (w bytes) | payload

The codec operates on fully materialized buffers only; there is no streaming API.

# Compress

Into a caller-sized buffer:

	dst := make([]byte, doboz.MaxCompressedSize(len(src)))
	n, err := doboz.CompressInto(src, dst)
	block := dst[:n]

Or let the package allocate:

	block, err := doboz.Compress(src)

# Decompress

The header carries the output size:

	info, err := doboz.Info(block)
	dst := make([]byte, info.UncompressedSize)
	out, err := doboz.DecompressInto(block, dst)

Or allocate from the header, optionally bounding the allocation:

	out, err := doboz.Decompress(block, &doboz.DecompressOptions{MaxOutputSize: 64 << 20})

Malformed or truncated input always yields ErrCorruptedData; the decoder never
reads or writes outside the supplied buffers.
*/
package doboz
