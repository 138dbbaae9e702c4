// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package doboz

// DecompressOptions configures the allocating decompression entry points.
// The zero value imposes no limits.
type DecompressOptions struct {
	// MaxOutputSize limits the uncompressed size announced by the header (0 = no limit).
	MaxOutputSize int
	// MaxInputSize limits how many bytes DecompressFromReader may read (0 = no limit).
	MaxInputSize int
}

// DefaultDecompressOptions returns options without limits.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{}
}
