// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package archive

// WriterOptions configures a Writer.
type WriterOptions struct {
	// Concurrency bounds how many files CompressDirectory compresses at once.
	// With 1 (the default) records are appended in walk order.
	Concurrency int
}

// DefaultWriterOptions returns the default writer options.
func DefaultWriterOptions() *WriterOptions {
	return &WriterOptions{Concurrency: 1}
}

// ReaderOptions configures a Reader.
type ReaderOptions struct {
	// CacheEntries is the number of decompressed entries kept in memory (0 = no cache).
	CacheEntries int
}

// DefaultReaderOptions returns the default reader options.
func DefaultReaderOptions() *ReaderOptions {
	return &ReaderOptions{}
}
