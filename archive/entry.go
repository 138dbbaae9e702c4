// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package archive

// Entry locates one record of an archive.
type Entry struct {
	// Name is the entry name as stored in the archive.
	Name string
	// Size is the original, uncompressed size.
	Size uint64
	// CompressedSize is the size of the compressed block.
	CompressedSize uint64
	// Offset is the position of the compressed block in the archive.
	Offset int64
}

// FileInfo is the public view of an entry.
type FileInfo struct {
	Name string
	Size uint64
}

// Info returns the FileInfo for e.
func (e Entry) Info() FileInfo {
	return FileInfo{Name: e.Name, Size: e.Size}
}
