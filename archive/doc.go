// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

/*
Package archive stores named doboz blocks in a flat, append-only file.

An archive is a plain sequence of records with no magic number and no footer:

	uint32 nameLength | name (UTF-8) | uint64 originalSize | uint64 compressedSize | block

Integers are little-endian. A Reader scans the record headers once when it is
created and then decompresses entries on demand:

	w, err := archive.Create("assets.dbz", false, nil)
	if err != nil {
		return err
	}
	if err := w.Compress([]byte("hello world"), "a.txt"); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	r, err := archive.Open("assets.dbz", nil)
	if err != nil {
		return err
	}
	defer r.Close()

	e, ok := r.GetFile("a.txt")
	if !ok {
		return fs.ErrNotExist
	}
	data, err := r.Decompress(e)

Writer and Reader are safe for concurrent use.
*/
package archive
