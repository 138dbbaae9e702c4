// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package archive

import "errors"

// Sentinel errors for archive reading and writing.
var (
	// ErrMalformedArchive is returned when a record is truncated or its header is inconsistent.
	ErrMalformedArchive = errors.New("archive: malformed archive")
	// ErrInvalidName is returned for empty names or names longer than MaxNameLength.
	ErrInvalidName = errors.New("archive: invalid entry name")
	// ErrClosed is returned when a closed Writer or Reader is used.
	ErrClosed = errors.New("archive: closed")
	// ErrSizeMismatch is returned when a decoded entry differs from its recorded size.
	ErrSizeMismatch = errors.New("archive: decoded size does not match entry")
	// ErrUnknownEntry is returned by Reader.Decompress for entries not read from that archive.
	ErrUnknownEntry = errors.New("archive: entry does not belong to this archive")
)
