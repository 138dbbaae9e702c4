// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package archive

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"slices"
	"sync"

	"github.com/golang/glog"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/woozymasta/doboz"
)

// Reader serves entries of an archive. The entry index is built once when the
// Reader is created. Decompress is safe for concurrent use.
type Reader struct {
	mu     sync.Mutex // guards the rs cursor and closed
	rs     io.ReadSeeker
	file   *os.File // set when the Reader owns the source
	closed bool

	entries []Entry // append order, ascending Offset
	cache   *lru.Cache[int64, []byte]
}

// Open opens and indexes the archive at path. opts may be nil.
func Open(path string, opts *ReaderOptions) (*Reader, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is caller supplied
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f, opts)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r.file = f

	return r, nil
}

// NewReader indexes the archive in rs. Any malformed record fails the whole
// call. Close does not close rs. opts may be nil.
func NewReader(rs io.ReadSeeker, opts *ReaderOptions) (*Reader, error) {
	if opts == nil {
		opts = DefaultReaderOptions()
	}

	entries, err := scanEntries(rs)
	if err != nil {
		return nil, err
	}

	r := &Reader{rs: rs, entries: entries}

	if opts.CacheEntries > 0 {
		r.cache, err = lru.New[int64, []byte](opts.CacheEntries)
		if err != nil {
			return nil, err
		}
	}

	glog.V(1).Infof("archive: indexed %d entries", len(entries))
	return r, nil
}

// scanEntries reads every record header from the start of rs, skipping the payloads.
func scanEntries(rs io.ReadSeeker) ([]Entry, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var entries []Entry
	for pos := int64(0); pos < size; {
		h, headerSize, err := readRecordHeader(rs, size-pos)
		if err != nil {
			return nil, fmt.Errorf("record at %d: %w", pos, err)
		}

		e := Entry{
			Name:           string(h.Name),
			Size:           h.OriginalSize,
			CompressedSize: h.CompressedSize,
			Offset:         pos + headerSize,
		}

		// readRecordHeader bounded the payload by the archive size.
		pos = e.Offset + int64(e.CompressedSize) //nolint:gosec // G115: CompressedSize <= size
		if _, err := rs.Seek(pos, io.SeekStart); err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// FileCount returns the number of records in the archive.
func (r *Reader) FileCount() int {
	return len(r.entries)
}

// Files yields the name and size of every record in append order.
func (r *Reader) Files() iter.Seq[FileInfo] {
	return func(yield func(FileInfo) bool) {
		for _, e := range r.entries {
			if !yield(e.Info()) {
				return
			}
		}
	}
}

// Entries returns a copy of the entry index.
func (r *Reader) Entries() []Entry {
	return slices.Clone(r.entries)
}

// GetFile returns the first entry named name.
func (r *Reader) GetFile(name string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}

	return Entry{}, false
}

// Decompress returns the original bytes of e. The returned slice is owned by the caller.
func (r *Reader) Decompress(e Entry) ([]byte, error) {
	if !r.owns(e) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntry, e.Name)
	}

	if r.cache != nil {
		if data, ok := r.cache.Get(e.Offset); ok {
			return bytes.Clone(data), nil
		}
	}

	if e.Size > math.MaxInt {
		return nil, fmt.Errorf("%w: %q is too large", ErrSizeMismatch, e.Name)
	}

	block, err := r.readBlock(e)
	if err != nil {
		return nil, err
	}

	info, err := doboz.Info(block)
	if err != nil {
		return nil, fmt.Errorf("decompress %q: %w", e.Name, err)
	}
	if info.UncompressedSize != e.Size {
		return nil, fmt.Errorf("%w: %q block holds %d bytes, want %d", ErrSizeMismatch, e.Name, info.UncompressedSize, e.Size)
	}

	data, err := doboz.Decompress(block, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress %q: %w", e.Name, err)
	}

	if uint64(len(data)) != e.Size {
		return nil, fmt.Errorf("%w: %q decoded to %d bytes, want %d", ErrSizeMismatch, e.Name, len(data), e.Size)
	}

	if r.cache != nil {
		r.cache.Add(e.Offset, bytes.Clone(data))
	}

	return data, nil
}

// readBlock reads the compressed block of e under the cursor lock.
func (r *Reader) readBlock(e Entry) ([]byte, error) {
	block := make([]byte, e.CompressedSize)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}

	if _, err := r.rs.Seek(e.Offset, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r.rs, block); err != nil {
		return nil, fmt.Errorf("read %q: %w", e.Name, err)
	}

	return block, nil
}

// owns reports whether e is one of the indexed entries.
func (r *Reader) owns(e Entry) bool {
	i, found := slices.BinarySearchFunc(r.entries, e.Offset, func(x Entry, offset int64) int {
		return cmp.Compare(x.Offset, offset)
	})

	return found && r.entries[i] == e
}

// Close closes the archive file if the Reader opened it.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.closed = true

	if r.cache != nil {
		r.cache.Purge()
	}

	if r.file != nil {
		return r.file.Close()
	}

	return nil
}
