// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/woozymasta/doboz"
)

// Writer appends compressed records to an archive.
// It is safe for concurrent use; compression runs outside the lock and only
// the append itself is serialized.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	file   *os.File // set when the Writer owns the sink
	opts   WriterOptions
	closed bool
}

// Create opens the archive at path for writing. With appendMode the records
// are added after the existing ones, otherwise the file is truncated.
// opts may be nil.
func Create(path string, appendMode bool, opts *WriterOptions) (*Writer, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644) //nolint:gosec // G302: archives are regular data files
	if err != nil {
		return nil, err
	}

	w := NewWriter(f, opts)
	w.file = f

	return w, nil
}

// NewWriter returns a Writer appending records to w. Close does not close w.
// opts may be nil.
func NewWriter(w io.Writer, opts *WriterOptions) *Writer {
	if opts == nil {
		opts = DefaultWriterOptions()
	}

	o := *opts
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}

	return &Writer{w: w, opts: o}
}

// Compress compresses data and appends it as a record named name.
func (w *Writer) Compress(data []byte, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	block, err := doboz.Compress(data)
	if err != nil {
		return fmt.Errorf("compress %q: %w", name, err)
	}

	hdr := recordHeader{
		Name:           []byte(name),
		OriginalSize:   uint64(len(data)),
		CompressedSize: uint64(len(block)),
	}
	record, err := hdr.marshal()
	if err != nil {
		return err
	}
	record = append(record, block...)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	if _, err := w.w.Write(record); err != nil {
		return fmt.Errorf("append %q: %w", name, err)
	}

	glog.V(1).Infof("archive: appended %q (%d -> %d bytes)", name, len(data), len(block))
	return nil
}

// CompressFile reads the file at path and appends it as a record named name.
func (w *Writer) CompressFile(path, name string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is caller supplied
	if err != nil {
		return err
	}

	return w.Compress(data, name)
}

// CompressReader reads r to EOF and appends the data as a record named name.
func (w *Writer) CompressReader(r io.Reader, name string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %q: %w", name, err)
	}

	return w.Compress(data, name)
}

// CompressDirectory appends every regular file under root. Entry names are the
// slash-separated paths relative to root in Unicode NFC.
// Symlinks and other special files are skipped.
func (w *Writer) CompressDirectory(root string) error {
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(w.opts.Concurrency)

	self := w.sinkInfo()

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if self != nil {
			if info, err := d.Info(); err == nil && os.SameFile(self, info) {
				glog.V(2).Infof("archive: skipping the archive itself at %s", path)
				return nil
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := norm.NFC.String(filepath.ToSlash(rel))

		glog.V(2).Infof("archive: queue %s as %q", path, name)
		g.Go(func() error {
			return w.CompressFile(path, name)
		})

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return walkErr
}

// sinkInfo describes the archive file when the Writer owns one.
func (w *Writer) sinkInfo() fs.FileInfo {
	if w.file == nil {
		return nil
	}

	info, err := w.file.Stat()
	if err != nil {
		return nil
	}

	return info
}

// Close closes the archive file if the Writer opened it.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	w.closed = true

	if w.file != nil {
		return w.file.Close()
	}

	return nil
}

// validateName reports whether name can be stored in a record.
func validateName(name string) error {
	if name == "" || len(name) > MaxNameLength || !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}
