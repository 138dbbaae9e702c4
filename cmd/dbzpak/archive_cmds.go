// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/doboz/archive"
)

func newCreateCmd() *cobra.Command {
	var (
		appendMode bool
		jobs       int
	)

	cmd := &cobra.Command{
		Use:   "create ARCHIVE PATH...",
		Short: "Add files and directories to an archive",
		Long: `Add files and directories to an archive.
Files are stored under their base name, directories under paths relative to the directory.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := archive.Create(args[0], appendMode, &archive.WriterOptions{Concurrency: jobs})
			if err != nil {
				return err
			}

			if err := addPaths(w, args[1:]); err != nil {
				_ = w.Close()
				return err
			}

			return w.Close()
		},
	}

	cmd.Flags().BoolVarP(&appendMode, "append", "a", false, "append to an existing archive instead of truncating it")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "files compressed in parallel when adding directories")

	return cmd
}

func addPaths(w *archive.Writer, paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			glog.V(1).Infof("adding directory %s", path)
			if err := w.CompressDirectory(path); err != nil {
				return err
			}
			continue
		}

		if err := w.CompressFile(path, norm.NFC.String(filepath.Base(path))); err != nil {
			return err
		}
	}

	return nil
}

// listItem is one row of `list --format yaml`.
type listItem struct {
	Name           string `yaml:"name"`
	Size           uint64 `yaml:"size"`
	CompressedSize uint64 `yaml:"compressed_size"`
	Offset         int64  `yaml:"offset"`
}

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list ARCHIVE",
		Short: "List archive entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := archive.Open(args[0], nil)
			if err != nil {
				return err
			}
			defer r.Close()

			return writeListing(cmd.OutOrStdout(), r.Entries(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")

	return cmd
}

func writeListing(out io.Writer, entries []archive.Entry, format string) error {
	switch format {
	case "text":
		for _, e := range entries {
			if _, err := fmt.Fprintf(out, "%12d %12d  %s\n", e.Size, e.CompressedSize, e.Name); err != nil {
				return err
			}
		}
		return nil

	case "yaml":
		items := make([]listItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, listItem{Name: e.Name, Size: e.Size, CompressedSize: e.CompressedSize, Offset: e.Offset})
		}

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newExtractCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "extract ARCHIVE [NAME...]",
		Short: "Extract entries into a directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := archive.Open(args[0], nil)
			if err != nil {
				return err
			}
			defer r.Close()

			entries, err := selectEntries(r, args[1:])
			if err != nil {
				return err
			}

			for _, e := range entries {
				if err := extractEntry(r, e, dir); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "C", ".", "destination directory")

	return cmd
}

// selectEntries returns the named entries, or all of them when names is empty.
func selectEntries(r *archive.Reader, names []string) ([]archive.Entry, error) {
	if len(names) == 0 {
		return r.Entries(), nil
	}

	entries := make([]archive.Entry, 0, len(names))
	for _, name := range names {
		e, ok := r.GetFile(name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, os.ErrNotExist)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

var errUnsafeName = errors.New("entry name escapes the destination directory")

// targetPath maps an entry name to a path under dir. Names that are absolute
// or climb out of dir are refused.
func targetPath(dir, name string) (string, error) {
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%q: %w", name, errUnsafeName)
	}

	return filepath.Join(dir, rel), nil
}

func extractEntry(r *archive.Reader, e archive.Entry, dir string) error {
	path, err := targetPath(dir, e.Name)
	if err != nil {
		return err
	}

	data, err := r.Decompress(e)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: extracted trees are user data
		return err
	}

	glog.V(1).Infof("extract %q -> %s", e.Name, path)
	return os.WriteFile(path, data, 0o644) //nolint:gosec // G306: extracted files are user data
}

func newCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat ARCHIVE NAME",
		Short: "Write one entry to standard output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := archive.Open(args[0], nil)
			if err != nil {
				return err
			}
			defer r.Close()

			entries, err := selectEntries(r, args[1:])
			if err != nil {
				return err
			}

			data, err := r.Decompress(entries[0])
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
