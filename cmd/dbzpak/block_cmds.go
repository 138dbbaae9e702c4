// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/woozymasta/doboz"
)

func newCompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compress IN OUT",
		Short: "Compress a file into a raw doboz block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			block, err := doboz.Compress(data)
			if err != nil {
				return err
			}

			return os.WriteFile(args[1], block, 0o644) //nolint:gosec // G306: output is user data
		},
	}
}

func newDecompressCmd() *cobra.Command {
	var opts doboz.DecompressOptions

	cmd := &cobra.Command{
		Use:   "decompress IN OUT",
		Short: "Decompress a raw doboz block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			data, err := doboz.DecompressFromReader(f, &opts)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			return os.WriteFile(args[1], data, 0o644) //nolint:gosec // G306: output is user data
		},
	}

	cmd.Flags().IntVar(&opts.MaxOutputSize, "max-output", 0, "refuse blocks larger than this many bytes once decoded (0 = no limit)")
	cmd.Flags().IntVar(&opts.MaxInputSize, "max-input", 0, "refuse inputs larger than this many bytes (0 = no limit)")

	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print the header of a raw doboz block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			info, err := doboz.Info(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "version: %d\nuncompressed: %d\ncompressed: %d\n",
				info.Version, info.UncompressedSize, info.CompressedSize)
			return err
		},
	}
}
