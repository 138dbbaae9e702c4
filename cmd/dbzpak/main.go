// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/doboz

// Command dbzpak creates, lists and extracts doboz archives and converts
// single files to and from raw doboz blocks.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		glog.Errorf("dbzpak: %v", err)
	}
	glog.Flush()

	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dbzpak",
		Short:         "Doboz archive and block tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its settings from the Go flag set, which cobra
			// already filled in through the persistent flags.
			return flag.CommandLine.Parse(nil)
		},
	}

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(
		newCreateCmd(),
		newListCmd(),
		newExtractCmd(),
		newCatCmd(),
		newCompressCmd(),
		newDecompressCmd(),
		newInfoCmd(),
	)

	return rootCmd
}
