// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package cmd

import (
	"fmt"
	"os"

	"github.com/sixafter/divine/cmd/divine/cmd/run"
	"github.com/sixafter/divine/cmd/divine/cmd/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "divine",
	Short: "Recover hidden fragments from a shared-stream oracle",
	Long: `Divine CLI runs the fragment-recovery attack against the built-in oracle
simulator: it locks onto the shared xorshift128+ stream, predicts the
oracle's upcoming draws, and forces the samples it needs to reconstruct
every hidden fragment.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing divine: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(run.NewRunCommand())
	RootCmd.AddCommand(version.NewVersionCommand())
}
