// Copyright 2021 github.com/gagliardetto
// This file has been modified by github.com/gagliardetto
//
// Copyright 2020 dfuse Platform Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd wires the soltxs CLI: a single command reading a
// transaction envelope from a file path or stdin and printing the
// decoded events, addons, and resolved summary.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	asJSON  bool
	asTable bool
)

var rootCmd = &cobra.Command{
	Use:   "soltxs [file]",
	Short: "Decode a Solana transaction into events, addons, and a resolved summary",
	Long: `soltxs reads a single JSON transaction envelope — either the plain
JSON-RPC getTransaction shape or a streaming/geyser envelope — from the
given file path or, with no argument, from stdin. It normalizes,
parses, enriches, and resolves the transaction, then prints the
result as a tree (default) or as JSON with --json; --table prints
only the addons, as a column table.

The --disable-balance-inference flag can also be set with the
SOLTXS_DISABLE_BALANCE_INFERENCE environment variable, e.g.
SOLTXS_DISABLE_BALANCE_INFERENCE=1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON instead of a tree")
	rootCmd.Flags().BoolVar(&asTable, "table", false, "print addons as a column-aligned table instead of a tree")
	rootCmd.Flags().Bool("disable-balance-inference", false, "skip the unknown-program balance-inference fallback")

	viper.SetEnvPrefix("soltxs")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("disable_balance_inference", rootCmd.Flags().Lookup("disable-balance-inference"))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
