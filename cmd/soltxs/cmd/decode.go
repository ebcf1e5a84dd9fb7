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

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/solana-tools/soltxs"
	"github.com/solana-tools/soltxs/parser/events"
)

func runDecode(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return fmt.Errorf("soltxs: read input: %w", err)
	}

	opts := events.Options{DisableBalanceInference: viper.GetBool("disable_balance_inference")}
	result, err := soltxs.Process(raw, opts)
	if err != nil {
		return err
	}

	switch {
	case asJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case asTable:
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(result))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), renderTree(result))
	}
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
