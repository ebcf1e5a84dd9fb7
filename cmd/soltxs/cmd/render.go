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
	"fmt"

	"github.com/fatih/color"
	"github.com/gagliardetto/treeout"
	"github.com/ryanuber/columnize"

	"github.com/solana-tools/soltxs"
	"github.com/solana-tools/soltxs/parser/events"
	"github.com/solana-tools/soltxs/resolver"
)

var (
	colorBuy     = color.New(color.FgGreen).SprintFunc()
	colorSell    = color.New(color.FgRed).SprintFunc()
	colorUnknown = color.New(color.FgYellow).SprintFunc()
)

// renderTree builds a human-readable tree view of a Process result,
// following the same treeout.Branches/Child/ParentFunc convention the
// program-instruction encoders use to print themselves.
func renderTree(result *soltxs.Result) treeout.Branches {
	root := treeout.New("Transaction")

	root.Child(fmt.Sprintf("signatures: %v", result.Signatures))

	root.Child("events").ParentFunc(func(eventsBranch treeout.Branches) {
		for i, e := range result.Events {
			eventsBranch.Child(fmt.Sprintf("[%d] %s", i, describeEvent(e)))
		}
	})

	root.Child("addons").ParentFunc(func(addonsBranch treeout.Branches) {
		for name, value := range result.Addons {
			addonsBranch.Child(fmt.Sprintf("%s: %v", name, value))
		}
	})

	if result.Resolved != nil {
		root.Child(fmt.Sprintf("resolved: %s", describeResolved(result.Resolved)))
	}

	return root
}

func describeEvent(e events.Event) string {
	switch v := e.(type) {
	case events.Buy:
		return fmt.Sprintf("%s [%s] who=%s %s->%s amount=%d->%d", colorBuy("Buy"), v.ProgramName, v.Who, v.FromToken, v.ToToken, v.FromAmount, v.ToAmount)
	case events.Sell:
		return fmt.Sprintf("%s [%s] who=%s %s->%s amount=%d->%d", colorSell("Sell"), v.ProgramName, v.Who, v.FromToken, v.ToToken, v.FromAmount, v.ToAmount)
	case events.Swap:
		return fmt.Sprintf("Swap [%s] who=%s %s->%s amount=%d->%d (min %d)", v.ProgramName, v.Who, v.FromToken, v.ToToken, v.FromAmount, v.ToAmount, v.MinimumAmountOut)
	case events.Transfer:
		return fmt.Sprintf("Transfer [%s] %s->%s amount=%d", v.ProgramName, v.From, v.To, v.Amount)
	case events.Descriptor:
		return fmt.Sprintf("%s.%s %v", v.ProgramName, v.InstructionName, v.Fields)
	case events.Unknown:
		return fmt.Sprintf("%s program=%s instruction=%d", colorUnknown(v.InstructionName), v.ProgramID, v.InstructionIndex)
	default:
		return fmt.Sprintf("%T", e)
	}
}

// renderTable prints the addon map as a column-aligned table.
func renderTable(result *soltxs.Result) string {
	rows := []string{"Addon | Value"}
	for name, value := range result.Addons {
		rows = append(rows, fmt.Sprintf("%s | %v", name, value))
	}
	return columnize.Format(rows, nil)
}

func describeResolved(r resolver.Resolve) string {
	switch v := r.(type) {
	case resolver.PumpFun:
		return fmt.Sprintf("PumpFun %s who=%s %s->%s amount=%s->%s", v.Type, v.Who, v.FromToken, v.ToToken, v.FromAmount, v.ToAmount)
	case resolver.Raydium:
		return fmt.Sprintf("Raydium %s who=%s %s->%s amount=%s->%s", v.Type, v.Who, v.FromToken, v.ToToken, v.FromAmount, v.ToAmount)
	default:
		return fmt.Sprintf("%T", r)
	}
}
