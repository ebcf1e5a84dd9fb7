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

// Package addons implements component G: independent enrichers that
// each contribute one key to a transaction's addon map.
package addons

import "github.com/solana-tools/soltxs/model"

// Addon enriches a transaction with a single named, optional value.
type Addon interface {
	Name() string
	Enrich(tx *model.Transaction) (any, bool)
}

// All is the ordered, immutable set of addons run by the orchestrator.
// Order only affects map-building convenience; addons never depend on
// one another.
var All = []Addon{
	ComputeUnits{},
	InstructionCount{},
	LoadedAddresses{},
	PlatformIdentifier{},
	TokenTransferSummary{},
}

// Run evaluates every addon against tx and returns the populated map,
// omitting any addon that returned ok=false.
func Run(tx *model.Transaction) map[string]any {
	out := make(map[string]any, len(All))
	for _, a := range All {
		if v, ok := a.Enrich(tx); ok {
			out[a.Name()] = v
		}
	}
	return out
}
