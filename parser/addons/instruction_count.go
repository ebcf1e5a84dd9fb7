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

package addons

import "github.com/solana-tools/soltxs/model"

// InstructionCount totals top-level instructions plus every inner
// group's instruction count.
type InstructionCount struct{}

func (InstructionCount) Name() string { return "instruction_count" }

func (InstructionCount) Enrich(tx *model.Transaction) (any, bool) {
	total := len(tx.Message.Instructions)
	for _, group := range tx.Meta.InnerInstructions {
		total += len(group.Instructions)
	}
	return total, true
}
