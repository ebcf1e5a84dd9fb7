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

package parsers

import (
	"encoding/binary"

	"github.com/solana-tools/soltxs/address"
	"github.com/solana-tools/soltxs/model"
	"github.com/solana-tools/soltxs/parser/events"
)

// ComputeBudgetProgramID is the native ComputeBudget program address.
const ComputeBudgetProgramID = "ComputeBudget111111111111111111111111111111"

var computeBudgetInstructionNames = map[uint8]string{
	0: "RequestUnits",
	1: "RequestHeapFrame",
	2: "SetComputeUnitLimit",
	3: "SetComputeUnitPrice",
	4: "SetLoadedAccountsDataSizeLimit",
}

// ComputeBudgetParser implements ProgramParser for the ComputeBudget
// program: variants are tagged by a single leading byte, emitted as
// program-tagged descriptor events.
type ComputeBudgetParser struct{}

func (ComputeBudgetParser) ProgramID() string   { return ComputeBudgetProgramID }
func (ComputeBudgetParser) ProgramName() string { return "ComputeBudget" }

func (p ComputeBudgetParser) Parse(tx *model.Transaction, instructionIndex int, _ events.Options) events.Event {
	instr := tx.Message.Instructions[instructionIndex]
	raw, err := address.TolerantDecode(instr.Data)
	if err != nil || len(raw) < 1 {
		return events.Descriptor{ProgramID: ComputeBudgetProgramID, ProgramName: "ComputeBudget", InstructionName: "Malformed"}
	}
	name, ok := computeBudgetInstructionNames[raw[0]]
	if !ok {
		name = "Unknown"
	}
	var fields map[string]any
	switch name {
	case "SetComputeUnitLimit":
		if len(raw) >= 5 {
			fields = map[string]any{"units": binary.LittleEndian.Uint32(raw[1:5])}
		}
	case "SetComputeUnitPrice":
		if len(raw) >= 9 {
			fields = map[string]any{"microLamports": binary.LittleEndian.Uint64(raw[1:9])}
		}
	}
	return events.Descriptor{
		ProgramID:       ComputeBudgetProgramID,
		ProgramName:     "ComputeBudget",
		InstructionName: name,
		Fields:          fields,
	}
}
