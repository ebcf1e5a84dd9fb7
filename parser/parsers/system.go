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

// SystemProgramID is the native System program address.
const SystemProgramID = "11111111111111111111111111111111"

var systemInstructionNames = map[uint32]string{
	0:  "CreateAccount",
	1:  "Assign",
	2:  "Transfer",
	3:  "CreateAccountWithSeed",
	4:  "AdvanceNonceAccount",
	5:  "WithdrawNonceAccount",
	6:  "InitializeNonceAccount",
	7:  "AuthorizeNonceAccount",
	8:  "Allocate",
	9:  "AllocateWithSeed",
	10: "AssignWithSeed",
	11: "TransferWithSeed",
	12: "UpgradeNonceAccount",
}

// SystemParser implements ProgramParser for the native System
// program: a thin decoder distinguishing variants by their leading
// u32 LE tag, emitted as program-tagged descriptor events.
type SystemParser struct{}

func (SystemParser) ProgramID() string   { return SystemProgramID }
func (SystemParser) ProgramName() string { return "System" }

func (p SystemParser) Parse(tx *model.Transaction, instructionIndex int, _ events.Options) events.Event {
	instr := tx.Message.Instructions[instructionIndex]
	raw, err := address.TolerantDecode(instr.Data)
	if err != nil || len(raw) < 4 {
		return events.Descriptor{ProgramID: SystemProgramID, ProgramName: "System", InstructionName: "Malformed"}
	}
	tag := binary.LittleEndian.Uint32(raw[:4])
	name, ok := systemInstructionNames[tag]
	if !ok {
		name = "Unknown"
	}
	var fields map[string]any
	if name == "Transfer" && len(raw) >= 12 {
		fields = map[string]any{"lamports": binary.LittleEndian.Uint64(raw[4:12])}
	}
	return events.Descriptor{
		ProgramID:       SystemProgramID,
		ProgramName:     "System",
		InstructionName: name,
		Fields:          fields,
	}
}
