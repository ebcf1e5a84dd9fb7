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

// TokenProgramID is the canonical SPL Token program address.
const TokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

const (
	tagInitializeAccount uint8 = 1
	tagTransfer          uint8 = 3
	tagMintTo            uint8 = 7
	tagBurn              uint8 = 8
	tagCloseAccount      uint8 = 9
	tagTransferChecked   uint8 = 12
)

// TokenProgramParser implements ProgramParser for the SPL Token
// program.
type TokenProgramParser struct{}

func (TokenProgramParser) ProgramID() string   { return TokenProgramID }
func (TokenProgramParser) ProgramName() string { return "TokenProgram" }

func (p TokenProgramParser) Parse(tx *model.Transaction, instructionIndex int, _ events.Options) events.Event {
	return DecodeTokenInstruction(tx, tx.Message.Instructions[instructionIndex])
}

// DecodeTokenInstruction decodes a single SPL Token-program instruction,
// whether top-level or inner; RaydiumAMM's swap decoder calls this
// directly against inner instructions to find the transfer amount.
func DecodeTokenInstruction(tx *model.Transaction, instr model.Instruction) events.Event {
	raw, err := address.TolerantDecode(instr.Data)
	if err != nil || len(raw) == 0 {
		return tokenDescriptor("Malformed", nil)
	}

	switch raw[0] {
	case tagTransfer:
		return buildTransfer(tx, instr, raw, false)
	case tagTransferChecked:
		return buildTransfer(tx, instr, raw, true)
	case tagMintTo:
		return tokenDescriptor("MintTo", map[string]any{"amount": leU64(raw, 1)})
	case tagBurn:
		return tokenDescriptor("Burn", map[string]any{"amount": leU64(raw, 1)})
	case tagInitializeAccount:
		return tokenDescriptor("InitializeAccount", nil)
	case tagCloseAccount:
		return tokenDescriptor("CloseAccount", nil)
	default:
		return tokenDescriptor("Unknown", nil)
	}
}

func buildTransfer(tx *model.Transaction, instr model.Instruction, raw []byte, checked bool) events.Event {
	from := accountOf(tx, instr, 0)
	to := accountOf(tx, instr, 1)
	authorityIdx := 2
	if checked {
		// position 1 is the mint for TransferChecked, so the destination
		// moves to position 2 and the authority to position 3.
		to = accountOf(tx, instr, 2)
		authorityIdx = 3
	}
	authority := accountOf(tx, instr, authorityIdx)

	ev := events.Transfer{
		ProgramID:   TokenProgramID,
		ProgramName: "TokenProgram",
		From:        from,
		To:          to,
		Authority:   authority,
		Amount:      leU64(raw, 1),
	}
	if checked {
		ev.Mint = accountOf(tx, instr, 1)
		if len(raw) > 9 {
			d := raw[9]
			ev.Decimals = &d
		}
	}
	return ev
}

func accountOf(tx *model.Transaction, instr model.Instruction, pos int) string {
	if pos < 0 || pos >= len(instr.Accounts) {
		return ""
	}
	return tx.AccountAt(int(instr.Accounts[pos]))
}

func tokenDescriptor(name string, fields map[string]any) events.Descriptor {
	return events.Descriptor{
		ProgramID:       TokenProgramID,
		ProgramName:     "TokenProgram",
		InstructionName: name,
		Fields:          fields,
	}
}

func leU64(raw []byte, offset int) uint64 {
	if offset < 0 || offset+8 > len(raw) {
		return 0
	}
	return binary.LittleEndian.Uint64(raw[offset : offset+8])
}
