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
	"crypto/sha256"
	"encoding/binary"

	"github.com/solana-tools/soltxs/address"
	"github.com/solana-tools/soltxs/model"
	"github.com/solana-tools/soltxs/parser/events"
)

// PumpFunProgramID is the pump.fun bonding-curve program address.
const PumpFunProgramID = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"

// account positions within a pump.fun Buy/Sell instruction's account
// list, per the program's published IDL.
const (
	pumpFunMintAccountPos = 2
	pumpFunUserAccountPos = 6
)

var (
	pumpFunBuyDiscriminator    = anchorDiscriminator("buy")
	pumpFunSellDiscriminator   = anchorDiscriminator("sell")
	pumpFunCreateDiscriminator = anchorDiscriminator("create")
)

// anchorDiscriminator computes the 8-byte Anchor instruction
// discriminator for a global method: the first 8 bytes of
// sha256("global:"+name).
func anchorDiscriminator(method string) [8]byte {
	sum := sha256.Sum256([]byte("global:" + method))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

// PumpFunParser implements ProgramParser for pump.fun's own Buy/Sell
// instructions. This is distinct from the Anchor event log pump.fun
// also emits via CPI, which Mortem and the unknown-program fallback
// decode through the shared SwapData schema instead.
type PumpFunParser struct{}

func (PumpFunParser) ProgramID() string   { return PumpFunProgramID }
func (PumpFunParser) ProgramName() string { return "PumpFun" }

func (p PumpFunParser) Parse(tx *model.Transaction, instructionIndex int, _ events.Options) events.Event {
	instr := tx.Message.Instructions[instructionIndex]
	raw, err := address.TolerantDecode(instr.Data)
	if err != nil || len(raw) < 16 {
		return events.Descriptor{ProgramID: PumpFunProgramID, ProgramName: "PumpFun", InstructionName: "Malformed"}
	}

	var disc [8]byte
	copy(disc[:], raw[:8])

	mint := accountOf(tx, instr, pumpFunMintAccountPos)
	user := accountOf(tx, instr, pumpFunUserAccountPos)

	switch disc {
	case pumpFunBuyDiscriminator:
		amount := binary.LittleEndian.Uint64(raw[8:16])
		var maxSolCost uint64
		if len(raw) >= 24 {
			maxSolCost = binary.LittleEndian.Uint64(raw[16:24])
		}
		toDecimals := mustDecimals(tx, mint)
		return events.Buy{Trade: events.Trade{
			Signature:       tx.Signature(),
			Origin:          PumpFunProgramID,
			ProgramName:     "PumpFun",
			InstructionName: "buy",
			Who:             user,
			FromToken:       WSOL_MINT,
			FromDecimals:    SOL_DECIMALS,
			ToToken:         mint,
			ToDecimals:      toDecimals,
			FromAmount:      maxSolCost,
			ToAmount:        amount,
		}}
	case pumpFunSellDiscriminator:
		amount := binary.LittleEndian.Uint64(raw[8:16])
		var minSolOutput uint64
		if len(raw) >= 24 {
			minSolOutput = binary.LittleEndian.Uint64(raw[16:24])
		}
		fromDecimals := mustDecimals(tx, mint)
		return events.Sell{Trade: events.Trade{
			Signature:       tx.Signature(),
			Origin:          PumpFunProgramID,
			ProgramName:     "PumpFun",
			InstructionName: "sell",
			Who:             user,
			FromToken:       mint,
			FromDecimals:    fromDecimals,
			ToToken:         WSOL_MINT,
			ToDecimals:      SOL_DECIMALS,
			FromAmount:      amount,
			ToAmount:        minSolOutput,
		}}
	case pumpFunCreateDiscriminator:
		return events.Descriptor{ProgramID: PumpFunProgramID, ProgramName: "PumpFun", InstructionName: "Create"}
	default:
		return events.Descriptor{ProgramID: PumpFunProgramID, ProgramName: "PumpFun", InstructionName: "Unknown"}
	}
}
