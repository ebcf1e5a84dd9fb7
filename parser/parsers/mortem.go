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
	"bytes"

	"github.com/solana-tools/soltxs/address"
	"github.com/solana-tools/soltxs/model"
	"github.com/solana-tools/soltxs/parser/events"
)

// MortemProgramID is the Mortem trading-bot program address.
const MortemProgramID = "FAdo9NCw1ssek6Z6yeWzWjhLVsr8uiCwcWNUnKgzTnHe"

// MortemParser implements ProgramParser for Mortem. All three tag
// handlers delegate to the shared inner-instruction SwapData scan.
type MortemParser struct{}

func (MortemParser) ProgramID() string   { return MortemProgramID }
func (MortemParser) ProgramName() string { return "Mortem" }

func (p MortemParser) Parse(tx *model.Transaction, instructionIndex int, _ events.Options) events.Event {
	instr := tx.Message.Instructions[instructionIndex]
	raw, err := address.TolerantDecode(instr.Data)
	if err != nil || len(raw) < 4 {
		return mortemError("Malformed", "")
	}

	swaps := mortemSwapList(tx, instructionIndex)

	switch {
	case bytes.Equal(raw[:4], []byte("buy\x00")):
		return mortemBuy(tx, swaps)
	case bytes.Equal(raw[:4], []byte("sell")):
		return mortemSell(tx, swaps)
	default:
		for _, s := range swaps {
			if s.IsBuy {
				return mortemBuy(tx, swaps)
			}
		}
		for _, s := range swaps {
			if !s.IsBuy {
				return mortemSell(tx, swaps)
			}
		}
		return mortemError("NoSwapDataFound", "no valid swap data found in inner instructions")
	}
}

func mortemBuy(tx *model.Transaction, swaps []SwapData) events.Event {
	for _, s := range swaps {
		if !s.IsBuy {
			continue
		}
		toToken := s.MintAddress()
		toDecimals, ok := mortemDecimals(tx, toToken)
		if !ok {
			return mortemError("DecimalsUnknown", "could not resolve decimals for mint "+toToken)
		}
		return events.Buy{Trade: events.Trade{
			Signature:       tx.Signature(),
			Origin:          MortemProgramID,
			ProgramName:     "Mortem",
			InstructionName: "buy",
			Who:             s.UserAddress(),
			FromToken:       WSOL_MINT,
			FromDecimals:    SOL_DECIMALS,
			ToToken:         toToken,
			ToDecimals:      toDecimals,
			FromAmount:      s.SolAmount,
			ToAmount:        s.TokenAmount,
		}}
	}
	return mortemError("NoSwapDataFound", "no buy swap data found in inner instructions")
}

func mortemSell(tx *model.Transaction, swaps []SwapData) events.Event {
	for _, s := range swaps {
		if s.IsBuy {
			continue
		}
		fromToken := s.MintAddress()
		fromDecimals, ok := mortemDecimals(tx, fromToken)
		if !ok {
			return mortemError("DecimalsUnknown", "could not resolve decimals for mint "+fromToken)
		}
		return events.Sell{Trade: events.Trade{
			Signature:       tx.Signature(),
			Origin:          MortemProgramID,
			ProgramName:     "Mortem",
			InstructionName: "sell",
			Who:             s.UserAddress(),
			FromToken:       fromToken,
			FromDecimals:    fromDecimals,
			ToToken:         WSOL_MINT,
			ToDecimals:      SOL_DECIMALS,
			FromAmount:      s.TokenAmount,
			ToAmount:        s.SolAmount,
		}}
	}
	return mortemError("NoSwapDataFound", "no sell swap data found in inner instructions")
}

// mortemSwapList gathers inner instructions of the given outer
// instruction belonging to Mortem or PumpFun and decodes each as
// SwapData, skipping any that fail to decode.
func mortemSwapList(tx *model.Transaction, instructionIndex int) []SwapData {
	allowed := map[string]bool{MortemProgramID: true, PumpFunProgramID: true}
	var out []SwapData
	for _, group := range tx.Meta.InnerInstructions {
		if int(group.Index) != instructionIndex {
			continue
		}
		for _, inner := range group.Instructions {
			programID := tx.AccountAt(int(inner.ProgramIDIndex))
			if !allowed[programID] {
				continue
			}
			raw, err := address.TolerantDecode(inner.Data)
			if err != nil {
				continue
			}
			sd, err := DecodeSwapData(raw)
			if err != nil {
				continue
			}
			out = append(out, sd)
		}
	}
	return out
}

func mortemDecimals(tx *model.Transaction, mint string) (uint8, bool) {
	if mint == WSOL_MINT {
		return SOL_DECIMALS, true
	}
	for _, tb := range tx.Meta.PreTokenBalances {
		if tb.Mint == mint {
			return tb.UiTokenAmount.Decimals, true
		}
	}
	for _, tb := range tx.Meta.PostTokenBalances {
		if tb.Mint == mint {
			return tb.UiTokenAmount.Decimals, true
		}
	}
	return 0, false
}

func mortemError(name, detail string) events.Descriptor {
	var fields map[string]any
	if detail != "" {
		fields = map[string]any{"error": detail}
	}
	return events.Descriptor{
		ProgramID:       MortemProgramID,
		ProgramName:     "Mortem",
		InstructionName: name,
		Fields:          fields,
	}
}
