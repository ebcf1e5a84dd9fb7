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
	"strconv"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/solana-tools/soltxs/address"
	"github.com/solana-tools/soltxs/model"
	"github.com/solana-tools/soltxs/parser/events"
)

// RaydiumAMMProgramID is the Raydium liquidity-pool AMM program
// address.
const RaydiumAMMProgramID = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"

// WSOL_MINT and SOL_DECIMALS identify wrapped SOL for the RaydiumAMM,
// PumpFun, Mortem and unknown-program decoders. The resolver package
// declares its own copy of the mint.
const (
	WSOL_MINT    = "So11111111111111111111111111111111111111112"
	SOL_DECIMALS = uint8(9)
)

const raydiumTagSwap uint8 = 9

// RaydiumAMMParser implements ProgramParser for RaydiumAMM.
type RaydiumAMMParser struct{}

func (RaydiumAMMParser) ProgramID() string   { return RaydiumAMMProgramID }
func (RaydiumAMMParser) ProgramName() string { return "RaydiumAMM" }

func (p RaydiumAMMParser) Parse(tx *model.Transaction, instructionIndex int, _ events.Options) events.Event {
	instr := tx.Message.Instructions[instructionIndex]
	raw, err := address.TolerantDecode(instr.Data)
	if err != nil || len(raw) < 17 {
		return events.Descriptor{ProgramID: RaydiumAMMProgramID, ProgramName: "RaydiumAMM", InstructionName: "Malformed"}
	}
	if raw[0] != raydiumTagSwap {
		return events.Descriptor{ProgramID: RaydiumAMMProgramID, ProgramName: "RaydiumAMM", InstructionName: "Unknown"}
	}
	swap, ok := DecodeRaydiumSwap(tx, instr, instructionIndex, raw)
	if !ok {
		return events.Descriptor{ProgramID: RaydiumAMMProgramID, ProgramName: "RaydiumAMM", InstructionName: "Swap"}
	}
	return swap
}

// DecodeRaydiumSwap builds a Swap event from a Raydium Swap
// instruction. Exported so the unknown-program heuristic fallback can
// reuse the exact same procedure. Returns ok=false if the account-tail
// positions required to resolve the trade aren't available.
func DecodeRaydiumSwap(tx *model.Transaction, instr model.Instruction, instructionIndex int, raw []byte) (events.Swap, bool) {
	if len(instr.Accounts) < 3 {
		return events.Swap{}, false
	}
	n := len(instr.Accounts)
	sourceIdx := instr.Accounts[n-3]
	destIdx := instr.Accounts[n-2]
	walletIdx := instr.Accounts[n-1]

	userSource := tx.AccountAt(int(sourceIdx))
	userDest := tx.AccountAt(int(destIdx))
	userWallet := tx.AccountAt(int(walletIdx))

	amountIn := binary.LittleEndian.Uint64(raw[1:9])
	minAmountOut := binary.LittleEndian.Uint64(raw[9:17])

	allTB := append(append([]model.TokenBalance{}, tx.Meta.PreTokenBalances...), tx.Meta.PostTokenBalances...)

	var fromToken, toToken string
	var fromDecimals, toDecimals uint8
	for _, tb := range allTB {
		if tb.AccountIndex == uint32(sourceIdx) {
			fromToken = tb.Mint
			fromDecimals = tb.UiTokenAmount.Decimals
		}
		if tb.AccountIndex == uint32(destIdx) {
			toToken = tb.Mint
			toDecimals = tb.UiTokenAmount.Decimals
		}
	}

	preBal := tokenBalanceByIndex(tx.Meta.PreTokenBalances, uint32(sourceIdx))
	postBal := tokenBalanceByIndex(tx.Meta.PostTokenBalances, uint32(sourceIdx))

	var preTokenBalance, postTokenBalance *uint64
	if preBal != nil {
		if v, err := strconv.ParseUint(preBal.UiTokenAmount.Amount, 10, 64); err == nil {
			preTokenBalance = &v
		}
	}
	if postBal != nil {
		if v, err := strconv.ParseUint(postBal.UiTokenAmount.Amount, 10, 64); err == nil {
			postTokenBalance = &v
		}
	}

	var preSolBalance, postSolBalance *uint64
	if int(walletIdx) < len(tx.Meta.PreBalances) {
		v := tx.Meta.PreBalances[walletIdx]
		preSolBalance = &v
	}
	if int(walletIdx) < len(tx.Meta.PostBalances) {
		v := tx.Meta.PostBalances[walletIdx]
		postSolBalance = &v
	}

	toAmount := scanTransferAmount(tx, instructionIndex, userDest)

	if toToken == WSOL_MINT && toAmount == 0 {
		if amt, decimals, ok := wsolSellDelta(tx); ok {
			toAmount = amt
			toDecimals = decimals
		}
	}
	if toToken == WSOL_MINT && toAmount == 0 {
		if amt, ok := rayLogAmount(tx.Meta.LogMessages); ok {
			toAmount = amt
		}
	}

	return events.Swap{
		Trade: events.Trade{
			Signature:        tx.Signature(),
			Origin:           RaydiumAMMProgramID,
			ProgramName:      "RaydiumAMM",
			InstructionName:  "swap",
			Who:              userWallet,
			FromToken:        fromToken,
			FromDecimals:     fromDecimals,
			ToToken:          toToken,
			ToDecimals:       toDecimals,
			FromAmount:       amountIn,
			ToAmount:         toAmount,
			PreTokenBalance:  preTokenBalance,
			PostTokenBalance: postTokenBalance,
			PreSolBalance:    preSolBalance,
			PostSolBalance:   postSolBalance,
		},
		MinimumAmountOut: minAmountOut,
	}, true
}

func tokenBalanceByIndex(tbs []model.TokenBalance, idx uint32) *model.TokenBalance {
	for i := range tbs {
		if tbs[i].AccountIndex == idx {
			return &tbs[i]
		}
	}
	return nil
}

// scanTransferAmount implements step 4: walk the inner-instruction
// group matching instructionIndex and return the amount of the first
// TokenProgram Transfer/TransferChecked whose destination is userDest
// (0 if there is none).
func scanTransferAmount(tx *model.Transaction, instructionIndex int, userDest string) uint64 {
	for _, group := range tx.Meta.InnerInstructions {
		if int(group.Index) != instructionIndex {
			continue
		}
		for _, inner := range group.Instructions {
			programID := tx.AccountAt(int(inner.ProgramIDIndex))
			if programID != TokenProgramID {
				continue
			}
			ev := DecodeTokenInstruction(tx, inner)
			if tr, ok := ev.(events.Transfer); ok && tr.To == userDest {
				return tr.Amount
			}
		}
	}
	return 0
}

// wsolSellDelta implements the sell-side fixup's balance-delta branch:
// the account with the largest positive pre-post delta among WSOL
// balances.
func wsolSellDelta(tx *model.Transaction) (uint64, uint8, bool) {
	var bestDelta uint64
	var bestDecimals uint8
	found := false
	for _, pre := range tx.Meta.PreTokenBalances {
		if pre.Mint != WSOL_MINT {
			continue
		}
		post := tokenBalanceByIndex(tx.Meta.PostTokenBalances, pre.AccountIndex)
		if post == nil {
			continue
		}
		preAmt, err1 := strconv.ParseUint(pre.UiTokenAmount.Amount, 10, 64)
		postAmt, err2 := strconv.ParseUint(post.UiTokenAmount.Amount, 10, 64)
		if err1 != nil || err2 != nil || preAmt <= postAmt {
			continue
		}
		delta := preAmt - postAmt
		if !found || delta > bestDelta {
			bestDelta = delta
			bestDecimals = pre.UiTokenAmount.Decimals
			found = true
		}
	}
	return bestDelta, bestDecimals, found
}

// rayLogAmount implements the log-message fallback: scan for a
// "ray_log:" line, base-58-decode its trailing payload, and read the
// u64 LE amount at bytes 9..17.
func rayLogAmount(logs []string) (uint64, bool) {
	for _, line := range logs {
		idx := strings.Index(line, "ray_log:")
		if idx == -1 {
			continue
		}
		payload := strings.TrimSpace(line[idx+len("ray_log:"):])
		raw, err := base58.Decode(payload)
		if err != nil || len(raw) < 17 {
			continue
		}
		return binary.LittleEndian.Uint64(raw[9:17]), true
	}
	return 0, false
}
