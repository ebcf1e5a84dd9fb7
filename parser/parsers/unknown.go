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

	"github.com/solana-tools/soltxs/address"
	"github.com/solana-tools/soltxs/model"
	"github.com/solana-tools/soltxs/parser/events"
)

// unknownBlacklist holds program ids whose incidental presence in a
// pump-fun-style swap scan should never be treated as the swap's real
// origin.
var unknownBlacklist = map[string]bool{
	SystemProgramID:                              true,
	"ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL": true,
}

// UnknownParser is the heuristic fallback invoked when an instruction's
// program address is absent from the registry. It is constructed
// per-instruction with the unresolved program id so the
// eventual Unknown event (step 8) can still report it.
type UnknownParser struct {
	programID string
}

// NewUnknownParser builds the fallback parser for the given
// unregistered program address.
func NewUnknownParser(programID string) UnknownParser {
	return UnknownParser{programID: programID}
}

func (p UnknownParser) ProgramID() string   { return p.programID }
func (p UnknownParser) ProgramName() string { return "Unknown" }

func (p UnknownParser) Parse(tx *model.Transaction, instructionIndex int, opts events.Options) events.Event {
	if ev, ok := p.fromSwapEvents(tx); ok {
		return ev
	}
	if ev, ok := p.fromRaydiumEvents(tx); ok {
		return ev
	}
	// The log-message hint (step 6) and the balance-inference fallback
	// (step 7) resolve to the same computation: a SwapRaydiumV4 hint
	// with no decoded instruction data just means "infer from balances"
	// (see DESIGN.md), so both are covered by one inferRaydiumSwap call.
	if !opts.DisableBalanceInference {
		if swap, ok := inferRaydiumSwap(tx); ok {
			return swap
		}
	}
	return events.Unknown{
		ProgramID:        p.programID,
		ProgramName:      "Unknown",
		InstructionName:  "Unknown",
		InstructionIndex: instructionIndex,
	}
}

type originSwap struct {
	swap   SwapData
	origin string
}

// originProgramName maps an origin program id recognized by the
// swap-event scan to its human-readable name.
func originProgramName(origin string) string {
	switch origin {
	case PumpFunProgramID:
		return "PumpFun"
	case RaydiumAMMProgramID:
		return "RaydiumAMM"
	default:
		return "Unknown"
	}
}

// fromSwapEvents implements steps 1-4: scan inner and top-level
// instructions for PumpFun/RaydiumAMM-originated SwapData payloads,
// drop blacklisted origins, dedup, then prefer a Buy over a Sell.
func (p UnknownParser) fromSwapEvents(tx *model.Transaction) (events.Event, bool) {
	candidates := append(scanInnerSwapEvents(tx), scanTopLevelSwapEvents(tx)...)

	type keyed struct {
		key events.DedupKey
		os  originSwap
	}
	var unique []keyed
	seen := map[events.DedupKey]bool{}
	sig := tx.Signature()

	for _, c := range candidates {
		if unknownBlacklist[c.origin] {
			continue
		}
		var key events.DedupKey
		if c.swap.IsBuy {
			key = events.DedupKey{
				Signature: sig, InstructionName: "Buy", Who: c.swap.UserAddress(),
				FromToken: WSOL_MINT, FromDecimals: SOL_DECIMALS,
				ToToken: c.swap.MintAddress(), ToDecimals: mustDecimals(tx, c.swap.MintAddress()),
				FromAmount: c.swap.SolAmount, ToAmount: c.swap.TokenAmount,
			}
		} else {
			key = events.DedupKey{
				Signature: sig, InstructionName: "Sell", Who: c.swap.UserAddress(),
				FromToken: c.swap.MintAddress(), FromDecimals: mustDecimals(tx, c.swap.MintAddress()),
				ToToken: WSOL_MINT, ToDecimals: SOL_DECIMALS,
				FromAmount: c.swap.TokenAmount, ToAmount: c.swap.SolAmount,
			}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, keyed{key, c})
	}

	for _, u := range unique {
		if u.os.swap.IsBuy {
			return buildBuyFromSwap(tx, u.os.swap, u.os.origin), true
		}
	}
	for _, u := range unique {
		if !u.os.swap.IsBuy {
			return buildSellFromSwap(tx, u.os.swap, u.os.origin), true
		}
	}
	return nil, false
}

func mustDecimals(tx *model.Transaction, mint string) uint8 {
	d, _ := mortemDecimals(tx, mint)
	return d
}

func scanInnerSwapEvents(tx *model.Transaction) []originSwap {
	var out []originSwap
	for _, group := range tx.Meta.InnerInstructions {
		for _, inner := range group.Instructions {
			origin := tx.AccountAt(int(inner.ProgramIDIndex))
			if origin != PumpFunProgramID && origin != RaydiumAMMProgramID {
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
			out = append(out, originSwap{sd, origin})
		}
	}
	return out
}

func scanTopLevelSwapEvents(tx *model.Transaction) []originSwap {
	var out []originSwap
	for _, instr := range tx.Message.Instructions {
		origin := tx.AccountAt(int(instr.ProgramIDIndex))
		if origin != PumpFunProgramID && origin != RaydiumAMMProgramID {
			continue
		}
		raw, err := address.TolerantDecode(instr.Data)
		if err != nil {
			continue
		}
		sd, err := DecodeSwapData(raw)
		if err != nil {
			continue
		}
		out = append(out, originSwap{sd, origin})
	}
	return out
}

func buildBuyFromSwap(tx *model.Transaction, sd SwapData, origin string) events.Buy {
	who := sd.UserAddress()
	toToken := sd.MintAddress()
	toDecimals := mustDecimals(tx, toToken)

	preTok, preSol := ownerBalances(tx.Meta.PreTokenBalances, who, toToken)
	postTok, postSol := ownerBalances(tx.Meta.PostTokenBalances, who, toToken)

	return events.Buy{Trade: events.Trade{
		Signature:        tx.Signature(),
		Origin:           origin,
		ProgramName:      originProgramName(origin),
		InstructionName:  "Buy",
		Who:              who,
		FromToken:        WSOL_MINT,
		FromDecimals:     SOL_DECIMALS,
		ToToken:          toToken,
		ToDecimals:       toDecimals,
		FromAmount:       sd.SolAmount,
		ToAmount:         sd.TokenAmount,
		PreTokenBalance:  preTok,
		PostTokenBalance: postTok,
		PreSolBalance:    preSol,
		PostSolBalance:   postSol,
	}}
}

func buildSellFromSwap(tx *model.Transaction, sd SwapData, origin string) events.Sell {
	who := sd.UserAddress()
	fromToken := sd.MintAddress()
	fromDecimals := mustDecimals(tx, fromToken)

	preTok, preSol := ownerBalances(tx.Meta.PreTokenBalances, who, fromToken)
	postTok, postSol := ownerBalances(tx.Meta.PostTokenBalances, who, fromToken)

	return events.Sell{Trade: events.Trade{
		Signature:        tx.Signature(),
		Origin:           origin,
		ProgramName:      originProgramName(origin),
		InstructionName:  "Sell",
		Who:              who,
		FromToken:        fromToken,
		FromDecimals:     fromDecimals,
		ToToken:          WSOL_MINT,
		ToDecimals:       SOL_DECIMALS,
		FromAmount:       sd.TokenAmount,
		ToAmount:         sd.SolAmount,
		PreTokenBalance:  preTok,
		PostTokenBalance: postTok,
		PreSolBalance:    preSol,
		PostSolBalance:   postSol,
	}}
}

// ownerBalances scans a token-balance slice for who's WSOL balance and
// their balance of tokenMint, matching by Owner rather than account
// index; the buy/sell builders above call it with the trade's user and
// mint.
func ownerBalances(tbs []model.TokenBalance, who, tokenMint string) (*uint64, *uint64) {
	var tokenBal, solBal *uint64
	for _, tb := range tbs {
		if tb.Owner == nil || *tb.Owner != who {
			continue
		}
		v, err := strconv.ParseUint(tb.UiTokenAmount.Amount, 10, 64)
		if err != nil {
			continue
		}
		if tb.Mint == WSOL_MINT {
			solBal = &v
		}
		if tb.Mint == tokenMint {
			tokenBal = &v
		}
	}
	return tokenBal, solBal
}

type raydiumCandidate struct {
	raw []byte
	idx int
}

// fromRaydiumEvents implements step 5: scan both instruction lists for
// RaydiumAMM-shaped payloads, dedup, and attempt to decode each with
// the exact same procedure RaydiumAMM's own parser uses.
func (p UnknownParser) fromRaydiumEvents(tx *model.Transaction) (events.Event, bool) {
	var candidates []raydiumCandidate
	for idx, instr := range tx.Message.Instructions {
		if tx.AccountAt(int(instr.ProgramIDIndex)) != RaydiumAMMProgramID {
			continue
		}
		raw, err := address.TolerantDecode(instr.Data)
		if err != nil || len(raw) < 17 {
			continue
		}
		candidates = append(candidates, raydiumCandidate{raw, idx})
	}
	for _, group := range tx.Meta.InnerInstructions {
		for _, inner := range group.Instructions {
			if tx.AccountAt(int(inner.ProgramIDIndex)) != RaydiumAMMProgramID {
				continue
			}
			raw, err := address.TolerantDecode(inner.Data)
			if err != nil || len(raw) < 17 {
				continue
			}
			candidates = append(candidates, raydiumCandidate{raw, int(group.Index)})
		}
	}

	type dedupEntry struct {
		sig      string
		idx      int
		amountIn uint64
		minOut   uint64
	}
	seen := map[dedupEntry]bool{}
	sig := tx.Signature()
	var unique []raydiumCandidate
	for _, c := range candidates {
		key := dedupEntry{sig, c.idx, binary.LittleEndian.Uint64(c.raw[1:9]), binary.LittleEndian.Uint64(c.raw[9:17])}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}

	for _, c := range unique {
		if c.idx < 0 || c.idx >= len(tx.Message.Instructions) {
			continue
		}
		instr := tx.Message.Instructions[c.idx]
		if swap, ok := DecodeRaydiumSwap(tx, instr, c.idx, c.raw); ok {
			return swap, true
		}
	}
	return nil, false
}

// inferRaydiumSwap is the last-resort balance-inference fallback (see
// DESIGN.md): find the account with the largest pre→post drop and the
// account with the largest pre→post rise across token balances, and
// build a Swap between them.
func inferRaydiumSwap(tx *model.Transaction) (events.Swap, bool) {
	pre := map[uint32]model.TokenBalance{}
	for _, tb := range tx.Meta.PreTokenBalances {
		pre[tb.AccountIndex] = tb
	}
	post := map[uint32]model.TokenBalance{}
	for _, tb := range tx.Meta.PostTokenBalances {
		post[tb.AccountIndex] = tb
	}
	if len(pre) == 0 && len(post) == 0 {
		return events.Swap{}, false
	}

	var dropCandidate, riseCandidate *model.TokenBalance
	var dropAmount, riseAmount uint64

	for idx, preTB := range pre {
		postTB, ok := post[idx]
		if !ok {
			continue
		}
		preAmt, err1 := strconv.ParseUint(preTB.UiTokenAmount.Amount, 10, 64)
		postAmt, err2 := strconv.ParseUint(postTB.UiTokenAmount.Amount, 10, 64)
		if err1 != nil || err2 != nil || preAmt <= postAmt {
			continue
		}
		if diff := preAmt - postAmt; dropCandidate == nil || diff > dropAmount {
			dropAmount = diff
			tbCopy := preTB
			dropCandidate = &tbCopy
		}
	}
	for idx, postTB := range post {
		preTB, ok := pre[idx]
		if !ok {
			continue
		}
		preAmt, err1 := strconv.ParseUint(preTB.UiTokenAmount.Amount, 10, 64)
		postAmt, err2 := strconv.ParseUint(postTB.UiTokenAmount.Amount, 10, 64)
		if err1 != nil || err2 != nil || postAmt <= preAmt {
			continue
		}
		if diff := postAmt - preAmt; riseCandidate == nil || diff > riseAmount {
			riseAmount = diff
			tbCopy := postTB
			riseCandidate = &tbCopy
		}
	}

	if dropCandidate == nil || riseCandidate == nil {
		return events.Swap{}, false
	}

	who := ""
	if dropCandidate.Owner != nil {
		who = *dropCandidate.Owner
	}

	preTok := tokenBalanceByIndex(tx.Meta.PreTokenBalances, dropCandidate.AccountIndex)
	postTok := tokenBalanceByIndex(tx.Meta.PostTokenBalances, dropCandidate.AccountIndex)
	var preTokenBalance, postTokenBalance *uint64
	if preTok != nil {
		if v, err := strconv.ParseUint(preTok.UiTokenAmount.Amount, 10, 64); err == nil {
			preTokenBalance = &v
		}
	}
	if postTok != nil {
		if v, err := strconv.ParseUint(postTok.UiTokenAmount.Amount, 10, 64); err == nil {
			postTokenBalance = &v
		}
	}

	walletIdx := -1
	for i, a := range tx.AllAccounts() {
		if a == who {
			walletIdx = i
			break
		}
	}
	var preSolBalance, postSolBalance *uint64
	if walletIdx >= 0 && walletIdx < len(tx.Meta.PreBalances) {
		v := tx.Meta.PreBalances[walletIdx]
		preSolBalance = &v
	}
	if walletIdx >= 0 && walletIdx < len(tx.Meta.PostBalances) {
		v := tx.Meta.PostBalances[walletIdx]
		postSolBalance = &v
	}

	return events.Swap{
		Trade: events.Trade{
			Signature:        tx.Signature(),
			Origin:           RaydiumAMMProgramID,
			ProgramName:      "RaydiumAMM",
			InstructionName:  "swap",
			Who:              who,
			FromToken:        dropCandidate.Mint,
			FromDecimals:     dropCandidate.UiTokenAmount.Decimals,
			ToToken:          riseCandidate.Mint,
			ToDecimals:       riseCandidate.UiTokenAmount.Decimals,
			FromAmount:       dropAmount,
			ToAmount:         riseAmount,
			PreTokenBalance:  preTokenBalance,
			PostTokenBalance: postTokenBalance,
			PreSolBalance:    preSolBalance,
			PostSolBalance:   postSolBalance,
		},
		MinimumAmountOut: 0,
	}, true
}
